package study

import (
	"errors"
	"time"

	"github.com/studybuddy/studydeck/internal/domain"
)

// ListDecks returns the deck summaries in index order.
func (s *Service) ListDecks() ([]domain.DeckSummary, error) {
	idx, err := s.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	return idx.Decks, nil
}

// DueCards returns every card whose review is due: never reviewed, or past
// its due date. With a deck ID it covers just that deck; otherwise it scans
// all decks in index order. Order is index order, then card order within a
// deck — never re-sorted by due date.
func (s *Service) DueCards(deckID string) ([]domain.DueCard, error) {
	now := s.now()

	if deckID != "" {
		deck, err := s.store.LoadDeck(deckID)
		if err != nil {
			return nil, err
		}
		return dueInDeck(deck, now), nil
	}

	idx, err := s.store.LoadIndex()
	if err != nil {
		return nil, err
	}

	due := []domain.DueCard{}
	for _, entry := range idx.Decks {
		deck, err := s.store.LoadDeck(entry.ID)
		if err != nil {
			// An index entry without a backing record is store drift, not a
			// reason to fail the whole scan.
			if errors.Is(err, domain.ErrDeckNotFound) {
				s.log.Warn("index entry has no deck record", "id", entry.ID)
				continue
			}
			return nil, err
		}
		due = append(due, dueInDeck(deck, now)...)
	}
	return due, nil
}

func dueInDeck(deck *domain.Deck, now time.Time) []domain.DueCard {
	due := []domain.DueCard{}
	for _, card := range deck.Cards {
		if card.IsDue(now) {
			due = append(due, domain.DueCard{
				Card:     card,
				DeckID:   deck.ID,
				DeckName: deck.Name,
			})
		}
	}
	return due
}

// Dashboard aggregates the whole collection with a full scan of every deck:
// totals, due-today and mastered counts, per-deck breakdowns, plus the
// streak and activity histogram from the global stats.
func (s *Service) Dashboard() (*domain.Dashboard, error) {
	idx, err := s.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	now := s.now()

	dash := &domain.Dashboard{
		Streak:   idx.Stats.Streak,
		Decks:    []domain.DeckOverview{},
		Activity: idx.Stats.Activity,
	}
	if dash.Activity == nil {
		dash.Activity = map[string]int{}
	}

	for _, entry := range idx.Decks {
		deck, err := s.store.LoadDeck(entry.ID)
		if err != nil {
			if errors.Is(err, domain.ErrDeckNotFound) {
				s.log.Warn("index entry has no deck record", "id", entry.ID)
				continue
			}
			return nil, err
		}

		overview := domain.DeckOverview{
			ID:        entry.ID,
			Name:      entry.Name,
			Source:    entry.Source,
			CardCount: len(deck.Cards),
		}
		for _, card := range deck.Cards {
			dash.TotalCards++
			if card.Due == nil {
				overview.New++
				dash.DueToday++
			} else if card.IsDue(now) {
				overview.Due++
				dash.DueToday++
			}
			if card.Mastered() {
				overview.Mastered++
				dash.Mastered++
			}
		}
		dash.Decks = append(dash.Decks, overview)
	}
	return dash, nil
}
