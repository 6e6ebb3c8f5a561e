package study

import (
	"fmt"

	"github.com/studybuddy/studydeck/internal/domain"
	"github.com/studybuddy/studydeck/internal/sm2"
)

// CreateDeck builds a deck from raw card content, every card starting at the
// scheduling defaults (interval 1, ease 2.5, due immediately), persists the
// deck record and then its index entry. The deck-then-index order is
// deliberate: a crash in between leaves an orphaned deck record, which
// RebuildIndex can recover, rather than an index entry pointing at nothing.
func (s *Service) CreateDeck(name, source string, cards []domain.CardContent) (*domain.Deck, error) {
	created := s.now()
	deckID := generateDeckID(name, created)

	deck := &domain.Deck{
		ID:      deckID,
		Name:    name,
		Source:  source,
		Cards:   make([]domain.Card, 0, len(cards)),
		Created: created,
	}
	for i, c := range cards {
		deck.Cards = append(deck.Cards, domain.Card{
			ID:       fmt.Sprintf("%s-%d", deckID, i),
			Front:    c.Front,
			Back:     c.Back,
			Interval: domain.DefaultInterval,
			Ease:     domain.DefaultEase,
			Reps:     0,
			Created:  created,
		})
	}

	if err := s.store.SaveDeck(deck); err != nil {
		return nil, err
	}

	idx, err := s.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	idx.Decks = append(idx.Decks, deck.Summary())
	if err := s.store.SaveIndex(idx); err != nil {
		return nil, err
	}

	s.log.Info("deck created", "id", deckID, "name", name, "source", source, "cards", len(deck.Cards))
	return deck, nil
}

// DeleteDeck removes the deck record and its index entry. Deleting a deck
// that does not exist is a no-op; the index is persisted either way.
func (s *Service) DeleteDeck(id string) error {
	if err := s.store.DeleteDeck(id); err != nil {
		return err
	}

	idx, err := s.store.LoadIndex()
	if err != nil {
		return err
	}
	kept := idx.Decks[:0]
	for _, entry := range idx.Decks {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	idx.Decks = kept
	if err := s.store.SaveIndex(idx); err != nil {
		return err
	}

	s.log.Info("deck deleted", "id", id)
	return nil
}

// ReviewCard applies the scheduler to one card, persists the updated deck,
// and then records the review in the global stats (review counter, streak,
// activity histogram). Returns the rescheduled card.
func (s *Service) ReviewCard(deckID, cardID string, rating sm2.Rating) (*domain.Card, error) {
	if !rating.Valid() {
		return nil, fmt.Errorf("rating %d: %w", rating, domain.ErrInvalidRating)
	}

	deck, err := s.store.LoadDeck(deckID)
	if err != nil {
		return nil, err
	}
	card := deck.FindCard(cardID)
	if card == nil {
		return nil, fmt.Errorf("card %s in deck %s: %w", cardID, deckID, domain.ErrCardNotFound)
	}

	now := s.now()
	updated, err := sm2.Review(*card, rating, now)
	if err != nil {
		return nil, err
	}
	*card = updated

	if err := s.store.SaveDeck(deck); err != nil {
		return nil, err
	}

	idx, err := s.store.LoadIndex()
	if err != nil {
		return nil, err
	}
	recordReview(&idx.Stats, now)
	if err := s.store.SaveIndex(idx); err != nil {
		return nil, err
	}

	s.log.Info("card reviewed",
		"deck", deckID,
		"card", cardID,
		"rating", rating.String(),
		"interval", updated.Interval,
		"ease", updated.Ease,
	)
	return &updated, nil
}
