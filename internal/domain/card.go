package domain

import "time"

// Scheduling defaults applied to every card at deck creation.
const (
	DefaultInterval = 1
	DefaultEase     = 2.5
)

// MasteredInterval is the review interval (in days) beyond which a card
// counts as mastered.
const MasteredInterval = 21

// CardContent is the raw front/back pair an external content source
// supplies; the core makes no assumptions about where the text came from.
type CardContent struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Card is a single front/back flashcard together with its SM-2 scheduling
// state. Due is nil until the first review, which means the card is due
// immediately.
type Card struct {
	ID         string     `json:"id" validate:"required"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Interval   int        `json:"interval" validate:"gte=1"`
	Ease       float64    `json:"ease" validate:"gte=1.3"`
	Due        *time.Time `json:"due"`
	Reps       int        `json:"reps" validate:"gte=0"`
	Created    time.Time  `json:"created"`
	LastReview *time.Time `json:"lastReview,omitempty"`
	LastRating *int       `json:"lastRating,omitempty"`
}

// IsDue reports whether the card should be reviewed: never reviewed, or its
// due date has arrived or passed.
func (c Card) IsDue(now time.Time) bool {
	return c.Due == nil || !c.Due.After(now)
}

// Mastered reports whether the card's interval has grown past the mastery
// threshold.
func (c Card) Mastered() bool {
	return c.Interval > MasteredInterval
}

// Deck is a named, ordered collection of cards sharing a provenance tag.
// Card IDs are deck-local ("{deckID}-{index}").
type Deck struct {
	ID      string    `json:"id" validate:"required"`
	Name    string    `json:"name" validate:"required"`
	Source  string    `json:"source"`
	Cards   []Card    `json:"cards" validate:"dive"`
	Created time.Time `json:"created"`
}

// FindCard returns a pointer into the deck's card slice for the given card
// ID, or nil if the deck has no such card.
func (d *Deck) FindCard(cardID string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == cardID {
			return &d.Cards[i]
		}
	}
	return nil
}

// Summary projects the deck down to its index entry.
func (d *Deck) Summary() DeckSummary {
	return DeckSummary{
		ID:        d.ID,
		Name:      d.Name,
		Source:    d.Source,
		CardCount: len(d.Cards),
		Created:   d.Created,
	}
}

// DeckSummary is the index projection of a deck, stored separately from the
// full card data for fast listing.
type DeckSummary struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CardCount int       `json:"cardCount"`
	Created   time.Time `json:"created"`
}

// Stats is the global review record: a monotonic review counter, the
// consecutive-day streak, the date (YYYY-MM-DD) of the most recent study
// day, and a per-day review histogram. Created empty on first use, never
// deleted.
type Stats struct {
	TotalReviews int            `json:"totalReviews"`
	Streak       int            `json:"streak"`
	LastStudy    string         `json:"lastStudy,omitempty"`
	Activity     map[string]int `json:"activity,omitempty"`
}

// Index is the root record: deck summaries plus global stats. The two live
// together so a single load serves both listing and the dashboard.
type Index struct {
	Decks []DeckSummary `json:"decks"`
	Stats Stats         `json:"stats"`
}

// NewIndex returns an empty index whose decks slice marshals as [] rather
// than null.
func NewIndex() *Index {
	return &Index{Decks: []DeckSummary{}}
}

// DueCard is a card augmented with its owning deck's identity, as returned
// by due-card queries.
type DueCard struct {
	Card
	DeckID   string `json:"deck_id"`
	DeckName string `json:"deck_name"`
}

// DeckOverview is the per-deck block of the dashboard.
type DeckOverview struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Source    string `json:"source"`
	CardCount int    `json:"cardCount"`
	Due       int    `json:"due"`
	New       int    `json:"new"`
	Mastered  int    `json:"mastered"`
}

// Dashboard aggregates the whole collection, computed by a full scan.
type Dashboard struct {
	TotalCards int            `json:"totalCards"`
	DueToday   int            `json:"dueToday"`
	Mastered   int            `json:"mastered"`
	Streak     int            `json:"streak"`
	Decks      []DeckOverview `json:"decks"`
	Activity   map[string]int `json:"activity"`
}
