package storage

import (
	"github.com/studybuddy/studydeck/internal/domain"
)

// Store is the durable record store: one root record (deck index + global
// stats) and one record per deck, addressed by deck ID. Every save is a
// full-document overwrite; there are no multi-record transactions, so a
// crash between two related writes can leave the records inconsistent (see
// Reconcile).
type Store interface {
	// LoadIndex returns the root record, or a fresh empty index if none has
	// been written yet.
	LoadIndex() (*domain.Index, error)

	// SaveIndex overwrites the root record.
	SaveIndex(idx *domain.Index) error

	// LoadDeck returns the deck record for id, or an error wrapping
	// domain.ErrDeckNotFound if no such record exists.
	LoadDeck(id string) (*domain.Deck, error)

	// SaveDeck overwrites the deck's record, creating it if absent.
	SaveDeck(deck *domain.Deck) error

	// DeleteDeck removes the deck's record. Deleting an absent record is a
	// no-op, not an error.
	DeleteDeck(id string) error

	// DeckIDs lists the IDs of all deck records actually present, index
	// aside. Reconciliation uses it to find orphans.
	DeckIDs() ([]string, error)

	Close() error
}
