package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDeck checks a deck record against the struct constraints (required
// IDs, interval >= 1, ease >= 1.3). Stores call it after unmarshalling so
// malformed persisted data fails at load time rather than at point of use.
func ValidateDeck(d *Deck) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("deck %s: malformed record: %w", d.ID, err)
	}
	return nil
}

// ValidateIndex checks the root record's deck summaries.
func ValidateIndex(idx *Index) error {
	for i := range idx.Decks {
		if err := validate.Struct(&idx.Decks[i]); err != nil {
			return fmt.Errorf("index entry %d: malformed record: %w", i, err)
		}
	}
	return nil
}
