package domain

import "errors"

// Sentinel errors surfaced by the store and the study service. Callers
// check them with errors.Is; none of them is fatal to the process.
var (
	// ErrDeckNotFound means the deck ID has no backing record.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound means the deck exists but has no card with that ID.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating means the review rating was outside {0,1,2,3}. No
	// state is changed when it is returned.
	ErrInvalidRating = errors.New("invalid rating")
)
