package sm2

import (
	"math"
	"time"

	"github.com/studybuddy/studydeck/internal/domain"
)

// Rating is the user's recall quality for a reviewed card.
type Rating int

const (
	Again Rating = 0 // complete failure
	Hard  Rating = 1 // correct with difficulty
	Good  Rating = 2 // correct with some hesitation
	Easy  Rating = 3 // perfect recall
)

// Valid reports whether the rating is one of the four accepted values.
func (r Rating) Valid() bool {
	return r >= Again && r <= Easy
}

func (r Rating) String() string {
	switch r {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	}
	return "invalid"
}

// Minimum ease factor; ease never drops below this.
const minEase = 1.3

// Review applies the SM-2 algorithm to a card and returns the rescheduled
// copy. It is a pure function of (card, rating, now): the input card is not
// modified, and an invalid rating returns it unchanged alongside
// domain.ErrInvalidRating.
//
// Interval growth truncates toward zero, and the ease factor is rounded to
// two decimals on the returned card, so rescheduling previously persisted
// state reproduces the original schedule exactly.
func Review(card domain.Card, rating Rating, now time.Time) (domain.Card, error) {
	if !rating.Valid() {
		return card, domain.ErrInvalidRating
	}

	interval := card.Interval
	ease := card.Ease
	reps := card.Reps

	switch rating {
	case Again:
		// Complete forgetting: restart the schedule, penalize ease.
		interval = 1
		ease = math.Max(minEase, ease-0.2)
		reps = 0
	case Hard:
		reps++
		interval = max(1, int(float64(interval)*1.2))
		ease = math.Max(minEase, ease-0.15)
	case Good:
		reps++
		switch reps {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = int(float64(interval) * ease)
		}
	case Easy:
		reps++
		if reps == 1 {
			interval = 4
		} else {
			interval = int(float64(interval) * ease * 1.3)
		}
		ease += 0.15
	}

	card.Interval = interval
	card.Ease = math.Round(ease*100) / 100
	card.Reps = reps

	due := now.Add(time.Duration(interval) * 24 * time.Hour)
	card.Due = &due
	card.LastReview = &now
	lastRating := int(rating)
	card.LastRating = &lastRating

	return card, nil
}
