package sm2

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/studybuddy/studydeck/internal/domain"
)

func newCard() domain.Card {
	return domain.Card{
		ID:       "test-0",
		Front:    "front",
		Back:     "back",
		Interval: domain.DefaultInterval,
		Ease:     domain.DefaultEase,
		Reps:     0,
	}
}

func TestReviewRatings(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Again resets the schedule", func(t *testing.T) {
		card := newCard()
		card.Interval = 10
		card.Ease = 2.5
		card.Reps = 4

		updated, err := Review(card, Again, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Interval != 1 {
			t.Errorf("Expected interval to reset to 1, got %d", updated.Interval)
		}
		if updated.Ease != 2.3 {
			t.Errorf("Expected ease to drop to 2.3, got %.2f", updated.Ease)
		}
		if updated.Reps != 0 {
			t.Errorf("Expected reps to reset to 0, got %d", updated.Reps)
		}
	})

	t.Run("Hard grows interval slowly and penalizes ease", func(t *testing.T) {
		card := newCard()
		card.Interval = 10
		card.Reps = 3

		updated, err := Review(card, Hard, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Interval != 12 {
			t.Errorf("Expected interval 12 (10*1.2), got %d", updated.Interval)
		}
		if updated.Ease != 2.35 {
			t.Errorf("Expected ease 2.35, got %.2f", updated.Ease)
		}
		if updated.Reps != 4 {
			t.Errorf("Expected reps 4, got %d", updated.Reps)
		}
	})

	t.Run("Good leaves ease unchanged", func(t *testing.T) {
		card := newCard()
		updated, err := Review(card, Good, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Ease != card.Ease {
			t.Errorf("Expected ease unchanged at %.2f, got %.2f", card.Ease, updated.Ease)
		}
	})

	t.Run("Easy first review jumps to 4 days", func(t *testing.T) {
		card := newCard()
		updated, err := Review(card, Easy, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Interval != 4 {
			t.Errorf("Expected interval 4, got %d", updated.Interval)
		}
		if updated.Ease != 2.65 {
			t.Errorf("Expected ease 2.65, got %.2f", updated.Ease)
		}
	})

	t.Run("review stamps due and lastReview", func(t *testing.T) {
		card := newCard()
		updated, err := Review(card, Good, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantDue := now.Add(24 * time.Hour)
		if updated.Due == nil || !updated.Due.Equal(wantDue) {
			t.Errorf("Expected due %v, got %v", wantDue, updated.Due)
		}
		if updated.LastReview == nil || !updated.LastReview.Equal(now) {
			t.Errorf("Expected lastReview %v, got %v", now, updated.LastReview)
		}
		if updated.LastRating == nil || *updated.LastRating != int(Good) {
			t.Errorf("Expected lastRating %d, got %v", int(Good), updated.LastRating)
		}
	})
}

func TestReviewGoodProgression(t *testing.T) {
	// Three Good ratings from defaults walk the interval 1 -> 1 -> 6 -> 15.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := newCard()

	expected := []int{1, 6, 15}
	for i, want := range expected {
		var err error
		card, err = Review(card, Good, now)
		if err != nil {
			t.Fatalf("review %d: unexpected error: %v", i+1, err)
		}
		if card.Interval != want {
			t.Errorf("After %d Good reviews expected interval %d, got %d", i+1, want, card.Interval)
		}
		if card.Reps != i+1 {
			t.Errorf("After %d Good reviews expected reps %d, got %d", i+1, i+1, card.Reps)
		}
	}
}

func TestReviewEaseFloor(t *testing.T) {
	// No sequence of ratings can push ease below 1.3.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sequences := [][]Rating{
		{Again, Again, Again, Again, Again, Again, Again, Again},
		{Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard, Hard},
		{Again, Hard, Again, Hard, Again, Hard, Again, Hard},
		{Easy, Again, Again, Again, Again, Again, Again, Again, Again},
	}

	for _, seq := range sequences {
		card := newCard()
		for _, rating := range seq {
			var err error
			card, err = Review(card, rating, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if card.Ease < 1.3 {
				t.Fatalf("Ease dropped below floor: %.2f after %v", card.Ease, seq)
			}
		}
	}
}

func TestReviewRepsTransitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		name     string
		rating   Rating
		reps     int
		expected int
	}{
		{"Again resets", Again, 7, 0},
		{"Hard increments", Hard, 7, 8},
		{"Good increments", Good, 0, 1},
		{"Easy increments", Easy, 2, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := newCard()
			card.Reps = tc.reps
			updated, err := Review(card, tc.rating, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Reps != tc.expected {
				t.Errorf("Expected reps %d, got %d", tc.expected, updated.Reps)
			}
		})
	}
}

func TestReviewIntervalMonotonicOnSuccess(t *testing.T) {
	// For Good/Easy with reps >= 2 the interval never shrinks.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, rating := range []Rating{Good, Easy} {
		for _, interval := range []int{1, 6, 15, 40, 365} {
			card := newCard()
			card.Interval = interval
			card.Reps = 2
			card.Ease = 1.3

			updated, err := Review(card, rating, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Interval < interval {
				t.Errorf("Rating %s shrank interval %d to %d", rating, interval, updated.Interval)
			}
		}
	}
}

func TestReviewTruncatesInterval(t *testing.T) {
	// 13 * 2.5 = 32.5 truncates to 32, never rounds up.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := newCard()
	card.Interval = 13
	card.Reps = 5

	updated, err := Review(card, Good, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Interval != 32 {
		t.Errorf("Expected truncated interval 32, got %d", updated.Interval)
	}
}

func TestReviewIsDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := newCard()
	card.Interval = 9
	card.Ease = 2.15
	card.Reps = 3

	for _, rating := range []Rating{Again, Hard, Good, Easy} {
		first, err := Review(card, rating, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Review(card, rating, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Interval != second.Interval || first.Ease != second.Ease || first.Reps != second.Reps {
			t.Errorf("Rating %s not deterministic: %+v vs %+v", rating, first, second)
		}
	}
}

func TestReviewInvalidRating(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := newCard()
	card.Interval = 5
	card.Reps = 2

	for _, rating := range []Rating{-1, 4, 99} {
		updated, err := Review(card, rating, now)
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("Expected ErrInvalidRating for %d, got %v", rating, err)
		}
		if updated.Interval != card.Interval || updated.Reps != card.Reps || updated.Due != nil {
			t.Errorf("Expected card unchanged on invalid rating %d, got %+v", rating, updated)
		}
	}
}

func TestReviewEaseRounding(t *testing.T) {
	// Persisted ease carries two decimals; successive Easy reviews must not
	// accumulate binary-float noise.
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	card := newCard()
	for i := 0; i < 10; i++ {
		var err error
		card, err = Review(card, Easy, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rounded := math.Round(card.Ease*100) / 100
		if card.Ease != rounded {
			t.Errorf("Ease %v not rounded to two decimals", card.Ease)
		}
	}
}
