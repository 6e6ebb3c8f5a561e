package export

import (
	"strings"
	"testing"
	"time"

	"github.com/studybuddy/studydeck/internal/domain"
)

func sampleDeck() *domain.Deck {
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Deck{
		ID:      "chemistry-basics-a1b2c3",
		Name:    "Chemistry Basics",
		Source:  "manual",
		Created: created,
		Cards: []domain.Card{
			{ID: "chemistry-basics-a1b2c3-0", Front: "Symbol for gold?", Back: "Au", Interval: 1, Ease: 2.5, Created: created},
			{ID: "chemistry-basics-a1b2c3-1", Front: "What is a mole?", Back: "6.022e23 entities", Interval: 1, Ease: 2.5, Created: created},
			{ID: "chemistry-basics-a1b2c3-2", Front: "pH of pure water?", Back: "7", Interval: 1, Ease: 2.5, Created: created},
		},
	}
}

func TestQuizShape(t *testing.T) {
	deck := sampleDeck()
	questions := Questions(deck)

	if len(questions) != len(deck.Cards) {
		t.Fatalf("Expected %d questions, got %d", len(deck.Cards), len(questions))
	}
	for i, q := range questions {
		if q.Question != deck.Cards[i].Front {
			t.Errorf("Question %d: expected prompt %q, got %q", i, deck.Cards[i].Front, q.Question)
		}
		if len(q.Options) != 2 {
			t.Errorf("Question %d: expected exactly 2 options, got %d", i, len(q.Options))
		}
		if q.Options[0] != deck.Cards[i].Back || q.Options[1] != "I don't know" {
			t.Errorf("Question %d: unexpected options %v", i, q.Options)
		}
		if q.Correct != 0 {
			t.Errorf("Question %d: expected correct index 0, got %d", i, q.Correct)
		}
		if q.Explanation != "" {
			t.Errorf("Question %d: expected empty explanation, got %q", i, q.Explanation)
		}
	}
}

func TestFlashcardsPayload(t *testing.T) {
	out, err := Flashcards(sampleDeck())
	if err != nil {
		t.Fatalf("failed to render flashcards: %v", err)
	}
	if !strings.HasPrefix(out, `const DECK_TITLE = "Chemistry Basics";`) {
		t.Errorf("Unexpected title line: %s", out)
	}
	if !strings.Contains(out, "const CARDS = [") {
		t.Errorf("Expected CARDS array, got: %s", out)
	}
	if !strings.Contains(out, "Symbol for gold?") {
		t.Errorf("Expected card content preserved, got: %s", out)
	}
}

func TestQuizPayload(t *testing.T) {
	out, err := Quiz(sampleDeck())
	if err != nil {
		t.Fatalf("failed to render quiz: %v", err)
	}
	if !strings.HasPrefix(out, `const QUIZ_TITLE = "Chemistry Basics";`) {
		t.Errorf("Unexpected title line: %s", out)
	}
	if !strings.Contains(out, `"correct":0`) {
		t.Errorf("Expected correct index serialized, got: %s", out)
	}
}

func TestRenderTemplates(t *testing.T) {
	deck := sampleDeck()

	if _, err := Render(deck, TemplateFlashcards); err != nil {
		t.Errorf("flashcards template failed: %v", err)
	}
	if _, err := Render(deck, TemplateQuiz); err != nil {
		t.Errorf("quiz template failed: %v", err)
	}
	if _, err := Render(deck, "crossword"); err == nil {
		t.Error("Expected error for unknown template")
	}
}
