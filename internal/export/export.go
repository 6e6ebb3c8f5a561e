// Package export renders a deck into one of the two fixed shapes the Canvas
// study templates consume: a flashcard set or a recall quiz. Both are
// emitted as JavaScript const declarations ready to inject into a template.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/studybuddy/studydeck/internal/domain"
)

// Template names accepted by Render.
const (
	TemplateFlashcards = "flashcards"
	TemplateQuiz       = "quiz"
)

// Question is one quiz item derived from a card. The transform is lossy and
// deterministic: the card's front becomes the prompt, the options are always
// the card's back followed by "I don't know", and the correct index is 0.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Render produces the JS payload for the named template.
func Render(deck *domain.Deck, template string) (string, error) {
	switch template {
	case TemplateFlashcards:
		return Flashcards(deck)
	case TemplateQuiz:
		return Quiz(deck)
	}
	return "", fmt.Errorf("unknown export template: %s", template)
}

// Flashcards renders the deck title and full card list, order preserved.
func Flashcards(deck *domain.Deck) (string, error) {
	title, err := json.Marshal(deck.Name)
	if err != nil {
		return "", fmt.Errorf("failed to encode deck title: %w", err)
	}
	cards, err := json.Marshal(deck.Cards)
	if err != nil {
		return "", fmt.Errorf("failed to encode cards for deck %s: %w", deck.ID, err)
	}
	return fmt.Sprintf("const DECK_TITLE = %s;\nconst CARDS = %s;", title, cards), nil
}

// Quiz renders every card as a two-option recall question.
func Quiz(deck *domain.Deck) (string, error) {
	title, err := json.Marshal(deck.Name)
	if err != nil {
		return "", fmt.Errorf("failed to encode quiz title: %w", err)
	}
	questions, err := json.Marshal(Questions(deck))
	if err != nil {
		return "", fmt.Errorf("failed to encode questions for deck %s: %w", deck.ID, err)
	}
	return fmt.Sprintf("const QUIZ_TITLE = %s;\nconst QUESTIONS = %s;", title, questions), nil
}

// Questions builds the quiz items for a deck, one per card in deck order.
func Questions(deck *domain.Deck) []Question {
	questions := make([]Question, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		questions = append(questions, Question{
			Question:    card.Front,
			Options:     []string{card.Back, "I don't know"},
			Correct:     0,
			Explanation: "",
		})
	}
	return questions
}
