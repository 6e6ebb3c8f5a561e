// Package parser extracts flashcard content from plain-text card files.
// A card is a "Q:" line followed by an "A:" line; either field may continue
// over following lines, "---" separates cards, and a new "Q:" always starts
// a new card.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/studybuddy/studydeck/internal/domain"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
	separator   = "---"
)

type state int

const (
	seeking state = iota
	readingFront
	readingBack
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.CardContent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all cards. Cards without a
// question are dropped.
func Parse(r io.Reader) ([]domain.CardContent, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.CardContent
	var current domain.CardContent
	var block []string
	currentState := seeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch currentState {
		case readingFront:
			current.Front = content
		case readingBack:
			current.Back = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if current.Front != "" {
			cards = append(cards, current)
		}
		current = domain.CardContent{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == separator {
			finishCard()
			continue
		}

		switch {
		case strings.HasPrefix(line, frontPrefix):
			if currentState != seeking {
				finishCard()
			} else {
				flushBlock()
			}
			currentState = readingFront
			block = append(block, trimPrefix(line, frontPrefix))
		case strings.HasPrefix(line, backPrefix):
			flushBlock()
			currentState = readingBack
			block = append(block, trimPrefix(line, backPrefix))
		default:
			if currentState != seeking {
				block = append(block, line)
			}
		}
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

func trimPrefix(line, prefix string) string {
	content := line[len(prefix):]
	return strings.TrimPrefix(content, " ")
}
