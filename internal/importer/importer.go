// Package importer turns a directory (or git repo) of Q:/A: card files into
// a deck. It is a content collaborator: all it hands the core is front/back
// text plus a provenance tag.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/studybuddy/studydeck/internal/domain"
	"github.com/studybuddy/studydeck/internal/gitsource"
	"github.com/studybuddy/studydeck/internal/parser"
	"github.com/studybuddy/studydeck/internal/study"
)

// Importer walks card sources and creates decks through the study service.
type Importer struct {
	svc      *study.Service
	log      *slog.Logger
	cacheDir string
}

// New returns an importer. cacheDir is where git sources are cloned.
func New(svc *study.Service, log *slog.Logger, cacheDir string) *Importer {
	return &Importer{svc: svc, log: log, cacheDir: cacheDir}
}

// Import reads every .md file under the source (a local directory or a git
// URL), parses the cards, and creates one deck named name from them. The
// deck's source tag records where the content came from.
func (i *Importer) Import(source, name string) (*domain.Deck, error) {
	dir := source
	tag := "local"

	if gitsource.IsGitURL(source) {
		localPath, err := gitsource.LocalPath(i.cacheDir, source)
		if err != nil {
			return nil, err
		}
		if err := gitsource.Sync(source, localPath); err != nil {
			return nil, err
		}
		dir = localPath
		tag = "git"
	}

	cards, err := i.collectCards(dir)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no cards found under %s", source)
	}

	deck, err := i.svc.CreateDeck(name, tag, cards)
	if err != nil {
		return nil, err
	}
	i.log.Info("import complete", "source", source, "deck", deck.ID, "cards", len(deck.Cards))
	return deck, nil
}

// collectCards walks dir for markdown card files, accumulating parsed cards
// in walk order so deck order is stable across imports.
func (i *Importer) collectCards(dir string) ([]domain.CardContent, error) {
	var cards []domain.CardContent

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip the clone's own metadata.
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		fileCards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			return fmt.Errorf("error parsing %s: %w", path, parseErr)
		}
		if len(fileCards) > 0 {
			i.log.Info("parsed card file", "path", path, "cards", len(fileCards))
			cards = append(cards, fileCards...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", dir, err)
	}
	return cards, nil
}
