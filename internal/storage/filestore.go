package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studybuddy/studydeck/internal/domain"
)

// indexFile is the root record's filename inside the data directory.
const indexFile = "decks.json"

// FileStore keeps each record as a pretty-printed JSON document in a single
// data directory: decks.json for the root record and <deckID>.json per deck.
// The directory is created lazily on first write. Nothing is cached; every
// operation re-reads from disk.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory does not need
// to exist yet.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}
	return nil
}

// writeRecord writes a full document via a temp file and rename, so a crash
// mid-write never leaves a truncated record behind.
func (s *FileStore) writeRecord(name string, v any) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for record %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for record %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit record %s: %w", name, err)
	}
	return nil
}

// LoadIndex reads the root record, returning an empty index if it has never
// been written.
func (s *FileStore) LoadIndex() (*domain.Index, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewIndex(), nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx domain.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	if idx.Decks == nil {
		idx.Decks = []domain.DeckSummary{}
	}
	if err := domain.ValidateIndex(&idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// SaveIndex overwrites the root record.
func (s *FileStore) SaveIndex(idx *domain.Index) error {
	return s.writeRecord(indexFile, idx)
}

// LoadDeck reads a deck record by ID.
func (s *FileStore) LoadDeck(id string) (*domain.Deck, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck %s: %w", id, domain.ErrDeckNotFound)
		}
		return nil, fmt.Errorf("failed to read deck %s: %w", id, err)
	}

	var deck domain.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck %s: %w", id, err)
	}
	if err := domain.ValidateDeck(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// SaveDeck overwrites the deck's record.
func (s *FileStore) SaveDeck(deck *domain.Deck) error {
	return s.writeRecord(deck.ID+".json", deck)
}

// DeleteDeck removes the deck's record; absent records are a no-op.
func (s *FileStore) DeleteDeck(id string) error {
	err := os.Remove(filepath.Join(s.dir, id+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// DeckIDs lists every deck record present in the data directory.
func (s *FileStore) DeckIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list data directory %s: %w", s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == indexFile || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }
