package storage

import (
	"fmt"
	"sort"

	"github.com/studybuddy/studydeck/internal/domain"
)

// Report lists the two directions of index/record drift an interrupted
// multi-step write can leave behind.
type Report struct {
	// Missing are index entries whose deck record does not exist.
	Missing []string
	// Orphans are deck records the index does not reference.
	Orphans []string
}

// Consistent reports whether the index and the deck records agree.
func (r *Report) Consistent() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0
}

// Reconcile compares the index against the deck records actually present
// and reports drift. It never modifies the store.
func Reconcile(s Store) (*Report, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	ids, err := s.DeckIDs()
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	indexed := make(map[string]bool, len(idx.Decks))

	report := &Report{}
	for _, entry := range idx.Decks {
		indexed[entry.ID] = true
		if !present[entry.ID] {
			report.Missing = append(report.Missing, entry.ID)
		}
	}
	for _, id := range ids {
		if !indexed[id] {
			report.Orphans = append(report.Orphans, id)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Orphans)
	return report, nil
}

// RebuildIndex regenerates the index from the deck records on disk, ordered
// by deck creation time, and persists it. Global stats are carried over
// untouched. This is the recovery path for drift found by Reconcile.
func RebuildIndex(s Store) (*domain.Index, error) {
	old, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	ids, err := s.DeckIDs()
	if err != nil {
		return nil, err
	}

	rebuilt := domain.NewIndex()
	rebuilt.Stats = old.Stats
	for _, id := range ids {
		deck, err := s.LoadDeck(id)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild index: %w", err)
		}
		rebuilt.Decks = append(rebuilt.Decks, deck.Summary())
	}
	sort.Slice(rebuilt.Decks, func(i, j int) bool {
		return rebuilt.Decks[i].Created.Before(rebuilt.Decks[j].Created)
	})

	if err := s.SaveIndex(rebuilt); err != nil {
		return nil, err
	}
	return rebuilt, nil
}
