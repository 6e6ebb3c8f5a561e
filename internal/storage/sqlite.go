package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studybuddy/studydeck/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// indexRecordID keys the root record inside the records table. Deck IDs are
// slug-plus-hash strings and can never collide with it.
const indexRecordID = "index"

// SQLiteStore implements Store on a single-file sqlite database, keeping the
// same JSON documents the FileStore writes but upserted into a records
// table. Swapping it in touches nothing above the Store interface.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens the database at dsn, creating it and applying the schema
// if needed.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{conn: db}, nil
}

func (s *SQLiteStore) saveRecord(id string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", id, err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO records (id, body) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body
	`, id, string(body))
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) loadRecord(id string) ([]byte, error) {
	var body string
	err := s.conn.QueryRow(`SELECT body FROM records WHERE id = ?`, id).Scan(&body)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// LoadIndex reads the root record, returning an empty index if it has never
// been written.
func (s *SQLiteStore) LoadIndex() (*domain.Index, error) {
	body, err := s.loadRecord(indexRecordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewIndex(), nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx domain.Index
	if err := json.Unmarshal(body, &idx); err != nil {
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
func (s *SQLiteStore) SaveIndex(idx *domain.Index) error {
	return s.saveRecord(indexRecordID, idx)
}

// LoadDeck reads a deck record by ID.
func (s *SQLiteStore) LoadDeck(id string) (*domain.Deck, error) {
	body, err := s.loadRecord(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("deck %s: %w", id, domain.ErrDeckNotFound)
		}
		return nil, fmt.Errorf("failed to read deck %s: %w", id, err)
	}

	var deck domain.Deck
	if err := json.Unmarshal(body, &deck); err != nil {
		return nil, fmt.Errorf("failed to decode deck %s: %w", id, err)
	}
	if err := domain.ValidateDeck(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// SaveDeck overwrites the deck's record.
func (s *SQLiteStore) SaveDeck(deck *domain.Deck) error {
	return s.saveRecord(deck.ID, deck)
}

// DeleteDeck removes the deck's record; absent records are a no-op.
func (s *SQLiteStore) DeleteDeck(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// DeckIDs lists every deck record present in the database.
func (s *SQLiteStore) DeckIDs() ([]string, error) {
	rows, err := s.conn.Query(`SELECT id FROM records WHERE id <> ? ORDER BY id`, indexRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan deck record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list deck records: %w", err)
	}
	return ids, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
