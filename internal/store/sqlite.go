package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot       INTEGER PRIMARY KEY,
	saved_at   TEXT NOT NULL,
	session_id TEXT NOT NULL,
	document   TEXT NOT NULL
)`

// SQLiteStore keeps every slot as a row in a single database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" is accepted.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, slot int, doc Document) error {
	doc = stamp(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, saved_at, session_id, document) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			saved_at = excluded.saved_at,
			session_id = excluded.session_id,
			document = excluded.document`,
		normaliseSlot(slot), doc.SavedAt.UTC().Format(time.RFC3339Nano), doc.SessionID.String(), string(data))
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot int) (Document, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM saves WHERE slot = ?", normaliseSlot(slot)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %d", ErrSlotNotFound, normaliseSlot(slot))
	}
	if err != nil {
		return Document{}, fmt.Errorf("read save: %w", err)
	}
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Document{}, fmt.Errorf("decode slot %d: %w", normaliseSlot(slot), err)
	}
	return doc, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slot, document FROM saves ORDER BY saved_at DESC, slot")
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			slot int
			data string
		)
		if err := rows.Scan(&slot, &data); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		var doc Document
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			continue
		}
		entries = append(entries, entryFor(slot, doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
