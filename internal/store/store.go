// Package store persists session save slots.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/appengine-ltd/survive-it-weather/internal/climate"
	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

const FormatVersion = 1

var ErrSlotNotFound = errors.New("save slot not found")

// Document is one saved session.
type Document struct {
	FormatVersion int           `json:"format_version"`
	SavedAt       time.Time     `json:"saved_at"`
	SessionID     uuid.UUID     `json:"session_id"`
	Day           int           `json:"day"`
	Hour          int           `json:"hour"`
	Minute        int           `json:"minute"`
	Climate       climate.State `json:"climate"`
}

// Entry summarises a slot for listings.
type Entry struct {
	Slot      int
	SavedAt   time.Time
	SessionID uuid.UUID
	Day       int
	Hour      int
	Events    int
}

type Store interface {
	Save(ctx context.Context, slot int, doc Document) error
	Load(ctx context.Context, slot int) (Document, error)
	// List returns the stored slots, most recently saved first.
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg config.Config) (Store, error) {
	switch cfg.SaveBackend {
	case config.BackendFile, "":
		return NewFileStore(cfg.SaveDir)
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.SaveDir, "survive-it-weather.db"))
	default:
		return nil, fmt.Errorf("%w: save backend: %s", config.ErrInvalidConfig, cfg.SaveBackend)
	}
}

func normaliseSlot(slot int) int {
	if slot < 1 {
		return 1
	}
	return slot
}

func stamp(doc Document) Document {
	if doc.FormatVersion == 0 {
		doc.FormatVersion = FormatVersion
	}
	if doc.SavedAt.IsZero() {
		doc.SavedAt = time.Now().UTC()
	}
	if doc.Climate.Events == nil {
		doc.Climate.Events = []weather.Record{}
	}
	return doc
}

func entryFor(slot int, doc Document) Entry {
	return Entry{
		Slot:      slot,
		SavedAt:   doc.SavedAt,
		SessionID: doc.SessionID,
		Day:       doc.Day,
		Hour:      doc.Hour,
		Events:    len(doc.Climate.Events),
	}
}
