package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appengine-ltd/survive-it-weather/internal/climate"
	"github.com/appengine-ltd/survive-it-weather/internal/config"
	"github.com/appengine-ltd/survive-it-weather/internal/weather"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	sqlStore, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlStore.Close() })
	return map[string]Store{"file": fileStore, "sqlite": sqlStore}
}

func sampleDocument(day int, savedAt time.Time) Document {
	return Document{
		SavedAt:   savedAt,
		SessionID: uuid.New(),
		Day:       day,
		Hour:      14,
		Minute:    30,
		Climate: climate.State{Events: []weather.Record{
			{Name: "RainStormEvent", Severity: 1.1, Duration: 2, HoursUntil: 0, Priority: 3},
			{Name: "BlizzardEvent", Severity: 0.4, Duration: 1, HoursUntil: 6, Priority: 0},
		}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doc := sampleDocument(3, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
			if err := s.Save(ctx, 2, doc); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := s.Load(ctx, 2)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.FormatVersion != FormatVersion || !got.SavedAt.Equal(doc.SavedAt) || got.SessionID != doc.SessionID {
				t.Fatalf("envelope mismatch: %+v", got)
			}
			if got.Day != 3 || got.Hour != 14 || got.Minute != 30 {
				t.Fatalf("clock mismatch: %+v", got)
			}
			if len(got.Climate.Events) != 2 || got.Climate.Events[1] != doc.Climate.Events[1] {
				t.Fatalf("climate mismatch: %+v", got.Climate)
			}
		})
	}
}

func TestLoadMissingSlot(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(context.Background(), 7); !errors.Is(err, ErrSlotNotFound) {
				t.Fatalf("expected ErrSlotNotFound, got %v", err)
			}
		})
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(ctx, 1, sampleDocument(1, time.Time{})); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Save(ctx, 1, sampleDocument(9, time.Time{})); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := s.Load(ctx, 1)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.Day != 9 || got.SavedAt.IsZero() {
				t.Fatalf("expected overwritten slot with a timestamp, got %+v", got)
			}
			entries, err := s.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(entries) != 1 {
				t.Fatalf("expected one slot, got %d", len(entries))
			}
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for slot, offset := range map[int]time.Duration{1: time.Hour, 2: 3 * time.Hour, 3: 2 * time.Hour} {
				if err := s.Save(ctx, slot, sampleDocument(slot, base.Add(offset))); err != nil {
					t.Fatalf("save: %v", err)
				}
			}
			entries, err := s.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(entries) != 3 || entries[0].Slot != 2 || entries[1].Slot != 3 || entries[2].Slot != 1 {
				t.Fatalf("unexpected order: %+v", entries)
			}
			if entries[0].Events != 2 {
				t.Fatalf("expected event count in entry, got %d", entries[0].Events)
			}
		})
	}
}

func TestFileStoreWritesPrivateFiles(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	if err := s.Save(context.Background(), 0, sampleDocument(1, time.Time{})); err != nil {
		t.Fatalf("save: %v", err)
	}
	path := s.PathForSlot(1)
	if filepath.Base(path) != "survive-it-weather-save-1.json" {
		t.Fatalf("unexpected path %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %o", info.Mode().Perm())
	}
}

func TestFileStoreListSkipsCorruptFiles(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	if err := os.WriteFile(s.PathForSlot(4), []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Save(context.Background(), 5, sampleDocument(1, time.Time{})); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Slot != 5 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if _, err := s.Load(context.Background(), 4); err == nil || errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.SaveDir = t.TempDir()

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("expected FileStore, got %T", s)
	}

	cfg.SaveBackend = config.BackendSQLite
	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteStore); !ok {
		t.Fatalf("expected SQLiteStore, got %T", s)
	}

	cfg.SaveBackend = "redis"
	if _, err := Open(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
