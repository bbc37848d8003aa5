package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	filePrefix = "survive-it-weather-save-"
	fileSuffix = ".json"
)

// FileStore keeps one indented JSON file per slot in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

// PathForSlot is the file a slot is written to.
func (s *FileStore) PathForSlot(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", filePrefix, normaliseSlot(slot), fileSuffix))
}

func (s *FileStore) Save(ctx context.Context, slot int, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(stamp(doc), "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(s.PathForSlot(slot), data, 0o600); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, slot int) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	path := s.PathForSlot(slot)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, fmt.Errorf("%w: %d", ErrSlotNotFound, normaliseSlot(slot))
	}
	if err != nil {
		return Document{}, fmt.Errorf("read save: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// List skips files it cannot read or parse.
func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	entries := make([]Entry, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), filePrefix), fileSuffix)
		slot, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		entries = append(entries, entryFor(slot, doc))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}

func (s *FileStore) Close() error { return nil }
