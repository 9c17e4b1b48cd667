package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atorrance/taskwell/internal/domain"
	"github.com/atorrance/taskwell/internal/forest"
)

// ForestStore reads and writes the task forest JSON file.
type ForestStore struct {
	path string
}

func NewForestStore(path string) *ForestStore {
	return &ForestStore{path: path}
}

// Load reads the forest file. A missing file is an empty forest, not an
// error: first run has nothing saved yet.
func (s *ForestStore) Load() (*forest.Forest, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return forest.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading task file: %w", err)
	}
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing task file %s: %w", s.path, err)
	}
	return recordsToForest(records)
}

// Save overwrites the forest file with the full forest.
func (s *ForestStore) Save(f *forest.Forest) error {
	data, err := json.MarshalIndent(forestToRecords(f), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding task file: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}

// EntryStore reads and writes the time entries JSON file.
type EntryStore struct {
	path string
}

func NewEntryStore(path string) *EntryStore {
	return &EntryStore{path: path}
}

func (s *EntryStore) Load() ([]*domain.TimeEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading time file: %w", err)
	}
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing time file %s: %w", s.path, err)
	}
	entries := make([]*domain.TimeEntry, 0, len(records))
	for _, rec := range records {
		e, err := recordToEntry(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *EntryStore) Save(entries []*domain.TimeEntry) error {
	records := make([]entryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, entryToRecord(e))
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding time file: %w", err)
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place, so a crash mid-write never truncates the existing file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
