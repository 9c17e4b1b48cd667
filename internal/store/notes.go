package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atorrance/taskwell/internal/domain"
)

// NotesStore keeps one plain-text notes file per task and notes type under
// a single directory. Before an overwrite that actually changes content, a
// timestamped backup copy of the previous version is written alongside.
type NotesStore struct {
	dir string
}

func NewNotesStore(dir string) *NotesStore {
	return &NotesStore{dir: dir}
}

// Path returns the notes file path for a task, following the
// {ID1}_{sanitizedName}_{notesType}.txt pattern.
func (s *NotesStore) Path(task *domain.TaskItem, notesType domain.NotesType) string {
	name := fmt.Sprintf("%d_%s_%s.txt", task.ID1, sanitizeName(task.Name), notesType)
	return filepath.Join(s.dir, name)
}

// Read returns the notes content, or empty content when no file exists yet.
func (s *NotesStore) Read(task *domain.TaskItem, notesType domain.NotesType) (string, error) {
	data, err := os.ReadFile(s.Path(task, notesType))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading notes: %w", err)
	}
	return string(data), nil
}

// Write saves the notes content. When the file already exists with
// different content, the old version is first copied to a timestamped
// .bak file; an unchanged write is skipped entirely.
func (s *NotesStore) Write(task *domain.TaskItem, notesType domain.NotesType, content string, now time.Time) error {
	path := s.Path(task, notesType)
	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First write, nothing to back up.
	case err != nil:
		return fmt.Errorf("reading existing notes: %w", err)
	case bytes.Equal(existing, []byte(content)):
		return nil
	default:
		backup := fmt.Sprintf("%s.%s.bak", strings.TrimSuffix(path, ".txt"), now.Format("20060102-150405"))
		if err := os.WriteFile(backup, existing, 0644); err != nil {
			return fmt.Errorf("writing notes backup: %w", err)
		}
	}
	return writeFileAtomic(path, []byte(content))
}

// sanitizeName maps a task name to a filesystem-safe token. Anything
// outside letters, digits, dash and underscore collapses to an underscore.
func sanitizeName(name string) string {
	if name == "" {
		return "untitled"
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "untitled"
	}
	return out
}
