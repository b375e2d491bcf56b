// Package state persists the end timestamp of the most recently submitted
// time entry. The record is a single RFC 3339 line in a plain text file so
// it stays inspectable and trivially shared with the watcher process.
package state

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"synk/internal/errors"
)

const lastEntryFile = "laststop"

// Store reads and writes the last-entry record.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given state directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the full path of the record file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, lastEntryFile)
}

// Read returns the recorded end timestamp of the last submitted entry.
// A missing or corrupt record is reported as ok=false without an error:
// the flow treats both as "no prior entry". Errors are reserved for
// failures reading an existing, readable-looking file.
func (s *Store) Read() (time.Time, bool, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.NewStateError("read last entry", err)
	}

	stamp, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		// Corrupt record, treat as absent.
		return time.Time{}, false, nil
	}
	return stamp, true, nil
}

// Write atomically replaces the record with the given timestamp.
func (s *Store) Write(stamp time.Time) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.NewStateError("create state directory", err)
	}

	data := []byte(stamp.Format(time.RFC3339) + "\n")

	// Atomic write: temp file then rename.
	tmpPath := s.Path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return errors.NewStateError("write last entry", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		_ = os.Remove(tmpPath)
		return errors.NewStateError("replace last entry", err)
	}
	return nil
}
