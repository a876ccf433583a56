package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	dirName  = "mackerel-plugin-bird"
	fileName = "last"
)

// ErrCorrupt marks a state file that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt state file")

// Counter is the last observation of a cumulative counter.
type Counter struct {
	Value int64 `json:"value"`
	At    int64 `json:"at"`
}

// Counters maps metric names to their last observation.
type Counters map[string]Counter

// Store persists Counters as a single JSON document.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store rooted at workdir.
func NewStore(workdir string, logger *slog.Logger) *Store {
	return &Store{
		path:   filepath.Join(workdir, dirName, fileName),
		logger: logger,
	}
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted counters. A missing file is the first run and
// yields an empty map; an unreadable or corrupt file is logged and treated
// the same way.
func (s *Store) Load() (Counters, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	counters, err := s.read()
	if err != nil {
		s.logger.Warn("discarding previous state", "path", s.path, "error", err)
		return Counters{}, nil
	}

	return counters, nil
}

func (s *Store) read() (Counters, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Counters{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var counters Counters
	if err := json.Unmarshal(data, &counters); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if counters == nil {
		counters = Counters{}
	}

	return counters, nil
}

// Save replaces the state file with counters. The document is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save(counters Counters) error {
	data, err := json.Marshal(counters)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.logger.Debug("saved state", "path", s.path, "counters", len(counters))
	return nil
}
