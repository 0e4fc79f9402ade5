package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrCorrupt is returned when the preferences file is not a JSON object.
var ErrCorrupt = errors.New("corrupt preferences file")

// KV is a string-keyed durable store scoped to the current user.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set overwrites the value for key.
	Set(key, value string) error
}

// JSONStorage implements KV using a single JSON object file.
type JSONStorage struct {
	path   string
	logger *slog.Logger
}

// NewJSONStorage creates a new JSONStorage with the given file path.
// A nil logger discards.
func NewJSONStorage(path string, logger *slog.Logger) *JSONStorage {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &JSONStorage{path: path, logger: logger}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// BackupPath is where a corrupt preferences file is moved before rewriting.
func (s *JSONStorage) BackupPath() string {
	return s.path + ".bak"
}

// Get reads a single key. A missing file reads as an absent key.
func (s *JSONStorage) Get(key string) (string, bool, error) {
	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set writes a single key, keeping every other key in the file.
// Creates the directory if it doesn't exist. A corrupt file is moved to
// BackupPath and replaced by a file holding only this key.
func (s *JSONStorage) Set(key, value string) error {
	values, err := s.load()
	if errors.Is(err, ErrCorrupt) {
		if err := os.Rename(s.path, s.BackupPath()); err != nil {
			return fmt.Errorf("back up %s: %w", s.path, err)
		}
		s.logger.Warn("preferences file was corrupt, starting over",
			"path", s.path, "backup", s.BackupPath(), "err", err)
		values = map[string]string{}
	} else if err != nil {
		return err
	}
	values[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

func (s *JSONStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", s.path, ErrCorrupt, err)
	}
	return values, nil
}

// DefaultJSONPath returns the default preferences path: ~/.config/sites/preferences.json
func DefaultJSONPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "preferences.json"), nil
}

// DefaultConfigDir returns ~/.config/sites.
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "sites"), nil
}
