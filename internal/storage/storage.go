// Package storage persists the task collection under the fixed "todos" key,
// either in a SQLite table or in a todos.json file.
package storage

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"tasktracker/internal/todo"
)

// Key is the storage identifier shared by every backend.
const Key = "todos"

var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Store loads and saves the whole collection.
type Store interface {
	Load() ([]todo.Task, error)
	Save(tasks []todo.Task) error
	Close() error
}

// Open returns the backend named by kind rooted at path.
func Open(kind, path string, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	switch kind {
	case BackendSQLite, "":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Debug("opened store", "backend", BackendSQLite, "path", path)
		return s, nil
	case BackendJSON:
		s, err := OpenJSON(path)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		logger.Debug("opened store", "backend", BackendJSON, "path", path)
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
}
