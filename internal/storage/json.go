package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"tasktracker/internal/todo"
)

// JSONStore keeps the collection in a single todos.json file. A path that
// names a directory gets todos.json appended.
type JSONStore struct {
	path string
}

func OpenJSON(path string) (*JSONStore, error) {
	if path == "" {
		return nil, errors.New("json path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, Key+".json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load() ([]todo.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var tasks []todo.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save writes to a temp file and renames it over the previous file.
func (s *JSONStore) Save(tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) Close() error { return nil }
