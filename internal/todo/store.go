// Package todo provides the JSON-file todo store shared by the todo CLI and
// the agent's todo tools.
package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFile is the store filename inside the working directory.
const DefaultFile = "todos.json"

// Item is a single todo entry.
type Item struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// ErrInvalidIndex reports an out-of-range 1-based item number.
var ErrInvalidIndex = errors.New("invalid todo number")

// Store reads and writes a todos.json file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the given file path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFile
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns all items. A missing or empty file yields an empty list.
func (s *Store) Load() ([]Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return items, nil
}

// Save writes all items with two-space indentation, matching the on-disk
// format the todo CLI has always used.
func (s *Store) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}

// Add appends a new pending item and persists the list.
func (s *Store) Add(task string) error {
	items, err := s.Load()
	if err != nil {
		return err
	}
	items = append(items, Item{Task: task})
	return s.Save(items)
}

// Complete marks the 1-based item index done and returns its task text.
// Returns ErrInvalidIndex when index is out of range.
func (s *Store) Complete(index int) (string, error) {
	items, err := s.Load()
	if err != nil {
		return "", err
	}
	if index < 1 || index > len(items) {
		return "", ErrInvalidIndex
	}
	items[index-1].Done = true
	if err := s.Save(items); err != nil {
		return "", err
	}
	return items[index-1].Task, nil
}
