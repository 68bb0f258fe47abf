package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists the history list as one JSON document on the local
// filesystem, the embedded-host analog of the browser's local storage.
type FileStore struct {
	path string
}

// NewFileStore initializes a FileStore at the given path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history: file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: ensure directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored list. A missing file yields an empty history.
func (s *FileStore) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: read file: %w", err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("history: decode file: %w", err)
	}
	return items, nil
}

// Save replaces the stored list wholesale.
func (s *FileStore) Save(ctx context.Context, items []Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("history: encode list: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("history: write file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
