package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in a single JSON object on disk.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	items    map[string]string
	closed   bool
}

// NewFileStore loads the store from filePath, or starts empty if the file does
// not exist. A file that is not a JSON object of strings is moved aside to
// filePath+".corrupt" and the store starts empty. Returns an error only on
// unexpected I/O failures.
func NewFileStore(logger *slog.Logger, filePath string) (*FileStore, error) {
	s := &FileStore{filePath: filePath, items: map[string]string{}}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		backup := filePath + ".corrupt"
		if rerr := os.Rename(filePath, backup); rerr != nil {
			return nil, fmt.Errorf("move aside corrupt %s: %w", filePath, rerr)
		}
		logger.Warn("store file is corrupt, starting empty", "path", filePath, "backup", backup, "error", err)
		s.items = map[string]string{}
		return s, nil
	}
	if s.items == nil {
		s.items = map[string]string{}
	}
	return s, nil
}

func (s *FileStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := copyItems(s.items)
	next[key] = value
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *FileStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.items[key]; !ok {
		return nil
	}

	next := copyItems(s.items)
	delete(next, key)
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// writeAtomic writes to a temp file then renames it over filePath.
// Caller must hold s.mu.
func (s *FileStore) writeAtomic(items map[string]string) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

func copyItems(items map[string]string) map[string]string {
	out := make(map[string]string, len(items)+1)
	for k, v := range items {
		out[k] = v
	}
	return out
}
