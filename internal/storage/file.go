package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the namespace blob in a single JSON file under dir.
type FileStore struct {
	dir       string
	namespace string
}

func NewFileStore(dir, namespace string) *FileStore {
	return &FileStore{dir: dir, namespace: namespace}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, s.namespace+".json")
}

func (s *FileStore) Save(_ context.Context, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", s.namespace, err)
	}

	// Write to a temp file first so a crash mid-write never leaves a
	// truncated blob behind.
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", s.namespace, err)
	}
	return os.Rename(tmp, s.path())
}

func (s *FileStore) Load(_ context.Context, v any) error {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("storage: read %s: %w", s.namespace, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: unmarshal %s: %w", s.namespace, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %s: %w", s.namespace, err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
