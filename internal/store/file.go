package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/briangreenhill/athletiq/internal/plan"
)

// FileStore keeps one JSON file per plan.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in dir. If dir is empty, uses
// ~/.athletiq/plans.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".athletiq", "plans")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory plans are written to.
func (fs *FileStore) Dir() string { return fs.dir }

// Save writes the plan, replacing any previous version.
func (fs *FileStore) Save(_ context.Context, p *plan.Plan) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename (atomic operation)
	tmp, err := os.CreateTemp(fs.dir, p.ID.String()+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, fs.path(p.ID))
}

// Get reads a plan by ID.
func (fs *FileStore) Get(_ context.Context, id uuid.UUID) (*plan.Plan, error) {
	data, err := os.ReadFile(fs.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, plan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return &p, nil
}

func (fs *FileStore) path(id uuid.UUID) string {
	return filepath.Join(fs.dir, id.String()+".json")
}
