package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/plan"
)

func samplePlan() *plan.Plan {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &plan.Plan{
		ID:        uuid.New(),
		Status:    plan.StatusPending,
		Profile:   athlete.Default(),
		BMI:       bmi.Result{Value: 19.5, Category: bmi.Normal},
		Prompt:    "You are ATHLETIQ AI",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFileStoreSaveAndGet(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	p := samplePlan()
	require.NoError(t, fs.Save(ctx, p))

	got, err := fs.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Overwrite with the finished plan.
	p.Status = plan.StatusReady
	p.Text = "1. Warm-up"
	require.NoError(t, fs.Save(ctx, p))

	got, err = fs.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.StatusReady, got.Status)
	assert.Equal(t, "1. Warm-up", got.Text)

	// No temporary files are left behind.
	entries, err := os.ReadDir(fs.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, p.ID.String()+".json", entries[0].Name())
}

func TestFileStoreNotFound(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, plan.ErrNotFound))
}

func TestFileStoreCorruptFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, os.WriteFile(filepath.Join(fs.Dir(), id.String()+".json"), []byte("{not json"), 0o600))

	_, err = fs.Get(context.Background(), id)
	require.Error(t, err)
	assert.False(t, errors.Is(err, plan.ErrNotFound))
}

func TestNewFileStoreDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	fs, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".athletiq", "plans"), fs.Dir())
}

func TestOpenFileStore(t *testing.T) {
	s, closeFn, err := Open(context.Background(), "", t.TempDir())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &FileStore{}, s)
}

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestPostgresSaveAndGet(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	s, closeFn, err := Open(ctx, url, "")
	require.NoError(t, err)
	defer closeFn()

	p := samplePlan()
	require.NoError(t, s.Save(ctx, p))

	p.Status = plan.StatusFailed
	p.Error = "the generation quota is exhausted"
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.StatusFailed, got.Status)
	assert.Equal(t, p.Error, got.Error)
	assert.Equal(t, p.Profile, got.Profile)
	assert.Equal(t, p.BMI, got.BMI)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, plan.ErrNotFound))
}
