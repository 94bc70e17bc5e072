package runs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/talentscope/talentscope/pkg/config"
)

// ErrResultNotFound is returned when no result blob exists for a run.
var ErrResultNotFound = errors.New("result not found")

// StorageClient abstracts blob storage for run result tables.
type StorageClient interface {
	PutResult(ctx context.Context, runID string, data []byte) error
	GetResult(ctx context.Context, runID string) ([]byte, error)
}

// resultKey is the object key of a run's result table.
func resultKey(runID string) string {
	return "runs/" + runID + ".json"
}

// NewStorage builds the backend selected by cfg.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (StorageClient, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStorage(cfg.Dir), nil
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(runID string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(resultKey(runID)))
}

// PutResult stores a result blob.
func (s *LocalStorage) PutResult(ctx context.Context, runID string, data []byte) error {
	path := s.path(runID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	// Write then rename so readers never see a partial table.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return os.Rename(tmp, path)
}

// GetResult retrieves a result blob.
func (s *LocalStorage) GetResult(ctx context.Context, runID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(runID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrResultNotFound)
	}
	return data, err
}
