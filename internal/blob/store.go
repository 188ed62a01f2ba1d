// Package blob stores uploaded media objects. The S3 driver is used in
// deployments; the memory driver backs tests and local runs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"flowstate/internal/config"
)

var ErrNotFound = errors.New("blob not found")

// Object describes a stored blob.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	URL         string
	StoredAt    time.Time
}

type PutOptions struct {
	ContentType string
	Size        int64
	Metadata    map[string]string
}

// Store is the subset of object storage the media service needs.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error)
	Delete(ctx context.Context, key string) error
	// URL returns a time limited download link for key.
	URL(ctx context.Context, key string) (string, error)
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3(ctx, cfg)
	case "memory", "":
		return NewMemory("memory://" + cfg.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
