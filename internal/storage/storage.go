// Package storage holds the object storage abstraction used to keep the
// uploaded PDF blobs. Implementations stream content and never touch local
// disk.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions are optional parameters for uploads. Size should be the
// exact byte count when known; -1 lets the backend chunk as it sees fit.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an S3-compatible object storage client.
type Storage interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL for downloading the object
	// without credentials. It backs the document viewer.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
