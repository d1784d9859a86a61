package storage

import (
	"context"
	"io"
)

// Storage is the object store used for reward and tool icons.
type Storage interface {
	// Put stores an object under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for key.
	GetURL(key string) string
}

// Config holds S3-compatible storage settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}
