// Package storage keeps uploaded images in an object store.
package storage

import (
	"context"
	"time"
)

// ObjectStore is the subset of an S3-style bucket the upload flow needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
