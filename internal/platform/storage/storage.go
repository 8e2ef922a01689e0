// Package storage abstracts the bucket holding partnership images.
package storage

import (
	"context"
	"io"
)

// Store saves and removes uploaded images. Save returns the public URL the
// record should reference; Remove accepts that same URL.
type Store interface {
	Save(ctx context.Context, originalName string, contentType string, content io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}
