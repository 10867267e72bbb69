// Package objectstore stores binary assets and resolves their public URLs.
package objectstore

import "context"

// ObjectStore is durable storage for generated assets.
type ObjectStore interface {
	// Put stores data under key. A single call either fully succeeds or stores nothing.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL returns the URL a browser can load key from.
	PublicURL(key string) string
}
