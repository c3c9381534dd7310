// Package filestore defines where generated artifacts are written.
//
// Providers (local disk, MinIO) implement the Store interface. The
// generator depends only on this package, never on a provider package.
//
// Usage:
//
//	store, err := local.New(".")
//	if err != nil { ... }
//	defer store.Close()
//
//	err = store.Put(ctx, "src/api/user/routes/user.js", data)
package filestore

import "context"

// Store is the single interface all artifact providers implement.
type Store interface {
	// Ping verifies the backend is reachable and writable.
	Ping(ctx context.Context) error

	// Put writes data at key, replacing anything already there.
	// Keys are slash-separated paths relative to the store root; missing
	// parent "directories" are created.
	Put(ctx context.Context, key string, data []byte) error

	// Location returns a human-readable address for key (file path, s3 URL).
	Location(key string) string

	// Close releases any held resources.
	Close() error
}
