package domain

import "context"

// StorageProvider is the raw key-value persistence backend the collection
// store is built on. Values are opaque blobs; there is no atomicity across
// keys. Get reports found=false for a missing key, which is a valid empty
// state and not an error.
type StorageProvider interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
