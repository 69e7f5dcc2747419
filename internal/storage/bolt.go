// Package storage implements the key-value providers the collection store
// persists through. Values are opaque JSON blobs owned by the caller.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketCollections = []byte("collections")

// BoltProvider persists blobs in a single-file BoltDB database.
type BoltProvider struct {
	db *bolt.DB
}

// NewBoltProvider opens (or creates) the database under dir.
func NewBoltProvider(dir string) (*BoltProvider, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "pipoca.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltProvider{db: db}, nil
}

func (p *BoltProvider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var data []byte
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}
	return data, true, nil
}

func (p *BoltProvider) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		return b.Put([]byte(key), value)
	})
}

func (p *BoltProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
