// Package state provides the key/value persistence behind hotkeys.
// The subsystem stores one string blob under one key; backends only need
// Get/Put/Delete. BoltDB is the default; SQLite, Redis and an in-memory map
// are selectable through Options.
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// KV is the minimal string key/value API the override store writes through.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	BoltPath   string
	SQLitePath string
	Redis      RedisOptions
}

// Open constructs the backend named by opts.Backend.
func Open(opts Options) (KV, error) {
	switch opts.Backend {
	case BackendBolt, "":
		db, err := OpenBolt(opts.BoltPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendSQLite:
		db, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendRedis:
		client, err := OpenRedis(opts.Redis)
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", opts.Backend)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// BoltDB
// ─────────────────────────────────────────────────────────────────────────────

// bucketSettings holds every persisted setting, one key per blob.
var bucketSettings = []byte("settings")

// BoltKV wraps a BoltDB file. Writes are transactional; reads use read-only
// transactions to minimise contention.
type BoltKV struct {
	bolt *bbolt.DB
}

// OpenBolt opens (or creates) the state database at the given path.
func OpenBolt(path string) (*BoltKV, error) {
	if path == "" {
		return nil, fmt.Errorf("open state db: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state db %q: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSettings); err != nil {
			return fmt.Errorf("create bucket %q: %w", bucketSettings, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &BoltKV{bolt: db}, nil
}

// Get implements KV.
func (db *BoltKV) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSettings).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		value = string(data) // copies; data is only valid inside the tx
		return nil
	})
	return value, found, err
}

// Put implements KV.
func (db *BoltKV) Put(_ context.Context, key, value string) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSettings).Put([]byte(key), []byte(value))
	})
}

// Delete implements KV.
func (db *BoltKV) Delete(_ context.Context, key string) error {
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSettings).Delete([]byte(key))
	})
}

// Close closes the underlying BoltDB file.
func (db *BoltKV) Close() error {
	return db.bolt.Close()
}
