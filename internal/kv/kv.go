// Package kv provides the string key-value stores the task store persists into.
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store is closed")

// Op is a single write in a batch.
type Op struct {
	Key    string
	Value  string
	Delete bool
}

// Put returns an Op that sets key to value.
func Put(key, value string) Op {
	return Op{Key: key, Value: value}
}

// Del returns an Op that removes key.
func Del(key string) Op {
	return Op{Key: key, Delete: true}
}

// Store is a generic string key-value store.
type Store interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Apply performs all ops atomically where the backend allows it.
	Apply(ctx context.Context, ops ...Op) error

	// Close releases the store.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options mirrors the storage settings of config.Settings but avoids
// importing the config package here.
type Options struct {
	Backend string
	// Path is the database file for bolt and sqlite.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open creates the store selected by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendBolt, "":
		if err := ensureParent(opts.Path); err != nil {
			return nil, err
		}
		return OpenBolt(opts.Path)
	case BackendSQLite:
		if err := ensureParent(opts.Path); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

func ensureParent(path string) error {
	if path == "" {
		return errors.New("kv: database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
