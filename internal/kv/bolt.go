package kv

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boltBucket = "todo"

// Bolt wraps BoltDB as a single-bucket string store.
type Bolt struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the BoltDB file and ensures the bucket exists.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{
		db:     db,
		bucket: []byte(boltBucket),
	}, nil
}

func (b *Bolt) Get(ctx context.Context, key string) (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, bolt.ErrDatabaseNotOpen
	}
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(b.bucket).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction
			value = string(v)
			ok = true
		}
		return nil
	})
	return value, ok, err
}

func (b *Bolt) Set(ctx context.Context, key, value string) error {
	return b.Apply(ctx, Put(key, value))
}

func (b *Bolt) Delete(ctx context.Context, key string) error {
	return b.Apply(ctx, Del(key))
}

// Apply writes all ops in one Bolt transaction.
func (b *Bolt) Apply(ctx context.Context, ops ...Op) error {
	if b == nil || b.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		for _, op := range ops {
			var err error
			if op.Delete {
				err = bucket.Delete([]byte(op.Key))
			} else {
				err = bucket.Put([]byte(op.Key), []byte(op.Value))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
