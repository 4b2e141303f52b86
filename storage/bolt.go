package storage

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

var stateBucket = []byte("state")

// BoltDB is a single-file persistent store backed by bbolt.
type BoltDB struct {
	db *bolt.DB
}

// NewBoltDB opens (or creates) the bbolt file at path.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Put(key []byte, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(key, value)
	})
}

// Get returns a copy of the stored value; bbolt slices are only valid inside
// the transaction.
func (b *BoltDB) Get(key []byte) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(stateBucket).Get(key)
		if raw == nil {
			return ErrNotFound
		}
		out = append([]byte(nil), raw...)
		return nil
	})
	return out, err
}

func (b *BoltDB) Has(key []byte) (bool, error) {
	var ok bool
	err := b.db.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(stateBucket).Get(key) != nil
		return nil
	})
	return ok, err
}

// NewBatch returns a batch applied in one bbolt update transaction.
func (b *BoltDB) NewBatch() Batch {
	return &boltBatch{db: b.db}
}

func (b *BoltDB) Close() {
	_ = b.db.Close()
}

type boltBatch struct {
	db     *bolt.DB
	writes []memWrite
}

func (b *boltBatch) Put(key []byte, value []byte) {
	b.writes = append(b.writes, memWrite{key: string(key), value: append([]byte(nil), value...)})
}

func (b *boltBatch) Len() int { return len(b.writes) }

func (b *boltBatch) Write() error {
	if len(b.writes) == 0 {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(stateBucket)
		for _, w := range b.writes {
			if err := bucket.Put([]byte(w.key), w.value); err != nil {
				return err
			}
		}
		return nil
	})
}
