package database

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/amaumene/mediamatch/internal/constants"
)

var storageBucket = []byte("storage")

type BoltDB struct {
	db *bolt.DB
}

func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = constants.DefaultDatabasePath
	}
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(storageBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Get(key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(storageBucket).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction
			out = append([]byte{}, v...)
		}
		return nil
	})
	return out, err
}

func (b *BoltDB) Put(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storageBucket).Put([]byte(key), value)
	})
}

func (b *BoltDB) Delete(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(storageBucket).Delete([]byte(key))
	})
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}
