package wordstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"

	"gitlab.com/pnathan/wordtrie/src/lib/log"
)

var ErrNoSuchSet = errors.New("no such word set")

var setsBucket = []byte("sets")

// BoltStore keeps named word sets in a bolt database. Each set is a nested
// bucket keyed by big-endian position, so a cursor walk returns the words in
// the order they were saved.
type BoltStore struct {
	Database *bolt.DB
}

func OpenBolt(filename string) (*BoltStore, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(setsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &BoltStore{Database: db}, nil
}

func (b *BoltStore) Close() error {
	return b.Database.Close()
}

// Save replaces the set called name with the contents of s.
func (b *BoltStore) Save(name string, s *Store) error {
	err := b.Database.Update(func(tx *bolt.Tx) error {
		sets := tx.Bucket(setsBucket)
		if sets.Bucket([]byte(name)) != nil {
			if err := sets.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		bucket, err := sets.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		for i, w := range s.words {
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := bucket.Put(key, []byte(w)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("BoltDB save failed", zap.String("set", name), zap.Error(err))
		return err
	}
	log.Info("word set saved", zap.String("set", name), zap.Int("words", s.Len()))
	return nil
}

// Load reads the set called name back in saved order.
func (b *BoltStore) Load(name string) (*Store, error) {
	words := []string{}
	err := b.Database.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(setsBucket).Bucket([]byte(name))
		if bucket == nil {
			return fmt.Errorf("%w: %q", ErrNoSuchSet, name)
		}
		return bucket.ForEach(func(_, v []byte) error {
			words = append(words, string(v))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return New(words)
}

// Names lists the saved sets.
func (b *BoltStore) Names() ([]string, error) {
	names := []string{}
	err := b.Database.View(func(tx *bolt.Tx) error {
		return tx.Bucket(setsBucket).ForEach(func(k, v []byte) error {
			// nested buckets show up with a nil value.
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	})
	return names, err
}
