// Package store caches compiled DFAs in a bbolt database, keyed by pattern.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ianloic/llvm-fnmatch/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

// SchemaVersion is the version of the layout of the database. Databases with a
// different version are rejected by Open.
const SchemaVersion = 2

const (
	bucketDFA  = "dfa"
	bucketMeta = "meta"

	keySchemaVersion = "schema-version"
)

// ErrSchemaVersion is returned by Open when the database was written with an
// incompatible schema.
var ErrSchemaVersion = errors.New("incompatible schema version")

// Maps a description of each initialization step to its implementation.
var initDB = map[string]func(*bolt.Tx) error{
	"create dfa bucket": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDFA))
		return err
	},
	"check schema version": func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		if err != nil {
			return err
		}
		want := strconv.Itoa(SchemaVersion)
		v := b.Get([]byte(keySchemaVersion))
		if v == nil {
			return b.Put([]byte(keySchemaVersion), []byte(want))
		}
		if string(v) != want {
			return fmt.Errorf("%w: database has %s, want %s", ErrSchemaVersion, v, want)
		}
		return nil
	},
}

// Store is a cache of compiled DFAs. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens the database at the given path, creating it if needed.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{
		Timeout: 1 * time.Second, NoFreelistSync: true, FreelistType: bolt.FreelistMapType})
	if err != nil {
		return nil, err
	}
	s, err := newStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db *bolt.DB) (*Store, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
