// Package store persists the latest script and reply in a local bbolt file,
// so the host can restore the previous session on startup. It is a cache,
// not a history: exactly two fixed keys in one bucket.
package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "scriptmeta"

	keyLastScript = "script:last"
	keyLastResult = "result:last"
)

// Cache is a bbolt-backed key-value cache holding the last script the user
// submitted and the raw model reply it produced.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if needed) the cache file at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

// SaveLast stores the script and the raw reply it produced, replacing
// whatever was cached before.
func (c *Cache) SaveLast(script, result string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Put([]byte(keyLastScript), []byte(script)); err != nil {
			return err
		}
		return b.Put([]byte(keyLastResult), []byte(result))
	})
}

// LoadLast returns the cached script and raw reply. Both come back empty
// when nothing has been cached yet.
func (c *Cache) LoadLast() (script, result string, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		script = string(b.Get([]byte(keyLastScript)))
		result = string(b.Get([]byte(keyLastResult)))
		return nil
	})
	return script, result, err
}

// Close closes the underlying database file.
func (c *Cache) Close() error {
	return c.db.Close()
}
