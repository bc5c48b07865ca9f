package recognition

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

const transcriptBucketName = "transcripts"

// Cache stores recognized text by image fingerprint
type Cache interface {
	// Get returns the cached text for key and whether it was present
	Get(key string) (string, bool, error)

	// Put stores text under key
	Put(key, text string) error

	// Close closes the underlying store
	Close() error
}

// BoltCache implements the Cache interface using BoltDB
type BoltCache struct {
	db *bbolt.DB
}

// NewBoltCache opens (or creates) the transcript cache at path
func NewBoltCache(path string) (*BoltCache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(transcriptBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltCache{db: db}, nil
}

// Get retrieves cached text
func (b *BoltCache) Get(key string) (string, bool, error) {
	var (
		text  string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(transcriptBucketName)).Get([]byte(key))
		if data != nil {
			// data is only valid for the life of the transaction
			text = string(data)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return text, found, nil
}

// Put stores text
func (b *BoltCache) Put(key, text string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(transcriptBucketName)).Put([]byte(key), []byte(text))
	})
}

// Close closes the database
func (b *BoltCache) Close() error {
	return b.db.Close()
}

// Cached wraps a Recognizer so identical images are only recognized once.
// Keys are namespaced by back end so switching engines doesn't reuse text.
type Cached struct {
	next      Recognizer
	cache     Cache
	namespace string
}

// NewCached creates a caching Recognizer. It takes ownership of cache.
func NewCached(next Recognizer, cache Cache, namespace string) *Cached {
	return &Cached{next: next, cache: cache, namespace: namespace}
}

func cacheKey(namespace string, imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return namespace + ":" + hex.EncodeToString(sum[:])
}

// Recognize returns cached text when available, otherwise delegates and
// stores the result. Cache failures are logged and never fail recognition.
func (c *Cached) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	key := cacheKey(c.namespace, imageData)

	text, found, err := c.cache.Get(key)
	if err != nil {
		slog.Warn("Failed to read transcript cache", "key", key, "error", err)
	} else if found {
		slog.Debug("Transcript cache hit", "key", key)
		return text, nil
	}

	text, err = c.next.Recognize(ctx, imageData, contentType)
	if err != nil {
		return "", err
	}

	if err := c.cache.Put(key, text); err != nil {
		slog.Warn("Failed to write transcript cache", "key", key, "error", err)
	}
	return text, nil
}

// Close closes the wrapped recognizer and the cache
func (c *Cached) Close() error {
	return errors.Join(c.next.Close(), c.cache.Close())
}
