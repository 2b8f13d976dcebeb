// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps snapshots of extracted chats in a local bbolt file,
// keyed by state database path, so unchanged workspaces are not re-read.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pdiddy/workspace-chats/pkg/types"
)

var chatsBucket = []byte("chats")

const defaultOpenTimeout = time.Second

// Cache is a bbolt-backed store of CachedChats.
type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache file at path. A zero timeout uses 1s;
// it bounds the wait for another process holding the file lock.
func Open(path string, timeout time.Duration) (*Cache, error) {
	if timeout <= 0 {
		timeout = defaultOpenTimeout
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close releases the cache file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the snapshot stored for key. A missing or undecodable entry
// reports ok=false.
func (c *Cache) Get(key string) (types.CachedChats, bool, error) {
	var entry types.CachedChats
	found := false
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(chatsBucket)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		if e := json.Unmarshal(v, &entry); e != nil {
			// Treat a corrupt entry as a miss; the next Put overwrites it.
			return nil
		}
		found = true
		return nil
	})
	if err != nil {
		return types.CachedChats{}, false, fmt.Errorf("reading cache entry: %w", err)
	}
	if entry.Chats == nil {
		entry.Chats = []types.ChatRecord{}
	}
	return entry, found, nil
}

// Put stores entry under key, replacing any previous snapshot.
func (c *Cache) Put(key string, entry types.CachedChats) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(chatsBucket)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return b.Put([]byte(key), data)
	})
}

// Keys returns the cached keys in byte order.
func (c *Cache) Keys() ([]string, error) {
	var keys []string
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(chatsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Clear removes every snapshot.
func (c *Cache) Clear() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(chatsBucket) == nil {
			return nil
		}
		return tx.DeleteBucket(chatsBucket)
	})
}
