package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/anidex/internal/domain"
)

// Bucket names
var (
	bucketSettings = []byte("settings")
)

const dbFile = "anidex.db"

// SettingsStore implements domain.SettingsStore using BoltDB.
type SettingsStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for reads (promoted on access)
	cache map[string][]byte
}

var _ domain.SettingsStore = (*SettingsStore)(nil)

// NewSettingsStore opens (or creates) the settings database in dir.
// An empty dir keeps everything in memory.
func NewSettingsStore(dir string) (*SettingsStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &SettingsStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSettings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SettingsStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database
func (s *SettingsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persistent reports whether values survive a restart
func (s *SettingsStore) Persistent() bool {
	return s.db != nil
}

// Get returns the value stored under key
func (s *SettingsStore) Get(key string) (string, bool) {
	var v string
	if !s.get(bucketSettings, key, &v) {
		return "", false
	}
	return v, true
}

// Set stores value under key
func (s *SettingsStore) Set(key, value string) error {
	return s.set(bucketSettings, key, value)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SettingsStore) Delete(key string) error {
	return s.delete(bucketSettings, key)
}

// Keys returns every stored key, sorted
func (s *SettingsStore) Keys() []string {
	seen := make(map[string]bool)

	s.mu.RLock()
	prefix := string(bucketSettings) + ":"
	for k := range s.cache {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			seen[k[len(prefix):]] = true
		}
	}
	s.mu.RUnlock()

	if s.db != nil {
		s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketSettings)
			if b == nil {
				return nil
			}
			return b.ForEach(func(k, _ []byte) error {
				seen[string(k)] = true
				return nil
			})
		})
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// === Generic helpers ===

func (s *SettingsStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SettingsStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *SettingsStore) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}
