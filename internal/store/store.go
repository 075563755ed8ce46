package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFeed = []byte("feed")
)

// KVStore implements domain.KVStore using BoltDB.
type KVStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	logger *slog.Logger

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string]string
}

// NewKVStore opens (or creates) the feed database. An empty baseDir gives a
// memory-only store. namespace separates state for different catalogs.
func NewKVStore(baseDir, namespace string, logger *slog.Logger) (*KVStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &KVStore{cache: make(map[string]string), logger: logger}, nil
	}

	dir := baseDir
	if namespace != "" {
		dir = filepath.Join(baseDir, hashNamespace(namespace))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFeed)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("opened feed store", "path", dbPath)
	return &KVStore{db: db, cache: make(map[string]string), logger: logger}, nil
}

// OpenOrMemory opens the feed database, falling back to a memory-only store
// when it cannot be opened, e.g. while another reel holds the lock. The
// returned store is always usable; err reports the open failure.
func OpenOrMemory(baseDir, namespace string, logger *slog.Logger) (*KVStore, error) {
	s, err := NewKVStore(baseDir, namespace, logger)
	if err == nil {
		return s, nil
	}
	mem, _ := NewKVStore("", namespace, logger)
	return mem, err
}

func hashNamespace(namespace string) string {
	normalized := strings.TrimRight(strings.ToLower(namespace), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Close releases the database file lock
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. Read failures count as a miss.
func (s *KVStore) Get(key string) (string, bool) {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFeed)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = string(v) // copies out of the mmap
			found = true
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("store read failed", "key", key, "error", err)
		return "", false
	}
	if !found {
		return "", false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true
}

// Set writes value under key
func (s *KVStore) Set(key, value string) error {
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketFeed)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Reset wipes every stored key
func (s *KVStore) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketFeed) != nil {
			if err := tx.DeleteBucket(bucketFeed); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketFeed)
		return err
	})
}
