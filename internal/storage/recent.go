package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	recentBucket      = "recent"
	defaultMaxEntries = 20
)

// ErrNotFound is returned when a path is not in the recent list.
var ErrNotFound = errors.New("entry not found")

// RecentEntry is a document that was recently opened or saved.
type RecentEntry struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
	Count    int       `json:"count"`
}

// StorageConfig holds configuration for RecentStore initialization
type StorageConfig struct {
	DBPath     string
	MaxEntries int
	Logger     *zap.Logger
}

// RecentStore persists the recent documents list in a bolt database, keyed
// by path.
type RecentStore struct {
	db         *bbolt.DB
	maxEntries int
	logger     *zap.Logger
}

// NewRecentStore opens (or creates) the database at config.DBPath.
func NewRecentStore(config StorageConfig) (*RecentStore, error) {
	maxEntries := config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := bbolt.Open(config.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(recentBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	logger.Debug("Recent store initialized",
		zap.String("db_path", config.DBPath),
		zap.Int("max_entries", maxEntries))

	return &RecentStore{db: db, maxEntries: maxEntries, logger: logger}, nil
}

// Touch records that path was used at the given time. Entries beyond the
// configured maximum are evicted oldest first.
func (s *RecentStore) Touch(path string, at time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(recentBucket))

		entry := RecentEntry{Path: path}
		if v := b.Get([]byte(path)); v != nil {
			if err := json.Unmarshal(v, &entry); err != nil {
				s.logger.Warn("Discarding corrupt recent entry", zap.String("path", path), zap.Error(err))
				entry = RecentEntry{Path: path}
			}
		}
		entry.OpenedAt = at
		entry.Count++

		encoded, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		if err := b.Put([]byte(path), encoded); err != nil {
			return err
		}
		return s.evict(b)
	})
}

func (s *RecentStore) evict(b *bbolt.Bucket) error {
	entries, err := readEntries(b)
	if err != nil {
		return err
	}
	if len(entries) <= s.maxEntries {
		return nil
	}
	for _, e := range entries[s.maxEntries:] {
		if err := b.Delete([]byte(e.Path)); err != nil {
			return err
		}
		s.logger.Debug("Evicted recent entry", zap.String("path", e.Path))
	}
	return nil
}

// List returns up to limit entries, most recently used first. A limit of
// zero or less returns all entries.
func (s *RecentStore) List(limit int) ([]RecentEntry, error) {
	var entries []RecentEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		entries, err = readEntries(tx.Bucket([]byte(recentBucket)))
		return err
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Remove deletes path from the list. It returns ErrNotFound if path is not
// listed.
func (s *RecentStore) Remove(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(recentBucket))
		if b.Get([]byte(path)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(path))
	})
}

// Clear removes every entry.
func (s *RecentStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(recentBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(recentBucket))
		return err
	})
}

// Close closes the database.
func (s *RecentStore) Close() error {
	return s.db.Close()
}

func readEntries(b *bbolt.Bucket) ([]RecentEntry, error) {
	var entries []RecentEntry
	err := b.ForEach(func(k, v []byte) error {
		var e RecentEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("failed to decode entry %q: %w", k, err)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OpenedAt.Equal(entries[j].OpenedAt) {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].OpenedAt.After(entries[j].OpenedAt)
	})
	return entries, nil
}
