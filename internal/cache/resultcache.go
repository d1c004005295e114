// Squadmatch - Player Compatibility Matching for Social Gaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/squadmatch

// Package cache provides a BadgerDB-backed TTL cache for computed match
// results. Matches are pure functions of their inputs, so a short TTL
// is enough to absorb repeated pair lookups without risking staleness
// beyond the configured window.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/squadmatch/internal/config"
	"github.com/tomtom215/squadmatch/internal/metrics"
	"github.com/tomtom215/squadmatch/internal/models"
)

const (
	matchKeyPrefix = "match:"
	cacheType      = "match_result"
	defaultTTL     = 5 * time.Minute
)

// ResultCache stores computed match results keyed by the viewer/target
// pair, expiring entries after the configured TTL.
type ResultCache struct {
	db  *badger.DB
	ttl time.Duration
}

// New opens a Badger-backed result cache per cfg. With cfg.InMemory set
// the cache holds no files and is lost on restart, which is fine for a
// result cache.
func New(cfg *config.CacheConfig) (*ResultCache, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ResultCache{db: db, ttl: ttl}, nil
}

// Close releases the underlying Badger database.
func (c *ResultCache) Close() error {
	return c.db.Close()
}

func matchKey(viewerID, targetID models.UserID) []byte {
	return []byte(matchKeyPrefix + string(viewerID) + ":" + string(targetID))
}

// GetMatch returns the cached result for the pair, or false on a miss.
// Storage errors are logged as misses; the caller recomputes either way.
func (c *ResultCache) GetMatch(_ context.Context, viewerID, targetID models.UserID) (*models.MatchResult, bool) {
	var result models.MatchResult
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(matchKey(viewerID, targetID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if err != nil {
		metrics.RecordCacheMiss(cacheType)
		return nil, false
	}
	metrics.RecordCacheHit(cacheType)
	return &result, true
}

// PutMatch stores the result for the pair with the cache TTL.
func (c *ResultCache) PutMatch(_ context.Context, viewerID, targetID models.UserID, result *models.MatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal match result: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(matchKey(viewerID, targetID), data).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
}

// InvalidateUser drops every cached result the user appears in, on
// either side of the pair. Called when a user's profile, traits, or
// schedule change so stale scores never outlive the write.
func (c *ResultCache) InvalidateUser(_ context.Context, id models.UserID) error {
	var stale [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(matchKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			pair := strings.TrimPrefix(string(key), matchKeyPrefix)
			viewer, target, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			if viewer == string(id) || target == string(id) {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan cache keys: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}
	return c.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
}
