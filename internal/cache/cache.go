// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// DefaultCleanupInterval is how often Serve sweeps expired entries.
const DefaultCleanupInterval = time.Minute

// Entry is a cached value, the dataset version it was computed from, and its
// expiry.
type Entry struct {
	Data      interface{}
	Version   uint64
	ExpiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a TTL cache for computed scores. Entries also remember the dataset
// version they were derived from so a version bump can drop them eagerly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	stats   Stats
	now     func() time.Time

	cleanupInterval time.Duration
}

// New returns an empty cache. Expired entries are removed lazily on Get and by
// Serve when the cache runs under a supervisor.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries:         make(map[string]Entry),
		ttl:             ttl,
		now:             time.Now,
		cleanupInterval: DefaultCleanupInterval,
		stats:           Stats{LastCleanup: time.Now()},
	}
}

// Get returns the value for key if present and unexpired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.ExpiresAt.Equal(entry.ExpiresAt) {
			delete(c.entries, key)
		}
		c.stats.Misses++
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
		c.mu.Unlock()
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return entry.Data, true
}

// Set stores value with the default TTL and no version.
func (c *Cache) Set(key string, value interface{}) {
	c.SetVersioned(key, 0, value)
}

// SetVersioned stores value computed from dataset version.
func (c *Cache) SetVersioned(key string, version uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Data:      value,
		Version:   version,
		ExpiresAt: c.now().Add(c.ttl),
	}
	c.stats.TotalKeys = int64(len(c.entries))
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
	}
}

// Clear removes every entry and returns how many were dropped.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]Entry)
	c.stats.Evictions += int64(n)
	c.stats.TotalKeys = 0
	return n
}

// EvictBefore removes entries computed from a dataset version older than
// version and returns how many were dropped. Unversioned entries are kept.
func (c *Cache) EvictBefore(version uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.entries {
		if entry.Version != 0 && entry.Version < version {
			delete(c.entries, key)
			n++
		}
	}
	c.stats.Evictions += int64(n)
	c.stats.TotalKeys = int64(len(c.entries))
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a copy of the counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns hits / (hits + misses) as a percentage.
func (c *Cache) HitRate() float64 {
	s := c.GetStats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Serve sweeps expired entries until ctx is done. It satisfies suture.Service.
func (c *Cache) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) String() string {
	return "score-cache"
}

func (c *Cache) cleanup() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			n++
		}
	}
	c.stats.Evictions += int64(n)
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	return n
}

func (c *Cache) record(fn func(*Stats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}

// GenerateKey builds a key from an operation name, the dataset version and the
// request parameters. Parameters are hashed from their JSON form, so two param
// structs with equal fields share a key.
//
//	key := cache.GenerateKey("deployment", snap.Version, planParams)
func GenerateKey(method string, version uint64, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:v%d:%v", method, version, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:v%d:%x", method, version, hash[:16])
}
