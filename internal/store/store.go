// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/events"
	"github.com/tomtom215/reliefmap/internal/metrics"
	"github.com/tomtom215/reliefmap/internal/models"
)

var (
	// ErrNotFound is returned when deleting or reading an entity that does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("store is closed")

	// ErrEmptyID is returned when writing an entity without an id.
	ErrEmptyID = errors.New("entity id is required")
)

// Operations reported in change events and store metrics.
const (
	OpImport    = "import"
	OpPutEdge   = "put_edge"
	OpDelEdge   = "delete_edge"
	OpPutRegion = "put_region"
)

// Key prefixes. Values are JSON records carrying an insertion sequence so
// snapshots come back in the order entities were first written.
const (
	prefixCountry = "country:"
	prefixRegion  = "region:"
	prefixOrg     = "org:"
	prefixEdge    = "edge:"
	keyVersion    = "meta:version"
	keySeq        = "meta:seq"
)

var entityPrefixes = []string{prefixCountry, prefixRegion, prefixOrg, prefixEdge}

// Config holds store settings.
type Config struct {
	Path        string
	InMemory    bool
	SyncWrites  bool
	Compression bool
}

// Notifier receives a change event after every successful write.
type Notifier interface {
	PublishDatasetChanged(ctx context.Context, ev *events.DatasetChanged) error
}

// Snapshot is a consistent read of the whole dataset at one version.
type Snapshot struct {
	Version uint64
	Dataset models.Dataset
}

type record[T any] struct {
	Seq  uint64 `json:"seq"`
	Data T      `json:"data"`
}

// BadgerStore keeps the live dataset in BadgerDB. Every write bumps the
// dataset version in the same transaction.
//
// Writes are serialized and snapshots hold a read lock, so a Snapshot never
// observes half of an Import.
type BadgerStore struct {
	db       *badger.DB
	mu       sync.RWMutex
	version  uint64
	seq      uint64
	closed   bool
	notifier Notifier
	logger   zerolog.Logger
}

// Open opens or creates the store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, logger zerolog.Logger) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("store path is required unless in-memory")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &BadgerStore{db: db, logger: logger}
	if err := db.View(func(txn *badger.Txn) error {
		var err error
		if s.version, err = readCounter(txn, keyVersion); err != nil {
			return err
		}
		s.seq, err = readCounter(txn, keySeq)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read store metadata: %w", err)
	}

	logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Uint64("version", s.version).
		Msg("Store opened")
	return s, nil
}

// SetNotifier sets the receiver of change events. Call before serving writes.
func (s *BadgerStore) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Version returns the current dataset version. Zero means nothing was ever written.
func (s *BadgerStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot reads every entity at the current version.
func (s *BadgerStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	snap := &Snapshot{Version: s.version}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if snap.Dataset.Countries, err = scanPrefix[models.Country](ctx, txn, prefixCountry); err != nil {
			return err
		}
		if snap.Dataset.Regions, err = scanPrefix[models.Region](ctx, txn, prefixRegion); err != nil {
			return err
		}
		if snap.Dataset.Organizations, err = scanPrefix[models.Organization](ctx, txn, prefixOrg); err != nil {
			return err
		}
		snap.Dataset.Edges, err = scanPrefix[models.AidEdge](ctx, txn, prefixEdge)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return snap, nil
}

// Import replaces the whole dataset. Entities without an id are skipped and,
// for repeated ids, the first occurrence wins.
func (s *BadgerStore) Import(ctx context.Context, ds *models.Dataset) (uint64, error) {
	if ds == nil {
		ds = &models.Dataset{}
	}
	var skipped int
	version, err := s.write(ctx, OpImport, "", func(txn *badger.Txn, seq *uint64) error {
		for _, prefix := range entityPrefixes {
			if err := deletePrefix(txn, prefix); err != nil {
				return err
			}
		}

		n, err := putAll(txn, seq, prefixCountry, ds.Countries, func(c *models.Country) string { return c.ID })
		if err != nil {
			return err
		}
		skipped += n
		if n, err = putAll(txn, seq, prefixRegion, ds.Regions, func(r *models.Region) string { return r.ID }); err != nil {
			return err
		}
		skipped += n
		if n, err = putAll(txn, seq, prefixOrg, ds.Organizations, func(o *models.Organization) string { return o.ID }); err != nil {
			return err
		}
		skipped += n
		if n, err = putAll(txn, seq, prefixEdge, ds.Edges, func(e *models.AidEdge) string { return e.ID }); err != nil {
			return err
		}
		skipped += n
		return nil
	})
	if err != nil {
		return 0, err
	}

	event := s.logger.Info().
		Uint64("version", version).
		Int("countries", len(ds.Countries)).
		Int("regions", len(ds.Regions)).
		Int("organizations", len(ds.Organizations)).
		Int("edges", len(ds.Edges))
	if skipped > 0 {
		event = event.Int("skipped", skipped)
	}
	event.Msg("Dataset imported")
	return version, nil
}

// PutEdge creates or replaces an aid edge.
func (s *BadgerStore) PutEdge(ctx context.Context, edge *models.AidEdge) (uint64, error) {
	if edge.ID == "" {
		return 0, ErrEmptyID
	}
	return s.write(ctx, OpPutEdge, edge.ID, func(txn *badger.Txn, seq *uint64) error {
		return upsert(txn, seq, prefixEdge+edge.ID, edge)
	})
}

// DeleteEdge removes an aid edge. It returns ErrNotFound if the edge does not exist.
func (s *BadgerStore) DeleteEdge(ctx context.Context, id string) (uint64, error) {
	return s.write(ctx, OpDelEdge, id, func(txn *badger.Txn, _ *uint64) error {
		key := []byte(prefixEdge + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// PutRegion creates or replaces a region.
func (s *BadgerStore) PutRegion(ctx context.Context, region *models.Region) (uint64, error) {
	if region.ID == "" {
		return 0, ErrEmptyID
	}
	return s.write(ctx, OpPutRegion, region.ID, func(txn *badger.Txn, seq *uint64) error {
		return upsert(txn, seq, prefixRegion+region.ID, region)
	})
}

// write runs fn and the version bump in one transaction, then publishes the
// change. A failed publish is logged; the write itself has succeeded.
func (s *BadgerStore) write(ctx context.Context, op, entityID string, fn func(*badger.Txn, *uint64) error) (uint64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrClosed
	}

	seq := s.seq
	next := s.version + 1
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := fn(txn, &seq); err != nil {
			return err
		}
		if err := writeCounter(txn, keySeq, seq); err != nil {
			return err
		}
		return writeCounter(txn, keyVersion, next)
	})
	metrics.RecordStoreWrite(op, err)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.seq = seq
	s.version = next
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		ev := events.NewDatasetChanged(next, op, entityID)
		if err := notifier.PublishDatasetChanged(ctx, ev); err != nil {
			s.logger.Warn().Err(err).Uint64("version", next).Str("operation", op).Msg("Failed to publish dataset change")
		}
	}
	return next, nil
}

func upsert[T any](txn *badger.Txn, seq *uint64, key string, v *T) error {
	rec := record[*T]{Data: v}

	item, err := txn.Get([]byte(key))
	switch {
	case err == nil:
		var prev record[json.RawMessage]
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &prev) }); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		rec.Seq = prev.Seq
	case errors.Is(err, badger.ErrKeyNotFound):
		*seq++
		rec.Seq = *seq
	default:
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// putAll writes items under prefix and returns how many were skipped.
func putAll[T any](txn *badger.Txn, seq *uint64, prefix string, items []T, id func(*T) string) (int, error) {
	seen := make(map[string]struct{}, len(items))
	skipped := 0
	for i := range items {
		key := id(&items[i])
		if key == "" {
			skipped++
			continue
		}
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		*seq++
		data, err := json.Marshal(record[*T]{Seq: *seq, Data: &items[i]})
		if err != nil {
			return skipped, fmt.Errorf("encode %s%s: %w", prefix, key, err)
		}
		if err := txn.Set([]byte(prefix+key), data); err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

func scanPrefix[T any](ctx context.Context, txn *badger.Txn, prefix string) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var recs []record[T]
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var rec record[T]
		if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })
	out := make([]T, len(recs))
	for i := range recs {
		out[i] = recs[i].Data
	}
	return out, nil
}

func deletePrefix(txn *badger.Txn, prefix string) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func readCounter(txn *badger.Txn, key string) (uint64, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var v uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("%s: want 8 bytes, got %d", key, len(val))
		}
		v = binary.BigEndian.Uint64(val)
		return nil
	})
	return v, err
}

func writeCounter(txn *badger.Txn, key string, v uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return txn.Set([]byte(key), buf)
}
