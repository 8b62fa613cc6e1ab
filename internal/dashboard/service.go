// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/reliefmap/internal/cache"
	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/graph"
	"github.com/tomtom215/reliefmap/internal/logging"
	"github.com/tomtom215/reliefmap/internal/metrics"
	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/validation"
)

var (
	// ErrInvalidBudget is returned for a negative deployment budget.
	ErrInvalidBudget = errors.New("budget must not be negative")

	// ErrCountryNotFound is returned when a country id is not in the dataset.
	ErrCountryNotFound = errors.New("country not found")

	// ErrRegionNotFound is returned when a region id is not in the dataset.
	ErrRegionNotFound = errors.New("region not found")
)

// Operation names used for cache keys and metrics labels.
const (
	OpWorld        = "world"
	OpCountry      = "country_regions"
	OpTopOrgs      = "top_orgs"
	OpRegion       = "region_detail"
	OpUrgency      = "urgency"
	OpDeployment   = "deployment"
	OpCoordination = "coordination"
)

// Store is the part of store.BadgerStore the service depends on.
type Store interface {
	Version() uint64
	Snapshot(ctx context.Context) (*store.Snapshot, error)
	Import(ctx context.Context, ds *models.Dataset) (uint64, error)
	PutEdge(ctx context.Context, edge *models.AidEdge) (uint64, error)
	DeleteEdge(ctx context.Context, id string) (uint64, error)
	PutRegion(ctx context.Context, region *models.Region) (uint64, error)
}

// Config controls the service.
type Config struct {
	// StrictIntegrity fails reads when the dataset has integrity violations.
	StrictIntegrity bool
}

// view is one immutable, indexed dataset version.
type view struct {
	version uint64
	idx     *graph.Index
	report  *validation.IntegrityReport
}

// Service serves scores and recommendations for the current dataset version.
// It is safe for concurrent use.
type Service struct {
	store  Store
	calc   *coverage.Calculator
	engine *recommend.Engine
	cache  *cache.Cache
	cfg    Config
	logger zerolog.Logger

	mu      sync.Mutex
	current *view
	builds  singleflight.Group
}

// NewService wires the service. cache may be nil to disable result caching.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewService(st Store, calc *coverage.Calculator, engine *recommend.Engine, c *cache.Cache, cfg Config, logger zerolog.Logger) *Service {
	return &Service{
		store:  st,
		calc:   calc,
		engine: engine,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

// Version returns the store's current dataset version.
func (s *Service) Version() uint64 {
	return s.store.Version()
}

// load returns the indexed view of the current dataset version, building it
// from a store snapshot when the version moved.
func (s *Service) load(ctx context.Context) (*view, error) {
	version := s.store.Version()

	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()
	if cur != nil && cur.version == version {
		return cur, nil
	}

	// Requests arriving right after a write share one rebuild. The build
	// outlives any single caller's cancellation.
	res, err, _ := s.builds.Do(strconv.FormatUint(version, 10), func() (interface{}, error) {
		return s.build(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return res.(*view), nil
}

func (s *Service) build(ctx context.Context) (*view, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot dataset: %w", err)
	}
	v := &view{
		version: snap.Version,
		idx:     graph.Build(&snap.Dataset),
		report:  validation.CheckIntegrity(&snap.Dataset),
	}

	s.mu.Lock()
	if s.current == nil || s.current.version < v.version {
		s.current = v
	}
	s.mu.Unlock()

	ds := &snap.Dataset
	metrics.UpdateDataset(v.version, len(ds.Countries), len(ds.Regions), len(ds.Organizations), len(ds.Edges), len(v.report.Violations))
	if !v.report.Valid() {
		logging.Ctx(ctx).Warn().
			Uint64("dataset_version", v.version).
			Int("violations", len(v.report.Violations)).
			Msg("dataset has integrity violations")
	}
	return v, nil
}

// loadChecked is load plus the strict integrity gate.
func (s *Service) loadChecked(ctx context.Context) (*view, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.StrictIntegrity {
		if err := v.report.Err(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// compute runs fn for op, serving from the cache when the same parameters were
// already computed for this dataset version.
func compute[T any](ctx context.Context, s *Service, op string, v *view, params interface{}, fn func() (T, error)) (T, error) {
	var key string
	if s.cache != nil {
		key = cache.GenerateKey(op, v.version, params)
		if hit, ok := s.cache.Get(key); ok {
			if typed, ok := hit.(T); ok {
				metrics.RecordCacheLookup(op, true)
				return typed, nil
			}
		}
		metrics.RecordCacheLookup(op, false)
	}

	start := time.Now()
	result, err := fn()
	metrics.RecordComputation(op, time.Since(start), err)
	if err != nil {
		var zero T
		return zero, err
	}

	if s.cache != nil {
		s.cache.SetVersioned(key, v.version, result)
	}
	logging.Ctx(ctx).Debug().
		Str("operation", op).
		Uint64("dataset_version", v.version).
		Dur("duration", time.Since(start)).
		Msg("computed")
	return result, nil
}
