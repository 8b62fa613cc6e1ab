// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/thejerf/suture/v4"
)

// Value log GC defaults.
const (
	DefaultGCInterval     = 10 * time.Minute
	DefaultGCDiscardRatio = 0.5
)

// GCService periodically reclaims value log space left behind by overwritten
// and deleted entities. It satisfies suture.Service and stops permanently for
// in-memory stores.
type GCService struct {
	store        *BadgerStore
	interval     time.Duration
	discardRatio float64
}

// NewGCService returns a GC service with default interval and ratio.
func NewGCService(s *BadgerStore) *GCService {
	return &GCService{store: s, interval: DefaultGCInterval, discardRatio: DefaultGCDiscardRatio}
}

// Serve runs GC until ctx is done.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.runOnce(); err != nil {
				return err
			}
		}
	}
}

func (g *GCService) String() string {
	return "store-gc"
}

// runOnce rewrites value log files until badger reports nothing left to do.
func (g *GCService) runOnce() error {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	if g.store.closed {
		return suture.ErrDoNotRestart
	}

	rewrites := 0
	for {
		err := g.store.db.RunValueLogGC(g.discardRatio)
		switch {
		case err == nil:
			rewrites++
			continue
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			if rewrites > 0 {
				g.store.logger.Debug().Int("rewrites", rewrites).Msg("Value log GC completed")
			}
			return nil
		case errors.Is(err, badger.ErrGCInMemoryMode):
			return suture.ErrDoNotRestart
		default:
			g.store.logger.Warn().Err(err).Msg("Value log GC failed")
			return nil
		}
	}
}
