// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package cache holds computed score views between dataset changes.

Every view the dashboard serves is a pure function of (dataset version,
operation, parameters), so keys built by GenerateKey never go stale in content;
the TTL only bounds memory. When the store publishes a change the event handler
calls EvictBefore with the new version, or Clear.

# Usage

	c := cache.New(5 * time.Minute)
	key := cache.GenerateKey("world", version, nil)
	if v, ok := c.Get(key); ok {
	    return v.([]models.WorldScore), nil
	}
	scores := calc.WorldScores(idx)
	c.SetVersioned(key, version, scores)

Cached values are shared between callers and must be treated as read-only.

# Background Cleanup

Cache implements suture.Service; Serve sweeps expired entries every
DefaultCleanupInterval.
*/
package cache
