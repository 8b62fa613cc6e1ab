// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

/*
Package store persists the coverage dataset in BadgerDB.

Each entity is stored as JSON under a type prefix (country:, region:, org:,
edge:) together with an insertion sequence number, so Snapshot returns
entities in the order they were first written. Two big-endian counters under
meta: hold the dataset version and the next sequence number.

Every write (Import, PutEdge, DeleteEdge, PutRegion) runs in a single Badger
transaction that also bumps the version. Writers are serialized and
snapshots see a consistent version. After commit the store publishes an
events.DatasetChanged through its Notifier.

# Loading files

LoadDatasetDir reads either a combined dataset.json or one file per
collection (countries.json, regions.json, orgs.json, aid_edges.json).

# Maintenance

GCService runs Badger value log garbage collection on an interval under the
supervisor. It exits permanently for in-memory stores.
*/
package store
