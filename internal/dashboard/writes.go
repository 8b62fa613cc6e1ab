// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package dashboard

import (
	"context"

	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/validation"
)

// ImportDataset replaces the dataset. Missing edge ids are derived. In strict
// mode a dataset with integrity violations is rejected.
func (s *Service) ImportDataset(ctx context.Context, ds *models.Dataset) (uint64, error) {
	if ds == nil {
		ds = &models.Dataset{}
	}
	store.FillEdgeIDs(ds)
	if s.cfg.StrictIntegrity {
		if err := validation.CheckIntegrity(ds).Err(); err != nil {
			return 0, err
		}
	}
	return s.store.Import(ctx, ds)
}

// PutEdge validates and stores an aid edge.
func (s *Service) PutEdge(ctx context.Context, edge *models.AidEdge) (uint64, error) {
	if verr := validation.ValidateStruct(edge); verr != nil {
		return 0, verr
	}
	return s.store.PutEdge(ctx, edge)
}

// DeleteEdge removes an aid edge.
func (s *Service) DeleteEdge(ctx context.Context, id string) (uint64, error) {
	return s.store.DeleteEdge(ctx, id)
}

// PutRegion validates and stores a region.
func (s *Service) PutRegion(ctx context.Context, region *models.Region) (uint64, error) {
	if verr := validation.ValidateStruct(region); verr != nil {
		return 0, verr
	}
	return s.store.PutRegion(ctx, region)
}
