// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package dashboard

import (
	"context"
	"fmt"

	"github.com/tomtom215/reliefmap/internal/fixtures"
	"github.com/tomtom215/reliefmap/internal/store"
)

// SeedConfig selects the initial dataset for an empty store.
type SeedConfig struct {
	ImportDir string
	Synthetic bool
	Seed      int64
}

// Seed sources reported by Bootstrap.
const (
	SeedNone      = "none"
	SeedExisting  = "existing"
	SeedImport    = "import"
	SeedSynthetic = "synthetic"
)

// Bootstrap fills an empty store. An import directory takes precedence over
// synthetic data; a store that already has a version is left alone.
func (s *Service) Bootstrap(ctx context.Context, cfg SeedConfig) (string, error) {
	if s.store.Version() > 0 {
		return SeedExisting, nil
	}

	switch {
	case cfg.ImportDir != "":
		ds, err := store.LoadDatasetDir(cfg.ImportDir)
		if err != nil {
			return "", fmt.Errorf("load import dir: %w", err)
		}
		version, err := s.ImportDataset(ctx, ds)
		if err != nil {
			return "", fmt.Errorf("import %s: %w", cfg.ImportDir, err)
		}
		s.logger.Info().Str("dir", cfg.ImportDir).Uint64("version", version).Msg("Dataset imported from directory")
		return SeedImport, nil

	case cfg.Synthetic:
		opts := fixtures.DefaultOptions()
		if cfg.Seed != 0 {
			opts.Seed = cfg.Seed
		}
		version, err := s.ImportDataset(ctx, fixtures.Generate(opts))
		if err != nil {
			return "", fmt.Errorf("seed synthetic dataset: %w", err)
		}
		s.logger.Info().Int64("seed", opts.Seed).Uint64("version", version).Msg("Synthetic dataset seeded")
		return SeedSynthetic, nil
	}
	return SeedNone, nil
}
