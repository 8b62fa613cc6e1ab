// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reliefmap/internal/fixtures"
	"github.com/tomtom215/reliefmap/internal/models"
)

// ErrNoDatasetFiles is returned when a directory holds none of the known files.
var ErrNoDatasetFiles = errors.New("no dataset files found")

// DatasetFile is the combined single-file form, the same shape as the bulk
// import request body.
const DatasetFile = "dataset.json"

// Per-collection file names, first match wins.
var (
	countryFiles = []string{"countries.json"}
	regionFiles  = []string{"regions.json"}
	orgFiles     = []string{"orgs.json", "organizations.json"}
	edgeFiles    = []string{"aid_edges.json", "edges.json"}
)

// LoadDatasetDir reads a dataset from dir. A dataset.json file is used when
// present; otherwise each collection is read from its own file and missing
// collections are empty. Edges without an id get one derived from their
// organization, region and aid type.
func LoadDatasetDir(dir string) (*models.Dataset, error) {
	ds := &models.Dataset{}

	found, err := readJSON(filepath.Join(dir, DatasetFile), ds)
	if err != nil {
		return nil, err
	}
	if !found {
		var foundAny bool
		for _, part := range []struct {
			names []string
			dst   interface{}
		}{
			{countryFiles, &ds.Countries},
			{regionFiles, &ds.Regions},
			{orgFiles, &ds.Organizations},
			{edgeFiles, &ds.Edges},
		} {
			ok, err := readFirst(dir, part.names, part.dst)
			if err != nil {
				return nil, err
			}
			foundAny = foundAny || ok
		}
		if !foundAny {
			return nil, fmt.Errorf("%w in %s", ErrNoDatasetFiles, dir)
		}
	}

	FillEdgeIDs(ds)
	return ds, nil
}

// FillEdgeIDs derives ids for edges that have none.
func FillEdgeIDs(ds *models.Dataset) {
	for i := range ds.Edges {
		e := &ds.Edges[i]
		if e.ID == "" {
			e.ID = fixtures.EdgeID(e.OrgID, e.RegionID, e.AidType)
		}
	}
}

func readFirst(dir string, names []string, dst interface{}) (bool, error) {
	for _, name := range names {
		found, err := readJSON(filepath.Join(dir, name), dst)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

func readJSON(path string, dst interface{}) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the configured import dir
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}
