// Reliefmap - Humanitarian Coverage Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reliefmap

package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reliefmap/internal/cache"
	"github.com/tomtom215/reliefmap/internal/coverage"
	"github.com/tomtom215/reliefmap/internal/models"
	"github.com/tomtom215/reliefmap/internal/recommend"
	"github.com/tomtom215/reliefmap/internal/store"
	"github.com/tomtom215/reliefmap/internal/validation"
)

func newTestService(t *testing.T, cfg Config) (*Service, *store.BadgerStore) {
	t.Helper()
	st, err := store.Open(store.Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })

	calc := coverage.NewCalculator(coverage.DefaultConfig())
	engine, err := recommend.NewEngine(nil, calc, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return NewService(st, calc, engine, cache.New(time.Minute), cfg, zerolog.Nop()), st
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Countries: []models.Country{
			{ID: "c", Name: "C", NeedLevel: models.NeedHigh},
			{ID: "d", Name: "D", NeedLevel: models.NeedLow},
		},
		Regions: []models.Region{
			{ID: "r1", CountryID: "c", Name: "One", Population: 500000, NeedLevel: models.NeedHigh, Volatility: models.Float64Ptr(0.8)},
			{ID: "r2", CountryID: "c", Name: "Two", Population: 20000, NeedLevel: models.NeedLow},
			{ID: "r3", CountryID: "d", Name: "Three", Population: 80000, NeedLevel: models.NeedMedium},
		},
		Organizations: []models.Organization{{ID: "o1", Name: "Org One"}, {ID: "o2", Name: "Org Two"}},
		Edges: []models.AidEdge{
			{ID: "e1", OrgID: "o1", RegionID: "r2", AidType: models.AidFood, ProjectCount: 6},
			{ID: "e2", OrgID: "o2", RegionID: "r2", AidType: models.AidMedical, ProjectCount: 2},
			{ID: "e3", OrgID: "o1", RegionID: "r3", AidType: models.AidFood, ProjectCount: 1},
		},
	}
}

func importSample(t *testing.T, svc *Service) {
	t.Helper()
	if _, err := svc.ImportDataset(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}
}

func TestService_World(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	world, err := svc.World(ctx)
	if err != nil {
		t.Fatalf("World() error = %v", err)
	}
	if world.DatasetVersion != 1 || len(world.Countries) != 2 {
		t.Fatalf("World() = %+v", world)
	}
	if world.Countries[0].CountryID != "c" {
		t.Errorf("first country = %s, want dataset order", world.Countries[0].CountryID)
	}

	again, err := svc.World(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again != world {
		t.Error("second World() call was not served from cache")
	}
}

func TestService_WriteInvalidatesByVersion(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	before, err := svc.CountryRegions(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}

	version, err := svc.PutEdge(ctx, &models.AidEdge{ID: "e9", OrgID: "o2", RegionID: "r1", AidType: models.AidMedical, ProjectCount: 5})
	if err != nil {
		t.Fatalf("PutEdge() error = %v", err)
	}

	after, err := svc.CountryRegions(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if after.DatasetVersion != version || after == before {
		t.Errorf("CountryRegions after write = version %d, want fresh result at %d", after.DatasetVersion, version)
	}
	if after.Regions[0].RawCoverage <= before.Regions[0].RawCoverage {
		t.Errorf("r1 coverage did not increase: %f -> %f", before.Regions[0].RawCoverage, after.Regions[0].RawCoverage)
	}
}

func TestService_ConcurrentLoadsShareView(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)

	const workers = 8
	views := make([]*view, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			views[i], errs[i] = svc.load(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range views {
		if errs[i] != nil {
			t.Fatalf("load() error = %v", errs[i])
		}
		if views[i].version != 1 {
			t.Errorf("views[%d].version = %d, want 1", i, views[i].version)
		}
	}

	again, err := svc.load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again != svc.current {
		t.Error("load() after build did not return the cached view")
	}
}

func TestService_CountryQueries(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	view, err := svc.CountryRegions(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Regions) != 2 || view.Variance.Count != 2 || view.Scope != "country:c" {
		t.Errorf("CountryRegions(c) = %+v", view)
	}

	orgs, err := svc.TopOrgs(ctx, "c", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(orgs.Organizations) != 1 || orgs.Organizations[0].OrgID != "o1" {
		t.Errorf("TopOrgs(c, 1) = %+v, want o1", orgs.Organizations)
	}

	all, err := svc.TopOrgs(ctx, "c", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Organizations) != 2 {
		t.Errorf("TopOrgs(c, 0) = %d orgs, want 2", len(all.Organizations))
	}

	for _, call := range []func() error{
		func() error { _, err := svc.CountryRegions(ctx, "zz"); return err },
		func() error { _, err := svc.TopOrgs(ctx, "zz", 3); return err },
	} {
		if err := call(); !errors.Is(err, ErrCountryNotFound) {
			t.Errorf("error = %v, want ErrCountryNotFound", err)
		}
	}
}

func TestService_Region(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	view, err := svc.Region(ctx, "r2")
	if err != nil {
		t.Fatal(err)
	}
	if view.Region == nil || view.Region.RegionID != "r2" {
		t.Errorf("Region(r2) = %+v", view.Region)
	}

	if _, err := svc.Region(ctx, "nope"); !errors.Is(err, ErrRegionNotFound) {
		t.Errorf("Region(nope) error = %v, want ErrRegionNotFound", err)
	}
}

func TestService_Recommendations(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	t.Run("urgency", func(t *testing.T) {
		view, err := svc.Urgency(ctx, recommend.UrgencyOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if view.Scenario != recommend.ScenarioBaseline || len(view.Items) != 3 || view.Items[0].RegionID != "r1" {
			t.Errorf("Urgency() = %+v", view)
		}
		if _, err := svc.Urgency(ctx, recommend.UrgencyOptions{Scenario: "meteor"}); !errors.Is(err, recommend.ErrUnknownScenario) {
			t.Errorf("unknown scenario error = %v", err)
		}
	})

	t.Run("deployment", func(t *testing.T) {
		view, err := svc.Deployment(ctx, 5, recommend.PlanOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if view.Allocated != 5 || view.Budget != 5 {
			t.Errorf("Deployment(5) allocated %d of %d", view.Allocated, view.Budget)
		}

		empty, err := svc.Deployment(ctx, 0, recommend.PlanOptions{})
		if err != nil || empty.Allocated != 0 {
			t.Errorf("Deployment(0) = %+v, %v", empty, err)
		}

		if _, err := svc.Deployment(ctx, -1, recommend.PlanOptions{}); !errors.Is(err, ErrInvalidBudget) {
			t.Errorf("Deployment(-1) error = %v, want ErrInvalidBudget", err)
		}
	})

	t.Run("coordination", func(t *testing.T) {
		view, err := svc.Coordination(ctx, recommend.CoordinationOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if view.Suggestions == nil {
			t.Error("Suggestions is nil, want empty slice or suggestions")
		}
	})

	if got := svc.Scenarios(); len(got) != 5 {
		t.Errorf("Scenarios() = %d, want 5", len(got))
	}
}

func brokenDataset() *models.Dataset {
	ds := sampleDataset()
	ds.Edges = append(ds.Edges, models.AidEdge{ID: "ghost", OrgID: "missing", RegionID: "r1", AidType: models.AidFood, ProjectCount: 1})
	return ds
}

func TestService_Integrity(t *testing.T) {
	svc, st := newTestService(t, Config{})
	ctx := context.Background()

	if _, err := svc.ImportDataset(ctx, brokenDataset()); err != nil {
		t.Fatalf("lenient import error = %v", err)
	}

	view, err := svc.Integrity(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Valid || len(view.Report.Violations) == 0 {
		t.Errorf("Integrity() = %+v, want violations", view)
	}

	version, n, err := svc.IntegrityViolations(ctx)
	if err != nil || version != 1 || n != len(view.Report.Violations) {
		t.Errorf("IntegrityViolations() = %d, %d, %v", version, n, err)
	}

	if _, err := svc.World(ctx); err != nil {
		t.Errorf("lenient World() error = %v", err)
	}

	strict := NewService(st, svc.calc, svc.engine, nil, Config{StrictIntegrity: true}, zerolog.Nop())
	if _, err := strict.World(ctx); !errors.Is(err, validation.ErrIntegrity) {
		t.Errorf("strict World() error = %v, want ErrIntegrity", err)
	}
	if _, err := strict.Integrity(ctx); err != nil {
		t.Errorf("strict Integrity() error = %v", err)
	}
	if _, err := strict.ImportDataset(ctx, brokenDataset()); !errors.Is(err, validation.ErrIntegrity) {
		t.Errorf("strict import error = %v, want ErrIntegrity", err)
	}
}

func TestService_WriteValidation(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	importSample(t, svc)
	ctx := context.Background()

	var verr *validation.RequestValidationError
	if _, err := svc.PutEdge(ctx, &models.AidEdge{ID: "x", RegionID: "r1", AidType: "shelter"}); !errors.As(err, &verr) {
		t.Errorf("PutEdge(invalid) error = %v, want validation error", err)
	}
	if _, err := svc.PutRegion(ctx, &models.Region{ID: "r9", CountryID: "c", Name: "Nine", NeedLevel: models.NeedLow}); !errors.As(err, &verr) {
		t.Errorf("PutRegion(zero population) error = %v, want validation error", err)
	}
	if _, err := svc.DeleteEdge(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteEdge(missing) error = %v, want ErrNotFound", err)
	}
	if svc.Version() != 1 {
		t.Errorf("Version() = %d, want 1 after rejected writes", svc.Version())
	}
}

func TestService_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("synthetic", func(t *testing.T) {
		svc, _ := newTestService(t, Config{})
		source, err := svc.Bootstrap(ctx, SeedConfig{Synthetic: true, Seed: 7})
		if err != nil || source != SeedSynthetic {
			t.Fatalf("Bootstrap() = %q, %v", source, err)
		}
		world, err := svc.World(ctx)
		if err != nil || len(world.Countries) == 0 {
			t.Errorf("World() after seed = %+v, %v", world, err)
		}

		source, err = svc.Bootstrap(ctx, SeedConfig{Synthetic: true})
		if err != nil || source != SeedExisting {
			t.Errorf("second Bootstrap() = %q, %v, want existing", source, err)
		}
	})

	t.Run("import dir", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "countries.json"), []byte(`[{"id":"k","name":"K"}]`), 0o600); err != nil {
			t.Fatal(err)
		}
		svc, _ := newTestService(t, Config{})
		source, err := svc.Bootstrap(ctx, SeedConfig{ImportDir: dir, Synthetic: true})
		if err != nil || source != SeedImport {
			t.Fatalf("Bootstrap() = %q, %v", source, err)
		}
	})

	t.Run("missing import dir files", func(t *testing.T) {
		svc, _ := newTestService(t, Config{})
		if _, err := svc.Bootstrap(ctx, SeedConfig{ImportDir: t.TempDir()}); !errors.Is(err, store.ErrNoDatasetFiles) {
			t.Errorf("Bootstrap() error = %v, want ErrNoDatasetFiles", err)
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		svc, _ := newTestService(t, Config{})
		if source, err := svc.Bootstrap(ctx, SeedConfig{}); err != nil || source != SeedNone {
			t.Errorf("Bootstrap() = %q, %v", source, err)
		}
	})
}
