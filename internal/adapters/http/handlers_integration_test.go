//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/listingmap/internal/adapters/dataset"
	handler "github.com/samirrijal/listingmap/internal/adapters/http"
	"github.com/samirrijal/listingmap/internal/adapters/memory"
	"github.com/samirrijal/listingmap/internal/adapters/postgres"
	"github.com/samirrijal/listingmap/internal/core/domain"
	"github.com/samirrijal/listingmap/internal/core/usecases"
	"github.com/samirrijal/listingmap/internal/pkg/config"
)

// setupTestDB connects to the test database. LISTINGMAP_TEST_DSN wins over
// the configured database section.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := os.Getenv("LISTINGMAP_TEST_DSN")
	if dsn == "" {
		cfg, err := config.Load("listingmap-test")
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		dsn = cfg.Database.DSN()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS drawn_polygons (
			id TEXT PRIMARY KEY,
			wkt TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// setupTestDeps wires the Postgres polygon store behind the real services.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	t.Helper()

	var listings []domain.Listing
	if err := json.Unmarshal([]byte(fixtureListings), &listings); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	store := postgres.NewPolygonRepo(db)
	polygons := usecases.NewPolygonService(store, nil, nil)

	return &handler.Dependencies{
		Listings:      usecases.NewListingService(dataset.NewListingRepo(listings), polygons),
		Polygons:      polygons,
		SavedSearches: usecases.NewSavedSearchService(memory.NewSavedSearchRepo(), nil),
		Store:         store,
	}
}

func TestDrawThenQuery_Integration(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(setupTestDeps(t, db))

	id := drawSquare(t, app)
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM drawn_polygons WHERE id = $1`, id)
	})

	status, body := doJSON(t, app, "POST", "/v1/listings", `{"regionSelection":{"regionId":"`+id+`"}}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if ids := listingIDs(t, body); strings.Join(ids, ",") != "a,b,c" {
		t.Errorf("expected [a b c], got %v", ids)
	}
}

func TestReady_Integration(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(setupTestDeps(t, db))

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
