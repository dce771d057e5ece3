package main

import (
	"context"
	"path/filepath"
	"testing"

	"servicios_locales/internal/adapter/persistence/sqlstore"
	"servicios_locales/internal/config"
	"servicios_locales/internal/infrastructure/database"
	"servicios_locales/internal/infrastructure/fixtures"
)

func TestApplyFixtures_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	cfg = &config.Config{Storage: config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: path}}
	t.Cleanup(func() { cfg = nil })

	f, err := fixtures.Load(filepath.Join("..", "..", "fixtures.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	res, err := applyFixtures(ctx, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Users != 2 || res.Services != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Seeding twice upserts.
	if _, err := applyFixtures(ctx, f); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	db, err := database.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	svc, err := sqlstore.NewServiceListingRepository(db).GetByID(ctx, 8)
	if err != nil {
		t.Fatalf("get service: %v", err)
	}
	if svc.ID != 8 || svc.Active {
		t.Fatalf("expected inactive service 8, got %+v", svc)
	}
}
