//go:build integration

package data

import (
	"context"
	"path/filepath"
	"tabwiki/internal/logger"
	"testing"

	"github.com/jmoiron/sqlx"
)

// setupKVTest opens a migrated SQLite database in a temporary directory. A
// file is used instead of ":memory:" because every pooled connection would
// otherwise see its own empty database.
func setupKVTest(t *testing.T, driver string) (*sqlx.DB, func()) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "wiki.db")
	db, err := NewDB(driver, dsn)
	if err != nil {
		t.Fatalf("Failed to open %s test database: %v", driver, err)
	}
	if err := ApplyMigrations(db, driver); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	teardown := func() {
		db.Close()
	}
	return db, teardown
}

func TestSQLKVStore(t *testing.T) {
	for _, driver := range []string{"sqlite", "sqlite3"} {
		t.Run(driver, func(t *testing.T) {
			db, teardown := setupKVTest(t, driver)
			defer teardown()
			ctx := context.Background()
			kv := NewSQLKVStore(db)

			if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
				t.Errorf("expected absent key without error, got ok=%v err=%v", ok, err)
			}
			if err := kv.Set(ctx, "k", "v1"); err != nil {
				t.Fatalf("unexpected set error: %v", err)
			}
			if err := kv.Set(ctx, "k", "v2"); err != nil {
				t.Fatalf("unexpected overwrite error: %v", err)
			}
			if v, ok, err := kv.Get(ctx, "k"); err != nil || !ok || v != "v2" {
				t.Errorf("expected v2, got %q ok=%v err=%v", v, ok, err)
			}
		})
	}
}

func TestApplyMigrations_Repeatable(t *testing.T) {
	db, teardown := setupKVTest(t, "sqlite")
	defer teardown()

	if err := ApplyMigrations(db, "sqlite"); err != nil {
		t.Errorf("expected a second run to be a no-op, got %v", err)
	}
	if err := ApplyMigrations(db, "postgres"); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}

func TestPersistence_SQLRoundTrip(t *testing.T) {
	db, teardown := setupKVTest(t, "sqlite")
	defer teardown()
	ctx := context.Background()
	p := NewPersistence(NewSQLKVStore(db), logger.Nop(), "pages", "editmode")

	pages, _ := NewMigrator(nil).Migrate(p.Load(ctx))
	if err := p.Save(ctx, pages); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	if err := p.SaveEditMode(ctx, true); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	reloaded, changed := NewMigrator(nil).Migrate(p.Load(ctx))
	if changed {
		t.Error("expected stored pages to be canonical")
	}
	if reloaded.Len() != pages.Len() {
		t.Errorf("expected %d pages, got %d", pages.Len(), reloaded.Len())
	}
	if !p.LoadEditMode(ctx) {
		t.Error("expected edit mode to be stored")
	}
}
