package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robalobadob/wordsearch/assets"
)

func TestMigrateEmbedded(t *testing.T) {
	db, err := Open(MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := Migrate(ctx, db, assets.Migrations()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Second run is a no-op.
	if err := Migrate(ctx, db, assets.Migrations()); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var applied int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", applied)
	}
}

func TestMigrateOrderAndFailure(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	fsys := fstest.MapFS{
		"002_insert.sql": {Data: []byte(`INSERT INTO things(v) VALUES ('x');`)},
		"001_create.sql": {Data: []byte(`CREATE TABLE things (v TEXT);`)},
		"README.md":      {Data: []byte(`not a migration`)},
	}
	if err := Migrate(context.Background(), db, fsys); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM things`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("expected one row, got %d (%v)", n, err)
	}

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`THIS IS NOT SQL;`)}}
	if err := Migrate(context.Background(), db, bad); err == nil {
		t.Fatal("expected an error for invalid SQL")
	}
	var recorded int
	_ = db.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='003_bad.sql'`).Scan(&recorded)
	if recorded != 0 {
		t.Fatal("failed migration must not be recorded")
	}
}
