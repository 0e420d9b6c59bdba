package daily

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordsearch/assets"
	"github.com/robalobadob/wordsearch/internal/database"
)

func TestSeedDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 19, 22, 59, 0, 0, time.UTC)

	if Seed(d, "salt") != Seed(later, "salt") {
		t.Fatal("same UTC date must give the same seed")
	}
	if Seed(d, "salt") == Seed(d.AddDate(0, 0, 1), "salt") {
		t.Fatal("different dates should give different seeds")
	}
	if Seed(d, "salt") == Seed(d, "other") {
		t.Fatal("different salts should give different seeds")
	}
	if Seed(d, "salt") != SeedForKey("2026-10-19", "salt") {
		t.Fatal("Seed and SeedForKey disagree")
	}
}

func TestDateKeyUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := time.Date(2026, 10, 19, 21, 0, 0, 0, loc)
	if got := DateKey(d); got != "2026-10-20" {
		t.Fatalf("DateKey = %s, want 2026-10-20", got)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(context.Background(), db, assets.Migrations()); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

func TestStoreResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	date := "2026-10-19"

	played, err := s.AlreadyPlayed(ctx, "alice", date)
	if err != nil || played {
		t.Fatalf("expected not played, got %v (%v)", played, err)
	}

	results := []Result{
		{UserID: "alice", Date: date, Level: 2, Found: 10, Total: 10, Selections: 14, ElapsedMs: 90000},
		{UserID: "bob", Date: date, Level: 2, Found: 10, Total: 10, Selections: 12, ElapsedMs: 60000},
		{UserID: "carol", Date: date, Level: 2, Found: 6, Total: 10, Selections: 30, ElapsedMs: 20000},
		{UserID: "dave", Date: "2026-10-18", Level: 2, Found: 10, Total: 10, Selections: 10, ElapsedMs: 1000},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	// Duplicate is ignored.
	if err := s.InsertResult(ctx, Result{UserID: "alice", Date: date, Found: 10, Total: 10, ElapsedMs: 1}); err != nil {
		t.Fatal(err)
	}

	played, _ = s.AlreadyPlayed(ctx, "alice", date)
	if !played {
		t.Fatal("expected alice to have played")
	}

	top, err := s.Leaderboard(ctx, date, 0)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, r := range top {
		order = append(order, r.UserID)
	}
	if diff := cmp.Diff([]string{"bob", "alice", "carol"}, order); diff != "" {
		t.Fatalf("leaderboard order (-want +got):\n%s", diff)
	}
}
