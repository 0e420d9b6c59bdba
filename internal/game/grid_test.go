package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGridPlaceDirections(t *testing.T) {
	cases := []struct {
		name   string
		anchor Coord
		dir    Direction
		want   []Coord
	}{
		{"horizontal", Coord{1, 1}, Horizontal, []Coord{{1, 1}, {1, 2}, {1, 3}}},
		{"vertical", Coord{1, 1}, Vertical, []Coord{{1, 1}, {2, 1}, {3, 1}}},
		{"diagonal down", Coord{0, 0}, DiagonalDown, []Coord{{0, 0}, {1, 1}, {2, 2}}},
		{"diagonal up", Coord{2, 0}, DiagonalUp, []Coord{{2, 0}, {1, 1}, {0, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(5)
			cells, ok := g.Place("CAT", tc.anchor, tc.dir)
			if !ok {
				t.Fatal("expected placement to succeed")
			}
			if diff := cmp.Diff(tc.want, cells); diff != "" {
				t.Fatalf("cells mismatch (-want +got):\n%s", diff)
			}
			for i, c := range cells {
				if g.At(c) != "CAT"[i] {
					t.Fatalf("cell %v holds %q, want %q", c, g.At(c), "CAT"[i])
				}
			}
		})
	}
}

func TestGridPlaceOutOfBounds(t *testing.T) {
	g := NewGrid(4)
	if _, ok := g.Place("MOUSE", Coord{0, 0}, Horizontal); ok {
		t.Fatal("a 5-letter word cannot fit a 4-wide row")
	}
	if _, ok := g.Place("CAT", Coord{1, 0}, DiagonalUp); ok {
		t.Fatal("diagonal up from row 1 leaves the grid")
	}
	if _, ok := g.Place("CAT", Coord{-1, 0}, Horizontal); ok {
		t.Fatal("negative anchor must be rejected")
	}
	if !gridBlank(g) {
		t.Fatal("rejected placements must not write letters")
	}
}

func TestGridPlaceCrossing(t *testing.T) {
	g := NewGrid(10)
	if _, ok := g.Place("MOUSE", Coord{2, 0}, Horizontal); !ok {
		t.Fatal("expected MOUSE to fit")
	}
	// SOL shares the S at (2,3).
	if _, ok := g.Place("SOL", Coord{2, 3}, Vertical); !ok {
		t.Fatal("expected a crossing on a shared letter to be allowed")
	}
	// XOL would overwrite the S.
	if g.CanPlace("XOL", Coord{2, 3}, Vertical) {
		t.Fatal("expected a conflicting letter to block placement")
	}
}

func TestGridFromRows(t *testing.T) {
	g := GridFromRows([]string{"AB", "CD"})
	if g == nil || g.Size() != 2 || g.At(Coord{1, 0}) != 'C' {
		t.Fatalf("unexpected grid: %+v", g)
	}
	if GridFromRows([]string{"ABC", "DE"}) != nil {
		t.Fatal("expected nil for non-square rows")
	}
	if got := g.Repr(); got != "AB\nCD" {
		t.Fatalf("Repr = %q", got)
	}
}

func gridBlank(g *Grid) bool {
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			if g.At(Coord{r, c}) != blank {
				return false
			}
		}
	}
	return true
}
