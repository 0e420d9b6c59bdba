// internal/game/builder.go
//
// Grid generation.
// Responsibilities:
//   - Place each word at a random anchor and direction (bounded random search).
//   - Allow crossings where the shared letter matches.
//   - Drop words that cannot be placed within the attempt budget.
//   - Fill every remaining blank cell with a random A–Z letter.
//
// Notes:
//   - All randomness comes from the injected *rand.Rand, so a fixed seed
//     reproduces the same grid.
//   - The input word slice is never mutated; the surviving words are returned
//     as a new slice. Repeated words are considered once.

package game

import (
	"math/rand/v2"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

const (
	// DefaultMaxAttempts is the number of random placements tried per word
	// before it is dropped.
	DefaultMaxAttempts = 100

	// Alphabet is the noise-letter source for unfilled cells.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewRand returns a PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Builder lays words out on a grid.
type Builder struct {
	MaxAttempts int

	rand *rand.Rand
}

// NewBuilder returns a Builder drawing from rng. A nil rng falls back to an
// unseeded source.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{MaxAttempts: DefaultMaxAttempts, rand: rng}
}

// Generation is the result of one Generate call.
type Generation struct {
	Grid       *Grid
	Placements PlacementMap
	Placed     []string // input order, unplaceable words removed
	Omitted    []string // words dropped after exhausting the attempt budget
}

// Generate builds a size×size grid holding as many of words as fit.
// Words are uppercased before placement. Failing to place a word is not an
// error; it is reported in Omitted.
func (b *Builder) Generate(words []string, size int) Generation {
	gen := Generation{
		Grid:       NewGrid(size),
		Placements: make(PlacementMap, len(words)),
		Placed:     make([]string, 0, len(words)),
	}
	seen := mapset.New[string]()
	for _, w := range words {
		w = strings.ToUpper(w)
		if seen.Has(w) {
			continue
		}
		seen.Put(w)
		cells, ok := b.TryPlace(gen.Grid, w)
		if !ok {
			gen.Omitted = append(gen.Omitted, w)
			continue
		}
		gen.Placements[w] = cells
		gen.Placed = append(gen.Placed, w)
	}
	b.fill(gen.Grid)
	return gen
}

// TryPlace makes up to MaxAttempts random placements of word on g and
// commits the first valid one.
func (b *Builder) TryPlace(g *Grid, word string) ([]Coord, bool) {
	n := g.Size()
	if n == 0 || word == "" {
		return nil, false
	}
	for attempt := 0; attempt < b.maxAttempts(); attempt++ {
		anchor := Coord{Row: b.rand.IntN(n), Col: b.rand.IntN(n)}
		d := Directions[b.rand.IntN(len(Directions))]
		if cells, ok := g.Place(word, anchor, d); ok {
			return cells, true
		}
	}
	return nil, false
}

func (b *Builder) maxAttempts() int {
	if b.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return b.MaxAttempts
}

// fill writes a random letter into every blank cell.
func (b *Builder) fill(g *Grid) {
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			at := Coord{Row: r, Col: c}
			if g.At(at) == blank {
				g.Set(at, Alphabet[b.rand.IntN(len(Alphabet))])
			}
		}
	}
}
