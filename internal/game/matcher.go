// internal/game/matcher.go
//
// Selection matching.
// A selection is a start/end pair. The straight run of letters between
// them (inclusive) is read in walk order and looked up in the word list.
// Only the forward reading is compared; a word spelled backwards along the
// selection is not recognized.

package game

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// MatchResult is the classification of one selection.
type MatchResult struct {
	Outcome Outcome `json:"outcome"`
	Word    string  `json:"word,omitempty"`
	Cells   []Coord `json:"cells"`

	// Won is set by Session.Select on the one selection that found the
	// last missing word.
	Won bool `json:"-"`
}

// ExtractLine reads the letters from start to end inclusive. ok is false for
// a zero-length selection, for a line that is neither horizontal, vertical
// nor a 45° diagonal, and for an endpoint off the grid.
func ExtractLine(g *Grid, start, end Coord) (word string, cells []Coord, ok bool) {
	// A straight run between two on-grid cells never leaves the grid.
	if !g.InBounds(start) || !g.InBounds(end) {
		return "", nil, false
	}
	dr, dc := end.Row-start.Row, end.Col-start.Col
	if dr == 0 && dc == 0 {
		return "", nil, false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return "", nil, false
	}
	step := Direction{DRow: sign(dr), DCol: sign(dc)}
	n := max(abs(dr), abs(dc)) + 1

	buf := make([]byte, 0, n)
	cells = make([]Coord, 0, n)
	for i := 0; i < n; i++ {
		c := start.Add(step, i)
		buf = append(buf, g.At(c))
		cells = append(cells, c)
	}
	return string(buf), cells, true
}

// Match classifies the selection start→end against words. On a correct
// match the word is added to found.
func Match(g *Grid, start, end Coord, words []string, found mapset.Set[string]) MatchResult {
	candidate, cells, ok := ExtractLine(g, start, end)
	if !ok {
		return MatchResult{Outcome: OutcomeInvalid, Cells: []Coord{}}
	}
	if !slices.Contains(words, candidate) {
		return MatchResult{Outcome: OutcomeIncorrect, Word: candidate, Cells: cells}
	}
	if found.Has(candidate) {
		return MatchResult{Outcome: OutcomeAlreadyFound, Word: candidate, Cells: cells}
	}
	found.Put(candidate)
	return MatchResult{Outcome: OutcomeCorrect, Word: candidate, Cells: cells}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
