// internal/game/grid.go
//
// The letter grid.
// Responsibilities:
//   - Square N×N storage with a blank placeholder for unwritten cells.
//   - Placement checks: a word fits when its end cell is on the grid and every
//     visited cell is blank or already holds the needed letter.
//   - Read-only views (Rows, Repr) for snapshots and tests.

package game

import "strings"

// blank marks a cell no word or noise letter has been written to yet.
const blank = ' '

// Grid is a square matrix of single-byte letters.
type Grid struct {
	cells [][]byte
}

// NewGrid returns a size×size grid with every cell blank.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	cells := make([][]byte, size)
	for i := range cells {
		cells[i] = []byte(strings.Repeat(string(blank), size))
	}
	return &Grid{cells: cells}
}

// GridFromRows builds a grid from equal-length rows. It returns nil when
// the rows do not form a square.
func GridFromRows(rows []string) *Grid {
	g := &Grid{cells: make([][]byte, len(rows))}
	for i, r := range rows {
		if len(r) != len(rows) {
			return nil
		}
		g.cells[i] = []byte(r)
	}
	return g
}

// Size is the side length N.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	n := g.Size()
	return c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n
}

// At returns the letter at c. c must be in bounds.
func (g *Grid) At(c Coord) byte { return g.cells[c.Row][c.Col] }

// Set writes b at c. c must be in bounds.
func (g *Grid) Set(c Coord, b byte) { g.cells[c.Row][c.Col] = b }

// IsFilled reports whether no cell is blank.
func (g *Grid) IsFilled() bool {
	for _, row := range g.cells {
		for _, b := range row {
			if b == blank {
				return false
			}
		}
	}
	return true
}

// CanPlace reports whether word fits from anchor along d: the end cell must
// be on the grid and each visited cell must be blank or already hold the
// letter the word needs there.
func (g *Grid) CanPlace(word string, anchor Coord, d Direction) bool {
	if len(word) == 0 || !g.InBounds(anchor) || !g.InBounds(anchor.Add(d, len(word)-1)) {
		return false
	}
	for i := 0; i < len(word); i++ {
		b := g.At(anchor.Add(d, i))
		if b != blank && b != word[i] {
			return false
		}
	}
	return true
}

// Place writes word from anchor along d and returns the cells it covers.
// Nothing is written when the placement is not valid.
func (g *Grid) Place(word string, anchor Coord, d Direction) ([]Coord, bool) {
	if !g.CanPlace(word, anchor, d) {
		return nil, false
	}
	cells := make([]Coord, len(word))
	for i := 0; i < len(word); i++ {
		c := anchor.Add(d, i)
		g.Set(c, word[i])
		cells[i] = c
	}
	return cells, true
}

// Rows returns each row as a string.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// Repr renders the grid one row per line.
func (g *Grid) Repr() string {
	return strings.Join(g.Rows(), "\n")
}
