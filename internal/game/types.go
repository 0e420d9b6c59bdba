// internal/game/types.go
//
// Core type definitions for the word-search engine.
// Defines:
//   - Coord: a (row, col) cell position.
//   - Direction: one of the four forward unit steps a word is laid out along.
//   - Outcome: the classification of a selection (correct/already_found/incorrect/invalid).
//   - PlacementMap: word → ordered cells it occupies.

package game

// Coord identifies a cell on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns c advanced n steps along d.
func (c Coord) Add(d Direction, n int) Coord {
	return Coord{Row: c.Row + d.DRow*n, Col: c.Col + d.DCol*n}
}

// Direction is a (row-delta, col-delta) unit step.
type Direction struct {
	DRow int
	DCol int
}

// Only forward directions are used: words are never written right-to-left
// or bottom-to-top, and selections are matched the same way.
var (
	Horizontal   = Direction{DRow: 0, DCol: 1}
	Vertical     = Direction{DRow: 1, DCol: 0}
	DiagonalDown = Direction{DRow: 1, DCol: 1}
	DiagonalUp   = Direction{DRow: -1, DCol: 1}
)

// Directions lists the placement directions in a fixed order so that a
// seeded random source always picks the same one.
var Directions = [...]Direction{Horizontal, Vertical, DiagonalDown, DiagonalUp}

// Outcome is the result of checking a selection against the word list.
type Outcome string

const (
	OutcomeCorrect      Outcome = "correct"
	OutcomeAlreadyFound Outcome = "already_found"
	OutcomeIncorrect    Outcome = "incorrect"
	OutcomeInvalid      Outcome = "invalid"
)

// PlacementMap records, for each placed word, the cells it occupies in
// letter order. The first and last entries are the word's end points.
type PlacementMap map[string][]Coord
