// internal/game/engine.go
//
// Session state for a single word-search level.
// Responsibilities:
//   - Create a level: generate the grid from the level's word list and size.
//   - Apply selections through Match, tracking found words and marked cells.
//   - Track state transitions: playing → won, or playing → gave_up.
//
// Notes:
//   - A level restart is a brand new Session; nothing is reset in place.
//   - The mutex lets the HTTP layer share a *Session across handlers; the
//     matching logic itself is synchronous and single-threaded.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	mrand "math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/wordsearch/internal/words"
)

// ErrFinished is returned when a selection or give-up arrives after the
// level has been won or abandoned.
var ErrFinished = errors.New("game finished")

// Session states reported by State.
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateGaveUp  = "gave_up"
)

// Session holds one level's grid, word list, and progress.
type Session struct {
	ID         string
	Level      int
	Name       string
	Grid       *Grid
	Words      []string // active words, after unplaceable ones were dropped
	Placements PlacementMap
	Omitted    []string
	StartedAt  time.Time
	Selections int

	mu     sync.Mutex
	found  mapset.Set[string]
	marked mapset.Set[Coord]
	gaveUp bool
}

// New generates a fresh level from lvl using rng.
func New(lvl words.Level, rng *mrand.Rand) *Session {
	gen := NewBuilder(rng).Generate(lvl.Words, lvl.Size)
	return FromGeneration(lvl, gen)
}

// FromGeneration wraps an already generated grid in a new Session.
func FromGeneration(lvl words.Level, gen Generation) *Session {
	return &Session{
		ID:         randomID(),
		Level:      lvl.Number,
		Name:       lvl.Name,
		Grid:       gen.Grid,
		Words:      gen.Placed,
		Placements: gen.Placements,
		Omitted:    gen.Omitted,
		StartedAt:  time.Now(),
		found:      mapset.New[string](),
		marked:     mapset.New[Coord](),
	}
}

// Select checks the selection start→end. Correct matches mark the word's
// cells, and the match that completes the level has Won set. The only error
// is ErrFinished; every other result is an Outcome.
func (s *Session) Select(start, end Coord) (MatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gaveUp || s.complete() {
		return MatchResult{}, ErrFinished
	}
	s.Selections++
	res := Match(s.Grid, start, end, s.Words, s.found)
	if res.Outcome == OutcomeCorrect {
		for _, c := range res.Cells {
			s.marked.Put(c)
		}
		res.Won = s.complete()
	}
	return res, nil
}

// GiveUp abandons the level and returns the words that were still missing.
func (s *Session) GiveUp() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gaveUp || s.complete() {
		return nil, ErrFinished
	}
	s.gaveUp = true
	return s.missing(), nil
}

// Complete reports whether every active word has been found.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete()
}

func (s *Session) complete() bool { return s.found.Size() == len(s.Words) }

// State reports "playing", "won", or "gave_up".
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() string {
	switch {
	case s.gaveUp:
		return StateGaveUp
	case s.complete():
		return StateWon
	}
	return StatePlaying
}

// Found returns the found words in word-list order.
func (s *Session) Found() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.foundWords()
}

func (s *Session) foundWords() []string {
	out := make([]string, 0, s.found.Size())
	for _, w := range s.Words {
		if s.found.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

// Missing returns the words not found yet, in word-list order.
func (s *Session) Missing() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missing()
}

func (s *Session) missing() []string {
	out := []string{}
	for _, w := range s.Words {
		if !s.found.Has(w) {
			out = append(out, w)
		}
	}
	return out
}

// Marked returns the cells of found words in row-major order.
func (s *Session) Marked() []Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markedCells()
}

func (s *Session) markedCells() []Coord {
	out := make([]Coord, 0, s.marked.Size())
	s.marked.Each(func(c Coord) { out = append(out, c) })
	slices.SortFunc(out, func(a, b Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

// Snapshot is a consistent, copy-only view of a session for callers.
type Snapshot struct {
	ID         string   `json:"gameId"`
	Level      int      `json:"level"`
	Name       string   `json:"name"`
	Size       int      `json:"size"`
	Grid       []string `json:"grid"`
	Words      []string `json:"words"`
	Omitted    []string `json:"omitted,omitempty"`
	Found      []string `json:"found"`
	Marked     []Coord  `json:"marked"`
	Selections int      `json:"selections"`
	State      string   `json:"state"`
}

// Snapshot copies the session's current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.ID,
		Level:      s.Level,
		Name:       s.Name,
		Size:       s.Grid.Size(),
		Grid:       s.Grid.Rows(),
		Words:      slices.Clone(s.Words),
		Omitted:    slices.Clone(s.Omitted),
		Found:      s.foundWords(),
		Marked:     s.markedCells(),
		Selections: s.Selections,
		State:      s.state(),
	}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
