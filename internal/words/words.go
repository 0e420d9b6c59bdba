// internal/words/words.go
//
// Level configuration for the word-search game.
//
// Responsibilities:
//   - Load each level's word list from an environment-provided file or fall
//     back to the embedded defaults in the assets package.
//   - Normalize lists (trim, uppercase, drop blanks and duplicates).
//   - Expose the three tiers and the progression between them.
//
// Levels:
//   1. BEGINNER      10×10, ten words
//   2. INTERMEDIATE  12×12, ten words
//   3. ADVANCED      14×14, ten words
//
// Environment variables:
//   WORDS_LEVEL1_FILE=/path/to/level1.txt   (one word per line, # comments)
//   WORDS_LEVEL2_FILE=...
//   WORDS_LEVEL3_FILE=...
//
// Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordsearch/assets"
)

// Level is one tier's configuration.
type Level struct {
	Number int      `json:"level"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Words  []string `json:"words"`
}

// tiers fixes the name and grid size per level; word lists are loaded by Init.
var tiers = []Level{
	{Number: 1, Name: "BEGINNER", Size: 10},
	{Number: 2, Name: "INTERMEDIATE", Size: 12},
	{Number: 3, Name: "ADVANCED", Size: 14},
}

var (
	initOnce   sync.Once
	levels     []Level
	initialErr error
)

// Init loads all level word lists exactly once.
// Returns an error if a configured file cannot be read or a level ends up
// with no words.
func Init() error {
	initOnce.Do(func() {
		loaded := make([]Level, 0, len(tiers))
		for _, t := range tiers {
			list, err := loadLevel(t.Number)
			if err != nil {
				initialErr = fmt.Errorf("words: level %d: %w", t.Number, err)
				return
			}
			if len(list) == 0 {
				initialErr = fmt.Errorf("words: level %d: %w", t.Number, errEmpty)
				return
			}
			t.Words = list
			loaded = append(loaded, t)
		}
		levels = loaded
	})
	return initialErr
}

var errEmpty = errors.New("word list is empty")

// loadLevel reads WORDS_LEVEL<n>_FILE when set, otherwise the embedded list.
func loadLevel(n int) ([]string, error) {
	if path := os.Getenv(fmt.Sprintf("WORDS_LEVEL%d_FILE", n)); path != "" {
		list, err := readWordFile(path)
		if err != nil {
			return nil, err
		}
		return Normalize(list), nil
	}
	list, err := assets.LevelWords(n)
	if err != nil {
		return nil, err
	}
	return Normalize(list), nil
}

// readWordFile loads one word per line from a file, skipping blanks and
// # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Normalize trims and uppercases every word, dropping blanks and repeats.
// Order of first appearance is kept.
func Normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Levels returns copies of all configured levels in order.
func Levels() []Level {
	out := make([]Level, len(current()))
	for i, l := range current() {
		out[i] = l.clone()
	}
	return out
}

// MaxLevel is the highest level number.
func MaxLevel() int { return len(tiers) }

// ForLevel returns level n. Numbers past the last level map to the last one
// and numbers below 1 to the first.
func ForLevel(n int) Level {
	ls := current()
	switch {
	case n < 1:
		n = 1
	case n > len(ls):
		n = len(ls)
	}
	return ls[n-1].clone()
}

// Next returns the level after n, or false when n is the last one.
func Next(n int) (Level, bool) {
	if n < 0 || n >= MaxLevel() {
		return Level{}, false
	}
	return ForLevel(n + 1), true
}

// current returns the loaded levels, or the tiers with their embedded lists
// when Init has not succeeded (tests and tools that skip Init).
func current() []Level {
	if levels != nil {
		return levels
	}
	out := make([]Level, len(tiers))
	for i, t := range tiers {
		list, _ := assets.LevelWords(t.Number)
		t.Words = Normalize(list)
		out[i] = t
	}
	return out
}

func (l Level) clone() Level {
	l.Words = append([]string(nil), l.Words...)
	return l
}
