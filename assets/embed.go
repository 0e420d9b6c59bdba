package assets

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed levels/*.txt
var levelsFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

func readLines(name string) ([]string, error) {
	f, err := levelsFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// LevelWords returns the embedded word list for level n (1-based).
func LevelWords(n int) ([]string, error) {
	return readLines(fmt.Sprintf("levels/level%d.txt", n))
}

// Migrations exposes the embedded *.sql files rooted at "sql".
func Migrations() fs.FS {
	sub, _ := fs.Sub(sqlFS, "sql")
	return sub
}
