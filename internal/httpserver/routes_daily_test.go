package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

const testSalt = "test_salt"

func newDaily(t *testing.T, srv *Server, cookies ...*http.Cookie) (dailyNewRes, []*http.Cookie) {
	t.Helper()
	w := do(t, srv, "POST", "/daily/new", "", cookies...)
	if w.Code != http.StatusOK {
		t.Fatalf("daily new: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	jar := w.Result().Cookies()
	return decode[dailyNewRes](t, w), jar
}

func TestDailySameGridForEveryone(t *testing.T) {
	t.Setenv("DAILY_SALT", testSalt)
	srv, _ := newTestServer(t)

	a, jarA := newDaily(t, srv)
	b, _ := newDaily(t, srv)
	if a.Date != b.Date || a.Played || b.Played {
		t.Fatalf("unexpected daily responses: %+v / %+v", a, b)
	}
	if strings.Join(a.Grid, "") != strings.Join(b.Grid, "") {
		t.Fatal("players should share the day's grid")
	}
	if a.ID == b.ID {
		t.Fatal("players should get their own sessions")
	}
	if a.Level != 2 || a.Size != 12 {
		t.Fatalf("expected the level 2 board, got level %d size %d", a.Level, a.Size)
	}

	again, _ := newDaily(t, srv, jarA...)
	if again.ID != a.ID {
		t.Fatal("repeat /daily/new should resume the same session")
	}
}

func TestDailyFinishAndLeaderboard(t *testing.T) {
	t.Setenv("DAILY_SALT", testSalt)
	srv, _ := newTestServer(t)

	res, jar := newDaily(t, srv)
	anon := jar[0]

	// The daily grid is a pure function of the date and salt, so the
	// placements can be rebuilt outside the server.
	ref := game.New(words.ForLevel(2), game.NewRand(daily.SeedForKey(res.Date, testSalt)))
	if strings.Join(ref.Snapshot().Grid, "") != strings.Join(res.Grid, "") {
		t.Fatal("rebuilt grid differs from served grid")
	}

	var last dailySelectRes
	for _, word := range ref.Words {
		cells := ref.Placements[word]
		w := do(t, srv, "POST", "/daily/select", selectBody(res.ID, cells[0], cells[len(cells)-1]), anon)
		if w.Code != http.StatusOK {
			t.Fatalf("select %s: expected 200, got %d: %s", word, w.Code, w.Body.String())
		}
		last = decode[dailySelectRes](t, w)
	}
	if !last.Complete || last.Date != res.Date {
		t.Fatalf("expected completed daily, got %+v", last)
	}

	// Finished sessions are gone; a second result is refused.
	w := do(t, srv, "POST", "/daily/giveup", `{"gameId":"`+res.ID+`"}`, anon)
	if w.Code != http.StatusConflict {
		t.Fatalf("giveup after finish: expected 409, got %d", w.Code)
	}
	played, _ := newDaily(t, srv, anon)
	if !played.Played {
		t.Fatal("expected played=true after finishing")
	}

	w = do(t, srv, "GET", "/daily/leaderboard", "")
	lb := decode[lbRes](t, w)
	if lb.Date != res.Date || len(lb.Top) != 1 {
		t.Fatalf("unexpected leaderboard: %+v", lb)
	}
	if top := lb.Top[0]; top.UserID != anon.Value || top.Found != len(ref.Words) || top.Selections != len(ref.Words) {
		t.Fatalf("unexpected leaderboard row: %+v", top)
	}
}

func TestDailyGiveUpRecordsPartial(t *testing.T) {
	t.Setenv("DAILY_SALT", testSalt)
	srv, _ := newTestServer(t)

	res, jar := newDaily(t, srv)
	w := do(t, srv, "POST", "/daily/giveup", `{"gameId":"`+res.ID+`"}`, jar[0])
	if w.Code != http.StatusOK {
		t.Fatalf("giveup: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decode[giveUpRes](t, w); len(got.Missing) != len(res.Words) {
		t.Fatalf("expected all %d words missing, got %d", len(res.Words), len(got.Missing))
	}

	w = do(t, srv, "GET", "/daily/leaderboard?date="+res.Date, "")
	if lb := decode[lbRes](t, w); len(lb.Top) != 1 || lb.Top[0].Found != 0 {
		t.Fatalf("expected one zero-score row, got %+v", lb.Top)
	}
}

func TestDailyWrongGameID(t *testing.T) {
	srv, _ := newTestServer(t)
	_, jar := newDaily(t, srv)

	w := do(t, srv, "POST", "/daily/select", selectBody("other", game.Coord{}, game.Coord{Col: 1}), jar[0])
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
