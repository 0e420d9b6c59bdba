// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's puzzle
//   - POST /daily/select      → submit a selection for today's puzzle
//   - POST /daily/giveup      → stop early; the partial result is recorded
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Every player gets the same grid for a date: the seed is derived from the
// date and DAILY_SALT. Each player can submit one result per day (enforced by
// DB + in-memory session).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordsearch/internal/daily"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	level    int
	now      func() time.Time
	sessions map[string]*game.Session // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	lvl, err := strconv.Atoi(getEnv("DAILY_LEVEL", "2"))
	if err != nil {
		lvl = 2
	}
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		level:    lvl,
		now:      time.Now,
		sessions: make(map[string]*game.Session),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/select", dd.handleSelect)
		r.Post("/giveup", dd.handleGiveUp)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and its grid seed.
func (d *dailyServer) today() (string, uint64) {
	date := daily.DateKey(d.now())
	return date, daily.SeedForKey(date, d.salt)
}

// userID returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r.Context()); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	game.Snapshot
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory session and return its snapshot.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date, seed := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		sess = game.New(words.ForLevel(d.level), game.NewRand(seed))
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{Snapshot: sess.Snapshot(), Date: date})
}

// session looks up the caller's session for today and checks the game id.
func (d *dailyServer) session(w http.ResponseWriter, r *http.Request, gameID string) (uid, date string, sess *game.Session, ok bool) {
	uid = d.userID(w, r)
	date, _ = d.today()
	d.mu.Lock()
	sess, ok = d.sessions[uid+"|"+date]
	d.mu.Unlock()
	if !ok || sess.ID != gameID {
		jsonError(w, "no session", http.StatusConflict)
		return "", "", nil, false
	}
	return uid, date, sess, true
}

// -----------------------------------------------------------------------------
// /daily/select

type dailySelectRes struct {
	selectRes
	Date string `json:"date"`
}

func (d *dailyServer) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	uid, date, sess, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}
	res, ok := d.srv.applySelection(w, sess, req.Start, req.End)
	if !ok {
		return
	}
	if res.Won {
		d.finish(r, uid, date, sess)
	}
	_ = json.NewEncoder(w).Encode(dailySelectRes{selectRes: res, Date: date})
}

// -----------------------------------------------------------------------------
// /daily/giveup

func (d *dailyServer) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	uid, date, sess, ok := d.session(w, r, req.GameID)
	if !ok {
		return
	}
	missing, err := sess.GiveUp()
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	d.finish(r, uid, date, sess)
	_ = json.NewEncoder(w).Encode(giveUpRes{Missing: missing, State: sess.State()})
}

// finish persists the result and drops the in-memory session.
func (d *dailyServer) finish(r *http.Request, uid, date string, sess *game.Session) {
	snap := sess.Snapshot()
	err := d.store.InsertResult(r.Context(), daily.Result{
		UserID:     uid,
		Date:       date,
		Level:      snap.Level,
		Found:      len(snap.Found),
		Total:      len(snap.Words),
		Selections: snap.Selections,
		ElapsedMs:  int(time.Since(sess.StartedAt).Milliseconds()),
	})
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("user", uid).Msg("insert daily result")
	}
	d.mu.Lock()
	delete(d.sessions, uid+"|"+date)
	d.mu.Unlock()
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		jsonError(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
