// internal/httpserver/server.go
//
// HTTP server wiring for the word-search backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/levels".
//   - Game endpoints (optional auth): new, get, select, giveup, next.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: see auth.go.
//   - History rows for games and user stats.
//
// Notes:
//   - Coordinates are validated here; the game package only ever sees
//     in-range integers.
//   - History writes are best effort and never fail a request.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/store"
	"github.com/robalobadob/wordsearch/internal/words"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped zerolog logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordsearch-go","endpoints":["/health","/levels","POST /game/new","POST /game/select","POST /game/giveup","POST /game/next","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/levels", s.handleLevels)

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/select", s.handleSelect)
		r.Post("/game/giveup", s.handleGiveUp)
		r.Post("/game/next", s.handleNextLevel)
	})

	// Daily puzzle: OPTIONAL AUTH (guests can play; results persisted on finish)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not_found", http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ LEVELS -------------------------------------

type levelInfo struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Words int    `json:"words"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := []levelInfo{}
	for _, l := range words.Levels() {
		out = append(out, levelInfo{Level: l.Number, Name: l.Name, Size: l.Size, Words: len(l.Words)})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Level int     `json:"level"` // 1..3; defaults to 1
	Seed  *uint64 `json:"seed"`  // optional fixed seed (testing, sharing a grid)
}

// handleNewGame starts a level and records an owner row for history.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Level == 0 {
		req.Level = 1
	}
	s.startGame(w, r, words.ForLevel(req.Level), req.Seed)
}

func (s *Server) startGame(w http.ResponseWriter, r *http.Request, lvl words.Level, seed *uint64) {
	var rng *rand.Rand // nil: unseeded
	if seed != nil {
		rng = game.NewRand(*seed)
	}
	s.openSession(w, r, game.New(lvl, rng))
}

// openSession stores a freshly generated session and answers 201 with its
// snapshot. A level with no placeable words is already won and is closed
// in the history straight away.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	if len(sess.Omitted) > 0 {
		hlog.FromRequest(r).Warn().
			Str("gameId", sess.ID).
			Int("level", sess.Level).
			Strs("omitted", sess.Omitted).
			Msg("words could not be placed")
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		jsonError(w, "save_failed", http.StatusInternalServerError)
		return
	}
	s.recordStart(w, r, sess)
	if sess.State() != game.StatePlaying {
		s.recordFinish(r, sess)
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// handleGetGame returns a snapshot of a live session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "not_found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// selectReq is the payload for POST /game/select.
type selectReq struct {
	GameID string     `json:"gameId"`
	Start  game.Coord `json:"start"`
	End    game.Coord `json:"end"`
}

// selectRes reports the outcome plus the progress the client needs to redraw.
type selectRes struct {
	game.MatchResult
	Found    []string     `json:"found"`
	Marked   []game.Coord `json:"marked"`
	Complete bool         `json:"complete"`
	State    string       `json:"state"`
}

// handleSelect validates a coordinate pair and matches it against the session.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		jsonError(w, "not_found", http.StatusNotFound)
		return
	}
	res, ok := s.applySelection(w, sess, req.Start, req.End)
	if !ok {
		return
	}
	if res.Won {
		s.recordFinish(r, sess)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// applySelection runs a validated selection and writes any error response.
// ok is false when a response has already been written.
func (s *Server) applySelection(w http.ResponseWriter, sess *game.Session, start, end game.Coord) (selectRes, bool) {
	if !sess.Grid.InBounds(start) || !sess.Grid.InBounds(end) {
		jsonError(w, "coordinates out of range", http.StatusBadRequest)
		return selectRes{}, false
	}
	res, err := sess.Select(start, end)
	if errors.Is(err, game.ErrFinished) {
		jsonError(w, err.Error(), http.StatusConflict)
		return selectRes{}, false
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return selectRes{}, false
	}
	snap := sess.Snapshot()
	return selectRes{
		MatchResult: res,
		Found:       snap.Found,
		Marked:      snap.Marked,
		Complete:    snap.State == game.StateWon,
		State:       snap.State,
	}, true
}

type gameIDReq struct {
	GameID string `json:"gameId"`
}

type giveUpRes struct {
	Missing []string `json:"missing"`
	State   string   `json:"state"`
}

// handleGiveUp abandons a level and reveals the words that were left.
func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		jsonError(w, "not_found", http.StatusNotFound)
		return
	}
	missing, err := sess.GiveUp()
	if err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	s.recordFinish(r, sess)
	_ = json.NewEncoder(w).Encode(giveUpRes{Missing: missing, State: sess.State()})
}

// handleNextLevel starts the level after a won one.
func (s *Server) handleNextLevel(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "bad_json", http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		jsonError(w, "not_found", http.StatusNotFound)
		return
	}
	if sess.State() != game.StateWon {
		jsonError(w, "level not complete", http.StatusConflict)
		return
	}
	next, ok := words.Next(sess.Level)
	if !ok {
		jsonError(w, "no more levels", http.StatusConflict)
		return
	}
	_ = s.store.Delete(r.Context(), sess.ID)
	s.startGame(w, r, next, nil)
}

// ------------------------------ HISTORY ------------------------------------

// recordStart persists an owner row (user_id or anonymous_id) for the game.
func (s *Server) recordStart(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	if s.db == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	ownerCol, owner := s.owner(w, r)
	_, err := s.db.ExecContext(r.Context(),
		`INSERT INTO games (id, `+ownerCol+`, level, total_words, started_at, status)
		 VALUES (?,?,?,?,?,?)`, sess.ID, owner, sess.Level, len(sess.Words), now, game.StatePlaying)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("insert game row")
	}
}

// recordFinish stores the final counters and bumps the user's stats.
func (s *Server) recordFinish(r *http.Request, sess *game.Session) {
	if s.db == nil {
		return
	}
	logger := hlog.FromRequest(r)
	snap := sess.Snapshot()

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		logger.Warn().Err(err).Msg("begin finish tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET status=?, found_words=?, selections=?, finished_at=? WHERE id=?`,
		snap.State, len(snap.Found), snap.Selections, time.Now().UTC().Format(time.RFC3339), snap.ID); err != nil {
		logger.Warn().Err(err).Msg("finish game")
	}
	if me := userFrom(r.Context()); me != nil {
		if err := bumpStats(tx, me.ID, snap.State == game.StateWon); err != nil {
			logger.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
	if err := tx.Commit(); err != nil {
		logger.Warn().Err(err).Msg("commit finish")
	}
}

// owner picks the history column and value for the current requester.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, string) {
	if me := userFrom(r.Context()); me != nil {
		return "user_id", me.ID
	}
	return "anonymous_id", s.ensureAnonID(w, r)
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// ------------------------------- small util --------------------------------

// jsonError writes {"error": msg} with the given status.
func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func userFrom(ctx context.Context) *authUser {
	u, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return u
}
