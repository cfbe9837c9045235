// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge mode.
// Exposes four endpoints under /daily:
//   - POST /daily/new         → start today's run (creates or reuses session)
//   - POST /daily/submit      → submit a word against today's root
//   - POST /daily/finish      → lock in the run and persist the score
//   - GET  /daily/leaderboard → fetch top 20 scores for today (or a given date)
//
// Each user gets one scored run per day (enforced by DB + in-memory session).
// Everyone plays the same root word, selected deterministically from
// date + salt, so leaderboard scores are comparable.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"spellbound/internal/daily"
	"spellbound/internal/game"
	"spellbound/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily run.
type dailySession struct {
	UserID    string
	Date      string
	RootIndex int
	Game      *game.Session
	Start     time.Time
	Finished  bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/submit", dd.handleSubmit)
		r.Post("/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// dateKeyNow returns today's date key, deterministic root index, and root word.
func (d *dailyServer) dateKeyNow() (date string, idx int, root string) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	roots := words.Roots()
	if len(roots) == 0 {
		return date, 0, ""
	}
	idx = daily.RootIndex(now, d.salt, len(roots))
	return date, idx, roots[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise ensures an anonymous ID via Server.ensureAnonID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) (string, bool) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, true
	}
	return d.srv.ensureAnonID(w, r), true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string `json:"gameId"`
	Root   string `json:"root"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the user already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID + root.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	date, idx, root := d.dateKeyNow()
	if root == "" {
		http.Error(w, `{"error":"no_root_words"}`, http.StatusInternalServerError)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: "", Date: date, Played: true})
		return
	}

	// Reuse or create session in memory.
	key := uid + "|" + date
	d.mu.Lock()
	if sess, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.Game.ID, Root: sess.Game.Root, Date: date, Played: false})
		return
	}
	sess := &dailySession{
		UserID:    uid,
		Date:      date,
		RootIndex: idx,
		Game:      game.New(root, d.srv.dict),
		Start:     time.Now(),
	}
	d.sessions[key] = sess
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{GameID: sess.Game.ID, Root: root, Date: date, Played: false})
}

// -----------------------------------------------------------------------------
// /daily/submit

// dailySubmitReq is the request payload for /daily/submit.
type dailySubmitReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailySubmitRes is the response payload for /daily/submit.
type dailySubmitRes struct {
	Accepted bool        `json:"accepted"`
	Points   int         `json:"points"`
	Reason   game.Reason `json:"reason,omitempty"`
	Score    int         `json:"score"`
	Words    []string    `json:"words"`
	State    string      `json:"state"` // in_progress | locked
}

// handleSubmit runs a word through today's session.
// - Rejects if there is no session or the run is already locked.
// - Word rejections come back as data in the 200 response.
func (d *dailyServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailySubmitReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if p.GameID == "" {
		http.Error(w, "invalid", http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()

	// Find session.
	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	sess, ok := d.sessions[key]
	if !ok || sess.Game.ID != p.GameID {
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	if sess.Finished {
		_ = json.NewEncoder(w).Encode(dailySubmitRes{Score: sess.Game.Score, Words: sess.Game.Words, State: "locked"})
		return
	}

	out, _ := sess.Game.Submit(p.Word)
	_ = json.NewEncoder(w).Encode(dailySubmitRes{
		Accepted: out.Accepted,
		Points:   out.Points,
		Reason:   out.Reason,
		Score:    sess.Game.Score,
		Words:    sess.Game.Words,
		State:    "in_progress",
	})
}

// -----------------------------------------------------------------------------
// /daily/finish

// dailyFinishReq is the request payload for /daily/finish.
type dailyFinishReq struct {
	GameID string `json:"gameId"`
}

// dailyFinishRes is the response payload for /daily/finish.
type dailyFinishRes struct {
	Score      int    `json:"score"`
	WordsFound int    `json:"wordsFound"`
	State      string `json:"state"` // locked
}

// handleFinish locks the run and persists the final score for the leaderboard.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	uid, ok := d.userIDWithAnon(w, r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var p dailyFinishReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	date, _, _ := d.dateKeyNow()

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok || sess.Game.ID != p.GameID {
		d.mu.Unlock()
		http.Error(w, "no session", http.StatusConflict)
		return
	}
	alreadyDone := sess.Finished
	sess.Finished = true
	d.mu.Unlock()

	if !alreadyDone {
		elapsed := int(time.Since(sess.Start).Milliseconds())
		_ = d.store.InsertResult(r.Context(), daily.Result{
			UserID:     uid,
			Date:       date,
			RootIndex:  sess.RootIndex,
			Score:      sess.Game.Score,
			WordsFound: len(sess.Game.Words),
			ElapsedMs:  elapsed,
		})
	}
	_ = json.NewEncoder(w).Encode(dailyFinishRes{Score: sess.Game.Score, WordsFound: len(sess.Game.Words), State: "locked"})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.dateKeyNow()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
