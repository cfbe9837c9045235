package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"spellbound/internal/game"
	"spellbound/internal/store"
	"spellbound/internal/words"
)

// newTestServer wires a server around an in-memory SQLite DB (real schema)
// and a permissive dictionary, so handler tests exercise the full pipeline
// without depending on the embedded word lists.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	dict := game.DictionaryFunc(func(w string) bool { return w != "xyzzy" })
	return NewWithDictionary(store.NewMemoryStore(), db, dict)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t)

	// New game with a fixed root.
	rec := doJSON(t, s, http.MethodPost, "/game/new", map[string]string{"root": "silkworm"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[newGameRes](t, rec)
	require.NotEmpty(t, created.GameID)
	require.Equal(t, "silkworm", created.Root)

	// Accepted word.
	rec = doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": created.GameID, "word": "works"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[submitRes](t, rec)
	require.True(t, res.Accepted)
	require.Equal(t, 5, res.Points)
	require.Equal(t, 5, res.Score)
	require.Equal(t, []string{"works"}, res.Words)

	// Rejections are 200s carrying a reason; state is unchanged.
	for word, want := range map[string]game.Reason{
		"ow":       game.TooShort,
		"silkworm": game.MatchesRoot,
		"works":    game.AlreadyUsed,
		"kiss":     game.NotPossible,
	} {
		rec = doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": created.GameID, "word": word})
		require.Equal(t, http.StatusOK, rec.Code, "word %q", word)
		res = decode[submitRes](t, rec)
		require.False(t, res.Accepted, "word %q", word)
		require.Equal(t, want, res.Reason, "word %q", word)
		require.Equal(t, 5, res.Score, "word %q", word)
	}

	// Blank word: no outcome, current state echoed.
	rec = doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": created.GameID, "word": "   "})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[submitRes](t, rec)
	require.False(t, res.Accepted)
	require.Empty(t, res.Reason)
	require.Equal(t, 5, res.Score)

	// Read surface.
	rec = doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[gameRes](t, rec)
	require.Equal(t, "silkworm", state.Root)
	require.Equal(t, 5, state.Score)
	require.Equal(t, []string{"works"}, state.Words)

	// Finish removes the live session.
	rec = doJSON(t, s, http.MethodPost, "/game/finish", map[string]string{"gameId": created.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	fin := decode[finishRes](t, rec)
	require.Equal(t, 5, fin.Score)
	require.Equal(t, 1, fin.WordsFound)

	rec = doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGameRejectsBadRoot(t *testing.T) {
	s := newTestServer(t)

	for _, root := range []string{"ab", "x0!", "sil kworm", "a-b-c"} {
		rec := doJSON(t, s, http.MethodPost, "/game/new", map[string]string{"root": root})
		require.Equal(t, http.StatusBadRequest, rec.Code, "root %q", root)
	}

	// Mixed case and padding are normalized, not rejected.
	rec := doJSON(t, s, http.MethodPost, "/game/new", map[string]string{"root": "  SilkWorm "})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[newGameRes](t, rec)
	require.Equal(t, "silkworm", created.Root)
}

// Concurrent submits and reads on one gameId must serialize: every accepted
// word lands exactly once and the final score is the sum of their lengths.
// Run with -race to catch unlocked access to the session.
func TestConcurrentSubmits(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/game/new", map[string]string{"root": "silkworms"})
	created := decode[newGameRes](t, rec)

	wordsIn := []string{"works", "silk", "worm", "milk", "oils", "slim", "rows", "skis"}
	want := 0
	for _, w := range wordsIn {
		want += len(w)
	}

	var wg sync.WaitGroup
	codes := make(chan int, 2*len(wordsIn))
	for _, word := range wordsIn {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			rec := doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": created.GameID, "word": word})
			codes <- rec.Code
		}(word)
		// Interleave reads with the writes.
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil)
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		require.Equal(t, http.StatusOK, code)
	}

	rec = doJSON(t, s, http.MethodGet, "/game/"+created.GameID, nil)
	state := decode[gameRes](t, rec)
	require.Equal(t, want, state.Score)
	require.Len(t, state.Words, len(wordsIn))
	require.ElementsMatch(t, wordsIn, state.Words)
}

func TestSubmitUnknownGame(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": "nope", "word": "works"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitDictionaryRejection(t *testing.T) {
	s := newTestServer(t)

	// "xyzzy" is the one word the fake dictionary rejects; the root provides
	// its letters so composability passes and the lookup is what fails.
	rec := doJSON(t, s, http.MethodPost, "/game/new", map[string]string{"root": "xyzzyish"})
	created := decode[newGameRes](t, rec)
	rec = doJSON(t, s, http.MethodPost, "/game/submit", map[string]string{"gameId": created.GameID, "word": "xyzzy"})
	res := decode[submitRes](t, rec)
	require.False(t, res.Accepted)
	require.Equal(t, game.Reason(game.NotAWord), res.Reason)
}

// TestAuthFlow drives signup → play → stats over a real HTTP server so the
// JWT cookie rides along between requests. Covers the auth middleware and
// the folding of finished-game scores into user stats.
func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	post := func(path string, body any) *http.Response {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		resp, err := client.Post(ts.URL+path, "application/json", &buf)
		require.NoError(t, err)
		return resp
	}
	decodeBody := func(resp *http.Response, out any) {
		t.Helper()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
		resp.Body.Close()
	}

	// Signup sets the auth cookie.
	resp := post("/auth/signup", map[string]string{"username": "player_one", "password": "supersecret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signed struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(resp, &signed)
	require.NotEmpty(t, signed.ID)
	require.Equal(t, "player_one", signed.Username)

	// Duplicate username is a conflict.
	resp = post("/auth/signup", map[string]string{"username": "player_one", "password": "supersecret1"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The cookie authenticates /auth/me.
	resp, err = client.Get(ts.URL + "/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(resp, &me)
	require.Equal(t, signed.ID, me.ID)

	// Wrong password is rejected.
	resp = post("/auth/login", map[string]string{"username": "player_one", "password": "wrongwrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Play a game while signed in.
	resp = post("/game/new", map[string]string{"root": "silkworm"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created newGameRes
	decodeBody(resp, &created)

	resp = post("/game/submit", map[string]string{"gameId": created.GameID, "word": "works"})
	var sub submitRes
	decodeBody(resp, &sub)
	require.True(t, sub.Accepted)

	resp = post("/game/finish", map[string]string{"gameId": created.GameID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fin finishRes
	decodeBody(resp, &fin)
	require.Equal(t, 5, fin.Score)

	// The finished score lands in the user's lifetime stats.
	resp, err = client.Get(ts.URL + "/stats/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		GamesPlayed int `json:"gamesPlayed"`
		BestScore   int `json:"bestScore"`
		TotalScore  int `json:"totalScore"`
	}
	decodeBody(resp, &stats)
	require.Equal(t, 1, stats.GamesPlayed)
	require.Equal(t, 5, stats.BestScore)
	require.Equal(t, 5, stats.TotalScore)

	// The game shows up in the user's history.
	resp, err = client.Get(ts.URL + "/games/mine")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []struct {
		ID     string `json:"id"`
		Root   string `json:"root"`
		Status string `json:"status"`
		Score  int    `json:"score"`
	}
	decodeBody(resp, &mine)
	require.Len(t, mine, 1)
	require.Equal(t, created.GameID, mine[0].ID)
	require.Equal(t, "silkworm", mine[0].Root)
	require.Equal(t, "done", mine[0].Status)
	require.Equal(t, 5, mine[0].Score)

	// Logout clears the cookie; gated routes reject again.
	resp = post("/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp, err = client.Get(ts.URL + "/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Correct login restores access.
	resp = post("/auth/login", map[string]string{"username": "player_one", "password": "supersecret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp, err = client.Get(ts.URL + "/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// TestDailyFlow drives a full daily run over a real HTTP server so the
// anonymous cookie rides along between requests.
func TestDailyFlow(t *testing.T) {
	t.Setenv("WORDS_ROOTS_FILE", "")
	t.Setenv("WORDS_DICT_FILE", "")
	require.NoError(t, words.Init())

	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	post := func(path string, body any) *http.Response {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		resp, err := client.Post(ts.URL+path, "application/json", &buf)
		require.NoError(t, err)
		return resp
	}

	// Start today's run.
	resp := post("/daily/new", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created dailyNewRes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.False(t, created.Played)
	require.NotEmpty(t, created.GameID)
	require.NotEmpty(t, created.Root)

	// A second /daily/new reuses the same session.
	resp = post("/daily/new", map[string]string{})
	var again dailyNewRes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&again))
	resp.Body.Close()
	require.Equal(t, created.GameID, again.GameID)

	// Submit a prefix of the root: spellable, long enough, not the root.
	word := created.Root[:3]
	resp = post("/daily/submit", map[string]string{"gameId": created.GameID, "word": word})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sub dailySubmitRes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sub))
	resp.Body.Close()
	require.True(t, sub.Accepted)
	require.Equal(t, 3, sub.Points)

	// Lock in the run.
	resp = post("/daily/finish", map[string]string{"gameId": created.GameID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fin dailyFinishRes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fin))
	resp.Body.Close()
	require.Equal(t, 3, fin.Score)
	require.Equal(t, "locked", fin.State)

	// Further submissions are locked out.
	resp = post("/daily/submit", map[string]string{"gameId": created.GameID, "word": created.Root[:4]})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sub))
	resp.Body.Close()
	require.Equal(t, "locked", sub.State)
	require.False(t, sub.Accepted)

	// The run shows up on today's leaderboard.
	lresp, err := client.Get(ts.URL + "/daily/leaderboard")
	require.NoError(t, err)
	var lb lbRes
	require.NoError(t, json.NewDecoder(lresp.Body).Decode(&lb))
	lresp.Body.Close()
	require.Equal(t, created.Date, lb.Date)
	require.Len(t, lb.Top, 1)
	require.Equal(t, 3, lb.Top[0].Score)
	require.Equal(t, 1, lb.Top[0].WordsFound)
}
