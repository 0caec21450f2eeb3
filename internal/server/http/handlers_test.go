package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropchess/internal/dropchess"
	"dropchess/internal/server/game"
)

func do(t *testing.T, s http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) StateResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func newGame(t *testing.T, s http.Handler) StateResponse {
	t.Helper()
	return decodeState(t, do(t, s, http.MethodPost, "/api/new_game", nil))
}

func pieceIDAt(t *testing.T, st StateResponse, x, y int) int {
	t.Helper()
	for _, p := range st.Snapshot.Pieces {
		if p.Active && p.X == x && p.Y == y {
			return p.ID
		}
	}
	t.Fatalf("no piece at %d,%d", x, y)
	return -1
}

func TestNewGameAndState(t *testing.T) {
	s := NewServer("", Options{})
	st := newGame(t, s)

	assert.NotEmpty(t, st.GameID)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", st.Position)
	assert.Equal(t, game.StatusOngoing, st.Status)
	assert.Len(t, st.Snapshot.Tiles, dropchess.NumTiles)
	// 8 pawns + 2 knights per side can move.
	assert.Len(t, st.LegalMoves, 20)

	again := decodeState(t, do(t, s, http.MethodPost, "/api/state", GameRequest{GameID: st.GameID}))
	assert.Equal(t, st.Position, again.Position)
	assert.Equal(t, st.Hash, again.Hash)

	rec := do(t, s, http.MethodGet, "/api/games", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var games GamesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	assert.Equal(t, []string{st.GameID}, games.Games)
}

func TestNewGameStrictTurnsOverride(t *testing.T) {
	s := NewServer("", Options{})
	strict := true
	st := decodeState(t, do(t, s, http.MethodPost, "/api/new_game", NewGameRequest{StrictTurns: &strict}))
	assert.True(t, st.StrictTurns)

	s = NewServer("", Options{StrictTurns: true})
	assert.True(t, newGame(t, s).StrictTurns)
}

func TestNewGameBodyOptional(t *testing.T) {
	s := NewServer("", Options{StrictTurns: true})

	req := httptest.NewRequest(http.MethodPost, "/api/new_game", strings.NewReader(""))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.True(t, decodeState(t, rec).StrictTurns)

	req = httptest.NewRequest(http.MethodPost, "/api/new_game", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayFlow(t *testing.T) {
	s := NewServer("", Options{StrictTurns: true})
	st := newGame(t, s)
	knight := pieceIDAt(t, st, 6, 7)

	rec := do(t, s, http.MethodPost, "/api/moves", MovesRequest{GameID: st.GameID, PieceID: knight})
	require.Equal(t, http.StatusOK, rec.Code)
	var mr MovesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mr))
	assert.ElementsMatch(t, []dropchess.Move{
		{Kind: dropchess.KindMove, X: 5, Y: 5},
		{Kind: dropchess.KindMove, X: 7, Y: 5},
	}, mr.Moves)

	sel := decodeState(t, do(t, s, http.MethodPost, "/api/select", SelectRequest{GameID: st.GameID, User: "ann", PieceID: &knight}))
	require.NotNil(t, sel.SelectedPieceID)
	assert.Equal(t, "ann", sel.ActiveUser)

	played := decodeState(t, do(t, s, http.MethodPost, "/api/play", PlayRequest{
		GameID: st.GameID, User: "ann", PieceID: knight,
		Move: dropchess.Move{Kind: dropchess.KindMove, X: 5, Y: 5},
	}))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/5N*2/PPPPPPPP/RNBQKB1R b", played.Position)
	assert.Nil(t, played.SelectedPieceID)
	assert.NotEqual(t, st.Hash, played.Hash)

	rec = do(t, s, http.MethodPost, "/api/play", PlayRequest{
		GameID: st.GameID, User: "ann", PieceID: knight,
		Move: dropchess.Move{Kind: dropchess.KindMove, X: 4, Y: 3},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	reset := decodeState(t, do(t, s, http.MethodPost, "/api/reset", GameRequest{GameID: st.GameID}))
	assert.Equal(t, st.Position, reset.Position)
}

func TestJoinLeave(t *testing.T) {
	s := NewServer("", Options{})
	st := newGame(t, s)

	joined := decodeState(t, do(t, s, http.MethodPost, "/api/join", JoinRequest{GameID: st.GameID, User: "ann"}))
	assert.Equal(t, []string{"ann"}, joined.Players)

	left := decodeState(t, do(t, s, http.MethodPost, "/api/leave", JoinRequest{GameID: st.GameID, User: "ann"}))
	assert.Empty(t, left.Players)

	rec := do(t, s, http.MethodPost, "/api/join", JoinRequest{GameID: st.GameID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorStatusCodes(t *testing.T) {
	s := NewServer("", Options{})
	st := newGame(t, s)
	knight := pieceIDAt(t, st, 6, 7)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown game", http.MethodPost, "/api/state", GameRequest{GameID: "missing"}, http.StatusNotFound},
		{"unknown piece", http.MethodPost, "/api/moves", MovesRequest{GameID: st.GameID, PieceID: 999}, http.StatusNotFound},
		{"illegal move", http.MethodPost, "/api/play", PlayRequest{
			GameID: st.GameID, User: "ann", PieceID: knight,
			Move: dropchess.Move{Kind: dropchess.KindMove, X: 6, Y: 6},
		}, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/play", nil, http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/nope", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/state", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBoardSVG(t *testing.T) {
	s := NewServer("", Options{})
	st := newGame(t, s)
	knight := pieceIDAt(t, st, 6, 7)

	rec := do(t, s, http.MethodGet, "/api/board.svg?game_id="+st.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 0, strings.Count(rec.Body.String(), "<circle"))

	rec = do(t, s, http.MethodGet, "/api/board.svg?game_id="+st.GameID+"&piece_id="+itoa(knight), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), "<circle"))

	rec = do(t, s, http.MethodGet, "/api/board.svg?game_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func itoa(v int) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestStaticRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>dropchess</h1>"), 0o644))
	s := NewServer(dir, Options{})

	rec := do(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/web/", rec.Header().Get("Location"))

	rec = do(t, s, http.MethodGet, "/web/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dropchess")

	rec = do(t, s, http.MethodGet, "/elsewhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
