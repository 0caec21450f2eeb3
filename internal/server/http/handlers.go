package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"dropchess/internal/dropchess"
	"dropchess/internal/render"
	"dropchess/internal/server/game"
	"dropchess/internal/server/hub"
)

// Options are server-wide defaults.
type Options struct {
	StrictTurns bool
}

// Handler implements http.Handler for the /api/* routes.
type Handler struct {
	games *game.Manager
	hub   *hub.Hub
	opts  Options
}

func NewHandler(games *game.Manager, h *hub.Hub, opts Options) *Handler {
	return &Handler{games: games, hub: h, opts: opts}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/games":
		if !allow(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, GamesResponse{Games: h.games.List()})

	case "/api/board.svg":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.handleBoardSVG(w, r)

	case "/api/ws":
		if !allow(w, r, http.MethodGet) {
			return
		}
		h.hub.ServeWS(w, r)

	case "/api/new_game":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleNewGame(w, r)

	case "/api/state":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req GameRequest
		if !decode(w, r, &req) {
			return
		}
		h.respond(w, func() (game.View, error) { return h.games.View(req.GameID) })

	case "/api/reset":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req GameRequest
		if !decode(w, r, &req) {
			return
		}
		h.respond(w, func() (game.View, error) { return h.games.Reset(req.GameID) })

	case "/api/join":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req JoinRequest
		if !decode(w, r, &req) || !requireUser(w, req.User) {
			return
		}
		h.respond(w, func() (game.View, error) { return h.games.Join(req.GameID, req.User) })

	case "/api/leave":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req JoinRequest
		if !decode(w, r, &req) || !requireUser(w, req.User) {
			return
		}
		h.respond(w, func() (game.View, error) { return h.games.Leave(req.GameID, req.User) })

	case "/api/select":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req SelectRequest
		if !decode(w, r, &req) || !requireUser(w, req.User) {
			return
		}
		h.respond(w, func() (game.View, error) { return h.games.Select(req.GameID, req.User, req.PieceID) })

	case "/api/moves":
		if !allow(w, r, http.MethodPost) {
			return
		}
		h.handleMoves(w, r)

	case "/api/play":
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req PlayRequest
		if !decode(w, r, &req) || !requireUser(w, req.User) {
			return
		}
		h.respond(w, func() (game.View, error) {
			return h.games.Play(req.GameID, req.User, req.PieceID, req.Move)
		})

	default:
		http.NotFound(w, r)
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

func requireUser(w http.ResponseWriter, user string) bool {
	if user == "" {
		http.Error(w, "missing user", http.StatusBadRequest)
		return false
	}
	return true
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrPieceNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNotYourTurn), errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNotSelected):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		log.Printf("api error: %v", err)
	}
	http.Error(w, err.Error(), code)
}

// respond runs op and writes the resulting state.
func (h *Handler) respond(w http.ResponseWriter, op func() (game.View, error)) {
	v, err := op()
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := stateResponse(v)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	// An empty body means server defaults.
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	opts := game.Options{StrictTurns: h.opts.StrictTurns}
	if req.StrictTurns != nil {
		opts.StrictTurns = *req.StrictTurns
	}
	room := h.games.NewGame(opts)
	h.respond(w, func() (game.View, error) { return h.games.View(room.ID) })
}

func (h *Handler) handleMoves(w http.ResponseWriter, r *http.Request) {
	var req MovesRequest
	if !decode(w, r, &req) {
		return
	}
	moves, err := h.games.Moves(req.GameID, req.PieceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, MovesResponse{GameID: req.GameID, PieceID: req.PieceID, Moves: moves})
}

// handleBoardSVG draws ?game_id= with the moves of ?piece_id= if given,
// else of the room's selected piece.
func (h *Handler) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := h.games.View(q.Get("game_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := dropchess.Restore(v.Snapshot)
	if err != nil {
		writeError(w, err)
		return
	}

	selected := v.SelectedPieceID
	if s := q.Get("piece_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "bad piece_id", http.StatusBadRequest)
			return
		}
		selected = &id
	}

	var opts render.Options
	if selected != nil {
		if pc, ok := g.Piece(*selected); ok && g.IsActive(pc.ID) {
			opts.Selected = &pc
			opts.Moves = g.Moves(pc)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	render.Board(w, g, opts)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
