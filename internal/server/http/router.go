package httpserver

import (
	"net/http"

	"dropchess/internal/server/game"
	"dropchess/internal/server/hub"
)

// Server wires the room manager, the websocket hub and the routes together.
type Server struct {
	Games *game.Manager
	Hub   *hub.Hub
	h     http.Handler
}

// NewServer serves /api/* and, when webDir is set, the static client.
func NewServer(webDir string, opts Options) *Server {
	games := game.NewManager()
	wsHub := hub.New(games)

	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, wsHub, opts))
	if webDir != "" {
		RegisterStaticRoutes(mux, webDir)
	}
	return &Server{Games: games, Hub: wsHub, h: mux}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}
