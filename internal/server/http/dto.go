package httpserver

import (
	"dropchess/internal/dropchess"
	"dropchess/internal/server/game"
)

// NewGame request. StrictTurns falls back to the server default.
type NewGameRequest struct {
	StrictTurns *bool `json:"strict_turns"`
}

// State / reset request.
type GameRequest struct {
	GameID string `json:"game_id"`
}

type JoinRequest struct {
	GameID string `json:"game_id"`
	User   string `json:"user"`
}

type MovesRequest struct {
	GameID  string `json:"game_id"`
	PieceID int    `json:"piece_id"`
}

type MovesResponse struct {
	GameID  string           `json:"game_id"`
	PieceID int              `json:"piece_id"`
	Moves   []dropchess.Move `json:"moves"`
}

// Select request: a null piece_id clears the selection.
type SelectRequest struct {
	GameID  string `json:"game_id"`
	User    string `json:"user"`
	PieceID *int   `json:"piece_id"`
}

type PlayRequest struct {
	GameID  string         `json:"game_id"`
	User    string         `json:"user"`
	PieceID int            `json:"piece_id"`
	Move    dropchess.Move `json:"move"`
}

// StateResponse is the room view plus the moves of every piece that has one,
// keyed by piece id.
type StateResponse struct {
	game.View
	LegalMoves map[int][]dropchess.Move `json:"legal_moves"`
}

type GamesResponse struct {
	Games []string `json:"games"`
}

func legalMoves(v game.View) (map[int][]dropchess.Move, error) {
	g, err := dropchess.Restore(v.Snapshot)
	if err != nil {
		return nil, err
	}
	out := g.MovesFor(dropchess.White)
	for id, ms := range g.MovesFor(dropchess.Black) {
		out[id] = ms
	}
	return out, nil
}

func stateResponse(v game.View) (StateResponse, error) {
	legal, err := legalMoves(v)
	if err != nil {
		return StateResponse{}, err
	}
	return StateResponse{View: v, LegalMoves: legal}, nil
}
