package game

import (
	"fmt"
	"sync"
	"time"

	"dropchess/internal/dropchess"
	"dropchess/internal/notation"
)

// Options are fixed when a room is created.
type Options struct {
	// StrictTurns refuses selections and plays by the color not on turn.
	StrictTurns bool
}

// Room is one shared board with the players looking at it.
type Room struct {
	mu sync.Mutex
	// notifyMu is taken before mu is released so listeners see updates in
	// order.
	notifyMu sync.Mutex
	seq      uint64

	ID              string
	Game            *dropchess.Game
	Players         []string
	SelectedPieceID *int
	ActiveUser      string
	Options         Options
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	StatusOngoing  = "ongoing"
	StatusWhiteWon = "white_won"
	StatusBlackWon = "black_won"
)

// View is what clients see of a room.
type View struct {
	GameID          string             `json:"game_id"`
	Seq             uint64             `json:"seq"`
	Position        string             `json:"position"`
	Snapshot        dropchess.Snapshot `json:"snapshot"`
	Hash            string             `json:"hash"`
	Status          string             `json:"status"`
	Players         []string           `json:"players"`
	SelectedPieceID *int               `json:"selected_piece_id"`
	ActiveUser      string             `json:"active_user,omitempty"`
	StrictTurns     bool               `json:"strict_turns"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func status(g *dropchess.Game) string {
	w, ok := g.Winner()
	switch {
	case !ok:
		return StatusOngoing
	case w == dropchess.White:
		return StatusWhiteWon
	default:
		return StatusBlackWon
	}
}

// view must be called with r.mu held.
func (r *Room) view() View {
	players := append([]string(nil), r.Players...)
	var sel *int
	if r.SelectedPieceID != nil {
		id := *r.SelectedPieceID
		sel = &id
	}
	return View{
		GameID:          r.ID,
		Seq:             r.seq,
		Position:        notation.Encode(r.Game),
		Snapshot:        r.Game.Snapshot(),
		Hash:            fmt.Sprintf("%016x", r.Game.Hash()),
		Status:          status(r.Game),
		Players:         players,
		SelectedPieceID: sel,
		ActiveUser:      r.ActiveUser,
		StrictTurns:     r.Options.StrictTurns,
		UpdatedAt:       r.UpdatedAt,
	}
}

func (r *Room) hasPlayer(user string) bool {
	for _, p := range r.Players {
		if p == user {
			return true
		}
	}
	return false
}

func (r *Room) clearSelection() {
	r.SelectedPieceID = nil
	r.ActiveUser = ""
}
