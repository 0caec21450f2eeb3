// Package game keeps the in-memory rooms served by the local server.
package game

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"dropchess/internal/dropchess"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrPieceNotFound = errors.New("piece not found")
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game over")
	ErrNotSelected   = errors.New("selection held by another player")
)

type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	onChange func(View)
}

func NewManager() *Manager {
	return &Manager{rooms: make(map[string]*Room)}
}

// OnChange registers fn to receive the view of every room after it changes.
// Calls for one room are serialized in update order; fn must not call back
// into the manager.
func (m *Manager) OnChange(fn func(View)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Manager) notify(v View) {
	m.mu.RLock()
	fn := m.onChange
	m.mu.RUnlock()
	if fn != nil {
		fn(v)
	}
}

func (m *Manager) NewGame(opts Options) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	r := &Room{
		ID:        uuid.NewString(),
		Game:      dropchess.NewGame(),
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.rooms[r.ID] = r
	log.Printf("room %s created (strict turns: %v)", r.ID, opts.StrictTurns)
	return r
}

func (m *Manager) Get(id string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return r, nil
}

// List returns the room ids in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := maps.Keys(m.rooms)
	slices.Sort(keys)
	return keys
}

// update runs fn under the room lock and, if fn succeeds, stamps the room and
// hands its new view to the change listener. Views of one room reach the
// listener in the order the updates were applied.
func (m *Manager) update(id string, fn func(r *Room) error) (View, error) {
	r, err := m.Get(id)
	if err != nil {
		return View{}, err
	}

	r.mu.Lock()
	if err := fn(r); err != nil {
		r.mu.Unlock()
		return View{}, err
	}
	r.seq++
	r.UpdatedAt = time.Now()
	v := r.view()
	r.notifyMu.Lock()
	r.mu.Unlock()

	defer r.notifyMu.Unlock()
	m.notify(v)
	return v, nil
}

func (m *Manager) View(id string) (View, error) {
	r, err := m.Get(id)
	if err != nil {
		return View{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

// Reset puts the starting position back on the board. Players stay.
func (m *Manager) Reset(id string) (View, error) {
	return m.update(id, func(r *Room) error {
		r.Game = dropchess.NewGame()
		r.clearSelection()
		log.Printf("room %s reset", r.ID)
		return nil
	})
}

func (m *Manager) Join(id, user string) (View, error) {
	return m.update(id, func(r *Room) error {
		if !r.hasPlayer(user) {
			r.Players = append(r.Players, user)
		}
		return nil
	})
}

// Leave removes user and drops any selection they held.
func (m *Manager) Leave(id, user string) (View, error) {
	return m.update(id, func(r *Room) error {
		r.Players = slices.DeleteFunc(r.Players, func(p string) bool { return p == user })
		if r.ActiveUser == user {
			r.clearSelection()
		}
		return nil
	})
}

// livePiece must be called with r.mu held.
func (r *Room) livePiece(pieceID int) (dropchess.Piece, error) {
	pc, ok := r.Game.Piece(pieceID)
	if !ok || !r.Game.IsActive(pieceID) {
		return dropchess.Piece{}, fmt.Errorf("%w: %d", ErrPieceNotFound, pieceID)
	}
	return pc, nil
}

func (r *Room) checkTurn(pc dropchess.Piece) error {
	if r.Options.StrictTurns && pc.Color != r.Game.Turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, r.Game.Turn)
	}
	return nil
}

// Select makes user the active player with pieceID selected. A nil pieceID
// clears the selection.
func (m *Manager) Select(id, user string, pieceID *int) (View, error) {
	return m.update(id, func(r *Room) error {
		if r.ActiveUser != "" && r.ActiveUser != user {
			return fmt.Errorf("%w: %s", ErrNotSelected, r.ActiveUser)
		}
		if pieceID == nil {
			r.clearSelection()
			return nil
		}
		if _, over := r.Game.Winner(); over {
			return ErrGameOver
		}
		pc, err := r.livePiece(*pieceID)
		if err != nil {
			return err
		}
		if err := r.checkTurn(pc); err != nil {
			return err
		}
		sel := pc.ID
		r.SelectedPieceID = &sel
		r.ActiveUser = user
		return nil
	})
}

func (m *Manager) Moves(id string, pieceID int) ([]dropchess.Move, error) {
	r, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pc, err := r.livePiece(pieceID)
	if err != nil {
		return nil, err
	}
	return r.Game.Moves(pc), nil
}

// Play applies mv for pieceID after checking it against the generated
// moves. The room then hands the turn to the other color.
func (m *Manager) Play(id, user string, pieceID int, mv dropchess.Move) (View, error) {
	return m.update(id, func(r *Room) error {
		if _, over := r.Game.Winner(); over {
			return ErrGameOver
		}
		if r.ActiveUser != "" && r.ActiveUser != user {
			return fmt.Errorf("%w: %s", ErrNotSelected, r.ActiveUser)
		}
		pc, err := r.livePiece(pieceID)
		if err != nil {
			return err
		}
		if err := r.checkTurn(pc); err != nil {
			return err
		}
		legal, ok := r.Game.FindMove(pc, mv.Point())
		if !ok || legal.Kind != mv.Kind {
			return fmt.Errorf("%w: piece %d to %v", ErrIllegalMove, pieceID, mv.Point())
		}

		r.Game.Play(pc, legal)
		r.Game.Turn = pc.Color.Opposite()
		r.clearSelection()

		if w, over := r.Game.Winner(); over {
			log.Printf("room %s: %s played piece %d %s %v, %s wins", r.ID, user, pieceID, legal.Kind, legal.Point(), w)
		} else {
			log.Printf("room %s: %s played piece %d %s %v", r.ID, user, pieceID, legal.Kind, legal.Point())
		}
		return nil
	})
}
