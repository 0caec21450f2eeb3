package main

import (
	"fmt"
	"math/rand"

	"dropchess/internal/dropchess"
)

type Outcome int

const (
	Unfinished Outcome = iota
	WhiteWon
	BlackWon
	Stuck // side to play had no move
)

type Result struct {
	Outcome Outcome
	Plies   int
	Pushes  int
	Dropped int
}

type Stats struct {
	Games, Plies, Pushes, Dropped           int
	WhiteWins, BlackWins, Stuck, Unfinished int
}

func (s *Stats) Add(r Result) {
	s.Games++
	s.Plies += r.Plies
	s.Pushes += r.Pushes
	s.Dropped += r.Dropped
	switch r.Outcome {
	case WhiteWon:
		s.WhiteWins++
	case BlackWon:
		s.BlackWins++
	case Stuck:
		s.Stuck++
	default:
		s.Unfinished++
	}
}

// playGame plays uniformly random moves, alternating colors, and checks the
// board invariants after every ply.
func playGame(seed int64, maxMoves int) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	g := dropchess.NewGame()
	var res Result

	for ply := 0; ply < maxMoves; ply++ {
		if w, over := g.Winner(); over {
			if w == dropchess.White {
				res.Outcome = WhiteWon
			} else {
				res.Outcome = BlackWon
			}
			break
		}

		moves := g.MovesFor(g.Turn)
		if len(moves) == 0 {
			res.Outcome = Stuck
			break
		}

		var ids []int
		for _, pc := range g.ActivePieces() {
			if len(moves[pc.ID]) > 0 {
				ids = append(ids, pc.ID)
			}
		}
		pc, _ := g.Piece(ids[rng.Intn(len(ids))])
		ms := moves[pc.ID]
		m := ms[rng.Intn(len(ms))]

		before := g.Tiles()
		g.Play(pc, m)
		if m.Kind == dropchess.KindPush {
			res.Pushes++
		}
		res.Plies++
		g.Turn = g.Turn.Opposite()

		if err := checkInvariants(g, before); err != nil {
			return res, fmt.Errorf("ply %d, piece %d %v: %w", ply, pc.ID, m, err)
		}
	}

	for _, t := range g.Tiles() {
		if t.DropState == dropchess.Dropped {
			res.Dropped++
		}
	}
	return res, nil
}

func checkInvariants(g *dropchess.Game, before []dropchess.Tile) error {
	after := g.Tiles()
	for i := range after {
		if after[i].DropState < before[i].DropState {
			return fmt.Errorf("tile %v went from %s back to %s", after[i].Point(), before[i].DropState, after[i].DropState)
		}
	}

	seen := make(map[dropchess.Point]int)
	for _, pc := range g.ActivePieces() {
		t, ok := g.Tile(pc.Point())
		if !ok {
			return fmt.Errorf("active piece %d off the board at %v", pc.ID, pc.Point())
		}
		if t.DropState == dropchess.Dropped {
			return fmt.Errorf("active piece %d on dropped tile %v", pc.ID, pc.Point())
		}
		if other, dup := seen[pc.Point()]; dup {
			return fmt.Errorf("pieces %d and %d share %v", other, pc.ID, pc.Point())
		}
		seen[pc.Point()] = pc.ID
		lastRank := 0
		if pc.Color == dropchess.Black {
			lastRank = dropchess.Rows - 1
		}
		if pc.Type == dropchess.Pawn && pc.Y == lastRank {
			return fmt.Errorf("pawn %d left unpromoted on %v", pc.ID, pc.Point())
		}
	}

	if w, over := g.Winner(); over {
		if g.KingExists(w.Opposite()) {
			return fmt.Errorf("%s won but the %s king is in play", w, w.Opposite())
		}
	} else if !g.KingExists(dropchess.White) || !g.KingExists(dropchess.Black) {
		return fmt.Errorf("a king fell without a winner")
	}

	if g.Hash() != g.CalculateHash() {
		return fmt.Errorf("hash drifted: %016x != %016x", g.Hash(), g.CalculateHash())
	}
	return nil
}
