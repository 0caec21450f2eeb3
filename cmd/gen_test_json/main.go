package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"dropchess/internal/dropchess"
	"dropchess/internal/notation"
)

// TestCase is one position with the full move list of the side to play,
// for checking other implementations of the rules.
type TestCase struct {
	Position string                   `json:"position"`
	Snapshot dropchess.Snapshot       `json:"snapshot"`
	Moves    map[int][]dropchess.Move `json:"moves"`
	Played   *PlayedMove              `json:"played,omitempty"`
}

type PlayedMove struct {
	PieceID int            `json:"piece_id"`
	Move    dropchess.Move `json:"move"`
	// Position after the move.
	Result string `json:"result"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxMoves := flag.Int("maxmoves", 200, "ply limit per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	testCases := generate(rand.New(rand.NewSource(*seed)), *numGames, *maxMoves)

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}

// generate samples random games. Each move is played on a clone, which then
// becomes the next position.
func generate(rng *rand.Rand, numGames, maxMoves int) []TestCase {
	var testCases []TestCase
	for n := 0; n < numGames; n++ {
		g := dropchess.NewGame()
		for ply := 0; ply < maxMoves; ply++ {
			tc := TestCase{
				Position: notation.Encode(g),
				Snapshot: g.Snapshot(),
				Moves:    g.MovesFor(g.Turn),
			}
			if _, over := g.Winner(); over || len(tc.Moves) == 0 {
				testCases = append(testCases, tc)
				break
			}

			pc, m := pickRandom(rng, g, tc.Moves)
			next := g.Clone()
			next.Play(pc, m)
			next.Turn = g.Turn.Opposite()

			tc.Played = &PlayedMove{PieceID: pc.ID, Move: m, Result: notation.Encode(next)}
			testCases = append(testCases, tc)
			g = next
		}
	}
	return testCases
}

// pickRandom draws a piece uniformly, then one of its moves.
func pickRandom(rng *rand.Rand, g *dropchess.Game, moves map[int][]dropchess.Move) (dropchess.Piece, dropchess.Move) {
	var ids []int
	for _, pc := range g.ActivePieces() {
		if len(moves[pc.ID]) > 0 {
			ids = append(ids, pc.ID)
		}
	}
	id := ids[rng.Intn(len(ids))]
	pc, _ := g.Piece(id)
	ms := moves[id]
	return pc, ms[rng.Intn(len(ms))]
}
