package dropchess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mv(x, y int) Move   { return Move{Kind: KindMove, X: x, Y: y} }
func push(x, y int) Move { return Move{Kind: KindPush, X: x, Y: y} }

func movesAt(t *testing.T, g *Game, pt Point) []Move {
	t.Helper()
	pc, ok := g.PieceAt(pt)
	require.True(t, ok, "no piece at %v", pt)
	return g.Moves(pc)
}

func TestLoneKingHasEightMoves(t *testing.T) {
	g := newTestGame(t, Piece{Type: King, Color: White, X: 4, Y: 4})

	assert.Equal(t, []Move{
		mv(3, 3), mv(4, 3), mv(5, 3),
		mv(3, 4), mv(5, 4),
		mv(3, 5), mv(4, 5), mv(5, 5),
	}, movesAt(t, g, Point{4, 4}))
}

func TestKingInCornerStaysOnGrid(t *testing.T) {
	g := newTestGame(t, Piece{Type: King, Color: Black, X: 0, Y: 0})
	assert.ElementsMatch(t, []Move{mv(1, 0), mv(0, 1), mv(1, 1)}, movesAt(t, g, Point{0, 0}))
}

func TestRookRayStopsAtPush(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Rook, Color: White, X: 0, Y: 0},
		Piece{Type: Pawn, Color: Black, X: 0, Y: 3},
	)

	moves := movesAt(t, g, Point{0, 0})
	assert.Contains(t, moves, mv(0, 1))
	assert.Contains(t, moves, mv(0, 2))
	assert.Contains(t, moves, push(0, 3))
	for _, m := range moves {
		if m.X == 0 {
			assert.LessOrEqual(t, m.Y, 3, "nothing past the obstruction")
		}
	}
	assert.Len(t, moves, 3+7)
}

func TestRookCannotPushIntoOccupiedSquare(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Rook, Color: White, X: 0, Y: 0},
		Piece{Type: Pawn, Color: Black, X: 0, Y: 3},
		Piece{Type: Pawn, Color: Black, X: 0, Y: 4},
	)
	moves := movesAt(t, g, Point{0, 0})
	assert.NotContains(t, moves, push(0, 3))
	assert.NotContains(t, moves, mv(0, 3))
	assert.Contains(t, moves, mv(0, 2))
}

func TestSlidersCannotTakeOwnPieces(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Bishop, Color: White, X: 2, Y: 2},
		Piece{Type: Pawn, Color: White, X: 3, Y: 3},
	)
	moves := movesAt(t, g, Point{2, 2})
	assert.NotContains(t, moves, mv(3, 3))
	assert.NotContains(t, moves, push(3, 3))
	assert.NotContains(t, moves, mv(4, 4))
	assert.Contains(t, moves, mv(1, 1))
	assert.Contains(t, moves, mv(0, 0))
}

func TestRayStopsBeforeDroppedTile(t *testing.T) {
	g := newTestGame(t, Piece{Type: Queen, Color: White, X: 0, Y: 7})
	setTile(g, 0, 5, Dropped)
	setTile(g, 2, 7, Shaking)

	moves := movesAt(t, g, Point{0, 7})
	assert.Contains(t, moves, mv(0, 6))
	assert.NotContains(t, moves, mv(0, 5))
	assert.NotContains(t, moves, mv(0, 4))
	assert.Contains(t, moves, mv(2, 7), "shaking tiles can be entered")
	assert.Contains(t, moves, mv(7, 7))
}

func TestKnightJumpsAndPushesDiagonally(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Knight, Color: White, X: 3, Y: 3},
		Piece{Type: Pawn, Color: White, X: 3, Y: 2},
		Piece{Type: Pawn, Color: White, X: 4, Y: 2},
		Piece{Type: Pawn, Color: Black, X: 5, Y: 4},
	)
	moves := movesAt(t, g, Point{3, 3})

	assert.Len(t, moves, 8)
	assert.Contains(t, moves, push(5, 4))
	assert.Contains(t, moves, mv(4, 1), "jumps over the pawns in front")

	// A jump of (-2,-1) pushes along (-1,-1), so the pawn on (1,2) needs
	// (0,1) to be free.
	g = newTestGame(t,
		Piece{Type: Knight, Color: White, X: 3, Y: 3},
		Piece{Type: Pawn, Color: Black, X: 1, Y: 2},
	)
	assert.Contains(t, movesAt(t, g, Point{3, 3}), push(1, 2))

	g = newTestGame(t,
		Piece{Type: Knight, Color: White, X: 3, Y: 3},
		Piece{Type: Pawn, Color: Black, X: 1, Y: 2},
		Piece{Type: Pawn, Color: Black, X: 0, Y: 1},
	)
	assert.NotContains(t, movesAt(t, g, Point{3, 3}), push(1, 2))
}

func TestPawnDoubleStepFromStartingRow(t *testing.T) {
	g := newTestGame(t, Piece{Type: Pawn, Color: White, X: 3, Y: 6})
	assert.Equal(t, []Move{mv(3, 5), mv(3, 4)}, movesAt(t, g, Point{3, 6}))

	g = newTestGame(t, Piece{Type: Pawn, Color: Black, X: 3, Y: 1})
	assert.Equal(t, []Move{mv(3, 2), mv(3, 3)}, movesAt(t, g, Point{3, 1}))
}

func TestPawnNoDoubleStepAwayFromStartingRow(t *testing.T) {
	g := newTestGame(t, Piece{Type: Pawn, Color: White, X: 3, Y: 5})
	assert.Equal(t, []Move{mv(3, 4)}, movesAt(t, g, Point{3, 5}))
}

func TestPawnBlockedAhead(t *testing.T) {
	tests := []struct {
		name    string
		blocker Piece
		want    []Move
	}{
		{"enemy on single square", Piece{Type: Rook, Color: Black, X: 3, Y: 5}, []Move{}},
		{"friend on single square", Piece{Type: Rook, Color: White, X: 3, Y: 5}, []Move{}},
		{"enemy on double square", Piece{Type: Rook, Color: Black, X: 3, Y: 4}, []Move{mv(3, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, Piece{Type: Pawn, Color: White, X: 3, Y: 6}, tt.blocker)
			assert.Equal(t, tt.want, movesAt(t, g, Point{3, 6}))
		})
	}

	t.Run("dropped single square", func(t *testing.T) {
		g := newTestGame(t, Piece{Type: Pawn, Color: White, X: 3, Y: 6})
		setTile(g, 3, 5, Dropped)
		assert.Empty(t, movesAt(t, g, Point{3, 6}))
	})
}

func TestPawnThreatensDiagonallyByPushOnly(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Pawn, Color: White, X: 3, Y: 4},
		Piece{Type: Knight, Color: Black, X: 2, Y: 3},
		Piece{Type: Knight, Color: Black, X: 4, Y: 3},
		Piece{Type: Knight, Color: Black, X: 5, Y: 2},
	)
	moves := movesAt(t, g, Point{3, 4})
	assert.Equal(t, []Move{mv(3, 3), push(2, 3)}, moves, "(4,3) cannot give way to (5,2)")

	g = newTestGame(t, Piece{Type: Pawn, Color: White, X: 3, Y: 4})
	assert.Equal(t, []Move{mv(3, 3)}, movesAt(t, g, Point{3, 4}), "empty diagonals are not moves")
}

func TestPushImpliesMoveIllegal(t *testing.T) {
	g := NewGame()
	for i := 0; i < 40; i++ {
		for _, c := range []Color{White, Black} {
			for id, moves := range g.MovesFor(c) {
				pc, _ := g.Piece(id)
				for _, m := range moves {
					if m.Kind != KindPush {
						continue
					}
					target, ok := g.PieceAt(m.Point())
					require.True(t, ok)
					assert.NotEqual(t, pc.Color, target.Color)
					assert.NotContains(t, moves, mv(m.X, m.Y))
				}
			}
		}
		if !playFirst(g, Color(i%2)) {
			break
		}
	}
}

// playFirst plays the last move of the lowest-id piece of c that can move.
func playFirst(g *Game, c Color) bool {
	for _, pc := range g.ActivePieces() {
		if pc.Color != c {
			continue
		}
		if ms := g.Moves(pc); len(ms) > 0 {
			g.Play(pc, ms[len(ms)-1])
			return true
		}
	}
	return false
}

func TestMovesForFallenPieceIsEmpty(t *testing.T) {
	g := newTestGame(t,
		Piece{Type: Rook, Color: White, X: 6, Y: 4},
		Piece{Type: Rook, Color: Black, X: 7, Y: 4},
	)
	black, _ := g.PieceAt(Point{7, 4})
	white, _ := g.PieceAt(Point{6, 4})
	g.Play(white, push(7, 4))

	assert.Nil(t, g.Moves(black))
	assert.Empty(t, g.MovesFor(Black))
	assert.NotEmpty(t, g.MovesFor(White))
}

func TestFindMove(t *testing.T) {
	g := NewGame()
	knight, _ := g.PieceAt(Point{1, 7})

	m, ok := g.FindMove(knight, Point{2, 5})
	require.True(t, ok)
	assert.Equal(t, mv(2, 5), m)

	_, ok = g.FindMove(knight, Point{1, 5})
	assert.False(t, ok)
}
