package dropchess

type moveGenerator func(g *Game, pc *Piece, moves *[]Move)

var generators = [numPieceTypes]moveGenerator{
	King:   genKingMoves,
	Queen:  genQueenMoves,
	Bishop: genBishopMoves,
	Knight: genKnightMoves,
	Rook:   genRookMoves,
	Pawn:   genPawnMoves,
}

// Moves lists the legal moves for the live piece with pc's id, in moveset
// order. A piece that is out of play has none.
func (g *Game) Moves(pc Piece) []Move {
	p, ok := g.byID[pc.ID]
	if !ok || !g.active[pc.ID] || !p.Type.Valid() {
		return nil
	}
	moves := make([]Move, 0, 16)
	generators[p.Type](g, p, &moves)
	return moves
}

// MovesFor maps piece id to moves for every active piece of color c that
// has at least one move.
func (g *Game) MovesFor(c Color) map[int][]Move {
	out := make(map[int][]Move)
	for _, pc := range g.pieces {
		if !g.active[pc.ID] || pc.Color != c {
			continue
		}
		if ms := g.Moves(*pc); len(ms) > 0 {
			out[pc.ID] = ms
		}
	}
	return out
}

// FindMove returns the legal move of pc that lands on pt.
func (g *Game) FindMove(pc Piece, pt Point) (Move, bool) {
	for _, m := range g.Moves(pc) {
		if m.X == pt.X && m.Y == pt.Y {
			return m, true
		}
	}
	return Move{}, false
}
