package dropchess

var knightOffsets = []Point{
	{-2, -1}, {-2, +1}, {+2, -1}, {+2, +1},
	{-1, -2}, {-1, +2}, {+1, -2}, {+1, +2},
}

// Knights jump, so nothing in between matters. A knight push shoves the
// target along the sign of the jump, which is always a diagonal.
func genKnightMoves(g *Game, pc *Piece, moves *[]Move) {
	genOffsetMoves(g, pc, knightOffsets, moves)
}
