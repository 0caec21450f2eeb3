package dropchess

// Pawns step forward only onto empty tiles and threaten diagonally only by
// pushing. The double step needs both squares clear and the pawn on its
// starting row.
func genPawnMoves(g *Game, pc *Piece, moves *[]Move) {
	dir := pawnDir(pc.Color)

	single, singleOK := resolveDestination(g, pc, Point{X: pc.X, Y: pc.Y + dir})
	singleOK = singleOK && single.Kind == KindMove
	if singleOK {
		*moves = append(*moves, single)
	}

	if singleOK && pc.Y == pawnStartRow(pc.Color) {
		double, ok := resolveDestination(g, pc, Point{X: pc.X, Y: pc.Y + 2*dir})
		if ok && double.Kind == KindMove {
			*moves = append(*moves, double)
		}
	}

	for _, dx := range []int{-1, +1} {
		m, ok := resolveDestination(g, pc, Point{X: pc.X + dx, Y: pc.Y + dir})
		if ok && m.Kind == KindPush {
			*moves = append(*moves, m)
		}
	}
}
