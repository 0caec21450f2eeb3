package dropchess

var (
	eightWayDirs = []Point{
		{-1, -1}, {0, -1}, {+1, -1},
		{-1, 0}, {+1, 0},
		{-1, +1}, {0, +1}, {+1, +1},
	}
	rookDirs   = []Point{{0, -1}, {-1, 0}, {+1, 0}, {0, +1}}
	bishopDirs = []Point{{-1, -1}, {+1, -1}, {-1, +1}, {+1, +1}}
)

// resolveDestination decides what pc moving onto pt would mean: nothing, a
// plain move onto an empty tile, or a push of an enemy that has room to
// give way.
func resolveDestination(g *Game, pc *Piece, pt Point) (Move, bool) {
	t := g.tileAt(pt)
	if t == nil || t.DropState == Dropped {
		return Move{}, false
	}

	target := g.pieceAt(pt)
	if target == nil {
		return Move{Kind: KindMove, X: pt.X, Y: pt.Y}, true
	}
	if target.Color == pc.Color {
		return Move{}, false
	}

	dir := Point{X: pt.X - pc.X, Y: pt.Y - pc.Y}.Unit()
	if g.CanPush(*target, dir) {
		return Move{Kind: KindPush, X: pt.X, Y: pt.Y}, true
	}
	return Move{}, false
}

// ray walks from start along dir and returns every square visited, up to and
// including the first blocked one.
func ray(g *Game, start, dir Point) []Point {
	step := dir.Unit()
	maxSteps := max(Columns, Rows)
	pts := make([]Point, 0, maxSteps)

	pt := start
	for i := 0; i < maxSteps; i++ {
		pt = pt.Add(step)
		pts = append(pts, pt)
		if g.IsBlocked(pt) {
			break
		}
	}
	return pts
}

func genSliderMoves(g *Game, pc *Piece, dirs []Point, moves *[]Move) {
	for _, d := range dirs {
		for _, pt := range ray(g, pc.Point(), d) {
			if m, ok := resolveDestination(g, pc, pt); ok {
				*moves = append(*moves, m)
			}
		}
	}
}

func genOffsetMoves(g *Game, pc *Piece, offsets []Point, moves *[]Move) {
	for _, d := range offsets {
		if m, ok := resolveDestination(g, pc, pc.Point().Add(d)); ok {
			*moves = append(*moves, m)
		}
	}
}

func genQueenMoves(g *Game, pc *Piece, moves *[]Move) {
	genSliderMoves(g, pc, eightWayDirs, moves)
}

func genRookMoves(g *Game, pc *Piece, moves *[]Move) {
	genSliderMoves(g, pc, rookDirs, moves)
}

func genBishopMoves(g *Game, pc *Piece, moves *[]Move) {
	genSliderMoves(g, pc, bishopDirs, moves)
}

// King: one square in any direction, no ray.
func genKingMoves(g *Game, pc *Piece, moves *[]Move) {
	genOffsetMoves(g, pc, eightWayDirs, moves)
}
