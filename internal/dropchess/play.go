package dropchess

import "fmt"

// Play applies m for pc. The move must come from Moves: an inactive piece or
// a push onto an empty square panics. Turn is neither checked nor advanced.
func (g *Game) Play(pc Piece, m Move) {
	p := g.livePiece(pc.ID)
	switch m.Kind {
	case KindMove:
		g.relocate(p, m.Point(), false)
	case KindPush:
		g.pushPieceAtPoint(p, m.Point())
		g.relocate(p, m.Point(), false)
	default:
		panic(fmt.Errorf("%w: %d", ErrUnknownMove, m.Kind))
	}
}

func (g *Game) livePiece(id int) *Piece {
	p, ok := g.byID[id]
	if !ok || !g.active[id] {
		panic(fmt.Errorf("%w: id %d", ErrPieceNotActive, id))
	}
	return p
}

// pushPieceAtPoint shoves the occupant of pt one square further along the
// line from pusher to pt.
func (g *Game) pushPieceAtPoint(pusher *Piece, pt Point) {
	target := g.pieceAt(pt)
	if target == nil {
		panic(fmt.Errorf("%w: %d,%d", ErrNothingToPush, pt.X, pt.Y))
	}
	dir := Point{X: pt.X - pusher.X, Y: pt.Y - pusher.Y}.Unit()
	g.relocate(target, pt.Add(dir), true)
}

// relocate runs the tile collapse rules for one piece movement:
//   - a shaking tile drops when its occupant leaves
//   - landing off the grid or on a dropped tile takes the piece out of play
//   - a stable tile starts shaking under a non-pawn that was not pushed
//   - a pawn on its last rank becomes a queen
func (g *Game) relocate(pc *Piece, dest Point, pushed bool) {
	start := g.mustTileAt(pc.Point())
	if start.DropState == Shaking {
		g.setDropState(start, Dropped)
	}

	g.hash ^= pieceHashKey(pc)
	pc.X, pc.Y = dest.X, dest.Y

	end := g.tileAt(dest)
	if end == nil || end.DropState == Dropped {
		g.removePiece(pc)
		return
	}
	g.hash ^= pieceHashKey(pc)

	if end.DropState == Stable && pc.Type != Pawn && !pushed {
		g.setDropState(end, Shaking)
	}

	if pc.Type == Pawn && pc.Y == promotionRow(pc.Color) {
		g.hash ^= pieceHashKey(pc)
		pc.Type = Queen
		g.hash ^= pieceHashKey(pc)
	}
}

func (g *Game) setDropState(t *Tile, s DropState) {
	g.hash ^= tileHashKey(t)
	t.DropState = s
	g.hash ^= tileHashKey(t)
}

// removePiece takes pc out of play. Losing a king decides the game, however
// the king came to fall.
func (g *Game) removePiece(pc *Piece) {
	if !g.active[pc.ID] {
		panic(fmt.Errorf("%w: id %d", ErrPieceNotActive, pc.ID))
	}
	delete(g.active, pc.ID)

	if pc.Type == King {
		g.winner = pc.Color.Opposite()
	}
}
