package dropchess

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLayout = errors.New("invalid layout")

	// The following are carried by panics: they mean the caller skipped the
	// legality check that Moves already provides.
	ErrNoTile         = errors.New("no tile at point")
	ErrPieceNotActive = errors.New("piece is not in play")
	ErrNothingToPush  = errors.New("nothing to push")
	ErrUnknownMove    = errors.New("unknown move kind")
)

// Game is the whole mutable board. It has no locking; one writer at a time.
type Game struct {
	// Turn is carried for collaborators. Nothing in this package reads or
	// advances it.
	Turn Color

	winner Color
	tiles  [NumTiles]Tile
	pieces []*Piece // every piece ever created, in creation order
	byID   map[int]*Piece
	active map[int]bool
	hash   uint64
}

// New builds a game from explicit records. Every piece starts in play.
func New(tiles []Tile, pieces []Piece) (*Game, error) {
	records := make([]PieceRecord, len(pieces))
	for i, pc := range pieces {
		records[i] = PieceRecord{Piece: pc, Active: true}
	}
	return build(tiles, records, White, NoColor)
}

func build(tiles []Tile, pieces []PieceRecord, turn, winner Color) (*Game, error) {
	g := &Game{
		Turn:   turn,
		winner: winner,
		byID:   make(map[int]*Piece, len(pieces)),
		active: make(map[int]bool, len(pieces)),
	}
	if turn != White && turn != Black {
		return nil, fmt.Errorf("%w: turn %v", ErrInvalidLayout, turn)
	}

	if len(tiles) != NumTiles {
		return nil, fmt.Errorf("%w: want %d tiles, got %d", ErrInvalidLayout, NumTiles, len(tiles))
	}
	var seen [NumTiles]bool
	for _, t := range tiles {
		if !onBoard(t.X, t.Y) {
			return nil, fmt.Errorf("%w: tile %d,%d is off the grid", ErrInvalidLayout, t.X, t.Y)
		}
		if t.DropState < Stable || t.DropState > Dropped {
			return nil, fmt.Errorf("%w: tile %d,%d has drop state %d", ErrInvalidLayout, t.X, t.Y, t.DropState)
		}
		i := indexOf(t.X, t.Y)
		if seen[i] {
			return nil, fmt.Errorf("%w: duplicate tile %d,%d", ErrInvalidLayout, t.X, t.Y)
		}
		seen[i] = true
		g.tiles[i] = t
	}

	var occupied [NumTiles]bool
	for _, rec := range pieces {
		pc := rec.Piece
		if !pc.Type.Valid() || (pc.Color != White && pc.Color != Black) {
			return nil, fmt.Errorf("%w: piece %d has type %v color %v", ErrInvalidLayout, pc.ID, pc.Type, pc.Color)
		}
		if _, dup := g.byID[pc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate piece id %d", ErrInvalidLayout, pc.ID)
		}
		if rec.Active {
			if !onBoard(pc.X, pc.Y) {
				return nil, fmt.Errorf("%w: active piece %d is off the grid", ErrInvalidLayout, pc.ID)
			}
			i := indexOf(pc.X, pc.Y)
			if g.tiles[i].DropState == Dropped {
				return nil, fmt.Errorf("%w: active piece %d stands on a dropped tile", ErrInvalidLayout, pc.ID)
			}
			if occupied[i] {
				return nil, fmt.Errorf("%w: two pieces on %d,%d", ErrInvalidLayout, pc.X, pc.Y)
			}
			occupied[i] = true
			g.active[pc.ID] = true
		}
		p := pc
		g.pieces = append(g.pieces, &p)
		g.byID[p.ID] = &p
	}

	g.hash = g.boardHash()
	return g, nil
}

// Tile returns the tile at pt, or false when pt is off the grid.
func (g *Game) Tile(pt Point) (Tile, bool) {
	t := g.tileAt(pt)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// MustTile panics with ErrNoTile when pt is off the grid.
func (g *Game) MustTile(pt Point) Tile {
	return *g.mustTileAt(pt)
}

func (g *Game) tileAt(pt Point) *Tile {
	if !onBoard(pt.X, pt.Y) {
		return nil
	}
	return &g.tiles[indexOf(pt.X, pt.Y)]
}

func (g *Game) mustTileAt(pt Point) *Tile {
	t := g.tileAt(pt)
	if t == nil {
		panic(fmt.Errorf("%w: %d,%d", ErrNoTile, pt.X, pt.Y))
	}
	return t
}

// PieceAt returns the active piece on pt.
func (g *Game) PieceAt(pt Point) (Piece, bool) {
	pc := g.pieceAt(pt)
	if pc == nil {
		return Piece{}, false
	}
	return *pc, true
}

// A linear scan over at most 32 pieces; no index is kept.
func (g *Game) pieceAt(pt Point) *Piece {
	for _, pc := range g.pieces {
		if g.active[pc.ID] && pc.X == pt.X && pc.Y == pt.Y {
			return pc
		}
	}
	return nil
}

// Piece looks a piece up by id, whether or not it is still in play.
func (g *Game) Piece(id int) (Piece, bool) {
	pc, ok := g.byID[id]
	if !ok {
		return Piece{}, false
	}
	return *pc, true
}

func (g *Game) IsActive(id int) bool { return g.active[id] }

// IsBlocked reports whether pt is off the grid, dropped, or occupied.
func (g *Game) IsBlocked(pt Point) bool {
	t := g.tileAt(pt)
	return t == nil || t.DropState == Dropped || g.pieceAt(pt) != nil
}

// CanPush reports whether pc could be shoved one square along dir. Only
// another piece stands in the way: the edge of the board and dropped tiles
// do not, since falling off is what a push is for.
func (g *Game) CanPush(pc Piece, dir Point) bool {
	return g.pieceAt(pc.Point().Add(dir.Unit())) == nil
}

// Winner is set once a king leaves play.
func (g *Game) Winner() (Color, bool) {
	return g.winner, g.winner != NoColor
}

func (g *Game) Tiles() []Tile {
	out := make([]Tile, NumTiles)
	copy(out, g.tiles[:])
	return out
}

// Pieces returns every piece ever created, including fallen ones.
func (g *Game) Pieces() []Piece {
	out := make([]Piece, len(g.pieces))
	for i, pc := range g.pieces {
		out[i] = *pc
	}
	return out
}

func (g *Game) ActivePieces() []Piece {
	out := make([]Piece, 0, len(g.active))
	for _, pc := range g.pieces {
		if g.active[pc.ID] {
			out = append(out, *pc)
		}
	}
	return out
}

// KingExists reports whether c still has a king in play.
func (g *Game) KingExists(c Color) bool {
	for _, pc := range g.pieces {
		if g.active[pc.ID] && pc.Type == King && pc.Color == c {
			return true
		}
	}
	return false
}

func (g *Game) Clone() *Game {
	ng := &Game{
		Turn:   g.Turn,
		winner: g.winner,
		tiles:  g.tiles,
		pieces: make([]*Piece, len(g.pieces)),
		byID:   make(map[int]*Piece, len(g.byID)),
		active: make(map[int]bool, len(g.active)),
		hash:   g.hash,
	}
	for i, pc := range g.pieces {
		p := *pc
		ng.pieces[i] = &p
		ng.byID[p.ID] = &p
	}
	for id, ok := range g.active {
		ng.active[id] = ok
	}
	return ng
}
