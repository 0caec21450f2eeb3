package dropchess

import "fmt"

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

func (c Color) MarshalText() ([]byte, error) {
	if c != White && c != Black {
		return nil, fmt.Errorf("dropchess: cannot marshal color %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	switch string(b) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("dropchess: unknown color %q", b)
	}
	return nil
}

type PieceType int8

const (
	PieceNone PieceType = iota
	King
	Queen
	Bishop
	Knight
	Rook
	Pawn

	numPieceTypes
)

var pieceTypeNames = [numPieceTypes]string{
	PieceNone: "none",
	King:      "king",
	Queen:     "queen",
	Bishop:    "bishop",
	Knight:    "knight",
	Rook:      "rook",
	Pawn:      "pawn",
}

func (t PieceType) Valid() bool { return t > PieceNone && t < numPieceTypes }

func (t PieceType) String() string {
	if t < 0 || t >= numPieceTypes {
		return "none"
	}
	return pieceTypeNames[t]
}

func (t PieceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("dropchess: cannot marshal piece type %d", t)
	}
	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(b []byte) error {
	for pt := King; pt < numPieceTypes; pt++ {
		if pieceTypeNames[pt] == string(b) {
			*t = pt
			return nil
		}
	}
	return fmt.Errorf("dropchess: unknown piece type %q", b)
}

// DropState only ever moves forward: Stable -> Shaking -> Dropped.
type DropState int8

const (
	Stable DropState = iota
	Shaking
	Dropped
)

func (s DropState) String() string {
	switch s {
	case Stable:
		return "stable"
	case Shaking:
		return "shaking"
	case Dropped:
		return "dropped"
	}
	return "unknown"
}

func (s DropState) MarshalText() ([]byte, error) {
	if s < Stable || s > Dropped {
		return nil, fmt.Errorf("dropchess: cannot marshal drop state %d", s)
	}
	return []byte(s.String()), nil
}

func (s *DropState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "stable":
		*s = Stable
	case "shaking":
		*s = Shaking
	case "dropped":
		*s = Dropped
	default:
		return fmt.Errorf("dropchess: unknown drop state %q", b)
	}
	return nil
}

type MoveKind int8

const (
	KindMove MoveKind = iota
	KindPush
)

func (k MoveKind) String() string {
	if k == KindPush {
		return "push"
	}
	return "move"
}

func (k MoveKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *MoveKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "move":
		*k = KindMove
	case "push":
		*k = KindPush
	default:
		return fmt.Errorf("dropchess: unknown move type %q", b)
	}
	return nil
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Unit reduces each component to its sign.
func (p Point) Unit() Point { return Point{X: sign(p.X), Y: sign(p.Y)} }

func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

type Tile struct {
	X         int       `json:"x"`
	Y         int       `json:"y"`
	DropState DropState `json:"dropState"`
}

func (t Tile) Point() Point { return Point{X: t.X, Y: t.Y} }

// Piece.ID is the only identity that survives moves and promotion.
type Piece struct {
	ID    int       `json:"id"`
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
}

func (p Piece) Point() Point { return Point{X: p.X, Y: p.Y} }

// Move is a candidate destination. A push displaces the enemy on (X, Y) one
// square further along the line before the acting piece lands there.
type Move struct {
	Kind MoveKind `json:"type"`
	X    int      `json:"x"`
	Y    int      `json:"y"`
}

func (m Move) Point() Point { return Point{X: m.X, Y: m.Y} }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
