package dropchess

import (
	"strings"
	"unicode"
)

const (
	Rows     = 8
	Columns  = 8
	NumTiles = Rows * Columns
)

func indexOf(x, y int) int { return y*Columns + x }

func onBoard(x, y int) bool {
	return x >= 0 && x < Columns && y >= 0 && y < Rows
}

// White advances towards row 0, black towards the last row.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return +1
}

func pawnStartRow(c Color) int {
	if c == White {
		return Rows - 2
	}
	return 1
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return Rows - 1
}

var letterToPieceType = map[rune]PieceType{
	'k': King,
	'q': Queen,
	'b': Bishop,
	'n': Knight,
	'r': Rook,
	'p': Pawn,
}

// Letter is the FEN-style letter for the piece: upper case for white.
func (p Piece) Letter() rune {
	var base rune
	for k, v := range letterToPieceType {
		if v == p.Type {
			base = k
			break
		}
	}
	if base == 0 {
		return '?'
	}
	if p.Color == White {
		return unicode.ToUpper(base)
	}
	return base
}

// ParseLetter is the inverse of Piece.Letter.
func ParseLetter(ch rune) (Color, PieceType, bool) {
	pt, ok := letterToPieceType[unicode.ToLower(ch)]
	if !ok {
		return NoColor, PieceNone, false
	}
	if unicode.IsUpper(ch) {
		return White, pt, true
	}
	return Black, pt, true
}

const initialBoardString = `rnbqkbnr
pppppppp
........
........
........
........
PPPPPPPP
RNBQKBNR`

func newTiles() []Tile {
	tiles := make([]Tile, 0, NumTiles)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, DropState: Stable})
		}
	}
	return tiles
}

// Ids are handed out in reading order, starting at 0.
func parseInitialPieces() []Piece {
	lines := strings.Split(initialBoardString, "\n")
	if len(lines) != Rows {
		panic("initialBoardString does not have 8 rows")
	}
	var pieces []Piece
	for y, line := range lines {
		if len(line) != Columns {
			panic("initialBoardString row does not have 8 columns")
		}
		for x, ch := range line {
			if ch == '.' {
				continue
			}
			color, pt, ok := ParseLetter(ch)
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			pieces = append(pieces, Piece{ID: len(pieces), Type: pt, Color: color, X: x, Y: y})
		}
	}
	return pieces
}

// NewGame returns a game in the standard starting layout with white to move.
func NewGame() *Game {
	g, err := New(newTiles(), parseInitialPieces())
	if err != nil {
		panic(err)
	}
	return g
}
