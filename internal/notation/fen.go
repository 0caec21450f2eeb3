package notation

import (
	"errors"
	"strings"

	"dropchess/internal/dropchess"
)

// FEN-like position string: 8 ranks joined by "/", then " w" or " b".
//
//	K Q B N R P / k q b n r p   piece (white upper case)
//	1-8                         run of empty stable tiles
//	-                           empty shaking tile
//	_                           dropped tile
//	*                           after a letter: the tile under it shakes
const (
	fenShakingEmpty = '-'
	fenDropped      = '_'
	fenShakingMark  = '*'
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Encode writes the active pieces and tile states of g. Fallen pieces are
// not part of a position.
func Encode(g *dropchess.Game) string {
	var sb strings.Builder
	for y := 0; y < dropchess.Rows; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		flush := func() {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
		}
		for x := 0; x < dropchess.Columns; x++ {
			pt := dropchess.Point{X: x, Y: y}
			t := g.MustTile(pt)
			pc, occupied := g.PieceAt(pt)
			switch {
			case occupied:
				flush()
				sb.WriteRune(pc.Letter())
				if t.DropState == dropchess.Shaking {
					sb.WriteByte(fenShakingMark)
				}
			case t.DropState == dropchess.Dropped:
				flush()
				sb.WriteByte(fenDropped)
			case t.DropState == dropchess.Shaking:
				flush()
				sb.WriteByte(fenShakingEmpty)
			default:
				empty++
			}
		}
		flush()
	}
	sb.WriteByte(' ')
	if g.Turn == dropchess.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// Decode builds a game from a string written by Encode. Piece ids follow
// reading order.
func Decode(fen string) (*dropchess.Game, error) {
	parts := strings.Fields(fen)
	if len(parts) != 2 {
		return nil, ErrInvalidFEN
	}
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != dropchess.Rows {
		return nil, ErrInvalidFEN
	}

	var (
		tiles  = make([]dropchess.Tile, 0, dropchess.NumTiles)
		pieces []dropchess.Piece
	)
	for y, rank := range ranks {
		x := 0
		for _, ch := range rank {
			switch {
			case ch == fenShakingMark:
				if len(pieces) == 0 || len(tiles) == 0 {
					return nil, ErrInvalidFEN
				}
				last := &tiles[len(tiles)-1]
				lp := pieces[len(pieces)-1]
				if lp.X != last.X || lp.Y != last.Y || last.DropState != dropchess.Stable {
					return nil, ErrInvalidFEN
				}
				last.DropState = dropchess.Shaking
				continue
			case ch >= '1' && ch <= '8':
				n := int(ch - '0')
				if x+n > dropchess.Columns {
					return nil, ErrInvalidFEN
				}
				for i := 0; i < n; i++ {
					tiles = append(tiles, dropchess.Tile{X: x, Y: y, DropState: dropchess.Stable})
					x++
				}
				continue
			}

			if x >= dropchess.Columns {
				return nil, ErrInvalidFEN
			}
			tile := dropchess.Tile{X: x, Y: y, DropState: dropchess.Stable}
			switch ch {
			case fenDropped:
				tile.DropState = dropchess.Dropped
			case fenShakingEmpty:
				tile.DropState = dropchess.Shaking
			default:
				color, pt, ok := dropchess.ParseLetter(ch)
				if !ok {
					return nil, ErrInvalidFEN
				}
				pieces = append(pieces, dropchess.Piece{ID: len(pieces), Type: pt, Color: color, X: x, Y: y})
			}
			tiles = append(tiles, tile)
			x++
		}
		if x != dropchess.Columns {
			return nil, ErrInvalidFEN
		}
	}

	g, err := dropchess.New(tiles, pieces)
	if err != nil {
		return nil, err
	}
	switch parts[1] {
	case "w":
		g.Turn = dropchess.White
	case "b":
		g.Turn = dropchess.Black
	default:
		return nil, ErrInvalidFEN
	}
	return g, nil
}
