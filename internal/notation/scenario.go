// Package notation reads and writes boards as text: glyph scenarios for
// authoring tests and a compact FEN-like position string.
package notation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"dropchess/internal/dropchess"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario glyphs. A cell is one base glyph followed by any number of
// combining marks.
const (
	glyphEmpty   = '.'
	glyphDropped = '_'
	glyphTarget  = 'x'

	markShaking  = '\u0330'
	markSelected = '\u030c'
	markTarget   = '\u033d'
)

type glyphKey struct {
	color dropchess.Color
	pt    dropchess.PieceType
}

var glyphToPiece = map[rune]glyphKey{
	'♔': {dropchess.White, dropchess.King},
	'♕': {dropchess.White, dropchess.Queen},
	'♗': {dropchess.White, dropchess.Bishop},
	'♘': {dropchess.White, dropchess.Knight},
	'♖': {dropchess.White, dropchess.Rook},
	'♙': {dropchess.White, dropchess.Pawn},
	'♚': {dropchess.Black, dropchess.King},
	'♛': {dropchess.Black, dropchess.Queen},
	'♝': {dropchess.Black, dropchess.Bishop},
	'♞': {dropchess.Black, dropchess.Knight},
	'♜': {dropchess.Black, dropchess.Rook},
	'♟': {dropchess.Black, dropchess.Pawn},
}

var pieceToGlyph = func() map[glyphKey]rune {
	m := make(map[glyphKey]rune, len(glyphToPiece))
	for r, k := range glyphToPiece {
		m[k] = r
	}
	return m
}()

// Glyph returns the chess symbol for pc.
func Glyph(pc dropchess.Piece) rune {
	if r, ok := pieceToGlyph[glyphKey{pc.Color, pc.Type}]; ok {
		return r
	}
	return '?'
}

// Scenario is a small board authored as text, with one selected piece and
// optionally a target square.
type Scenario struct {
	Game      *dropchess.Game
	Selected  dropchess.Piece
	Target    dropchess.Point
	HasTarget bool
}

type cell struct {
	base  rune
	marks []rune
}

func (c cell) has(mark rune) bool {
	for _, m := range c.marks {
		if m == mark {
			return true
		}
	}
	return false
}

func splitCells(line string) []cell {
	var cells []cell
	for _, r := range line {
		if unicode.Is(unicode.Mn, r) && len(cells) > 0 {
			last := &cells[len(cells)-1]
			last.marks = append(last.marks, r)
			continue
		}
		cells = append(cells, cell{base: r})
	}
	return cells
}

func scenarioLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ParseScenario reads an 8x8 glyph board. The selected piece is the one
// carrying the selection mark, else the only white piece, else the only
// piece. Ids follow reading order.
func ParseScenario(text string) (*Scenario, error) {
	lines := scenarioLines(text)
	if len(lines) != dropchess.Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidScenario, dropchess.Rows, len(lines))
	}

	sc := &Scenario{}
	var (
		tiles    []dropchess.Tile
		pieces   []dropchess.Piece
		selected = -1
	)
	for y, line := range lines {
		cells := splitCells(line)
		if len(cells) != dropchess.Columns {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidScenario, y, len(cells))
		}
		for x, c := range cells {
			state := dropchess.Stable
			switch {
			case c.base == glyphDropped || c.base == ' ':
				state = dropchess.Dropped
			case c.has(markShaking):
				state = dropchess.Shaking
			}
			tiles = append(tiles, dropchess.Tile{X: x, Y: y, DropState: state})

			if c.base == glyphTarget || c.has(markTarget) {
				sc.Target = dropchess.Point{X: x, Y: y}
				sc.HasTarget = true
			}

			switch c.base {
			case glyphEmpty, glyphDropped, glyphTarget, ' ':
				continue
			}
			k, ok := glyphToPiece[c.base]
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at %d,%d", ErrInvalidScenario, c.base, x, y)
			}
			if c.has(markSelected) {
				if selected >= 0 {
					return nil, fmt.Errorf("%w: more than one piece is selected", ErrInvalidScenario)
				}
				selected = len(pieces)
			}
			pieces = append(pieces, dropchess.Piece{ID: len(pieces), Type: k.pt, Color: k.color, X: x, Y: y})
		}
	}

	if selected < 0 {
		var whites []int
		for i, pc := range pieces {
			if pc.Color == dropchess.White {
				whites = append(whites, i)
			}
		}
		switch {
		case len(whites) == 1:
			selected = whites[0]
		case len(pieces) == 1:
			selected = 0
		default:
			return nil, fmt.Errorf("%w: no selected piece; mark one with U+030C or leave a single white piece", ErrInvalidScenario)
		}
	}

	g, err := dropchess.New(tiles, pieces)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	sc.Game = g
	sc.Selected = pieces[selected]
	return sc, nil
}

// MustParseScenario is ParseScenario for fixtures known to be valid.
func MustParseScenario(text string) *Scenario {
	sc, err := ParseScenario(text)
	if err != nil {
		panic(err)
	}
	return sc
}

func (sc *Scenario) Moves() []dropchess.Move {
	return sc.Game.Moves(sc.Selected)
}

// TargetMove is the legal move of the selected piece onto the target.
func (sc *Scenario) TargetMove() (dropchess.Move, bool) {
	if !sc.HasTarget {
		return dropchess.Move{}, false
	}
	return sc.Game.FindMove(sc.Selected, sc.Target)
}

// Simulate plays the selected piece onto the target square.
func (sc *Scenario) Simulate() error {
	if !sc.HasTarget {
		return fmt.Errorf("%w: no target to simulate\n%s", ErrInvalidScenario, sc.Render(false))
	}
	m, ok := sc.TargetMove()
	if !ok {
		return fmt.Errorf("%w: %v is not a legal move\n%s", ErrInvalidScenario, sc.Target, sc.Render(true))
	}
	sc.Game.Play(sc.Selected, m)
	return nil
}

func (sc *Scenario) Render(showMoves bool) string {
	var moves []dropchess.Move
	if showMoves {
		moves = sc.Moves()
	}
	return Render(sc.Game, moves)
}

// Render draws the board with one glyph per tile. Destinations in moves are
// drawn as x.
func Render(g *dropchess.Game, moves []dropchess.Move) string {
	targets := make(map[dropchess.Point]bool, len(moves))
	for _, m := range moves {
		targets[m.Point()] = true
	}

	var sb strings.Builder
	for y := 0; y < dropchess.Rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < dropchess.Columns; x++ {
			pt := dropchess.Point{X: x, Y: y}
			t := g.MustTile(pt)
			if t.DropState == dropchess.Dropped {
				sb.WriteRune(glyphDropped)
				continue
			}
			if targets[pt] {
				sb.WriteRune(glyphTarget)
				continue
			}
			if pc, ok := g.PieceAt(pt); ok {
				sb.WriteRune(Glyph(pc))
			} else {
				sb.WriteRune(glyphEmpty)
			}
			if t.DropState == dropchess.Shaking {
				sb.WriteRune(markShaking)
			}
		}
	}
	return sb.String()
}
