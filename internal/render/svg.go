// Package render draws a game as an SVG board.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"dropchess/internal/dropchess"
	"dropchess/internal/notation"
)

const sqWidth = 45

// Options controls highlights drawn on top of the board.
type Options struct {
	// Selected outlines the tile under this piece and marks its moves.
	Selected *dropchess.Piece
	Moves    []dropchess.Move

	Light, Dark string
}

func (o Options) colors() (light, dark string) {
	light, dark = o.Light, o.Dark
	if light == "" {
		light = "#f0d9b5"
	}
	if dark == "" {
		dark = "#b58863"
	}
	return light, dark
}

// IsLight reports whether the tile at (x, y) is drawn with the light color.
func IsLight(x, y int) bool {
	if x%2 == 1 {
		return y%2 == 1
	}
	return y%2 == 0
}

// Board writes g as an SVG document to w.
func Board(w io.Writer, g *dropchess.Game, opts Options) {
	light, dark := opts.colors()
	canvas := svg.New(w)
	canvas.Start(sqWidth*dropchess.Columns, sqWidth*dropchess.Rows)

	for _, t := range g.Tiles() {
		x, y := t.X*sqWidth, t.Y*sqWidth
		switch t.DropState {
		case dropchess.Dropped:
			canvas.Rect(x, y, sqWidth, sqWidth, "fill:#1b1b1b")
			continue
		case dropchess.Shaking:
			fill := dark
			if IsLight(t.X, t.Y) {
				fill = light
			}
			canvas.Rect(x, y, sqWidth, sqWidth, "fill:"+fill)
			canvas.Rect(x+2, y+2, sqWidth-4, sqWidth-4, "fill:none;stroke:#c0392b;stroke-width:3;stroke-dasharray:6,3")
		default:
			fill := dark
			if IsLight(t.X, t.Y) {
				fill = light
			}
			canvas.Rect(x, y, sqWidth, sqWidth, "fill:"+fill)
		}
	}

	if sel := opts.Selected; sel != nil {
		canvas.Rect(sel.X*sqWidth, sel.Y*sqWidth, sqWidth, sqWidth, "fill:#f7ec5d;fill-opacity:0.5")
	}

	for _, pc := range g.ActivePieces() {
		canvas.Text(pc.X*sqWidth+sqWidth/2, pc.Y*sqWidth+sqWidth*3/4, string(notation.Glyph(pc)),
			"font-size:36px;text-anchor:middle;font-family:serif")
	}

	for _, m := range opts.Moves {
		cx, cy := m.X*sqWidth+sqWidth/2, m.Y*sqWidth+sqWidth/2
		switch m.Kind {
		case dropchess.KindPush:
			canvas.Circle(cx, cy, sqWidth/2-3, "fill:none;stroke:#2e86de;stroke-width:4;stroke-opacity:0.7")
		default:
			canvas.Circle(cx, cy, sqWidth/8, "fill:#2e86de;fill-opacity:0.7")
		}
	}

	canvas.Desc(fmt.Sprintf("%dx%d board", dropchess.Columns, dropchess.Rows))
	canvas.End()
}
