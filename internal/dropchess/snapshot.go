package dropchess

// PieceRecord is a piece as stored in a shared document: fallen pieces are
// kept with Active false.
type PieceRecord struct {
	Piece
	Active bool `json:"active"`
}

// Snapshot is the plain-record form of a Game, free of pointers, suitable
// for JSON documents and network sync.
type Snapshot struct {
	Tiles  []Tile        `json:"tiles"`
	Pieces []PieceRecord `json:"pieces"`
	Turn   Color         `json:"turn"`
	Winner *Color        `json:"winner,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tiles:  g.Tiles(),
		Pieces: make([]PieceRecord, len(g.pieces)),
		Turn:   g.Turn,
	}
	for i, pc := range g.pieces {
		s.Pieces[i] = PieceRecord{Piece: *pc, Active: g.active[pc.ID]}
	}
	if w, ok := g.Winner(); ok {
		s.Winner = &w
	}
	return s
}

// Restore rehydrates a game from a snapshot. The winner is taken from the
// snapshot when present, otherwise derived from a missing king.
func Restore(s Snapshot) (*Game, error) {
	winner := NoColor
	if s.Winner != nil {
		winner = *s.Winner
	}
	g, err := build(s.Tiles, s.Pieces, s.Turn, winner)
	if err != nil {
		return nil, err
	}
	if g.winner == NoColor {
		for _, pc := range g.pieces {
			if pc.Type == King && !g.active[pc.ID] {
				g.winner = pc.Color.Opposite()
				break
			}
		}
	}
	return g, nil
}
