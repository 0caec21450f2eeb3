package dropchess

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][numPieceTypes][NumTiles]uint64
	zobristTiles  [Dropped + 1][NumTiles]uint64 // Stable row stays zero
	zobristTurn   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for pt := King; pt < numPieceTypes; pt++ {
				for sq := 0; sq < NumTiles; sq++ {
					zobristPieces[c][pt][sq] = next()
				}
			}
		}
		for _, s := range []DropState{Shaking, Dropped} {
			for sq := 0; sq < NumTiles; sq++ {
				zobristTiles[s][sq] = next()
			}
		}
		zobristTurn = next()
	})
}

func pieceHashKey(pc *Piece) uint64 {
	if !onBoard(pc.X, pc.Y) || !pc.Type.Valid() {
		return 0
	}
	if pc.Color != White && pc.Color != Black {
		return 0
	}
	return zobristPieces[pc.Color][pc.Type][indexOf(pc.X, pc.Y)]
}

func tileHashKey(t *Tile) uint64 {
	return zobristTiles[t.DropState][indexOf(t.X, t.Y)]
}

// CalculateHash recomputes the Zobrist hash from scratch: active pieces,
// shaking and dropped tiles, and Turn.
func (g *Game) CalculateHash() uint64 {
	h := g.boardHash()
	if g.Turn == Black {
		h ^= zobristTurn
	}
	return h
}

func (g *Game) boardHash() uint64 {
	initZobrist()

	var h uint64
	for i := range g.tiles {
		h ^= tileHashKey(&g.tiles[i])
	}
	for _, pc := range g.pieces {
		if g.active[pc.ID] {
			h ^= pieceHashKey(pc)
		}
	}
	return h
}

// Hash is the incrementally maintained counterpart of CalculateHash.
func (g *Game) Hash() uint64 {
	h := g.hash
	if g.Turn == Black {
		h ^= zobristTurn
	}
	return h
}
