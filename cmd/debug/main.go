package main

import (
	"fmt"

	"dropchess/internal/dropchess"
	"dropchess/internal/notation"
)

func main() {
	g := dropchess.NewGame()
	fmt.Println("FEN:", notation.Encode(g))
	fmt.Printf("Hash: %016x\n", g.Hash())
	for _, c := range []dropchess.Color{dropchess.White, dropchess.Black} {
		n := 0
		for _, ms := range g.MovesFor(c) {
			n += len(ms)
		}
		fmt.Printf("%s moves: %d\n", c, n)
	}
	fmt.Println(notation.Render(g, nil))
}
