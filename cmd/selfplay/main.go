package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	totalGames := flag.Int("games", 100, "number of games to play")
	maxMoves := flag.Int("maxmoves", 400, "ply limit per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	flag.Parse()

	var (
		mu    sync.Mutex
		stats Stats
	)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(*workers)
	for n := 0; n < *totalGames; n++ {
		n := n
		gameSeed := *seed + int64(n)
		g.Go(func() error {
			res, err := playGame(gameSeed, *maxMoves)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", n, gameSeed, err)
			}
			mu.Lock()
			stats.Add(res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("invariant violated: %v", err)
	}

	fmt.Printf("\n=== %d games in %v ===\n", *totalGames, time.Since(start).Round(time.Millisecond))
	fmt.Printf("White wins: %d\n", stats.WhiteWins)
	fmt.Printf("Black wins: %d\n", stats.BlackWins)
	fmt.Printf("No moves:   %d\n", stats.Stuck)
	fmt.Printf("Ply limit:  %d\n", stats.Unfinished)
	if stats.Games > 0 {
		fmt.Printf("Avg plies: %.1f, avg dropped tiles: %.1f, pushes: %d\n",
			float64(stats.Plies)/float64(stats.Games),
			float64(stats.Dropped)/float64(stats.Games),
			stats.Pushes)
	}
}
