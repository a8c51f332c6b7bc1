// Command simulate runs batches of random playouts against the board engine
// and prints quick, human-readable statistics: score spread, game length, and
// the highest tile reached. It is a balance-checking aid, not a solver; every
// game just picks uniformly random directions until the board locks up.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/jacobp100/Glass2048/game/engine"
)

var (
	games    = flag.Int("games", 100, "Number of games to play")
	seed     = flag.Int64("seed", 1, "Base random seed; game i uses seed+i")
	maxMoves = flag.Int("max-moves", 5000, "Safety cap on moves per game")
)

// playoutResult summarizes one finished game.
type playoutResult struct {
	Score   int
	Moves   int
	MaxTile int
	Board   engine.Board
}

func main() {
	flag.Parse()

	if *games <= 0 {
		fmt.Fprintln(os.Stderr, "games must be positive")
		os.Exit(1)
	}

	results := make([]playoutResult, 0, *games)
	for i := 0; i < *games; i++ {
		result, err := playout(*seed+int64(i), *maxMoves)
		if err != nil {
			fmt.Fprintf(os.Stderr, "game %d failed: %v\n", i, err)
			os.Exit(1)
		}
		results = append(results, result)
	}

	report(results)
}

// playout plays one random game to completion. The board and the direction
// script draw from separate sources so the game matches what the same seed
// produces elsewhere.
func playout(seed int64, maxMoves int) (playoutResult, error) {
	eng, err := engine.NewEngine(rand.New(rand.NewSource(seed)))
	if err != nil {
		return playoutResult{}, err
	}
	script := rand.New(rand.NewSource(seed + 10_000))

	played := 0
	blocked := make(map[engine.Direction]bool)
	for played < maxMoves && len(blocked) < len(engine.Directions) {
		dir := engine.Directions[script.Intn(len(engine.Directions))]
		if _, outcome := eng.Step(dir); !outcome.Moved() {
			blocked[dir] = true
			continue
		}
		clear(blocked)
		played++
	}

	board := eng.Board()
	maxTile := 0
	for _, tile := range board.Tiles {
		if tile.Value > maxTile {
			maxTile = tile.Value
		}
	}

	return playoutResult{Score: board.Score, Moves: played, MaxTile: maxTile, Board: board}, nil
}

// report prints aggregate statistics for a batch of playouts.
func report(results []playoutResult) {
	minScore, maxScore, totalScore := results[0].Score, results[0].Score, 0
	totalMoves := 0
	best := 0
	tiles := make(map[int]int)

	for _, r := range results {
		if r.Score < minScore {
			minScore = r.Score
		}
		if r.Score > maxScore {
			maxScore = r.Score
		}
		totalScore += r.Score
		totalMoves += r.Moves
		if r.MaxTile > best {
			best = r.MaxTile
		}
		tiles[r.MaxTile]++
	}

	fmt.Printf("=== %d random playouts ===\n", len(results))
	fmt.Printf("Score: min %d, avg %.1f, max %d\n", minScore, float64(totalScore)/float64(len(results)), maxScore)
	fmt.Printf("Moves per game: avg %.1f\n", float64(totalMoves)/float64(len(results)))
	fmt.Printf("Best tile overall: %d\n", best)

	fmt.Println("Highest tile distribution:")
	for tile := 2; tile <= best; tile *= 2 {
		if count := tiles[tile]; count > 0 {
			fmt.Printf("  %5d: %d games\n", tile, count)
		}
	}
}
