// Package engine provides the core rules of the sliding-tile merge puzzle.
//
// The engine package implements the game mechanics including:
//   - Directional compaction and merging over the 4x4 grid
//   - Tile spawning (value 2 with probability 7/8, 4 with probability 1/8)
//   - Score accumulation from merges
//   - Stable per-tile identity for animation continuity
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Board is a copyable value aggregate holding the
// tile collection and score; Tile is an immutable snapshot carrying an
// identity token that survives moves and merges.
//
// Usage:
//
//	eng, err := engine.NewEngine(rand.New(rand.NewSource(seed)))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	spawned, outcome := eng.Step(engine.Left)
//	board := eng.Board()
//
// Two-Phase Moves:
//
// Move applies the shift/merge and returns the spawned tile without adding it
// to the board, so a presentation layer can stage the merge animation and the
// spawn animation at different times; Append commits the tile afterwards. The
// two calls form one logical turn and must not be interleaved with another
// Move on the same board. Step collapses the pair into one atomic call and is
// what every caller without animation concerns should use.
//
// Randomness:
//
// All randomness flows through the *rand.Rand handed to NewEngine. A seeded
// source makes Reset and every subsequent move bit-reproducible, which the
// tests rely on.
package engine
