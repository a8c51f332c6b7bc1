package main

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/jacobp100/Glass2048/game/engine"
)

func TestPlayout(t *testing.T) {
	result, err := playout(42, 5000)
	if err != nil {
		t.Fatalf("Playout failed: %v", err)
	}

	if result.Moves <= 0 {
		t.Error("Expected a random game to make at least one move")
	}
	if result.Score < 0 {
		t.Errorf("Expected non-negative score, got %d", result.Score)
	}
	if result.MaxTile < 4 {
		t.Errorf("Expected a finished game to reach at least a 4 tile, got %d", result.MaxTile)
	}
	if result.MaxTile&(result.MaxTile-1) != 0 {
		t.Errorf("Expected the best tile to be a power of two, got %d", result.MaxTile)
	}
}

func TestPlayout_Deterministic(t *testing.T) {
	a, err := playout(7, 5000)
	if err != nil {
		t.Fatalf("Playout failed: %v", err)
	}
	b, err := playout(7, 5000)
	if err != nil {
		t.Fatalf("Playout failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Expected identical playouts for the same seed: %+v vs %+v", a, b)
	}
}

func TestPlayout_MoveCap(t *testing.T) {
	result, err := playout(42, 10)
	if err != nil {
		t.Fatalf("Playout failed: %v", err)
	}
	if result.Moves > 10 {
		t.Errorf("Expected the move cap to hold, got %d moves", result.Moves)
	}
}

func TestPlayout_EndsOnLockedBoard(t *testing.T) {
	result, err := playout(42, 5000)
	if err != nil {
		t.Fatalf("Playout failed: %v", err)
	}
	if result.Moves >= 5000 {
		t.Skip("game hit the move cap before locking")
	}

	// A naturally finished game must have no legal move left in any
	// direction, not just a streak of repeated blocked draws.
	for _, dir := range engine.Directions {
		eng, err := engine.NewEngine(rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("Failed to create engine: %v", err)
		}
		if err := eng.SetBoard(result.Board); err != nil {
			t.Fatalf("Failed to set board: %v", err)
		}
		if _, outcome := eng.Step(dir); outcome.Moved() {
			t.Errorf("Expected the final board to be locked, but %s still moves", dir)
		}
	}
}
