package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrNilRand          = errors.New("random source cannot be nil")
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrPositionOccupied = errors.New("position already occupied")
	ErrInvalidTileValue = errors.New("tile value must be a positive power of two")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	Board() Board
	Score() int
	SetBoard(board Board) error
	Reset() Board

	// Move operations
	Move(dir Direction) (*Tile, MoveOutcome)
	Append(tile Tile) error
	Step(dir Direction) (*Tile, MoveOutcome)

	// Queries
	TileAt(pos Position) (Tile, bool)
}

// MoveOutcome describes what a move did to the board.
type MoveOutcome int

const (
	// MoveBlocked means nothing shifted or merged; the board is untouched.
	MoveBlocked MoveOutcome = iota
	// MovedNoSpace means the board changed but every cell is occupied, so no
	// tile spawned.
	MovedNoSpace
	// MovedAndSpawned means the board changed and a new tile was drawn.
	MovedAndSpawned
)

// Moved reports whether the board changed.
func (o MoveOutcome) Moved() bool {
	return o != MoveBlocked
}

// String returns a short code for the outcome.
func (o MoveOutcome) String() string {
	switch o {
	case MoveBlocked:
		return "blocked"
	case MovedNoSpace:
		return "moved_no_space"
	case MovedAndSpawned:
		return "moved_and_spawned"
	default:
		return "unknown"
	}
}

// GameEngine implements the Engine interface
type GameEngine struct {
	board  Board
	rng    *rand.Rand
	nextID TileID
}

// NewEngine creates a new game engine using the provided random source.
// The source drives spawn positions and values, so a seeded source makes
// whole games reproducible. The returned engine holds a freshly reset board.
func NewEngine(rng *rand.Rand) (*GameEngine, error) {
	if rng == nil {
		return nil, ErrNilRand
	}

	e := &GameEngine{rng: rng}
	e.Reset()
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with a time-seeded source.
func NewEngineWithDefaults() *GameEngine {
	e := &GameEngine{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	e.Reset()
	return e
}

// Board returns an independent copy of the current board.
func (e *GameEngine) Board() Board {
	return e.board.Clone()
}

// Score returns the current score.
func (e *GameEngine) Score() int {
	return e.board.Score
}

// SetBoard replaces the board state (used for scripted scenarios and tests).
// It rejects boards that violate the occupancy invariant, hold out-of-range
// positions, or carry values that are not positive powers of two.
func (e *GameEngine) SetBoard(board Board) error {
	occupied := make(map[Position]bool, len(board.Tiles))
	maxID := TileID(0)

	for _, t := range board.Tiles {
		if !t.Pos.InBounds() {
			return fmt.Errorf("tile %d at (%d,%d): %w", t.ID, t.Pos.Col, t.Pos.Row, ErrOutOfBounds)
		}
		if occupied[t.Pos] {
			return fmt.Errorf("tile %d at (%d,%d): %w", t.ID, t.Pos.Col, t.Pos.Row, ErrPositionOccupied)
		}
		if t.Value < 2 || t.Value&(t.Value-1) != 0 {
			return fmt.Errorf("tile %d value %d: %w", t.ID, t.Value, ErrInvalidTileValue)
		}
		occupied[t.Pos] = true
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	e.board = board.Clone()
	// Keep future identities unique relative to the injected tiles.
	if maxID > e.nextID {
		e.nextID = maxID
	}
	return nil
}

// Reset clears all tiles and score, then spawns exactly two tiles at distinct
// random positions. It returns a copy of the fresh board.
func (e *GameEngine) Reset() Board {
	e.board = Board{Tiles: make([]Tile, 0, BoardSize*BoardSize)}

	// The first spawn is on the board before the second draws its position,
	// so the two initial tiles always land on distinct cells.
	for i := 0; i < 2; i++ {
		if t := e.spawn(); t != nil {
			e.board.Tiles = append(e.board.Tiles, *t)
		}
	}

	return e.board.Clone()
}

// Append adds a tile to the board. Callers use it to commit the tile a prior
// Move returned, after any animation delay. It fails fast rather than corrupt
// the occupancy invariant.
func (e *GameEngine) Append(tile Tile) error {
	if !tile.Pos.InBounds() {
		return fmt.Errorf("append tile %d at (%d,%d): %w", tile.ID, tile.Pos.Col, tile.Pos.Row, ErrOutOfBounds)
	}
	if _, ok := e.board.TileAt(tile.Pos); ok {
		return fmt.Errorf("append tile %d at (%d,%d): %w", tile.ID, tile.Pos.Col, tile.Pos.Row, ErrPositionOccupied)
	}

	e.board.Tiles = append(e.board.Tiles, tile)
	return nil
}

// Step applies a move and immediately commits the spawned tile, collapsing
// the Move/Append pair into one atomic turn. Callers that do not stage
// animations should prefer it over the two-phase calls.
func (e *GameEngine) Step(dir Direction) (*Tile, MoveOutcome) {
	spawned, outcome := e.Move(dir)
	if spawned != nil {
		e.board.Tiles = append(e.board.Tiles, *spawned)
	}
	return spawned, outcome
}

// TileAt returns the tile occupying pos, if any.
func (e *GameEngine) TileAt(pos Position) (Tile, bool) {
	return e.board.TileAt(pos)
}
