package engine

import (
	"fmt"
	"strings"
)

// BoardSize is the fixed edge length of the grid. The game is always 4x4.
const BoardSize = 4

// Direction identifies the gravity applied by a move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a textual direction into a Direction value.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("invalid direction %q", value)
	}
}

// Position is a grid coordinate. Col and Row are both in [0, BoardSize).
// It is comparable and usable as a map key for occupancy tracking.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// InBounds reports whether the position lies on the grid.
func (p Position) InBounds() bool {
	return p.Col >= 0 && p.Col < BoardSize && p.Row >= 0 && p.Row < BoardSize
}

// TileID is a stable identity token assigned to a tile at creation and
// preserved across moves. When two tiles merge, the surviving tile keeps the
// ID of the tile that was already at the skyline slot, so renderers can
// animate continuity across engine calls.
type TileID uint64

// Tile is an immutable snapshot of a numbered piece occupying one grid cell.
// A move produces new Tile values; it never mutates a tile in place.
type Tile struct {
	ID    TileID   `json:"id"`
	Value int      `json:"value"`
	Pos   Position `json:"pos"`
}

// Board holds the complete game state: the ordered tile collection and the
// accumulated score. At most one tile occupies any position, and the score
// only ever increases, by merge values.
type Board struct {
	Score int    `json:"score"`
	Tiles []Tile `json:"tiles"`
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	tiles := make([]Tile, len(b.Tiles))
	copy(tiles, b.Tiles)
	return Board{Score: b.Score, Tiles: tiles}
}

// TileAt returns the tile occupying pos, if any.
func (b Board) TileAt(pos Position) (Tile, bool) {
	for _, t := range b.Tiles {
		if t.Pos == pos {
			return t, true
		}
	}
	return Tile{}, false
}

// Full reports whether every grid cell is occupied.
func (b Board) Full() bool {
	return len(b.Tiles) == BoardSize*BoardSize
}

// FreePositions returns all unoccupied positions in row-major order. The
// stable order keeps spawn placement reproducible under a seeded source.
func (b Board) FreePositions() []Position {
	occupied := make(map[Position]bool, len(b.Tiles))
	for _, t := range b.Tiles {
		occupied[t.Pos] = true
	}

	free := make([]Position, 0, BoardSize*BoardSize-len(b.Tiles))
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Col: col, Row: row}
			if !occupied[pos] {
				free = append(free, pos)
			}
		}
	}
	return free
}
