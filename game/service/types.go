package service

import (
	"time"

	"github.com/jacobp100/Glass2048/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string       `json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Board          engine.Board `json:"board"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Moved      bool         `json:"moved"`
	Board      engine.Board `json:"board"`
	Score      int          `json:"score"`
	ScoreDelta int          `json:"score_delta"`
	Spawned    *engine.Tile `json:"spawned,omitempty"`
	BoardFull  bool         `json:"board_full,omitempty"`
	Events     []GameEvent  `json:"events,omitempty"`
}

// GameEvent describes one animatable step of a turn. Slide events fire before
// merge events for the same tile, so a renderer can play them in order.
type GameEvent struct {
	// Type is one of "slide", "merge", "spawn", "reset".
	Type string `json:"type"`
	// Tile is the identity the renderer tracks across the event.
	Tile engine.TileID `json:"tile,omitempty"`
	// Absorbed is the tile that vanished into Tile on a merge.
	Absorbed engine.TileID `json:"absorbed,omitempty"`
	// From is the previous position for slide events.
	From *engine.Position `json:"from,omitempty"`
	// To is the position the event lands on.
	To *engine.Position `json:"to,omitempty"`
	// Value is the tile value after the event.
	Value int `json:"value,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}
