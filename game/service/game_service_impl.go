package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jacobp100/Glass2048/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewGameService creates a new game service instance. A nil logger falls back
// to the process default.
func NewGameService(sessions SessionManager, logger *slog.Logger) GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &gameServiceImpl{
		sessions: sessions,
		logger:   logger,
	}
}

// touch refreshes a session's last-accessed timestamp. A failure only means
// the session vanished between lookup and touch, so it is logged rather than
// surfaced to the caller.
func (s *gameServiceImpl) touch(sessionID string) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.logger.Warn("failed to update last accessed time", "session_id", sessionID, "error", err)
	}
}

// CreateSession creates a new game session with a fresh board.
func (s *gameServiceImpl) CreateSession(ctx context.Context) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Create("")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("session created", "session_id", session.ID)
	return sessionInfo(session), nil
}

// GetSession retrieves session information.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions.
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session and discards its game.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", "session_id", sessionID)
	return nil
}

// Move applies one atomic turn (shift/merge plus spawn) to a session's board
// and reports what happened as animatable events.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	before := session.Engine.Board()
	spawned, outcome := session.Engine.Step(dir)
	after := session.Engine.Board()

	result := &MoveResult{
		Moved:      outcome.Moved(),
		Board:      after,
		Score:      after.Score,
		ScoreDelta: after.Score - before.Score,
		Spawned:    spawned,
		BoardFull:  after.Full(),
	}
	if outcome.Moved() {
		result.Events = moveEvents(dir, before, after, spawned, time.Now())
	}

	s.logger.Debug("move applied",
		"session_id", sessionID,
		"direction", dir.String(),
		"outcome", outcome.String(),
		"score", after.Score,
	)
	return result, nil
}

// Reset starts the session's game over and reports the fresh board.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	board := session.Engine.Reset()
	now := time.Now()

	events := []GameEvent{{Type: "reset", Timestamp: now}}
	for _, tile := range board.Tiles {
		pos := tile.Pos
		events = append(events, GameEvent{
			Type:      "spawn",
			Tile:      tile.ID,
			To:        &pos,
			Value:     tile.Value,
			Timestamp: now,
		})
	}

	s.logger.Info("session reset", "session_id", sessionID)
	return &MoveResult{
		Moved:  true,
		Board:  board,
		Score:  board.Score,
		Events: events,
	}, nil
}

// GetBoard returns a copy of the session's current board.
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (engine.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return engine.Board{}, fmt.Errorf("session not found: %w", err)
	}
	s.touch(sessionID)

	return session.Engine.Board(), nil
}

func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Board:          session.Engine.Board(),
	}
}

// lineOf returns the index of the line perpendicular to the motion axis that
// pos belongs to.
func lineOf(dir engine.Direction, pos engine.Position) int {
	switch dir {
	case engine.Left, engine.Right:
		return pos.Row
	default:
		return pos.Col
	}
}

// slotOf returns the distance of pos from the wall the move pushes toward.
func slotOf(dir engine.Direction, pos engine.Position) int {
	switch dir {
	case engine.Left:
		return pos.Col
	case engine.Right:
		return engine.BoardSize - 1 - pos.Col
	case engine.Up:
		return pos.Row
	default:
		return engine.BoardSize - 1 - pos.Row
	}
}

// moveEvents diffs the boards around one committed turn into renderer events.
// Tiles that persisted but moved become slides. Within each line, the tiles
// that vanished pair up in slide order with the tiles whose value doubled,
// which recovers exactly which tile each merge absorbed.
func moveEvents(dir engine.Direction, before, after engine.Board, spawned *engine.Tile, now time.Time) []GameEvent {
	beforeByID := make(map[engine.TileID]engine.Tile, len(before.Tiles))
	for _, tile := range before.Tiles {
		beforeByID[tile.ID] = tile
	}
	afterByID := make(map[engine.TileID]engine.Tile, len(after.Tiles))
	for _, tile := range after.Tiles {
		afterByID[tile.ID] = tile
	}

	var events []GameEvent

	// Slides: every surviving tile whose position changed.
	for _, tile := range after.Tiles {
		if spawned != nil && tile.ID == spawned.ID {
			continue
		}
		prev, ok := beforeByID[tile.ID]
		if !ok || prev.Pos == tile.Pos {
			continue
		}
		from, to := prev.Pos, tile.Pos
		events = append(events, GameEvent{
			Type:      "slide",
			Tile:      tile.ID,
			From:      &from,
			To:        &to,
			Value:     prev.Value,
			Timestamp: now,
		})
	}

	// Merges: pair absorbed tiles with doubled survivors per line.
	var survivors, absorbed [engine.BoardSize][]engine.Tile
	for _, tile := range after.Tiles {
		prev, ok := beforeByID[tile.ID]
		if ok && tile.Value != prev.Value {
			line := lineOf(dir, tile.Pos)
			survivors[line] = append(survivors[line], tile)
		}
	}
	for _, tile := range before.Tiles {
		if _, ok := afterByID[tile.ID]; !ok {
			line := lineOf(dir, tile.Pos)
			absorbed[line] = append(absorbed[line], tile)
		}
	}

	for line := 0; line < engine.BoardSize; line++ {
		sort.Slice(survivors[line], func(i, j int) bool {
			return slotOf(dir, survivors[line][i].Pos) < slotOf(dir, survivors[line][j].Pos)
		})
		sort.Slice(absorbed[line], func(i, j int) bool {
			return slotOf(dir, absorbed[line][i].Pos) < slotOf(dir, absorbed[line][j].Pos)
		})

		for i, survivor := range survivors[line] {
			pos := survivor.Pos
			event := GameEvent{
				Type:      "merge",
				Tile:      survivor.ID,
				To:        &pos,
				Value:     survivor.Value,
				Timestamp: now,
			}
			if i < len(absorbed[line]) {
				event.Absorbed = absorbed[line][i].ID
			}
			events = append(events, event)
		}
	}

	if spawned != nil {
		pos := spawned.Pos
		events = append(events, GameEvent{
			Type:      "spawn",
			Tile:      spawned.ID,
			To:        &pos,
			Value:     spawned.Value,
			Timestamp: now,
		})
	}

	return events
}
