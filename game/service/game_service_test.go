package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/jacobp100/Glass2048/game/engine"
)

var errNotFound = errors.New("session not found")

// fakeSessionManager is an in-memory SessionManager for service tests.
type fakeSessionManager struct {
	sessions map[string]*Session
	nextID   int
	seed     int64
	touchErr error
}

func newFakeSessionManager(seed int64) *fakeSessionManager {
	return &fakeSessionManager{
		sessions: make(map[string]*Session),
		seed:     seed,
	}
}

func (m *fakeSessionManager) Create(id string) (*Session, error) {
	if id == "" {
		m.nextID++
		id = fmt.Sprintf("s%04d", m.nextID)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(rand.New(rand.NewSource(m.seed)))
	if err != nil {
		return nil, err
	}
	session := &Session{
		ID:             id,
		Engine:         eng,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *fakeSessionManager) Get(id string) (*Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, errNotFound
	}
	return session, nil
}

func (m *fakeSessionManager) GetOrCreate(id string) (*Session, error) {
	if session, err := m.Get(id); err == nil {
		return session, nil
	}
	return m.Create(id)
}

func (m *fakeSessionManager) List() []*Session {
	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *fakeSessionManager) Delete(id string) error {
	if _, ok := m.sessions[id]; !ok {
		return errNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *fakeSessionManager) UpdateLastAccessed(id string) error {
	if m.touchErr != nil {
		return m.touchErr
	}
	session, ok := m.sessions[id]
	if !ok {
		return errNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

func newTestService(t *testing.T, seed int64) (GameService, *fakeSessionManager) {
	t.Helper()
	manager := newFakeSessionManager(seed)
	return NewGameService(manager, nil), manager
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t, 1)

	info, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.ID == "" {
		t.Error("Expected a session ID")
	}
	if len(info.Board.Tiles) != 2 {
		t.Errorf("Expected a fresh board with 2 tiles, got %d", len(info.Board.Tiles))
	}
	if info.Board.Score != 0 {
		t.Errorf("Expected score 0, got %d", info.Board.Score)
	}
}

func TestMove(t *testing.T) {
	svc, manager := newTestService(t, 1)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Force a known layout so the move observably merges.
	session, _ := manager.Get(info.ID)
	if err := session.Engine.SetBoard(engine.Board{Tiles: []engine.Tile{
		{ID: 1, Value: 2, Pos: engine.Position{Col: 0, Row: 0}},
		{ID: 2, Value: 2, Pos: engine.Position{Col: 1, Row: 0}},
	}}); err != nil {
		t.Fatalf("Failed to set board: %v", err)
	}

	result, err := svc.Move(ctx, info.ID, "left")
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if !result.Moved {
		t.Fatal("Expected the move to change the board")
	}
	if result.ScoreDelta != 4 {
		t.Errorf("Expected score delta 4, got %d", result.ScoreDelta)
	}
	if result.Spawned == nil {
		t.Fatal("Expected a spawned tile")
	}

	var merges, spawns int
	for _, event := range result.Events {
		switch event.Type {
		case "merge":
			merges++
			if event.Tile != 1 {
				t.Errorf("Expected merge to keep tile 1, got %d", event.Tile)
			}
			if event.Absorbed != 2 {
				t.Errorf("Expected merge to absorb tile 2, got %d", event.Absorbed)
			}
			if event.Value != 4 {
				t.Errorf("Expected merged value 4, got %d", event.Value)
			}
		case "spawn":
			spawns++
			if event.Tile != result.Spawned.ID {
				t.Errorf("Expected spawn event for tile %d, got %d", result.Spawned.ID, event.Tile)
			}
		}
	}
	if merges != 1 {
		t.Errorf("Expected 1 merge event, got %d", merges)
	}
	if spawns != 1 {
		t.Errorf("Expected 1 spawn event, got %d", spawns)
	}
}

func TestMove_SlideEvents(t *testing.T) {
	svc, manager := newTestService(t, 1)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	session, _ := manager.Get(info.ID)
	if err := session.Engine.SetBoard(engine.Board{Tiles: []engine.Tile{
		{ID: 1, Value: 2, Pos: engine.Position{Col: 3, Row: 2}},
	}}); err != nil {
		t.Fatalf("Failed to set board: %v", err)
	}

	result, err := svc.Move(ctx, info.ID, "left")
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	var slide *GameEvent
	for i := range result.Events {
		if result.Events[i].Type == "slide" {
			slide = &result.Events[i]
		}
	}
	if slide == nil {
		t.Fatal("Expected a slide event")
	}
	if slide.Tile != 1 {
		t.Errorf("Expected slide for tile 1, got %d", slide.Tile)
	}
	if slide.From == nil || *slide.From != (engine.Position{Col: 3, Row: 2}) {
		t.Errorf("Expected slide from (3,2), got %+v", slide.From)
	}
	if slide.To == nil || *slide.To != (engine.Position{Col: 0, Row: 2}) {
		t.Errorf("Expected slide to (0,2), got %+v", slide.To)
	}
}

func TestMove_Blocked(t *testing.T) {
	svc, manager := newTestService(t, 1)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	session, _ := manager.Get(info.ID)
	if err := session.Engine.SetBoard(engine.Board{Score: 8, Tiles: []engine.Tile{
		{ID: 1, Value: 2, Pos: engine.Position{Col: 0, Row: 0}},
		{ID: 2, Value: 4, Pos: engine.Position{Col: 1, Row: 0}},
	}}); err != nil {
		t.Fatalf("Failed to set board: %v", err)
	}

	result, err := svc.Move(ctx, info.ID, "left")
	if err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	if result.Moved {
		t.Error("Expected a blocked move")
	}
	if result.Spawned != nil {
		t.Error("Expected no spawn for a blocked move")
	}
	if result.ScoreDelta != 0 {
		t.Errorf("Expected score delta 0, got %d", result.ScoreDelta)
	}
	if len(result.Events) != 0 {
		t.Errorf("Expected no events for a blocked move, got %d", len(result.Events))
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	svc, _ := newTestService(t, 1)

	if _, err := svc.Move(context.Background(), "any", "sideways"); err == nil {
		t.Error("Expected an error for an invalid direction")
	}
}

func TestMove_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t, 1)

	if _, err := svc.Move(context.Background(), "missing", "left"); !errors.Is(err, errNotFound) {
		t.Errorf("Expected session-not-found error, got %v", err)
	}
}

func TestMove_SucceedsWhenTouchFails(t *testing.T) {
	svc, manager := newTestService(t, 1)

	info, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	manager.touchErr = errors.New("session store unavailable")

	result, err := svc.Move(context.Background(), info.ID, "left")
	if err != nil {
		t.Fatalf("Expected the move to survive a failed timestamp update, got %v", err)
	}
	if result == nil {
		t.Fatal("Expected a move result")
	}
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(t, 1)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Advance the game a bit, then reset.
	for _, dir := range []string{"left", "up", "right", "down"} {
		if _, err := svc.Move(ctx, info.ID, dir); err != nil {
			t.Fatalf("Failed to move %s: %v", dir, err)
		}
	}

	result, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Failed to reset: %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Expected score 0 after reset, got %d", result.Score)
	}
	if len(result.Board.Tiles) != 2 {
		t.Errorf("Expected 2 tiles after reset, got %d", len(result.Board.Tiles))
	}
	if len(result.Events) != 3 {
		t.Errorf("Expected reset + 2 spawn events, got %d", len(result.Events))
	}
	if result.Events[0].Type != "reset" {
		t.Errorf("Expected first event 'reset', got %q", result.Events[0].Type)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestService(t, 1)
	ctx := context.Background()

	first, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	second, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("Failed to create second session: %v", err)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := svc.GetSession(ctx, first.ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
	if _, err := svc.GetBoard(ctx, second.ID); err != nil {
		t.Errorf("Expected surviving session to be readable: %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, manager := newTestService(t, 1)
	ctx := context.Background()

	first, _ := svc.CreateSession(ctx)
	second, _ := svc.CreateSession(ctx)

	session, _ := manager.Get(first.ID)
	if err := session.Engine.SetBoard(engine.Board{Tiles: []engine.Tile{
		{ID: 1, Value: 2, Pos: engine.Position{Col: 0, Row: 0}},
		{ID: 2, Value: 2, Pos: engine.Position{Col: 1, Row: 0}},
	}}); err != nil {
		t.Fatalf("Failed to set board: %v", err)
	}

	beforeSecond, _ := svc.GetBoard(ctx, second.ID)
	if _, err := svc.Move(ctx, first.ID, "left"); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}
	afterSecond, _ := svc.GetBoard(ctx, second.ID)

	if len(beforeSecond.Tiles) != len(afterSecond.Tiles) || beforeSecond.Score != afterSecond.Score {
		t.Error("Moving in one session altered another session's board")
	}
}
