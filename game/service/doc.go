// Package service provides the business logic layer above the board engine.
//
// The service package implements:
//   - Multi-session game management
//   - Turn application with animatable event extraction
//   - Session lifecycle orchestration
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle; the session package supplies the in-memory implementation.
//
// Architecture:
//
// The service layer sits between the presentation layer and the game engine,
// providing session isolation and turning raw board diffs into slide, merge,
// and spawn events. Each session maintains its own engine instance with
// independent state, and every entry point takes a context in line with the
// rest of the codebase.
//
// Usage:
//
//	manager := session.NewManager(nil)
//	svc := service.NewGameService(manager, logger)
//
//	info, err := svc.CreateSession(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := svc.Move(ctx, info.ID, "left")
//
// Events:
//
// MoveResult.Events report what a committed turn did, tile identity included,
// so a renderer can stage the merge animation before the spawn animation
// without reaching into the engine's two-phase Move/Append protocol itself.
package service
