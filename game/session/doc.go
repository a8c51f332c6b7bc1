// Package session provides in-memory session management for the puzzle.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session wraps its own engine instance plus metadata like creation time
// and last access time, so multiple independent games can run in one process.
//
// Randomness:
//
// The engine each session plays on comes from an injected EngineFactory,
// which is how callers thread seeded random sources through to the boards.
//
// Usage:
//
//	manager := session.NewManager(nil)
//
//	sess, err := manager.Create("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Boards are never persisted: deleting a session discards its game entirely.
package session
