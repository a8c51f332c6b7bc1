// Command glass2048 plays the sliding-tile merge puzzle in a terminal.
//
// It supports two modes:
//  1. "play" (default): an interactive game reading moves from stdin
//  2. "demo": a scripted random playout printing each committed turn
//
// Flags control the random seed, demo length, log level, and version output.
// Settings can also come from GLASS2048_* environment variables or a .env
// file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jacobp100/Glass2048/game/config"
	"github.com/jacobp100/Glass2048/game/engine"
	"github.com/jacobp100/Glass2048/game/service"
	"github.com/jacobp100/Glass2048/game/session"
	"github.com/jacobp100/Glass2048/logging"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Glass2048"
)

var (
	seed     = flag.Int64("seed", 0, "Random seed for the boards (0 = time-seeded)")
	moves    = flag.Int("moves", 200, "Number of moves to attempt in demo mode")
	logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides GLASS2048_LOG_LEVEL)")
	version  = flag.Bool("version", false, "Show version information")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  play     Interactive game on stdin/stdout (default)\n")
		fmt.Fprintf(os.Stderr, "  demo     Seeded random playout\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Play interactively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -seed 42 demo      # Reproducible demo game\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logging.NewLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	mode := "play"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
	}

	svc := initializeService(cfg, logger)

	switch mode {
	case "play":
		if err := runInteractive(svc, logger); err != nil {
			logger.Error("game failed", "error", err)
			os.Exit(1)
		}

	case "demo":
		if err := runDemo(svc, cfg.Seed, *moves); err != nil {
			logger.Error("demo failed", "error", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s. Use 'play' (default) or 'demo'\n", mode)
		os.Exit(1)
	}
}

// initializeService wires the session manager and game service. A non-zero
// seed hands consecutive derived seeds to each session so whole games are
// reproducible.
func initializeService(cfg *config.Config, logger *slog.Logger) service.GameService {
	var factory session.EngineFactory
	if cfg.Seed != 0 {
		factory = seededFactory(cfg.Seed)
	}
	manager := session.NewManager(factory)

	go sessionCleanupRoutine(manager, cfg.SessionRetention, logger)

	return service.NewGameService(manager, logger)
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager, retention time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(cleanupInterval(retention))
	defer ticker.Stop()

	for range ticker.C {
		if removed := manager.CleanupExpiredSessions(retention); removed > 0 {
			logger.Info("cleaned up expired sessions", "count", removed)
		}
	}
}

// cleanupInterval picks how often to sweep: a quarter of the retention
// window, clamped to between one minute and one hour.
func cleanupInterval(retention time.Duration) time.Duration {
	interval := retention / 4
	if interval < time.Minute {
		return time.Minute
	}
	if interval > time.Hour {
		return time.Hour
	}
	return interval
}

// seededFactory produces engines seeded with seed, seed+1, seed+2, ...
func seededFactory(seed int64) session.EngineFactory {
	var mu sync.Mutex
	next := seed
	return func() *engine.GameEngine {
		mu.Lock()
		rng := rand.New(rand.NewSource(next))
		next++
		mu.Unlock()

		eng, err := engine.NewEngine(rng)
		if err != nil {
			panic(err)
		}
		return eng
	}
}

// runInteractive creates a session and plays it on stdin/stdout until the
// player quits.
func runInteractive(svc service.GameService, logger *slog.Logger) error {
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	logger.Debug("interactive session started", "session_id", info.ID)

	fmt.Printf("%s: merge tiles, chase 2048.\n", AppName)
	fmt.Println("Moves: w/a/s/d or up/left/down/right. 'new' restarts, 'q' quits.")
	fmt.Print(renderBoard(info.Board))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			return scanner.Err()
		case "n", "new":
			result, err := svc.Reset(ctx, info.ID)
			if err != nil {
				return err
			}
			fmt.Println("New game.")
			fmt.Print(renderBoard(result.Board))
			continue
		}

		direction, ok := parseMoveInput(input)
		if !ok {
			fmt.Printf("Unknown command %q\n", input)
			continue
		}

		result, err := svc.Move(ctx, info.ID, direction)
		if err != nil {
			return err
		}
		if !result.Moved {
			fmt.Printf("Nothing moves %s.\n", direction)
			continue
		}

		fmt.Print(renderBoard(result.Board))
		if result.ScoreDelta > 0 {
			fmt.Printf("Score: %d (+%d)\n", result.Score, result.ScoreDelta)
		} else {
			fmt.Printf("Score: %d\n", result.Score)
		}
	}

	return scanner.Err()
}

// runDemo plays random moves against one session and prints each committed
// turn. It stops early once every direction is blocked.
func runDemo(svc service.GameService, seed int64, moveCount int) error {
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	// The direction stream gets its own derived source so board and script
	// randomness stay independent.
	rng := rand.New(rand.NewSource(seed + 10_000))

	played := 0
	blocked := make(map[engine.Direction]bool)
	var last *service.MoveResult
	for i := 0; i < moveCount && len(blocked) < len(engine.Directions); i++ {
		dir := engine.Directions[rng.Intn(len(engine.Directions))]

		result, err := svc.Move(ctx, info.ID, dir.String())
		if err != nil {
			return err
		}
		if !result.Moved {
			blocked[dir] = true
			continue
		}
		clear(blocked)
		played++
		last = result

		fmt.Printf("move %d: %s (+%d)\n", played, dir, result.ScoreDelta)
	}

	if last != nil {
		fmt.Print(renderBoard(last.Board))
		fmt.Printf("Demo finished: %d moves, score %d\n", played, last.Score)
	} else {
		fmt.Println("Demo finished without a single legal move")
	}
	return nil
}

// parseMoveInput accepts both WASD keys and direction names.
func parseMoveInput(input string) (string, bool) {
	switch input {
	case "w":
		return engine.Up.String(), true
	case "a":
		return engine.Left.String(), true
	case "s":
		return engine.Down.String(), true
	case "d":
		return engine.Right.String(), true
	}
	if dir, err := engine.ParseDirection(input); err == nil {
		return dir.String(), true
	}
	return "", false
}

// renderBoard draws the 4x4 grid as an ASCII table.
func renderBoard(b engine.Board) string {
	var grid [engine.BoardSize][engine.BoardSize]int
	for _, tile := range b.Tiles {
		grid[tile.Pos.Row][tile.Pos.Col] = tile.Value
	}

	divider := strings.Repeat("+------", engine.BoardSize) + "+"
	var sb strings.Builder
	sb.WriteString(divider + "\n")
	for row := 0; row < engine.BoardSize; row++ {
		sb.WriteString("|")
		for col := 0; col < engine.BoardSize; col++ {
			if grid[row][col] == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", grid[row][col])
			}
		}
		sb.WriteString("\n" + divider + "\n")
	}
	return sb.String()
}
