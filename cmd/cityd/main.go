// Command cityd serves the Superblock puzzle over HTTP: session
// management, placements with their cascade results, a websocket event
// stream, and the finished-game leaderboard.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/talgya/superblock/internal/api"
	"github.com/talgya/superblock/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	port := envIntOrDefault("CITYD_PORT", 8080)
	dbPath := envOrDefault("CITYD_DB", "data/superblock.db")

	slog.Info("Superblock city puzzle server starting", "port", port, "db", dbPath)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	store, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database opened", "path", dbPath)

	if best, ok, err := store.BestScore(); err == nil && ok {
		slog.Info("best recorded score", "score", best)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	server := &api.Server{
		Store: store,
		Port:  port,
	}
	server.Start()

	fmt.Printf("Superblock is up: http://localhost:%d/api/v1/session\n", port)
	fmt.Println("Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	fmt.Println("Server stopped.")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
