// Package api serves game sessions over HTTP. All gameplay endpoints are
// JSON; a websocket endpoint streams placement events for live rendering.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/superblock/internal/persistence"
)

// Server owns the session registry and serves the game API.
type Server struct {
	Store *persistence.Store // Optional: nil disables the results endpoints
	Port  int

	mu       sync.Mutex
	sessions map[uuid.UUID]*gameSession
}

// Handler builds the full HTTP handler, CORS included. Split from Start so
// tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*gameSession)
	}

	createLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/session", RateLimitMiddleware(createLimiter, s.handleCreateSession))
	mux.HandleFunc("/api/v1/session/", s.handleSessionRoutes)
	mux.HandleFunc("/api/v1/results", s.handleResults)

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	handler := s.Handler()
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "results", s.Store != nil)

	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// handleSessionRoutes dispatches /api/v1/session/{id}[/op].
func (s *Server) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	idPart, op, _ := strings.Cut(rest, "/")

	id, err := uuid.Parse(idPart)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	gs := s.sessions[id]
	s.mu.Unlock()
	if gs == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	switch op {
	case "":
		s.handleState(w, r, gs)
	case "place":
		s.handlePlace(w, r, gs)
	case "reset":
		s.handleReset(w, r, gs)
	case "candidates":
		s.handleCandidates(w, r, gs)
	case "ws":
		s.handleStream(w, r, gs)
	default:
		http.NotFound(w, r)
	}
}

// handleResults returns recent finished games from the store.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "results disabled", http.StatusNotFound)
		return
	}
	results, err := s.Store.RecentResults(50)
	if err != nil {
		slog.Error("query results failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"results": results})
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins;
// localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
