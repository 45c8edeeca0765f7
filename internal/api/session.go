package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/superblock/internal/deck"
	"github.com/talgya/superblock/internal/engine"
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/persistence"
	"github.com/talgya/superblock/internal/rules"
	"github.com/talgya/superblock/internal/tile"
)

// gameSession is one registered game plus its stream subscribers. The
// engine session is single-threaded, so every access goes through mu.
type gameSession struct {
	id        uuid.UUID
	createdAt time.Time

	mu         sync.Mutex
	seed       int64
	game       *engine.Session
	placements int
	upgrades   int
	saved      bool

	hub *streamHub
}

// handleCreateSession registers a new game. An optional "seed" query
// parameter makes the draw sequence reproducible.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	seed := rand.Int63()
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	gs := &gameSession{
		id:        uuid.New(),
		createdAt: time.Now(),
		seed:      seed,
		game:      engine.NewSession(deck.NewGenerator(seed)),
		hub:       newStreamHub(),
	}

	s.mu.Lock()
	s.sessions[gs.id] = gs
	s.mu.Unlock()

	slog.Info("session created", "id", gs.id, "seed", seed)
	writeJSON(w, gs.stateLocked())
}

// handleState returns the current board, score and draw preview.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request, gs *gameSession) {
	gs.mu.Lock()
	state := gs.stateLocked()
	gs.mu.Unlock()
	writeJSON(w, state)
}

// placeRequest addresses a cell by flat board coordinates, row and col in
// [0, 8].
type placeRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// handlePlace attempts a placement. Invalid placements return 409 with the
// reason; a cascade overflow returns 500 and leaves the session corrupted
// until reset.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request, gs *gameSession) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if req.Row < 0 || req.Row > 8 || req.Col < 0 || req.Col > 8 {
		http.Error(w, "coordinates out of range", http.StatusBadRequest)
		return
	}

	gs.mu.Lock()
	res, err := gs.game.Place(grid.At(req.Row, req.Col))
	if err == nil {
		gs.placements++
		gs.upgrades += len(res.Changes)
	}
	terminal := err == nil && res.Terminal
	var result persistence.Result
	if terminal && !gs.saved {
		gs.saved = true
		result = persistence.Result{
			ID:         gs.id.String(),
			Seed:       gs.seed,
			Score:      gs.game.Score(),
			Placements: gs.placements,
			Upgrades:   gs.upgrades,
			FinishedAt: time.Now(),
		}
	}
	gs.mu.Unlock()

	switch {
	case errors.Is(err, engine.ErrCellOccupied),
		errors.Is(err, engine.ErrBoardFull),
		errors.Is(err, engine.ErrDeckEmpty):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, engine.ErrCascadeOverflow),
		errors.Is(err, engine.ErrSessionCorrupted):
		slog.Error("session corrupted", "id", gs.id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if terminal && s.Store != nil {
		if err := s.Store.SaveResult(result); err != nil {
			slog.Error("save result failed", "id", gs.id, "error", err)
		}
	}

	event := placementView(res)
	gs.hub.broadcast(event)
	writeJSON(w, event)
}

// handleReset starts the game over with a fresh seed (or the "seed" query
// parameter). The previous game is discarded unsaved.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, gs *gameSession) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	seed := rand.Int63()
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	gs.mu.Lock()
	gs.seed = seed
	gs.game.Reset(deck.NewGenerator(seed))
	gs.placements = 0
	gs.upgrades = 0
	gs.saved = false
	state := gs.stateLocked()
	gs.mu.Unlock()

	slog.Info("session reset", "id", gs.id, "seed", seed)
	writeJSON(w, state)
}

// handleCandidates returns the full upgrade candidate map for one cell —
// the data behind the client's tooltip.
func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request, gs *gameSession) {
	row, err := strconv.Atoi(r.URL.Query().Get("row"))
	if err != nil || row < 0 || row > 8 {
		http.Error(w, "invalid row", http.StatusBadRequest)
		return
	}
	col, err := strconv.Atoi(r.URL.Query().Get("col"))
	if err != nil || col < 0 || col > 8 {
		http.Error(w, "invalid col", http.StatusBadRequest)
		return
	}

	gs.mu.Lock()
	candidates := gs.game.Candidates(grid.At(row, col))
	gs.mu.Unlock()

	writeJSON(w, map[string]any{
		"row":        row,
		"col":        col,
		"candidates": candidateViews(candidates),
	})
}

// sessionState is the JSON view of a whole session.
type sessionState struct {
	ID       string       `json:"id"`
	Seed     int64        `json:"seed"`
	Board    [9][9]string `json:"board"` // Kind names, "" for empty cells
	Score    int          `json:"score"`
	Occupied int          `json:"occupied"`
	Terminal bool         `json:"terminal"`
	Next     string       `json:"next_category"`
}

// stateLocked builds the state view; gs.mu must be held.
func (gs *gameSession) stateLocked() sessionState {
	st := sessionState{
		ID:       gs.id.String(),
		Seed:     gs.seed,
		Score:    gs.game.Score(),
		Occupied: gs.game.Occupied(),
		Terminal: gs.game.Full(),
	}
	for _, c := range gs.game.Cells() {
		if !c.Occupied {
			continue
		}
		row, col := c.Pos.Flat()
		st.Board[row][col] = tile.KindName(c.Kind)
	}
	if next, ok := gs.game.NextCategory(); ok {
		st.Next = tile.CategoryName(next)
	}
	return st
}

// changeView is one cascade change in client terms.
type changeView struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	From   string `json:"from"`
	To     string `json:"to"`
	Points int    `json:"points"`
}

// placementEvent is the JSON view of one accepted placement; it doubles
// as the websocket stream payload.
type placementEvent struct {
	Type     string       `json:"type"`
	Row      int          `json:"row"`
	Col      int          `json:"col"`
	Placed   string       `json:"placed"`
	Changes  []changeView `json:"changes"`
	Score    int          `json:"score"`
	Occupied int          `json:"occupied"`
	Terminal bool         `json:"terminal"`
}

func placementView(res *engine.Placement) placementEvent {
	row, col := res.Pos.Flat()
	ev := placementEvent{
		Type:     "placement",
		Row:      row,
		Col:      col,
		Placed:   tile.KindName(res.Placed),
		Changes:  make([]changeView, 0, len(res.Changes)),
		Score:    res.Score,
		Occupied: res.Occupied,
		Terminal: res.Terminal,
	}
	for _, ch := range res.Changes {
		r, c := ch.Pos.Flat()
		ev.Changes = append(ev.Changes, changeView{
			Row: r, Col: c,
			From:   tile.KindName(ch.From),
			To:     tile.KindName(ch.To),
			Points: ch.Points,
		})
	}
	return ev
}

// candidateView mirrors rules.Candidate with kind names instead of enum
// values.
type candidateView struct {
	Target     string            `json:"target"`
	Applicable bool              `json:"applicable"`
	Conditions []rules.Condition `json:"conditions,omitempty"`
}

func candidateViews(cs []rules.Candidate) []candidateView {
	out := make([]candidateView, 0, len(cs))
	for _, c := range cs {
		out = append(out, candidateView{
			Target:     tile.KindName(c.Target),
			Applicable: c.Applicable,
			Conditions: c.Conditions,
		})
	}
	return out
}
