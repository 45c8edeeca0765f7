// Package engine owns the game session: tile placement, the cascade rebuild
// loop that drives the board to a stable fixed point after every placement,
// and the score bookkeeping.
package engine

import (
	"errors"

	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/rules"
	"github.com/talgya/superblock/internal/tile"
)

// DrawSource is the ordered supply of upcoming tile categories. The engine
// never generates randomness itself; it only consumes the next category at
// placement time.
type DrawSource interface {
	// Peek returns the upcoming category without consuming it.
	Peek() (tile.Category, bool)
	// Draw consumes and returns the next category. The second return is
	// false when the source is exhausted.
	Draw() (tile.Category, bool)
}

var (
	// ErrCellOccupied rejects a placement onto a non-empty cell.
	ErrCellOccupied = errors.New("engine: cell already occupied")
	// ErrBoardFull rejects any placement once all 81 cells are occupied.
	ErrBoardFull = errors.New("engine: board is full")
	// ErrDeckEmpty rejects a placement when the draw source is exhausted.
	ErrDeckEmpty = errors.New("engine: no tile available to place")
	// ErrCascadeOverflow signals a rule-set defect: the rebuild phase hit
	// its change ceiling. The session is corrupted and must be reset.
	ErrCascadeOverflow = errors.New("engine: cascade change ceiling exceeded")
	// ErrSessionCorrupted rejects placements after a cascade overflow.
	ErrSessionCorrupted = errors.New("engine: session corrupted by earlier cascade overflow")
)

// Change records one cell changing kind during a rebuild phase.
type Change struct {
	Pos    grid.Position `json:"pos"`
	From   tile.Kind     `json:"from"`
	To     tile.Kind     `json:"to"`
	Points int           `json:"points"`
}

// Placement is the full outcome of one accepted placement.
type Placement struct {
	Pos      grid.Position `json:"pos"`
	Category tile.Category `json:"category"`
	Placed   tile.Kind     `json:"placed"`
	Changes  []Change      `json:"changes,omitempty"`
	Score    int           `json:"score"`
	Occupied int           `json:"occupied"`
	Terminal bool          `json:"terminal"`
}

// Session is one single-player game: a board, a draw source, and a score.
// It is caller-owned and single-threaded; a placement runs its whole
// rebuild phase before returning, so board state is never observable
// mid-cascade.
type Session struct {
	board     *grid.Board
	deck      DrawSource
	score     int
	occupied  int
	corrupted bool
}

// NewSession creates an empty session drawing from deck.
func NewSession(deck DrawSource) *Session {
	return &Session{board: grid.NewBoard(), deck: deck}
}

// Reset returns the session to the empty/zero state, drawing from a fresh
// source. There is no partial reset.
func (s *Session) Reset(deck DrawSource) {
	s.board = grid.NewBoard()
	s.deck = deck
	s.score = 0
	s.occupied = 0
	s.corrupted = false
}

// Cell returns the tile kind at the position and whether it is occupied.
func (s *Session) Cell(p grid.Position) (tile.Kind, bool) {
	return s.board.Get(p)
}

// Cells returns every cell on the board, for display.
func (s *Session) Cells() []grid.Cell {
	return s.board.AllCells()
}

// Candidates returns the full upgrade candidate set for the tile at p,
// with live condition diagnostics. Nil for an empty cell. Evaluation is a
// pure read: calling it twice without an intervening placement yields
// identical results.
func (s *Session) Candidates(p grid.Position) []rules.Candidate {
	k, occ := s.board.Get(p)
	if !occ {
		return nil
	}
	return rules.Evaluate(s.board, p, k)
}

// Score returns the running score.
func (s *Session) Score() int {
	return s.score
}

// Occupied returns the occupied-cell count.
func (s *Session) Occupied() int {
	return s.occupied
}

// Full reports whether all 81 cells are occupied; the session is then
// terminal.
func (s *Session) Full() bool {
	return s.occupied == grid.Cells
}

// Corrupted reports whether an earlier cascade overflow poisoned the
// session.
func (s *Session) Corrupted() bool {
	return s.corrupted
}

// NextCategory returns the upcoming draw without consuming it.
func (s *Session) NextCategory() (tile.Category, bool) {
	return s.deck.Peek()
}

// Place puts the next drawn tile on the empty cell at p and runs the
// rebuild phase to its fixed point. Invalid placements return a sentinel
// error with no state mutated. ErrCascadeOverflow corrupts the session:
// the board is left partially updated and only Reset recovers.
func (s *Session) Place(p grid.Position) (*Placement, error) {
	if s.corrupted {
		return nil, ErrSessionCorrupted
	}
	if s.Full() {
		return nil, ErrBoardFull
	}
	if _, occ := s.board.Get(p); occ {
		return nil, ErrCellOccupied
	}
	cat, ok := s.deck.Draw()
	if !ok {
		return nil, ErrDeckEmpty
	}

	placed := tile.DefaultKind(cat)
	s.board.Set(p, placed)
	s.occupied++

	changes, err := s.rebuild(p)
	if err != nil {
		s.corrupted = true
		return nil, err
	}

	return &Placement{
		Pos:      p,
		Category: cat,
		Placed:   placed,
		Changes:  changes,
		Score:    s.score,
		Occupied: s.occupied,
		Terminal: s.Full(),
	}, nil
}
