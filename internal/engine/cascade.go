package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/rules"
	"github.com/talgya/superblock/internal/tile"
)

// MaxCascadeChanges is the rebuild phase's infinite-loop guard. The rule
// set as shipped never comes near it; reaching it means the catalog is
// defective, not that the board was unlucky.
const MaxCascadeChanges = 10000

// rebuild is the fixed-point propagation loop. The placement itself counts
// as the first applied change, so the work queue starts with the placed
// cell's whole region plus every orthogonally adjacent region, the full
// neighborhood whose conditions can read the new tile, and is processed
// FIFO. The visited set is scoped to the current pass: any applied change
// clears it
// wholesale, because region counts, adjacent-region counts and cluster
// membership make conditions non-local and the catalog declares no
// dependency sets. Each change re-enqueues the changed cell, its orthogonal
// neighbors, its whole region, and every orthogonally adjacent region.
func (s *Session) rebuild(placed grid.Position) ([]Change, error) {
	queue := make([]grid.Position, 0, 5*grid.Size*grid.Size)
	for _, c := range s.board.RegionCells(placed.RegionRow, placed.RegionCol) {
		queue = append(queue, c.Pos)
	}
	for _, r := range grid.AdjacentRegions(placed.RegionRow, placed.RegionCol) {
		for _, c := range s.board.RegionCells(r.Row, r.Col) {
			queue = append(queue, c.Pos)
		}
	}

	visited := make(map[grid.Position]struct{}, grid.Cells)
	var changes []Change

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if _, seen := visited[p]; seen {
			continue
		}
		k, occ := s.board.Get(p)
		if !occ {
			visited[p] = struct{}{}
			continue
		}

		next, changed := rules.EvaluateAndResolve(s.board, p, k)
		if !changed {
			// Stable for this pass only.
			visited[p] = struct{}{}
			continue
		}

		s.board.Set(p, next)
		pts := tile.Points(next)
		s.score += pts
		changes = append(changes, Change{Pos: p, From: k, To: next, Points: pts})

		if len(changes) >= MaxCascadeChanges {
			slog.Error("cascade change ceiling exceeded",
				"placed", placed.String(),
				"changes", len(changes),
			)
			return changes, fmt.Errorf("rebuild after %s: %w", placed, ErrCascadeOverflow)
		}

		// Nothing already marked stable can be trusted after a change.
		visited = make(map[grid.Position]struct{}, grid.Cells)

		queue = append(queue, p)
		for _, n := range s.board.AdjacentCells(p) {
			queue = append(queue, n.Pos)
		}
		for _, c := range s.board.RegionCells(p.RegionRow, p.RegionCol) {
			queue = append(queue, c.Pos)
		}
		for _, r := range grid.AdjacentRegions(p.RegionRow, p.RegionCol) {
			for _, c := range s.board.RegionCells(r.Row, r.Col) {
				queue = append(queue, c.Pos)
			}
		}
	}

	return changes, nil
}
