package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// leisureCandidates evaluates every leisure upgrade for the tile of kind k
// at p.
func leisureCandidates(v BoardView, p grid.Position, k tile.Kind) []Candidate {
	return []Candidate{
		playgroundCandidate(v, p, k),
		sportsFieldCandidate(v, p, k),
		plazaCandidate(v, p, k),
		parkCandidate(v, p, k),
		cinemaCandidate(v, p, k),
	}
}

// playgroundCandidate: a garden next to a school fills with children.
func playgroundCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Garden {
		return notApplicable(tile.Playground)
	}
	return Candidate{
		Target:     tile.Playground,
		Applicable: true,
		Conditions: []Condition{
			{"next to an education tile", adjacentCategory(v, p, tile.Education) >= 1},
		},
	}
}

// sportsFieldCandidate: leisure flanked by leisure on two sides. Resolved
// with priority over the playground — see the resolver's total order.
func sportsFieldCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k != tile.Garden && k != tile.Playground {
		return notApplicable(tile.SportsField)
	}
	return Candidate{
		Target:     tile.SportsField,
		Applicable: true,
		Conditions: []Condition{
			{"at least 2 neighboring leisure tiles", adjacentCategory(v, p, tile.Leisure) >= 2},
		},
	}
}

// plazaCandidate: the cell completes a full 2×2 leisure square inside its
// region. Four candidate windows are checked, with the cell as each corner;
// a window that would cross the region boundary is invalid.
func plazaCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	switch k {
	case tile.Garden, tile.SportsField, tile.Playground:
	default:
		return notApplicable(tile.Plaza)
	}
	inSquare := false
	for _, r0 := range [2]int{p.CellRow - 1, p.CellRow} {
		for _, c0 := range [2]int{p.CellCol - 1, p.CellCol} {
			if r0 < 0 || c0 < 0 || r0+1 > grid.Size-1 || c0+1 > grid.Size-1 {
				continue
			}
			if leisureWindow(v, p.RegionRow, p.RegionCol, r0, c0) {
				inSquare = true
			}
		}
	}
	return Candidate{
		Target:     tile.Plaza,
		Applicable: true,
		Conditions: []Condition{
			{"part of a 2x2 square of leisure tiles in the block", inSquare},
		},
	}
}

// leisureWindow reports whether the 2×2 window with top-left cell (r0, c0)
// in the region holds leisure tiles in all four cells.
func leisureWindow(v BoardView, regionRow, regionCol, r0, c0 int) bool {
	for dr := 0; dr < 2; dr++ {
		for dc := 0; dc < 2; dc++ {
			p := grid.Position{RegionRow: regionRow, RegionCol: regionCol, CellRow: r0 + dr, CellCol: c0 + dc}
			k, occ := v.Get(p)
			if !occ || tile.CategoryOf(k) != tile.Leisure {
				return false
			}
		}
	}
	return true
}

// parkCandidate: a block given over almost entirely to leisure. Reachable
// from every leisure kind except the cinema.
func parkCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	if k == tile.Cinema || tile.CategoryOf(k) != tile.Leisure {
		return notApplicable(tile.Park)
	}
	rr, rc := p.RegionRow, p.RegionCol
	return Candidate{
		Target:     tile.Park,
		Applicable: true,
		Conditions: []Condition{
			{"at least 7 leisure tiles in the block", v.CategoryCount(rr, rc, tile.Leisure) >= 7},
		},
	}
}

// cinemaCandidate: mall foot traffic next door turns leisure into a cinema.
func cinemaCandidate(v BoardView, p grid.Position, k tile.Kind) Candidate {
	switch k {
	case tile.Garden, tile.SportsField, tile.Playground, tile.Plaza:
	default:
		return notApplicable(tile.Cinema)
	}
	nextToMall := false
	for _, n := range v.AdjacentCells(p) {
		if n.Occupied && n.Kind == tile.Mall {
			nextToMall = true
			break
		}
	}
	return Candidate{
		Target:     tile.Cinema,
		Applicable: true,
		Conditions: []Condition{
			{"next to a mall", nextToMall},
		},
	}
}

// adjacentCategory counts the orthogonal neighbors of p holding a tile of
// the category.
func adjacentCategory(v BoardView, p grid.Position, c tile.Category) int {
	n := 0
	for _, cell := range v.AdjacentCells(p) {
		if cell.Occupied && tile.CategoryOf(cell.Kind) == c {
			n++
		}
	}
	return n
}
