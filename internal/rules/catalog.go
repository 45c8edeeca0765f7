// Package rules is the upgrade rule catalog: pure predicates that map an
// occupied cell plus a read-only board view to named upgrade candidates,
// the priority resolver that picks at most one of them, and the connected
// cluster walk used by the mall rule.
package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// BoardView is the read-only slice of the board the rule predicates need.
// *grid.Board implements it; rules never mutate the board.
type BoardView interface {
	Get(p grid.Position) (tile.Kind, bool)
	AdjacentCells(p grid.Position) []grid.Cell
	RegionCells(regionRow, regionCol int) []grid.Cell
	CategoryCount(regionRow, regionCol int, c tile.Category) int
	KindCount(regionRow, regionCol int, k tile.Kind) int
	AdjacentCategoryCount(regionRow, regionCol int, c tile.Category) int
	AdjacentKindCount(regionRow, regionCol int, k tile.Kind) int
	AdjacentWeightedResidential(regionRow, regionCol int) int
}

// Condition is one named check inside an upgrade candidate. The description
// is the user-facing explanation of what the check tests.
type Condition struct {
	Description string `json:"description"`
	Met         bool   `json:"met"`
}

// Candidate is the evaluation of one (current kind, target kind) pair.
// Applicable is false when the target is not reachable from the current
// kind at all; otherwise Conditions carries the live checklist, in order.
type Candidate struct {
	Target     tile.Kind   `json:"target"`
	Applicable bool        `json:"applicable"`
	Conditions []Condition `json:"conditions,omitempty"`
}

// Satisfied reports whether the candidate is applicable and every condition
// holds.
func (c Candidate) Satisfied() bool {
	if !c.Applicable {
		return false
	}
	for _, cond := range c.Conditions {
		if !cond.Met {
			return false
		}
	}
	return true
}

// notApplicable is the zero evaluation for an unreachable target.
func notApplicable(target tile.Kind) Candidate {
	return Candidate{Target: target}
}

// Evaluate computes the full candidate set for the tile of kind k occupying
// position p. One candidate per reachable target of k's category, plus the
// slum-cure downgrade; the set is closed per category so adding a rule means
// extending the matching switch arm.
func Evaluate(v BoardView, p grid.Position, k tile.Kind) []Candidate {
	switch tile.CategoryOf(k) {
	case tile.Residential:
		return residentialCandidates(v, p, k)
	case tile.Leisure:
		return leisureCandidates(v, p, k)
	case tile.Commercial:
		return commercialCandidates(v, p, k)
	case tile.Education:
		return educationCandidates(v, p, k)
	}
	panic("rules: kind without category")
}

// find returns the candidate for the target kind, or a non-applicable one.
func find(candidates []Candidate, target tile.Kind) Candidate {
	for _, c := range candidates {
		if c.Target == target {
			return c
		}
	}
	return notApplicable(target)
}
