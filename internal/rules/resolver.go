package rules

import (
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

// priorityOrder is the fixed total order over upgrade targets. The first
// satisfied target that differs from the current kind wins; everything
// after it is ignored for this round. The order is part of the engine's
// contract: SportsField strictly before Playground expresses that rule's
// precedence, House stands in once for the slum cure, and Slum comes last.
var priorityOrder = [16]tile.Kind{
	tile.Highrise,
	tile.Park,
	tile.Bank,
	tile.University,
	tile.Apartments,
	tile.Mall,
	tile.Restaurant,
	tile.Plaza,
	tile.Cinema,
	tile.HighSchool,
	tile.Villa,
	tile.Hotel,
	tile.SportsField,
	tile.Playground,
	tile.House,
	tile.Slum,
}

// Resolve picks at most one target kind from the candidate set, walking the
// priority order. Returns false when no candidate is satisfied and the cell
// should stay as it is this round.
func Resolve(current tile.Kind, candidates []Candidate) (tile.Kind, bool) {
	for _, target := range priorityOrder {
		if target == current {
			continue
		}
		if find(candidates, target).Satisfied() {
			return target, true
		}
	}
	return current, false
}

// EvaluateAndResolve is the compound the cascade loop runs per cell: build
// the full candidate set, then resolve it.
func EvaluateAndResolve(v BoardView, p grid.Position, k tile.Kind) (tile.Kind, bool) {
	return Resolve(k, Evaluate(v, p, k))
}
