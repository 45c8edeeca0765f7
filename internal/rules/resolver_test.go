package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

func TestResolveNothingSatisfied(t *testing.T) {
	t.Parallel()

	b := grid.NewBoard()
	p := grid.Position{RegionRow: 0, RegionCol: 0, CellRow: 1, CellCol: 1}
	b.Set(p, tile.House)

	_, changed := EvaluateAndResolve(b, p, tile.House)
	require.False(t, changed, "a lone house is stable")
}

func TestResolveSportsFieldBeatsPlayground(t *testing.T) {
	t.Parallel()

	// The garden qualifies for both the playground (school above) and the
	// sports field (two leisure neighbors). The total order puts the sports
	// field strictly first.
	b := grid.NewBoard()
	p := grid.Position{RegionRow: 1, RegionCol: 1, CellRow: 1, CellCol: 1}
	b.Set(p, tile.Garden)
	b.Set(grid.Position{RegionRow: 1, RegionCol: 1, CellRow: 0, CellCol: 1}, tile.School)
	b.Set(grid.Position{RegionRow: 1, RegionCol: 1, CellRow: 1, CellCol: 0}, tile.Garden)
	b.Set(grid.Position{RegionRow: 1, RegionCol: 1, CellRow: 1, CellCol: 2}, tile.Garden)

	require.True(t, candidateFor(t, b, p, tile.Playground).Satisfied())
	require.True(t, candidateFor(t, b, p, tile.SportsField).Satisfied())

	next, changed := EvaluateAndResolve(b, p, tile.Garden)
	require.True(t, changed)
	require.Equal(t, tile.SportsField, next)
}

func TestResolveParkBeatsPlaza(t *testing.T) {
	t.Parallel()

	// Seven leisure tiles arranged so the cell also completes a 2×2 square:
	// both candidates are satisfied, the park ranks higher.
	b := grid.NewBoard()
	p := grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 1, CellCol: 1}
	ps := []grid.Position{
		{RegionRow: 2, RegionCol: 2, CellRow: 0, CellCol: 0}, {RegionRow: 2, RegionCol: 2, CellRow: 0, CellCol: 1}, {RegionRow: 2, RegionCol: 2, CellRow: 1, CellCol: 0}, p,
		{RegionRow: 2, RegionCol: 2, CellRow: 2, CellCol: 0}, {RegionRow: 2, RegionCol: 2, CellRow: 2, CellCol: 1}, {RegionRow: 2, RegionCol: 2, CellRow: 0, CellCol: 2},
	}
	for _, q := range ps {
		b.Set(q, tile.Garden)
	}

	require.True(t, candidateFor(t, b, p, tile.Plaza).Satisfied())
	require.True(t, candidateFor(t, b, p, tile.Park).Satisfied())

	next, changed := EvaluateAndResolve(b, p, tile.Garden)
	require.True(t, changed)
	require.Equal(t, tile.Park, next)
}

func TestResolveSkipsCurrentKind(t *testing.T) {
	t.Parallel()

	// A park in a leisure-dense block keeps satisfying its own rule; the
	// resolver must not report that as a change.
	b := grid.NewBoard()
	p := grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 1, CellCol: 1}
	b.Set(p, tile.Park)
	for cc := 0; cc < 3; cc++ {
		b.Set(grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 0, CellCol: cc}, tile.Garden)
		b.Set(grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 2, CellCol: cc}, tile.Garden)
	}

	_, changed := EvaluateAndResolve(b, p, tile.Park)
	require.False(t, changed)
}

func TestResolvePicksDowngradeForCurableSlum(t *testing.T) {
	t.Parallel()

	b := grid.NewBoard()
	p := grid.Position{RegionRow: 0, RegionCol: 1, CellRow: 0, CellCol: 0}
	b.Set(p, tile.Slum)
	b.Set(grid.Position{RegionRow: 0, RegionCol: 1, CellRow: 2, CellCol: 2}, tile.Garden)

	next, changed := EvaluateAndResolve(b, p, tile.Slum)
	require.True(t, changed)
	require.Equal(t, tile.House, next)
}

func TestPriorityOrderContract(t *testing.T) {
	t.Parallel()

	want := [16]tile.Kind{
		tile.Highrise, tile.Park, tile.Bank, tile.University, tile.Apartments,
		tile.Mall, tile.Restaurant, tile.Plaza, tile.Cinema, tile.HighSchool,
		tile.Villa, tile.Hotel, tile.SportsField, tile.Playground,
		tile.House, tile.Slum,
	}
	require.Equal(t, want, priorityOrder)
}
