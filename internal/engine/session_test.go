package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/superblock/internal/deck"
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/tile"
)

func TestPlaceRejectsOccupiedCell(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.NewScripted(tile.Residential, tile.Leisure))
	p := grid.Position{RegionRow: 0, RegionCol: 0, CellRow: 1, CellCol: 1}
	_, err := s.Place(p)
	require.NoError(t, err)

	d := s.deck.(*deck.Scripted)
	before := d.Remaining()
	_, err = s.Place(p)
	require.ErrorIs(t, err, ErrCellOccupied)
	require.Equal(t, before, d.Remaining(), "a rejected placement must not consume a draw")
	require.Equal(t, 1, s.Occupied())
}

func TestPlaceRejectsWhenDeckEmpty(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.NewScripted())
	p := grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 0, CellCol: 0}
	_, err := s.Place(p)
	require.ErrorIs(t, err, ErrDeckEmpty)
	_, occ := s.Cell(p)
	require.False(t, occ, "no state mutated on a rejected placement")
	require.Zero(t, s.Occupied())
	require.Zero(t, s.Score())
}

func TestNextCategoryPeeksWithoutConsuming(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.NewScripted(tile.Commercial, tile.Education))
	c, ok := s.NextCategory()
	require.True(t, ok)
	require.Equal(t, tile.Commercial, c)
	c, _ = s.NextCategory()
	require.Equal(t, tile.Commercial, c)

	res, err := s.Place(grid.Position{RegionRow: 0, RegionCol: 0, CellRow: 0, CellCol: 0})
	require.NoError(t, err)
	require.Equal(t, tile.Commercial, res.Category)
	require.Equal(t, tile.Shop, res.Placed)

	c, _ = s.NextCategory()
	require.Equal(t, tile.Education, c)
}

func TestCandidatesIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.NewScripted(tile.Residential, tile.Residential))
	p := grid.Position{RegionRow: 1, RegionCol: 1, CellRow: 0, CellCol: 0}
	_, err := s.Place(p)
	require.NoError(t, err)

	first := s.Candidates(p)
	second := s.Candidates(p)
	require.NotEmpty(t, first)
	require.Equal(t, first, second, "evaluation must be a pure read")

	require.Nil(t, s.Candidates(grid.Position{RegionRow: 2, RegionCol: 2, CellRow: 2, CellCol: 2}), "empty cells have no candidates")
}

func TestBoardFullIsTerminal(t *testing.T) {
	t.Parallel()

	seq := make([]tile.Category, grid.Cells+1)
	for i := range seq {
		seq[i] = tile.Education
	}
	s := NewSession(deck.NewScripted(seq...))

	var last *Placement
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			res, err := s.Place(grid.At(row, col))
			require.NoError(t, err)
			last = res
		}
	}
	require.True(t, s.Full())
	require.Equal(t, grid.Cells, s.Occupied())
	require.True(t, last.Terminal, "the 81st placement reports the terminal state")

	_, err := s.Place(grid.Position{RegionRow: 0, RegionCol: 0, CellRow: 0, CellCol: 0})
	require.ErrorIs(t, err, ErrBoardFull)
}

func TestReset(t *testing.T) {
	t.Parallel()

	s := NewSession(deck.NewScripted(tile.Residential, tile.Residential, tile.Residential, tile.Residential))
	for _, p := range []grid.Position{{RegionRow: 0, RegionCol: 0, CellRow: 0, CellCol: 0}, {RegionRow: 0, RegionCol: 0, CellRow: 0, CellCol: 2}, {RegionRow: 0, RegionCol: 0, CellRow: 2, CellCol: 0}, {RegionRow: 0, RegionCol: 0, CellRow: 2, CellCol: 2}} {
		_, err := s.Place(p)
		require.NoError(t, err)
	}
	require.NotZero(t, s.Score())

	s.Reset(deck.NewScripted(tile.Leisure))
	require.Zero(t, s.Score())
	require.Zero(t, s.Occupied())
	require.False(t, s.Full())
	require.False(t, s.Corrupted())
	for _, c := range s.Cells() {
		require.False(t, c.Occupied)
	}
	c, ok := s.NextCategory()
	require.True(t, ok)
	require.Equal(t, tile.Leisure, c)
}
