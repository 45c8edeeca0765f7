package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndQueryResults(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	games := []Result{
		{ID: "a", Seed: 1, Score: 120, Placements: 81, Upgrades: 30, FinishedAt: base},
		{ID: "b", Seed: 2, Score: 310, Placements: 81, Upgrades: 44, FinishedAt: base.Add(time.Hour)},
		{ID: "c", Seed: 3, Score: -12, Placements: 20, Upgrades: 4, FinishedAt: base.Add(2 * time.Hour)},
	}
	for _, g := range games {
		require.NoError(t, s.SaveResult(g))
	}

	recent, err := s.RecentResults(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "c", recent[0].ID, "newest first")
	require.Equal(t, "b", recent[1].ID)

	best, ok, err := s.BestScore()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 310, best)
}

func TestSaveResultReplacesSameID(t *testing.T) {
	s := openTestStore(t)

	r := Result{ID: "x", Seed: 9, Score: 10, Placements: 5, Upgrades: 1, FinishedAt: time.Now()}
	require.NoError(t, s.SaveResult(r))
	r.Score = 25
	require.NoError(t, s.SaveResult(r))

	recent, err := s.RecentResults(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, 25, recent[0].Score)
}

func TestBestScoreEmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.BestScore()
	require.NoError(t, err)
	require.False(t, ok)
}
