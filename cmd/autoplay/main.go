// Command autoplay runs headless self-play games: random legal placements
// until the board fills, one game per seed. It reports score and cascade
// statistics, and can record the finished games into the results database.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/superblock/internal/deck"
	"github.com/talgya/superblock/internal/engine"
	"github.com/talgya/superblock/internal/grid"
	"github.com/talgya/superblock/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	games := envIntOrDefault("AUTOPLAY_GAMES", 100)
	baseSeed := int64(envIntOrDefault("AUTOPLAY_SEED", 1))
	dbPath := os.Getenv("AUTOPLAY_DB")

	var store *persistence.Store
	if dbPath != "" {
		os.MkdirAll(filepath.Dir(dbPath), 0755)
		var err error
		store, err = persistence.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		slog.Info("recording results", "path", dbPath)
	}

	slog.Info("autoplay starting", "games", games, "base_seed", baseSeed)

	var (
		totalScore   int64
		totalChanges int64
		bestScore    = 0
		bestSeed     = int64(0)
		worstScore   = 0
		maxCascade   = 0
		first        = true
	)

	start := time.Now()
	for i := 0; i < games; i++ {
		seed := baseSeed + int64(i)
		score, upgrades, biggest := playGame(seed, store)

		totalScore += int64(score)
		totalChanges += int64(upgrades)
		if biggest > maxCascade {
			maxCascade = biggest
		}
		if first || score > bestScore {
			bestScore = score
			bestSeed = seed
		}
		if first || score < worstScore {
			worstScore = score
		}
		first = false
	}
	elapsed := time.Since(start)

	placements := int64(games) * grid.Cells
	fmt.Printf("\n%s games, %s placements, %s upgrades in %s\n",
		humanize.Comma(int64(games)),
		humanize.Comma(placements),
		humanize.Comma(totalChanges),
		elapsed.Round(time.Millisecond),
	)
	fmt.Printf("score: avg %.1f, best %d (seed %d), worst %d\n",
		float64(totalScore)/float64(games), bestScore, bestSeed, worstScore)
	fmt.Printf("largest single cascade: %d changes (ceiling %s)\n",
		maxCascade, humanize.Comma(engine.MaxCascadeChanges))
}

// playGame fills one board with uniformly random legal placements and
// returns the final score, the total upgrade count, and the largest
// cascade seen.
func playGame(seed int64, store *persistence.Store) (score, upgrades, biggest int) {
	s := engine.NewSession(deck.NewGenerator(seed))
	rng := rand.New(rand.NewSource(seed))

	for !s.Full() {
		res, err := s.Place(randomEmptyCell(rng, s))
		if err != nil {
			slog.Error("placement failed", "seed", seed, "error", err)
			os.Exit(1)
		}
		upgrades += len(res.Changes)
		if len(res.Changes) > biggest {
			biggest = len(res.Changes)
		}
	}
	score = s.Score()

	if store != nil {
		result := persistence.Result{
			ID:         uuid.New().String(),
			Seed:       seed,
			Score:      score,
			Placements: grid.Cells,
			Upgrades:   upgrades,
			FinishedAt: time.Now(),
		}
		if err := store.SaveResult(result); err != nil {
			slog.Error("save result failed", "seed", seed, "error", err)
		}
	}
	return score, upgrades, biggest
}

// randomEmptyCell picks uniformly among the unoccupied cells.
func randomEmptyCell(rng *rand.Rand, s *engine.Session) grid.Position {
	var empty []grid.Position
	for _, c := range s.Cells() {
		if !c.Occupied {
			empty = append(empty, c.Pos)
		}
	}
	return empty[rng.Intn(len(empty))]
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
