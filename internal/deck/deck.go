// Package deck supplies the ordered tile-category draws the engine
// consumes. The generator layers simplex noise over base category weights
// so draws come in streaks instead of flat uniform noise; everything is
// deterministic from the seed.
package deck

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/superblock/internal/tile"
)

// Base draw weights per category. Residential dominates, the way a growing
// city draws more housing than anything else.
var baseWeights = [4]float64{
	tile.Residential: 0.40,
	tile.Leisure:     0.25,
	tile.Commercial:  0.20,
	tile.Education:   0.15,
}

const (
	// noiseScale stretches the noise over the draw index; smaller values
	// make longer streaks.
	noiseScale = 0.15
	// channelGap separates the four category channels in noise space.
	channelGap = 10.0
	// weightFloor keeps every category drawable even at a noise trough.
	weightFloor = 0.2
)

// Generator is an endless seeded draw source.
type Generator struct {
	noise opensimplex.Noise
	rng   *rand.Rand
	index int
	next  tile.Category
}

// NewGenerator creates a generator for the seed. Equal seeds produce equal
// draw sequences.
func NewGenerator(seed int64) *Generator {
	g := &Generator{
		noise: opensimplex.NewNormalized(seed),
		rng:   rand.New(rand.NewSource(seed)),
	}
	g.next = g.generate()
	return g
}

// Peek returns the upcoming category without consuming it.
func (g *Generator) Peek() (tile.Category, bool) {
	return g.next, true
}

// Draw consumes and returns the next category. A generator never runs out.
func (g *Generator) Draw() (tile.Category, bool) {
	c := g.next
	g.index++
	g.next = g.generate()
	return c, true
}

// generate picks a category for the current index: each category's base
// weight is modulated by its own noise channel, then one is drawn from the
// resulting distribution.
func (g *Generator) generate() tile.Category {
	x := float64(g.index) * noiseScale
	var weights [4]float64
	total := 0.0
	for i, c := range tile.Categories {
		n := g.noise.Eval2(x, float64(i)*channelGap)
		weights[i] = baseWeights[c] * (weightFloor + (1-weightFloor)*n)
		total += weights[i]
	}
	r := g.rng.Float64() * total
	for i, c := range tile.Categories {
		r -= weights[i]
		if r < 0 {
			return c
		}
	}
	return tile.Residential
}

// Scripted is a finite draw source with a fixed sequence, for tests and
// replays.
type Scripted struct {
	seq []tile.Category
}

// NewScripted builds a scripted source that yields the categories in order
// and then reports exhaustion.
func NewScripted(seq ...tile.Category) *Scripted {
	return &Scripted{seq: seq}
}

// Peek returns the upcoming category without consuming it.
func (s *Scripted) Peek() (tile.Category, bool) {
	if len(s.seq) == 0 {
		return 0, false
	}
	return s.seq[0], true
}

// Draw consumes and returns the next category.
func (s *Scripted) Draw() (tile.Category, bool) {
	if len(s.seq) == 0 {
		return 0, false
	}
	c := s.seq[0]
	s.seq = s.seq[1:]
	return c, true
}

// Remaining returns how many draws are left.
func (s *Scripted) Remaining() int {
	return len(s.seq)
}
