package generator

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/agusx1211/perlin-noise/internal/cache"
	"github.com/agusx1211/perlin-noise/internal/noise"
)

// BaseKey identifies a base Perlin source and the improved noise built
// over it. Frequency is part of the key so cached sources are never
// mutated after construction.
type BaseKey struct {
	Seed      int64
	Width     int
	Height    int
	Frequency float64
}

type Stats struct {
	Base     cache.Stats
	Improved cache.Stats
}

// Generator resolves Params into noise sources for a fixed domain,
// reusing previously built sources from two LRU caches.
type Generator struct {
	mu     sync.Mutex
	width  int
	height int

	base     *cache.LRU[BaseKey, *noise.Perlin]
	improved *cache.LRU[BaseKey, *noise.Improved]

	last    Params
	hasLast bool
}

func New(width, height, cacheSize int) (*Generator, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: domain %dx%d", noise.ErrInvalidArgument, width, height)
	}
	base, err := cache.New[BaseKey, *noise.Perlin](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("base cache: %w", err)
	}
	improved, err := cache.New[BaseKey, *noise.Improved](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("improved cache: %w", err)
	}
	return &Generator{
		width:    width,
		height:   height,
		base:     base,
		improved: improved,
	}, nil
}

func (g *Generator) Width() int {
	return g.width
}

func (g *Generator) Height() int {
	return g.height
}

// Select returns the source for p. changed reports whether p differs
// from the previous successful selection.
func (g *Generator) Select(p Params) (src noise.Source, changed bool, err error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	src, err = g.resolve(p)
	if err != nil {
		return nil, false, err
	}
	changed = !g.hasLast || g.last != p
	g.last = p
	g.hasLast = true
	return src, changed, nil
}

func (g *Generator) resolve(p Params) (noise.Source, error) {
	key := BaseKey{
		Seed:      p.Seed,
		Width:     g.width,
		Height:    g.height,
		Frequency: p.Frequency,
	}
	base, err := g.base.ComputeIfAbsent(key, g.newBase)
	if err != nil {
		return nil, fmt.Errorf("base noise: %w", err)
	}

	var src noise.Source = base
	if p.Algorithm.UsesImproved() {
		improved, err := g.improved.ComputeIfAbsent(key, func(k BaseKey) (*noise.Improved, error) {
			return noise.NewImprovedWithTable(base, permutation(k))
		})
		if err != nil {
			return nil, fmt.Errorf("improved noise: %w", err)
		}
		src = improved
	}

	if p.Algorithm.IsFractal() {
		fractal, err := noise.NewFractal(src, p.fractalConfig())
		if err != nil {
			return nil, fmt.Errorf("fractal noise: %w", err)
		}
		return fractal, nil
	}
	return src, nil
}

func (g *Generator) newBase(k BaseKey) (*noise.Perlin, error) {
	return noise.NewPerlin(k.Width, k.Height, k.Frequency, rand.New(rand.NewSource(k.Seed)))
}

// permutation derives the improved table from the key alone. It replays
// the base gradient draws on a fresh source, so the table equals the one
// NewImproved would draw from a newly built base and does not depend on
// what the cached base's source has handed out since.
func permutation(k BaseKey) []int {
	rng := rand.New(rand.NewSource(k.Seed))
	noise.CreateGradients(rng, k.Width+1, k.Height+1)
	return noise.NewPermutation(rng)
}

// Last returns the most recent successful selection.
func (g *Generator) Last() (Params, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last, g.hasLast
}

func (g *Generator) Stats() Stats {
	return Stats{
		Base:     g.base.Stats(),
		Improved: g.improved.Stats(),
	}
}
