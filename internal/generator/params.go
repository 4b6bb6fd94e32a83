package generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/agusx1211/perlin-noise/internal/noise"
)

type Algorithm string

const (
	Simple   Algorithm = "simple"
	Improved Algorithm = "improved"
	Fractal  Algorithm = "fractal"
	// FractalImproved sums octaves of improved noise instead of the
	// plain base source.
	FractalImproved Algorithm = "fractal-improved"
)

// Algorithms lists every algorithm in selection order.
var Algorithms = []Algorithm{Simple, Improved, Fractal, FractalImproved}

// ParseAlgorithm accepts any casing of the algorithm names.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Simple, Improved, Fractal, FractalImproved:
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown algorithm %q", noise.ErrInvalidArgument, s)
}

// IsFractal reports whether a sums octaves.
func (a Algorithm) IsFractal() bool {
	return a == Fractal || a == FractalImproved
}

// UsesImproved reports whether a reads gradients through a permutation
// table.
func (a Algorithm) UsesImproved() bool {
	return a == Improved || a == FractalImproved
}

// Params selects one noise configuration. The fractal fields are only
// used by the fractal algorithms.
type Params struct {
	Algorithm   Algorithm `json:"algorithm"`
	Seed        int64     `json:"seed"`
	Frequency   float64   `json:"frequency"`
	Amplitude   float64   `json:"amplitude"`
	Octaves     int       `json:"octaves"`
	Lacunarity  float64   `json:"lacunarity"`
	Persistence float64   `json:"persistence"`
}

func DefaultParams() Params {
	return Params{
		Algorithm:   Simple,
		Seed:        0,
		Frequency:   noise.DefaultFrequency,
		Amplitude:   noise.DefaultAmplitude,
		Octaves:     8,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

func (p Params) Validate() error {
	switch p.Algorithm {
	case Simple, Improved, Fractal, FractalImproved:
	default:
		return fmt.Errorf("%w: unknown algorithm %q", noise.ErrInvalidArgument, p.Algorithm)
	}
	if math.IsNaN(p.Frequency) || p.Frequency < 0 || p.Frequency > 1 {
		return fmt.Errorf("%w: frequency must be between 0 and 1 (got %v)", noise.ErrInvalidArgument, p.Frequency)
	}
	if p.Algorithm.IsFractal() && p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1 (got %d)", noise.ErrInvalidArgument, p.Octaves)
	}
	return nil
}

func (p Params) fractalConfig() noise.FractalConfig {
	return noise.FractalConfig{
		Amplitude:   p.Amplitude,
		Octaves:     p.Octaves,
		Lacunarity:  p.Lacunarity,
		Persistence: p.Persistence,
	}
}

// Describe is a one-line summary used for captions and logs.
func (p Params) Describe() string {
	if p.Algorithm.IsFractal() {
		return fmt.Sprintf("%s seed=%d freq=%g amp=%g oct=%d lac=%g pers=%g",
			p.Algorithm, p.Seed, p.Frequency, p.Amplitude, p.Octaves, p.Lacunarity, p.Persistence)
	}
	return fmt.Sprintf("%s seed=%d freq=%g", p.Algorithm, p.Seed, p.Frequency)
}
