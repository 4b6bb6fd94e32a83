package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFrequency is the frequency used when none is configured.
const DefaultFrequency = 0.005

// ErrInvalidArgument is returned (wrapped) for malformed construction
// parameters and rejected setter values.
var ErrInvalidArgument = errors.New("invalid argument")

// Rand is the deterministic random source consumed by the noise types.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Source is a two-dimensional gradient noise function over a
// width x height domain.
type Source interface {
	Width() int
	Height() int

	Frequency() float64
	SetFrequency(frequency float64) error

	RandomSource() Rand
	Gradients() []mgl64.Vec2
	Gradient(x, y int) mgl64.Vec2

	Fade(t float64) float64
	Interpolate(a, b, alpha float64) float64

	// Compute returns the noise value at (x, y) in lattice space.
	Compute(x, y float64) float64
	// ComputeAt scales the pixel coordinate by the frequency first.
	ComputeAt(x, y int) float64
}

func validateFrequency(frequency float64) error {
	if math.IsNaN(frequency) || frequency < 0 || frequency > 1 {
		return fmt.Errorf("%w: frequency must be between 0 and 1 (got %v)", ErrInvalidArgument, frequency)
	}
	return nil
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
