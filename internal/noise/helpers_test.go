package noise

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// countingRand records how many values were drawn.
type countingRand struct {
	rng   *rand.Rand
	calls int
}

func newCountingRand(seed int64) *countingRand {
	return &countingRand{rng: rand.New(rand.NewSource(seed))}
}

func (c *countingRand) Float64() float64 {
	c.calls++
	return c.rng.Float64()
}

func (c *countingRand) Intn(n int) int {
	c.calls++
	return c.rng.Intn(n)
}

// stubSource is a Source whose Compute is supplied by the test.
type stubSource struct {
	width, height int
	frequency     float64
	gradients     []mgl64.Vec2
	compute       func(x, y float64) float64
}

func (s *stubSource) Width() int         { return s.width }
func (s *stubSource) Height() int        { return s.height }
func (s *stubSource) Frequency() float64 { return s.frequency }
func (s *stubSource) RandomSource() Rand { return nil }

func (s *stubSource) SetFrequency(frequency float64) error {
	if err := validateFrequency(frequency); err != nil {
		return err
	}
	s.frequency = frequency
	return nil
}

func (s *stubSource) Gradients() []mgl64.Vec2 { return s.gradients }

func (s *stubSource) Gradient(x, y int) mgl64.Vec2 {
	return s.gradients[floorMod(x+y, len(s.gradients))]
}

func (s *stubSource) Fade(t float64) float64 { return fade(t) }

func (s *stubSource) Interpolate(a, b, alpha float64) float64 { return lerp(a, b, alpha) }

func (s *stubSource) Compute(x, y float64) float64 { return s.compute(x, y) }

func (s *stubSource) ComputeAt(x, y int) float64 {
	return s.compute(float64(x)*s.frequency, float64(y)*s.frequency)
}

// fixedField builds a lattice from literal gradients.
func fixedField(width, height int, gradients ...mgl64.Vec2) *GradientField {
	return &GradientField{
		width:     width,
		height:    height,
		rng:       rand.New(rand.NewSource(0)),
		gradients: gradients,
	}
}
