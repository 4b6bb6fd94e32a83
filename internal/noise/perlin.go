package noise

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perlin is classic gradient noise over a dense GradientField.
type Perlin struct {
	field     *GradientField
	frequency float64
}

// NewPerlin builds the gradient lattice for a width x height domain. The
// frequency is validated before any gradient is drawn.
func NewPerlin(width, height int, frequency float64, rng Rand) (*Perlin, error) {
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}
	field, err := NewGradientField(width, height, rng)
	if err != nil {
		return nil, err
	}
	return &Perlin{field: field, frequency: frequency}, nil
}

// NewPerlinFromField shares an already generated lattice.
func NewPerlinFromField(field *GradientField, frequency float64) (*Perlin, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: gradient field is nil", ErrInvalidArgument)
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}
	return &Perlin{field: field, frequency: frequency}, nil
}

func (p *Perlin) Width() int {
	return p.field.Width()
}

func (p *Perlin) Height() int {
	return p.field.Height()
}

func (p *Perlin) Frequency() float64 {
	return p.frequency
}

// SetFrequency must not be called while other goroutines compute.
func (p *Perlin) SetFrequency(frequency float64) error {
	if err := validateFrequency(frequency); err != nil {
		return err
	}
	p.frequency = frequency
	return nil
}

func (p *Perlin) RandomSource() Rand {
	return p.field.RandomSource()
}

func (p *Perlin) Field() *GradientField {
	return p.field
}

func (p *Perlin) Gradients() []mgl64.Vec2 {
	return p.field.Gradients()
}

func (p *Perlin) Gradient(x, y int) mgl64.Vec2 {
	return p.field.Gradient(x, y)
}

// Fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func (p *Perlin) Fade(t float64) float64 {
	return fade(t)
}

func (p *Perlin) Interpolate(a, b, alpha float64) float64 {
	return lerp(a, b, alpha)
}

func (p *Perlin) Compute(x, y float64) float64 {
	return compute(p, x, y)
}

func (p *Perlin) ComputeAt(x, y int) float64 {
	f := p.frequency
	return p.Compute(float64(x)*f, float64(y)*f)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, alpha float64) float64 {
	return a + alpha*(b-a)
}

// lattice is the part of a Source the interpolation pipeline needs.
type lattice interface {
	Gradient(x, y int) mgl64.Vec2
	Fade(t float64) float64
	Interpolate(a, b, alpha float64) float64
}

// compute evaluates one cell: corner gradients dotted with the distance
// vectors, blended along x and then y with faded weights.
func compute(l lattice, x, y float64) float64 {
	x0 := int(math.Floor(x))
	x1 := x0 + 1
	y0 := int(math.Floor(y))
	y1 := y0 + 1

	g00 := l.Gradient(x0, y0)
	g10 := l.Gradient(x1, y0)
	g01 := l.Gradient(x0, y1)
	g11 := l.Gradient(x1, y1)

	s00 := mgl64.Vec2{x - float64(x0), y - float64(y0)}.Dot(g00)
	s10 := mgl64.Vec2{x - float64(x1), y - float64(y0)}.Dot(g10)
	s01 := mgl64.Vec2{x - float64(x0), y - float64(y1)}.Dot(g01)
	s11 := mgl64.Vec2{x - float64(x1), y - float64(y1)}.Dot(g11)

	u := l.Fade(x - float64(x0))
	v := l.Fade(y - float64(y0))

	lx0 := l.Interpolate(s00, s10, u)
	lx1 := l.Interpolate(s01, s11, u)
	return l.Interpolate(lx0, lx1, v)
}
