package noise

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// GradientField stores one random gradient per lattice corner of a
// width x height domain. The lattice is (width+1) x (height+1) so the
// right and bottom edges of the domain can still be interpolated.
type GradientField struct {
	width     int
	height    int
	rng       Rand
	gradients []mgl64.Vec2
}

// NewGradientField validates the domain and draws the gradient lattice
// from rng. Nothing is drawn if validation fails.
func NewGradientField(width, height int, rng Rand) (*GradientField, error) {
	if width < 0 {
		return nil, fmt.Errorf("%w: width cannot be negative (got %d)", ErrInvalidArgument, width)
	}
	if height < 0 {
		return nil, fmt.Errorf("%w: height cannot be negative (got %d)", ErrInvalidArgument, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidArgument)
	}
	return &GradientField{
		width:     width,
		height:    height,
		rng:       rng,
		gradients: CreateGradients(rng, width+1, height+1),
	}, nil
}

// CreateGradient returns a vector uniformly distributed in the closed unit
// disk. It always consumes exactly two values from rng.
func CreateGradient(rng Rand) mgl64.Vec2 {
	angle := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(rng.Float64())
	return mgl64.Vec2{r * math.Cos(angle), r * math.Sin(angle)}
}

// CreateGradients returns w*h gradients in row-major order.
func CreateGradients(rng Rand, w, h int) []mgl64.Vec2 {
	if w <= 0 || h <= 0 {
		return []mgl64.Vec2{}
	}
	gradients := make([]mgl64.Vec2, w*h)
	for i := range gradients {
		gradients[i] = CreateGradient(rng)
	}
	return gradients
}

func (f *GradientField) Width() int {
	return f.width
}

func (f *GradientField) Height() int {
	return f.height
}

func (f *GradientField) RandomSource() Rand {
	return f.rng
}

// Gradients returns a copy of the lattice.
func (f *GradientField) Gradients() []mgl64.Vec2 {
	return slices.Clone(f.gradients)
}

// Gradient returns the lattice gradient at (x, y). Coordinates wrap
// around the (width+1) x (height+1) lattice in both directions.
func (f *GradientField) Gradient(x, y int) mgl64.Vec2 {
	cols := f.width + 1
	rows := f.height + 1
	return f.gradients[floorMod(y, rows)*cols+floorMod(x, cols)]
}
