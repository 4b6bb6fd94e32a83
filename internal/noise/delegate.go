package noise

import "github.com/go-gl/mathgl/mgl64"

// delegate forwards every Source method except Compute and ComputeAt to
// the wrapped source. Wrappers embed it and supply their own Compute.
type delegate struct {
	inner Source
}

// Inner returns the wrapped source.
func (d delegate) Inner() Source {
	return d.inner
}

func (d delegate) Width() int {
	return d.inner.Width()
}

func (d delegate) Height() int {
	return d.inner.Height()
}

func (d delegate) Frequency() float64 {
	return d.inner.Frequency()
}

func (d delegate) SetFrequency(frequency float64) error {
	return d.inner.SetFrequency(frequency)
}

func (d delegate) RandomSource() Rand {
	return d.inner.RandomSource()
}

func (d delegate) Gradients() []mgl64.Vec2 {
	return d.inner.Gradients()
}

func (d delegate) Gradient(x, y int) mgl64.Vec2 {
	return d.inner.Gradient(x, y)
}

func (d delegate) Fade(t float64) float64 {
	return d.inner.Fade(t)
}

func (d delegate) Interpolate(a, b, alpha float64) float64 {
	return d.inner.Interpolate(a, b, alpha)
}

// Normalized maps the wrapped source from [-1, 1] into [0, 1].
type Normalized struct {
	delegate
}

func NewNormalized(inner Source) (*Normalized, error) {
	if inner == nil {
		return nil, errNilSource
	}
	return &Normalized{delegate{inner: inner}}, nil
}

func (n *Normalized) Compute(x, y float64) float64 {
	return (n.inner.Compute(x, y) + 1) / 2
}

func (n *Normalized) ComputeAt(x, y int) float64 {
	return (n.inner.ComputeAt(x, y) + 1) / 2
}
