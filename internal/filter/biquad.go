package filter

import "math"

type ShelfType int

const (
	LowShelf ShelfType = iota
	HighShelf
)

// MaxGainDB bounds the boost or cut a shelf applies.
const MaxGainDB = 12.0

type coefficients struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// shelfCoefficients follows the RBJ Audio EQ Cookbook with slope S=1,
// normalized so a0 == 1.
func shelfCoefficients(kind ShelfType, f0, gainDB, sampleRate float64) coefficients {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * f0 / sampleRate
	cos, sin := math.Cos(w0), math.Sin(w0)
	alpha := sin / 2 * math.Sqrt2
	k := 2 * math.Sqrt(a) * alpha

	sign := 1.0
	if kind == HighShelf {
		sign = -1
	}
	// The high shelf is the low shelf with the sign of the cos terms flipped.
	b0 := a * ((a + 1) - sign*(a-1)*cos + k)
	b1 := sign * 2 * a * ((a - 1) - sign*(a+1)*cos)
	b2 := a * ((a + 1) - sign*(a-1)*cos - k)
	a0 := (a + 1) + sign*(a-1)*cos + k
	a1 := -sign * 2 * ((a - 1) + sign*(a+1)*cos)
	a2 := (a + 1) + sign*(a-1)*cos - k

	return coefficients{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

// Shelf is a direct form I biquad shelving filter for one channel.
type Shelf struct {
	kind       ShelfType
	f0         float64
	sampleRate float64
	gainDB     float64

	c      coefficients
	x1, x2 float64
	y1, y2 float64
}

func NewShelf(kind ShelfType, f0, gainDB, sampleRate float64) *Shelf {
	s := &Shelf{kind: kind, f0: f0, sampleRate: sampleRate}
	s.SetGain(gainDB)
	return s
}

// SetGain recomputes the coefficients. Filter memory is kept so gain
// changes do not click.
func (s *Shelf) SetGain(gainDB float64) {
	s.gainDB = math.Max(-MaxGainDB, math.Min(MaxGainDB, gainDB))
	s.c = shelfCoefficients(s.kind, s.f0, s.gainDB, s.sampleRate)
}

func (s *Shelf) Gain() float64 {
	return s.gainDB
}

// Reset clears the filter memory.
func (s *Shelf) Reset() {
	s.x1, s.x2, s.y1, s.y2 = 0, 0, 0, 0
}

// Process filters samples in place.
func (s *Shelf) Process(samples []float64) {
	c := s.c
	for i, x := range samples {
		y := c.b0*x + c.b1*s.x1 + c.b2*s.x2 - c.a1*s.y1 - c.a2*s.y2
		s.x2, s.x1 = s.x1, x
		s.y2, s.y1 = s.y1, y
		samples[i] = y
	}
}
