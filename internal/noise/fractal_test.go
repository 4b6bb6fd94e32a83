package noise

import (
	"errors"
	"math/rand"
	"testing"
)

func productSource(frequency float64) *stubSource {
	return &stubSource{
		width:     10,
		height:    10,
		frequency: frequency,
		compute:   func(x, y float64) float64 { return x * y },
	}
}

func TestFractalSingleOctave(t *testing.T) {
	base, _ := NewPerlin(16, 16, 0.07, rand.New(rand.NewSource(4)))
	f, err := NewFractal(base, FractalConfig{Amplitude: 1.7, Octaves: 1, Lacunarity: 2, Persistence: 0.5})
	if err != nil {
		t.Fatalf("NewFractal: %v", err)
	}
	for _, pt := range [][2]float64{{0, 0}, {3.5, 1.25}, {100, 42}, {-7, 3}} {
		want := 1.7 * base.Compute(pt[0]*0.07, pt[1]*0.07)
		if got := f.Compute(pt[0], pt[1]); got != want {
			t.Errorf("Compute(%v,%v)=%v want %v", pt[0], pt[1], got, want)
		}
	}
}

// TestFractalOctaveSum checks frequency and amplitude progressions by hand.
func TestFractalOctaveSum(t *testing.T) {
	f, err := NewFractal(productSource(0.5), FractalConfig{Amplitude: 2, Octaves: 3, Lacunarity: 2, Persistence: 0.5})
	if err != nil {
		t.Fatalf("NewFractal: %v", err)
	}
	// octave 0: 2 * (0.5*1)(0.5*2) = 1, octave 1: 1 * (1*1)(1*2) = 2, octave 2: 0.5 * (2*1)(2*2) = 4
	if got := f.Compute(1, 2); got != 7 {
		t.Fatalf("Compute(1,2)=%v want 7", got)
	}
	if got := f.ComputeAt(1, 2); got != 7 {
		t.Fatalf("ComputeAt(1,2)=%v want 7", got)
	}
}

func TestFractalRejectsOctaves(t *testing.T) {
	for _, octaves := range []int{0, -1} {
		_, err := NewFractal(productSource(0.5), FractalConfig{Amplitude: 1, Octaves: octaves})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("octaves=%d: err=%v want ErrInvalidArgument", octaves, err)
		}
	}
	if _, err := NewFractal(nil, FractalConfig{Octaves: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil source: err=%v want ErrInvalidArgument", err)
	}
}

func TestFractalSetters(t *testing.T) {
	f, _ := NewFractal(productSource(0.5), FractalConfig{Amplitude: 1, Octaves: 2, Lacunarity: 2, Persistence: 0.5})
	f.SetAmplitude(3)
	f.SetLacunarity(3)
	f.SetPersistence(0.25)
	if err := f.SetOctaves(4); err != nil {
		t.Fatalf("SetOctaves(4): %v", err)
	}
	if err := f.SetOctaves(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SetOctaves(0) err=%v want ErrInvalidArgument", err)
	}
	want := FractalConfig{Amplitude: 3, Octaves: 4, Lacunarity: 3, Persistence: 0.25}
	if got := f.Config(); got != want {
		t.Fatalf("Config()=%+v want %+v", got, want)
	}
}

func TestFractalFrequencyIsInners(t *testing.T) {
	inner := productSource(0.5)
	f, _ := NewFractal(inner, FractalConfig{Amplitude: 1, Octaves: 1, Lacunarity: 2, Persistence: 0.5})
	if err := f.SetFrequency(0.25); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if inner.Frequency() != 0.25 || f.Frequency() != 0.25 {
		t.Fatalf("frequency not forwarded: inner=%v fractal=%v", inner.Frequency(), f.Frequency())
	}
	if f.Width() != 10 || f.Height() != 10 {
		t.Fatalf("dimensions not delegated")
	}
}

func TestNormalized(t *testing.T) {
	inner := productSource(1)
	n, err := NewNormalized(inner)
	if err != nil {
		t.Fatalf("NewNormalized: %v", err)
	}
	if got := n.Compute(1, -1); got != 0 {
		t.Fatalf("Compute(1,-1)=%v want 0", got)
	}
	if got := n.Compute(1, 1); got != 1 {
		t.Fatalf("Compute(1,1)=%v want 1", got)
	}
	if got := n.ComputeAt(0, 5); got != 0.5 {
		t.Fatalf("ComputeAt(0,5)=%v want 0.5", got)
	}
}

func TestNormalizedPerlinRange(t *testing.T) {
	base, _ := NewPerlin(32, 32, 0.05, rand.New(rand.NewSource(12)))
	n, _ := NewNormalized(base)
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			v := n.ComputeAt(x, y)
			if v < -0.5 || v > 1.5 {
				t.Fatalf("normalized value %v far outside [0,1]", v)
			}
		}
	}
}
