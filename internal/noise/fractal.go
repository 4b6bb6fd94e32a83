package noise

import "fmt"

// DefaultAmplitude is the first-octave amplitude when none is given.
const DefaultAmplitude = 1.0

// FractalConfig controls how octaves of the wrapped source are summed.
type FractalConfig struct {
	Amplitude   float64
	Octaves     int
	Lacunarity  float64
	Persistence float64
}

// Fractal sums octaves of the wrapped source. Octave i samples at
// frequency f*lacunarity^i with amplitude a*persistence^i, where f is the
// wrapped source's frequency.
type Fractal struct {
	delegate
	amplitude   float64
	octaves     int
	lacunarity  float64
	persistence float64
}

func NewFractal(inner Source, cfg FractalConfig) (*Fractal, error) {
	if inner == nil {
		return nil, errNilSource
	}
	if err := validateOctaves(cfg.Octaves); err != nil {
		return nil, err
	}
	return &Fractal{
		delegate:    delegate{inner: inner},
		amplitude:   cfg.Amplitude,
		octaves:     cfg.Octaves,
		lacunarity:  cfg.Lacunarity,
		persistence: cfg.Persistence,
	}, nil
}

func validateOctaves(octaves int) error {
	if octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1 (got %d)", ErrInvalidArgument, octaves)
	}
	return nil
}

func (f *Fractal) Compute(x, y float64) float64 {
	frequency := f.inner.Frequency()
	amplitude := f.amplitude
	sum := 0.0
	for i := 0; i < f.octaves; i++ {
		sum += amplitude * f.inner.Compute(x*frequency, y*frequency)
		frequency *= f.lacunarity
		amplitude *= f.persistence
	}
	return sum
}

// ComputeAt does not prescale: every octave applies its own frequency.
func (f *Fractal) ComputeAt(x, y int) float64 {
	return f.Compute(float64(x), float64(y))
}

// Config returns the current octave settings.
func (f *Fractal) Config() FractalConfig {
	return FractalConfig{
		Amplitude:   f.amplitude,
		Octaves:     f.octaves,
		Lacunarity:  f.lacunarity,
		Persistence: f.persistence,
	}
}

func (f *Fractal) Amplitude() float64 {
	return f.amplitude
}

func (f *Fractal) SetAmplitude(amplitude float64) {
	f.amplitude = amplitude
}

func (f *Fractal) Octaves() int {
	return f.octaves
}

func (f *Fractal) SetOctaves(octaves int) error {
	if err := validateOctaves(octaves); err != nil {
		return err
	}
	f.octaves = octaves
	return nil
}

func (f *Fractal) Lacunarity() float64 {
	return f.lacunarity
}

func (f *Fractal) SetLacunarity(lacunarity float64) {
	f.lacunarity = lacunarity
}

func (f *Fractal) Persistence() float64 {
	return f.persistence
}

func (f *Fractal) SetPersistence(persistence float64) {
	f.persistence = persistence
}
