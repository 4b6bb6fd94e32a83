package mqtt

import (
	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/render"
)

// Preset is a named noise look. Applying one keeps the current seed.
type Preset struct {
	Name        string
	Algorithm   generator.Algorithm
	Frequency   float64
	Amplitude   float64
	Octaves     int
	Lacunarity  float64
	Persistence float64
	Coloring    render.Coloring
}

var Presets = []Preset{
	{"Rolling Hills", generator.Simple, 0.005, 1, 8, 2, 0.5, render.Simple},
	{"Tiled Plains", generator.Improved, 0.02, 1, 8, 2, 0.5, render.Simple},
	{"Islands", generator.Fractal, 0.01, 1, 6, 2, 0.5, render.Simple},
	{"Archipelago", generator.Fractal, 0.03, 1, 4, 2.2, 0.45, render.Mountain},
	{"Continents", generator.Fractal, 0.003, 1, 8, 2, 0.55, render.Mountain},
	{"Highlands", generator.Fractal, 0.008, 1.2, 8, 2.5, 0.6, render.Mountain},
	{"Mesas", generator.FractalImproved, 0.01, 1, 5, 2, 0.5, render.Mountain},
}

// Params returns p's settings on top of the given seed.
func (p Preset) Params(seed int64) generator.Params {
	return generator.Params{
		Algorithm:   p.Algorithm,
		Seed:        seed,
		Frequency:   p.Frequency,
		Amplitude:   p.Amplitude,
		Octaves:     p.Octaves,
		Lacunarity:  p.Lacunarity,
		Persistence: p.Persistence,
	}
}

func FindPreset(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}
