package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Coloring maps a normalized noise value in [0, 1] to a pixel color.
type Coloring string

const (
	// Simple paints water below the midpoint and land above it.
	Simple Coloring = "simple"
	// Mountain adds brown highlands and snow caps.
	Mountain Coloring = "mountain"
)

var Colorings = []Coloring{Simple, Mountain}

func ParseColoring(s string) (Coloring, error) {
	c := Coloring(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Simple, Mountain:
		return c, nil
	}
	return "", fmt.Errorf("unknown coloring %q", s)
}

func (c Coloring) Color(v float64) color.RGBA {
	switch c {
	case Mountain:
		switch {
		case v < 0.45:
			return water(v)
		case v < 0.6:
			return land(v)
		case v < 0.8:
			return rgb(v, v*0.5, 0)
		default:
			return rgb(v, v, v)
		}
	default:
		if v <= 0.5 {
			return water(v)
		}
		return land(v)
	}
}

func water(v float64) color.RGBA {
	return rgb(0, 0, v*2)
}

func land(v float64) color.RGBA {
	return rgb(0, v, 0)
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 0xff}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
