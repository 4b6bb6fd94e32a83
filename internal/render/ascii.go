package render

import (
	"strings"

	"github.com/agusx1211/perlin-noise/internal/noise"
)

const asciiRamp = " .:-=+*#%@"

// ASCII samples src on a cols x rows grid spread over its domain and maps
// each normalized value onto a brightness ramp. Rows end with '\n'.
func ASCII(src noise.Source, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	normalized, err := noise.NewNormalized(src)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for r := 0; r < rows; r++ {
		y := r * src.Height() / rows
		for c := 0; c < cols; c++ {
			x := c * src.Width() / cols
			sb.WriteByte(rampChar(normalized.ComputeAt(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func rampChar(v float64) byte {
	i := int(v * float64(len(asciiRamp)))
	i = max(0, min(len(asciiRamp)-1, i))
	return asciiRamp[i]
}
