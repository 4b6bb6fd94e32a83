package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/render"
)

func main() {
	defaults := generator.DefaultParams()

	algorithm := flag.String("algorithm", string(defaults.Algorithm), "noise algorithm (simple|improved|fractal|fractal-improved)")
	seed := flag.Int64("seed", defaults.Seed, "random seed")
	randomSeed := flag.Bool("random-seed", false, "use a time-based seed instead of -seed")
	frequency := flag.Float64("frequency", defaults.Frequency, "base frequency in [0,1]")
	amplitude := flag.Float64("amplitude", defaults.Amplitude, "first octave amplitude (fractal)")
	octaves := flag.Int("octaves", defaults.Octaves, "number of octaves (fractal)")
	lacunarity := flag.Float64("lacunarity", defaults.Lacunarity, "frequency multiplier per octave (fractal)")
	persistence := flag.Float64("persistence", defaults.Persistence, "amplitude multiplier per octave (fractal)")
	size := flag.String("size", "512x512", "field size as WxH")
	coloring := flag.String("coloring", string(render.Simple), "coloring (simple|mountain)")
	out := flag.String("out", "", "output image (.png, .bmp, .tif, .tiff)")
	scale := flag.Int("scale", 1, "integer upscaling factor for -out")
	caption := flag.Bool("caption", false, "draw the parameters on the image")
	preview := flag.Bool("preview", false, "print an ASCII preview sized to the terminal")
	flag.Parse()

	if *out == "" && !*preview {
		fmt.Fprintln(os.Stderr, "Error: nothing to do, pass -out and/or -preview")
		fmt.Fprintln(os.Stderr, "Usage: noise-render [-algorithm A] [-seed N] [-size WxH] [-coloring C] [-out file.png] [-scale N] [-preview]")
		os.Exit(1)
	}

	w, h, err := parseSize(*size)
	if err != nil {
		fatal(err)
	}
	alg, err := generator.ParseAlgorithm(*algorithm)
	if err != nil {
		fatal(err)
	}
	col, err := render.ParseColoring(*coloring)
	if err != nil {
		fatal(err)
	}
	if *randomSeed {
		*seed = time.Now().UnixNano()
	}

	params := generator.Params{
		Algorithm:   alg,
		Seed:        *seed,
		Frequency:   *frequency,
		Amplitude:   *amplitude,
		Octaves:     *octaves,
		Lacunarity:  *lacunarity,
		Persistence: *persistence,
	}

	gen, err := generator.New(w, h, 1)
	if err != nil {
		fatal(err)
	}
	src, _, err := gen.Select(params)
	if err != nil {
		fatal(err)
	}

	if *out != "" {
		fmt.Fprintf(os.Stderr, "Rendering %dx%d %s...\n", w, h, params.Describe())
		start := time.Now()
		img, err := render.Image(src, col)
		if err != nil {
			fatal(err)
		}
		if *caption {
			render.Caption(img, params.Describe())
		}
		if err := render.Export(*out, img, *scale); err != nil {
			fatal(err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s in %v\n", *out, time.Since(start).Round(time.Millisecond))
	}

	if *preview {
		cols, rows := previewSize()
		fmt.Print(render.ASCII(src, cols, rows))
	}
}

// previewSize fits the preview to the terminal, leaving a line for the
// prompt. Without a terminal it falls back to 80x24.
func previewSize() (int, int) {
	cols, rows := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 1 {
			cols, rows = w, h
		}
	}
	return cols, rows - 1
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q", parts[1])
	}
	return w, h, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
