package render

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/agusx1211/perlin-noise/internal/noise"
)

func TestSimpleColoring(t *testing.T) {
	cases := []struct {
		v    float64
		want color.RGBA
	}{
		{0, color.RGBA{0, 0, 0, 255}},
		{0.25, color.RGBA{0, 0, 128, 255}},
		{0.5, color.RGBA{0, 0, 255, 255}},
		{0.75, color.RGBA{0, 191, 0, 255}},
		{1, color.RGBA{0, 255, 0, 255}},
	}
	for _, c := range cases {
		if got := Simple.Color(c.v); got != c.want {
			t.Errorf("Simple.Color(%v)=%v want %v", c.v, got, c.want)
		}
	}
}

func TestMountainColoringBands(t *testing.T) {
	cases := []struct {
		v    float64
		want color.RGBA
	}{
		{0.4, color.RGBA{0, 0, 204, 255}},
		{0.5, color.RGBA{0, 128, 0, 255}},
		{0.64, color.RGBA{163, 82, 0, 255}},
		{0.92, color.RGBA{235, 235, 235, 255}},
	}
	for _, c := range cases {
		if got := Mountain.Color(c.v); got != c.want {
			t.Errorf("Mountain.Color(%v)=%v want %v", c.v, got, c.want)
		}
	}
}

func TestColoringClamps(t *testing.T) {
	if got := Simple.Color(-0.3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Simple.Color(-0.3)=%v", got)
	}
	if got := Mountain.Color(1.4); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Mountain.Color(1.4)=%v", got)
	}
}

func TestParseColoring(t *testing.T) {
	if c, err := ParseColoring("Mountain"); err != nil || c != Mountain {
		t.Fatalf("ParseColoring(Mountain)=%q,%v", c, err)
	}
	if _, err := ParseColoring("ocean"); err == nil {
		t.Fatalf("ParseColoring(ocean) succeeded")
	}
}

func testSource(t *testing.T) noise.Source {
	t.Helper()
	p, err := noise.NewPerlin(24, 16, 0.1, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewPerlin: %v", err)
	}
	return p
}

func TestImageMatchesColoring(t *testing.T) {
	src := testSource(t)
	img, err := Image(src, Mountain)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Fatalf("bounds=%v want 24x16", b)
	}
	for _, pt := range [][2]int{{0, 0}, {5, 3}, {23, 15}} {
		v := (src.ComputeAt(pt[0], pt[1]) + 1) / 2
		if got, want := img.RGBAAt(pt[0], pt[1]), Mountain.Color(v); got != want {
			t.Errorf("pixel %v=%v want %v", pt, got, want)
		}
	}
}

func TestCaptionDrawsOnTopBar(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 40))
	Caption(img, "seed=1")

	top, bottom := 0, 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			if y < 20 {
				top++
			} else {
				bottom++
			}
		}
	}
	if top == 0 {
		t.Fatalf("caption drew nothing")
	}
	if bottom != 0 {
		t.Fatalf("caption drew %d pixels below the bar", bottom)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.png":     PNG,
		"dir/b.BMP": BMP,
		"c.tif":     TIFF,
		"d.tiff":    TIFF,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q)=%q,%v want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("e.jpg"); err == nil {
		t.Errorf("FormatFromPath(e.jpg) succeeded")
	}
}

func TestScale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})

	scaled := Scale(img, 3)
	if b := scaled.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds=%v want 6x6", b)
	}
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			if r, _, _, _ := scaled.At(x, y).RGBA(); r != 0xffff {
				t.Fatalf("pixel (%d,%d) not red", x, y)
			}
		}
	}
	if Scale(img, 1) != image.Image(img) {
		t.Fatalf("factor 1 should return the input")
	}
}

func TestExportRoundTrip(t *testing.T) {
	img, err := Image(testSource(t), Simple)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	dir := t.TempDir()

	for _, name := range []string{"field.png", "nested/field.bmp", "field.tiff"} {
		path := filepath.Join(dir, name)
		if err := Export(path, img, 2); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}

		var decoded image.Image
		switch filepath.Ext(name) {
		case ".bmp":
			decoded, err = bmp.Decode(bytes.NewReader(data))
		case ".tiff":
			decoded, err = tiff.Decode(bytes.NewReader(data))
		default:
			decoded, _, err = image.Decode(bytes.NewReader(data))
		}
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := decoded.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
			t.Fatalf("%s bounds=%v want 48x32", name, b)
		}
	}
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := Export(filepath.Join(t.TempDir(), "x.gif"), img, 1); err == nil {
		t.Fatalf("Export(.gif) succeeded")
	}
}

func TestASCII(t *testing.T) {
	src := testSource(t)
	out := ASCII(src, 12, 4)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines want 4", len(lines))
	}
	for i, line := range lines {
		if len(line) != 12 {
			t.Fatalf("line %d has %d columns want 12", i, len(line))
		}
		for _, ch := range line {
			if !strings.ContainsRune(asciiRamp, ch) {
				t.Fatalf("line %d has unexpected rune %q", i, ch)
			}
		}
	}
	if ASCII(src, 0, 4) != "" {
		t.Fatalf("zero columns should render nothing")
	}
}

func TestRampChar(t *testing.T) {
	if rampChar(0) != ' ' || rampChar(1) != '@' || rampChar(-2) != ' ' || rampChar(7) != '@' {
		t.Fatalf("ramp ends wrong")
	}
}
