package render

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/agusx1211/perlin-noise/internal/noise"
)

// Image renders the full domain of src. Pixel (x, y) is the normalized
// value of src.ComputeAt(x, y) passed through coloring.
func Image(src noise.Source, coloring Coloring) (*image.RGBA, error) {
	return ImageContext(context.Background(), src, coloring)
}

func ImageContext(ctx context.Context, src noise.Source, coloring Coloring) (*image.RGBA, error) {
	normalized, err := noise.NewNormalized(src)
	if err != nil {
		return nil, fmt.Errorf("render field: %w", err)
	}
	values, err := noise.RegionContext(ctx, normalized, 0, 0, src.Width(), src.Height())
	if err != nil {
		return nil, fmt.Errorf("render field: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, src.Width(), src.Height()))
	for x, column := range values {
		for y, v := range column {
			img.SetRGBA(x, y, coloring.Color(v))
		}
	}
	return img, nil
}

const captionPadding = 3

// Caption draws text on a translucent bar along the top edge of img.
func Caption(img draw.Image, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	b := img.Bounds()
	barHeight := face.Height + 2*captionPadding

	bar := image.Rect(b.Min.X, b.Min.Y, b.Max.X, min(b.Min.Y+barHeight, b.Max.Y))
	draw.Draw(img, bar, image.NewUniform(color.RGBA{A: 0x99}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+captionPadding, b.Min.Y+captionPadding+face.Ascent),
	}
	d.DrawString(text)
}
