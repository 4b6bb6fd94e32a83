package noise

import (
	"context"

	"github.com/dgravesa/go-parallel/parallel"
)

// Region evaluates src.ComputeAt over the w x h pixel rectangle whose
// top-left corner is (x, y). The result is indexed [column][row]. Columns
// are computed in parallel; src must not be mutated meanwhile.
func Region(src Source, x, y, w, h int) [][]float64 {
	out, _ := RegionContext(context.Background(), src, x, y, w, h)
	return out
}

// Field evaluates the full [0, width) x [0, height) domain of src.
func Field(src Source) [][]float64 {
	return Region(src, 0, 0, src.Width(), src.Height())
}

// RegionContext is Region with cooperative cancellation between columns.
func RegionContext(ctx context.Context, src Source, x, y, w, h int) ([][]float64, error) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	out := make([][]float64, w)
	if w == 0 {
		return out, ctx.Err()
	}
	parallel.For(w, func(i, _ int) {
		if ctx.Err() != nil {
			return
		}
		column := make([]float64, h)
		for j := range column {
			column[j] = src.ComputeAt(x+i, y+j)
		}
		out[i] = column
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
