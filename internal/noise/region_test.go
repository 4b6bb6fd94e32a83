package noise

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestRegionMatchesComputeAt(t *testing.T) {
	p, _ := NewPerlin(40, 30, 0.05, rand.New(rand.NewSource(21)))
	out := Region(p, 5, 7, 12, 9)
	if len(out) != 12 {
		t.Fatalf("len(out)=%d want 12", len(out))
	}
	for i := range out {
		if len(out[i]) != 9 {
			t.Fatalf("len(out[%d])=%d want 9", i, len(out[i]))
		}
		for j := range out[i] {
			if want := p.ComputeAt(5+i, 7+j); out[i][j] != want {
				t.Fatalf("out[%d][%d]=%v want %v", i, j, out[i][j], want)
			}
		}
	}
}

func TestFieldCoversDomain(t *testing.T) {
	p, _ := NewPerlin(17, 5, 0.2, rand.New(rand.NewSource(3)))
	out := Field(p)
	if len(out) != 17 || len(out[0]) != 5 {
		t.Fatalf("Field is %dx%d want 17x5", len(out), len(out[0]))
	}
	if out[16][4] != p.ComputeAt(16, 4) {
		t.Fatalf("last sample mismatch")
	}
}

func TestRegionEmpty(t *testing.T) {
	p, _ := NewPerlin(4, 4, 0.2, rand.New(rand.NewSource(3)))
	if out := Region(p, 0, 0, -3, 4); len(out) != 0 {
		t.Fatalf("negative width gave %d columns", len(out))
	}
	out := Region(p, 0, 0, 2, -1)
	if len(out) != 2 || len(out[0]) != 0 {
		t.Fatalf("negative height gave %v", out)
	}
}

func TestRegionContextCanceled(t *testing.T) {
	p, _ := NewPerlin(64, 64, 0.2, rand.New(rand.NewSource(3)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := RegionContext(ctx, p, 0, 0, 64, 64)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
	if out != nil {
		t.Fatalf("canceled region returned data")
	}
}
