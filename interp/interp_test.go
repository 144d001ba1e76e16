package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestTableLinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tab, err := NewTable([]float64{0, 1, 2}, []float64{0, 10, 0})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	assert.InDelta(t, 5.0, tab.At(0.5), 1e-12)
	assert.InDelta(t, 10.0, tab.At(1), 1e-12)
	assert.InDelta(t, 2.0, tab.At(1.8), 1e-12)
	// Clamped outside the knot range.
	assert.InDelta(t, 0.0, tab.At(-3), 1e-12)
	assert.InDelta(t, 0.0, tab.At(9), 1e-12)
}

func TestTableRejectsNonMonotonic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if _, err := NewTable([]float64{0, 2, 2, 3}, []float64{1, 2, 3, 4}); !errors.Is(err, ErrNotMonotonic) {
		t.Errorf("expected monotonicity error, got %v", err)
	}
	if _, err := NewTable([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrDimension) {
		t.Errorf("expected dimension error, got %v", err)
	}
	if _, err := NewTable([]float64{0}, []float64{1}); !errors.Is(err, ErrDimension) {
		t.Errorf("expected dimension error, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := Grid(0, 10, 2.5)
	if len(g) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(g))
	}
	assert.InDelta(t, 10.0, g[len(g)-1], 1e-12, "endpoint included when divisible")
	g = Grid(0, 1, 0.3) // not divisible: last sample below endpoint
	if len(g) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(g))
	}
	assert.InDelta(t, 0.9, g[len(g)-1], 1e-12)
}

func TestNearestIndex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xs := []float64{0, 10, 20, 30}
	cases := []struct {
		v    float64
		want int
	}{
		{-5, 0}, {0, 0}, {4.9, 0}, {5.1, 1}, {14, 1}, {16, 2}, {30, 3}, {99, 3},
	}
	for _, c := range cases {
		if got := NearestIndex(xs, c.v); got != c.want {
			t.Errorf("NearestIndex(%g) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestDiffPadsTrailingZero(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	d := Diff([]float64{0, 1, 4, 9}, 1)
	assert.InDeltaSlice(t, []float64{1, 3, 5, 0}, d, 1e-12)
}

func TestGradientCentral(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// f(x) = x^2 on grid 0,1,2,3: central gradient is exact at interior points.
	g := Gradient([]float64{0, 1, 4, 9}, 1)
	assert.InDelta(t, 2.0, g[1], 1e-12)
	assert.InDelta(t, 4.0, g[2], 1e-12)
	assert.InDelta(t, 1.0, g[0], 1e-12)
	assert.InDelta(t, 5.0, g[3], 1e-12)
}

func TestCubicThroughKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, 0, -1, 0}
	c, err := NewCubic(xs, ys)
	if err != nil {
		t.Fatalf("NewCubic failed: %v", err)
	}
	for i := range xs {
		assert.InDelta(t, ys[i], c.At(xs[i]), 1e-9, "knot %d", i)
	}
}

func TestPchipNoOvershoot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 0, 5, 5}
	p, err := NewPchip(xs, ys)
	if err != nil {
		t.Fatalf("NewPchip failed: %v", err)
	}
	for q := 0.0; q <= 3.0; q += 0.05 {
		v := p.At(q)
		if v < -1e-9 || v > 5+1e-9 {
			t.Fatalf("shape-preserving interpolant overshoots at %g: %g", q, v)
		}
	}
	if math.Abs(p.At(2)-5) > 1e-9 {
		t.Errorf("knot value not reproduced: %g", p.At(2))
	}
}
