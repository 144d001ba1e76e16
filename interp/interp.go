/*
Package interp provides the interpolation primitives for road geometry:
linear lookup tables, cubic-spline and shape-preserving (monotone cubic)
interpolants, nearest-sample search, and uniform grid construction.

All interpolants require strictly increasing knot abscissae; violations fail
with ErrNotMonotonic before any interpolant is built.
*/
package interp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cnkei/gospline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'interp'
func tracer() tracing.Trace {
	return tracing.Select("interp")
}

var (
	// ErrNotMonotonic indicates knot abscissae that are not strictly increasing.
	ErrNotMonotonic = errors.New("knots are not strictly increasing")
	// ErrDimension indicates mismatched or insufficient knot slices.
	ErrDimension = errors.New("bad knot dimensions")
)

func checkKnots(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d abscissae vs %d ordinates", ErrDimension, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return fmt.Errorf("%w: need at least 2 knots, got %d", ErrDimension, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", ErrNotMonotonic, i-1, xs[i-1], i, xs[i])
		}
	}
	return nil
}

// === Linear lookup tables ==================================================

// Table is a piecewise-linear interpolant over strictly increasing knots.
// Queries outside the knot range clamp to the boundary values.
type Table struct {
	xs, ys []float64
}

// NewTable builds a linear interpolant.
func NewTable(xs, ys []float64) (*Table, error) {
	if err := checkKnots(xs, ys); err != nil {
		return nil, err
	}
	return &Table{xs: xs, ys: ys}, nil
}

// At evaluates the interpolant at x.
func (t *Table) At(x float64) float64 {
	n := len(t.xs)
	if x <= t.xs[0] {
		return t.ys[0]
	}
	if x >= t.xs[n-1] {
		return t.ys[n-1]
	}
	i := sort.SearchFloat64s(t.xs, x)
	// xs[i-1] < x <= xs[i]
	f := (x - t.xs[i-1]) / (t.xs[i] - t.xs[i-1])
	return t.ys[i-1] + f*(t.ys[i]-t.ys[i-1])
}

// Min returns the smallest knot abscissa.
func (t *Table) Min() float64 { return t.xs[0] }

// Max returns the largest knot abscissa.
func (t *Table) Max() float64 { return t.xs[len(t.xs)-1] }

// === Spline interpolants ===================================================

// Cubic is a smooth cubic-spline interpolant, used for resampling map-road
// coordinates over arc-length and for the symbolic s-from-x inverse map.
type Cubic struct {
	s gospline.Spline
}

// NewCubic builds a cubic-spline interpolant.
func NewCubic(xs, ys []float64) (*Cubic, error) {
	if err := checkKnots(xs, ys); err != nil {
		return nil, err
	}
	return &Cubic{s: gospline.NewCubicSpline(xs, ys)}, nil
}

// At evaluates the spline at x.
func (c *Cubic) At(x float64) float64 {
	return c.s.At(x)
}

// Resample evaluates the spline over [start, end] at the given step.
func (c *Cubic) Resample(start, end, step float64) []float64 {
	return c.s.Range(start, end, step)
}

// Pchip is a shape-preserving piecewise-cubic interpolant (monotone cubic,
// Fritsch-Carlson). Unlike Cubic it does not overshoot beyond the local
// extrema of its knots, which is what waypoint offset smoothing relies on.
type Pchip struct {
	s gospline.Spline
}

// NewPchip builds a shape-preserving interpolant.
func NewPchip(xs, ys []float64) (*Pchip, error) {
	if err := checkKnots(xs, ys); err != nil {
		return nil, err
	}
	return &Pchip{s: gospline.NewMonotoneSpline(xs, ys)}, nil
}

// At evaluates the interpolant at x.
func (p *Pchip) At(x float64) float64 {
	return p.s.At(x)
}

// === Sampling helpers ======================================================

// Grid returns the uniform grid from:step:to. The endpoint is included when
// (to-from) is an integral multiple of step (up to accumulated rounding).
func Grid(from, to, step float64) []float64 {
	if step <= 0 || to < from {
		return nil
	}
	n := int((to-from)/step+1e-9) + 1
	g := make([]float64, n)
	for i := range g {
		g[i] = from + float64(i)*step
	}
	return g
}

// NearestIndex returns the index of the sample in xs closest to v (nearest,
// not next-or-equal). xs must be sorted ascending.
func NearestIndex(xs []float64, v float64) int {
	n := len(xs)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(xs, v)
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if v-xs[i-1] <= xs[i]-v {
		return i - 1
	}
	return i
}

// Gradient computes the central-difference gradient of ys over a uniform
// spacing h, with one-sided differences at the boundaries. Mirrors the
// conventional numeric gradient used for heading estimation.
func Gradient(ys []float64, h float64) []float64 {
	n := len(ys)
	g := make([]float64, n)
	if n == 0 {
		return g
	}
	if n == 1 {
		return g
	}
	g[0] = (ys[1] - ys[0]) / h
	g[n-1] = (ys[n-1] - ys[n-2]) / h
	for i := 1; i < n-1; i++ {
		g[i] = (ys[i+1] - ys[i-1]) / (2 * h)
	}
	return g
}

// Diff computes forward differences of ys divided by h, padded with a
// trailing zero to preserve length.
func Diff(ys []float64, h float64) []float64 {
	n := len(ys)
	d := make([]float64, n)
	for i := 0; i+1 < n; i++ {
		d[i] = (ys[i+1] - ys[i]) / h
	}
	return d
}
