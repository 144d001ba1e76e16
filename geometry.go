package roadmaker

import (
	"math"

	"github.com/paulmach/orb"
)

// Geometry is the computed array set shared by both road kinds: parallel
// sequences indexed 0..N-1 over arc-length. It is write-once: built during
// construction and treated as an immutable snapshot by every consumer.
type Geometry struct {
	XVec     []float64 // planar x, meters
	YVec     []float64 // planar y, meters
	SVec     []float64 // cumulative arc-length, strictly increasing, SVec[0]=0
	KappaVec []float64 // signed curvature, 1/meters
	DiffVec  []float64 // dy/dx (symbolic) or y'/x' along the curve (map)

	// Symbolic roads retain both derivative estimates so the exact and
	// finite-difference computations stay available for consistency checks,
	// whichever pair was selected.
	DiffExact    []float64
	DiffNumeric  []float64
	KappaExact   []float64
	KappaNumeric []float64

	// GeoVec is the inverse-projected high-resolution (lon, lat) sequence.
	// Map roads only.
	GeoVec orb.LineString
}

// N returns the sample count.
func (g *Geometry) N() int {
	return len(g.SVec)
}

// explicitCurvature combines first and second derivatives of y(x) via
//
//	kappa = y'' / (1 + y'^2)^1.5 .
func explicitCurvature(d1, d2 []float64) []float64 {
	kappa := make([]float64, len(d1))
	for i := range d1 {
		kappa[i] = d2[i] / math.Pow(1+d1[i]*d1[i], 1.5)
	}
	return kappa
}

// parametricCurvature computes signed curvature of a curve (x(s), y(s)) via
//
//	kappa = (x'y'' - y'x'') / (x'^2 + y'^2)^1.5 .
func parametricCurvature(dx1, dy1, dx2, dy2 []float64) []float64 {
	kappa := make([]float64, len(dx1))
	for i := range dx1 {
		kappa[i] = (dx1[i]*dy2[i] - dy1[i]*dx2[i]) / math.Pow(dx1[i]*dx1[i]+dy1[i]*dy1[i], 1.5)
	}
	return kappa
}

// chordLength computes cumulative chordal arc-length over a polyline.
func chordLength(xs, ys []float64) []float64 {
	s := make([]float64, len(xs))
	for i := 1; i < len(xs); i++ {
		s[i] = s[i-1] + math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
	}
	return s
}
