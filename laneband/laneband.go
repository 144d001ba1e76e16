/*
Package laneband derives lane-boundary geometry from a road centerline: the
per-lane boundary polylines a renderer draws, and the drivable-band polygon
covering the full lateral extent of all lanes.
*/
package laneband

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'laneband'
func tracer() tracing.Trace {
	return tracing.Select("laneband")
}

// ErrBadCenterline indicates mismatched or too-short centerline arrays.
var ErrBadCenterline = errors.New("centerline arrays unusable")

// Polyline is one lane boundary as parallel coordinate slices.
type Polyline struct {
	X, Y []float64
}

func checkCenterline(xs, ys, psi []float64) error {
	if len(xs) != len(ys) || len(xs) != len(psi) {
		return fmt.Errorf("%w: lengths %d/%d/%d", ErrBadCenterline, len(xs), len(ys), len(psi))
	}
	if len(xs) < 2 {
		return fmt.Errorf("%w: %d samples", ErrBadCenterline, len(xs))
	}
	return nil
}

// offset displaces a centerline point laterally by d, perpendicular to the
// local heading. Positive d is to the right of travel, matching the waypoint
// generator's convention.
func offset(x, y, psi, d float64) (float64, float64) {
	return x + d*math.Sin(psi), y - d*math.Cos(psi)
}

// Boundaries computes the lanes+1 boundary polylines of a road with the
// given lane count and width, centered on the centerline (xs, ys) with
// per-sample heading psi.
func Boundaries(xs, ys, psi []float64, lanes int, width float64) ([]Polyline, error) {
	if err := checkCenterline(xs, ys, psi); err != nil {
		return nil, err
	}
	if lanes <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %d lanes of width %g", ErrBadCenterline, lanes, width)
	}
	half := float64(lanes) * width / 2
	bounds := make([]Polyline, lanes+1)
	for b := range bounds {
		d := -half + float64(b)*width
		pl := Polyline{X: make([]float64, len(xs)), Y: make([]float64, len(xs))}
		for i := range xs {
			pl.X[i], pl.Y[i] = offset(xs[i], ys[i], psi[i], d)
		}
		bounds[b] = pl
	}
	tracer().Debugf("%d boundaries over %d samples", len(bounds), len(xs))
	return bounds, nil
}

// Band assembles the drivable-band polygon of half-width halfWidth as the
// union of per-segment quads between the left and right outer boundaries.
// Quads overlap slightly in curves; the boolean union resolves that into a
// single consistent region.
func Band(xs, ys, psi []float64, halfWidth float64) (polyclip.Polygon, error) {
	if err := checkCenterline(xs, ys, psi); err != nil {
		return nil, err
	}
	if halfWidth <= 0 {
		return nil, fmt.Errorf("%w: half-width %g", ErrBadCenterline, halfWidth)
	}
	var band polyclip.Polygon
	for i := 1; i < len(xs); i++ {
		lx0, ly0 := offset(xs[i-1], ys[i-1], psi[i-1], -halfWidth)
		rx0, ry0 := offset(xs[i-1], ys[i-1], psi[i-1], halfWidth)
		lx1, ly1 := offset(xs[i], ys[i], psi[i], -halfWidth)
		rx1, ry1 := offset(xs[i], ys[i], psi[i], halfWidth)
		quad := polyclip.Polygon{{
			{X: lx0, Y: ly0},
			{X: rx0, Y: ry0},
			{X: rx1, Y: ry1},
			{X: lx1, Y: ly1},
		}}
		if band == nil {
			band = quad
			continue
		}
		band = band.Construct(polyclip.UNION, quad)
	}
	return band, nil
}

// Area returns the total area covered by a polygon's contours (shoelace,
// orientation-insensitive per contour).
func Area(p polyclip.Polygon) float64 {
	total := 0.0
	for _, c := range p {
		a := 0.0
		n := len(c)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a += c[i].X*c[j].Y - c[j].X*c[i].Y
		}
		total += math.Abs(a) / 2
	}
	return total
}
