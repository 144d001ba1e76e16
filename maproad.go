package roadmaker

import (
	"fmt"

	"github.com/alirezaEEpalm/roadMaker/geoproj"
	"github.com/alirezaEEpalm/roadMaker/interp"
)

// buildMap projects a geographic route to a local planar frame, removes
// duplicate x samples, and resamples both coordinates onto a uniform
// arc-length grid with cubic splines. Curvature comes from the parametric
// formula over finite differences of the resampled arrays.
func buildMap(spec Spec) (*Geometry, error) {
	line := spec.Route.Line
	proj, err := geoproj.NewLocal(line[0].Lat(), line[0].Lon())
	if err != nil {
		return nil, err
	}
	xs, ys, err := proj.ForwardLine(line)
	if err != nil {
		return nil, err
	}

	xs, ys, dropped := dedupX(xs, ys)
	if dropped > 0 {
		tracer().Infof("dropped %d duplicate route samples", dropped)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: %d left of %d raw points", ErrInsufficientData, len(xs), len(line))
	}

	// Chordal arc-length over the de-duplicated polyline, then smooth
	// resampling of x(s) and y(s) onto the uniform grid 0..max(s).
	s := chordLength(xs, ys)
	xofs, err := interp.NewCubic(s, xs)
	if err != nil {
		return nil, err
	}
	yofs, err := interp.NewCubic(s, ys)
	if err != nil {
		return nil, err
	}
	sFine := interp.Grid(0, s[len(s)-1], spec.DX)
	xFine := make([]float64, len(sFine))
	yFine := make([]float64, len(sFine))
	for i, si := range sFine {
		xFine[i] = xofs.At(si)
		yFine[i] = yofs.At(si)
	}

	// High-resolution geographic trace for route display, taken before
	// origin normalization so the frame still matches the projection.
	geoVec, err := proj.InverseLine(xFine, yFine)
	if err != nil {
		return nil, err
	}

	x0, y0 := xFine[0], yFine[0]
	for i := range xFine {
		xFine[i] -= x0
		yFine[i] -= y0
	}

	dx1 := interp.Diff(xFine, spec.DX)
	dy1 := interp.Diff(yFine, spec.DX)
	dx2 := interp.Diff(dx1, spec.DX)
	dy2 := interp.Diff(dy1, spec.DX)
	kappa := parametricCurvature(dx1, dy1, dx2, dy2)

	// Slope along the curve. Singular where x' passes through zero (the
	// road heading due north/south); consumers needing a defined direction
	// must use the heading interpolant instead.
	diff := make([]float64, len(dx1))
	for i := range diff {
		diff[i] = dy1[i] / dx1[i]
	}

	g := &Geometry{
		XVec:     xFine,
		YVec:     yFine,
		SVec:     sFine,
		KappaVec: kappa,
		DiffVec:  diff,
		GeoVec:   geoVec,
	}
	return g, nil
}

// dedupX removes samples whose x-coordinate already occurred, keeping the
// first occurrence and preserving order. Duplicate x values break the
// monotonic progression the resampling splines assume.
func dedupX(xs, ys []float64) (dx, dy []float64, dropped int) {
	seen := make(map[float64]struct{}, len(xs))
	dx = xs[:0]
	dy = ys[:0]
	for i := range xs {
		if _, dup := seen[xs[i]]; dup {
			dropped++
			continue
		}
		seen[xs[i]] = struct{}{}
		dx = append(dx, xs[i])
		dy = append(dy, ys[i])
	}
	return dx, dy, dropped
}
