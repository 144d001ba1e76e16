package roadmaker

import (
	"math"

	"github.com/alirezaEEpalm/roadMaker/interp"
)

// InterpolantSet bundles the continuous lookup functions built over a
// geometry. It is rebuilt only when the geometry is (which is once, at
// construction) and read-only afterward.
type InterpolantSet struct {
	XofS    *interp.Table // position from arc-length
	YofS    *interp.Table
	Heading *interp.Table // heading psi from arc-length, radians

	// Symbolic roads index by x as well; map roads index natively by
	// arc-length and leave these nil.
	SofX *interp.Cubic // inverse arc-length map
	YofX *interp.Cubic
}

// buildInterpolants constructs the interpolant set for a geometry. The
// table constructors reject a non-monotonic SVec before anything is built.
//
// Heading is asymmetric by kind: symbolic roads take atan of the stored
// slope, while map roads recompute direction from gradients of the resampled
// arrays, since the map slope y'/x' can be singular.
func buildInterpolants(kind Kind, g *Geometry, dx float64) (*InterpolantSet, error) {
	xofs, err := interp.NewTable(g.SVec, g.XVec)
	if err != nil {
		return nil, err
	}
	yofs, err := interp.NewTable(g.SVec, g.YVec)
	if err != nil {
		return nil, err
	}

	psi := make([]float64, g.N())
	switch kind {
	case Symbolic:
		for i, d := range g.DiffVec {
			psi[i] = math.Atan(d)
		}
	case Map:
		hx := interp.Gradient(g.XVec, dx)
		hy := interp.Gradient(g.YVec, dx)
		for i := range psi {
			psi[i] = math.Atan2(hy[i], hx[i])
		}
	}
	heading, err := interp.NewTable(g.SVec, psi)
	if err != nil {
		return nil, err
	}

	set := &InterpolantSet{XofS: xofs, YofS: yofs, Heading: heading}
	if kind == Symbolic {
		if set.SofX, err = interp.NewCubic(g.XVec, g.SVec); err != nil {
			return nil, err
		}
		if set.YofX, err = interp.NewCubic(g.XVec, g.YVec); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// PositionAt returns the centerline position at arc-length s.
func (set *InterpolantSet) PositionAt(s float64) (x, y float64) {
	return set.XofS.At(s), set.YofS.At(s)
}

// HeadingAt returns the heading angle at arc-length s, in radians.
func (set *InterpolantSet) HeadingAt(s float64) float64 {
	return set.Heading.At(s)
}
