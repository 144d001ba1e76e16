package roadmaker

import (
	"math"

	"github.com/alirezaEEpalm/roadMaker/expr"
	"github.com/alirezaEEpalm/roadMaker/interp"
)

// buildSymbolic samples a closed-form expression over a uniform x-grid and
// derives curvature two ways: from the exact symbolic derivatives and from
// forward finite differences. Both estimate pairs are retained on the
// geometry; the pair selected by spec.ExactDerivatives feeds DiffVec and
// KappaVec.
func buildSymbolic(spec Spec) (*Geometry, expr.Expr, error) {
	e, err := expr.Parse(spec.Expr, spec.Var)
	if err != nil {
		return nil, nil, err
	}
	tracer().Infof("symbolic road y = %s over [0, %g], dx = %g", e, spec.Length, spec.DX)

	xs := interp.Grid(0, spec.Length, spec.DX)
	ys, err := expr.SampleReal(e, xs)
	if err != nil {
		return nil, nil, err
	}

	// Exact derivatives. A non-real value anywhere on the grid means the
	// expression is undefined or complex-valued somewhere in [0, Length].
	d1 := e.Derive()
	d2 := d1.Derive()
	diffExact, err := expr.SampleReal(d1, xs)
	if err != nil {
		return nil, nil, err
	}
	ddExact, err := expr.SampleReal(d2, xs)
	if err != nil {
		return nil, nil, err
	}
	kappaExact := explicitCurvature(diffExact, ddExact)

	// Finite-difference pair over the same grid, trailing zero pad.
	diffNumeric := interp.Diff(ys, spec.DX)
	ddNumeric := interp.Diff(diffNumeric, spec.DX)
	kappaNumeric := explicitCurvature(diffNumeric, ddNumeric)

	diff, kappa := diffNumeric, kappaNumeric
	if spec.ExactDerivatives {
		diff, kappa = diffExact, kappaExact
	}

	// Arc-length by quadrature of sqrt(1 + y'^2) over the grid.
	s := make([]float64, len(xs))
	for i := 1; i < len(s); i++ {
		s[i] = s[i-1] + spec.DX*math.Sqrt(1+diff[i]*diff[i])
	}

	g := &Geometry{
		XVec:         xs,
		YVec:         ys,
		SVec:         s,
		KappaVec:     kappa,
		DiffVec:      diff,
		DiffExact:    diffExact,
		DiffNumeric:  diffNumeric,
		KappaExact:   kappaExact,
		KappaNumeric: kappaNumeric,
	}
	return g, e, nil
}
