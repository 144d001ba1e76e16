package roadmaker

import (
	"fmt"

	"github.com/alirezaEEpalm/roadMaker/expr"
)

// Road is a constructed road: the immutable spec, the write-once geometry,
// and the interpolant set built over it. A road instance is single-threaded
// and exclusively owned by its constructing call.
type Road struct {
	spec    Spec
	geom    *Geometry
	interps *InterpolantSet
	fn      expr.Expr // parsed expression, symbolic roads only
}

// New validates the spec and builds the road geometry and interpolants.
// Construction runs to completion before any query method may be used.
func New(spec Spec) (*Road, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if spec.Kind == Map && spec.ExactDerivatives {
		tracer().Errorf("map roads have no exact derivatives, forcing finite differences")
		spec.ExactDerivatives = false
	}

	var (
		g   *Geometry
		fn  expr.Expr
		err error
	)
	switch spec.Kind {
	case Symbolic:
		g, fn, err = buildSymbolic(spec)
	case Map:
		g, err = buildMap(spec)
	default:
		err = fmt.Errorf("%w: %s", ErrInvalidRoadKind, spec.Kind)
	}
	if err != nil {
		return nil, err
	}

	interps, err := buildInterpolants(spec.Kind, g, spec.DX)
	if err != nil {
		return nil, err
	}
	tracer().Infof("built %s road: %d samples, %.1f m", spec.Kind, g.N(), g.SVec[g.N()-1])
	return &Road{spec: spec, geom: g, interps: interps, fn: fn}, nil
}

// Spec returns the construction parameters.
func (r *Road) Spec() Spec {
	return r.spec
}

// Geometry returns the computed array set. Consumers must treat it as an
// immutable snapshot.
func (r *Road) Geometry() *Geometry {
	return r.geom
}

// Interpolants returns the continuous lookup functions over the geometry.
func (r *Road) Interpolants() *InterpolantSet {
	return r.interps
}

// Expr returns the parsed expression of a symbolic road, nil for map roads.
func (r *Road) Expr() expr.Expr {
	return r.fn
}

// Length returns the total arc-length of the road in meters.
func (r *Road) Length() float64 {
	return r.geom.SVec[r.geom.N()-1]
}
