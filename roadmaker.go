/*
Package roadmaker builds parametrized planar road geometry, a dense
arc-length-sampled trajectory with heading and curvature, from either a
closed-form expression ("symbolic" road) or a geographic route ("map" road).

# BSD License

# Copyright (c) Alireza Palm

All rights reserved.

Please refer to the license file for more information.
*/
package roadmaker

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/alirezaEEpalm/roadMaker/route"
)

// tracer writes to trace with key 'road'
func tracer() tracing.Trace {
	return tracing.Select("road")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// === Road Kinds ============================================================

// Kind selects the road construction source.
type Kind int

// Road kinds. Construction dispatches exhaustively on these.
const (
	Symbolic Kind = iota + 1 // closed-form expression over an x-grid
	Map                      // geographic lat/long route
)

func (k Kind) String() string {
	switch k {
	case Symbolic:
		return "symbolic"
	case Map:
		return "map"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// === Errors ================================================================

var (
	// ErrInvalidRoadKind indicates a kind that is neither Symbolic nor Map.
	ErrInvalidRoadKind = errors.New("road kind is neither symbolic nor map")
	// ErrInvalidParameter indicates an out-of-range construction or query parameter.
	ErrInvalidParameter = errors.New("parameter out of range")
	// ErrInsufficientData indicates fewer than two distinct points after de-duplication.
	ErrInsufficientData = errors.New("fewer than two distinct points after de-duplication")
	// ErrCurvatureExceeded indicates the tightest turn is implausible for the lane geometry.
	ErrCurvatureExceeded = errors.New("peak curvature exceeds lane geometry limit")
)

// === Construction Parameters ===============================================

// Spec holds the immutable construction parameters of a road. Kind-specific
// fields are meaningful only for their kind; New validates the combination.
type Spec struct {
	Kind      Kind
	Lanes     int     // lane count, > 0
	LaneWidth float64 // meters, > 0
	DX        float64 // sampling step in meters, > 0

	// ExactDerivatives selects the analytic derivative pair for diffVec and
	// kappaVec of symbolic roads. Map roads force it off (finite differences
	// are the only option there); that mismatch is surfaced as a warning,
	// not a failure.
	ExactDerivatives bool

	// Symbolic roads
	Var    string  // independent variable identifier
	Expr   string  // scalar expression in Var
	Length float64 // road length along x, meters, > 0

	// Map roads
	Route *route.Route
}

func (spec Spec) validate() error {
	if spec.Lanes <= 0 {
		return fmt.Errorf("%w: lane count %d, must be positive", ErrInvalidParameter, spec.Lanes)
	}
	if spec.LaneWidth <= 0 {
		return fmt.Errorf("%w: lane width %g, must be positive", ErrInvalidParameter, spec.LaneWidth)
	}
	if spec.DX <= 0 {
		return fmt.Errorf("%w: sampling step %g, must be positive", ErrInvalidParameter, spec.DX)
	}
	switch spec.Kind {
	case Symbolic:
		if spec.Length <= 0 {
			return fmt.Errorf("%w: road length %g, must be positive", ErrInvalidParameter, spec.Length)
		}
		if spec.Var == "" || spec.Expr == "" {
			return fmt.Errorf("%w: symbolic road needs a variable and an expression", ErrInvalidParameter)
		}
	case Map:
		if spec.Route == nil {
			return fmt.Errorf("%w: no route supplied", route.ErrMissingGeometry)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRoadKind, spec.Kind)
	}
	return nil
}

// LaneBandHalfWidth returns half the total lateral extent covered by all lanes.
func (spec Spec) LaneBandHalfWidth() float64 {
	return float64(spec.Lanes) * spec.LaneWidth / 2
}

// OffsetLimit is the lateral wander bound for waypoint generation: half the
// lane band minus half a lane.
func (spec Spec) OffsetLimit() float64 {
	return spec.LaneBandHalfWidth() - spec.LaneWidth/2
}
