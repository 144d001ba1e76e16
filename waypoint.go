package roadmaker

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/alirezaEEpalm/roadMaker/interp"
)

// Waypoint is a smooth pseudo-random lateral-offset trajectory along the
// road, bounded by the lane band. Each generator call produces a fresh,
// caller-owned Waypoint.
type Waypoint struct {
	D          []float64    // lateral offsets, |d| <= OffsetLimit
	X, Y       []float64    // absolute planar coordinates
	StartIndex int          // geometry index generation began from
	XY         [2][]float64 // stacked [x; y] matrix
}

// Waypoints generates a wander trajectory from the sample nearest to the
// arc-length `starting` to the end of the road. np is the smoothing
// coarseness knob: that many uniformly spaced control offsets are drawn
// independently from [-lim, lim] with lim = lanes*laneWidth/2 - laneWidth/2,
// interpolated shape-preservingly onto every remaining sample, and rescaled
// so the peak |offset| hits lim exactly (interpolation may undershoot the
// drawn extremes; the rescale restores the bound without breaking it).
//
// rng supplies the randomness; pass a seeded source for reproducible runs.
// A nil rng falls back to the process-wide source.
func (r *Road) Waypoints(np int, starting float64, rng *rand.Rand) (*Waypoint, error) {
	if np < 2 {
		return nil, fmt.Errorf("%w: need at least 2 control points, got %d", ErrInvalidParameter, np)
	}
	s := r.geom.SVec
	if starting < 0 || starting > s[len(s)-1] {
		return nil, fmt.Errorf("%w: starting arc-length %g outside [0, %g]", ErrInvalidParameter, starting, s[len(s)-1])
	}
	start := interp.NearestIndex(s, starting)
	tail := s[start:]
	if len(tail) < 2 {
		return nil, fmt.Errorf("%w: only %d samples left after arc-length %g", ErrInvalidParameter, len(tail), starting)
	}

	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}
	lim := r.spec.OffsetLimit()

	// np control knots, uniformly spaced over [0,1] of the remaining span.
	ctrlU := make([]float64, np)
	ctrlD := make([]float64, np)
	for i := range ctrlU {
		ctrlU[i] = float64(i) / float64(np-1)
		ctrlD[i] = (uniform()*2 - 1) * lim
	}
	shape, err := interp.NewPchip(ctrlU, ctrlD)
	if err != nil {
		return nil, err
	}

	span := tail[len(tail)-1] - tail[0]
	d := make([]float64, len(tail))
	peak := 0.0
	for i, si := range tail {
		d[i] = shape.At((si - tail[0]) / span)
		if a := math.Abs(d[i]); a > peak {
			peak = a
		}
	}
	// Rescale so the peak offset equals lim exactly. Skipped when the drawn
	// trajectory is essentially flat: amplifying numeric noise up to lim
	// would be worse than leaving the wander small.
	if peak > Epsilon && lim > 0 {
		scale := lim / peak
		for i := range d {
			d[i] *= scale
		}
	}

	wp := &Waypoint{
		D:          d,
		X:          make([]float64, len(tail)),
		Y:          make([]float64, len(tail)),
		StartIndex: start,
	}
	for i, si := range tail {
		psi := r.interps.HeadingAt(si)
		wp.X[i] = r.geom.XVec[start+i] + d[i]*math.Sin(psi)
		wp.Y[i] = r.geom.YVec[start+i] - d[i]*math.Cos(psi)
	}
	wp.XY = [2][]float64{wp.X, wp.Y}
	return wp, nil
}
