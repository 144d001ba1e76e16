package roadmaker

import (
	"fmt"
	"math"
)

// Criticality compares peak curvature against the geometric limit implied by
// the lane band:
//
//	criticality = max|kappa| * laneWidth * ceil(lanes/2)
//
// The first and last two samples are excluded, since edge finite differences
// are unreliable there. A value >= 1 signals a turn radius smaller than roughly
// half the road half-width. Pure; never alters geometry.
func Criticality(kappa []float64, laneWidth float64, lanes int) float64 {
	peak := 0.0
	for i := 2; i < len(kappa)-2; i++ {
		if k := math.Abs(kappa[i]); k > peak {
			peak = k
		}
	}
	return peak * laneWidth * math.Ceil(float64(lanes)/2)
}

// Criticality over this road's curvature and lane geometry.
func (r *Road) Criticality() float64 {
	return Criticality(r.geom.KappaVec, r.spec.LaneWidth, r.spec.Lanes)
}

// ValidateCurvature is advisory validation: it fails with
// ErrCurvatureExceeded when the criticality ratio reaches 1.
func (r *Road) ValidateCurvature() error {
	if crit := r.Criticality(); crit >= 1 {
		return fmt.Errorf("%w: criticality %.3f", ErrCurvatureExceeded, crit)
	}
	return nil
}
