package roadmaker

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestWaypointsBounded(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	lim := r.Spec().OffsetLimit()
	wp, err := r.Waypoints(6, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	for i, d := range wp.D {
		if math.Abs(d) > lim+1e-12 {
			t.Fatalf("offset %d = %g exceeds limit %g", i, d, lim)
		}
	}
	// After rescaling, the peak offset touches the limit exactly.
	peak := 0.0
	for _, d := range wp.D {
		if a := math.Abs(d); a > peak {
			peak = a
		}
	}
	assert.InDelta(t, lim, peak, 1e-9, "peak offset should hit the lane-band limit")
}

func TestWaypointsShape(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	g := r.Geometry()
	wp, err := r.Waypoints(8, 50, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	if wp.StartIndex <= 0 {
		t.Errorf("start index %d, want the sample nearest arc-length 50", wp.StartIndex)
	}
	want := g.N() - wp.StartIndex
	if len(wp.D) != want || len(wp.X) != want || len(wp.Y) != want {
		t.Errorf("got %d/%d/%d samples, want %d", len(wp.D), len(wp.X), len(wp.Y), want)
	}
	if len(wp.XY[0]) != want || len(wp.XY[1]) != want {
		t.Error("XY matrix rows must mirror X and Y")
	}
	// Each waypoint stays within the limit of its centerline sample.
	lim := r.Spec().OffsetLimit()
	for i := range wp.X {
		dx := wp.X[i] - g.XVec[wp.StartIndex+i]
		dy := wp.Y[i] - g.YVec[wp.StartIndex+i]
		if dist := math.Hypot(dx, dy); dist > lim+1e-9 {
			t.Fatalf("waypoint %d is %g from the centerline, limit %g", i, dist, lim)
		}
	}
}

func TestWaypointsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	a, err := r.Waypoints(5, 10, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	b, err := r.Waypoints(5, 10, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	if !float64sEqual(a.D, b.D) || !float64sEqual(a.X, b.X) || !float64sEqual(a.Y, b.Y) {
		t.Error("equal seeds must reproduce the trajectory")
	}
	c, err := r.Waypoints(5, 10, rand.New(rand.NewSource(43)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	if float64sEqual(a.D, c.D) {
		t.Error("different seeds should wander differently")
	}
}

func TestWaypointsParameterErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	if _, err := r.Waypoints(1, 0, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("np=1: got %v, want ErrInvalidParameter", err)
	}
	if _, err := r.Waypoints(5, -1, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative start: got %v, want ErrInvalidParameter", err)
	}
	if _, err := r.Waypoints(5, r.Length()*2, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("start beyond the road: got %v, want ErrInvalidParameter", err)
	}
}

func TestWaypointsSingleLane(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := sineSpec(0.5, true)
	spec.Lanes = 1
	r := mustBuild(t, spec)
	if lim := r.Spec().OffsetLimit(); lim != 0 {
		t.Fatalf("one lane should leave no wander room, limit = %g", lim)
	}
	wp, err := r.Waypoints(5, 0, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Waypoints failed: %v", err)
	}
	for i, d := range wp.D {
		if d != 0 {
			t.Fatalf("offset %d = %g, want 0 on a single lane", i, d)
		}
	}
}
