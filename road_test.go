package roadmaker

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/alirezaEEpalm/roadMaker/expr"
)

func sineSpec(dx float64, exact bool) Spec {
	return Spec{
		Kind:             Symbolic,
		Lanes:            2,
		LaneWidth:        4,
		DX:               dx,
		ExactDerivatives: exact,
		Var:              "x",
		Expr:             "15*sin(0.05*x)",
		Length:           200,
	}
}

func mustBuild(t *testing.T, spec Spec) *Road {
	t.Helper()
	r, err := New(spec)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func TestSymbolicArcLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	g := r.Geometry()
	if g.SVec[0] != 0 {
		t.Errorf("sVec[0] = %g, want 0", g.SVec[0])
	}
	for i := 1; i < g.N(); i++ {
		if g.SVec[i] < g.SVec[i-1] {
			t.Fatalf("sVec decreases at %d: %g -> %g", i, g.SVec[i-1], g.SVec[i])
		}
	}
	// Arc-length is at least the x-extent; the sine adds some.
	if r.Length() < 200 {
		t.Errorf("arc-length %g shorter than x-extent", r.Length())
	}
}

func TestSymbolicParallelArrays(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := mustBuild(t, sineSpec(0.5, false)).Geometry()
	n := g.N()
	for name, v := range map[string][]float64{
		"xVec": g.XVec, "yVec": g.YVec, "kappaVec": g.KappaVec, "diffVec": g.DiffVec,
		"diffExact": g.DiffExact, "diffNumeric": g.DiffNumeric,
		"kappaExact": g.KappaExact, "kappaNumeric": g.KappaNumeric,
	} {
		if len(v) != n {
			t.Errorf("%s has length %d, want %d", name, len(v), n)
		}
	}
	// Selection flag picks the numeric pair here; the exact pair stays
	// available for consistency checks.
	if !reflect.DeepEqual(g.DiffVec, g.DiffNumeric) {
		t.Error("diffVec should be the numeric estimate")
	}
	if reflect.DeepEqual(g.KappaExact, g.KappaNumeric) {
		t.Error("exact and numeric curvature should differ slightly")
	}
}

func maxInteriorKappaError(g *Geometry) float64 {
	worst := 0.0
	for i := 2; i < g.N()-2; i++ {
		if e := math.Abs(g.KappaExact[i] - g.KappaNumeric[i]); e > worst {
			worst = e
		}
	}
	return worst
}

func TestCurvatureConsistencyShrinksWithStep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	coarse := mustBuild(t, sineSpec(0.5, true)).Geometry()
	fine := mustBuild(t, sineSpec(0.1, true)).Geometry()
	errCoarse := maxInteriorKappaError(coarse)
	errFine := maxInteriorKappaError(fine)
	if errFine >= errCoarse/2 {
		t.Errorf("finite-difference curvature error did not shrink: %g -> %g", errCoarse, errFine)
	}
	if errFine > 1e-3 {
		t.Errorf("fine-step curvature disagreement too large: %g", errFine)
	}
}

func TestSymbolicDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := mustBuild(t, sineSpec(0.5, true)).Geometry()
	b := mustBuild(t, sineSpec(0.5, true)).Geometry()
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs must rebuild bit-identical geometry")
	}
}

func TestSymbolicDomainFailure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := sineSpec(0.5, true)
	spec.Expr = "sqrt(x - 10)"
	if _, err := New(spec); !errors.Is(err, expr.ErrDomain) {
		t.Errorf("expected domain error, got %v", err)
	}
	spec.Expr = "log(x - 100)"
	if _, err := New(spec); !errors.Is(err, expr.ErrDomain) {
		t.Errorf("expected domain error, got %v", err)
	}
}

func TestInvalidParameters(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := sineSpec(0.5, true)
	spec.Lanes = 0
	if _, err := New(spec); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected invalid-parameter for lanes, got %v", err)
	}
	spec = sineSpec(0.5, true)
	spec.DX = -1
	if _, err := New(spec); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected invalid-parameter for dx, got %v", err)
	}
	spec = sineSpec(0.5, true)
	spec.Kind = Kind(42)
	if _, err := New(spec); !errors.Is(err, ErrInvalidRoadKind) {
		t.Errorf("expected invalid-road-kind, got %v", err)
	}
}

func TestCurvatureValidator(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tight := Spec{
		Kind: Symbolic, Lanes: 4, LaneWidth: 4, DX: 0.01,
		ExactDerivatives: true, Var: "x", Expr: "1000*sin(x)", Length: 10,
	}
	r := mustBuild(t, tight)
	if err := r.ValidateCurvature(); !errors.Is(err, ErrCurvatureExceeded) {
		t.Errorf("expected curvature-exceeded, got %v", err)
	}
	gentle := tight
	gentle.Expr = "0.001*sin(x)"
	r = mustBuild(t, gentle)
	if err := r.ValidateCurvature(); err != nil {
		t.Errorf("gentle road should validate, got %v", err)
	}
	assert.InDelta(t, 0.008, r.Criticality(), 1e-4)
}

func TestSymbolicInterpolants(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := mustBuild(t, sineSpec(0.5, true))
	g := r.Geometry()
	set := r.Interpolants()
	if set.SofX == nil || set.YofX == nil {
		t.Fatal("symbolic roads carry the x-indexed interpolants")
	}
	// Interpolants reproduce the samples they were built over.
	for _, k := range []int{0, 10, 100, g.N() - 1} {
		assert.InDelta(t, g.SVec[k], set.SofX.At(g.XVec[k]), 1e-6)
		assert.InDelta(t, g.YVec[k], set.YofX.At(g.XVec[k]), 1e-6)
		x, y := set.PositionAt(g.SVec[k])
		assert.InDelta(t, g.XVec[k], x, 1e-9)
		assert.InDelta(t, g.YVec[k], y, 1e-9)
	}
	// Heading at the origin: y'(0) = 0.75.
	assert.InDelta(t, math.Atan(0.75), set.HeadingAt(0), 1e-9)
}
