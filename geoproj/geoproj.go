/*
Package geoproj projects geographic coordinates onto a local planar frame.

The projection is conformal cylindrical (Mercator), referenced to an origin
meridian/parallel and rescaled so planar units approximate meters near the
reference parallel. Forward followed by Inverse reproduces the input within
projection-model tolerance; out-of-domain coordinates fail loudly instead of
being wrapped or clipped.
*/
package geoproj

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// tracer writes to trace with key 'geoproj'
func tracer() tracing.Trace {
	return tracing.Select("geoproj")
}

// MaxLatitude is the northern/southern limit of the Mercator domain.
const MaxLatitude = 85.05112878

// Extent of the Mercator plane along either axis, in meters.
const mercatorPole = 20037508.342789244

// ErrOutOfDomain indicates a coordinate the projection cannot represent.
var ErrOutOfDomain = errors.New("coordinate outside projection domain")

// Local is a Mercator projection anchored at a reference point. The
// reference projects to planar (0, 0), and the Mercator stretch factor at
// the reference parallel is divided out, so planar distances approximate
// meters for regional extents.
type Local struct {
	ref    orb.Point // reference as (lon, lat)
	anchor orb.Point // reference in Mercator plane coordinates
	scale  float64   // 1 / MercatorScaleFactor(lat0)
}

// NewLocal creates a local projection referenced to (lat0, lon0).
func NewLocal(lat0, lon0 float64) (*Local, error) {
	if err := checkLatLng(lat0, lon0); err != nil {
		return nil, err
	}
	ref := orb.Point{lon0, lat0}
	lp := &Local{
		ref:    ref,
		anchor: project.WGS84.ToMercator(ref),
		scale:  1.0 / project.MercatorScaleFactor(ref),
	}
	tracer().Debugf("local projection anchored at (%g, %g), scale %g", lat0, lon0, lp.scale)
	return lp, nil
}

// Forward projects (lat, lon) to planar (x, y) in meters relative to the
// reference point.
func (lp *Local) Forward(lat, lon float64) (x, y float64, err error) {
	if err := checkLatLng(lat, lon); err != nil {
		return 0, 0, err
	}
	m := project.WGS84.ToMercator(orb.Point{lon, lat})
	return (m[0] - lp.anchor[0]) * lp.scale, (m[1] - lp.anchor[1]) * lp.scale, nil
}

// Inverse maps planar (x, y) back to (lat, lon).
func (lp *Local) Inverse(x, y float64) (lat, lon float64, err error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, fmt.Errorf("%w: non-finite planar coordinate (%g, %g)", ErrOutOfDomain, x, y)
	}
	m := orb.Point{x/lp.scale + lp.anchor[0], y/lp.scale + lp.anchor[1]}
	if math.Abs(m[0]) > mercatorPole || math.Abs(m[1]) > mercatorPole {
		return 0, 0, fmt.Errorf("%w: planar point (%g, %g) leaves the Mercator plane", ErrOutOfDomain, x, y)
	}
	ll := project.Mercator.ToWGS84(m)
	return ll.Lat(), ll.Lon(), nil
}

// ForwardLine projects an ordered (lon, lat) line string to parallel planar
// coordinate slices.
func (lp *Local) ForwardLine(ls orb.LineString) (xs, ys []float64, err error) {
	xs = make([]float64, len(ls))
	ys = make([]float64, len(ls))
	for i, pt := range ls {
		xs[i], ys[i], err = lp.Forward(pt.Lat(), pt.Lon())
		if err != nil {
			return nil, nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return xs, ys, nil
}

// InverseLine maps parallel planar coordinate slices back to an ordered
// (lon, lat) line string. The slices must have equal length.
func (lp *Local) InverseLine(xs, ys []float64) (orb.LineString, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: coordinate slices differ in length (%d vs %d)", ErrOutOfDomain, len(xs), len(ys))
	}
	ls := make(orb.LineString, len(xs))
	for i := range xs {
		lat, lon, err := lp.Inverse(xs[i], ys[i])
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		ls[i] = orb.Point{lon, lat}
	}
	return ls, nil
}

func checkLatLng(lat, lon float64) error {
	ll := s2.LatLngFromDegrees(lat, lon)
	if !ll.IsValid() {
		return fmt.Errorf("%w: (%g, %g) is not a valid lat/long", ErrOutOfDomain, lat, lon)
	}
	if math.Abs(lat) > MaxLatitude {
		return fmt.Errorf("%w: latitude %g exceeds the Mercator limit %g", ErrOutOfDomain, lat, MaxLatitude)
	}
	return nil
}
