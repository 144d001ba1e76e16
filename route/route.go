/*
Package route holds the geographic route structure consumed by map roads.

A route is an ordered sequence of (longitude, latitude) pairs, typically
extracted from a GeoJSON document exposing a geometry.coordinates field.
*/
package route

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// tracer writes to trace with key 'route'
func tracer() tracing.Trace {
	return tracing.Select("route")
}

// Mean Earth radius in meters, for great-circle figures.
const earthRadius = 6371008.8

var (
	// ErrMissingGeometry indicates input without a geometry.coordinates field.
	ErrMissingGeometry = errors.New("route lacks a geometry.coordinates field")
	// ErrNotLineString indicates route geometry of a kind other than a line string.
	ErrNotLineString = errors.New("route geometry is not a line string")
)

// Route is the raw ordered coordinate sequence of a geographic route.
// Points are (longitude, latitude), in that order, following GeoJSON.
type Route struct {
	Line orb.LineString
}

// New wraps an ordered (lon, lat) coordinate sequence as a Route.
func New(coords orb.LineString) (*Route, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: empty coordinate sequence", ErrMissingGeometry)
	}
	return &Route{Line: coords}, nil
}

// ParseGeoJSON extracts the route coordinates from a GeoJSON document.
// Accepted forms are a FeatureCollection (first line-string feature wins),
// a single Feature, or any JSON object exposing geometry.coordinates.
func ParseGeoJSON(data []byte) (*Route, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingGeometry, err)
	}
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingGeometry, err)
		}
		for _, f := range fc.Features {
			if ls, ok := f.Geometry.(orb.LineString); ok {
				tracer().Debugf("route from feature collection, %d points", len(ls))
				return New(ls)
			}
		}
		return nil, fmt.Errorf("%w: no line-string feature in collection", ErrNotLineString)
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingGeometry, err)
		}
		if f.Geometry == nil {
			return nil, fmt.Errorf("%w", ErrMissingGeometry)
		}
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", ErrNotLineString, f.Geometry.GeoJSONType())
		}
		return New(ls)
	}
	// Plain route object: { "geometry": { "type": ..., "coordinates": ... } }
	var wrapper struct {
		Geometry *geojson.Geometry `json:"geometry"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingGeometry, err)
	}
	if wrapper.Geometry == nil {
		return nil, fmt.Errorf("%w", ErrMissingGeometry)
	}
	ls, ok := wrapper.Geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotLineString, wrapper.Geometry.Type)
	}
	return New(ls)
}

// N returns the raw point count.
func (r *Route) N() int {
	return len(r.Line)
}

// LatLngs converts the route to spherical coordinates.
func (r *Route) LatLngs() []s2.LatLng {
	lls := make([]s2.LatLng, len(r.Line))
	for i, pt := range r.Line {
		lls[i] = s2.LatLngFromDegrees(pt.Lat(), pt.Lon())
	}
	return lls
}

// GreatCircleLength returns the spherical length of the raw polyline in
// meters. This is a sanity figure: the planar chordal arc-length computed
// by the map road builder should land close to it for regional routes.
func (r *Route) GreatCircleLength() float64 {
	lls := r.LatLngs()
	total := 0.0
	for i := 1; i < len(lls); i++ {
		total += lls[i-1].Distance(lls[i]).Radians() * earthRadius
	}
	return total
}
