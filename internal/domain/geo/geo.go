// Package geo provides the geospatial primitives used by scoring and zone
// generation: haversine distance, radius counting and the deterministic
// seed-based coordinate offset.
//
// Coordinate order: raw GeoJSON data is [longitude, latitude]; every Point in
// this module is latitude first.  FromGeoJSON and Point.GeoJSON are the only
// places where the order is swapped.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// KmPerDegree approximates the length of one degree of arc.
const KmPerDegree = 111.0

// Point is a geographic position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FromGeoJSON converts a GeoJSON [lng, lat] position into a Point.
// Positions with fewer than two members yield ok == false.
func FromGeoJSON(coords []float64) (Point, bool) {
	if len(coords) < 2 {
		return Point{}, false
	}
	return Point{Lat: coords[1], Lng: coords[0]}, true
}

// GeoJSON returns the point in [lng, lat] order.
func (p Point) GeoJSON() []float64 {
	return []float64{p.Lng, p.Lat}
}

// LatLng returns the point in [lat, lng] order, the format used in API output.
func (p Point) LatLng() [2]float64 {
	return [2]float64{p.Lat, p.Lng}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Lat, p.Lng)
}

// Distance returns the great-circle distance between p1 and p2 in kilometres.
func Distance(p1, p2 Point) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	dLat := toRadians(p2.Lat - p1.Lat)
	dLng := toRadians(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// rounding can push a marginally above 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// CountWithinRadius counts candidates whose distance to p is at most radiusKm.
func CountWithinRadius(p Point, candidates []Point, radiusKm float64) int {
	count := 0
	for _, c := range candidates {
		if Distance(p, c) <= radiusKm {
			count++
		}
	}
	return count
}

// Centroid returns the arithmetic mean of the given points.  An empty slice
// yields the zero Point.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return Point{Lat: sumLat / n, Lng: sumLng / n}
}

// Bounds is an axis-aligned latitude/longitude box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// UkraineBounds is the box every ingested dataset point must fall in.
var UkraineBounds = Bounds{MinLat: 44.0, MaxLat: 52.5, MinLng: 21.5, MaxLng: 40.5}

// ZoneBounds is the tighter box generated zone coordinates are kept within.
var ZoneBounds = Bounds{MinLat: 44.0, MaxLat: 52.0, MinLng: 21.5, MaxLng: 40.5}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

//Personal.AI order the ending
