// Package types defines the shared value types and wire DTOs for Weather
// Vibes: map geometry, vibe selection, and the request/response schemas of
// the three analysis endpoints. The package holds plain data only — no I/O
// and no business logic beyond small accessors.
package types

import "fmt"

// LatLon is a WGS84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.4f,%.4f", p.Lat, p.Lon)
}

// Bounds is a geographic bounding rectangle.
type Bounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Contains reports whether p lies within the rectangle (inclusive edges).
// Bounds crossing the antimeridian are not handled; the client never
// produces them.
func (b Bounds) Contains(p LatLon) bool {
	return p.Lon >= b.West && p.Lon <= b.East && p.Lat >= b.South && p.Lat <= b.North
}

// Viewport is the map's visible state: center, zoom, and the bounding
// rectangle last reported by the map widget. Bounds is nil until the widget
// has reported at least once; it is never set independently of center/zoom
// (the map adapter keeps the three consistent).
type Viewport struct {
	Center LatLon  `json:"center"`
	Zoom   float64 `json:"zoom"`
	Bounds *Bounds `json:"bounds,omitempty"`
}
