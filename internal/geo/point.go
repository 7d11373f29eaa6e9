// Package geo holds the geolocation value type and its wire string forms.
package geo

import "strconv"

// Point is an immutable latitude/longitude pair (WGS 84).
type Point struct {
	Lat float64
	Lng float64
}

// New returns a point for the given coordinates.
func New(lat, lng float64) Point {
	return Point{Lat: lat, Lng: lng}
}

// Valid reports whether the point lies within WGS 84 bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// String returns the plain "lat,lng" form. Formatting is locale-independent:
// '.' decimal point, no thousands separators, shortest round-trip digits.
func (p Point) String() string {
	return FormatCoord(p.Lat) + "," + FormatCoord(p.Lng)
}

// GeoURI returns the "geo:lat,lng" URI form.
func (p Point) GeoURI() string {
	return "geo:" + p.String()
}

// InlineLink returns the markdown inline link form "[](geo:lat,lng)".
func (p Point) InlineLink() string {
	return "[](" + p.GeoURI() + ")"
}

// FrontMatterBlock returns the front matter block other tooling parses.
// The exact byte layout, including the trailing blank line, is a
// compatibility contract.
func (p Point) FrontMatterBlock() string {
	return "---\nlocation: [" + p.String() + "]\n---\n\n"
}

// FormatCoord renders one coordinate with the same locale-independent rules
// as String.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
