package vault

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mwren/geonotes/internal/geo"
)

var inlineLink = regexp.MustCompile(`\[([^\]]*)\]\(geo:(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)\)`)

// Located is one geolocation found in a note, with the zero-based line it
// appears on and the inline link label when present.
type Located struct {
	Pt   geo.Point
	Line int
	Name string
}

// ExtractLocations finds every geolocation a note carries: the front matter
// location (if any) followed by inline links in line order.
func ExtractLocations(text string) []Located {
	lines := strings.Split(text, "\n")
	var out []Located
	if pt, line, ok := FrontMatterLocation(lines); ok {
		out = append(out, Located{Pt: pt, Line: line})
	}
	for i, line := range lines {
		for _, m := range inlineLink.FindAllStringSubmatch(line, -1) {
			lat, err1 := strconv.ParseFloat(m[2], 64)
			lng, err2 := strconv.ParseFloat(m[3], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			pt := geo.New(lat, lng)
			if !pt.Valid() {
				continue
			}
			out = append(out, Located{Pt: pt, Line: i, Name: m[1]})
		}
	}
	return out
}

// CountLocationsInRange returns how many of the note's geolocations sit on
// lines from..to inclusive.
func CountLocationsInRange(text string, from, to int) int {
	n := 0
	for _, loc := range ExtractLocations(text) {
		if loc.Line >= from && loc.Line <= to {
			n++
		}
	}
	return n
}
