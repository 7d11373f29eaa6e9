package vault

import (
	"regexp"
	"strconv"

	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
)

var locationLine = regexp.MustCompile(`^location:\s*\[\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\]\s*$`)

// FrontMatterLocation returns the note's front matter geolocation and the
// zero-based line it sits on, ok=false when the note has none.
func FrontMatterLocation(lines []string) (pt geo.Point, line int, ok bool) {
	if len(lines) == 0 || lines[0] != "---" {
		return geo.Point{}, 0, false
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] == "---" {
			return geo.Point{}, 0, false
		}
		m := locationLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(m[1], 64)
		lng, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || !geo.New(lat, lng).Valid() {
			return geo.Point{}, 0, false
		}
		return geo.New(lat, lng), i, true
	}
	return geo.Point{}, 0, false
}

// InsertFrontMatterLocation writes pt into the buffer's front matter. A note
// without front matter gains a full block at the top; an existing location
// line is replaced in place.
func InsertFrontMatterLocation(ed *editor.Editor, pt geo.Point) {
	lines := make([]string, ed.LineCount())
	for i := range lines {
		lines[i] = ed.Line(i)
	}
	if _, line, ok := FrontMatterLocation(lines); ok {
		ed.ReplaceRange(
			editor.Pos{Line: line},
			editor.Pos{Line: line, Ch: len(lines[line])},
			"location: ["+pt.String()+"]",
		)
		return
	}
	if len(lines) > 0 && lines[0] == "---" {
		// existing front matter without a location line
		ed.InsertLines(1, []string{"location: [" + pt.String() + "]"})
		return
	}
	ed.InsertLines(0, []string{"---", "location: [" + pt.String() + "]", "---", ""})
}
