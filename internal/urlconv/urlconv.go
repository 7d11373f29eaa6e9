// Package urlconv recognizes geolocations inside free text (geo URIs, map
// service URLs, bare coordinate pairs) and converts them into the vault's
// inline link form. Recognition is rule-table driven; user rules from the
// configuration extend the built-in table.
package urlconv

import (
	"context"
	"regexp"
	"strconv"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
)

type rule struct {
	name     string
	re       *regexp.Regexp
	lngFirst bool
}

// Convertor matches text against an ordered rule table. Earlier rules win.
type Convertor struct {
	rules []rule
}

const coord = `(-?\d{1,3}(?:\.\d+)?)`

// New returns a convertor with the built-in rules followed by the valid
// user rules. Rules that fail to compile or lack two capture groups are
// skipped; a bad rule never blocks the rest of the table.
func New(userRules []config.URLRule) *Convertor {
	c := &Convertor{rules: []rule{
		{name: "geo-uri", re: regexp.MustCompile(`geo:` + coord + `,` + coord)},
		{name: "openstreetmap", re: regexp.MustCompile(`https?://(?:www\.)?openstreetmap\.org/\S*?mlat=` + coord + `&mlon=` + coord)},
		{name: "google-maps", re: regexp.MustCompile(`https?://(?:maps\.google\.com|www\.google\.com/maps)\S*?[?&]q=` + coord + `,` + coord)},
		{name: "bare-pair", re: regexp.MustCompile(coord + `\s*,\s*` + coord)},
	}}
	for _, ur := range userRules {
		re, err := regexp.Compile(ur.Pattern)
		if err != nil || re.NumSubexp() < 2 {
			continue
		}
		c.rules = append(c.rules, rule{name: ur.Name, re: re, lngFirst: ur.Order == "lnglat"})
	}
	return c
}

// Match scans text with every rule in order and returns the first match
// that yields an in-bounds point, together with the matched span.
func (c *Convertor) Match(text string) (pt geo.Point, start, end int, ok bool) {
	for _, r := range c.rules {
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			a, err1 := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
			b, err2 := strconv.ParseFloat(text[loc[4]:loc[5]], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			p := geo.New(a, b)
			if r.lngFirst {
				p = geo.New(b, a)
			}
			if !p.Valid() {
				continue
			}
			return p, loc[0], loc[1], true
		}
	}
	return geo.Point{}, 0, 0, false
}

// ParseLocationFromText recovers a geolocation from arbitrary text, such as
// clipboard contents. A text with no recognizable location returns
// (nil, nil): not finding anything is not an error.
func (c *Convertor) ParseLocationFromText(ctx context.Context, text string) (*geo.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pt, _, _, ok := c.Match(text)
	if !ok {
		return nil, nil
	}
	return &pt, nil
}

// HasMatchInLine reports whether the editor's current line contains a
// recognizable geolocation.
func (c *Convertor) HasMatchInLine(ed *editor.Editor) bool {
	_, _, _, ok := c.Match(ed.CurrentLine())
	return ok
}

// ConvertURLAtCursor replaces the first recognized span of the current line
// with the inline geo link form. A line without a match is left untouched.
// Pure buffer mutation; callers run it on the UI loop.
func (c *Convertor) ConvertURLAtCursor(ed *editor.Editor) {
	line := ed.Cursor().Line
	pt, start, end, ok := c.Match(ed.Line(line))
	if !ok {
		return
	}
	ed.ReplaceRange(editor.Pos{Line: line, Ch: start}, editor.Pos{Line: line, Ch: end}, pt.InlineLink())
}

// InsertLocation inserts the point's inline link at the editor cursor.
func (c *Convertor) InsertLocation(pt geo.Point, ed *editor.Editor) {
	ed.InsertAtCursor(pt.InlineLink())
}
