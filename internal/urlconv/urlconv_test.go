package urlconv

import (
	"context"
	"testing"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
)

func TestMatch(t *testing.T) {
	c := New(nil)
	tests := []struct {
		name string
		text string
		want geo.Point
		ok   bool
	}{
		{"geo uri", "see geo:40.7,-74.0 there", geo.New(40.7, -74.0), true},
		{"osm url", "https://www.openstreetmap.org/?mlat=48.8584&mlon=2.2945", geo.New(48.8584, 2.2945), true},
		{"google url", "https://maps.google.com/?q=-37.8136,144.9631", geo.New(-37.8136, 144.9631), true},
		{"bare pair", "meet at 51.5, -0.12", geo.New(51.5, -0.12), true},
		{"out of bounds pair skipped", "version 999, 123", geo.Point{}, false},
		{"no match", "nothing here", geo.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, _, _, ok := c.Match(tt.text)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && pt != tt.want {
				t.Errorf("Match(%q) = %+v, want %+v", tt.text, pt, tt.want)
			}
		})
	}
}

func TestUserRule(t *testing.T) {
	c := New([]config.URLRule{
		{Name: "custom", Pattern: `mymaps/pin/(-?\d+\.\d+)/(-?\d+\.\d+)`, Order: "lnglat"},
		{Name: "broken", Pattern: `([`, Order: "latlng"}, // skipped, must not abort
	})
	pt, _, _, ok := c.Match("https://example.com/mymaps/pin/144.9631/-37.8136")
	if !ok {
		t.Fatal("custom rule did not match")
	}
	if pt != geo.New(-37.8136, 144.9631) {
		t.Fatalf("lnglat order not honored: %+v", pt)
	}
}

func TestParseLocationFromText(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	pt, err := c.ParseLocationFromText(ctx, "geo:10,20")
	if err != nil {
		t.Fatal(err)
	}
	if pt == nil || *pt != geo.New(10, 20) {
		t.Fatalf("got %+v", pt)
	}

	// no match is a nil result, not an error
	pt, err = c.ParseLocationFromText(ctx, "just words")
	if err != nil {
		t.Fatal(err)
	}
	if pt != nil {
		t.Fatalf("expected nil point, got %+v", pt)
	}
}

func TestHasMatchInLine(t *testing.T) {
	c := New(nil)
	ed := editor.New("n.md", "first line\nvisit geo:1.5,-2.25 today")
	if c.HasMatchInLine(ed) {
		t.Fatal("line 0 has no location")
	}
	ed.SetCursor(editor.Pos{Line: 1})
	if !c.HasMatchInLine(ed) {
		t.Fatal("line 1 should match")
	}
}

func TestConvertURLAtCursor(t *testing.T) {
	c := New(nil)
	ed := editor.New("n.md", "pin https://www.openstreetmap.org/?mlat=10&mlon=20 end")
	c.ConvertURLAtCursor(ed)
	if got, want := ed.Text(), "pin [](geo:10,20) end"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	// no match leaves the buffer untouched
	ed2 := editor.New("n.md", "plain text")
	c.ConvertURLAtCursor(ed2)
	if ed2.Text() != "plain text" {
		t.Fatalf("buffer changed: %q", ed2.Text())
	}
}

func TestInsertLocation(t *testing.T) {
	c := New(nil)
	ed := editor.New("n.md", "here: ")
	ed.SetCursor(editor.Pos{Line: 0, Ch: 6})
	c.InsertLocation(geo.New(10, 20), ed)
	if got := ed.Text(); got != "here: [](geo:10,20)" {
		t.Fatalf("Text() = %q", got)
	}
}
