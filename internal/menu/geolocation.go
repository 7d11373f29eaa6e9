package menu

import (
	"context"
	"strings"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/vault"
)

// AddShowOnMap contributes "Show on map" for the given point. A nil point
// contributes nothing.
func AddShowOnMap(b *Builder, pt *geo.Point, file *vault.File, line int, nav MapNavigator) {
	if pt == nil {
		return
	}
	p := *pt
	b.Add(Item{
		Title:   "Show on map",
		Icon:    "map-pin",
		Section: SectionNavigate,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return nav.OpenLocation(ctx, p, file, line, ev)
		},
	})
}

// AddOpenWith contributes "Open with default app" plus one "Open in X" item
// per valid configured rule, in configuration order. A nil point contributes
// nothing; a rule missing its name or pattern is skipped without aborting
// the rest.
func AddOpenWith(b *Builder, pt *geo.Point, rules []config.OpenInRule, opener URLOpener) {
	if pt == nil {
		return
	}
	p := *pt
	b.Add(Item{
		Title:   "Open with default app",
		Icon:    "globe",
		Section: SectionOpenWith,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return opener.OpenURL(ctx, p.GeoURI())
		},
	})
	for _, r := range rules {
		if !r.Valid() {
			continue
		}
		url := InterpolateURL(r.URLPattern, p)
		b.Add(Item{
			Title:   "Open in " + r.Name,
			Icon:    "external-link",
			Section: SectionOpenWith,
			Run: func(ctx context.Context, ev ClickEvent) error {
				return opener.OpenURL(ctx, url)
			},
		})
	}
}

// InterpolateURL substitutes the first {x} with the latitude and the first
// {y} with the longitude. Additional occurrences are left as-is.
func InterpolateURL(pattern string, pt geo.Point) string {
	s := strings.Replace(pattern, "{x}", geo.FormatCoord(pt.Lat), 1)
	return strings.Replace(s, "{y}", geo.FormatCoord(pt.Lng), 1)
}
