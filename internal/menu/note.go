package menu

import (
	"context"
	"fmt"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/query"
	"github.com/mwren/geonotes/internal/vault"
)

// AddGeolocationToNote contributes the front matter search-dialog item. The
// dialog performs the note mutation itself once the user picks a location.
func AddGeolocationToNote(b *Builder, ed *editor.Editor, dialogs DialogOpener) {
	b.Add(Item{
		Title:   "Add geolocation (front matter)",
		Icon:    "search",
		Section: SectionNote,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return dialogs.OpenSearch(ctx, ModeAddToNote, "Add geolocation to note", ed)
		},
	})
}

// AddFocusNoteInMapView contributes an item that focuses the map on the
// note's markers. With follow-active-note on, the map already tracks the
// note, so the query is left empty and the map just comes to front.
func AddFocusNoteInMapView(b *Builder, file *vault.File, mapCfg config.MapConfig, nav MapNavigator) {
	q := query.ForFile(file.Path)
	if mapCfg.FollowActiveNote {
		q = ""
	}
	b.Add(Item{
		Title:   fmt.Sprintf("Focus %s in map view", file.DisplayName()),
		Icon:    "map",
		Section: SectionNavigate,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return nav.OpenQuery(ctx, q, ev.NewPane)
		},
	})
}

// AddFocusLinesInMapView contributes an item that focuses the map on the
// markers found in the note's fromLine..toLine range. numLocations below one
// contributes nothing.
func AddFocusLinesInMapView(b *Builder, file *vault.File, fromLine, toLine, numLocations int, nav MapNavigator) {
	if numLocations < 1 {
		return
	}
	noun := "geolocations"
	if numLocations == 1 {
		noun = "geolocation"
	}
	q := query.ForLines(file.Path, fromLine, toLine)
	b.Add(Item{
		Title:   fmt.Sprintf("Focus %d %s in map view", numLocations, noun),
		Icon:    "map",
		Section: SectionNavigate,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return nav.OpenQuery(ctx, q, ev.NewPane)
		},
	})
}
