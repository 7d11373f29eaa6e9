package menu

import (
	"context"

	"github.com/mwren/geonotes/internal/editor"
)

// AddImport contributes the bulk-import item. The dialog owns the whole
// import flow; this layer only opens it.
func AddImport(b *Builder, ed *editor.Editor, dialogs DialogOpener) {
	b.Add(Item{
		Title:   "Import geolocations from file",
		Icon:    "upload",
		Section: SectionImport,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return dialogs.OpenImport(ctx, ed)
		},
	})
}
