package menu

import (
	"context"

	"github.com/mwren/geonotes/internal/geo"
)

// AddCopyGeolocationItems contributes the two clipboard encodings of the
// point. A nil point contributes nothing. Both encodings are byte-exact
// contracts with tooling that parses them back.
func AddCopyGeolocationItems(b *Builder, pt *geo.Point, clip Clipboard) {
	if pt == nil {
		return
	}
	p := *pt
	b.Add(Item{
		Title:   "Copy geolocation",
		Icon:    "copy",
		Section: SectionCopy,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return clip.WriteText(ctx, p.InlineLink())
		},
	})
	b.Add(Item{
		Title:   "Copy geolocation as front matter",
		Icon:    "copy",
		Section: SectionCopy,
		Run: func(ctx context.Context, ev ClickEvent) error {
			return clip.WriteText(ctx, p.FrontMatterBlock())
		},
	})
}
