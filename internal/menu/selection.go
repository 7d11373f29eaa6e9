package menu

import (
	"context"
	"strings"

	"github.com/mwren/geonotes/internal/editor"
)

// AddURLConversionItems contributes the selection, line and clipboard
// conversion items. The selection and line items gate independently; both
// can appear at once. "Paste as geolocation" is always present. Handlers do
// their lookups off-loop and route the resulting buffer edit through apply.
func AddURLConversionItems(b *Builder, ed *editor.Editor, conv URLConvertor, sugg Suggester, clip Clipboard, apply EditApplier) {
	if ed.HasSelection() {
		sel := strings.TrimSpace(ed.Selection())
		b.Add(Item{
			Title:   "Convert to geolocation (geosearch)",
			Icon:    "search",
			Section: SectionConvert,
			Run: func(ctx context.Context, ev ClickEvent) error {
				if sel == "" {
					return nil
				}
				link, ok, err := sugg.LinkForSelection(ctx, sel)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				return apply.ApplyEdit(ctx, ed, func(e *editor.Editor) {
					e.ReplaceSelection(link)
				})
			},
		})
	}
	if conv.HasMatchInLine(ed) {
		b.Add(Item{
			Title:   "Convert to geolocation",
			Icon:    "link",
			Section: SectionConvert,
			Run: func(ctx context.Context, ev ClickEvent) error {
				return apply.ApplyEdit(ctx, ed, func(e *editor.Editor) {
					conv.ConvertURLAtCursor(e)
				})
			},
		})
	}
	b.Add(Item{
		Title:   "Paste as geolocation",
		Icon:    "clipboard",
		Section: SectionConvert,
		Run: func(ctx context.Context, ev ClickEvent) error {
			text, err := clip.ReadText(ctx)
			if err != nil {
				return err
			}
			pt, err := conv.ParseLocationFromText(ctx, text)
			if err != nil {
				return err
			}
			if pt == nil {
				// nothing recognizable on the clipboard
				return nil
			}
			p := *pt
			return apply.ApplyEdit(ctx, ed, func(e *editor.Editor) {
				conv.InsertLocation(p, e)
			})
		},
	})
}
