package menu

import (
	"context"
	"time"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/vault"
)

// AddNewNoteItems contributes the two note-creation items, one per
// placement mode. A nil point contributes nothing. On click the ordering is
// fixed: format the file name, create the note, then navigate to the handle
// and place the cursor.
func AddNewNoteItems(b *Builder, pt *geo.Point, cfg config.NewNoteConfig, template string, creator NoteCreator, files FileOpener) {
	if pt == nil {
		return
	}
	loc := pt.String()
	add := func(title, icon string, mode vault.NoteMode, place editor.CursorPlacer) {
		b.Add(Item{
			Title:   title,
			Icon:    icon,
			Section: SectionNew,
			Run: func(ctx context.Context, ev ClickEvent) error {
				name := vault.FormatName(cfg.NameFormat, time.Now())
				f, err := creator.NewNote(ctx, mode, cfg.Path, name, loc, template)
				if err != nil {
					return err
				}
				return files.GoToFile(ctx, f, ev.NewPane, place)
			},
		})
	}
	add("New note here (inline)", "file-plus", vault.MultiLocation, editor.PlaceAtInlineLink)
	add("New note here (front matter)", "file-plus", vault.SingleLocation, editor.PlaceAfterFrontMatter)
}
