// Package menu composes the contextual action menu. Each contributor
// inspects its slice of the invocation context (geolocation, selection,
// clipboard, file, line range) and appends the items that currently apply.
// Contributors never run side effects themselves; every effect lives in an
// item's handler and fires only on click.
package menu

import (
	"context"

	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/vault"
)

// Menu sections, rendered by the host in first-seen order.
const (
	SectionNavigate = "navigate"
	SectionOpenWith = "open with"
	SectionNote     = "note"
	SectionConvert  = "convert"
	SectionNew      = "new note"
	SectionCopy     = "copy"
	SectionImport   = "import"
)

// ClickEvent carries the modifier state of the click that triggered an item.
type ClickEvent struct {
	// NewPane is set by the ctrl-equivalent modifier: open results in a
	// new pane instead of the current one.
	NewPane bool
	// Alt is set by the shift-equivalent modifier; its meaning is up to
	// the handler.
	Alt bool
}

// Handler runs an item's effect. Handlers may block on I/O; the host runs
// each one on its own goroutine with no shared cancellation, so a second
// click while a handler is still pending simply runs both.
type Handler func(ctx context.Context, ev ClickEvent) error

// Item is one menu entry.
type Item struct {
	Title   string
	Icon    string
	Section string
	Run     Handler
}

// Builder accumulates items during the contribute phase. Items keep their
// insertion order; handlers never touch the builder.
type Builder struct {
	items []Item
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends one item.
func (b *Builder) Add(it Item) {
	b.items = append(b.items, it)
}

// Items returns the accumulated items in insertion order.
func (b *Builder) Items() []Item {
	return b.items
}

// Len returns the current item count.
func (b *Builder) Len() int {
	return len(b.items)
}

// Sections returns the distinct section tags in first-seen order.
func (b *Builder) Sections() []string {
	var out []string
	seen := make(map[string]bool)
	for _, it := range b.items {
		if !seen[it.Section] {
			seen[it.Section] = true
			out = append(out, it.Section)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Collaborator capabilities consumed by the contributors
// ---------------------------------------------------------------------------

// MapNavigator opens or focuses the map view.
type MapNavigator interface {
	// OpenLocation focuses the map on a point found in a note.
	OpenLocation(ctx context.Context, pt geo.Point, file *vault.File, line int, ev ClickEvent) error
	// OpenQuery focuses the map on the markers a query selects. An empty
	// query shows the whole vault.
	OpenQuery(ctx context.Context, query string, newPane bool) error
}

// URLOpener hands a URL to the system's default handler.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// Clipboard reads and writes text.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// URLConvertor recognizes geolocations in text and rewrites editor content.
// The rewriting methods are plain buffer mutations; handlers wrap them in an
// Edit and route them through the EditApplier.
type URLConvertor interface {
	HasMatchInLine(ed *editor.Editor) bool
	ConvertURLAtCursor(ed *editor.Editor)
	// ParseLocationFromText returns (nil, nil) when text holds no
	// recognizable location.
	ParseLocationFromText(ctx context.Context, text string) (*geo.Point, error)
	InsertLocation(pt geo.Point, ed *editor.Editor)
}

// Suggester resolves free text to an inline link for the best-matching
// place. ok is false when nothing matches.
type Suggester interface {
	LinkForSelection(ctx context.Context, sel string) (link string, ok bool, err error)
}

// EditApplier applies a buffer mutation on the host's UI loop. Handlers run
// on their own goroutines while the host keeps rendering the editor, so
// they never write to it directly; they hand the mutation here instead.
type EditApplier interface {
	ApplyEdit(ctx context.Context, ed *editor.Editor, edit editor.Edit) error
}

// NoteCreator creates a note pre-populated with a geolocation. The returned
// handle is valid for navigation as soon as NewNote returns.
type NoteCreator interface {
	NewNote(ctx context.Context, mode vault.NoteMode, dir, name, locationString, template string) (*vault.File, error)
}

// FileOpener navigates the host to a note, optionally in a new pane, and
// places the cursor.
type FileOpener interface {
	GoToFile(ctx context.Context, f *vault.File, newPane bool, place editor.CursorPlacer) error
}

// SearchMode tags what a search dialog does with the location it resolves.
type SearchMode string

const (
	// ModeAddToNote inserts the resolved location into the active note's
	// front matter.
	ModeAddToNote SearchMode = "add-to-note"
	// ModeShowOnMap focuses the map on the resolved location.
	ModeShowOnMap SearchMode = "show-on-map"
)

// DialogOpener opens the modal dialogs. The dialog performs its own effect
// once the user resolves it; the contributor's job ends at opening.
type DialogOpener interface {
	OpenSearch(ctx context.Context, mode SearchMode, title string, ed *editor.Editor) error
	OpenImport(ctx context.Context, ed *editor.Editor) error
}
