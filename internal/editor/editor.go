// Package editor implements the line-based note buffer the action menu
// contributors read and mutate. It models only what the menu layer needs:
// cursor, selection, line access, and range edits.
package editor

import "strings"

// Pos is a buffer position: zero-based line and character offset.
type Pos struct {
	Line int
	Ch   int
}

// Before reports whether p comes before other in buffer order.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Ch < other.Ch
}

// Editor is a mutable buffer bound to a note path.
type Editor struct {
	path   string
	lines  []string
	cursor Pos
	anchor *Pos // selection anchor; selection spans anchor..cursor
}

// New returns an editor over the given text.
func New(path, text string) *Editor {
	return &Editor{path: path, lines: splitText(text)}
}

func splitText(text string) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// Path returns the note path the buffer is bound to.
func (e *Editor) Path() string { return e.path }

// Text returns the full buffer contents.
func (e *Editor) Text() string { return strings.Join(e.lines, "\n") }

// SetText replaces the buffer contents and resets cursor and selection.
func (e *Editor) SetText(text string) {
	e.lines = splitText(text)
	e.cursor = Pos{}
	e.anchor = nil
}

// LineCount returns the number of lines in the buffer.
func (e *Editor) LineCount() int { return len(e.lines) }

// Line returns line i, or "" when i is out of range.
func (e *Editor) Line(i int) string {
	if i < 0 || i >= len(e.lines) {
		return ""
	}
	return e.lines[i]
}

// CurrentLine returns the line under the cursor.
func (e *Editor) CurrentLine() string { return e.Line(e.cursor.Line) }

// Cursor returns the current cursor position.
func (e *Editor) Cursor() Pos { return e.cursor }

// SetCursor moves the cursor, clamping to the buffer.
func (e *Editor) SetCursor(p Pos) {
	e.cursor = e.clamp(p)
}

func (e *Editor) clamp(p Pos) Pos {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(e.lines) {
		p.Line = len(e.lines) - 1
	}
	if p.Ch < 0 {
		p.Ch = 0
	}
	if n := len(e.lines[p.Line]); p.Ch > n {
		p.Ch = n
	}
	return p
}

// Select sets the selection to span from..to and places the cursor at to.
func (e *Editor) Select(from, to Pos) {
	from = e.clamp(from)
	e.anchor = &from
	e.cursor = e.clamp(to)
}

// ClearSelection drops any active selection.
func (e *Editor) ClearSelection() { e.anchor = nil }

// HasSelection reports whether a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	return e.Selection() != ""
}

// SelectionRange returns the normalized selection bounds, ok=false when no
// selection is active.
func (e *Editor) SelectionRange() (from, to Pos, ok bool) {
	if e.anchor == nil {
		return Pos{}, Pos{}, false
	}
	from, to = *e.anchor, e.cursor
	if to.Before(from) {
		from, to = to, from
	}
	return from, to, true
}

// Selection returns the selected text, "" when no selection is active.
func (e *Editor) Selection() string {
	from, to, ok := e.SelectionRange()
	if !ok {
		return ""
	}
	return e.slice(from, to)
}

func (e *Editor) slice(from, to Pos) string {
	if from.Line == to.Line {
		line := e.lines[from.Line]
		return line[from.Ch:to.Ch]
	}
	var b strings.Builder
	b.WriteString(e.lines[from.Line][from.Ch:])
	for i := from.Line + 1; i < to.Line; i++ {
		b.WriteString("\n")
		b.WriteString(e.lines[i])
	}
	b.WriteString("\n")
	b.WriteString(e.lines[to.Line][:to.Ch])
	return b.String()
}

// InsertAtCursor inserts text at the cursor and moves the cursor past it.
func (e *Editor) InsertAtCursor(text string) {
	e.ReplaceRange(e.cursor, e.cursor, text)
}

// ReplaceRange replaces the from..to span with text and places the cursor at
// the end of the inserted text. from and to must be in order.
func (e *Editor) ReplaceRange(from, to Pos, text string) {
	from = e.clamp(from)
	to = e.clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	head := e.lines[from.Line][:from.Ch]
	tail := e.lines[to.Line][to.Ch:]
	inserted := splitText(text)
	inserted[0] = head + inserted[0]
	endCh := len(inserted[len(inserted)-1])
	if len(inserted) == 1 {
		endCh = len(head) + len(text)
	}
	inserted[len(inserted)-1] += tail

	out := make([]string, 0, len(e.lines)-(to.Line-from.Line+1)+len(inserted))
	out = append(out, e.lines[:from.Line]...)
	out = append(out, inserted...)
	out = append(out, e.lines[to.Line+1:]...)
	e.lines = out

	e.anchor = nil
	e.cursor = Pos{Line: from.Line + len(inserted) - 1, Ch: endCh}
}

// ReplaceSelection replaces the active selection with text. Without a
// selection it inserts at the cursor.
func (e *Editor) ReplaceSelection(text string) {
	from, to, ok := e.SelectionRange()
	if !ok {
		e.InsertAtCursor(text)
		return
	}
	e.ReplaceRange(from, to, text)
}

// InsertLines inserts whole lines before line index at, clamped to the
// buffer bounds.
func (e *Editor) InsertLines(at int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(e.lines) {
		at = len(e.lines)
	}
	out := make([]string, 0, len(e.lines)+len(lines))
	out = append(out, e.lines[:at]...)
	out = append(out, lines...)
	out = append(out, e.lines[at:]...)
	e.lines = out
	if e.cursor.Line >= at {
		e.cursor.Line += len(lines)
	}
	e.anchor = nil
}
