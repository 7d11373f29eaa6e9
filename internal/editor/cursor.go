package editor

import "strings"

// CursorPlacer positions the cursor in a freshly opened note. The note
// creator leaves an insertion marker whose location depends on the creation
// mode; these routines find it.
type CursorPlacer func(e *Editor)

// Edit is a deferred buffer mutation. Code running off the UI loop builds
// one and hands it to the host, which applies it between renders.
type Edit func(e *Editor)

// PlaceAtInlineLink puts the cursor inside the brackets of the first inline
// geo link, ready for the user to type a label. Falls back to the end of
// the buffer when no link exists.
func PlaceAtInlineLink(e *Editor) {
	for i := 0; i < e.LineCount(); i++ {
		if ch := strings.Index(e.Line(i), "[](geo:"); ch >= 0 {
			e.SetCursor(Pos{Line: i, Ch: ch + 1})
			return
		}
	}
	placeAtEnd(e)
}

// PlaceAfterFrontMatter puts the cursor on the first body line following the
// closing front matter fence. Falls back to the start of the buffer when no
// front matter exists.
func PlaceAfterFrontMatter(e *Editor) {
	if e.Line(0) != "---" {
		e.SetCursor(Pos{})
		return
	}
	for i := 1; i < e.LineCount(); i++ {
		if e.Line(i) == "---" {
			line := i + 1
			if line < e.LineCount() && e.Line(line) == "" {
				line++
			}
			e.SetCursor(Pos{Line: line})
			return
		}
	}
	e.SetCursor(Pos{})
}

func placeAtEnd(e *Editor) {
	last := e.LineCount() - 1
	e.SetCursor(Pos{Line: last, Ch: len(e.Line(last))})
}
