package editor

import "testing"

func TestSelection(t *testing.T) {
	e := New("Notes/A.md", "alpha beta\ngamma delta")

	if e.HasSelection() {
		t.Fatal("fresh editor should have no selection")
	}
	e.Select(Pos{Line: 0, Ch: 6}, Pos{Line: 1, Ch: 5})
	if got, want := e.Selection(), "beta\ngamma"; got != want {
		t.Fatalf("Selection() = %q, want %q", got, want)
	}

	// reversed anchor/cursor still normalizes
	e.Select(Pos{Line: 1, Ch: 5}, Pos{Line: 0, Ch: 6})
	if got, want := e.Selection(), "beta\ngamma"; got != want {
		t.Fatalf("reversed Selection() = %q, want %q", got, want)
	}

	e.ClearSelection()
	if e.HasSelection() {
		t.Fatal("selection should be cleared")
	}
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to Pos
		insert   string
		want     string
		cursor   Pos
	}{
		{
			name: "within one line",
			text: "see https://osm.org/x here",
			from: Pos{0, 4}, to: Pos{0, 21},
			insert: "[](geo:1,2)",
			want:   "see [](geo:1,2) here",
			cursor: Pos{0, 15},
		},
		{
			name: "across lines",
			text: "one\ntwo\nthree",
			from: Pos{0, 3}, to: Pos{2, 0},
			insert: " ",
			want:   "one three",
			cursor: Pos{0, 4},
		},
		{
			name: "multi-line insert",
			text: "ab",
			from: Pos{0, 1}, to: Pos{0, 1},
			insert: "x\ny",
			want:   "ax\nyb",
			cursor: Pos{1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("n.md", tt.text)
			e.ReplaceRange(tt.from, tt.to, tt.insert)
			if got := e.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := e.Cursor(); got != tt.cursor {
				t.Errorf("Cursor() = %+v, want %+v", got, tt.cursor)
			}
		})
	}
}

func TestInsertAtCursor(t *testing.T) {
	e := New("n.md", "hello world")
	e.SetCursor(Pos{0, 5})
	e.InsertAtCursor(",")
	if got := e.Text(); got != "hello, world" {
		t.Fatalf("Text() = %q", got)
	}
	if got := e.Cursor(); got != (Pos{0, 6}) {
		t.Fatalf("Cursor() = %+v", got)
	}
}

func TestInsertLines(t *testing.T) {
	e := New("n.md", "body")
	e.InsertLines(0, []string{"---", "location: [1,2]", "---", ""})
	if got, want := e.Text(), "---\nlocation: [1,2]\n---\n\nbody"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	if got := e.Cursor().Line; got != 4 {
		t.Fatalf("cursor line = %d, want 4", got)
	}
}

func TestPlaceAtInlineLink(t *testing.T) {
	e := New("n.md", "# Title\n\nmarker [](geo:1.5,-2.25) done")
	PlaceAtInlineLink(e)
	if got := e.Cursor(); got != (Pos{Line: 2, Ch: 8}) {
		t.Fatalf("Cursor() = %+v", got)
	}

	// no link: cursor lands at end of buffer
	e2 := New("n.md", "plain")
	PlaceAtInlineLink(e2)
	if got := e2.Cursor(); got != (Pos{Line: 0, Ch: 5}) {
		t.Fatalf("fallback Cursor() = %+v", got)
	}
}

func TestPlaceAfterFrontMatter(t *testing.T) {
	e := New("n.md", "---\nlocation: [10,20]\n---\n\nbody")
	PlaceAfterFrontMatter(e)
	if got := e.Cursor(); got != (Pos{Line: 4}) {
		t.Fatalf("Cursor() = %+v", got)
	}

	e2 := New("n.md", "no front matter")
	PlaceAfterFrontMatter(e2)
	if got := e2.Cursor(); got != (Pos{}) {
		t.Fatalf("fallback Cursor() = %+v", got)
	}
}
