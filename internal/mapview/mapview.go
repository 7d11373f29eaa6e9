// Package mapview holds the map pane: the marker set currently in view and
// the navigator other parts of the app use to focus it.
package mapview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/index/repository"
	"github.com/mwren/geonotes/internal/menu"
	"github.com/mwren/geonotes/internal/query"
	"github.com/mwren/geonotes/internal/vault"
)

// FocusMsg replaces the map's marker set with the markers a query selected.
type FocusMsg struct {
	Query   string
	Markers []repository.Marker
	NewPane bool
}

// LocationMsg centers the map on one point.
type LocationMsg struct {
	Pt      geo.Point
	Path    string
	Line    int
	NewPane bool
	Alt     bool
}

// Navigator answers map-focus requests by loading the selected markers and
// publishing a message to the UI loop. Send is safe to call from handler
// goroutines (bubbletea's Program.Send fits directly).
type Navigator struct {
	Markers *repository.MarkerRepo
	Send    func(tea.Msg)
}

var _ menu.MapNavigator = (*Navigator)(nil)

func (n *Navigator) OpenLocation(ctx context.Context, pt geo.Point, file *vault.File, line int, ev menu.ClickEvent) error {
	path := ""
	if file != nil {
		path = file.Path
	}
	n.Send(LocationMsg{Pt: pt, Path: path, Line: line, NewPane: ev.NewPane, Alt: ev.Alt})
	return nil
}

func (n *Navigator) OpenQuery(ctx context.Context, q string, newPane bool) error {
	var (
		markers []repository.Marker
		err     error
	)
	switch {
	case strings.TrimSpace(q) == "":
		markers, err = n.Markers.ListAll(ctx)
	default:
		parsed, perr := query.Parse(q)
		if perr != nil {
			return fmt.Errorf("focus query: %w", perr)
		}
		if parsed.HasLines {
			markers, err = n.Markers.ListByPathLines(ctx, parsed.Path, parsed.FromLine, parsed.ToLine)
		} else {
			markers, err = n.Markers.ListByPath(ctx, parsed.Path)
		}
	}
	if err != nil {
		return fmt.Errorf("load markers: %w", err)
	}
	n.Send(FocusMsg{Query: q, Markers: markers, NewPane: newPane})
	return nil
}

// Model is the map pane state.
type Model struct {
	markers []repository.Marker
	center  geo.Point
	hasView bool
	query   string
	width   int
	height  int
	cursor  int
}

func NewModel() Model {
	return Model{width: 60, height: 16}
}

func (m Model) Markers() []repository.Marker { return m.markers }

// Selected returns the marker under the cursor, nil when the map is empty.
func (m Model) Selected() *repository.Marker {
	if len(m.markers) == 0 || m.cursor >= len(m.markers) {
		return nil
	}
	return &m.markers[m.cursor]
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch v := msg.(type) {
	case FocusMsg:
		m.markers = v.Markers
		m.query = v.Query
		m.cursor = 0
		if len(v.Markers) > 0 {
			m.center = geo.New(v.Markers[0].Lat, v.Markers[0].Lng)
			m.hasView = true
		}
	case LocationMsg:
		m.center = v.Pt
		m.hasView = true
		for i, mk := range m.markers {
			if mk.Path == v.Path && mk.Line == v.Line {
				m.cursor = i
				break
			}
		}
	case tea.WindowSizeMsg:
		if v.Width > 20 {
			m.width = v.Width - 4
		}
	case tea.KeyMsg:
		switch v.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.markers)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

var (
	paneTitle   = lipgloss.NewStyle().Bold(true).Underline(true)
	centerStyle = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	title := paneTitle.Render("Map")
	if m.query != "" {
		title += "  " + m.query
	}
	out := title + "\n"
	if !m.hasView {
		return out + "(no markers in view)\n"
	}
	out += centerStyle.Render(fmt.Sprintf("center %s", m.center)) + "\n"
	for i, mk := range m.markers {
		marker := " "
		if i == m.cursor {
			marker = "▶"
		}
		name := mk.Name
		if name == "" {
			name = mk.Path
		}
		out += fmt.Sprintf("%s %-30s %s line %d\n", marker, name, geo.New(mk.Lat, mk.Lng), mk.Line)
	}
	return out
}
