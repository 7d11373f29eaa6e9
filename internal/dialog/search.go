// Package dialog holds the modal dialogs: location search and bulk import.
// Each dialog owns its whole flow; the menu layer only opens them.
package dialog

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/menu"
	"github.com/mwren/geonotes/internal/suggest"
	"github.com/mwren/geonotes/internal/vault"
)

// DoneMsg closes a dialog. Status is shown on the host's status line; Err
// takes precedence when set.
type DoneMsg struct {
	Status string
	Err    error
}

// resultsMsg carries a finished place search back to the dialog.
type resultsMsg struct {
	results []suggest.Suggestion
}

// SearchModel is the location search dialog. Once the user picks a place it
// performs its mode's effect itself: inserting into the note's front matter,
// or focusing the map.
type SearchModel struct {
	mode     menu.SearchMode
	title    string
	input    textinput.Model
	searcher *suggest.Searcher
	nav      menu.MapNavigator
	ed       *editor.Editor
	results  []suggest.Suggestion
	cursor   int
	ctx      context.Context
}

func NewSearch(ctx context.Context, mode menu.SearchMode, title string, ed *editor.Editor, searcher *suggest.Searcher, nav menu.MapNavigator) SearchModel {
	in := textinput.New()
	in.Placeholder = "place name"
	in.Focus()
	return SearchModel{
		mode:     mode,
		title:    title,
		input:    in,
		searcher: searcher,
		nav:      nav,
		ed:       ed,
		ctx:      ctx,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(""))
}

func (m SearchModel) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.searcher.Search(m.ctx, term)
		if err != nil {
			return DoneMsg{Err: err}
		}
		return resultsMsg{results: results}
	}
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch v := msg.(type) {
	case resultsMsg:
		m.results = v.results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil
	case tea.KeyMsg:
		switch v.String() {
		case "esc":
			return m, func() tea.Msg { return DoneMsg{} }
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m.apply()
		}
	}
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.searchCmd(m.input.Value()))
	}
	return m, cmd
}

// apply resolves the selected place. Update calls it on the UI loop, so the
// buffer edit happens right here; only the navigator calls run inside the
// returned command.
func (m SearchModel) apply() (SearchModel, tea.Cmd) {
	if len(m.results) == 0 {
		return m, func() tea.Msg { return DoneMsg{Status: "no matches"} }
	}
	place := m.results[m.cursor].Place
	pt := geo.New(place.Lat, place.Lng)
	switch m.mode {
	case menu.ModeAddToNote:
		vault.InsertFrontMatterLocation(m.ed, pt)
		status := "added " + place.Name + " to front matter"
		return m, func() tea.Msg { return DoneMsg{Status: status} }
	case menu.ModeShowOnMap:
		return m, func() tea.Msg {
			if err := m.nav.OpenQuery(m.ctx, "", false); err != nil {
				return DoneMsg{Err: err}
			}
			err := m.nav.OpenLocation(m.ctx, pt, nil, 0, menu.ClickEvent{})
			return DoneMsg{Status: "showing " + place.Name, Err: err}
		}
	}
	return m, func() tea.Msg { return DoneMsg{} }
}

var (
	dialogTitle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m SearchModel) View() string {
	out := dialogTitle.Render(m.title) + "\n"
	out += m.input.View() + "\n"
	for i, r := range m.results {
		marker := " "
		if i == m.cursor {
			marker = "▶"
		}
		out += marker + " " + r.Place.Name + "  " + geo.New(r.Place.Lat, r.Place.Lng).String() + "\n"
	}
	out += "[enter] Select  [esc] Cancel"
	return out
}
