package dialog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwren/geonotes/internal/service"
)

// ImportModel is the bulk-import dialog: a CSV path prompt feeding the
// import service.
type ImportModel struct {
	input    textinput.Model
	importer *service.ImportService
	ctx      context.Context
	status   string
}

func NewImport(ctx context.Context, importer *service.ImportService) ImportModel {
	in := textinput.New()
	in.Placeholder = "places.csv"
	in.Focus()
	return ImportModel{input: in, importer: importer, ctx: ctx}
}

func (m ImportModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ImportModel) Update(msg tea.Msg) (ImportModel, tea.Cmd) {
	if v, ok := msg.(tea.KeyMsg); ok {
		switch v.String() {
		case "esc":
			return m, func() tea.Msg { return DoneMsg{} }
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.status = "enter a CSV path"
				return m, nil
			}
			return m, m.importCmd(path)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			path = p
		}
	}
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return DoneMsg{Err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()

		res, err := m.importer.ImportCSV(m.ctx, f)
		if err != nil {
			return DoneMsg{Err: err}
		}
		status := fmt.Sprintf("imported %d, skipped %d", res.Imported, res.Skipped)
		if len(res.Errors) > 0 {
			status += fmt.Sprintf(", errors %d", len(res.Errors))
		}
		return DoneMsg{Status: status}
	}
}

func (m ImportModel) View() string {
	out := dialogTitle.Render("Import geolocations from file") + "\n"
	out += "CSV columns: name, lat, lng\n"
	out += m.input.View() + "\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	out += "[enter] Import  [esc] Cancel"
	return out
}
