package tui

import (
	"fmt"
	"strings"

	"github.com/mwren/geonotes/internal/vault"
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewEditor:
		body = a.renderEditor()
	case viewMap:
		body = a.mapModel.View() + "\n[f] Files  [e] Editor  [r] Rescan  [q] Quit"
	default:
		body = a.renderFiles()
	}
	if a.status != "" {
		style := statusStyle
		if strings.HasPrefix(a.status, "error: ") {
			style = errorStyle
		}
		body += "\n" + style.Render(a.status)
	}

	switch a.modal {
	case modalMenu:
		return overlayAt(body, menuStyle.Render(a.renderMenu()), 4, 2, a.width, a.height)
	case modalSearch:
		return body + "\n\n" + a.searchDlg.View()
	case modalImport:
		return body + "\n\n" + a.importDlg.View()
	}
	return body
}

func (a *App) renderFiles() string {
	out := titleStyle.Render("Vault") + "\n"
	if len(a.files) == 0 {
		out += "(no notes found)\n"
	}
	for i, f := range a.files {
		marker := " "
		if i == a.fileCursor {
			marker = cursorStyle.Render("▶")
		}
		out += fmt.Sprintf("%s %s\n", marker, f.Path)
	}
	out += "[enter] Open  [g] Map  [r] Rescan  [q] Quit"
	return out
}

func (a *App) renderEditor() string {
	if a.ed == nil {
		return titleStyle.Render("Editor") + "\n(no note open)"
	}
	out := titleStyle.Render(a.current.DisplayName()) + "\n"
	cur := a.ed.Cursor()
	from, to, hasSel := a.ed.SelectionRange()
	located := map[int]bool{}
	for _, loc := range vault.ExtractLocations(a.ed.Text()) {
		located[loc.Line] = true
	}
	for i := 0; i < a.ed.LineCount(); i++ {
		line := a.ed.Line(i)
		marker := " "
		if i == cur.Line {
			marker = cursorStyle.Render("▶")
		}
		pin := " "
		if located[i] {
			pin = markerStyle.Render("●")
		}
		text := truncate(line, a.width-8)
		if hasSel && i >= from.Line && i <= to.Line {
			text = selectionStyle.Render(text)
		}
		out += fmt.Sprintf("%s%s %3d  %s\n", marker, pin, i, text)
	}
	out += "[m] Menu  [v] Select  [ctrl+s] Save  [f] Files  [g] Map  [q] Quit"
	return out
}

func (a *App) renderMenu() string {
	var out string
	lastSection := ""
	for i, it := range a.menuItems {
		if it.Section != lastSection {
			if lastSection != "" {
				out += "\n"
			}
			out += sectionStyle.Render(it.Section) + "\n"
			lastSection = it.Section
		}
		marker := " "
		if i == a.menuCursor {
			marker = cursorStyle.Render("▶")
		}
		out += fmt.Sprintf("%s %s\n", marker, it.Title)
	}
	out += "\n[enter] Run  [ctrl+o] New pane  [alt+enter] Alt  [esc] Close"
	return out
}
