// Package tui ties the geonotes panes together: the file list, the note
// editor with its contextual action menu, and the map view.
package tui

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwren/geonotes/internal/config"
	"github.com/mwren/geonotes/internal/dialog"
	"github.com/mwren/geonotes/internal/editor"
	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/mapview"
	"github.com/mwren/geonotes/internal/menu"
	"github.com/mwren/geonotes/internal/service"
	"github.com/mwren/geonotes/internal/suggest"
	"github.com/mwren/geonotes/internal/urlconv"
	"github.com/mwren/geonotes/internal/vault"
)

// Collaborators are the subsystems the app drives.
type Collaborators struct {
	Creator   *vault.Creator
	Convertor *urlconv.Convertor
	Searcher  *suggest.Searcher
	Clipboard menu.Clipboard
	URLOpener menu.URLOpener
	Navigator menu.MapNavigator
	Scan      *service.ScanService
	Importer  *service.ImportService
	Templates []vault.NoteTemplate
}

// App is the root model.
type App struct {
	ctx context.Context
	cfg config.Config
	col Collaborators

	// send publishes messages from handler goroutines back to the UI
	// loop; wired to Program.Send by the caller.
	send func(tea.Msg)

	state      appState
	files      []vault.File
	fileCursor int
	ed         *editor.Editor
	current    *vault.File
	selecting  bool
	selAnchor  editor.Pos

	mapModel mapview.Model

	modal      modalState
	menuItems  []menu.Item
	menuCursor int
	searchDlg  dialog.SearchModel
	importDlg  dialog.ImportModel

	status string
	width  int
	height int
}

type appState string

const (
	viewFiles  appState = "files"
	viewEditor appState = "editor"
	viewMap    appState = "map"
)

type modalState string

const (
	modalNone   modalState = ""
	modalMenu   modalState = "menu"
	modalSearch modalState = "search"
	modalImport modalState = "import"
)

func New(ctx context.Context, cfg config.Config, col Collaborators) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		col:      col,
		state:    viewFiles,
		mapModel: mapview.NewModel(),
		width:    80,
		height:   24,
	}
}

// AttachSend wires the app to the running program's Send. Must be called
// before any menu handler fires.
func (a *App) AttachSend(send func(tea.Msg)) {
	a.send = send
}

// SetNavigator installs the map navigator. Separate from New because the
// navigator itself needs the program's Send.
func (a *App) SetNavigator(nav menu.MapNavigator) {
	a.col.Navigator = nav
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadFiles(), a.scanCmd())
}

// ---------------------------------------------------------------------------
// menu.FileOpener / menu.DialogOpener
//
// Handlers run off the UI loop, so these publish messages instead of
// mutating the model.
// ---------------------------------------------------------------------------

func (a *App) GoToFile(ctx context.Context, f *vault.File, newPane bool, place editor.CursorPlacer) error {
	if a.send == nil {
		return fmt.Errorf("ui not attached")
	}
	a.send(goToFileMsg{file: f, newPane: newPane, place: place})
	return nil
}

func (a *App) OpenSearch(ctx context.Context, mode menu.SearchMode, title string, ed *editor.Editor) error {
	if a.send == nil {
		return fmt.Errorf("ui not attached")
	}
	a.send(openSearchMsg{mode: mode, title: title, ed: ed})
	return nil
}

func (a *App) OpenImport(ctx context.Context, ed *editor.Editor) error {
	if a.send == nil {
		return fmt.Errorf("ui not attached")
	}
	a.send(openImportMsg{})
	return nil
}

// ApplyEdit hands a buffer mutation to the UI loop. Handlers never write to
// the editor from their own goroutines; Update applies the edit between
// renders.
func (a *App) ApplyEdit(ctx context.Context, ed *editor.Editor, edit editor.Edit) error {
	if a.send == nil {
		return fmt.Errorf("ui not attached")
	}
	a.send(applyEditMsg{ed: ed, edit: edit})
	return nil
}

var (
	_ menu.FileOpener   = (*App)(nil)
	_ menu.DialogOpener = (*App)(nil)
	_ menu.EditApplier  = (*App)(nil)
)

// ---------------------------------------------------------------------------
// commands
// ---------------------------------------------------------------------------

func (a *App) loadFiles() tea.Cmd {
	return func() tea.Msg {
		var files []vault.File
		root := a.col.Creator.Root
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".md") {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			files = append(files, vault.File{Path: rel})
			return nil
		})
		if err != nil {
			return errMsg{err}
		}
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		return filesMsg(files)
	}
}

func (a *App) scanCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := a.col.Scan.ScanVault(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return scanDoneMsg{res}
	}
}

func (a *App) openFileCmd(f vault.File) tea.Cmd {
	return func() tea.Msg {
		text, err := a.col.Creator.Read(&f)
		if err != nil {
			return errMsg{err}
		}
		return fileOpenedMsg{file: f, text: text}
	}
}

func (a *App) saveCmd() tea.Cmd {
	file, text := a.current, a.ed.Text()
	return func() tea.Msg {
		if err := a.col.Creator.Write(file, text); err != nil {
			return errMsg{err}
		}
		if _, err := a.col.Scan.ScanFile(a.ctx, file.Path); err != nil {
			return errMsg{err}
		}
		return statusMsg("saved " + file.Path)
	}
}

// actionCmd runs one menu item on its own goroutine. There is no shared
// cancellation: a second click while an action is still pending simply runs
// both, so e.g. two quick "new note" clicks produce two files.
func (a *App) actionCmd(it menu.Item, ev menu.ClickEvent) tea.Cmd {
	return func() tea.Msg {
		if err := it.Run(a.ctx, ev); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{title: it.Title}
	}
}

// ---------------------------------------------------------------------------
// context menu
// ---------------------------------------------------------------------------

// buildMenu runs every contributor against the current context. Item order
// within a contributor and across contributors is the literal call order
// here; sections render in first-seen order.
func (a *App) buildMenu() *menu.Builder {
	b := menu.NewBuilder()
	pt := a.pointAtCursor()
	line := a.ed.Cursor().Line

	menu.AddShowOnMap(b, pt, a.current, line, a.col.Navigator)
	menu.AddOpenWith(b, pt, a.cfg.OpenIn, a.col.URLOpener)
	menu.AddGeolocationToNote(b, a.ed, a)
	menu.AddFocusNoteInMapView(b, a.current, a.cfg.Map, a.col.Navigator)
	if from, to, ok := a.ed.SelectionRange(); ok {
		n := vault.CountLocationsInRange(a.ed.Text(), from.Line, to.Line)
		menu.AddFocusLinesInMapView(b, a.current, from.Line, to.Line, n, a.col.Navigator)
	}
	menu.AddURLConversionItems(b, a.ed, a.col.Convertor, a.col.Searcher, a.col.Clipboard, a)
	tmpl := vault.FindTemplate(a.col.Templates, a.cfg.NewNote.Template)
	menu.AddNewNoteItems(b, pt, a.cfg.NewNote, tmpl.Body, a.col.Creator, a)
	menu.AddCopyGeolocationItems(b, pt, a.col.Clipboard)
	menu.AddImport(b, a.ed, a)
	return b
}

// groupBySection orders items so each section is contiguous, sections in
// first-seen order, item order within a section preserved.
func groupBySection(b *menu.Builder) []menu.Item {
	out := make([]menu.Item, 0, len(b.Items()))
	for _, s := range b.Sections() {
		for _, it := range b.Items() {
			if it.Section == s {
				out = append(out, it)
			}
		}
	}
	return out
}

// pointAtCursor resolves the geolocation the cursor sits on: an inline link
// on the cursor line wins, then the note's front matter location.
func (a *App) pointAtCursor() *geo.Point {
	if a.ed == nil {
		return nil
	}
	line := a.ed.Cursor().Line
	for _, loc := range vault.ExtractLocations(a.ed.Text()) {
		loc := loc
		if loc.Line == line {
			return &loc.Pt
		}
	}
	lines := make([]string, a.ed.LineCount())
	for i := range lines {
		lines[i] = a.ed.Line(i)
	}
	if pt, _, ok := vault.FrontMatterLocation(lines); ok {
		return &pt
	}
	return nil
}

// ---------------------------------------------------------------------------
// update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.mapModel, _ = a.mapModel.Update(m)
		return a, nil

	case filesMsg:
		a.files = []vault.File(m)
		if a.fileCursor >= len(a.files) {
			a.fileCursor = 0
		}
		return a, nil

	case fileOpenedMsg:
		f := m.file
		a.current = &f
		a.ed = editor.New(f.Path, m.text)
		a.selecting = false
		a.state = viewEditor
		return a, nil

	case goToFileMsg:
		// single-window host: a new-pane request still lands in the
		// one editor, it just comes to front
		return a, tea.Batch(a.openGoTo(m), a.loadFiles())

	case fileNavigatedMsg:
		f := m.file
		a.current = &f
		a.ed = editor.New(f.Path, m.text)
		if m.place != nil {
			m.place(a.ed)
		}
		a.selecting = false
		a.state = viewEditor
		return a, nil

	case applyEditMsg:
		m.edit(m.ed)
		return a, nil

	case openSearchMsg:
		a.searchDlg = dialog.NewSearch(a.ctx, m.mode, m.title, m.ed, a.col.Searcher, a.col.Navigator)
		a.modal = modalSearch
		return a, a.searchDlg.Init()

	case openImportMsg:
		a.importDlg = dialog.NewImport(a.ctx, a.col.Importer)
		a.modal = modalImport
		return a, a.importDlg.Init()

	case dialog.DoneMsg:
		a.modal = modalNone
		switch {
		case m.Err != nil:
			a.status = "error: " + m.Err.Error()
		case m.Status != "":
			a.status = m.Status
		default:
			a.status = ""
		}
		// a search dialog may have edited the buffer
		if m.Err == nil && a.current != nil {
			return a, a.saveCmd()
		}
		return a, nil

	case mapview.FocusMsg:
		a.mapModel, _ = a.mapModel.Update(msg)
		a.state = viewMap
		return a, nil

	case mapview.LocationMsg:
		a.mapModel, _ = a.mapModel.Update(msg)
		a.state = viewMap
		return a, nil

	case scanDoneMsg:
		a.status = fmt.Sprintf("indexed %d markers in %d files", m.res.Markers, m.res.Files)
		if len(m.res.Errors) > 0 {
			a.status += fmt.Sprintf(", %d errors", len(m.res.Errors))
		}
		return a, nil

	case actionDoneMsg:
		a.status = m.title
		return a, nil

	case statusMsg:
		a.status = string(m)
		return a, nil

	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	// dialogs receive their own internal messages
	var cmd tea.Cmd
	switch a.modal {
	case modalSearch:
		a.searchDlg, cmd = a.searchDlg.Update(msg)
	case modalImport:
		a.importDlg, cmd = a.importDlg.Update(msg)
	}
	return a, cmd
}

func (a *App) openGoTo(m goToFileMsg) tea.Cmd {
	return func() tea.Msg {
		text, err := a.col.Creator.Read(m.file)
		if err != nil {
			return errMsg{err}
		}
		return fileNavigatedMsg{file: *m.file, text: text, place: m.place}
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalSearch {
		var cmd tea.Cmd
		a.searchDlg, cmd = a.searchDlg.Update(m)
		return a, cmd
	}
	if a.modal == modalImport {
		var cmd tea.Cmd
		a.importDlg, cmd = a.importDlg.Update(m)
		return a, cmd
	}
	if a.modal == modalMenu {
		return a.handleMenuKey(m)
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "f":
		a.state = viewFiles
		return a, a.loadFiles()
	case "g":
		a.state = viewMap
		return a, nil
	case "e":
		if a.ed != nil {
			a.state = viewEditor
		}
		return a, nil
	case "r":
		a.status = "scanning..."
		return a, a.scanCmd()
	}

	switch a.state {
	case viewFiles:
		return a.handleFilesKey(m)
	case viewEditor:
		return a.handleEditorKey(m)
	case viewMap:
		return a.handleMapKey(m)
	}
	return a, nil
}

func (a *App) handleFilesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.fileCursor > 0 {
			a.fileCursor--
		}
	case "down", "j":
		if a.fileCursor < len(a.files)-1 {
			a.fileCursor++
		}
	case "enter":
		if len(a.files) > 0 {
			return a, a.openFileCmd(a.files[a.fileCursor])
		}
	}
	return a, nil
}

func (a *App) handleEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.ed == nil {
		return a, nil
	}
	cur := a.ed.Cursor()
	switch m.String() {
	case "up":
		a.moveCursor(editor.Pos{Line: cur.Line - 1, Ch: cur.Ch})
	case "down":
		a.moveCursor(editor.Pos{Line: cur.Line + 1, Ch: cur.Ch})
	case "left":
		a.moveCursor(editor.Pos{Line: cur.Line, Ch: cur.Ch - 1})
	case "right":
		a.moveCursor(editor.Pos{Line: cur.Line, Ch: cur.Ch + 1})
	case "home":
		a.moveCursor(editor.Pos{Line: cur.Line})
	case "end":
		a.moveCursor(editor.Pos{Line: cur.Line, Ch: len(a.ed.CurrentLine())})
	case "v":
		if a.selecting {
			a.selecting = false
			a.ed.ClearSelection()
		} else {
			a.selecting = true
			a.selAnchor = cur
		}
	case "ctrl+s":
		return a, a.saveCmd()
	case "m":
		a.menuItems = groupBySection(a.buildMenu())
		a.menuCursor = 0
		a.modal = modalMenu
	}
	return a, nil
}

func (a *App) moveCursor(p editor.Pos) {
	a.ed.SetCursor(p)
	if a.selecting {
		a.ed.Select(a.selAnchor, a.ed.Cursor())
	}
}

func (a *App) handleMapKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.mapModel, cmd = a.mapModel.Update(m)
	return a, cmd
}

func (a *App) handleMenuKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if a.menuCursor > 0 {
			a.menuCursor--
		}
	case "down", "j":
		if a.menuCursor < len(a.menuItems)-1 {
			a.menuCursor++
		}
	case "enter":
		return a.clickMenuItem(menu.ClickEvent{})
	case "ctrl+o":
		// ctrl-equivalent modifier: open in new pane
		return a.clickMenuItem(menu.ClickEvent{NewPane: true})
	case "alt+enter":
		// shift-equivalent modifier
		return a.clickMenuItem(menu.ClickEvent{Alt: true})
	}
	return a, nil
}

func (a *App) clickMenuItem(ev menu.ClickEvent) (tea.Model, tea.Cmd) {
	if len(a.menuItems) == 0 {
		a.modal = modalNone
		return a, nil
	}
	it := a.menuItems[a.menuCursor]
	a.modal = modalNone
	return a, a.actionCmd(it, ev)
}

// ---------------------------------------------------------------------------
// messages
// ---------------------------------------------------------------------------

type filesMsg []vault.File

type fileOpenedMsg struct {
	file vault.File
	text string
}

type goToFileMsg struct {
	file    *vault.File
	newPane bool
	place   editor.CursorPlacer
}

type fileNavigatedMsg struct {
	file  vault.File
	text  string
	place editor.CursorPlacer
}

type applyEditMsg struct {
	ed   *editor.Editor
	edit editor.Edit
}

type openSearchMsg struct {
	mode  menu.SearchMode
	title string
	ed    *editor.Editor
}

type openImportMsg struct{}

type scanDoneMsg struct {
	res service.ScanResult
}

type actionDoneMsg struct {
	title string
}

type statusMsg string

type errMsg struct{ error }
