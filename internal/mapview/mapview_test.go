package mapview

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/index"
	"github.com/mwren/geonotes/internal/index/repository"
	"github.com/mwren/geonotes/internal/menu"
	"github.com/mwren/geonotes/internal/vault"
)

func newNavigator(t *testing.T) (*Navigator, *[]tea.Msg) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../index/migrations")
	require.NoError(t, err)

	db, err := index.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, index.RunMigrationsWithDB(db, migrations))

	markers := repository.NewMarkerRepo(db)
	ctx := context.Background()
	now := index.Now()
	seed := []repository.Marker{
		{ID: "a", Path: "Notes/A.md", Line: 2, Lat: 10, Lng: 20},
		{ID: "b", Path: "Notes/A.md", Line: 8, Lat: 11, Lng: 21},
		{ID: "c", Path: "B.md", Line: 0, Lat: 12, Lng: 22},
	}
	for _, m := range seed {
		m.CreatedAt, m.UpdatedAt = now, now
		require.NoError(t, markers.Upsert(ctx, m))
	}

	var sent []tea.Msg
	nav := &Navigator{Markers: markers, Send: func(msg tea.Msg) { sent = append(sent, msg) }}
	return nav, &sent
}

func TestOpenQueryByPath(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nav, sent := newNavigator(t)

	require.NoError(t, nav.OpenQuery(ctx, `path:"Notes/A.md"`, false))
	require.Len(t, *sent, 1)
	focus := (*sent)[0].(FocusMsg)
	require.Len(t, focus.Markers, 2)
	require.Equal(t, 2, focus.Markers[0].Line)
}

func TestOpenQueryByPathLines(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nav, sent := newNavigator(t)

	require.NoError(t, nav.OpenQuery(ctx, `path:"Notes/A.md" AND lines:3-9`, true))
	focus := (*sent)[0].(FocusMsg)
	require.Len(t, focus.Markers, 1)
	require.Equal(t, 8, focus.Markers[0].Line)
	require.True(t, focus.NewPane)
}

func TestOpenQueryEmptyShowsAll(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nav, sent := newNavigator(t)

	require.NoError(t, nav.OpenQuery(ctx, "", false))
	focus := (*sent)[0].(FocusMsg)
	require.Len(t, focus.Markers, 3)
}

func TestOpenQueryBadQuery(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nav, sent := newNavigator(t)

	require.Error(t, nav.OpenQuery(ctx, `path:"A.md" AND lines:x-y`, false))
	require.Empty(t, *sent)
}

func TestOpenLocation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	nav, sent := newNavigator(t)

	pt := geo.New(10, 20)
	ev := menu.ClickEvent{NewPane: true, Alt: true}
	require.NoError(t, nav.OpenLocation(ctx, pt, &vault.File{Path: "Notes/A.md"}, 2, ev))
	loc := (*sent)[0].(LocationMsg)
	require.Equal(t, pt, loc.Pt)
	require.Equal(t, "Notes/A.md", loc.Path)
	require.True(t, loc.NewPane)
	require.True(t, loc.Alt)
}

func TestModelFocusAndCursor(t *testing.T) {
	m := NewModel()
	m, _ = m.Update(FocusMsg{Query: `path:"A.md"`, Markers: []repository.Marker{
		{Path: "A.md", Line: 1, Lat: 1, Lng: 2, Name: "First"},
		{Path: "A.md", Line: 5, Lat: 3, Lng: 4},
	}})
	require.NotNil(t, m.Selected())
	require.Equal(t, "First", m.Selected().Name)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 5, m.Selected().Line)

	m, _ = m.Update(LocationMsg{Pt: geo.New(1, 2), Path: "A.md", Line: 1})
	require.Equal(t, 1, m.Selected().Line)
}
