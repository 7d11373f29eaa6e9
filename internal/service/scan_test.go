package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwren/geonotes/internal/index"
	"github.com/mwren/geonotes/internal/index/repository"
)

func newTestRepos(t *testing.T) (*sql.DB, *repository.MarkerRepo, *repository.PlaceRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../index/migrations")
	require.NoError(t, err)

	db, err := index.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, index.RunMigrationsWithDB(db, migrations))
	return db, repository.NewMarkerRepo(db), repository.NewPlaceRepo(db)
}

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanVault(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, markers, _ := newTestRepos(t)
	root := t.TempDir()

	writeNote(t, root, "Trips/Oslo.md", "---\nlocation: [59.91,10.75]\n---\n\nquay [Harbour](geo:59.9,10.7)\n")
	writeNote(t, root, "Plain.md", "no locations here\n")
	writeNote(t, root, "readme.txt", "[](geo:1,2) not markdown\n")
	writeNote(t, root, ".trash/Old.md", "[](geo:3,4)\n")

	svc := &ScanService{DB: db, Markers: markers, Root: root}
	res, err := svc.ScanVault(ctx)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 2, res.Files)
	require.Equal(t, 2, res.Markers)

	got, err := markers.ListByPath(ctx, filepath.Join("Trips", "Oslo.md"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 1, got[0].Line)
	require.Equal(t, 4, got[1].Line)
	require.Equal(t, "Harbour", got[1].Name)
}

func TestScanFileReplacesMarkers(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, markers, _ := newTestRepos(t)
	root := t.TempDir()

	writeNote(t, root, "A.md", "[](geo:1,2)\n[](geo:3,4)\n")
	svc := &ScanService{DB: db, Markers: markers, Root: root}

	n, err := svc.ScanFile(ctx, "A.md")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Edit note down to one location and rescan
	writeNote(t, root, "A.md", "[](geo:5,6)\n")
	n, err = svc.ScanFile(ctx, "A.md")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := markers.ListByPath(ctx, "A.md")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 5.0, got[0].Lat)
}

func TestImportCSV(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, places := newTestRepos(t)
	svc := &ImportService{Places: places}

	data := strings.Join([]string{
		"name,lat,lng",
		"Oslo Harbour,59.9,10.7",
		"Bergen,60.4,5.3",
		"Broken,abc,5",
		"Out Of Bounds,91,0",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 2)

	got, err := places.Search(ctx, "bergen")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 60.4, got[0].Lat)
}

func TestImportCSVUpdatesSeededPlace(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, _, places := newTestRepos(t)
	require.NoError(t, index.SeedDefaults(ctx, db))

	before, err := places.Search(ctx, "London")
	require.NoError(t, err)
	require.Len(t, before, 1)

	svc := &ImportService{Places: places}
	res, err := svc.ImportCSV(ctx, strings.NewReader("london,51.5,-0.12\n"))
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	// same row, case-insensitively: updated, not duplicated
	after, err := places.Search(ctx, "london")
	require.NoError(t, err)
	require.Len(t, after, 1)
	require.Equal(t, before[0].ID, after[0].ID)
	require.Equal(t, 51.5, after[0].Lat)
}

func TestImportCSVIdempotent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, places := newTestRepos(t)
	svc := &ImportService{Places: places}

	data := "Oslo,59.91,10.75\n"
	_, err := svc.ImportCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, strings.NewReader("Oslo,60,11\n"))
	require.NoError(t, err)

	got, err := places.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 60.0, got[0].Lat)
}
