// Package service implements vault-wide operations on top of the repository
// layer: marker index scans and place imports.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mwren/geonotes/internal/index"
	"github.com/mwren/geonotes/internal/index/repository"
	"github.com/mwren/geonotes/internal/vault"
)

// ScanService rebuilds the marker index from the vault's markdown files.
type ScanService struct {
	DB      *sql.DB
	Markers *repository.MarkerRepo
	Root    string
}

type ScanResult struct {
	Files   int
	Markers int
	Errors  []error
}

// ScanVault walks the vault and reindexes every markdown note. Unreadable
// files are collected as errors without aborting the scan.
func (s *ScanService) ScanVault(ctx context.Context) (ScanResult, error) {
	res := ScanResult{}
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Errors = append(res.Errors, err)
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.Root {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			res.Errors = append(res.Errors, err)
			return nil
		}
		n, err := s.ScanFile(ctx, rel)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s: %w", rel, err))
			return nil
		}
		res.Files++
		res.Markers += n
		return nil
	})
	return res, err
}

// ScanFile reindexes a single note, replacing its previous markers. The
// delete and the inserts run in one transaction, so a failure mid-rewrite
// leaves the note's old markers in place. Returns the number of markers
// found.
func (s *ScanService) ScanFile(ctx context.Context, rel string) (int, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, rel))
	if err != nil {
		return 0, err
	}
	locs := vault.ExtractLocations(string(data))

	err = index.WithTx(s.DB, func(tx *sql.Tx) error {
		markers := s.Markers.WithTx(tx)
		if err := markers.DeleteByPath(ctx, rel); err != nil {
			return err
		}
		now := index.Now()
		for i, loc := range locs {
			m := repository.Marker{
				ID:        markerID(rel, i),
				Path:      rel,
				Line:      loc.Line,
				Lat:       loc.Pt.Lat,
				Lng:       loc.Pt.Lng,
				Name:      loc.Name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := markers.Upsert(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(locs), nil
}

// markerID is stable per (path, ordinal) so rescans update rows in place.
func markerID(rel string, ordinal int) string {
	key := fmt.Sprintf("marker:%s:%d", rel, ordinal)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
