package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/index/repository"
)

// ImportService ingests CSV place lists into the search index.
type ImportService struct {
	Places *repository.PlaceRepo
}

type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// CSV columns: name, lat, lng. A header row with a non-numeric lat is
// skipped. Re-importing the same file updates places in place.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	res := ImportResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(rec) < 3 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected 3 columns (name, lat, lng)", line))
			continue
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: name required", line))
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if latErr != nil {
			if line == 1 {
				res.Skipped++ // header row
				continue
			}
			res.Errors = append(res.Errors, fmt.Errorf("line %d lat: %w", line, latErr))
			continue
		}
		lng, lngErr := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if lngErr != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d lng: %w", line, lngErr))
			continue
		}
		if !geo.New(lat, lng).Valid() {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: coordinates out of bounds", line))
			continue
		}
		p := repository.Place{
			ID:   repository.PlaceID(name),
			Name: name,
			Lat:  lat,
			Lng:  lng,
		}
		if err := s.Places.Upsert(ctx, p); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}
