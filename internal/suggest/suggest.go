// Package suggest ranks named places against free-text queries and turns
// editor selections into geolocation links.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mwren/geonotes/internal/geo"
	"github.com/mwren/geonotes/internal/index/repository"
)

// Suggestion is one ranked place match.
type Suggestion struct {
	Place repository.Place
	Score float64
}

// Searcher ranks places from the index against a query string.
type Searcher struct {
	Places *repository.PlaceRepo
}

// Search returns places ranked by similarity to term, best first. An empty
// term returns every place in name order.
func (s *Searcher) Search(ctx context.Context, term string) ([]Suggestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		all, err := s.Places.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Suggestion, len(all))
		for i, p := range all {
			out[i] = Suggestion{Place: p}
		}
		return out, nil
	}

	all, err := s.Places.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Suggestion
	for _, p := range all {
		score := Score(term, p.Name)
		if score <= 0 {
			continue
		}
		out = append(out, Suggestion{Place: p, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// Score rates how well candidate matches term, 0..1. Substring hits rank
// above pure edit-distance similarity.
func Score(term, candidate string) float64 {
	t := strings.ToLower(strings.TrimSpace(term))
	c := strings.ToLower(strings.TrimSpace(candidate))
	if t == "" || c == "" {
		return 0
	}
	if t == c {
		return 1
	}
	if strings.HasPrefix(c, t) {
		return 0.9
	}
	if strings.Contains(c, t) {
		return 0.8
	}
	dist := levenshtein.ComputeDistance(t, c)
	maxlen := len(t)
	if len(c) > maxlen {
		maxlen = len(c)
	}
	sim := 1 - float64(dist)/float64(maxlen)
	if sim < 0.4 {
		return 0
	}
	return sim * 0.7
}

// LinkForSelection resolves selected text to an inline geolocation link for
// the best-matching place, keeping the text as the link label. ok is false
// for blank text or when no place matches; the caller decides what to do
// with the buffer.
func (s *Searcher) LinkForSelection(ctx context.Context, sel string) (string, bool, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return "", false, nil
	}
	matches, err := s.Search(ctx, sel)
	if err != nil {
		return "", false, fmt.Errorf("search %q: %w", sel, err)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	pt := geo.New(matches[0].Place.Lat, matches[0].Place.Lng)
	return "[" + sel + "](geo:" + pt.String() + ")", true, nil
}
