// Package query builds and parses the focus queries the map view consumes.
//
// The wire format is owned by this package:
//
//	path:"Notes/A.md"
//	path:"Notes/A.md" AND lines:3-9
//
// plus free text terms for place search.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Query is a parsed focus query.
type Query struct {
	Path     string
	FromLine int
	ToLine   int
	HasLines bool
	Term     string
}

// ForFile returns the query focusing every marker of one file.
func ForFile(path string) string {
	return fmt.Sprintf("path:%q", path)
}

// ForLines returns the query focusing the markers of a contiguous line range.
func ForLines(path string, from, to int) string {
	return fmt.Sprintf("path:%q AND lines:%d-%d", path, from, to)
}

// Parse splits a focus query into its terms. Terms are joined by AND;
// unknown field terms and bare words accumulate into Term. An empty query
// parses to the zero Query (match everything).
func Parse(q string) (Query, error) {
	var out Query
	for _, tok := range splitTerms(q) {
		field, value, ok := cutField(tok)
		if !ok {
			out.Term = joinTerm(out.Term, tok)
			continue
		}
		switch field {
		case "path":
			out.Path = value
		case "lines":
			from, to, err := parseLineRange(value)
			if err != nil {
				return Query{}, fmt.Errorf("parse query %q: %w", q, err)
			}
			out.FromLine, out.ToLine = from, to
			out.HasLines = true
		default:
			out.Term = joinTerm(out.Term, tok)
		}
	}
	return out, nil
}

// MatchesLine reports whether a zero-based marker line falls inside the
// query's line range. Queries without a range match every line.
func (q Query) MatchesLine(line int) bool {
	if !q.HasLines {
		return true
	}
	return line >= q.FromLine && line <= q.ToLine
}

// splitTerms tokenizes on AND and whitespace, honoring double quotes.
func splitTerms(q string) []string {
	var terms []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		tok := cur.String()
		cur.Reset()
		if tok == "" || strings.EqualFold(tok, "AND") {
			return
		}
		terms = append(terms, tok)
	}
	for _, r := range q {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return terms
}

func cutField(tok string) (field, value string, ok bool) {
	i := strings.IndexByte(tok, ':')
	if i <= 0 {
		return "", "", false
	}
	field = strings.ToLower(tok[:i])
	value = tok[i+1:]
	if unq, err := strconv.Unquote(value); err == nil {
		value = unq
	}
	return field, value, true
}

func parseLineRange(value string) (int, int, error) {
	fromStr, toStr, ok := strings.Cut(value, "-")
	if !ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, 0, fmt.Errorf("bad line range %q", value)
		}
		return n, n, nil
	}
	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line range %q", value)
	}
	to, err := strconv.Atoi(toStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line range %q", value)
	}
	if to < from {
		from, to = to, from
	}
	return from, to, nil
}

func joinTerm(cur, tok string) string {
	tok = strings.Trim(tok, `"`)
	if cur == "" {
		return tok
	}
	return cur + " " + tok
}
