// Package vault manages the markdown note vault: file handles, note
// creation with geolocation pre-population, file name templates, and front
// matter handling.
package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a handle to a note, identified by its vault-relative path.
type File struct {
	Path string
}

// DisplayName returns the trimmed human-readable name of the note: the base
// name without the markdown extension.
func (f *File) DisplayName() string {
	base := filepath.Base(f.Path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// NoteMode selects where a created note carries its geolocation.
type NoteMode int

const (
	// SingleLocation notes carry the geolocation in front matter.
	SingleLocation NoteMode = iota
	// MultiLocation notes carry geolocations as inline links in the body.
	MultiLocation
)

// locationMarker is the template token replaced by the note's geolocation.
const locationMarker = "{{location}}"

// Creator creates notes inside a vault root.
type Creator struct {
	Root string
}

// NewNote creates a markdown note pre-populated with locationString
// according to mode, under dir (vault-relative, "" for the vault root) with
// the given name. The file exists on disk when NewNote returns; callers may
// navigate to the returned handle immediately. Name collisions resolve by
// numeric suffix.
func (c *Creator) NewNote(ctx context.Context, mode NoteMode, dir, name, locationString, template string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := renderNote(mode, locationString, template)

	absDir := filepath.Join(c.Root, dir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create note dir: %w", err)
	}
	relPath, absPath, err := c.freePath(dir, name)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}
	return &File{Path: relPath}, nil
}

// Read returns the note's current contents.
func (c *Creator) Read(f *File) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.Root, f.Path))
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

// Write replaces the note's contents.
func (c *Creator) Write(f *File, content string) error {
	if err := os.WriteFile(filepath.Join(c.Root, f.Path), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

func (c *Creator) freePath(dir, name string) (rel, abs string, err error) {
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s %d", name, i)
		}
		rel = filepath.Join(dir, candidate+".md")
		abs = filepath.Join(c.Root, rel)
		if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
			return rel, abs, nil
		} else if statErr != nil {
			return "", "", fmt.Errorf("stat note path: %w", statErr)
		}
	}
}

// renderNote builds the initial note body. Front matter mode hoists the
// location above the body and drops the marker; inline mode substitutes the
// marker with an inline link, appending one when the template has no marker.
func renderNote(mode NoteMode, locationString, template string) string {
	switch mode {
	case SingleLocation:
		body := strings.ReplaceAll(template, locationMarker, "")
		return "---\nlocation: [" + locationString + "]\n---\n\n" + body
	default:
		link := "[](geo:" + locationString + ")"
		if strings.Contains(template, locationMarker) {
			return strings.ReplaceAll(template, locationMarker, link)
		}
		if template != "" && !strings.HasSuffix(template, "\n") {
			template += "\n"
		}
		return template + link + "\n"
	}
}
