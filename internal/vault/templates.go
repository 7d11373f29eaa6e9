package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// Note template configuration (TOML-based)
// ---------------------------------------------------------------------------

// NoteTemplate defines the body of a note created from the action menu.
// The {{location}} marker is substituted according to the creation mode.
type NoteTemplate struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Body        string `toml:"body"`
}

type templatesFile struct {
	Template []NoteTemplate `toml:"template"`
}

const defaultTemplatesTOML = `# Geonotes note templates
# Add new [[template]] blocks and reference them by name in config.toml.

[[template]]
name = "default"
description = "Bare note holding one geolocation"
body = """
{{location}}
"""

[[template]]
name = "trip"
description = "Trip log entry"
body = """
## Stops

{{location}}

## Notes
"""
`

// templatesPath returns the full path to the templates.toml file.
func templatesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "geonotes", "templates.toml"), nil
}

// LoadTemplates loads note templates from the config file. If the file
// doesn't exist, it is created with the built-in defaults.
func LoadTemplates() ([]NoteTemplate, error) {
	path, err := templatesPath()
	if err != nil {
		return DefaultTemplates(), err
	}

	// Create the templates file with defaults if missing
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return DefaultTemplates(), fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultTemplatesTOML), 0o644); wErr != nil {
			return DefaultTemplates(), fmt.Errorf("write default templates: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTemplates(), fmt.Errorf("read templates: %w", err)
	}
	templates, parseErr := ParseTemplates(data)
	if parseErr != nil {
		return DefaultTemplates(), parseErr
	}
	return templates, nil
}

// ParseTemplates parses TOML bytes into template definitions.
func ParseTemplates(data []byte) ([]NoteTemplate, error) {
	var tf templatesFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse templates.toml: %w", err)
	}
	if len(tf.Template) == 0 {
		return nil, fmt.Errorf("no templates defined")
	}
	for i, t := range tf.Template {
		if t.Name == "" {
			return nil, fmt.Errorf("template[%d]: name is required", i)
		}
	}
	return tf.Template, nil
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() []NoteTemplate {
	templates, err := ParseTemplates([]byte(defaultTemplatesTOML))
	if err != nil {
		panic("built-in templates are malformed: " + err.Error())
	}
	return templates
}

// FindTemplate looks up a template by name (case-insensitive). Unknown
// names fall back to the first template.
func FindTemplate(templates []NoteTemplate, name string) NoteTemplate {
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	if len(templates) > 0 {
		return templates[0]
	}
	return NoteTemplate{Name: "default", Body: "{{location}}\n"}
}
