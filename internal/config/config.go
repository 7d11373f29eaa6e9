package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Vault    VaultConfig
	Database DatabaseConfig
	Map      MapConfig
	NewNote  NewNoteConfig
	OpenIn   []OpenInRule
	URLRules []URLRule `mapstructure:"url_rules"`
}

// VaultConfig holds note vault settings.
type VaultConfig struct {
	Path string
}

// DatabaseConfig holds sqlite settings for the marker index.
type DatabaseConfig struct {
	Path string
}

// MapConfig holds map view settings.
type MapConfig struct {
	FollowActiveNote bool `mapstructure:"follow_active_note"`
}

// NewNoteConfig holds settings for notes created from the action menu.
type NewNoteConfig struct {
	Path       string
	NameFormat string `mapstructure:"name_format"`
	Template   string
}

// OpenInRule is one user-defined "Open in X" entry. Rules with an empty
// Name or URLPattern are skipped by the menu. URLPattern may contain the
// placeholder tokens {x} and {y}, substituted with latitude and longitude.
type OpenInRule struct {
	Name       string
	URLPattern string `mapstructure:"url_pattern"`
}

// Valid reports whether the rule carries both a name and a pattern.
func (r OpenInRule) Valid() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.URLPattern) != ""
}

// URLRule is one user-defined URL parsing rule consumed by the convertor.
// Pattern is a regular expression with two capture groups; Order declares
// whether latitude comes first ("latlng") or longitude ("lnglat").
type URLRule struct {
	Name    string
	Pattern string
	Order   string
}

// Load reads configuration from file and env. Env var overrides use prefix GEONOTES_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "geonotes")

	// default values
	v.SetDefault("vault.path", filepath.Join(os.Getenv("HOME"), "notes"))
	v.SetDefault("database.path", filepath.Join(dataDir, "geonotes.db"))
	v.SetDefault("map.follow_active_note", false)
	v.SetDefault("newnote.path", "")
	v.SetDefault("newnote.name_format", "Location {{date}} {{time}}")
	v.SetDefault("newnote.template", "default")
	v.SetDefault("openin", []map[string]any{
		{"name": "OpenStreetMap", "url_pattern": "https://www.openstreetmap.org/?mlat={x}&mlon={y}"},
		{"name": "Google Maps", "url_pattern": "https://maps.google.com/?q={x},{y}"},
	})

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GEONOTES_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "geonotes"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GEONOTES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed.
func Save(cfg Config) error {
	path := os.Getenv("GEONOTES_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "geonotes", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("vault.path", cfg.Vault.Path)
	v.Set("database.path", cfg.Database.Path)
	v.Set("map.follow_active_note", cfg.Map.FollowActiveNote)
	v.Set("newnote.path", cfg.NewNote.Path)
	v.Set("newnote.name_format", cfg.NewNote.NameFormat)
	v.Set("newnote.template", cfg.NewNote.Template)
	openin := make([]map[string]any, 0, len(cfg.OpenIn))
	for _, r := range cfg.OpenIn {
		openin = append(openin, map[string]any{"name": r.Name, "url_pattern": r.URLPattern})
	}
	v.Set("openin", openin)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
