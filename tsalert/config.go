package tsalert

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the file-level configuration of tsalert. CLI flags override it.
type Config struct {
	// Language names the grammar every file of a run is parsed with.
	Language string `koanf:"language"`

	Output OutputConfig `koanf:"output"`
	Alerts AlertsConfig `koanf:"alerts"`
	Cache  CacheConfig  `koanf:"cache"`
	Log    LogConfig    `koanf:"log"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color          string `koanf:"color"` // auto, always, never
	SeparatorWidth int    `koanf:"separator_width"`
}

// AlertsConfig controls how alerts are processed.
type AlertsConfig struct {
	// Strict turns an unreadable source file into a run failure.
	Strict            bool `koanf:"strict"`
	Dedup             bool `koanf:"dedup"`
	AllowSyntaxErrors bool `koanf:"allow_syntax_errors"`
}

// CacheConfig controls the per-run source cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`
}

// LogConfig controls diagnostics written to stderr.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		Output: OutputConfig{
			Color:          string(ColorAuto),
			SeparatorWidth: DefaultSeparatorWidth,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from a file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configNames are searched, in order, by LoadConfigOrDefault.
var configNames = []string{
	"tsalert.toml",
	"tsalert.yaml",
	"tsalert.yml",
	"tsalert.json",
	".tsalert.toml",
	".tsalert.yaml",
	".tsalert.yml",
	".tsalert.json",
}

// LoadConfigOrDefault loads the first config file found in dir, falling
// back to the defaults when none exists or none can be loaded.
func LoadConfigOrDefault(dir string) *Config {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			if err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// RenderOptions maps the config onto options for a render run.
func (c *Config) RenderOptions(report, sourceRoot string) RenderOptions {
	return RenderOptions{
		Report:            report,
		SourceRoot:        sourceRoot,
		Language:          c.Language,
		Color:             ParseColorMode(c.Output.Color),
		SeparatorWidth:    c.Output.SeparatorWidth,
		Strict:            c.Alerts.Strict,
		Dedup:             c.Alerts.Dedup,
		AllowSyntaxErrors: c.Alerts.AllowSyntaxErrors,
		Cache:             c.Cache.Enabled,
	}
}
