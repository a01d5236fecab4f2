// Package config loads quill's settings: built-in defaults, then a TOML file,
// then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/markdown"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Composer ComposerConfig `toml:"composer"`
	Markdown MarkdownConfig `toml:"markdown"`
	Preview  PreviewConfig  `toml:"preview"`

	// Plugins holds free-form settings per plugin name, e.g. [plugins.draft].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// ComposerConfig holds editing-session settings.
type ComposerConfig struct {
	MaxHistory      int  `toml:"max_history"`
	SnapGraphemes   bool `toml:"snap_graphemes"` // widen selections to whole grapheme clusters
	SystemClipboard bool `toml:"system_clipboard"`
}

// MarkdownConfig bounds the parser.
type MarkdownConfig struct {
	MaxSteps     int `toml:"max_steps"`
	MaxCodeSteps int `toml:"max_code_steps"`
	MaxURLSteps  int `toml:"max_url_steps"`
}

// PreviewConfig holds terminal preview settings.
type PreviewConfig struct {
	ThemeFile string `toml:"theme_file"` // empty selects the built-in theme
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Composer: ComposerConfig{
			MaxHistory:      DefaultMaxHistory,
			SnapGraphemes:   DefaultSnapGraphemes,
			SystemClipboard: SystemClipboard,
		},
		Markdown: MarkdownConfig{
			MaxSteps:     DefaultMaxSteps,
			MaxCodeSteps: DefaultMaxCodeSteps,
			MaxURLSteps:  DefaultMaxURLSteps,
		},
	}
}

// Limits converts the markdown section into parser limits.
func (c *Config) Limits() markdown.Limits {
	return markdown.Limits{
		MaxSteps:     c.Markdown.MaxSteps,
		MaxCodeSteps: c.Markdown.MaxCodeSteps,
		MaxURLSteps:  c.Markdown.MaxURLSteps,
	}
}

// PluginValue returns the setting key of plugin name.
func (c *Config) PluginValue(name, key string) (interface{}, bool) {
	section, ok := c.Plugins[name]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// DefaultPath returns $XDG_CONFIG_HOME/quill/config.toml (or the platform
// equivalent), or "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes the TOML file at filePath over cfg. A missing file is
// not an error.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Composer.MaxHistory <= 0 {
		c.Composer.MaxHistory = defaults.Composer.MaxHistory
	}
	if c.Markdown.MaxSteps <= 0 {
		c.Markdown.MaxSteps = defaults.Markdown.MaxSteps
	}
	if c.Markdown.MaxCodeSteps <= 0 {
		c.Markdown.MaxCodeSteps = defaults.Markdown.MaxCodeSteps
	}
	if c.Markdown.MaxURLSteps <= 0 {
		c.Markdown.MaxURLSteps = defaults.Markdown.MaxURLSteps
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. An empty configFilePath selects DefaultPath. Flags may be nil.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	// The logger is usually configured from the result, so stay quiet.
	verbose := false

	cfg := NewDefaultConfig()
	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var loadErr error
	if effectivePath != "" {
		if err := loadFromFile(effectivePath, cfg, verbose); err != nil {
			loadErr = err
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}
	cfg.validate()
	return cfg, loadErr
}
