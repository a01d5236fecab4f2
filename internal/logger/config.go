package logger

import (
	"log/slog"
	"strings"
)

// Config is the [logger] section of the configuration file.
type Config struct {
	LogLevel    string `toml:"log_level"` // debug, info, warn or error
	LogFilePath string `toml:"log_file"`  // empty or "-" for stderr

	// Filters. Names match case-insensitively and a disabled entry beats an
	// enabled one. A non-empty enabled list admits only what it names.
	EnabledTags      []string `toml:"enabled_tags"`
	DisabledTags     []string `toml:"disabled_tags"`
	EnabledPackages  []string `toml:"enabled_packages"` // directory of the calling file, e.g. "history"
	DisabledPackages []string `toml:"disabled_packages"`
	EnabledFiles     []string `toml:"enabled_files"` // base name, e.g. "parser.go"
	DisabledFiles    []string `toml:"disabled_files"`

	level    slog.Level
	tags     filter
	packages filter
	files    filter
}

// NewConfig returns the defaults: info level on stderr, no filters.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// process resolves the level name and builds the filters.
func (c *Config) process() {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		c.level = slog.LevelDebug
	case "warn", "warning":
		c.level = slog.LevelWarn
	case "error", "err":
		c.level = slog.LevelError
	default:
		c.level = slog.LevelInfo
	}
	c.tags = newFilter(c.EnabledTags, c.DisabledTags)
	c.packages = newFilter(c.EnabledPackages, c.DisabledPackages)
	c.files = newFilter(c.EnabledFiles, c.DisabledFiles)
}

// sliceToSet lowercases items into a set, or nil when none are non-empty.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
