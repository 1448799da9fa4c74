package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yamitzky/biffkit-go/biff"
)

// Config represents the biffkit configuration
type Config struct {
	Verbosity                int     `yaml:"verbosity"`
	IgnoreWorkbookCorruption bool    `yaml:"ignore_workbook_corruption"`
	Password                 string  `yaml:"password"`
	Logging                  Logging `yaml:"logging"`
	Dump                     Dump    `yaml:"dump"`
}

// Logging contains logging configuration. An empty Level follows Verbosity.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dump contains options of the record dumps
type Dump struct {
	Unnumbered bool `yaml:"unnumbered"`
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative: %d", c.Verbosity)
	}
	if c.Logging.Level != "" {
		if _, ok := levels[strings.ToLower(c.Logging.Level)]; !ok {
			return fmt.Errorf("unknown logging level %q", c.Logging.Level)
		}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// Logger returns a logger writing to w with the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, ok := levels[strings.ToLower(c.Logging.Level)]
	if !ok {
		level = biff.VerbosityLevel(c.Verbosity)
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OpenOptions returns the options for opening a workbook, logging to logfile.
func (c *Config) OpenOptions(logfile io.Writer) *biff.OpenOptions {
	return &biff.OpenOptions{
		Logger:                   c.Logger(logfile),
		Verbosity:                c.Verbosity,
		Password:                 c.Password,
		IgnoreWorkbookCorruption: c.IgnoreWorkbookCorruption,
	}
}

// Write writes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return enc.Close()
}
