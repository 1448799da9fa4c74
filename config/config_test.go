package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biffkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 0, config.Verbosity)
	assert.False(t, config.IgnoreWorkbookCorruption)
	assert.Empty(t, config.Password)
	assert.Empty(t, config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.False(t, config.Dump.Unnumbered)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		path := writeConfig(t, `verbosity: 2
ignore_workbook_corruption: true
password: secret
logging:
  level: debug
  format: json
dump:
  unnumbered: true
`)
		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, &Config{
			Verbosity:                2,
			IgnoreWorkbookCorruption: true,
			Password:                 "secret",
			Logging:                  Logging{Level: "debug", Format: "json"},
			Dump:                     Dump{Unnumbered: true},
		}, config)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		config, err := LoadConfig(writeConfig(t, "password: x\n"))
		require.NoError(t, err)
		assert.Equal(t, "text", config.Logging.Format)
		assert.Equal(t, "x", config.Password)
	})

	t.Run("non-existent config", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "verbosity: [\n"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "logging:\n  format: xml\n"))
		assert.ErrorContains(t, err, `unknown logging format "xml"`)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    string
	}{
		{"defaults", func(*Config) {}, ""},
		{"upper case level", func(c *Config) { c.Logging.Level = "WARN" }, ""},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, `unknown logging level "loud"`},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, "verbosity must not be negative: -1"},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, `unknown logging format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.err)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	config := DefaultConfig()
	logger := config.Logger(&buf)
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))

	config.Verbosity = 2
	assert.True(t, config.Logger(&buf).Enabled(ctx, slog.LevelDebug))

	config.Logging.Level = "error"
	assert.False(t, config.Logger(&buf).Enabled(ctx, slog.LevelWarn))

	config.Logging.Format = "json"
	config.Logger(&buf).Error("bad record", "sid", 0x0809)
	assert.Contains(t, buf.String(), `"msg":"bad record","sid":2057`)
}

func TestOpenOptions(t *testing.T) {
	config := DefaultConfig()
	config.Password = "pw"
	config.IgnoreWorkbookCorruption = true
	config.Verbosity = 1

	var buf bytes.Buffer
	options := config.OpenOptions(&buf)
	assert.Equal(t, "pw", options.Password)
	assert.True(t, options.IgnoreWorkbookCorruption)
	assert.Equal(t, 1, options.Verbosity)
	require.NotNil(t, options.Logger)
	options.Logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestWrite(t *testing.T) {
	config := DefaultConfig()
	config.Dump.Unnumbered = true

	var buf bytes.Buffer
	require.NoError(t, config.Write(&buf))
	assert.Contains(t, buf.String(), "logging:\n  level: \"\"\n  format: text\n")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, config, &back)
}
