package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/logging"
	"github.com/dshills/platekb/internal/plate"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, layout.ModeCivil, mode)

	nt, err := cfg.NumberType()
	require.NoError(t, err)
	assert.Equal(t, plate.TypeAutoDetect, nt)
	assert.Equal(t, OutputAuto, cfg.Output.Format)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "platekb.toml", `
[keyboard]
type = "FULL"

[plate]
number_type = "NEW_ENERGY"

[output]
format = "json"

[logging]
level = "debug"
format = "json"

[script]
path = "rules.lua"

[metrics]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	mode, _ := cfg.Mode()
	nt, _ := cfg.NumberType()
	assert.Equal(t, layout.ModeFull, mode)
	assert.Equal(t, plate.TypeNewEnergy, nt)
	assert.Equal(t, OutputJSON, cfg.Output.Format)
	assert.Equal(t, "rules.lua", cfg.Script.Path)
	assert.True(t, cfg.Metrics.Enabled)

	lc, err := cfg.LogConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "platekb.yaml", `
keyboard:
  type: "2"
plate:
  number_type: WJ2012
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	mode, _ := cfg.Mode()
	nt, _ := cfg.NumberType()
	assert.Equal(t, layout.ModeCivilSpecial, mode)
	assert.Equal(t, plate.TypeWJ2012, nt)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "platekb.ini", "type=1")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "platekb.toml", "[keyboard]\ntype = \n")

	_, err := Load(path)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Error(), "line 2")
}

func TestLoadYAMLParseError(t *testing.T) {
	path := writeFile(t, "platekb.yml", "keyboard: [")

	_, err := Load(path)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "platekb.toml", "[keyboard]\ntype = \"FULL\"\n")
	t.Setenv("PLATEKB_KEYBOARD_TYPE", "CIVIL_SPEC")
	t.Setenv("PLATEKB_OUTPUT_FORMAT", "text")
	t.Setenv("PLATEKB_METRICS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	mode, _ := cfg.Mode()
	assert.Equal(t, layout.ModeCivilSpecial, mode)
	assert.Equal(t, OutputText, cfg.Output.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "AUTO_DETECT", cfg.Plate.NumberType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		setting string
	}{
		{"keyboard type", func(c *Config) { c.Keyboard.Type = "QWERTY" }, "keyboard.type"},
		{"keyboard number", func(c *Config) { c.Keyboard.Type = "5" }, "keyboard.type"},
		{"number type", func(c *Config) { c.Plate.NumberType = "TRACTOR" }, "plate.number_type"},
		{"output", func(c *Config) { c.Output.Format = "yaml" }, "output.format"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.setting, verr.Setting)
		})
	}
}

func TestNumericNumberTypeIsAccepted(t *testing.T) {
	cfg := Default()
	cfg.Plate.NumberType = "42"
	require.NoError(t, cfg.Validate())

	nt, err := cfg.NumberType()
	require.NoError(t, err)
	assert.Equal(t, plate.Type(42), nt)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg.Logger())
}
