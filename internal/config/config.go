package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/logging"
	"github.com/dshills/platekb/internal/plate"
)

// Output formats.
const (
	OutputAuto = "auto"
	OutputJSON = "json"
	OutputText = "text"
)

// Config is the complete command line configuration.
type Config struct {
	Keyboard KeyboardConfig `toml:"keyboard" yaml:"keyboard"`
	Plate    PlateConfig    `toml:"plate" yaml:"plate"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Script   ScriptConfig   `toml:"script" yaml:"script"`
	Metrics  MetricsConfig  `toml:"metrics" yaml:"metrics"`
}

// KeyboardConfig selects the keyboard mode.
type KeyboardConfig struct {
	// Type is FULL, CIVIL, CIVIL_SPEC or the numeric mode.
	Type string `toml:"type" yaml:"type" env:"PLATEKB_KEYBOARD_TYPE"`
}

// PlateConfig selects the default plate scheme.
type PlateConfig struct {
	// NumberType is a scheme name such as AUTO_DETECT or NEW_ENERGY, or its number.
	NumberType string `toml:"number_type" yaml:"number_type" env:"PLATEKB_NUMBER_TYPE"`
}

// OutputConfig controls how layouts are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format" env:"PLATEKB_OUTPUT_FORMAT"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" env:"PLATEKB_LOG_LEVEL"`
	Format string `toml:"format" yaml:"format" env:"PLATEKB_LOG_FORMAT"`
}

// ScriptConfig names an optional Lua restriction script.
type ScriptConfig struct {
	Path string `toml:"path" yaml:"path" env:"PLATEKB_SCRIPT"`
}

// MetricsConfig controls the metrics dump.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" env:"PLATEKB_METRICS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keyboard: KeyboardConfig{Type: layout.ModeCivil.String()},
		Plate:    PlateConfig{NumberType: plate.TypeAutoDetect.String()},
		Output:   OutputConfig{Format: OutputAuto},
		Logging:  LoggingConfig{Level: "warn", Format: "text"},
	}
}

// Load returns the defaults overlaid with the file at path (if any) and the
// environment, then validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the settings in the file at path. A missing file is
// not an error.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return c.parseTOML(path, data)
	case ".yaml", ".yml":
		return c.parseYAML(path, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func (c *Config) parseTOML(path string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c *Config) parseYAML(path string, data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// ApplyEnv overlays PLATEKB_* environment variables. Unset variables leave
// the current values in place.
func (c *Config) ApplyEnv() error {
	if err := envdecode.Decode(c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Validate checks every enumerated setting.
func (c Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if _, err := c.NumberType(); err != nil {
		return err
	}
	switch c.Output.Format {
	case OutputAuto, OutputJSON, OutputText:
	default:
		return &ValidationError{Setting: "output.format", Value: c.Output.Format, Message: "must be auto, json or text"}
	}
	if _, err := c.LogConfig(); err != nil {
		return err
	}
	return nil
}

// Mode returns the configured keyboard mode.
func (c Config) Mode() (layout.Mode, error) {
	if m, ok := layout.ParseMode(strings.ToUpper(c.Keyboard.Type)); ok {
		return m, nil
	}
	if n, err := strconv.Atoi(c.Keyboard.Type); err == nil && layout.Mode(n).Valid() {
		return layout.Mode(n), nil
	}
	return 0, &ValidationError{Setting: "keyboard.type", Value: c.Keyboard.Type, Message: "unknown keyboard type"}
}

// NumberType returns the configured plate scheme.
func (c Config) NumberType() (plate.Type, error) {
	if t, ok := plate.ParseType(strings.ToUpper(c.Plate.NumberType)); ok {
		return t, nil
	}
	if n, err := strconv.Atoi(c.Plate.NumberType); err == nil {
		return plate.Type(n), nil
	}
	return 0, &ValidationError{Setting: "plate.number_type", Value: c.Plate.NumberType, Message: "unknown plate type"}
}

// LogConfig converts the logging section.
func (c Config) LogConfig() (logging.Config, error) {
	out := logging.DefaultConfig()

	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return out, &ValidationError{Setting: "logging.level", Value: c.Logging.Level, Message: err.Error()}
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return out, &ValidationError{Setting: "logging.format", Value: c.Logging.Format, Message: err.Error()}
	}
	out.Level = level
	out.Format = format
	return out, nil
}

// Logger builds the configured logger. Validate must have succeeded.
func (c Config) Logger() *slog.Logger {
	lc, err := c.LogConfig()
	if err != nil {
		return logging.New(logging.DefaultConfig())
	}
	return logging.New(lc)
}
