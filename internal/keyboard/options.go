package keyboard

import (
	"log/slog"

	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/mixer"
	"github.com/dshills/platekb/internal/keyboard/provider"
	"github.com/dshills/platekb/internal/keyboard/registry"
	"github.com/dshills/platekb/internal/metrics"
	"github.com/dshills/platekb/internal/plate"
)

// Options is one resolution request.
type Options struct {
	// KeyboardType is the keyboard mode.
	KeyboardType layout.Mode `json:"keyboardType" jsonschema:"enum=0,enum=1,enum=2"`

	// CursorIndex is the position being edited. Values past the end of the
	// plate are clamped to the last position.
	CursorIndex int `json:"cursorIndex" jsonschema:"minimum=0,description=Cursor position; request documents may name it currentIndex instead"`

	// PresetNumber is the plate number entered so far.
	PresetNumber string `json:"presetNumber" jsonschema:"maxLength=8"`

	// NumberType forces a plate scheme. plate.TypeAutoDetect infers it.
	NumberType plate.Type `json:"numberType" jsonschema:"minimum=-1,maximum=8"`
}

// Option configures a Resolver.
type Option func(*config)

type config struct {
	registry    *registry.Registry
	logger      *slog.Logger
	metrics     *metrics.Metrics
	layoutRules []provider.LayoutRule
	keyRules    []provider.KeyRule
	mixers      []mixer.Step
}

// WithRegistry sets the registry the built-in rules read from.
func WithRegistry(r *registry.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLayoutRule adds layout rules evaluated before the built-in rules.
func WithLayoutRule(rules ...provider.LayoutRule) Option {
	return func(c *config) {
		c.layoutRules = append(c.layoutRules, rules...)
	}
}

// WithKeyRule adds key-availability rules evaluated before the built-in rules.
func WithKeyRule(rules ...provider.KeyRule) Option {
	return func(c *config) {
		c.keyRules = append(c.keyRules, rules...)
	}
}

// WithMixer adds composition steps run after delete and confirm enablement
// and before flattening.
func WithMixer(steps ...mixer.Step) Option {
	return func(c *config) {
		c.mixers = append(c.mixers, steps...)
	}
}
