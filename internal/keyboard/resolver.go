package keyboard

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/mixer"
	"github.com/dshills/platekb/internal/keyboard/provider"
	"github.com/dshills/platekb/internal/keyboard/registry"
	"github.com/dshills/platekb/internal/metrics"
	"github.com/dshills/platekb/internal/plate"
)

// Version is the engine version.
const Version = "1.0.0"

// Resolver resolves keyboard layouts. It is immutable and safe for
// concurrent use.
type Resolver struct {
	layouts *provider.LayoutChain
	keys    *provider.KeyChain
	mixers  *mixer.Pipeline
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = registry.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	layouts := provider.NewLayoutChain(cfg.registry)
	if len(cfg.layoutRules) > 0 {
		layouts = layouts.Prepend(cfg.layoutRules...)
	}
	keys := provider.NewKeyChain(cfg.registry)
	if len(cfg.keyRules) > 0 {
		keys = keys.Prepend(cfg.keyRules...)
	}
	mixers := mixer.Default()
	if len(cfg.mixers) > 0 {
		mixers = mixers.InsertBefore(mixer.StepFlatten, cfg.mixers...)
	}

	return &Resolver{
		layouts: layouts,
		keys:    keys,
		mixers:  mixers,
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
}

var defaultResolver = sync.OnceValue(func() *Resolver { return New() })

// Resolve resolves opts with the default Resolver.
func Resolve(opts Options) (layout.Layout, error) {
	return defaultResolver().Resolve(opts)
}

// DetectNumberType returns the effective plate type for number and the
// requested type.
func (r *Resolver) DetectNumberType(number string, requested plate.Type) plate.Type {
	return plate.EffectiveType(number, requested)
}

// Resolve validates opts and returns the keyboard layout for the cursor
// position. Validation failures wrap ErrInvalidRange and no layout is
// produced.
func (r *Resolver) Resolve(opts Options) (layout.Layout, error) {
	start := time.Now()

	l, err := r.resolve(opts)
	if err != nil {
		r.metrics.IncrementFailure(KindOf(err))
		r.logger.Warn("keyboard resolution failed",
			"keyboard_type", int(opts.KeyboardType),
			"cursor_index", opts.CursorIndex,
			"number_type", int(opts.NumberType),
			"error", err)
		return layout.Layout{}, err
	}

	r.metrics.IncrementResolution(l.KeyboardType.String(), l.NumberType.String())
	r.metrics.ObserveResolveLatency(time.Since(start))
	return l, nil
}

func (r *Resolver) resolve(opts Options) (layout.Layout, error) {
	if !opts.KeyboardType.Valid() {
		return layout.Layout{}, RangeError("keyboardType", int(opts.KeyboardType),
			"must be between %d and %d", layout.ModeFull, layout.ModeCivilSpecial)
	}
	if opts.CursorIndex < 0 {
		return layout.Layout{}, RangeError("cursorIndex", opts.CursorIndex, "must not be negative")
	}

	detected := plate.Classify(opts.PresetNumber)
	effective := plate.EffectiveType(opts.PresetNumber, opts.NumberType)
	limit := effective.LengthLimit()
	length := plate.Len(opts.PresetNumber)
	index := min(opts.CursorIndex, limit-1)

	if length > limit {
		return layout.Layout{}, RangeError("presetNumber", opts.PresetNumber,
			"%d characters exceeds the %s limit of %d", length, effective, limit)
	}

	args := layout.Args{
		Index:      index,
		Number:     opts.PresetNumber,
		Mode:       opts.KeyboardType,
		NumberType: effective,
	}

	base, layoutRule := r.layouts.Trace(args)
	keys, keyRule := r.keys.Trace(args)
	args = args.WithKeys(keys)

	r.metrics.IncrementRule("layout", layoutRule)
	r.metrics.IncrementRule("keys", keyRule)

	out, err := r.mixers.Process(base, args)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("composing layout: %w", err)
	}

	out.Index = index
	out.KeyboardType = opts.KeyboardType
	out.PresetNumber = opts.PresetNumber
	out.NumberType = effective
	out.PresetNumberType = effective
	out.DetectedNumberType = detected
	out.NumberLength = length
	out.NumberLimitLength = limit

	r.logger.Debug("keyboard resolved",
		"index", index,
		"keyboard_type", opts.KeyboardType.String(),
		"number_type", effective.String(),
		"detected_type", detected.String(),
		"layout_rule", layoutRule,
		"key_rule", keyRule,
		"enabled", countEnabled(out))

	return out, nil
}

func countEnabled(l layout.Layout) int {
	n := 0
	for _, k := range l.Keys {
		if k.Enabled {
			n++
		}
	}
	return n
}
