// Package main is the entry point for the platekb command.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/invopop/jsonschema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dshills/platekb/internal/config"
	"github.com/dshills/platekb/internal/keyboard"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/request"
	"github.com/dshills/platekb/internal/metrics"
	"github.com/dshills/platekb/internal/plate"
	"github.com/dshills/platekb/internal/script"
	"github.com/dshills/platekb/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	requestPath string
	keyboard    string
	index       int
	number      string
	numberType  string
	format      string
	scriptPath  string
	watch       bool
	schema      bool
	metrics     bool
	showVersion bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "platekb %s (engine %s)\n", version, keyboard.Version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.schema {
		if err := writeSchema(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.scriptPath != "" {
		cfg.Script.Path = opts.scriptPath
	}
	if opts.metrics {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := cfg.Logger()

	reg := prometheus.NewRegistry()
	resolverOpts := []keyboard.Option{keyboard.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		resolverOpts = append(resolverOpts, keyboard.WithMetrics(metrics.New(reg)))
	}
	if cfg.Script.Path != "" {
		s, err := script.Load(cfg.Script.Path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer s.Close()
		resolverOpts = append(resolverOpts, keyboard.WithMixer(s.Step()))
	}
	r := keyboard.New(resolverOpts...)

	p := printer{out: stdout, format: outputFormat(cfg.Output.Format, stdout)}

	code := 0
	if opts.watch {
		code = watchRequest(r, p, opts.requestPath, logger, stderr)
	} else {
		o, err := buildOptions(opts, cfg, stdin)
		if err != nil {
			p.printError(err, stderr)
			code = 1
		} else if !resolveAndPrint(r, p, o, stderr) {
			code = 1
		}
	}

	if cfg.Metrics.Enabled {
		if err := dumpMetrics(reg, stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return code
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("platekb", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.requestPath, "request", "", "JSON request file, or - for stdin")
	fs.StringVar(&opts.requestPath, "r", "", "JSON request file (shorthand)")
	fs.StringVar(&opts.keyboard, "type", "", "Keyboard type (FULL, CIVIL, CIVIL_SPEC or 0-2)")
	fs.IntVar(&opts.index, "index", 0, "Cursor index")
	fs.StringVar(&opts.number, "number", "", "Plate number entered so far")
	fs.StringVar(&opts.numberType, "number-type", "", "Plate type name or number (default from config)")
	fs.StringVar(&opts.format, "format", "", "Output format (auto, json, text)")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua restriction script")
	fs.BoolVar(&opts.watch, "watch", false, "Re-resolve whenever the request file changes")
	fs.BoolVar(&opts.schema, "schema", false, "Print the JSON schema of request documents")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print resolution metrics to stderr on exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "platekb - license plate keyboard resolver\n\n")
		fmt.Fprintf(stderr, "Usage: platekb [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  platekb -type CIVIL -index 1 -number 粤\n")
		fmt.Fprintf(stderr, "  platekb -request req.json -format json\n")
		fmt.Fprintf(stderr, "  platekb -request req.json -watch\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.watch && (opts.requestPath == "" || opts.requestPath == "-") {
		fmt.Fprintln(stderr, "Error: -watch requires -request with a file path")
		return opts, errors.New("invalid flags")
	}
	return opts, nil
}

// buildOptions reads the request document when one is given, otherwise
// assembles the request from flags and configuration.
func buildOptions(opts options, cfg config.Config, stdin io.Reader) (keyboard.Options, error) {
	if opts.requestPath != "" {
		data, err := readRequest(opts.requestPath, stdin)
		if err != nil {
			return keyboard.Options{}, err
		}
		return request.Decode(data)
	}

	mode, err := cfg.Mode()
	if err != nil {
		return keyboard.Options{}, err
	}
	if opts.keyboard != "" {
		if mode, err = parseMode(opts.keyboard); err != nil {
			return keyboard.Options{}, err
		}
	}

	numberType, err := cfg.NumberType()
	if err != nil {
		return keyboard.Options{}, err
	}
	if opts.numberType != "" {
		if numberType, err = parseNumberType(opts.numberType); err != nil {
			return keyboard.Options{}, err
		}
	}

	return keyboard.Options{
		KeyboardType: mode,
		CursorIndex:  opts.index,
		PresetNumber: opts.number,
		NumberType:   numberType,
	}, nil
}

func readRequest(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func parseMode(s string) (layout.Mode, error) {
	if m, ok := layout.ParseMode(strings.ToUpper(s)); ok {
		return m, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, keyboard.TypeError("keyboardType", s, "must be a keyboard type name or integer")
	}
	return layout.Mode(n), nil
}

func parseNumberType(s string) (plate.Type, error) {
	if t, ok := plate.ParseType(strings.ToUpper(s)); ok {
		return t, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, keyboard.TypeError("numberType", s, "must be a plate type name or integer")
	}
	return plate.Type(n), nil
}

func resolveAndPrint(r *keyboard.Resolver, p printer, o keyboard.Options, stderr io.Writer) bool {
	l, err := r.Resolve(o)
	if err != nil {
		p.printError(err, stderr)
		return false
	}
	if err := p.printLayout(l); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return false
	}
	return true
}

// watchRequest resolves the request file once and again after every change
// until interrupted.
func watchRequest(r *keyboard.Resolver, p printer, path string, logger *slog.Logger, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create watcher: %v\n", err)
		return 1
	}
	if err := w.Watch(path); err != nil {
		w.Close()
		fmt.Fprintf(stderr, "Error: failed to watch %s: %v\n", path, err)
		return 1
	}

	resolveFile := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("reading request failed", "path", path, "error", err)
			return
		}
		o, err := request.Decode(data)
		if err != nil {
			p.printError(err, stderr)
			return
		}
		resolveAndPrint(r, p, o, stderr)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resolveFile()
		return w.Run(ctx, func(ev watcher.Event) {
			logger.Debug("request changed", "path", ev.Path, "op", ev.Op.String())
			if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
				return
			}
			resolveFile()
		})
	})
	g.Go(func() error {
		<-ctx.Done()
		return w.Close()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, watcher.ErrWatcherClosed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func writeSchema(w io.Writer) error {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(keyboard.Options))
	s.Title = "platekb request"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// outputFormat resolves auto to text on a terminal and JSON otherwise.
func outputFormat(format string, out io.Writer) string {
	if format != config.OutputAuto {
		return format
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return config.OutputText
	}
	return config.OutputJSON
}
