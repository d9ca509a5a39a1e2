// Package main is the entry point for the Vellum terminal viewer, a thin
// shell over the document core: it feeds keystrokes and mouse gestures into
// the controller and paints whatever the layout engine hands back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/document"
	"github.com/vellum-editor/vellum/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	log := document.NewLogger(document.LoggerConfig{
		Level:  document.ParseLogLevel(opts.LogLevel),
		Output: os.Stderr,
		Prefix: "vellum",
	})
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = document.NewLogger(document.LoggerConfig{
			Level:  document.ParseLogLevel(opts.LogLevel),
			Output: f,
			Prefix: "vellum",
		})
	}

	var content string
	path := flag.Arg(0)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", path, err)
			return 1
		}
		content = string(data)
	}

	engOpts := []engine.Option{
		engine.WithContent(content),
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndoEntries),
	}
	if opts.ReadOnly {
		engOpts = append(engOpts, engine.WithReadOnly(true))
	}
	eng := engine.New(engOpts...)

	viewer, err := newViewer(eng, cfg, log, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer viewer.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		viewer.Shutdown()
	}()

	if err := viewer.Run(); err != nil {
		if errors.Is(err, errQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Options holds command-line settings.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogPath    string
	ReadOnly   bool
}

func parseFlags() Options {
	var opts Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogPath, "log-file", "", "Write logs to file instead of stderr")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open the file read-only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open the file read-only (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vellum - paginated document viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vellum [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  type to insert, backspace to delete\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Z / Ctrl+Y   undo / redo\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+A            select all\n")
		fmt.Fprintf(os.Stderr, "  PgUp / PgDn       scroll\n")
		fmt.Fprintf(os.Stderr, "  Esc               clear selection\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q            quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("Vellum %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.LogLevel)
		os.Exit(2)
	}

	return opts
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vellum.toml"
	}
	return home + "/.config/vellum/vellum.toml"
}
