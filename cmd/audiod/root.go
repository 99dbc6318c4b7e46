package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"audiod/internal/config"
	"audiod/internal/engine"
	"audiod/internal/manager"
	"audiod/internal/registry"
)

// app carries state shared by all subcommands.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string
	strict    bool

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "audiod",
		Short:         "Audio event lifecycle daemon with swappable backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", envStr("AUDIOD_CONFIG", ""), "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envStr("AUDIOD_LOG_LEVEL", ""), "Log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format: console|json")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "Panic on event manager contract violations instead of logging and skipping")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd.ErrOrStderr())
	}

	root.AddCommand(
		a.serveCmd(),
		a.simulateCmd(),
		a.overlayCmd(),
		a.backendsCmd(),
	)
	return root
}

// setup loads the config and builds the logger.
func (a *app) setup(logOut io.Writer) error {
	if a.cfgPath != "" {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	a.cfg.ApplyDefaults()
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log, err := newLogger(logOut, a.cfg.LogLevel, a.logFormat)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	switch format {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// buildEngine wires the trigger registry, backend and manager from the config.
func (a *app) buildEngine(log zerolog.Logger, pub manager.EventPublisher) (*engine.Engine, error) {
	reg, err := registry.New(a.cfg.Triggers)
	if err != nil {
		return nil, fmt.Errorf("triggers: %w", err)
	}
	var onViolation func(*manager.ContractViolation)
	if !a.strict {
		// The manager already logged it; returning skips the offending call.
		onViolation = func(*manager.ContractViolation) {}
	}
	return engine.New(engine.Config{
		Backend:       a.cfg.Backend,
		PoolSize:      a.cfg.PoolSize,
		FrameInterval: time.Duration(a.cfg.FrameIntervalMS) * time.Millisecond,
		AudibleRange:  a.cfg.AudibleRange,
		Listener:      a.cfg.Listener,
		Objects:       a.cfg.Objects,
		Triggers:      reg,
		Output:        manager.ImplOptions{SampleRate: a.cfg.Oto.SampleRate, Channels: a.cfg.Oto.Channels},
		Logger:        &log,
		Publisher:     pub,
		OnViolation:   onViolation,
	})
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
