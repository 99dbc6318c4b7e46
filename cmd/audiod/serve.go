package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"audiod/internal/httpapi"
	"audiod/internal/telemetry"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		addr           string
		corsOrigins    string
		maxBody        int64
		commandTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine loop and the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, corsOrigins, maxBody, commandTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envStr("AUDIOD_ADDR", ""), "HTTP listen address, e.g. :8080 (overrides config)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins (empty disables CORS)")
	cmd.Flags().Int64Var(&maxBody, "max-body-bytes", 0, "Maximum JSON request body size (0 = default)")
	cmd.Flags().DurationVar(&commandTimeout, "command-timeout", 5*time.Second, "How long API commands wait for the engine loop (0 disables)")
	return cmd
}

func (a *app) serve(ctx context.Context, corsOrigins string, maxBody int64, commandTimeout time.Duration) error {
	pub := telemetry.NewPublisher(prometheus.DefaultRegisterer)
	eng, err := a.buildEngine(a.log, pub)
	if err != nil {
		return err
	}

	httpapi.SetLogger(a.log.With().Str("component", "http").Logger())
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(maxBody)
	httpapi.SetCommandTimeout(commandTimeout)
	if origins := splitCSV(corsOrigins); len(origins) > 0 {
		httpapi.SetCORSOptions(true, origins,
			[]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			[]string{"Content-Type", "X-Log-Level"})
	}

	engineCtx, stopEngine := context.WithCancel(ctx)
	defer stopEngine()
	engineDone := make(chan error, 1)
	go func() { engineDone <- eng.Run(engineCtx) }()

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(eng),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Str("backend", a.cfg.Backend).Msg("audiod listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		a.log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		a.log.Warn().Err(serr).Msg("graceful shutdown error")
	}
	stopEngine()
	if eerr := <-engineDone; eerr != nil {
		a.log.Error().Err(eerr).Msg("engine teardown reported leaked events")
		err = errors.Join(err, eerr)
	}
	a.log.Info().Msg("audiod stopped")
	return err
}
