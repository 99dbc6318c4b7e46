package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"audiod/internal/common/fsutil"
	"audiod/internal/overlay"
)

func (a *app) overlayCmd() *cobra.Command {
	var (
		logFile  string
		search   string
		distance float64
	)
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Run the engine with a live terminal view of the tracked events",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The overlay owns the terminal; logs go to a file or nowhere.
			log := zerolog.Nop()
			if logFile != "" {
				f, err := fsutil.OpenAppend(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				log = zerolog.New(f).Level(a.log.GetLevel()).With().Timestamp().Logger()
			}
			if !cmd.Flags().Changed("filter") {
				search = a.cfg.DebugFilter
			}
			if !cmd.Flags().Changed("distance") {
				distance = a.cfg.DebugDistance
			}

			eng, err := a.buildEngine(log, nil)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			done := make(chan error, 1)
			go func() { done <- eng.Run(ctx) }()

			uiErr := overlay.Run(eng, search, distance)
			cancel()
			return errors.Join(uiErr, <-done)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the overlay is shown")
	cmd.Flags().StringVar(&search, "filter", "", "Only show events whose trigger contains this text (default from config)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Only show events closer than this to the listener, 0 = all (default from config)")
	return cmd
}
