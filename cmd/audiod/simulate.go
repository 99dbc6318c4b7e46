package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"audiod/internal/manager"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		frames   int
		dt       time.Duration
		switchAt int
		switchTo string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step the engine headless for a fixed number of frames and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 0 {
				return fmt.Errorf("--frames must be >= 0")
			}
			if dt <= 0 {
				return fmt.Errorf("--dt must be > 0")
			}
			pub := manager.NewMemoryPublisher()
			eng, err := a.buildEngine(a.log, pub)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for f := 0; f < frames; f++ {
				if f == switchAt {
					res, err := eng.SwitchBackend(switchTo)
					if err != nil {
						_ = eng.Shutdown()
						return fmt.Errorf("switch at frame %d: %w", f, err)
					}
					fmt.Fprintf(out, "frame %d: switched %s -> %s (released %d, refired %d)\n",
						f, orNone(res.Previous), res.Current, res.Released, res.Refired)
				}
				eng.Step(dt)
			}

			st := eng.Status()
			fmt.Fprintf(out, "frames:      %d\n", st.Frames)
			fmt.Fprintf(out, "backend:     %s\n", orNone(st.Backend))
			fmt.Fprintf(out, "live:        %d\n", st.Constructed)
			fmt.Fprintf(out, "constructed: %d\n", st.ConstructedTotal)
			fmt.Fprintf(out, "destructed:  %d\n", st.DestructedTotal)
			fmt.Fprintf(out, "switches:    %d\n", st.SwitchesTotal)
			fmt.Fprintf(out, "violations:  %d\n", st.ViolationsTotal)
			fmt.Fprintf(out, "notices:     %d\n", len(pub.Notifications()))
			return eng.Shutdown()
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 600, "Number of frames to step")
	cmd.Flags().DurationVar(&dt, "dt", 16*time.Millisecond, "Simulated time per frame")
	cmd.Flags().IntVar(&switchAt, "switch-at", -1, "Frame at which to switch backends (-1 disables)")
	cmd.Flags().StringVar(&switchTo, "switch-to", "null", "Backend to switch to at --switch-at")
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
