package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiod/internal/manager"
)

func (a *app) backendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the backends known to this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range manager.BackendNames() {
				mark := "available"
				if !manager.BackendAvailable(name) {
					mark = "not built (rebuild with -tags " + name + ")"
				}
				if name == a.cfg.Backend {
					mark += ", configured"
				}
				fmt.Fprintf(out, "%-6s %s\n", name, mark)
			}
			return nil
		},
	}
}
