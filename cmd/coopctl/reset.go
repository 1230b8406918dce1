package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type resetResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

func newResetAssignmentsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-assignments",
		Short: "Clear today's driver and official bus assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var res resetResult
			if err := callFunction(ctx, opts, "reset-bus-assignments", nil, &res); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("reset-bus-assignments: %s", res.Error)
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), res)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", res.Message, res.Timestamp)
			return err
		},
	}
}
