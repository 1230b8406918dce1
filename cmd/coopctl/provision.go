package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"transitcoop/internal/provisioning"

	"github.com/spf13/cobra"
)

func newProvisionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create or complete the demo account for every role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			client := provisioning.NewClient(functionURL(opts.host, "create-test-users"), opts.serviceKey, nil)
			out, err := provisioning.Run(ctx, client)
			if err != nil {
				return fmt.Errorf("%s: %w", out.Notification.Message, err)
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tSTATUS\tMESSAGE\tPASSWORD")
			for _, r := range out.Response.Results {
				password := ""
				if r.Credentials != nil {
					password = r.Credentials.Password
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Email, r.Status, r.Message, password)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			c := out.Counts
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s\n", out.Notification.Title, out.Notification.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "total %d, created %d, updated %d, existing %d, errors %d\n",
				c.Total, c.Created, c.Updated, c.Existing, c.Errors)
			return nil
		},
	}
}
