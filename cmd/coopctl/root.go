package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	host       string
	serviceKey string
	output     string
	timeout    time.Duration
}

func execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "coopctl",
		Short:         "Transit cooperative maintenance CLI",
		Long:          "Runs provisioning, account lookups, assignment resets and migrations against a cooperative deployment.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// flag > env > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("COOP_HOST"); v != "" {
					opts.host = v
				}
			}
			if !cmd.Flags().Changed("service-key") {
				if v := os.Getenv("SERVICE_KEY"); v != "" {
					opts.serviceKey = v
				}
			}
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("unsupported output %q (use table or json)", opts.output)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVar(&opts.serviceKey, "service-key", "", "Service key for the function endpoints")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Request timeout")

	rootCmd.AddCommand(
		newProvisionCmd(opts),
		newCheckUserCmd(opts),
		newResetAssignmentsCmd(opts),
		newMigrateCmd(),
		newVersionCmd(opts),
	)

	return rootCmd
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "coopctl version %s\n", version)
			return err
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
