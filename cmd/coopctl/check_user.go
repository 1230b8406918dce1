package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type checkUserResult struct {
	Exists bool `json:"exists"`
	User   *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user,omitempty"`
	Profile *struct {
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		IDNumber  *string `json:"id_number"`
		Phone     *string `json:"phone"`
		Address   *string `json:"address"`
	} `json:"profile"`
	Roles []string `json:"roles"`
}

func newCheckUserCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-user <email>",
		Short: "Look up an account, its profile and its roles by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var res checkUserResult
			if err := callFunction(ctx, opts, "check-user", map[string]string{"email": args[0]}, &res); err != nil {
				return err
			}

			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), res)
			}

			out := cmd.OutOrStdout()
			if !res.Exists {
				_, err := fmt.Fprintf(out, "%s: not found\n", args[0])
				return err
			}

			fmt.Fprintf(out, "id:      %s\n", res.User.ID)
			fmt.Fprintf(out, "email:   %s\n", res.User.Email)
			if res.Profile != nil {
				fmt.Fprintf(out, "name:    %s\n", strings.TrimSpace(res.Profile.FirstName+" "+res.Profile.LastName))
			} else {
				fmt.Fprintln(out, "name:    (no profile)")
			}
			roles := strings.Join(res.Roles, ", ")
			if roles == "" {
				roles = "(none)"
			}
			_, err := fmt.Fprintf(out, "roles:   %s\n", roles)
			return err
		},
	}
}
