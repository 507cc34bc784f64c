package main

import (
	"github.com/spf13/cobra"
)

func newUsersCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect the account behind the API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:               "me",
		Short:             "Show the current user and remaining credits",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := cli.Users().Me(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	})

	return cmd
}
