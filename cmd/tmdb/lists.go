package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

type listFunc func(*tmdb.Client, context.Context) (*tmdb.Result, error)

func newListCmd(opts *options, use, short string, fetch listFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			res, err := fetch(client, cmd.Context())
			if err != nil {
				return describeError(err)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}
