package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <movie-id> <rating>",
		Short: "Rate a movie (1-10)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid rating %q: must be a number", args[1])
			}

			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			res, err := client.AddRating(cmd.Context(), id, rating)
			if err != nil {
				return describeError(err)
			}
			if opts.jsonOutput {
				return printResult(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rated movie %d: %s\n", id, strconv.FormatFloat(rating, 'f', -1, 64))
			return nil
		},
	}
}
