package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// parseID parses a positive TMDB identifier.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func newObjectCmd(opts *options, object, short string) *cobra.Command {
	var part string

	cmd := &cobra.Command{
		Use:     object + " <id>",
		Short:   short,
		Example: fmt.Sprintf("  tmdb %s 550\n  tmdb %s 550 --part images", object, object),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			res, err := client.Object(cmd.Context(), object, id, part)
			if err != nil {
				return describeError(err)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&part, "part", "", "Sub-resource to fetch (credits, images, ...)")
	return cmd
}

func newCollectionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "collection <id>",
		Short: "Fetch a collection of movies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			res, err := client.Collection(cmd.Context(), id)
			if err != nil {
				return describeError(err)
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}
