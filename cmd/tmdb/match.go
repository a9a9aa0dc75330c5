package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/internal/match"
)

func newMatchCmd(opts *options) *cobra.Command {
	var (
		year   int
		person bool
	)

	cmd := &cobra.Command{
		Use:   "match <title>...",
		Short: "Find the best matching movie (or person) for a title",
		Long: `Search and pick the closest result by normalized title similarity.

Examples:
  tmdb match "Leon The Professional"
  tmdb match --year 2021 Dune
  tmdb match --person "brad pit"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}

			query := match.NormalizeQuery(strings.Join(args, " "))
			search := client.SearchMovie
			if person {
				search = client.SearchPerson
			}
			res, err := search(cmd.Context(), query, searchExtra(0, 0))
			if err != nil {
				return describeError(err)
			}

			best := match.Best(query, year, match.Candidates(res.Map()))
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"id":         best.Candidate.ID,
					"title":      best.Candidate.Title,
					"year":       best.Candidate.Year,
					"score":      best.Score,
					"confidence": best.Confidence.String(),
				})
			}

			if best.Confidence == match.ConfidenceNone {
				return fmt.Errorf("no confident match for %q", query)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s", best.Candidate.ID, best.Candidate.Title)
			if best.Candidate.Year > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d)", best.Candidate.Year)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s %.2f\n", best.Confidence, best.Score)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Preferred release year")
	cmd.Flags().BoolVar(&person, "person", false, "Match people instead of movies")
	return cmd
}
