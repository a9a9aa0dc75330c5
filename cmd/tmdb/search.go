package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/internal/match"
	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

func newSearchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search movies or people",
	}

	var (
		page int
		year int
	)

	movieCmd := &cobra.Command{
		Use:   "movie <query>...",
		Short: "Search movies by title",
		Long: `Search movies by title.

Examples:
  tmdb search movie "Fight Club"
  tmdb search movie --year 1999 Fight Club`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			query := match.NormalizeQuery(strings.Join(args, " "))
			res, err := client.SearchMovie(cmd.Context(), query, searchExtra(page, year))
			if err != nil {
				return describeError(err)
			}
			if opts.jsonOutput {
				return printResult(cmd.OutOrStdout(), res)
			}
			printSearchHuman(cmd.OutOrStdout(), query, res, "title", "release_date")
			return nil
		},
	}
	movieCmd.Flags().IntVar(&page, "page", 0, "Result page")
	movieCmd.Flags().IntVar(&year, "year", 0, "Release year")

	personCmd := &cobra.Command{
		Use:   "person <query>...",
		Short: "Search people by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}
			query := match.NormalizeQuery(strings.Join(args, " "))
			res, err := client.SearchPerson(cmd.Context(), query, searchExtra(page, 0))
			if err != nil {
				return describeError(err)
			}
			if opts.jsonOutput {
				return printResult(cmd.OutOrStdout(), res)
			}
			printSearchHuman(cmd.OutOrStdout(), query, res, "name", "")
			return nil
		},
	}
	personCmd.Flags().IntVar(&page, "page", 0, "Result page")

	cmd.AddCommand(movieCmd, personCmd)
	return cmd
}

func searchExtra(page, year int) url.Values {
	extra := url.Values{}
	if page > 0 {
		extra.Set("page", strconv.Itoa(page))
	}
	if year > 0 {
		extra.Set("year", strconv.Itoa(year))
	}
	return extra
}

func printSearchHuman(w io.Writer, query string, res *tmdb.Result, titleKey, dateKey string) {
	items, _ := res.Map()["results"].([]any)
	if len(items) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}

	fmt.Fprintf(w, "Found %d results for %q:\n\n", len(items), query)
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id, _ := m["id"].(float64)
		title, _ := m[titleKey].(string)
		if dateKey == "" {
			fmt.Fprintf(w, "  %8d  %s\n", int64(id), title)
			continue
		}
		date, _ := m[dateKey].(string)
		fmt.Fprintf(w, "  %8d  %s  %s\n", int64(id), yearOf(date), title)
	}
}
