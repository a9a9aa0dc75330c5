package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

func newBatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <movie-id> <part>...",
		Short: "Fetch a movie and several of its parts at once",
		Long: `Fetch a movie and several of its parts at once.

Output is keyed by "core" and each part. A part that fails is reported
under its key as {"error": ...}; the other parts are still returned.

Examples:
  tmdb batch 550 credits images videos`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, _, err := opts.newClient(cmd, false)
			if err != nil {
				return err
			}

			batch := client.MovieBatch(cmd.Context(), id, args[1:])
			if err := printJSON(cmd.OutOrStdout(), batchOutput(batch)); err != nil {
				return err
			}
			if failed := batch.Failed(); len(failed) == len(batch) {
				return fmt.Errorf("all %d requests failed: %w", len(failed), batch.Err())
			}
			return nil
		},
	}
}

func batchOutput(batch tmdb.Batch) map[string]any {
	out := make(map[string]any, len(batch))
	for key, part := range batch {
		if part.Err != nil {
			out[key] = map[string]string{"error": describeError(part.Err).Error()}
			continue
		}
		out[key] = part.Result.Value
	}
	return out
}
