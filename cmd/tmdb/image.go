package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

func newImageCmd(opts *options) *cobra.Command {
	var imageType string

	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Resolve an image path from an API response to a full URL",
		Example: `  tmdb image /pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg
  tmdb image --type backdrop /hZkgoQYus5vegHoetLkCJzb17zJ.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := tmdb.ImageType(imageType)
			switch t {
			case tmdb.Poster, tmdb.Backdrop, tmdb.Profile:
			default:
				return fmt.Errorf("invalid --type %q: must be poster, backdrop or profile", imageType)
			}

			client, _, err := opts.newClient(cmd, true)
			if err != nil {
				return err
			}
			if err := client.BootstrapErr(); err != nil {
				return fmt.Errorf("fetch image configuration: %w", describeError(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), client.ImagePath(args[0], t))
			return nil
		},
	}
	cmd.Flags().StringVar(&imageType, "type", string(tmdb.Poster), "Image type: poster, backdrop, profile")
	return cmd
}
