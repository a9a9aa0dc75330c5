package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/internal/config"
	"github.com/vmunix/tmdbv3/pkg/tmdb"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	apiKey     string
	baseURL    string
	timeout    time.Duration
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tmdb",
		Short: "Command-line client for The Movie Database API",
		Long: `tmdb - command-line client for The Movie Database API v3

Search movies and people, fetch movie, person, company and collection
details, rate movies and resolve image URLs.

The API key is read from the config file (see 'tmdb config init'),
the --api-key flag, or the TMDB_API_KEY environment variable.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: discovered)")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "TMDB API key (overrides config)")
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (0 = none)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	root.Version = version
	root.SetVersionTemplate("tmdb {{.Version}}\n")

	root.AddCommand(
		newSearchCmd(opts),
		newMatchCmd(opts),
		newObjectCmd(opts, "movie", "Fetch a movie or one of its parts"),
		newObjectCmd(opts, "person", "Fetch a person or one of their parts"),
		newObjectCmd(opts, "company", "Fetch a company or one of its parts"),
		newCollectionCmd(opts),
		newBatchCmd(opts),
		newRateCmd(opts),
		newListCmd(opts, "latest", "Fetch the most recently added movie", (*tmdb.Client).LatestMovie),
		newListCmd(opts, "playing", "Fetch movies now playing", (*tmdb.Client).PlayingMovies),
		newListCmd(opts, "top-rated", "Fetch the top rated movies", (*tmdb.Client).TopRatedMovies),
		newListCmd(opts, "popular", "Fetch the most popular movies", (*tmdb.Client).PopularMovies),
		newImageCmd(opts),
		newConfigCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "tmdb %s\n", version)
			},
		},
	)
	return root
}

// loadConfig resolves configuration from --config, discovery, or the environment,
// then applies flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg     *config.Config
		missing []string
	)

	path := o.configPath
	if path == "" {
		found, err := config.Discover()
		switch {
		case err == nil:
			path = found
		case errors.Is(err, config.ErrNotFound):
			cfg = config.FromEnv()
		default:
			return nil, err
		}
	}

	if cfg == nil {
		// Flags may supply what the file leaves out, so validate after overrides.
		loaded, unset, err := config.LoadWithoutValidation(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg, missing = loaded, unset
	}

	o.applyOverrides(cfg)

	cfgErr := &config.Error{Path: path, Missing: cfg.Unresolved(missing), Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

func (o *options) applyOverrides(cfg *config.Config) {
	if o.apiKey != "" {
		cfg.TMDB.APIKey = o.apiKey
	}
	if o.baseURL != "" {
		cfg.TMDB.BaseURL = o.baseURL
	}
	if o.timeout != 0 {
		cfg.TMDB.Timeout = o.timeout
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

// newClient builds a client from the resolved configuration.
// bootstrap controls the /configuration fetch, needed only for image paths.
func (o *options) newClient(cmd *cobra.Command, bootstrap bool) (*tmdb.Client, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	clientOpts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithAPIVersion(cfg.TMDB.APIVersion),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithBatchConcurrency(cfg.Batch.Concurrency),
		tmdb.WithLogger(logger),
	}
	if !bootstrap {
		clientOpts = append(clientOpts, tmdb.WithoutBootstrap())
	}

	return tmdb.New(cmd.Context(), cfg.TMDB.APIKey, clientOpts...), cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}
