package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/tmdbv3/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	testCmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates tmdb.toml syntax, required fields, and environment variable substitution.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPathArg(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Validating %s...\n\n", path)

			cfg, err := config.Load(path)
			if err != nil {
				var configErr *config.Error
				if errors.As(err, &configErr) {
					printConfigErrors(out, configErr)
					return errors.New("configuration invalid")
				}
				return fmt.Errorf("failed to load config: %w", err)
			}

			printConfigSummary(out, cfg)
			fmt.Fprintln(out, "\nConfiguration valid!")
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example configuration file",
		Long: `Write a configuration file.

Without --api-key the commented example is written; it reads the key from
TMDB_API_KEY. With --api-key the resolved settings, including any
--base-url, --timeout and --log-level, are written as literal values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}

			var err error
			if opts.apiKey == "" {
				err = config.WriteDefault(path, force)
			} else {
				cfg := config.FromEnv()
				opts.applyOverrides(cfg)
				if errs := cfg.Validate(); len(errs) > 0 {
					return &config.Error{Errors: errs}
				}
				err = cfg.Write(path, force)
			}
			if errors.Is(err, config.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(testCmd, initCmd)
	return cmd
}

func configPathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return config.Discover()
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	timeout := "transport default"
	if cfg.TMDB.Timeout > 0 {
		timeout = cfg.TMDB.Timeout.String()
	}

	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  API:        %s/%d\n", cfg.TMDB.BaseURL, cfg.TMDB.APIVersion)
	fmt.Fprintf(w, "  API key:    %s\n", maskKey(cfg.TMDB.APIKey))
	fmt.Fprintf(w, "  Timeout:    %s\n", timeout)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  Batch:      %d concurrent requests\n", cfg.Batch.Concurrency)
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
