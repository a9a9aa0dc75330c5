package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathEnv names a config file explicitly and turns off the search.
const PathEnv = "TMDB_CONFIG"

// ErrNotFound is returned by Discover when none of the candidate files exist.
var ErrNotFound = errors.New("config not found")

// DefaultPath is where `tmdb config init` writes without an explicit path:
// $XDG_CONFIG_HOME/tmdb/config.toml, with ~/.config standing in for an unset XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "tmdb.toml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tmdb", "config.toml")
}

// SearchPaths lists the files Discover tries, most specific first.
func SearchPaths() []string {
	return []string{
		"tmdb.toml",
		DefaultPath(),
		"/etc/tmdb/config.toml",
	}
}

// Discover returns the config file to use. A set TMDB_CONFIG must point at
// an existing file; otherwise the first regular file from SearchPaths wins.
func Discover() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s: %w", PathEnv, err)
		}
		return p, nil
	}

	candidates := SearchPaths()
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (searched %s)", ErrNotFound, strings.Join(candidates, ", "))
}
