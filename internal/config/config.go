// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied by Load.
const (
	DefaultBaseURL          = "https://api.themoviedb.org"
	DefaultAPIVersion       = 3
	DefaultLogLevel         = "info"
	DefaultBatchConcurrency = 4
)

// APIKeyEnv is read when no config file is available.
const APIKeyEnv = "TMDB_API_KEY"

// Config is the root configuration structure.
type Config struct {
	TMDB  TMDBConfig  `toml:"tmdb"`
	Log   LogConfig   `toml:"log"`
	Batch BatchConfig `toml:"batch"`
}

type TMDBConfig struct {
	APIKey     string        `toml:"api_key"`
	BaseURL    string        `toml:"base_url"`
	APIVersion int           `toml:"api_version"`
	Timeout    time.Duration `toml:"timeout,omitempty"` // 0 keeps the transport default
}

type LogConfig struct {
	Level string `toml:"level"`
}

type BatchConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Load reads, parses and validates the configuration file.
// Returns *Error for unresolved environment variables or validation failures.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, skipping validation.
// It also returns the unresolved environment references so callers that apply
// overrides can report the ones still in effect (see Unresolved).
func LoadWithoutValidation(path string) (*Config, []string, error) {
	return load(path)
}

// Unresolved filters missing (as returned by LoadWithoutValidation) down to the
// variables still referenced by a field. An override that replaced the field
// clears the reference.
func (c *Config) Unresolved(missing []string) []string {
	fields := []string{c.TMDB.APIKey, c.TMDB.BaseURL, c.Log.Level}

	var out []string
	for _, m := range missing {
		name, _, _ := strings.Cut(m, ":")
		for _, f := range fields {
			if strings.Contains(f, "${"+name+"}") || strings.Contains(f, "${"+name+":") {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// FromEnv builds a configuration from TMDB_API_KEY and defaults.
func FromEnv() *Config {
	cfg := &Config{TMDB: TMDBConfig{APIKey: os.Getenv(APIKeyEnv)}}
	cfg.applyDefaults()
	return cfg
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = DefaultBaseURL
	}
	if c.TMDB.APIVersion == 0 {
		c.TMDB.APIVersion = DefaultAPIVersion
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = DefaultBatchConcurrency
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} references with environment values.
// Unresolved references are left in place and reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]

		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})

	return result, missing
}
