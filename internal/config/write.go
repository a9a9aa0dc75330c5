package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrExists is returned when a write would replace a file and force is off.
var ErrExists = errors.New("config file already exists")

//go:embed default_config.toml
var defaultConfig []byte

// WriteDefault writes the commented example config, which reads the key from TMDB_API_KEY.
func WriteDefault(path string, force bool) error {
	return writeFile(path, defaultConfig, force)
}

// Write saves c as TOML with literal values.
func (c *Config) Write(path string, force bool) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFile(path, buf.Bytes(), force)
}

// writeFile creates missing parent directories. The file is owner-only since it may hold a key.
func writeFile(path string, data []byte, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
