// Package config loads optional rendering defaults from a TOML file.
// Explicit CLI flags always win over file values; a missing file is not
// an error.
//
// Resolution order for the file path: the -config flag, the
// CHUNKDUP_CONFIG environment variable, then ~/.config/chunkdup/config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable pointing at the config file.
const EnvVar = "CHUNKDUP_CONFIG"

// Bar holds rendering defaults for the diff bar.
type Bar struct {
	// Width of the bar in columns. 0 means auto-size to the terminal.
	Width int `toml:"width"`
	// Style is "oneline" or "twolines".
	Style string `toml:"style"`
	// Color is "auto", "always" or "never".
	Color string `toml:"color"`
}

// Config is the full config file shape.
type Config struct {
	Bar Bar `toml:"bar"`
}

// Default returns the built-in defaults used when no file is present.
func Default() Config {
	return Config{Bar: Bar{Width: 40, Style: "oneline", Color: "auto"}}
}

// Load reads the config at path, layered over the defaults. When path is
// empty the environment variable and then the home config location are
// tried; a file that does not exist yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".config", "chunkdup", "config.toml")
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Bar.Style {
	case "oneline", "twolines":
	default:
		return fmt.Errorf("bar.style %q: want oneline or twolines", c.Bar.Style)
	}
	switch c.Bar.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("bar.color %q: want auto, always or never", c.Bar.Color)
	}
	if c.Bar.Width < 0 {
		return fmt.Errorf("bar.width %d: must be >= 0", c.Bar.Width)
	}
	return nil
}
