// Package config loads the sampling visualizer's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cloudchase/sampling-visualizer/engine"
)

// FileName is the config file name inside the base directory.
const FileName = "config.toml"

// Config is the effective configuration.
type Config struct {
	// Debug enables debug-level logging.
	Debug bool `toml:"debug"`

	// Color selects terminal colour output: always, auto or never.
	Color string `toml:"color"`

	// Defaults are the shaping controls used when a caller leaves them unset.
	Defaults engine.Params `toml:"defaults"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Address to listen on (e.g., ":7860")
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:    "auto",
		Defaults: engine.DefaultParams(),
		Server:   ServerConfig{Addr: ":7860"},
	}
}

// Path returns the config file path inside baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Load reads the config file at path on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that have no clamped fallback.
func (c Config) Validate() error {
	switch c.Color {
	case "always", "auto", "never":
	default:
		return fmt.Errorf("invalid color %q: must be always, auto, or never", c.Color)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if math.IsInf(c.Defaults.Temperature, 0) {
		return errors.New("defaults.temperature must be finite")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteDefault creates the config file at path with default values.
// An existing file is left untouched and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Default().Encode(f)
}
