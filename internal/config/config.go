// Package config loads colr settings from a TOML file.
//
// Example file:
//
//	debug = false
//	strict = true
//	palette = "muted"
//
//	[defaults]
//	blend = 0.5
//	lighten = 0.25
//	darken = 0.25
//
//	[server]
//	addr = ":8080"
//	read_timeout = 10
//	max_swatch = 32
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/maax3v3/colr/internal/color"
)

// Config holds every tunable of the CLI and the HTTP server.
type Config struct {
	Debug    bool     `toml:"debug"`
	Strict   bool     `toml:"strict"`
	Palette  string   `toml:"palette"`
	Defaults Defaults `toml:"defaults"`
	Server   Server   `toml:"server"`
}

// Defaults are the operation parameters used when a request or command
// does not give one.
type Defaults struct {
	Blend   float64 `toml:"blend"`
	Lighten float64 `toml:"lighten"`
	Darken  float64 `toml:"darken"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string `toml:"addr"`
	ReadTimeout int    `toml:"read_timeout"` // seconds
	MaxSwatch   int    `toml:"max_swatch"`   // colors per swatch request
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Palette: string(color.PaletteMuted),
		Defaults: Defaults{
			Blend:   color.DefaultBlendStep,
			Lighten: color.DefaultFactor,
			Darken:  color.DefaultFactor,
		},
		Server: Server{
			Addr:        ":8080",
			ReadTimeout: 10,
			MaxSwatch:   32,
		},
	}
}

// Load reads the TOML file at path on top of Default and validates the
// result. Keys the file sets override defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	md, err := toml.Decode(string(content), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and normalizes the palette name.
func (c *Config) Validate() error {
	p, err := color.ParsePalette(c.Palette)
	if err != nil {
		return err
	}
	c.Palette = string(p)

	if c.Defaults.Blend < 0 || c.Defaults.Blend > 1 {
		return fmt.Errorf("defaults.blend must be between 0 and 1, got %v", c.Defaults.Blend)
	}
	if c.Defaults.Lighten < 0 {
		return fmt.Errorf("defaults.lighten must be >= 0, got %v", c.Defaults.Lighten)
	}
	if c.Defaults.Darken < 0 || c.Defaults.Darken > 1 {
		return fmt.Errorf("defaults.darken must be between 0 and 1, got %v", c.Defaults.Darken)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be >= 0, got %d", c.Server.ReadTimeout)
	}
	if c.Server.MaxSwatch < 1 {
		return fmt.Errorf("server.max_swatch must be >= 1, got %d", c.Server.MaxSwatch)
	}
	return nil
}
