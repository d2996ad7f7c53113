// Package config loads the game's YAML settings and watches the file for
// live edits.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config is the game configuration. Zero or missing fields keep their
// defaults.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Gravity       float64 `yaml:"gravity"`
	Density       float64 `yaml:"density"`
	Elasticity    float64 `yaml:"elasticity"`
	Friction      float64 `yaml:"friction"`
	DragStiffness float64 `yaml:"drag_stiffness"`

	BlockHeight   float64 `yaml:"block_height"`
	MaxBlockWidth float64 `yaml:"max_block_width"`
	CornerRadius  float64 `yaml:"corner_radius"`
	FontSize      float64 `yaml:"font_size"`
	Background    string  `yaml:"background"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		APIURL:        "http://localhost:8080",
		PollInterval:  5 * time.Second,
		Gravity:       1000,
		Density:       0.001,
		Elasticity:    0.8,
		Friction:      0.5,
		DragStiffness: 0.2,
		BlockHeight:   50,
		MaxBlockWidth: 300,
		CornerRadius:  10,
		FontSize:      16,
		Background:    "#f0f0f0",
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.BlockHeight <= 0 || c.MaxBlockWidth <= 0 {
		return fmt.Errorf("block size must be positive, got %vx%v", c.MaxBlockWidth, c.BlockHeight)
	}
	if c.DragStiffness <= 0 || c.DragStiffness > 1 {
		return fmt.Errorf("drag_stiffness must be in (0, 1], got %v", c.DragStiffness)
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return fmt.Errorf("background %q: %w", c.Background, err)
	}
	return nil
}

// BackgroundColor returns the parsed background color.
func (c *Config) BackgroundColor() color.Color {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	}
	r, g, b := bg.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
