// Package config loads the read-only settings for the heart effect.
package config

import (
	_ "embed"
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings. It is not modified after startup.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Particles ParticlesConfig `yaml:"particles"`
	Sprite    SpriteConfig    `yaml:"sprite"`
	Heart     HeartConfig     `yaml:"heart"`
	Debug     DebugConfig     `yaml:"debug"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds the initial window and headless canvas size.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ParticlesConfig holds the particle pool and motion parameters.
type ParticlesConfig struct {
	Length        int     `yaml:"length"`         // Ring capacity
	Duration      float64 `yaml:"duration"`       // Lifetime in seconds
	VelocityScale float64 `yaml:"velocity_scale"` // Max fraction of curve offset used as velocity
	Effect        float64 `yaml:"effect"`         // Acceleration = velocity * effect
	Size          int     `yaml:"size"`           // Sprite size in pixels
}

// SpriteConfig holds the particle sprite appearance.
type SpriteConfig struct {
	Color string `yaml:"color"` // Hex colour, e.g. "#ff0080"
}

// HeartConfig holds the heart curve coefficients.
type HeartConfig struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
	E float64 `yaml:"e"`
	F float64 `yaml:"f"`
}

// DebugConfig holds diagnostics settings.
type DebugConfig struct {
	Overlay     bool    `yaml:"overlay"`
	StatsWindow int     `yaml:"stats_window"`
	LogInterval float64 `yaml:"log_interval"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	EmissionRate float64 // Particles per second, Length / Duration
	Color        colorful.Color
}

// Default parses, validates and derives the embedded defaults.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and recomputes the derived values. Callers
// that adjust a Config in code must call it before use.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return err
	}
	return c.computeDerived()
}

func (c *Config) validate() error {
	switch {
	case c.Window.Width < 1 || c.Window.Height < 1:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Particles.Length < 1:
		return fmt.Errorf("%w: particles.length %d must be at least 1", ErrInvalid, c.Particles.Length)
	case c.Particles.Duration <= 0:
		return fmt.Errorf("%w: particles.duration %v must be positive", ErrInvalid, c.Particles.Duration)
	case c.Particles.Size < 1:
		return fmt.Errorf("%w: particles.size %d must be at least 1", ErrInvalid, c.Particles.Size)
	case c.Particles.Effect > 0:
		return fmt.Errorf("%w: particles.effect %v must not be positive", ErrInvalid, c.Particles.Effect)
	case c.Particles.VelocityScale < 0:
		return fmt.Errorf("%w: particles.velocity_scale %v must not be negative", ErrInvalid, c.Particles.VelocityScale)
	case c.Debug.StatsWindow < 1:
		return fmt.Errorf("%w: debug.stats_window %d must be at least 1", ErrInvalid, c.Debug.StatsWindow)
	case c.Debug.LogInterval < 0:
		return fmt.Errorf("%w: debug.log_interval %v must not be negative", ErrInvalid, c.Debug.LogInterval)
	}
	return nil
}

func (c *Config) computeDerived() error {
	col, err := colorful.Hex(c.Sprite.Color)
	if err != nil {
		return fmt.Errorf("%w: sprite.color %q: %v", ErrInvalid, c.Sprite.Color, err)
	}
	c.Derived.Color = col
	c.Derived.EmissionRate = float64(c.Particles.Length) / c.Particles.Duration
	return nil
}
