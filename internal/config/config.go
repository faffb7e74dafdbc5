// Package config loads sandbox settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/bolt"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the sandbox configuration. Zero-valued fields in a file keep
// their defaults.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Quad   QuadConfig   `toml:"quad"`
	Log    LogConfig    `toml:"log"`
}

// WindowConfig sizes the window or offscreen target.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RenderConfig selects the backend and output.
type RenderConfig struct {
	// Backend is "vulkan" or "noop".
	Backend string `toml:"backend"`
	// PresentMode is "fifo", "mailbox" or "immediate".
	PresentMode string     `toml:"present_mode"`
	ClearColor  [4]float32 `toml:"clear_color"`

	Headless bool `toml:"headless"`
	// Software forces the CPU renderer in headless mode.
	Software bool   `toml:"software"`
	Output   string `toml:"output"`
	Frames   int    `toml:"frames"`
	Caption  string `toml:"caption"`
}

// QuadConfig is the quad drawn every frame.
type QuadConfig struct {
	Position [3]float32 `toml:"position"`
	Scale    [3]float32 `toml:"scale"`
	Color    [4]float32 `toml:"color"`
	// Rotation is the initial angle in degrees.
	Rotation float32 `toml:"rotation"`
	// Spin is the angular speed in degrees per frame.
	Spin float32 `toml:"spin"`
}

// LogConfig sets the log level: "debug", "info", "warn" or "error".
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "bolt sandbox", Width: 800, Height: 600},
		Render: RenderConfig{
			Backend:     "vulkan",
			PresentMode: "fifo",
			ClearColor:  [4]float32{1, 0, 1, 1},
			Output:      "frame.png",
			Frames:      1,
		},
		Quad: QuadConfig{
			Scale: [3]float32{200, 200, 1},
			Color: [4]float32{0.1, 0.2, 0.3, 1.0},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	switch c.Render.Backend {
	case "vulkan", "noop":
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Render.Backend))
	}
	if _, err := parsePresentMode(c.Render.PresentMode); err != nil {
		errs = append(errs, err)
	}
	if c.Render.Headless && c.Render.Output == "" {
		errs = append(errs, errors.New("headless mode needs an output path"))
	}
	if c.Render.Frames < 1 {
		errs = append(errs, fmt.Errorf("frames %d must be at least 1", c.Render.Frames))
	}
	if !unitRange(c.Render.ClearColor) {
		errs = append(errs, fmt.Errorf("clear_color %v outside 0..1", c.Render.ClearColor))
	}
	if !unitRange(c.Quad.Color) {
		errs = append(errs, fmt.Errorf("quad color %v outside 0..1", c.Quad.Color))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// PresentMode returns the configured bolt present mode.
func (c Config) PresentMode() bolt.PresentMode {
	m, _ := parsePresentMode(c.Render.PresentMode)
	return m
}

// LogLevel returns the configured slog level.
func (c Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

// Encode returns the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func parsePresentMode(s string) (bolt.PresentMode, error) {
	switch strings.ToLower(s) {
	case "fifo", "":
		return bolt.PresentModeFifo, nil
	case "mailbox":
		return bolt.PresentModeMailbox, nil
	case "immediate":
		return bolt.PresentModeImmediate, nil
	default:
		return bolt.PresentModeFifo, fmt.Errorf("unknown present_mode %q", s)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

func unitRange(c [4]float32) bool {
	for _, v := range c {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
