package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, [4]float32{1, 0, 1, 1}, cfg.Render.ClearColor)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1.0}, cfg.Quad.Color)
	assert.Equal(t, bolt.PresentModeFifo, cfg.PresentMode())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
width = 100
height = 100

[render]
present_mode = "mailbox"
headless = true
output = "out.png"

[quad]
position = [0.0, 0.0, 0.0]
scale = [50.0, 50.0, 1.0]
spin = 2.5

[log]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Window.Width)
	assert.Equal(t, "bolt sandbox", cfg.Window.Title, "unset keys keep defaults")
	assert.Equal(t, bolt.PresentModeMailbox, cfg.PresentMode())
	assert.True(t, cfg.Render.Headless)
	assert.Equal(t, "out.png", cfg.Render.Output)
	assert.Equal(t, [3]float32{50, 50, 1}, cfg.Quad.Scale)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1.0}, cfg.Quad.Color)
	assert.InDelta(t, 2.5, cfg.Quad.Spin, 1e-6)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[window]\ndepth = 3\n"},
		{"zero width", "[window]\nwidth = 0\n"},
		{"bad backend", "[render]\nbackend = \"opengl\"\n"},
		{"bad present mode", "[render]\npresent_mode = \"vsync\"\n"},
		{"color out of range", "[quad]\ncolor = [2.0, 0.0, 0.0, 1.0]\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"no frames", "[render]\nframes = 0\n"},
		{"headless without output", "[render]\nheadless = true\noutput = \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[window\nwidth = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "sandbox.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	want := Default()
	want.Quad.Rotation = 45
	data, err := want.Encode()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
