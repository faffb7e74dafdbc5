package main

import (
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/bolt/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func headlessConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 100, 100
	cfg.Quad.Scale = [3]float32{50, 50, 1}
	cfg.Render.Headless = true
	cfg.Render.Output = filepath.Join(t.TempDir(), "frame.png")
	return cfg
}

func TestRunHeadlessSoftware(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Render.Software = true

	if err := runHeadless(cfg, discardLogger()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	f, err := os.Open(cfg.Render.Output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("bounds = %v, want 100x100", img.Bounds())
	}
	want := color.RGBAModel.Convert(color.RGBA{R: 26, G: 51, B: 77, A: 255})
	if got := color.RGBAModel.Convert(img.At(50, 50)); got != want {
		t.Errorf("center = %v, want %v", got, want)
	}
	if got := color.RGBAModel.Convert(img.At(95, 95)); got != (color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("corner = %v, want magenta", got)
	}
}

func TestRunHeadlessNoopGPU(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.Render.Backend = "noop"
	cfg.Render.Frames = 3
	cfg.Render.Caption = "noop"

	if err := runHeadless(cfg, discardLogger()); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	info, err := os.Stat(cfg.Render.Output)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG written")
	}
}

func TestQuadAtSpin(t *testing.T) {
	q := config.QuadConfig{
		Position: [3]float32{1, 2, 0},
		Scale:    [3]float32{10, 20, 1},
		Color:    [4]float32{1, 0, 0, 1},
		Rotation: 90,
		Spin:     45,
	}
	tests := []struct {
		frame int
		deg   float64
	}{
		{0, 90},
		{1, 135},
		{6, 0}, // 360 wraps
	}
	for _, tt := range tests {
		got := quadAt(q, tt.frame)
		want := tt.deg * math.Pi / 180
		if math.Abs(float64(got.Rotation)-want) > 1e-5 {
			t.Errorf("frame %d: rotation = %v, want %v", tt.frame, got.Rotation, want)
		}
		if got.Position != q.Position || got.Scale != q.Scale || got.Color != q.Color {
			t.Errorf("frame %d: quad fields not carried over: %+v", tt.frame, got)
		}
	}
}
