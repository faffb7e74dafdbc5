package main

import (
	"github.com/chewxy/math32"
	"github.com/gogpu/bolt"
	"github.com/gogpu/bolt/internal/config"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
)

// quadAt returns the configured quad for frame n, turned by the spin.
func quadAt(q config.QuadConfig, frame int) bolt.Quad {
	deg := math32.Mod(q.Rotation+q.Spin*float32(frame), 360)
	return bolt.Quad{
		Position: q.Position,
		Scale:    q.Scale,
		Color:    q.Color,
		Rotation: deg * math32.Pi / 180,
	}
}

// rendererOptions translates the render config into bolt options.
func rendererOptions(cfg config.Config) []bolt.Option {
	c := cfg.Render.ClearColor
	opts := []bolt.Option{
		bolt.WithClearColor(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])),
		bolt.WithPresentMode(cfg.PresentMode()),
	}
	switch cfg.Render.Backend {
	case "noop":
		opts = append(opts, bolt.WithInstanceFactory(&noop.API{}))
	default:
		opts = append(opts, bolt.WithBackend(gputypes.BackendVulkan))
	}
	return opts
}
