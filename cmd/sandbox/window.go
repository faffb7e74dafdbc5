package main

import (
	"log/slog"

	"github.com/gogpu/bolt"
	"github.com/gogpu/bolt/internal/config"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// windowSurface adapts the current gogpu frame to bolt.Surface. gogpu
// owns the swapchain: it configures, acquires and presents around
// OnDraw, so Configure and Present only report state.
type windowSurface struct {
	dc     *gogpu.Context
	format gputypes.TextureFormat
}

func (s *windowSurface) Configure(hal.Device, hal.Queue, bolt.SurfaceConfig) error {
	return nil
}

func (s *windowSurface) Acquire() (bolt.Frame, error) {
	if s.dc == nil {
		return bolt.Frame{}, bolt.ErrSurfaceOutdated
	}
	view, ok := any(s.dc.SurfaceView()).(hal.TextureView)
	if !ok || view == nil {
		return bolt.Frame{}, bolt.ErrSurfaceOutdated
	}
	w, h := s.dc.SurfaceSize()
	return bolt.Frame{View: view, Width: uint32(w), Height: uint32(h)}, nil
}

func (s *windowSurface) Present(bolt.Frame) error {
	return nil
}

func (s *windowSurface) PreferredFormat() gputypes.TextureFormat {
	return s.format
}

// runWindow opens a gogpu window and draws the configured quad every
// frame on the window's own device. A fatal frame error closes the app.
func runWindow(cfg config.Config, logger *slog.Logger) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Window.Title).
		WithSize(cfg.Window.Width, cfg.Window.Height).
		WithContinuousRender(false))

	var (
		renderer *bolt.Renderer2D
		surface  = &windowSurface{}
		frame    int
		failed   error
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if failed != nil {
			return
		}
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		surface.dc = dc
		defer func() { surface.dc = nil }()

		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			surface.format = provider.SurfaceFormat()
			opts := append(rendererOptions(cfg), bolt.WithDeviceProvider(provider))
			r, err := bolt.New(surface, w, h, opts...)
			if err != nil {
				failed = err
				app.Quit()
				return
			}
			renderer = r
			app.StartAnimation()
		}

		if c := renderer.Config(); int(c.Width) != w || int(c.Height) != h {
			if err := renderer.Resize(w, h); err != nil {
				logger.Warn("resize failed", "err", err)
			}
		}

		if err := renderer.Draw(quadAt(cfg.Quad, frame)); err != nil {
			if bolt.IsFatal(err) {
				failed = err
				app.Quit()
				return
			}
			logger.Warn("frame dropped", "frame", frame, "err", err)
		}
		frame++
	})

	app.OnClose(func() {
		if renderer != nil {
			renderer.Close()
		}
	})

	if err := app.Run(); err != nil {
		return err
	}
	return failed
}
