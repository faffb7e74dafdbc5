package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/bolt"
	"github.com/gogpu/bolt/internal/config"
	"github.com/gogpu/bolt/software"
)

// runHeadless renders cfg.Render.Frames frames without a window and
// writes the last one to cfg.Render.Output. Without a GPU adapter it
// falls back to the software renderer.
func runHeadless(cfg config.Config, logger *slog.Logger) error {
	var (
		img *image.RGBA
		err error
	)
	if !cfg.Render.Software {
		img, err = renderGPU(cfg, logger)
		if errors.Is(err, bolt.ErrNoAdapter) {
			logger.Warn("no GPU adapter, using software renderer", "err", err)
			cfg.Render.Software = true
		} else if err != nil {
			return err
		}
	}
	if cfg.Render.Software {
		img, err = renderSoftware(cfg)
		if err != nil {
			return err
		}
	}

	if err := software.DrawCaption(img, cfg.Render.Caption, 14, color.White); err != nil {
		return err
	}
	if err := writePNG(cfg.Render.Output, img); err != nil {
		return err
	}
	logger.Info("frame written", "path", cfg.Render.Output,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(),
		"software", cfg.Render.Software)
	return nil
}

func renderGPU(cfg config.Config, logger *slog.Logger) (*image.RGBA, error) {
	surface := bolt.NewOffscreenSurface()
	r, err := bolt.New(surface, cfg.Window.Width, cfg.Window.Height, rendererOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for i := 0; i < cfg.Render.Frames; i++ {
		if err := r.Draw(quadAt(cfg.Quad, i)); err != nil {
			if bolt.IsFatal(err) {
				return nil, err
			}
			logger.Warn("frame skipped", "frame", i, "err", err)
		}
	}
	if surface.Presents() == 0 {
		return nil, errors.New("no frame was presented")
	}
	return surface.Snapshot()
}

func renderSoftware(cfg config.Config) (*image.RGBA, error) {
	c := cfg.Render.ClearColor
	r, err := software.New(cfg.Window.Width, cfg.Window.Height,
		software.WithClearColor(c[0], c[1], c[2], c[3]))
	if err != nil {
		return nil, err
	}
	for i := 0; i < cfg.Render.Frames; i++ {
		if err := r.Draw(quadAt(cfg.Quad, i)); err != nil {
			return nil, err
		}
	}
	return r.Image(), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
