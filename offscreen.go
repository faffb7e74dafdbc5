package bolt

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/bolt/internal/gpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNotConfigured is returned by OffscreenSurface before Configure.
var ErrNotConfigured = errors.New("bolt: surface not configured")

// OffscreenSurface is a Surface backed by a GPU texture instead of a
// window. It is used for headless rendering and tests. Snapshot reads
// the last presented frame back to the CPU.
//
// The texture lives on the renderer's device; Renderer2D.Close releases
// it.
type OffscreenSurface struct {
	target   *gpu.OffscreenTarget
	presents int
}

// NewOffscreenSurface returns an unconfigured offscreen surface.
func NewOffscreenSurface() *OffscreenSurface {
	return &OffscreenSurface{}
}

// Configure allocates (or resizes) the backing texture.
func (s *OffscreenSurface) Configure(device hal.Device, queue hal.Queue, cfg SurfaceConfig) error {
	if cfg.Format != gpu.OffscreenFormat {
		return fmt.Errorf("bolt: offscreen surface supports %v only, got %v", gpu.OffscreenFormat, cfg.Format)
	}
	if s.target == nil {
		t, err := gpu.NewOffscreenTarget(device, queue, cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		s.target = t
		return nil
	}
	return s.target.Resize(cfg.Width, cfg.Height)
}

// Acquire returns the backing texture as the next frame.
func (s *OffscreenSurface) Acquire() (Frame, error) {
	if s.target == nil {
		return Frame{}, ErrNotConfigured
	}
	w, h := s.target.Size()
	return Frame{View: s.target.View(), Width: w, Height: h}, nil
}

// Present records that a frame was completed.
func (s *OffscreenSurface) Present(Frame) error {
	if s.target == nil {
		return ErrNotConfigured
	}
	s.presents++
	return nil
}

// PreferredFormat returns BGRA8Unorm.
func (s *OffscreenSurface) PreferredFormat() gputypes.TextureFormat {
	return gpu.OffscreenFormat
}

// Presents returns the number of frames presented so far.
func (s *OffscreenSurface) Presents() int {
	return s.presents
}

// Snapshot reads the surface texture back as RGBA.
func (s *OffscreenSurface) Snapshot() (*image.RGBA, error) {
	if s.target == nil {
		return nil, ErrNotConfigured
	}
	img, err := s.target.ReadPixels()
	if err != nil {
		return nil, fmt.Errorf("bolt: snapshot: %w", err)
	}
	return img, nil
}

// Release frees the backing texture.
func (s *OffscreenSurface) Release() {
	if s.target != nil {
		s.target.Destroy()
		s.target = nil
	}
}
