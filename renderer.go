package bolt

import (
	"errors"
	"fmt"

	"github.com/gogpu/bolt/internal/geom"
	"github.com/gogpu/bolt/internal/gpu"
	"github.com/gogpu/gputypes"
)

// Renderer2D draws one shape per frame into a Surface.
//
// It owns the device (unless shared through WithDeviceProvider), the quad
// pipeline, the camera uniform and the static index buffer. The camera
// is computed once from the size passed to New and is never updated,
// including on Resize.
//
// Renderer2D is NOT safe for concurrent use. Create it, draw and close it
// from the same goroutine.
type Renderer2D struct {
	surface Surface
	device  *gpu.Device
	quads   *gpu.QuadRenderer

	config     SurfaceConfig
	camera     geom.Matrix4
	clearColor gputypes.Color

	// staging holds the encoded vertices of the last drawn shape.
	staging []byte
	closed  bool
}

// New opens a GPU device, configures surface for a width x height window
// in its preferred format and builds the quad pipeline. The call blocks
// until the device is ready.
//
// Failures wrap ErrNoAdapter or ErrDeviceOpen. Nothing is retried.
func New(surface Surface, width, height int, opts ...Option) (*Renderer2D, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	device, err := openDevice(&o)
	if err != nil {
		return nil, err
	}

	format := surface.PreferredFormat()
	if format == gputypes.TextureFormatUndefined && o.provider != nil {
		format = o.provider.SurfaceFormat()
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	r := &Renderer2D{
		surface:    surface,
		device:     device,
		camera:     geom.ScreenCamera(width, height),
		clearColor: o.clearColor,
		config: SurfaceConfig{
			Width:       uint32(width),
			Height:      uint32(height),
			Format:      format,
			PresentMode: o.presentMode,
		},
	}

	if err := surface.Configure(device.Device, device.Queue, r.config); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: configure surface: %w", ErrDeviceOpen, err)
	}

	quads, err := gpu.NewQuadRenderer(device.Device, device.Queue, format, r.camera)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}
	r.quads = quads

	Logger().Info("renderer created",
		"adapter", device.Adapter,
		"width", width, "height", height,
		"format", format,
		"present_mode", o.presentMode)
	return r, nil
}

func openDevice(o *options) (*gpu.Device, error) {
	if o.provider != nil {
		device, err := gpu.DeviceFromProvider(o.provider)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
		}
		return device, nil
	}

	var factory gpu.InstanceFactory = o.factory
	if factory == nil {
		f, err := gpu.BackendFactory(o.backend)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
		}
		factory = f
	}

	device, err := gpu.OpenDevice(factory)
	switch {
	case err == nil:
		return device, nil
	case errors.Is(err, gpu.ErrNoAdapter):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}
}

// Draw renders shape alone into the next frame and presents it.
//
// Frame errors come back as *SurfaceError. A lost surface is
// reconfigured before Draw returns; use ClassifySurfaceError or IsFatal
// to decide whether to keep drawing.
func (r *Renderer2D) Draw(shape Shape2D) error {
	if r.closed {
		return ErrRendererClosed
	}
	if shape == nil {
		return ErrUnsupportedShape
	}

	frame, err := r.surface.Acquire()
	if err != nil {
		return r.frameError("acquire", err)
	}

	verts := shape.vertices()
	r.staging = geom.EncodeVertices(verts[:], r.staging)

	if err := r.quads.RenderFrame(frame.View, r.staging, r.clearColor); err != nil {
		if d, ok := r.surface.(FrameDiscarder); ok {
			d.Discard(frame)
		}
		return r.frameError("render", err)
	}
	if err := r.surface.Present(frame); err != nil {
		return r.frameError("present", err)
	}
	return nil
}

// frameError classifies err and applies the recovery the action calls
// for.
func (r *Renderer2D) frameError(op string, err error) error {
	se := newSurfaceError(op, err)
	switch se.Action {
	case ActionReconfigure:
		Logger().Warn("surface lost, reconfiguring", "op", op, "err", err)
		if cerr := r.surface.Configure(r.device.Device, r.device.Queue, r.config); cerr != nil {
			Logger().Error("surface reconfigure failed", "err", cerr)
			se.Err = fmt.Errorf("%w (reconfigure: %w)", se.Err, cerr)
		}
	case ActionTerminate:
		Logger().Error("fatal frame error", "op", op, "err", err)
	default:
		Logger().Warn("frame dropped", "op", op, "err", err)
	}
	return se
}

// Resize reconfigures the surface for a new window size. The camera keeps
// the projection computed in New.
func (r *Renderer2D) Resize(width, height int) error {
	if r.closed {
		return ErrRendererClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cfg := r.config
	cfg.Width, cfg.Height = uint32(width), uint32(height)
	if err := r.surface.Configure(r.device.Device, r.device.Queue, cfg); err != nil {
		return fmt.Errorf("bolt: resize surface: %w", err)
	}
	r.config = cfg
	Logger().Debug("surface resized", "width", width, "height", height)
	return nil
}

// Camera returns the column-major view-projection matrix.
func (r *Renderer2D) Camera() [16]float32 {
	return r.camera
}

// Config returns the current surface configuration.
func (r *Renderer2D) Config() SurfaceConfig {
	return r.config
}

// releaser is implemented by surfaces that hold resources of the
// renderer's device and must free them before it is destroyed.
type releaser interface {
	Release()
}

// Close releases GPU resources in reverse creation order. It does not
// destroy a device shared through WithDeviceProvider. Close is
// idempotent.
func (r *Renderer2D) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if r.quads != nil {
		r.quads.Destroy()
		r.quads = nil
	}
	if rel, ok := r.surface.(releaser); ok {
		rel.Release()
	}
	if r.device != nil {
		r.device.Close()
		r.device = nil
	}
	Logger().Info("renderer closed")
}
