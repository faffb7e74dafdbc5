package bolt

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PresentMode selects how frames are queued for display.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota
	// PresentModeMailbox replaces the queued frame without tearing.
	PresentModeMailbox
	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "fifo"
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// SurfaceConfig is the configuration Renderer2D applies to its surface at
// construction, on Resize and after a lost surface.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode PresentMode
}

// Frame is one acquired presentable texture.
type Frame struct {
	View   hal.TextureView
	Width  uint32
	Height uint32
}

// Surface is the presentable target Renderer2D draws into. Hosts adapt
// their window surface to it; OffscreenSurface implements it on a plain
// texture.
//
// Acquire and Present report recoverable conditions with ErrSurfaceLost,
// ErrSurfaceOutdated and ErrSurfaceTimeout, and exhaustion with
// ErrOutOfMemory, wrapped or bare. The HAL's own sentinels
// (hal.ErrSurfaceLost, hal.ErrDeviceOutOfMemory, ...) are accepted too.
//
// An acquired frame is not always presented: when rendering fails, Draw
// hands it to Discard if the surface implements FrameDiscarder and
// otherwise drops it. Surfaces that hold swapchain images must implement
// FrameDiscarder.
type Surface interface {
	// Configure (re)creates the swapchain for device with cfg. The queue
	// is the one frames are submitted on.
	Configure(device hal.Device, queue hal.Queue, cfg SurfaceConfig) error

	// Acquire blocks until the next texture is available.
	Acquire() (Frame, error)

	// Present queues an acquired frame for display.
	Present(frame Frame) error

	// PreferredFormat returns the surface's preferred color format, or
	// gputypes.TextureFormatUndefined if it has no preference.
	PreferredFormat() gputypes.TextureFormat
}

// FrameDiscarder is implemented by surfaces that must release an acquired
// frame that will not be presented.
type FrameDiscarder interface {
	Discard(frame Frame)
}
