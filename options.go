package bolt

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Option configures a Renderer2D during creation.
//
// Example:
//
//	r, err := bolt.New(surface, 800, 600,
//	    bolt.WithClearColor(0, 0, 0, 1),
//	    bolt.WithPresentMode(bolt.PresentModeMailbox))
type Option func(*options)

// InstanceFactory creates HAL instances. Registered HAL backends and
// github.com/gogpu/wgpu/hal/noop satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// options holds optional configuration for Renderer2D creation.
type options struct {
	clearColor  gputypes.Color
	provider    gpucontext.DeviceProvider
	backend     gputypes.Backend
	factory     InstanceFactory
	presentMode PresentMode
}

// defaultOptions returns the default renderer options: magenta
// background, Vulkan backend, FIFO presentation.
func defaultOptions() options {
	return options{
		clearColor:  gputypes.Color{R: 1, G: 0, B: 1, A: 1},
		backend:     gputypes.BackendVulkan,
		presentMode: PresentModeFifo,
	}
}

// WithClearColor sets the background every frame is cleared to.
func WithClearColor(r, g, b, a float64) Option {
	return func(o *options) {
		o.clearColor = gputypes.Color{R: r, G: g, B: b, A: a}
	}
}

// WithDeviceProvider shares the GPU device of a host such as a gogpu
// window instead of opening a new one. The provider must also expose
// HalDevice() any and HalQueue() any. The shared device is not destroyed
// by Close.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithBackend selects the HAL backend used for a standalone device.
// Ignored when a device provider or instance factory is set.
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithInstanceFactory opens the standalone device through f instead of a
// registered backend. Tests pass &noop.API{}.
func WithInstanceFactory(f InstanceFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithPresentMode sets the surface present mode.
func WithPresentMode(m PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}
