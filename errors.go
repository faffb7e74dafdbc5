package bolt

import (
	"errors"
	"fmt"

	"github.com/gogpu/bolt/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Construction errors.
var (
	// ErrNilSurface is returned by New when no surface is supplied.
	ErrNilSurface = errors.New("bolt: nil surface")

	// ErrInvalidSize is returned for non-positive window dimensions.
	ErrInvalidSize = errors.New("bolt: invalid size")

	// ErrNoAdapter is returned when no GPU adapter can be found.
	ErrNoAdapter = gpu.ErrNoAdapter

	// ErrDeviceOpen wraps failures to create the logical device, the
	// pipeline or the static GPU resources.
	ErrDeviceOpen = errors.New("bolt: device initialization failed")

	// ErrRendererClosed is returned by Draw and Resize after Close.
	ErrRendererClosed = errors.New("bolt: renderer closed")

	// ErrUnsupportedShape is returned by Draw for nil shapes.
	ErrUnsupportedShape = errors.New("bolt: unsupported shape")
)

// Frame errors reported by a Surface from Acquire or Present.
var (
	// ErrSurfaceLost means the surface must be reconfigured before the
	// next frame.
	ErrSurfaceLost = errors.New("bolt: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window,
	// typically during a resize.
	ErrSurfaceOutdated = errors.New("bolt: surface outdated")

	// ErrSurfaceTimeout means no frame became available in time.
	ErrSurfaceTimeout = errors.New("bolt: surface timeout")

	// ErrOutOfMemory means the device ran out of memory. It is fatal.
	ErrOutOfMemory = errors.New("bolt: out of memory")
)

// FrameAction tells the caller how to react to a frame error.
type FrameAction int

const (
	// ActionSkip drops the current frame. The renderer stays usable.
	ActionSkip FrameAction = iota

	// ActionReconfigure drops the current frame after the surface has been
	// reconfigured with its last configuration.
	ActionReconfigure

	// ActionTerminate means the application must shut down.
	ActionTerminate
)

// String returns the action name.
func (a FrameAction) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionReconfigure:
		return "reconfigure"
	case ActionTerminate:
		return "terminate"
	default:
		return fmt.Sprintf("FrameAction(%d)", int(a))
	}
}

// ClassifySurfaceError maps a frame error to the action its caller should
// take. Both bolt's sentinels and the HAL's are recognized: out-of-memory
// and a lost device terminate, a lost surface is reconfigured and
// everything else (outdated, timeout, not ready) skips the frame.
func ClassifySurfaceError(err error) FrameAction {
	var se *SurfaceError
	if errors.As(err, &se) {
		return se.Action
	}
	switch {
	case errors.Is(err, ErrOutOfMemory),
		errors.Is(err, hal.ErrDeviceOutOfMemory),
		errors.Is(err, hal.ErrDeviceLost):
		return ActionTerminate
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, hal.ErrSurfaceLost):
		return ActionReconfigure
	default:
		return ActionSkip
	}
}

// IsFatal reports whether err requires the application to terminate.
func IsFatal(err error) bool {
	return err != nil && ClassifySurfaceError(err) == ActionTerminate
}

// SurfaceError is returned by Draw when a frame could not be acquired,
// rendered or presented.
type SurfaceError struct {
	Op     string // "acquire", "render" or "present"
	Action FrameAction
	Err    error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("bolt: %s frame (%s): %v", e.Op, e.Action, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// newSurfaceError classifies err and wraps it. Timeouts from the frame
// fence or the HAL are reported as ErrSurfaceTimeout.
func newSurfaceError(op string, err error) *SurfaceError {
	timedOut := errors.Is(err, gpu.ErrFrameTimeout) || errors.Is(err, hal.ErrTimeout)
	if timedOut && !errors.Is(err, ErrSurfaceTimeout) {
		err = fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	}
	return &SurfaceError{Op: op, Action: ClassifySurfaceError(err), Err: err}
}
