// Package bolt is a small 2D renderer on top of gogpu/wgpu.
//
// # Overview
//
// bolt opens a GPU device, configures a presentable surface and draws
// solid-color quads, one per frame. It is a thin layer over the HAL: one
// render pipeline, one camera uniform, one index buffer.
//
// # Quick Start
//
//	surface := bolt.NewOffscreenSurface()
//	r, err := bolt.New(surface, 800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	err = r.Draw(bolt.Quad{
//	    Position: [3]float32{0, 0, 0},
//	    Scale:    [3]float32{200, 100, 1},
//	    Color:    [4]float32{0.1, 0.2, 0.3, 1},
//	})
//
// # Coordinate System
//
// World units are pixels:
//   - Origin (0,0) at the window center
//   - X increases right
//   - Y increases up
//   - Rotation in radians, counter-clockwise
//
// The camera is an orthographic projection computed once from the size
// passed to New. Resize reconfigures the surface but keeps the camera.
//
// # Frame Errors
//
// Draw returns *SurfaceError for frame failures. ClassifySurfaceError
// maps it to an action: ActionReconfigure for a lost surface (already
// reconfigured by Draw), ActionTerminate for out-of-memory and
// ActionSkip for everything else. IsFatal is a shortcut for the second.
//
// # Surfaces
//
// Windows are attached through the Surface interface. OffscreenSurface
// renders into a texture for headless use; its Snapshot method returns
// the pixels. The software subpackage draws the same frame on the CPU.
package bolt

// Version is the current version of the library.
const Version = "0.1.0"
