// Package software draws bolt frames on the CPU.
//
// The Renderer follows the same contract as bolt.Renderer2D: one shape per
// frame, cleared to the background color, projected through a camera
// fixed at construction. It rasterizes with golang.org/x/image/vector and
// is used where no GPU adapter is available.
package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/bolt"
	"github.com/gogpu/bolt/internal/geom"
	"golang.org/x/image/vector"
)

// ErrUnsupportedShape is returned for shapes other than bolt.Quad.
var ErrUnsupportedShape = errors.New("software: unsupported shape")

// Renderer rasterizes shapes into an *image.RGBA.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	img    *image.RGBA
	mask   *image.Alpha
	camera geom.Matrix4
	clear  color.NRGBA
	ras    *vector.Rasterizer
	frames int
}

// New creates a width x height renderer. The camera is computed from
// this size and never changes.
func New(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", bolt.ErrInvalidSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := image.Rect(0, 0, width, height)
	return &Renderer{
		img:    image.NewRGBA(b),
		mask:   image.NewAlpha(b),
		camera: geom.ScreenCamera(width, height),
		clear:  o.clear,
		ras:    vector.NewRasterizer(width, height),
	}, nil
}

// Draw clears the image and fills shape. Quads facing away from the
// viewer (negative scale on one axis) are culled, as on the GPU.
func (r *Renderer) Draw(shape bolt.Shape2D) error {
	q, ok := shape.(bolt.Quad)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedShape, shape)
	}

	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.clear), image.Point{}, draw.Src)
	r.frames++

	corners := r.project(q.Vertices())
	if !frontFacing(corners) {
		return nil
	}

	// Coverage goes to the mask first so the quad color replaces the
	// background only where the path covers it.
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	r.ras.DrawOp = draw.Src
	r.ras.MoveTo(corners[0][0], corners[0][1])
	for _, c := range corners[1:] {
		r.ras.LineTo(c[0], c[1])
	}
	r.ras.ClosePath()
	r.ras.Draw(r.mask, b, image.Opaque, image.Point{})
	draw.DrawMask(r.img, b, image.NewUniform(toNRGBA(q.Color)), image.Point{}, r.mask, image.Point{}, draw.Src)
	return nil
}

// project maps world positions through the camera to pixel coordinates
// with y down.
func (r *Renderer) project(world [4][3]float32) [4][2]float32 {
	b := r.img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	var out [4][2]float32
	for i, p := range world {
		ndc := r.camera.Transform(p)
		out[i] = [2]float32{
			(ndc[0] + 1) / 2 * w,
			(1 - ndc[1]) / 2 * h,
		}
	}
	return out
}

// frontFacing reports whether the quad's first triangle (0, 2, 1) winds
// counter-clockwise in world space. Screen y points down, which flips the
// sign of the cross product. Degenerate quads are not front facing.
func frontFacing(p [4][2]float32) bool {
	a, b, c := p[0], p[2], p[1]
	cross := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
	return cross < 0
}

// Resize reallocates the image. The camera keeps its original projection.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", bolt.ErrInvalidSize, width, height)
	}
	b := image.Rect(0, 0, width, height)
	r.img = image.NewRGBA(b)
	r.mask = image.NewAlpha(b)
	return nil
}

// Image returns the last drawn frame. The image is reused by the next
// Draw.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() int {
	return r.frames
}

// Camera returns the column-major view-projection matrix.
func (r *Renderer) Camera() [16]float32 {
	return r.camera
}

func toNRGBA(c [4]float32) color.NRGBA {
	return color.NRGBA{
		R: unit8(c[0]),
		G: unit8(c[1]),
		B: unit8(c[2]),
		A: unit8(c[3]),
	}
}

// unit8 converts a 0..1 channel to 0..255, clamping out-of-range values.
func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
