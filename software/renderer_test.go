package software

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/bolt"
)

var (
	magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	navy    = color.RGBA{R: 26, G: 51, B: 77, A: 255}
)

func TestDrawQuad(t *testing.T) {
	r, err := New(100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = r.Draw(bolt.Quad{
		Position: [3]float32{0, 0, 0},
		Scale:    [3]float32{50, 50, 1},
		Color:    [4]float32{0.1, 0.2, 0.3, 1.0},
	})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := r.Image()
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"center", 50, 50, navy},
		{"inside top-left", 30, 30, navy},
		{"inside bottom-right", 70, 70, navy},
		{"background corner", 2, 2, magenta},
		{"left of quad", 20, 50, magenta},
		{"below quad", 50, 80, magenta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}

func TestDrawOffsetUsesYUp(t *testing.T) {
	r, err := New(100, 100, WithClearColor(0, 0, 0, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Positive world y is the upper half of the image.
	if err := r.Draw(bolt.Quad{Position: [3]float32{0, 30, 0}, Scale: [3]float32{10, 10, 1}, Color: [4]float32{1, 1, 1, 1}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := r.Image().RGBAAt(50, 20); got != white {
		t.Errorf("pixel (50,20) = %v, want white", got)
	}
	if got := r.Image().RGBAAt(50, 80); got != (color.RGBA{A: 255}) {
		t.Errorf("pixel (50,80) = %v, want black", got)
	}
}

func TestDrawClearsPreviousFrame(t *testing.T) {
	r, err := New(40, 40)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = r.Draw(bolt.Quad{Position: [3]float32{-10, 0, 0}, Scale: [3]float32{10, 10, 1}, Color: [4]float32{0, 1, 0, 1}})
	_ = r.Draw(bolt.Quad{Position: [3]float32{10, 0, 0}, Scale: [3]float32{10, 10, 1}, Color: [4]float32{0, 1, 0, 1}})

	if got := r.Image().RGBAAt(10, 20); got != magenta {
		t.Errorf("first quad still visible: pixel = %v", got)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
}

func TestDrawKeepsBackgroundOutsideQuad(t *testing.T) {
	r, err := New(60, 40)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A translucent quad replaces the background instead of blending.
	if err := r.Draw(bolt.Quad{Scale: [3]float32{20, 20, 1}, Color: [4]float32{1, 1, 1, 0.5}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	img := r.Image()
	inside := image.Rect(20, 10, 40, 30)
	half := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			want := magenta
			if (image.Point{X: x, Y: y}).In(inside) {
				want = half
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawCullsBackFacing(t *testing.T) {
	r, err := New(50, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Mirroring one axis reverses the winding.
	if err := r.Draw(bolt.Quad{Scale: [3]float32{-20, 20, 1}, Color: [4]float32{1, 1, 1, 1}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := r.Image().RGBAAt(25, 25); got != magenta {
		t.Errorf("back-facing quad drawn: center = %v", got)
	}
}

func TestDrawRotated(t *testing.T) {
	r, err := New(100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	q := bolt.Quad{Scale: [3]float32{50, 50, 1}, Color: [4]float32{0.1, 0.2, 0.3, 1}, Rotation: math.Pi / 4}
	if err := r.Draw(q); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// A diamond reaches ~35px along the axes but leaves the old corners empty.
	if got := r.Image().RGBAAt(82, 50); got != navy {
		t.Errorf("pixel on rotated tip = %v, want %v", got, navy)
	}
	if got := r.Image().RGBAAt(27, 27); got != magenta {
		t.Errorf("former corner = %v, want background", got)
	}
}

func TestCameraFixedOnResize(t *testing.T) {
	r, err := New(100, 100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := r.Camera()
	if err := r.Resize(200, 50); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Camera() != before {
		t.Error("camera changed on resize")
	}
	if b := r.Image().Bounds(); b != image.Rect(0, 0, 200, 50) {
		t.Errorf("bounds = %v, want 200x50", b)
	}
	if err := r.Draw(bolt.Quad{Scale: [3]float32{10, 10, 1}, Color: [4]float32{1, 1, 1, 1}}); err != nil {
		t.Fatalf("Draw after resize: %v", err)
	}
	if got := r.Image().RGBAAt(199, 49); got != magenta {
		t.Errorf("corner after resize = %v, want magenta", got)
	}
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, bolt.ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}
	r, _ := New(10, 10)
	if err := r.Resize(10, -1); !errors.Is(err, bolt.ErrInvalidSize) {
		t.Errorf("Resize err = %v, want ErrInvalidSize", err)
	}
}

func TestDrawUnsupportedShape(t *testing.T) {
	r, _ := New(10, 10)
	if err := r.Draw(nil); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("err = %v, want ErrUnsupportedShape", err)
	}
}

func TestUnit8(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.1, 26},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := unit8(tt.in); got != tt.want {
			t.Errorf("unit8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
