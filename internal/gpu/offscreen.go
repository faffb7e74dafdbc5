// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// OffscreenFormat is the color format of offscreen targets.
const OffscreenFormat = gputypes.TextureFormatBGRA8Unorm

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// ErrInvalidSize is returned for zero or negative target dimensions.
var ErrInvalidSize = errors.New("gpu: invalid target size")

// OffscreenTarget is a single-sample BGRA8 texture that can be rendered
// into and read back to the CPU. It stands in for a window surface in
// headless runs.
type OffscreenTarget struct {
	device hal.Device
	queue  hal.Queue

	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// NewOffscreenTarget allocates a w x h render target.
func NewOffscreenTarget(device hal.Device, queue hal.Queue, w, h uint32) (*OffscreenTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	t := &OffscreenTarget{device: device, queue: queue}
	if err := t.Resize(w, h); err != nil {
		return nil, err
	}
	return t, nil
}

// Size returns the target dimensions in pixels.
func (t *OffscreenTarget) Size() (uint32, uint32) {
	return t.width, t.height
}

// View returns the texture view to render into.
func (t *OffscreenTarget) View() hal.TextureView {
	return t.view
}

// Resize recreates the texture if the dimensions changed. Existing pixel
// contents are discarded.
func (t *OffscreenTarget) Resize(w, h uint32) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if t.width == w && t.height == h && t.tex != nil {
		return nil
	}
	t.destroyTexture()

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        OffscreenFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	t.tex = tex

	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		t.destroyTexture()
		return fmt.Errorf("create offscreen view: %w", err)
	}
	t.view = view
	t.width = w
	t.height = h
	return nil
}

// ReadPixels copies the texture into a staging buffer, waits for the GPU
// and returns the pixels as non-premultiplied RGBA.
func (t *OffscreenTarget) ReadPixels() (*image.RGBA, error) {
	if t.tex == nil {
		return nil, ErrNilTarget
	}
	w, h := t.width, t.height

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer t.device.DestroyBuffer(stagingBuf)

	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// After the render pass the texture is a color attachment; the copy
	// needs it as a transfer source. No-op on backends without layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(t.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer t.device.FreeCommandBuffer(cmdBuf)

	fence, err := t.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer t.device.DestroyFence(fence)

	if err := t.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	ok, err := t.device.Wait(fence, 1, frameTimeout)
	if err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return nil, ErrFrameTimeout
	}

	readback := make([]byte, stagingSize)
	if err := t.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	UnpackBGRA(img.Pix, readback, int(w), int(h), int(alignedBytesPerRow))
	return img, nil
}

// UnpackBGRA copies h rows of w BGRA pixels from src (rows stride bytes
// apart) into dst as tightly packed RGBA.
func UnpackBGRA(dst, src []byte, w, h, stride int) {
	for y := 0; y < h; y++ {
		srow := src[y*stride : y*stride+w*4]
		drow := dst[y*w*4 : (y+1)*w*4]
		for x := 0; x < w*4; x += 4 {
			drow[x+0] = srow[x+2]
			drow[x+1] = srow[x+1]
			drow[x+2] = srow[x+0]
			drow[x+3] = srow[x+3]
		}
	}
}

// Destroy releases the texture and view. Safe to call multiple times.
func (t *OffscreenTarget) Destroy() {
	if t == nil || t.device == nil {
		return
	}
	t.destroyTexture()
}

func (t *OffscreenTarget) destroyTexture() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width = 0
	t.height = 0
}
