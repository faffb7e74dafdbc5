// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/bolt/internal/geom"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameTimeout bounds the fence wait after each frame submission.
const frameTimeout = 5 * time.Second

// ErrFrameTimeout is returned when the GPU does not signal the frame fence
// within frameTimeout.
var ErrFrameTimeout = errors.New("gpu: frame fence wait timed out")

// ErrNilTarget is returned when RenderFrame is called without a view.
var ErrNilTarget = errors.New("gpu: nil render target")

// QuadRenderer records and submits single-quad frames. It owns the quad
// pipeline, the static index buffer and the camera uniform with its bind
// group. Vertex buffers are created per frame and released after the
// submission completes.
//
// QuadRenderer is NOT safe for concurrent use: frames must be rendered
// sequentially from one goroutine.
type QuadRenderer struct {
	device hal.Device
	queue  hal.Queue

	pipeline *QuadPipeline

	indexBuf   hal.Buffer
	cameraBuf  hal.Buffer
	cameraBind hal.BindGroup
}

// NewQuadRenderer creates the pipeline for the given color format and
// uploads the index list and camera matrix. The camera is written once and
// never updated afterwards.
func NewQuadRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, camera geom.Matrix4) (*QuadRenderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	pipeline, err := NewQuadPipeline(device, format)
	if err != nil {
		return nil, err
	}

	r := &QuadRenderer{
		device:   device,
		queue:    queue,
		pipeline: pipeline,
	}
	if err := r.createStaticResources(camera); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *QuadRenderer) createStaticResources(camera geom.Matrix4) error {
	indexBuf, err := r.createAndUploadBuffer("quad_indices", geom.EncodeIndices(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create index buffer: %w", err)
	}
	r.indexBuf = indexBuf

	cameraBuf, err := r.createAndUploadBuffer("quad_camera", camera.Bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}
	r.cameraBuf = cameraBuf

	cameraBind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "quad_camera_bind",
		Layout: r.pipeline.CameraLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: cameraBuf.NativeHandle(), Offset: 0, Size: geom.CameraUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group: %w", err)
	}
	r.cameraBind = cameraBind
	return nil
}

// Format returns the color target format the renderer draws into.
func (r *QuadRenderer) Format() gputypes.TextureFormat {
	return r.pipeline.Format()
}

// RenderFrame records one render pass into target: clear to clearColor,
// bind the pipeline and camera, bind a transient vertex buffer holding
// vertexData and the static index buffer, and draw one quad. The command
// buffer is submitted and the call waits for the GPU before returning so
// the caller can present immediately.
func (r *QuadRenderer) RenderFrame(target hal.TextureView, vertexData []byte, clearColor gputypes.Color) error {
	if target == nil {
		return ErrNilTarget
	}
	if len(vertexData) != geom.VerticesPerQuad*geom.VertexStride {
		return fmt.Errorf("gpu: vertex data is %d bytes, want %d",
			len(vertexData), geom.VerticesPerQuad*geom.VertexStride)
	}

	vertBuf, err := r.createAndUploadBuffer("quad_vertices", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	defer r.device.DestroyBuffer(vertBuf)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "quad_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearColor,
		}},
	})
	r.recordDraw(rp, vertBuf)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	return r.submitAndWait(cmdBuf)
}

// recordDraw binds the quad state and issues the single indexed draw.
func (r *QuadRenderer) recordDraw(rp hal.RenderPassEncoder, vertBuf hal.Buffer) {
	rp.SetPipeline(r.pipeline.pipeline)
	rp.SetBindGroup(0, r.cameraBind, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.SetIndexBuffer(r.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(geom.IndicesPerQuad, 1, 0, 0, 0)
}

func (r *QuadRenderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, frameTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return ErrFrameTimeout
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (r *QuadRenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	slogger().Debug("buffer uploaded", "label", label, "bytes", len(data))
	return buf, nil
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times.
func (r *QuadRenderer) Destroy() {
	if r == nil || r.device == nil {
		return
	}
	if r.cameraBind != nil {
		r.device.DestroyBindGroup(r.cameraBind)
		r.cameraBind = nil
	}
	if r.cameraBuf != nil {
		r.device.DestroyBuffer(r.cameraBuf)
		r.cameraBuf = nil
	}
	if r.indexBuf != nil {
		r.device.DestroyBuffer(r.indexBuf)
		r.indexBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
}
