// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/bolt/internal/geom"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/quad.wgsl
var quadShaderSource string

// ErrNilDevice is returned when a pipeline is created without a device.
var ErrNilDevice = errors.New("gpu: nil device")

// QuadPipeline owns the single fixed-function render pipeline used for
// solid-color quads: triangle list, CCW front face, back-face culling,
// replace blending, no depth/stencil, one sample.
//
// Bind group 0 holds one uniform buffer (the camera matrix) visible to the
// vertex stage only.
type QuadPipeline struct {
	device hal.Device
	format gputypes.TextureFormat

	shader       hal.ShaderModule
	cameraLayout hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout
	pipeline     hal.RenderPipeline
}

// NewQuadPipeline validates the quad shader and creates the pipeline for
// color targets of the given format. On failure every object created so
// far is released.
func NewQuadPipeline(device hal.Device, format gputypes.TextureFormat) (*QuadPipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	p := &QuadPipeline{device: device, format: format}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// ValidateShader compiles the embedded WGSL with naga to catch shader
// errors before they reach the driver.
func ValidateShader() error {
	if quadShaderSource == "" {
		return fmt.Errorf("quad shader source is empty")
	}
	if _, err := naga.Compile(quadShaderSource); err != nil {
		return fmt.Errorf("validate quad shader: %w", err)
	}
	return nil
}

func (p *QuadPipeline) create() error {
	if err := ValidateShader(); err != nil {
		return err
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_shader",
		Source: hal.ShaderSource{WGSL: quadShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile quad shader: %w", err)
	}
	p.shader = shader

	cameraLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_camera_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create quad camera layout: %w", err)
	}
	p.cameraLayout = cameraLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	blend := replaceBlend()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    QuadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	p.pipeline = pipeline

	slogger().Debug("quad pipeline created", "format", p.format)
	return nil
}

// Format returns the color target format the pipeline was built for.
func (p *QuadPipeline) Format() gputypes.TextureFormat {
	return p.format
}

// CameraLayout returns the bind group layout for the camera uniform.
func (p *QuadPipeline) CameraLayout() hal.BindGroupLayout {
	return p.cameraLayout
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call multiple times.
func (p *QuadPipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.cameraLayout != nil {
		p.device.DestroyBindGroupLayout(p.cameraLayout)
		p.cameraLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// QuadVertexLayout returns the vertex buffer layout for the quad pipeline.
// Matches VertexInput in quad.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: color    (vec4<f32>)
func QuadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: geom.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},                // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: geom.ColorOffset, ShaderLocation: 1}, // color
			},
		},
	}
}

// replaceBlend writes the fragment color as-is (src One, dst Zero).
func replaceBlend() gputypes.BlendState {
	replace := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorZero,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: replace, Alpha: replace}
}
