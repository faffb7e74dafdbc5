// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"encoding/binary"
	"math"
)

// CameraUniformSize is the byte size of the camera uniform buffer:
// one mat4x4<f32>.
const CameraUniformSize = 64

// Camera depth range. Quads live at z=0, which maps to NDC depth 0.5.
const (
	cameraNear = -1
	cameraFar  = 1
)

// Matrix4 is a column-major 4x4 float32 matrix, the layout WGSL expects
// for mat4x4<f32>.
type Matrix4 [16]float32

// Ortho returns an orthographic projection mapping the box
// [left,right] x [bottom,top] x [near,far] to WebGPU clip space
// (x,y in [-1,1], z in [0,1]).
func Ortho(left, right, bottom, top, near, far float32) Matrix4 {
	var m Matrix4
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = 1 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -near / (far - near)
	m[15] = 1
	return m
}

// ScreenCamera returns the view-projection for a window of the given
// pixel size. World units are pixels, the origin is the window center
// and y grows upward.
func ScreenCamera(width, height int) Matrix4 {
	hw := float32(width) / 2
	hh := float32(height) / 2
	return Ortho(-hw, hw, -hh, hh, cameraNear, cameraFar)
}

// Transform applies m to the point p (w=1) and returns clip-space
// coordinates after the perspective divide.
func (m Matrix4) Transform(p [3]float32) [3]float32 {
	x := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	y := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	z := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	w := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
		z /= w
	}
	return [3]float32{x, y, z}
}

// Bytes encodes the matrix as little-endian float32 data for a uniform
// buffer upload.
func (m Matrix4) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
