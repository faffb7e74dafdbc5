// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// VertexStride is the byte stride per vertex in the quad pipeline.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 28 bytes per vertex.
const VertexStride = 28

// ColorOffset is the byte offset of the color attribute within a vertex.
const ColorOffset = 12

// VerticesPerQuad and IndicesPerQuad describe the fixed quad topology.
const (
	VerticesPerQuad = 4
	IndicesPerQuad  = 6
)

// Vertex is a single quad corner as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// quadIndices addresses the corners returned by QuadVertices as two
// counter-clockwise triangles (y-up): BL,TR,TL and BL,BR,TR.
var quadIndices = [IndicesPerQuad]uint16{0, 2, 1, 0, 3, 2}

// QuadIndices returns the index list for one quad.
func QuadIndices() [IndicesPerQuad]uint16 {
	return quadIndices
}

// QuadVertices returns the four corners of a quad centered at center,
// with width scale[0] and height scale[1], rotated by rotation radians
// about its center. Corners are ordered bottom-left, top-left, top-right,
// bottom-right. The z coordinate of every corner is center[2].
func QuadVertices(center, scale [3]float32, rotation float32, color [4]float32) [VerticesPerQuad]Vertex {
	hx := scale[0] / 2
	hy := scale[1] / 2

	offsets := [VerticesPerQuad][2]float32{
		{-hx, -hy},
		{-hx, hy},
		{hx, hy},
		{hx, -hy},
	}

	var out [VerticesPerQuad]Vertex
	if rotation == 0 {
		for i, o := range offsets {
			out[i] = Vertex{
				Position: [3]float32{center[0] + o[0], center[1] + o[1], center[2]},
				Color:    color,
			}
		}
		return out
	}

	sin, cos := math32.Sincos(rotation)
	for i, o := range offsets {
		x := o[0]*cos - o[1]*sin
		y := o[0]*sin + o[1]*cos
		out[i] = Vertex{
			Position: [3]float32{center[0] + x, center[1] + y, center[2]},
			Color:    color,
		}
	}
	return out
}

// EncodeVertices writes vertices into staging, growing it if necessary,
// and returns the (possibly reallocated) staging slice trimmed to the
// encoded length.
func EncodeVertices(vertices []Vertex, staging []byte) []byte {
	needed := len(vertices) * VertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	} else {
		staging = staging[:needed]
	}
	for i := range vertices {
		writeVertex(staging[i*VertexStride:], &vertices[i])
	}
	return staging
}

// DecodeVertices is the inverse of EncodeVertices. Trailing bytes that do
// not form a whole vertex are ignored.
func DecodeVertices(data []byte) []Vertex {
	n := len(data) / VertexStride
	out := make([]Vertex, n)
	for i := range out {
		b := data[i*VertexStride:]
		for j := 0; j < 3; j++ {
			out[i].Position[j] = readFloat32(b[j*4:])
		}
		for j := 0; j < 4; j++ {
			out[i].Color[j] = readFloat32(b[ColorOffset+j*4:])
		}
	}
	return out
}

// EncodeIndices encodes the quad index list as little-endian uint16 data,
// padded to a multiple of 4 bytes as required for buffer writes.
func EncodeIndices() []byte {
	size := IndicesPerQuad * 2
	size = (size + 3) &^ 3
	buf := make([]byte, size)
	for i, idx := range quadIndices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

func writeVertex(buf []byte, v *Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Color[3]))
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
