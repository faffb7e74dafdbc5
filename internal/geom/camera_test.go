// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestScreenCameraMapsCornersToNDC(t *testing.T) {
	m := ScreenCamera(100, 100)

	tests := []struct {
		name string
		in   [3]float32
		want [3]float32
	}{
		{"center", [3]float32{0, 0, 0}, [3]float32{0, 0, 0.5}},
		{"top-right", [3]float32{50, 50, 0}, [3]float32{1, 1, 0.5}},
		{"bottom-left", [3]float32{-50, -50, 0}, [3]float32{-1, -1, 0.5}},
		{"quarter", [3]float32{25, -25, 0}, [3]float32{0.5, -0.5, 0.5}},
		{"near", [3]float32{0, 0, -1}, [3]float32{0, 0, 0}},
		{"far", [3]float32{0, 0, 1}, [3]float32{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Transform(tt.in)
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestScreenCameraNonSquare(t *testing.T) {
	m := ScreenCamera(800, 600)
	got := m.Transform([3]float32{400, 300, 0})
	if !approx(got[0], 1) || !approx(got[1], 1) {
		t.Errorf("corner maps to %v, want (1, 1)", got)
	}
}

func TestMatrixBytesColumnMajor(t *testing.T) {
	m := Ortho(0, 10, 0, 20, 0, 1)
	data := m.Bytes()
	if len(data) != CameraUniformSize {
		t.Fatalf("len = %d, want %d", len(data), CameraUniformSize)
	}
	// Translation lives in the fourth column (elements 12..14).
	tx := math.Float32frombits(binary.LittleEndian.Uint32(data[12*4:]))
	if !approx(tx, -1) {
		t.Errorf("m[12] = %v, want -1", tx)
	}
	sx := math.Float32frombits(binary.LittleEndian.Uint32(data[0:]))
	if !approx(sx, 0.2) {
		t.Errorf("m[0] = %v, want 0.2", sx)
	}
}
