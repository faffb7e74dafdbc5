// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"testing"
)

func TestOffscreenTargetResize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	target, err := NewOffscreenTarget(device, queue, 320, 240)
	if err != nil {
		t.Fatalf("NewOffscreenTarget: %v", err)
	}
	defer target.Destroy()

	w, h := target.Size()
	if w != 320 || h != 240 {
		t.Errorf("Size = (%d, %d), want (320, 240)", w, h)
	}

	orig := target.tex
	if err := target.Resize(320, 240); err != nil {
		t.Fatalf("same-size Resize: %v", err)
	}
	if target.tex != orig {
		t.Error("texture recreated for unchanged size")
	}

	if err := target.Resize(640, 480); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := target.Size(); w != 640 || h != 480 {
		t.Errorf("Size after resize = (%d, %d), want (640, 480)", w, h)
	}
	if target.View() == nil {
		t.Error("expected non-nil view after resize")
	}
}

func TestOffscreenTargetInvalidSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name string
		w, h uint32
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"both zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOffscreenTarget(device, queue, tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("err = %v, want ErrInvalidSize", err)
			}
		})
	}
}

func TestOffscreenTargetDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	target, err := NewOffscreenTarget(device, queue, 8, 8)
	if err != nil {
		t.Fatalf("NewOffscreenTarget: %v", err)
	}
	target.Destroy()
	if target.tex != nil || target.view != nil {
		t.Error("expected texture and view released")
	}
	if _, err := target.ReadPixels(); !errors.Is(err, ErrNilTarget) {
		t.Errorf("ReadPixels after Destroy: err = %v, want ErrNilTarget", err)
	}
	target.Destroy()
}

func TestUnpackBGRA(t *testing.T) {
	// 2x2 image with 12-byte row stride (4 bytes of padding per row).
	src := []byte{
		1, 2, 3, 4, 5, 6, 7, 8, 0xEE, 0xEE, 0xEE, 0xEE,
		9, 10, 11, 12, 13, 14, 15, 16, 0xEE, 0xEE, 0xEE, 0xEE,
	}
	dst := make([]byte, 16)
	UnpackBGRA(dst, src, 2, 2, 12)

	want := []byte{
		3, 2, 1, 4, 7, 6, 5, 8,
		11, 10, 9, 12, 15, 14, 13, 16,
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d (dst=%v)", i, dst[i], want[i], dst)
		}
	}
}
