// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom builds the CPU-side data for the quad pipeline: the four
// corner vertices of a quad, the fixed index list and the orthographic
// camera matrix, plus their little-endian GPU encodings.
//
// Coordinates are in pixels with the origin at the window center and y
// growing upward. Corner order is bottom-left, top-left, top-right,
// bottom-right; the index list draws them as two counter-clockwise
// triangles.
package geom
