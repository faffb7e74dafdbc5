package bolt

import "github.com/gogpu/bolt/internal/geom"

// Shape2D is a shape Renderer2D can draw. The set of shapes is closed;
// Quad is the only implementation.
type Shape2D interface {
	vertices() [geom.VerticesPerQuad]geom.Vertex
}

// Quad is a solid-color rectangle in world units (pixels, origin at the
// window center, y up).
//
// Position is the center, Scale the full width and height (Z is ignored)
// and Color is RGBA in 0..1. Rotation turns the quad about its center in
// radians, counter-clockwise; zero gives the axis-aligned quad.
type Quad struct {
	Position [3]float32
	Scale    [3]float32
	Color    [4]float32
	Rotation float32
}

func (q Quad) vertices() [geom.VerticesPerQuad]geom.Vertex {
	return geom.QuadVertices(q.Position, q.Scale, q.Rotation, q.Color)
}

// Vertices returns the four corners of q in draw order: bottom-left,
// top-left, top-right, bottom-right.
func (q Quad) Vertices() [4][3]float32 {
	v := q.vertices()
	return [4][3]float32{v[0].Position, v[1].Position, v[2].Position, v[3].Position}
}
