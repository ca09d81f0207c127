package metadata

import (
	"fmt"

	"github.com/spaghettifunk/hello-triangle/engine/core"
	"github.com/spaghettifunk/hello-triangle/engine/math"
)

const (
	// Size in bytes of a float32 component.
	Float32Size = 4
	// Components per vertex position (x, y, z).
	CoordsPerVertex = 3
	// Number of vertices of the triangle.
	TriangleVertexCount = 3
)

// PrimitiveTopology is the way vertices are assembled during a draw call.
type PrimitiveTopology int

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyPointList
)

func (p PrimitiveTopology) String() string {
	switch p {
	case PrimitiveTopologyTriangleList:
		return "triangle-list"
	case PrimitiveTopologyTriangleStrip:
		return "triangle-strip"
	case PrimitiveTopologyLineList:
		return "line-list"
	case PrimitiveTopologyPointList:
		return "point-list"
	}
	return fmt.Sprintf("PrimitiveTopology(%d)", int(p))
}

// triangle corners in normalized device coordinates.
var triangleCorners = [TriangleVertexCount]math.Vec3{
	math.NewVec3(-0.5, -0.5, 0.0),
	math.NewVec3(0.5, -0.5, 0.0),
	math.NewVec3(0.0, 0.5, 0.0),
}

// TriangleVertices returns a fresh copy of the triangle's vertex data, tightly
// packed as x, y, z per vertex.
func TriangleVertices() []float32 {
	out := make([]float32, 0, TriangleVertexCount*CoordsPerVertex)
	for _, c := range triangleCorners {
		e := c.Elements()
		out = append(out, e[:]...)
	}
	return out
}

// VertexAttribute describes how a float attribute is read out of the bound
// array buffer.
type VertexAttribute struct {
	Location   uint32
	Components int32
	Normalized bool
	// Stride in bytes between consecutive vertices.
	Stride int32
	// Offset in bytes of the first component.
	Offset uintptr
}

// VertexLayout pairs raw vertex data with the attribute that reads it.
type VertexLayout struct {
	Data      []float32
	Attribute VertexAttribute
}

// PositionLayout is the layout of TriangleVertices bound to attribute slot 0.
func PositionLayout() VertexLayout {
	return VertexLayout{
		Data: TriangleVertices(),
		Attribute: VertexAttribute{
			Location:   0,
			Components: CoordsPerVertex,
			Normalized: false,
			Stride:     CoordsPerVertex * Float32Size,
			Offset:     0,
		},
	}
}

// VertexCount is the number of whole vertices in the layout.
func (l VertexLayout) VertexCount() int32 {
	if l.Attribute.Components <= 0 {
		return 0
	}
	return int32(len(l.Data)) / l.Attribute.Components
}

// SizeBytes is the size of the vertex data in bytes.
func (l VertexLayout) SizeBytes() int {
	return len(l.Data) * Float32Size
}

// Validate checks that the attribute reads the data tightly packed and without
// leftovers.
func (l VertexLayout) Validate() error {
	a := l.Attribute
	switch {
	case a.Components < 1 || a.Components > 4:
		return fmt.Errorf("%w: %d components per vertex", core.ErrInvalidVertexLayout, a.Components)
	case a.Stride != a.Components*Float32Size:
		return fmt.Errorf("%w: stride %d for %d float components", core.ErrInvalidVertexLayout, a.Stride, a.Components)
	case a.Offset != 0:
		return fmt.Errorf("%w: offset %d", core.ErrInvalidVertexLayout, a.Offset)
	case len(l.Data) == 0 || len(l.Data)%int(a.Components) != 0:
		return fmt.Errorf("%w: %d floats is not a whole number of vertices", core.ErrInvalidVertexLayout, len(l.Data))
	}
	return nil
}
