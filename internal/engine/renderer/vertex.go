package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/scene"
)

// vertex is the interleaved layout uploaded for every mesh.
type vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

const vertexSize = 8 * 4

// interleave packs a geometry for upload. Missing normals are generated and
// missing texture coordinates are zero.
func interleave(g *scene.Geometry) []vertex {
	normals := g.Normals
	if len(normals) != len(g.Positions) {
		normals = geometry.ComputeNormals(g.Positions, g.Indices)
	}

	out := make([]vertex, len(g.Positions))
	for i, p := range g.Positions {
		out[i].Position = p
		out[i].Normal = normals[i]
		if i < len(g.UVs) {
			out[i].TexCoord = g.UVs[i]
		}
	}
	return out
}

// normalMatrix returns the inverse transpose of the upper 3x3 of world.
func normalMatrix(world mgl32.Mat4) mgl32.Mat3 {
	m := world.Mat3()
	if m.Det() == 0 {
		return mgl32.Ident3()
	}
	return m.Inv().Transpose()
}
