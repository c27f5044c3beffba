package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// Bounds returns the world-space box enclosing every mesh under root,
// visible or not. World matrices are refreshed first.
func Bounds(root *Node) math.Box3 {
	root.UpdateWorld()
	box := math.EmptyBox3()
	root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Mesh.Geometry == nil {
			return
		}
		box.Union(n.Mesh.Geometry.Bounds().Transform(n.world))
	})
	return box
}

// Vertex is a mesh vertex transformed to world space.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	HasNormal bool
}

// WalkVertices calls fn for every mesh vertex under root in world space.
// World matrices are refreshed first.
func WalkVertices(root *Node, fn func(Vertex)) {
	root.UpdateWorld()
	root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Mesh.Geometry == nil {
			return
		}
		g := n.Mesh.Geometry
		normalMatrix := n.world.Mat3().Inv().Transpose()
		hasNormals := len(g.Normals) == len(g.Positions)

		for i, p := range g.Positions {
			v := Vertex{Position: mgl32.TransformCoordinate(p, n.world)}
			if hasNormals {
				v.Normal = normalMatrix.Mul3x1(g.Normals[i]).Normalize()
				v.HasNormal = true
			}
			fn(v)
		}
	})
}
