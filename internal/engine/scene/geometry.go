package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// Geometry is an indexed triangle list in local space.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32

	bounds      math.Box3
	boundsValid bool
}

// NewGeometry wraps vertex data. Normals and UVs may be nil.
func NewGeometry(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2, indices []uint32) *Geometry {
	return &Geometry{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}
}

// Bounds returns the local-space bounding box, computed once.
func (g *Geometry) Bounds() math.Box3 {
	if !g.boundsValid {
		g.bounds = math.EmptyBox3()
		for _, p := range g.Positions {
			g.bounds.ExpandByPoint(p)
		}
		g.boundsValid = true
	}
	return g.bounds
}

// Mesh pairs geometry with a material.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

// Sprite is a unit quad that always faces the camera. The node scale sets
// its world size.
type Sprite struct {
	Material *Material
}
