// Package geometry builds procedural triangle meshes for the scene graph.
package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

type face struct {
	normal, u, v mgl32.Vec3
}

// Outward faces of the unit cube. u x v == normal keeps triangles CCW.
var cubeFaces = [6]face{
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// RoundedBox returns a box centered at the origin whose edges and corners
// are rounded with radius. Each face is subdivided into 2*segments+1 rows so
// that the middle row spans the flat part and the outer rows bend around the
// edges. The radius is limited to half the smallest dimension.
func RoundedBox(width, height, depth float32, segments int, radius float32) *scene.Geometry {
	if segments < 1 {
		segments = 1
	}
	n := segments*2 + 1
	radius = math32.Min(radius, math32.Min(width/2, math32.Min(height/2, depth/2)))
	radius = math32.Max(radius, 0)

	inner := mgl32.Vec3{width/2 - radius, height/2 - radius, depth/2 - radius}
	halfSegment := 0.5 / float32(n)

	perFace := (n + 1) * (n + 1)
	positions := make([]mgl32.Vec3, 0, 6*perFace)
	normals := make([]mgl32.Vec3, 0, 6*perFace)
	uvs := make([]mgl32.Vec2, 0, 6*perFace)
	indices := make([]uint32, 0, 6*n*n*6)

	for _, f := range cubeFaces {
		base := uint32(len(positions))
		for row := 0; row <= n; row++ {
			t := float32(row) / float32(n)
			for col := 0; col <= n; col++ {
				s := float32(col) / float32(n)
				p := f.normal.Mul(0.5).Add(f.u.Mul(s - 0.5)).Add(f.v.Mul(t - 0.5))

				dir := mgl32.Vec3{
					p[0] - sign(p[0])*halfSegment,
					p[1] - sign(p[1])*halfSegment,
					p[2] - sign(p[2])*halfSegment,
				}.Normalize()

				positions = append(positions, mgl32.Vec3{
					inner[0]*sign(p[0]) + dir[0]*radius,
					inner[1]*sign(p[1]) + dir[1]*radius,
					inner[2]*sign(p[2]) + dir[2]*radius,
				})
				normals = append(normals, dir)
				uvs = append(uvs, mgl32.Vec2{s, t})
			}
		}
		stride := uint32(n + 1)
		for row := uint32(0); row < uint32(n); row++ {
			for col := uint32(0); col < uint32(n); col++ {
				a := base + row*stride + col
				b := a + 1
				c := a + stride + 1
				d := a + stride
				indices = append(indices, a, b, c, a, c, d)
			}
		}
	}
	return scene.NewGeometry(positions, normals, uvs, indices)
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
