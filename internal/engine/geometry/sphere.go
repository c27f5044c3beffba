package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

// Sphere returns a UV sphere centered at the origin.
func Sphere(radius float32, widthSegments, heightSegments int) *scene.Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		indices   []uint32
	)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinV, cosV := math32.Sincos(v * math32.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)

			normal := mgl32.Vec3{-cosU * sinV, cosV, sinU * sinV}
			positions = append(positions, normal.Mul(radius))
			normals = append(normals, normal)
			uvs = append(uvs, mgl32.Vec2{u, 1 - v})
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return scene.NewGeometry(positions, normals, uvs, indices)
}

// Plane returns a width x height quad in the XY plane facing +Z.
func Plane(width, height float32) *scene.Geometry {
	w, h := width/2, height/2
	return scene.NewGeometry(
		[]mgl32.Vec3{{-w, -h, 0}, {w, -h, 0}, {w, h, 0}, {-w, h, 0}},
		[]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		[]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		[]uint32{0, 1, 2, 0, 2, 3},
	)
}
