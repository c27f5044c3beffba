package geometry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ComputeNormals returns smooth per-vertex normals for an indexed triangle
// list: every triangle adds its area-weighted face normal to its three
// corners. Degenerate triangles are skipped and vertices touched by none
// point up.
func ComputeNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}

		v0, v1, v2 := positions[a], positions[b], positions[c]
		n := v1.Sub(v0).Cross(v2.Sub(v0))

		// Degenerate triangle detection
		if n.Len() < 1e-10 {
			continue
		}

		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	for i, n := range normals {
		if n.Len() < 1e-10 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}
