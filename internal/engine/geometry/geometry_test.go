package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundedBoxBounds(t *testing.T) {
	tests := []struct {
		name                 string
		width, height, depth float32
		segments             int
		radius               float32
	}{
		{"driveway", 3.2, 0.058, 4.6, 4, 0.045},
		{"lawn", 12, 0.78, 10, 8, 0.62},
		{"radius clamped", 1, 0.1, 1, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := RoundedBox(tt.width, tt.height, tt.depth, tt.segments, tt.radius)
			size := g.Bounds().Size()
			assert.InDelta(t, tt.width, size.X(), 1e-4)
			assert.InDelta(t, tt.height, size.Y(), 1e-4)
			assert.InDelta(t, tt.depth, size.Z(), 1e-4)

			center := g.Bounds().Center()
			assert.InDelta(t, 0, center.Len(), 1e-4)
		})
	}
}

func TestRoundedBoxTopIsFlat(t *testing.T) {
	g := RoundedBox(2, 1, 2, 4, 0.1)
	var top int
	for i, p := range g.Positions {
		if p.Y() > 0.5-1e-5 {
			top++
			assert.InDelta(t, 1, g.Normals[i].Y(), 1e-5)
		}
	}
	assert.Positive(t, top)
}

func TestRoundedBoxIndices(t *testing.T) {
	g := RoundedBox(1, 1, 1, 2, 0.1)
	require.Zero(t, len(g.Indices)%3)
	for _, idx := range g.Indices {
		require.Less(t, int(idx), len(g.Positions))
	}
	assert.Len(t, g.Normals, len(g.Positions))
	assert.Len(t, g.UVs, len(g.Positions))
}

func TestRoundedBoxDeterministic(t *testing.T) {
	a := RoundedBox(3, 0.05, 4, 4, 0.045)
	b := RoundedBox(3, 0.05, 4, 4, 0.045)
	if diff := cmp.Diff(a.Positions, b.Positions); diff != "" {
		t.Errorf("positions differ (-a +b):\n%s", diff)
	}
}

func TestSphere(t *testing.T) {
	g := Sphere(0.36, 28, 28)
	for _, p := range g.Positions {
		assert.InDelta(t, 0.36, p.Len(), 1e-5)
	}
	size := g.Bounds().Size()
	assert.InDelta(t, 0.72, size.Y(), 1e-5)
	require.Zero(t, len(g.Indices)%3)
	// Pole rows contribute one triangle per segment, the rest two.
	assert.Len(t, g.Indices, 3*(2*28*28-2*28))
}

func TestPlane(t *testing.T) {
	g := Plane(2, 1)
	size := g.Bounds().Size()
	assert.InDelta(t, 2, size.X(), 1e-6)
	assert.InDelta(t, 1, size.Y(), 1e-6)
	assert.InDelta(t, 0, size.Z(), 1e-6)
}

func TestComputeNormals(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {5, 5, 5}}
	// Counter-clockwise seen from above, plus a degenerate triangle.
	indices := []uint32{0, 2, 1, 0, 0, 1}

	normals := ComputeNormals(positions, indices)
	require.Len(t, normals, 4)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, normals[i].Y(), 1e-6, "vertex %d", i)
	}
	// Unreferenced vertex falls back to up.
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, normals[3])
}
