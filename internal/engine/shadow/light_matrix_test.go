package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v.W())
}

func inClip(p mgl32.Vec3) bool {
	return p.X() >= -1 && p.X() <= 1 && p.Y() >= -1 && p.Y() <= 1 && p.Z() >= -1 && p.Z() <= 1
}

func TestLightMatrixTargetAtCenter(t *testing.T) {
	cam := scene.ShadowCamera{Left: -5, Right: 5, Bottom: -5, Top: 5, Near: 0.5, Far: 40}
	m := LightMatrix(mgl32.Vec3{10, 13, 7}, mgl32.Vec3{0, 1, 0}, cam)

	p := project(m, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.True(t, inClip(p))
}

func TestLightMatrixVertical(t *testing.T) {
	cam := scene.ShadowCamera{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 0.1, Far: 20}
	m := LightMatrix(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{}, cam)
	for _, v := range m {
		assert.False(t, v != v, "matrix contains NaN")
	}
	assert.True(t, inClip(project(m, mgl32.Vec3{0.5, 0, 0.5})))
}

func TestFitMatrixEnclosesBounds(t *testing.T) {
	bounds := math.NewBox3(mgl32.Vec3{-6, 0, -4}, mgl32.Vec3{6, 5, 8})
	m := FitMatrix(mgl32.Vec3{10, 13, 7}.Normalize(), bounds)
	for _, c := range bounds.Corners() {
		assert.True(t, inClip(project(m, c)), "corner %v outside light volume", c)
	}
}

func TestFitMatrixEmpty(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), FitMatrix(mgl32.Vec3{0, 1, 0}, math.EmptyBox3()))
}

func TestHasVolume(t *testing.T) {
	assert.False(t, HasVolume(scene.ShadowCamera{}))
	assert.True(t, HasVolume(scene.ShadowCamera{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 0.1, Far: 5}))
}
