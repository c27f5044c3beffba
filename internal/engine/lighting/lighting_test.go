package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

func TestPointLightBufferLimit(t *testing.T) {
	buf := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		require.True(t, buf.AddLight(PointLight{Intensity: 1}))
	}
	assert.False(t, buf.AddLight(PointLight{}))
	assert.Equal(t, MaxPointLights, buf.Count)

	buf.Clear()
	assert.Zero(t, buf.Count)
	assert.Empty(t, buf.Lights)
}

func TestPointLightBufferFlatten(t *testing.T) {
	buf := NewPointLightBuffer()
	buf.AddLight(PointLight{
		Position:  [3]float32{1, 2, 3},
		Color:     [3]float32{1, 0.5, 0},
		Range:     3.6,
		Decay:     2,
		Intensity: 2,
	})

	assert.Equal(t, []float32{1, 2, 3}, buf.GetPositions()[:3])
	assert.Equal(t, []float32{2, 1, 0}, buf.GetColors()[:3])
	assert.Equal(t, float32(3.6), buf.GetRanges()[0])
	assert.Equal(t, float32(2), buf.GetDecays()[0])
	assert.Len(t, buf.GetPositions(), MaxPointLights*3)
}

func TestGather(t *testing.T) {
	root := scene.NewGroup("root")
	rig := NewRig(1024)
	root.Add(rig.Root)

	lamp := scene.NewGroup("lamp")
	lamp.Position = mgl32.Vec3{1, 0, 0}
	bulb := scene.NewPointLightNode("light", &scene.PointLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.5, Distance: 3, Decay: 2})
	bulb.Position = mgl32.Vec3{0, 2, 0}
	lamp.Add(bulb)

	off := scene.NewPointLightNode("off", &scene.PointLight{Intensity: 0})
	hidden := scene.NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(scene.NewPointLightNode("hidden", &scene.PointLight{Intensity: 1}))
	root.Add(lamp, off, hidden)

	lights := NewLights()
	lights.Gather(root)

	require.Equal(t, 1, lights.Points.Count)
	assert.Equal(t, [3]float32{1, 2, 0}, lights.Points.Lights[0].Position)
	assert.Len(t, lights.Directional, 3)
	assert.InDelta(t, 0.5, lights.SkyColor[0], 1e-6)

	caster, ok := lights.ShadowCaster()
	require.True(t, ok)
	assert.Same(t, rig.Key, caster.Source)
	// Key light at (10, 13, 7) aimed at the origin.
	dir := mgl32.Vec3{caster.Direction[0], caster.Direction[1], caster.Direction[2]}
	want := mgl32.Vec3{10, 13, 7}.Normalize()
	assert.InDelta(t, 0, dir.Sub(want).Len(), 1e-5)
}

func TestRigUpdate(t *testing.T) {
	rig := NewRig(0)
	assert.False(t, rig.Key.CastShadow)

	rig.Update(0)
	assert.Equal(t, DayLevels.Key, rig.Key.Intensity)

	rig.Update(1)
	assert.InDelta(t, NightLevels.Hemi, rig.Hemi.Intensity, 1e-6)
	assert.InDelta(t, NightLevels.Bounce, rig.Bounce.Intensity, 1e-6)

	rig.Update(0.5)
	assert.InDelta(t, (DayLevels.Fill+NightLevels.Fill)/2, rig.Fill.Intensity, 1e-6)

	rig.Update(3)
	assert.InDelta(t, NightLevels.Key, rig.Key.Intensity, 1e-6)
}

func TestFitShadow(t *testing.T) {
	rig := NewRig(1024)
	rig.FitShadow(math.NewBox3(mgl32.Vec3{-6, -0.8, -5}, mgl32.Vec3{6, 5, 7}))

	s := rig.Key.Shadow
	assert.InDelta(t, -8.4, s.Left, 1e-5)
	assert.InDelta(t, 8.4, s.Top, 1e-5)
	assert.InDelta(t, 34.8, s.Far, 1e-4)
	assert.InDelta(t, 0, rig.Key.Target.Sub(mgl32.Vec3{0, 1.05, 1}).Len(), 1e-5)

	small := NewRig(1024)
	small.FitShadow(math.NewBox3(mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, float32(30), small.Key.Shadow.Far)

	before := small.Key.Shadow
	small.FitShadow(math.EmptyBox3())
	assert.Equal(t, before, small.Key.Shadow)
}
