package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

// Levels are the intensities of the four scene-wide lights.
type Levels struct {
	Hemi   float32
	Key    float32
	Fill   float32
	Bounce float32
}

// DayLevels and NightLevels are the two ends of the day/night blend.
var (
	DayLevels   = Levels{Hemi: 0.5, Key: 1.3, Fill: 0.4, Bounce: 0.2}
	NightLevels = Levels{Hemi: 0.12, Key: 0.22, Fill: 0.16, Bounce: 0.04}
)

// Lerp blends between a and b.
func (a Levels) Lerp(b Levels, t float32) Levels {
	return Levels{
		Hemi:   math.Lerp(a.Hemi, b.Hemi, t),
		Key:    math.Lerp(a.Key, b.Key, t),
		Fill:   math.Lerp(a.Fill, b.Fill, t),
		Bounce: math.Lerp(a.Bounce, b.Bounce, t),
	}
}

// Rig owns the ambient hemisphere light, the shadow casting key light and
// two soft directional fills.
type Rig struct {
	Root *scene.Node

	Hemi   *scene.HemisphereLight
	Key    *scene.DirectionalLight
	Fill   *scene.DirectionalLight
	Bounce *scene.DirectionalLight
}

// NewRig builds the rig at day levels. shadowSize is the key light's shadow
// map resolution; zero disables shadows.
func NewRig(shadowSize int32) *Rig {
	r := &Rig{
		Root: scene.NewGroup("lights"),
		Hemi: &scene.HemisphereLight{
			SkyColor:    scene.Hex(0xffffff),
			GroundColor: scene.Hex(0xd9e0e8),
		},
		Key: &scene.DirectionalLight{
			Color:      scene.Hex(0xffffff),
			CastShadow: shadowSize > 0,
			Shadow: scene.ShadowCamera{
				Left: -10, Right: 10, Bottom: -10, Top: 10,
				Near:       0.5,
				Far:        45,
				MapSize:    shadowSize,
				Bias:       -0.00022,
				NormalBias: 0.02,
			},
		},
		Fill:   &scene.DirectionalLight{Color: scene.Hex(0xe2ebff)},
		Bounce: &scene.DirectionalLight{Color: scene.Hex(0xfff0dd)},
	}

	hemi := scene.NewHemisphereLightNode("hemi", r.Hemi)
	key := scene.NewDirectionalLightNode("key", r.Key)
	key.Position = mgl32.Vec3{10, 13, 7}
	fill := scene.NewDirectionalLightNode("fill", r.Fill)
	fill.Position = mgl32.Vec3{-8, 6, -7}
	bounce := scene.NewDirectionalLightNode("bounce", r.Bounce)
	bounce.Position = mgl32.Vec3{4, 3, -8}
	r.Root.Add(hemi, key, fill, bounce)

	r.Apply(DayLevels)
	return r
}

// Apply sets the light intensities.
func (r *Rig) Apply(l Levels) {
	r.Hemi.Intensity = l.Hemi
	r.Key.Intensity = l.Key
	r.Fill.Intensity = l.Fill
	r.Bounce.Intensity = l.Bounce
}

// Update blends the rig between day and night.
func (r *Rig) Update(nightMix float32) {
	r.Apply(DayLevels.Lerp(NightLevels, math.Clamp(nightMix, 0, 1)))
}

// FitShadow sizes the key light's shadow volume to the world bounds and
// aims the light at the lower half of the scene.
func (r *Rig) FitShadow(world math.Box3) {
	if world.IsEmpty() {
		return
	}
	size := world.Size()
	center := world.Center()
	half := math32.Max(size.X(), size.Z()) * 0.7

	s := &r.Key.Shadow
	s.Left, s.Right = -half, half
	s.Bottom, s.Top = -half, half
	s.Near = 0.5
	s.Far = math32.Max(30, size.Y()*6)

	r.Key.Target = mgl32.Vec3{center.X(), center.Y() * 0.5, center.Z()}
}
