package animate

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/texture"
	"github.com/Faultbox/diorama/pkg/math"
)

// DefaultSkyAnchor is where the sky objects sit before a scene is framed.
var DefaultSkyAnchor = mgl32.Vec3{0, 7.2, -0.8}

// Sun motion.
const (
	sunSpeed     = 0.22
	sunAmplitude = 0.34
	sunSink      = 0.92
	moonSink     = 0.9
)

// SkyAnchor returns the shared base position of the sun, moon and stars for
// the given world bounds: above the scene, slightly right and behind.
func SkyAnchor(world math.Box3) (mgl32.Vec3, bool) {
	if world.IsEmpty() {
		return mgl32.Vec3{}, false
	}
	size := world.Size()
	center := world.Center()
	return mgl32.Vec3{
		center.X() + size.X()*0.06,
		center.Y() + size.Y()*0.94,
		center.Z() - size.Z()*0.16,
	}, true
}

// Sky animates the sun setting, the moon rising and the stars twinkling.
type Sky struct {
	Sun   *scene.Node
	Moon  *scene.Node
	Stars *scene.Node

	sunGlow   *scene.Material
	sunRays   *scene.Material
	sunLight  *scene.PointLight
	moonGlow  *scene.Material
	moonLight *scene.PointLight

	stars     []StarConfig
	starNodes []*scene.Node

	anchor mgl32.Vec3
}

// NewSky builds the sky objects at the default anchor.
func NewSky() *Sky {
	s := &Sky{
		Sun:   scene.NewGroup("sun"),
		Moon:  scene.NewGroup("moon"),
		Stars: scene.NewGroup("stars"),
		stars: StarLayout(StarSeed, StarCount),
	}

	sunCore := scene.NewStandardMaterial(0xffde86, 0.28, 0)
	sunCore.Emissive = scene.Hex(0xffab4f)
	sunCore.EmissiveIntensity = 1.3
	s.Sun.Add(scene.NewMeshNode("sun-core", geometry.Sphere(0.36, 28, 28), sunCore))

	s.sunGlow = scene.NewSpriteMaterial(texture.SunGlow(512), 0xffffff, 0.92, scene.BlendAdditive)
	glow := scene.NewSpriteNode("sun-glow", s.sunGlow)
	glow.Scale = mgl32.Vec3{3.4, 3.4, 1}

	s.sunRays = scene.NewSpriteMaterial(texture.SunRays(512, 18), 0xffffff, 0.74, scene.BlendAdditive)
	rays := scene.NewSpriteNode("sun-rays", s.sunRays)
	rays.Scale = mgl32.Vec3{4.9, 4.9, 1}

	s.sunLight = &scene.PointLight{Color: scene.Hex(0xffbf66), Intensity: 0.52, Distance: 56, Decay: 2}
	s.Sun.Add(glow, rays, scene.NewPointLightNode("sun-light", s.sunLight))

	moonCore := scene.NewStandardMaterial(0xe9f0ff, 0.36, 0.02)
	moonCore.Emissive = scene.Hex(0x7f93b8)
	moonCore.EmissiveIntensity = 0.55
	s.Moon.Add(scene.NewMeshNode("moon-core", geometry.Sphere(0.29, 24, 24), moonCore))

	s.moonGlow = scene.NewSpriteMaterial(texture.SunGlow(384), 0x9fb6de, 0, scene.BlendAdditive)
	moonGlow := scene.NewSpriteNode("moon-glow", s.moonGlow)
	moonGlow.Scale = mgl32.Vec3{2.85, 2.85, 1}

	s.moonLight = &scene.PointLight{Color: scene.Hex(0xafc5ef), Distance: 46, Decay: 2}
	s.Moon.Add(moonGlow, scene.NewPointLightNode("moon-light", s.moonLight))

	starTex := texture.Star(256)
	for i, cfg := range s.stars {
		n := scene.NewSpriteNode(fmt.Sprintf("star-%d", i),
			scene.NewSpriteMaterial(starTex, 0xdfebff, 0, scene.BlendAdditive))
		n.Position = cfg.Offset
		n.Scale = mgl32.Vec3{cfg.Scale, cfg.Scale, 1}
		s.Stars.Add(n)
		s.starNodes = append(s.starNodes, n)
	}

	s.SetAnchor(DefaultSkyAnchor)
	return s
}

// Nodes returns the root nodes to add to the scene.
func (s *Sky) Nodes() []*scene.Node {
	return []*scene.Node{s.Sun, s.Moon, s.Stars}
}

// Anchor returns the current base position.
func (s *Sky) Anchor() mgl32.Vec3 { return s.anchor }

// Star returns the layout of star i.
func (s *Sky) Star(i int) StarConfig { return s.stars[i] }

// StarNode returns the sprite node of star i.
func (s *Sky) StarNode(i int) *scene.Node { return s.starNodes[i] }

// SetAnchor moves the sun, moon and stars to a new base position.
func (s *Sky) SetAnchor(base mgl32.Vec3) {
	s.anchor = base
	s.Sun.Position = base
	s.Moon.Position = base
	s.Stars.Position = base
}

// Update animates the sky. horizonY is the height the sun and moon sink
// below when hidden.
func (s *Sky) Update(sample cycle.Sample, horizonY float32) {
	t := sample.Time
	night := sample.NightMix
	base := s.anchor

	// Sun.
	dayCycle := math.Wave(t, sunSpeed, 0)
	daySunY := base.Y() + dayCycle*sunAmplitude
	sunY := math.Lerp(daySunY, horizonY-sunSink, math.SmoothProgress(night, 0, 1))
	sunScale := math.Lerp(1, 0.02, night)

	s.Sun.Position = mgl32.Vec3{base.X(), sunY, base.Z()}
	s.Sun.SetUniformScale(sunScale)
	s.Sun.Visible = sunScale > hideScale
	s.sunRays.Rotation = math.Angle(t, 0.12)
	s.sunGlow.Rotation = -math.Angle(t, 0.04)
	s.sunRays.Opacity = 0.74 * (1 - night)
	s.sunGlow.Opacity = 0.92 * (1 - night)
	s.sunLight.Intensity = (0.44 + (dayCycle+1)*0.08) * (1 - night)

	// Moon.
	s.Moon.Position = mgl32.Vec3{
		base.X(),
		math.Lerp(horizonY-moonSink, base.Y()+0.04, math.EaseOutCubic(night)),
		base.Z(),
	}
	s.Moon.SetUniformScale(math.Lerp(0.1, 1, night))
	s.Moon.Visible = night > 0.02
	s.moonGlow.Opacity = 0.5 * night
	s.moonLight.Intensity = 0.34 * night

	// Stars.
	s.Stars.Position = base
	for i, cfg := range s.stars {
		n := s.starNodes[i]
		twinkle := cfg.Twinkle(t)
		n.Sprite.Material.Opacity = math.Clamp(night*twinkle*0.8, 0, 1)
		scale := cfg.Scale * (0.88 + twinkle*0.36)
		n.Scale = mgl32.Vec3{scale, scale, 1}
		n.Position = cfg.Offset
	}
}

// SunLight returns the sun's point light.
func (s *Sky) SunLight() *scene.PointLight { return s.sunLight }

// MoonLight returns the moon's point light.
func (s *Sky) MoonLight() *scene.PointLight { return s.moonLight }
