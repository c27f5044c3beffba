package scene

import "github.com/go-gl/mathgl/mgl32"

// PointLight emits light in all directions from its node's world position.
type PointLight struct {
	Color     mgl32.Vec3
	Intensity float32
	// Distance is the cutoff range; zero means unbounded.
	Distance float32
	Decay    float32
}

// DirectionalLight shines from its node's world position towards Target.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Target    mgl32.Vec3

	CastShadow bool
	Shadow     ShadowCamera
}

// Direction returns the normalized direction the light travels in.
func (l *DirectionalLight) Direction(from mgl32.Vec3) mgl32.Vec3 {
	d := l.Target.Sub(from)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// ShadowCamera is the orthographic volume a directional light renders its
// shadow map from.
type ShadowCamera struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
	MapSize     int32
	Bias        float32
	NormalBias  float32
}

// HemisphereLight blends between a sky color above and a ground color below.
type HemisphereLight struct {
	SkyColor    mgl32.Vec3
	GroundColor mgl32.Vec3
	Intensity   float32
}
