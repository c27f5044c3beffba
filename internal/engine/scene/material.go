package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaterialRole classifies a loaded material so styling can dispatch on a
// tag instead of matching names every time.
type MaterialRole int

const (
	RoleOther MaterialRole = iota
	RoleTire
	RoleRim
	RoleGlass
	RoleBody
)

func (r MaterialRole) String() string {
	switch r {
	case RoleTire:
		return "tire"
	case RoleRim:
		return "rim"
	case RoleGlass:
		return "glass"
	case RoleBody:
		return "body"
	default:
		return "other"
	}
}

// BlendMode selects how a transparent surface is composited.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// Material describes the surface of a mesh or sprite.
type Material struct {
	Name string
	Role MaterialRole

	Color mgl32.Vec3
	Map   image.Image

	Emissive          mgl32.Vec3
	EmissiveIntensity float32

	Roughness float32
	Metalness float32

	Opacity     float32
	Transparent bool
	DepthWrite  bool
	Blend       BlendMode

	// Unlit surfaces ignore scene lights and output Color (times Map).
	Unlit       bool
	DoubleSided bool

	// Rotation spins a sprite's texture in screen space, in radians.
	Rotation float32
}

// NewStandardMaterial returns an opaque lit material.
func NewStandardMaterial(color uint32, roughness, metalness float32) *Material {
	return &Material{
		Color:      Hex(color),
		Roughness:  roughness,
		Metalness:  metalness,
		Opacity:    1,
		DepthWrite: true,
	}
}

// NewSpriteMaterial returns a transparent unlit material for billboards.
func NewSpriteMaterial(tex image.Image, color uint32, opacity float32, blend BlendMode) *Material {
	return &Material{
		Color:       Hex(color),
		Map:         tex,
		Opacity:     opacity,
		Transparent: true,
		Blend:       blend,
		Unlit:       true,
	}
}

// Clone returns a shallow copy. Texture images are shared.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Hex converts a 0xRRGGBB color to [0, 1] RGB components.
func Hex(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}
