// Package camera provides the perspective camera and the automatic framing
// rig that drives it.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// Perspective is a look-at camera with a vertical field of view.
type Perspective struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective creates a camera with the given field of view in degrees.
func NewPerspective(fov, aspect float32) *Perspective {
	if aspect <= 0 {
		aspect = 1
	}
	return &Perspective{
		Position: mgl32.Vec3{8, 5.5, 8},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      fov,
		Aspect:   aspect,
		Near:     0.03,
		Far:      260,
	}
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// SetAspect updates the aspect ratio from a viewport size.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(math.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Basis returns the camera's world-space right and up vectors, used to
// orient billboards.
func (c *Perspective) Basis() (right, up mgl32.Vec3) {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	forward = forward.Normalize()
	right = forward.Cross(c.Up)
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up
}
