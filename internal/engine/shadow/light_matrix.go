package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

// upFor picks an up vector that is not parallel to the view direction.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if math32.Abs(dir.Normalize().Y()) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// LightMatrix returns the view-projection of a directional light placed at
// position and aimed at target, using cam's orthographic volume.
func LightMatrix(position, target mgl32.Vec3, cam scene.ShadowCamera) mgl32.Mat4 {
	dir := target.Sub(position)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
		target = position.Add(dir)
	}
	view := mgl32.LookAtV(position, target, upFor(dir))
	proj := mgl32.Ortho(cam.Left, cam.Right, cam.Bottom, cam.Top, cam.Near, cam.Far)
	return proj.Mul4(view)
}

// FitMatrix computes a light view-projection that encloses bounds.
// toLight is the normalized direction towards the light. It is used when a
// light has no explicit shadow volume.
func FitMatrix(toLight mgl32.Vec3, bounds math.Box3) mgl32.Mat4 {
	if bounds.IsEmpty() {
		return mgl32.Ident4()
	}
	center := bounds.Center()
	radius := bounds.Size().Len() / 2
	if radius == 0 {
		radius = 1
	}

	// Position light far enough to encompass entire scene
	distance := radius * 2
	position := center.Add(toLight.Normalize().Mul(distance))

	padding := radius * 0.1
	half := radius + padding
	return LightMatrix(position, center, scene.ShadowCamera{
		Left: -half, Right: half,
		Bottom: -half, Top: half,
		Near: 0.1, Far: distance + radius + padding,
	})
}

// HasVolume reports whether cam describes a usable orthographic volume.
func HasVolume(cam scene.ShadowCamera) bool {
	return cam.Right > cam.Left && cam.Top > cam.Bottom && cam.Far > cam.Near
}
