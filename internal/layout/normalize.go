// Package layout derives the procedural layout of the diorama from the loaded
// models: the house footprint, the ground slabs built around it, the chimney
// anchor, the car's parking spot and the lamp positions.
package layout

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

// NormalizeOnGroundAndCenter moves model so that its bounds are centered on
// X/Z and rest on y = 0. The ground offset is measured twice because the
// first correction can change the bounds of transformed children.
func NormalizeOnGroundAndCenter(model *scene.Node) {
	bounds := scene.Bounds(model)
	if bounds.IsEmpty() {
		return
	}
	center := bounds.Center()
	model.Position[0] -= center.X()
	model.Position[2] -= center.Z()
	model.Position[1] -= bounds.Min.Y()

	grounded := scene.Bounds(model)
	model.Position[1] -= grounded.Min.Y()
}

// ScaleModelToFootprint scales model uniformly so that the larger of its X/Z
// extents equals target. Models without horizontal extent are left alone.
func ScaleModelToFootprint(model *scene.Node, target float32) {
	size := scene.Bounds(model).Size()
	footprint := math32.Max(size.X(), size.Z())
	if footprint <= 0 || target <= 0 {
		return
	}
	model.Scale = model.Scale.Mul(target / footprint)
}
