package layout

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

const (
	carLengthFill   = 0.79
	carWidthFill    = 0.83
	carForwardShift = 0.14
	carEdgeInset    = 0.08
	carTireClear    = 0.014
)

// PlaceCarOnDriveway resets car's transform, turns it so its long axis runs
// along Z, scales it to fit the driveway, parks it slightly towards the
// street and keeps it inside the driveway with a small inset. The final
// height puts the lowest point just above the pavement. A car without
// extent is left at its reset transform.
func PlaceCarOnDriveway(car *scene.Node, d Driveway) {
	car.ResetTransform()
	NormalizeOnGroundAndCenter(car)

	base := scene.Bounds(car).Size()
	if math32.Max(base.X(), base.Z()) <= 0 {
		return
	}
	if base.X() >= base.Z() {
		car.Rotation[1] = math32.Pi / 2
	}

	oriented := scene.Bounds(car).Size()
	length := math32.Max(oriented.X(), oriented.Z())
	width := math32.Min(oriented.X(), oriented.Z())
	if length <= 0 || width <= 0 {
		return
	}
	scale := math32.Min(d.Depth*carLengthFill/length, d.Width*carWidthFill/width)
	car.Scale = car.Scale.Mul(scale)

	NormalizeOnGroundAndCenter(car)

	car.Position[0] = d.X
	car.Position[2] = d.Z + d.Depth*carForwardShift

	inset := Rect{
		MinX: d.X - d.Width/2 + carEdgeInset,
		MaxX: d.X + d.Width/2 - carEdgeInset,
		MinZ: d.Z - d.Depth/2 + carEdgeInset,
		MaxZ: d.Z + d.Depth/2 - carEdgeInset,
	}
	b := scene.Bounds(car)
	shift := mgl32.Vec3{}
	if b.Min.X() < inset.MinX {
		shift[0] += inset.MinX - b.Min.X()
	}
	if b.Max.X() > inset.MaxX {
		shift[0] -= b.Max.X() - inset.MaxX
	}
	if b.Min.Z() < inset.MinZ {
		shift[2] += inset.MinZ - b.Min.Z()
	}
	if b.Max.Z() > inset.MaxZ {
		shift[2] -= b.Max.Z() - inset.MaxZ
	}
	car.Position = car.Position.Add(shift)

	corrected := scene.Bounds(car)
	car.Position[1] += d.TopY + carTireClear - corrected.Min.Y()
}
