package layout

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// LampLayout holds the mounting points of the practical night lamps.
type LampLayout struct {
	// FrontWallZ is the Z of the house front the wall lamps hang on.
	FrontWallZ float32
	DoorX      float32

	Garage mgl32.Vec3
	Door   mgl32.Vec3
	// Path lamps sit at the four corners of the front path: near-left,
	// near-right, far-left, far-right.
	Path [4]mgl32.Vec3
}

// PlaceLamps derives lamp positions from the footprint, the driveway and the
// full house bounds.
func PlaceLamps(fp math.Box3, d Driveway, house math.Box3) LampLayout {
	fpSize := fp.Size()
	houseSize := house.Size()

	frontWallZ := fp.Max.Z() + 0.014
	doorX := fp.Min.X() + fpSize.X()*0.635
	pathNearZ := frontWallZ + 0.12
	pathFarZ := pathNearZ + math.Clamp(d.Depth*0.5, 2.0, 2.65)
	wallZ := frontWallZ - 0.045

	const (
		sideOffset  = PathWidth/2 + 0.26
		cornerInset = 0.15
	)
	pathY := d.TopY + 0.125

	return LampLayout{
		FrontWallZ: frontWallZ,
		DoorX:      doorX,
		Garage:     mgl32.Vec3{d.X - d.Width*0.2, house.Min.Y() + houseSize.Y()*0.39, wallZ},
		Door:       mgl32.Vec3{doorX, house.Min.Y() + houseSize.Y()*0.46, wallZ},
		Path: [4]mgl32.Vec3{
			{doorX - sideOffset, pathY, pathNearZ + cornerInset},
			{doorX + sideOffset, pathY, pathNearZ + cornerInset},
			{doorX - sideOffset, pathY, pathFarZ - cornerInset},
			{doorX + sideOffset, pathY, pathFarZ - cornerInset},
		},
	}
}
