package layout

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

// Ground dimensions, in world units.
const (
	PathWidth      = 1.02
	PavementHeight = 0.058

	connectorDepth  = 0.82
	pavementLift    = 0.002
	pavedSegments   = 4
	pavedRadius     = 0.045
	lawnMargin      = 0.96
	lawnBackMargin  = 1.12
	lawnNearMargin  = 0.48
	lawnFrontPad    = 0.28
	drivewayPad     = 0.04
	lawnMinSize     = 8.8
	lawnHeight      = 0.78
	lawnSegments    = 8
	lawnRadius      = 0.62
	pavementColor   = 0xcfd2d6
	lawnColor       = 0x86b96a
	frontEdgeOffset = 0.01
)

// Rect is an axis-aligned rectangle on the ground plane.
type Rect struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// RectAround returns the rectangle of the given size centered at (x, z).
func RectAround(x, z, width, depth float32) Rect {
	return Rect{
		MinX: x - width/2,
		MaxX: x + width/2,
		MinZ: z - depth/2,
		MaxZ: z + depth/2,
	}
}

func (r Rect) Width() float32   { return r.MaxX - r.MinX }
func (r Rect) Depth() float32   { return r.MaxZ - r.MinZ }
func (r Rect) CenterX() float32 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterZ() float32 { return (r.MinZ + r.MaxZ) / 2 }

// Contains reports whether o lies inside r, allowing eps of slack.
func (r Rect) Contains(o Rect, eps float32) bool {
	return o.MinX >= r.MinX-eps && o.MaxX <= r.MaxX+eps &&
		o.MinZ >= r.MinZ-eps && o.MaxZ <= r.MaxZ+eps
}

// Driveway describes the paved strip the car parks on. It is computed once
// from the house footprint and never modified afterwards.
type Driveway struct {
	X, Z  float32
	Width float32
	Depth float32
	// TopY is the height of the pavement surface.
	TopY float32
}

// Rect returns the driveway outline.
func (d Driveway) Rect() Rect {
	return RectAround(d.X, d.Z, d.Width, d.Depth)
}

// Slab is a rounded box resting on or sunk into the ground.
type Slab struct {
	Rect
	Height   float32
	CenterY  float32
	Segments int
	Radius   float32
}

// Ground is the complete ground layout derived from a house footprint.
type Ground struct {
	Driveway Driveway

	GarageX float32
	DoorX   float32

	DrivewaySlab  Slab
	PathSlab      Slab
	ConnectorSlab Slab
	Lawn          Slab
}

// Slabs returns the slabs in drawing order.
func (g Ground) Slabs() []Slab {
	return []Slab{g.DrivewaySlab, g.PathSlab, g.ConnectorSlab, g.Lawn}
}

// BuildGround lays out the driveway in front of the garage side of the
// house, a front path leading to the door, a connector between them and a
// lawn under everything. The result depends only on fp.
func BuildGround(fp math.Box3) Ground {
	size := fp.Size()
	frontEdgeZ := fp.Max.Z() + frontEdgeOffset
	backEdgeZ := fp.Min.Z()
	garageX := fp.Min.X() + size.X()*0.16
	doorX := fp.Min.X() + size.X()*0.635

	drivewayWidth := math.Clamp(size.X()*0.34, 2.75, 3.5)
	drivewayDepth := math.Clamp(size.Z()*0.84, 3.9, 5.3)
	pathDepth := math.Clamp(drivewayDepth*0.5, 2.0, 2.65)
	houseOverlap := math.Clamp(size.Z()*0.34, 1.34, 1.72)

	drivewayNearZ := frontEdgeZ - houseOverlap
	drivewayFarZ := drivewayNearZ + drivewayDepth
	pathNearZ := frontEdgeZ + 0.12
	pathFarZ := pathNearZ + pathDepth

	driveway := Rect{
		MinX: garageX - drivewayWidth/2,
		MaxX: garageX + drivewayWidth/2,
		MinZ: drivewayNearZ,
		MaxZ: drivewayFarZ,
	}
	path := Rect{
		MinX: doorX - PathWidth/2,
		MaxX: doorX + PathWidth/2,
		MinZ: pathNearZ,
		MaxZ: pathFarZ,
	}

	drivewayInnerX := driveway.MaxX
	doorConnX := doorX - PathWidth*0.04
	connectorWidth := math32.Max(PathWidth+0.24, math32.Abs(doorConnX-drivewayInnerX)+PathWidth)
	connector := RectAround(
		(doorConnX+drivewayInnerX)/2,
		pathFarZ-connectorDepth/2,
		connectorWidth,
		connectorDepth,
	)

	pavedNearZ := min(driveway.MinZ, path.MinZ, connector.MinZ)
	pavedFarZ := max(path.MaxZ, connector.MaxZ)

	lawn := Rect{
		MinX: min(fp.Min.X(), driveway.MinX, path.MinX, connector.MinX) - lawnMargin,
		MaxX: max(fp.Max.X(), driveway.MaxX, path.MaxX, connector.MaxX) + lawnMargin,
		MinZ: min(backEdgeZ-lawnBackMargin, pavedNearZ-lawnNearMargin),
		MaxZ: max(driveway.MaxZ+drivewayPad, pavedFarZ+lawnFrontPad),
	}
	if w := lawn.Width(); w < lawnMinSize {
		extra := lawnMinSize - w
		lawn.MinX -= extra / 2
		lawn.MaxX += extra / 2
	}
	if d := lawn.Depth(); d < lawnMinSize {
		// Extra depth goes behind the house so the front stays tight.
		lawn.MinZ -= lawnMinSize - d
	}

	pathHeight := float32(PavementHeight * 0.92)
	return Ground{
		Driveway: Driveway{
			X:     garageX,
			Z:     driveway.CenterZ(),
			Width: drivewayWidth,
			Depth: drivewayDepth,
			TopY:  PavementHeight + pavementLift,
		},
		GarageX: garageX,
		DoorX:   doorX,
		DrivewaySlab: Slab{
			Rect:     driveway,
			Height:   PavementHeight,
			CenterY:  PavementHeight/2 + pavementLift,
			Segments: pavedSegments,
			Radius:   pavedRadius,
		},
		PathSlab: Slab{
			Rect:     path,
			Height:   pathHeight,
			CenterY:  pathHeight/2 + pavementLift,
			Segments: pavedSegments,
			Radius:   pavedRadius,
		},
		ConnectorSlab: Slab{
			Rect:     connector,
			Height:   pathHeight,
			CenterY:  pathHeight/2 + pavementLift,
			Segments: pavedSegments,
			Radius:   pavedRadius,
		},
		Lawn: Slab{
			Rect:     lawn,
			Height:   lawnHeight,
			CenterY:  -lawnHeight / 2,
			Segments: lawnSegments,
			Radius:   lawnRadius,
		},
	}
}

// BuildGroundMeshes replaces the children of root with one mesh per slab of
// g. Calling it again with the same layout yields identical meshes.
func BuildGroundMeshes(root *scene.Node, g Ground) {
	root.Clear()

	pavement := scene.NewStandardMaterial(pavementColor, 0.97, 0)
	pavement.Name = "pavement"
	grass := scene.NewStandardMaterial(lawnColor, 1, 0)
	grass.Name = "lawn"

	add := func(name string, s Slab, mat *scene.Material) {
		n := scene.NewMeshNode(name, geometry.RoundedBox(s.Width(), s.Height, s.Depth(), s.Segments, s.Radius), mat)
		n.Position = mgl32.Vec3{s.CenterX(), s.CenterY, s.CenterZ()}
		n.ReceiveShadow = true
		root.Add(n)
	}
	add("driveway", g.DrivewaySlab, pavement)
	add("front-path", g.PathSlab, pavement)
	add("connector-path", g.ConnectorSlab, pavement)
	add("lawn", g.Lawn, grass)
}
