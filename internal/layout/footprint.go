package layout

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/pkg/math"
)

const (
	// footprintSliceHeight is the fraction of the model height, from the
	// bottom, whose vertices define the footprint. Eaves and overhangs above
	// it are ignored.
	footprintSliceHeight = 0.46

	// footprintTrim is the quantile cut on each side once enough samples
	// are available.
	footprintTrim       = 0.02
	footprintMinSamples = 96
)

// LowerFootprintBounds returns the world-space footprint of model. X and Z
// come from the vertices in the lower slice of the model, trimmed to the
// 2%/98% quantiles when the slice is dense enough and the trimmed rectangle
// is non-degenerate. Y spans the whole model. A model with no vertices in
// the slice yields its full bounds.
func LowerFootprintBounds(model *scene.Node) math.Box3 {
	full := scene.Bounds(model)
	if full.IsEmpty() {
		return full
	}
	yLimit := full.Min.Y() + full.Size().Y()*footprintSliceHeight

	var xs, zs []float64
	scene.WalkVertices(model, func(v scene.Vertex) {
		if v.Position.Y() > yLimit {
			return
		}
		xs = append(xs, float64(v.Position.X()))
		zs = append(zs, float64(v.Position.Z()))
	})
	if len(xs) == 0 {
		return full
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minZ, maxZ := floats.Min(zs), floats.Max(zs)

	if len(xs) >= footprintMinSamples {
		slices.Sort(xs)
		slices.Sort(zs)
		rMinX := math.SortedQuantile(xs, footprintTrim)
		rMaxX := math.SortedQuantile(xs, 1-footprintTrim)
		rMinZ := math.SortedQuantile(zs, footprintTrim)
		rMaxZ := math.SortedQuantile(zs, 1-footprintTrim)
		if rMaxX > rMinX && rMaxZ > rMinZ {
			minX, maxX, minZ, maxZ = rMinX, rMaxX, rMinZ, rMaxZ
		}
	}

	return math.NewBox3(
		mgl32.Vec3{float32(minX), full.Min.Y(), float32(minZ)},
		mgl32.Vec3{float32(maxX), full.Max.Y(), float32(maxZ)},
	)
}
