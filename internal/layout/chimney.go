package layout

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/logger"
)

var log = logger.Component("layout")

const (
	chimneyMinHeight   = 0.74
	chimneyMinNormalY  = 0.86
	chimneySummitBand  = 0.05
	chimneyAnchorAbove = 0.14
)

// FindChimneyAnchor estimates where smoke should leave the roof: the centroid
// of the highest upward-facing vertices in the top quarter of house, lifted
// slightly. Vertices without normals always count as upward facing. When no
// vertex qualifies a fixed point inside the bounds is returned.
func FindChimneyAnchor(house *scene.Node) mgl32.Vec3 {
	bounds := scene.Bounds(house)
	size := bounds.Size()
	fallback := mgl32.Vec3{
		bounds.Min.X() + size.X()*0.24,
		bounds.Min.Y() + size.Y()*0.86,
		bounds.Min.Z() + size.Z()*0.28,
	}
	if bounds.IsEmpty() {
		log.Debug("chimney anchor fallback", zap.String("reason", "empty house"))
		return fallback
	}

	minY := bounds.Min.Y() + size.Y()*chimneyMinHeight
	var candidates []mgl32.Vec3
	highest := float32(0)

	scene.WalkVertices(house, func(v scene.Vertex) {
		if v.Position.Y() < minY {
			return
		}
		if v.HasNormal && v.Normal.Y() < chimneyMinNormalY {
			return
		}
		if len(candidates) == 0 || v.Position.Y() > highest {
			highest = v.Position.Y()
		}
		candidates = append(candidates, v.Position)
	})
	if len(candidates) == 0 {
		log.Debug("chimney anchor fallback", zap.String("reason", "no upward roof vertices"))
		return fallback
	}

	threshold := highest - size.Y()*chimneySummitBand
	var xs, zs []float64
	for _, p := range candidates {
		if p.Y() < threshold {
			continue
		}
		xs = append(xs, float64(p.X()))
		zs = append(zs, float64(p.Z()))
	}
	if len(xs) == 0 {
		log.Debug("chimney anchor fallback", zap.String("reason", "no summit vertices"))
		return fallback
	}

	anchor := mgl32.Vec3{
		float32(stat.Mean(xs, nil)),
		highest + chimneyAnchorAbove,
		float32(stat.Mean(zs, nil)),
	}
	log.Debug("chimney anchor", zap.Int("summit", len(xs)), zap.Float32s("at", anchor[:]))
	return anchor
}
