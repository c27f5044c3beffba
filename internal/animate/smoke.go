package animate

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/texture"
	"github.com/Faultbox/diorama/pkg/math"
)

// SmokeCount is the number of smoke puffs in the plume.
const SmokeCount = 10

// SmokeOffset is added to the chimney anchor to place the plume's emitter.
var SmokeOffset = mgl32.Vec3{-1.35, 0, 0.73}

type puff struct {
	node   *scene.Node
	driftX float32
	driftZ float32
	offset float32
}

// Smoke is a looping plume of billboards rising from the chimney.
type Smoke struct {
	Root  *scene.Node
	puffs []puff
}

// NewSmoke builds the plume.
func NewSmoke() *Smoke {
	s := &Smoke{Root: scene.NewGroup("smoke")}
	tex := texture.Smoke(256)
	for i := 0; i < SmokeCount; i++ {
		n := scene.NewSpriteNode(fmt.Sprintf("smoke-%d", i),
			scene.NewSpriteMaterial(tex, 0xd5dbe6, 0, scene.BlendNormal))
		n.Scale = mgl32.Vec3{0.3, 0.3, 1}
		s.Root.Add(n)
		s.puffs = append(s.puffs, puff{
			node:   n,
			driftX: (float32(i) - 4.5) * 0.028,
			driftZ: math32.Sin(float32(i)*1.27) * 0.033,
			offset: float32(i) / SmokeCount,
		})
	}
	return s
}

// Puff returns the sprite node of puff i.
func (s *Smoke) Puff(i int) *scene.Node { return s.puffs[i].node }

// Update moves the emitter to emitter and advances every puff. Each puff
// rises on its own phase of a shared cycle, swaying as it grows and fading
// in and out over its life.
func (s *Smoke) Update(sample cycle.Sample, emitter mgl32.Vec3) {
	t := sample.Time
	s.Root.Position = emitter
	visible := sample.SmokeMix > 0.01

	for i, p := range s.puffs {
		fi := float32(i)
		rise := math.Cycle(t, 0.36, p.offset)
		sway := math.Wave(t, 2.1, fi*1.21+rise*6.2) * 0.056
		depth := math.CosWave(t, 1.8, fi*0.89+rise*4.4) * 0.024

		p.node.Position = mgl32.Vec3{
			p.driftX + sway*(0.31+rise),
			rise * 1.35,
			p.driftZ + depth,
		}
		p.node.Sprite.Material.Opacity = math.Clamp(sample.SmokeMix*math32.Sin(math32.Pi*rise)*0.86, 0, 1)
		p.node.Visible = visible

		size := 0.44 + rise*0.92
		p.node.Scale = mgl32.Vec3{size * 0.9, size * 1.4, 1}
	}
}
