package renderer

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

// drawItem is one mesh or sprite queued for the current frame.
type drawItem struct {
	node   *scene.Node
	world  mgl32.Mat4
	mesh   *scene.Mesh
	sprite *scene.Sprite
	// depth is the distance in front of the camera along the view axis.
	depth float32
}

func (d drawItem) material() *scene.Material {
	if d.mesh != nil {
		return d.mesh.Material
	}
	return d.sprite.Material
}

// drawList sorts a frame's drawables into passes.
type drawList struct {
	opaque      []drawItem
	transparent []drawItem
	casters     []drawItem
}

func (dl *drawList) reset() {
	dl.opaque = dl.opaque[:0]
	dl.transparent = dl.transparent[:0]
	dl.casters = dl.casters[:0]
}

// build collects the visible drawables under root. World matrices must be
// current. Opaque meshes are sorted front to back and transparent surfaces
// back to front.
func (dl *drawList) build(root *scene.Node, view mgl32.Mat4) {
	dl.reset()

	root.TraverseVisible(func(n *scene.Node) {
		var item drawItem
		switch {
		case n.Mesh != nil && n.Mesh.Geometry != nil && n.Mesh.Material != nil:
			item = drawItem{node: n, mesh: n.Mesh}
		case n.Sprite != nil && n.Sprite.Material != nil:
			item = drawItem{node: n, sprite: n.Sprite}
		default:
			return
		}

		m := item.material()
		if m.Opacity <= 0 {
			return
		}
		item.world = n.WorldMatrix()
		item.depth = -view.Mul4x1(item.world.Col(3)).Z()

		if item.mesh != nil && n.CastShadow && !m.Transparent {
			dl.casters = append(dl.casters, item)
		}
		if item.sprite != nil || m.Transparent {
			dl.transparent = append(dl.transparent, item)
		} else {
			dl.opaque = append(dl.opaque, item)
		}
	})

	slices.SortStableFunc(dl.opaque, func(a, b drawItem) int {
		return cmp.Compare(a.depth, b.depth)
	})
	slices.SortStableFunc(dl.transparent, func(a, b drawItem) int {
		return cmp.Compare(b.depth, a.depth)
	})
}
