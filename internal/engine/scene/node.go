// Package scene provides the retained scene graph shared by the layout,
// animation and rendering code: transform nodes carrying meshes, billboard
// sprites and point lights.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// Node is a transform in the scene graph. A node optionally carries one
// drawable or light payload; groups carry none.
type Node struct {
	Name string

	// Local transform. Rotation holds XYZ Euler angles in radians.
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	// Visible hides the node and its whole subtree from rendering.
	Visible bool

	CastShadow    bool
	ReceiveShadow bool

	Mesh        *Mesh
	Sprite      *Sprite
	Light       *PointLight
	Directional *DirectionalLight
	Hemisphere  *HemisphereLight

	parent   *Node
	children []*Node
	world    mgl32.Mat4
}

// NewGroup creates an empty transform node.
func NewGroup(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
		world:   mgl32.Ident4(),
	}
}

// NewMeshNode creates a node drawing geometry with material.
func NewMeshNode(name string, geometry *Geometry, material *Material) *Node {
	n := NewGroup(name)
	n.Mesh = &Mesh{Geometry: geometry, Material: material}
	return n
}

// NewSpriteNode creates a camera-facing quad node.
func NewSpriteNode(name string, material *Material) *Node {
	n := NewGroup(name)
	n.Sprite = &Sprite{Material: material}
	return n
}

// NewDirectionalLightNode creates a node whose world position is the origin
// of a parallel light aimed at the light's target.
func NewDirectionalLightNode(name string, light *DirectionalLight) *Node {
	n := NewGroup(name)
	n.Directional = light
	return n
}

// NewHemisphereLightNode creates a node carrying sky/ground ambient light.
func NewHemisphereLightNode(name string, light *HemisphereLight) *Node {
	n := NewGroup(name)
	n.Hemisphere = light
	return n
}

// NewPointLightNode creates a node emitting light from its world position.
func NewPointLightNode(name string, light *PointLight) *Node {
	n := NewGroup(name)
	n.Light = light
	return n
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child if it belongs to n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Clear detaches all children.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Traverse calls fn for n and every descendant, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse restricted to visible subtrees.
func (n *Node) TraverseVisible(fn func(*Node)) {
	if !n.Visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.TraverseVisible(fn)
	}
}

// ResetTransform sets the identity local transform.
func (n *Node) ResetTransform() {
	n.Position = mgl32.Vec3{}
	n.Rotation = mgl32.Vec3{}
	n.Scale = mgl32.Vec3{1, 1, 1}
}

// SetUniformScale sets the same scale on all three axes.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// UpdateWorld recomputes the world matrices of n and its descendants,
// taking the current transforms of all ancestors into account.
func (n *Node) UpdateWorld() {
	parentWorld := mgl32.Ident4()
	if n.parent != nil {
		parentWorld = n.parent.composeWorld()
	}
	n.updateWorld(parentWorld)
}

func (n *Node) composeWorld() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.composeWorld().Mul4(n.LocalMatrix())
}

func (n *Node) updateWorld(parentWorld mgl32.Mat4) {
	n.world = parentWorld.Mul4(n.LocalMatrix())
	for _, c := range n.children {
		c.updateWorld(n.world)
	}
}

// WorldMatrix returns the matrix from the last UpdateWorld.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	return n.world
}

// WorldPosition returns the translation of the last computed world matrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.world.Col(3).Vec3()
}

// WorldScale returns the per-axis scale of the last computed world matrix.
func (n *Node) WorldScale() mgl32.Vec3 {
	return mgl32.Vec3{
		n.world.Col(0).Vec3().Len(),
		n.world.Col(1).Vec3().Len(),
		n.world.Col(2).Vec3().Len(),
	}
}
