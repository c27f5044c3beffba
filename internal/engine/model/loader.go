// Package model loads glTF 2.0 models into scene nodes and applies the
// diorama's house and car material styling.
package model

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for embedded textures
	_ "image/png"  // register PNG decoder for embedded textures
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/pkg/math"
)

var log = logger.Component("model")

// Loader loads a model file into a scene node tree.
type Loader interface {
	Load(path string) (*scene.Node, error)
}

// GLTFLoader reads .gltf and .glb files.
type GLTFLoader struct{}

// Load opens the model at path and converts its default scene.
func (GLTFLoader) Load(path string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}

	b := newBuilder(doc, filepath.Dir(path))
	root, err := b.build(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("model: convert %s: %w", path, err)
	}

	log.Debug("model loaded",
		zap.String("path", path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("materials", len(doc.Materials)))
	return root, nil
}

// builder converts one document. Materials and images are converted once
// and shared by every primitive that references them.
type builder struct {
	doc       *gltf.Document
	dir       string
	materials map[int]*scene.Material
	images    map[int]image.Image
}

func newBuilder(doc *gltf.Document, dir string) *builder {
	return &builder{
		doc:       doc,
		dir:       dir,
		materials: make(map[int]*scene.Material),
		images:    make(map[int]image.Image),
	}
}

func (b *builder) build(name string) (*scene.Node, error) {
	root := scene.NewGroup(name)

	var roots []int
	switch {
	case b.doc.Scene != nil && *b.doc.Scene < len(b.doc.Scenes):
		roots = b.doc.Scenes[*b.doc.Scene].Nodes
	case len(b.doc.Scenes) > 0:
		roots = b.doc.Scenes[0].Nodes
	default:
		// No scene: every node that is nobody's child is a root.
		child := make(map[int]bool)
		for _, n := range b.doc.Nodes {
			for _, c := range n.Children {
				child[c] = true
			}
		}
		for i := range b.doc.Nodes {
			if !child[i] {
				roots = append(roots, i)
			}
		}
	}

	visited := make(map[int]bool)
	for _, idx := range roots {
		n, err := b.node(idx, visited)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	root.UpdateWorld()
	return root, nil
}

func (b *builder) node(idx int, visited map[int]bool) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	// Prevent infinite recursion
	if visited[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	visited[idx] = true

	src := b.doc.Nodes[idx]
	n := scene.NewGroup(src.Name)
	setTransform(n, src)

	if src.Mesh != nil {
		if err := b.attachMesh(n, *src.Mesh); err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", idx, src.Name, err)
		}
	}

	for _, c := range src.Children {
		child, err := b.node(c, visited)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// setTransform copies the node's local transform. Nodes given as a matrix
// are decomposed into position, Euler rotation and scale.
func setTransform(n *scene.Node, src *gltf.Node) {
	if src.Matrix != gltf.DefaultMatrix && src.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range src.Matrix {
			m[i] = float32(v)
		}
		n.Position, n.Rotation, n.Scale = math.Decompose(m)
		return
	}

	t := src.TranslationOrDefault()
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	n.Rotation = math.EulerXYZFromQuat(mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	})
	n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// attachMesh puts a single-primitive mesh on n itself and gives each
// primitive of a multi-primitive mesh its own child node.
func (b *builder) attachMesh(n *scene.Node, meshIdx int) error {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	src := b.doc.Meshes[meshIdx]

	var meshes []*scene.Mesh
	for i, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			log.Warn("skipping non-triangle primitive",
				zap.String("mesh", src.Name), zap.Int("primitive", i))
			continue
		}
		m, err := b.primitive(p)
		if err != nil {
			return fmt.Errorf("mesh %s primitive %d: %w", src.Name, i, err)
		}
		meshes = append(meshes, m)
	}

	if len(meshes) == 1 {
		n.Mesh = meshes[0]
		return nil
	}
	for i, m := range meshes {
		child := scene.NewGroup(fmt.Sprintf("%s_%d", src.Name, i))
		child.Mesh = m
		n.Add(child)
	}
	return nil
}

func (b *builder) primitive(p *gltf.Primitive) (*scene.Mesh, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("missing %s attribute", gltf.POSITION)
	}
	acc, err := b.accessor(posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	raw, err := modeler.ReadPosition(b.doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	positions := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		positions[i] = v
	}

	var normals []mgl32.Vec3
	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acc, err := b.accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		rawN, err := modeler.ReadNormal(b.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		normals = make([]mgl32.Vec3, len(rawN))
		for i, v := range rawN {
			normals[i] = v
		}
	}

	var uvs []mgl32.Vec2
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := b.accessor(idx)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		rawUV, err := modeler.ReadTextureCoord(b.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		uvs = make([]mgl32.Vec2, len(rawUV))
		for i, v := range rawUV {
			uvs[i] = v
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acc, err := b.accessor(*p.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		indices, err = modeler.ReadIndices(b.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	mat := b.defaultMaterial()
	if p.Material != nil {
		if mat, err = b.material(*p.Material); err != nil {
			return nil, err
		}
	}

	return &scene.Mesh{
		Geometry: scene.NewGeometry(positions, normals, uvs, indices),
		Material: mat,
	}, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *builder) defaultMaterial() *scene.Material {
	return scene.NewStandardMaterial(0xffffff, 1, 1)
}

func (b *builder) material(idx int) (*scene.Material, error) {
	if m, ok := b.materials[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(b.doc.Materials) {
		return nil, fmt.Errorf("material %d out of range", idx)
	}
	src := b.doc.Materials[idx]

	m := b.defaultMaterial()
	m.Name = src.Name
	m.Role = ResolveRole(src.Name)
	m.DoubleSided = src.DoubleSided
	m.Emissive = mgl32.Vec3{
		float32(src.EmissiveFactor[0]),
		float32(src.EmissiveFactor[1]),
		float32(src.EmissiveFactor[2]),
	}
	m.EmissiveIntensity = 1

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.Color = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
		m.Opacity = float32(c[3])
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())
		m.Metalness = float32(pbr.MetallicFactorOrDefault())

		if pbr.BaseColorTexture != nil {
			img, err := b.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				log.Warn("base color texture unavailable",
					zap.String("material", src.Name), zap.Error(err))
			} else {
				m.Map = img
			}
		}
	}

	if src.AlphaMode == gltf.AlphaBlend {
		m.Transparent = true
		m.DepthWrite = false
	}

	b.materials[idx] = m
	return m, nil
}

func (b *builder) texture(idx int) (image.Image, error) {
	if idx < 0 || idx >= len(b.doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", idx)
	}
	src := b.doc.Textures[idx].Source
	if src == nil {
		return nil, fmt.Errorf("texture %d has no image", idx)
	}
	if img, ok := b.images[*src]; ok {
		return img, nil
	}
	if *src < 0 || *src >= len(b.doc.Images) {
		return nil, fmt.Errorf("image %d out of range", *src)
	}

	data, err := b.imageData(b.doc.Images[*src])
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", *src, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %d: %w", *src, err)
	}
	b.images[*src] = img
	return img, nil
}

func (b *builder) imageData(img *gltf.Image) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView < 0 || *img.BufferView >= len(b.doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		return modeler.ReadBufferView(b.doc, b.doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(b.dir, filepath.FromSlash(img.URI)))
	default:
		return nil, fmt.Errorf("no image source")
	}
}
