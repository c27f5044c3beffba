package model

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/texture"
)

func writeTestModel(t *testing.T) string {
	t.Helper()

	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	indices := modeler.WriteIndices(doc, []uint16{0, 2, 1})

	doc.Materials = []*gltf.Material{
		{
			Name: "Car_Tire",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{0.1, 0.1, 0.1, 1},
				RoughnessFactor: gltf.Float(0.9),
				MetallicFactor:  gltf.Float(0),
			},
		},
		{Name: "Window_Glass", AlphaMode: gltf.AlphaBlend},
	}
	doc.Meshes = []*gltf.Mesh{
		{
			Name: "wheel",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(indices),
				Attributes: map[string]int{gltf.POSITION: positions},
				Material:   gltf.Index(0),
			}},
		},
		{
			Name: "cabin",
			Primitives: []*gltf.Primitive{
				{Attributes: map[string]int{gltf.POSITION: positions}, Material: gltf.Index(0)},
				{Attributes: map[string]int{gltf.POSITION: positions}, Material: gltf.Index(1)},
			},
		},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "body", Children: []int{1, 2}, Translation: [3]float64{0, 1, 0}},
		{
			Name:     "wheel",
			Mesh:     gltf.Index(0),
			Rotation: [4]float64{0, 0.38268343, 0, 0.92387953},
			Scale:    [3]float64{2, 2, 2},
		},
		{Name: "cabin", Mesh: gltf.Index(1)},
	}
	doc.Scenes[0].Nodes = []int{0}

	path := filepath.Join(t.TempDir(), "car.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func findNode(root *scene.Node, name string) *scene.Node {
	var found *scene.Node
	root.Traverse(func(n *scene.Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

func TestGLTFLoaderLoad(t *testing.T) {
	root, err := GLTFLoader{}.Load(writeTestModel(t))
	require.NoError(t, err)

	body := findNode(root, "body")
	require.NotNil(t, body)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, body.Position)
	assert.Len(t, body.Children(), 2)

	wheel := findNode(root, "wheel")
	require.NotNil(t, wheel)
	require.NotNil(t, wheel.Mesh)
	assert.InDelta(t, mgl32.DegToRad(45), wheel.Rotation.Y(), 1e-4)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, wheel.Scale)

	geo := wheel.Mesh.Geometry
	assert.Len(t, geo.Positions, 3)
	assert.Equal(t, []uint32{0, 2, 1}, geo.Indices)
	assert.Empty(t, geo.Normals)

	mat := wheel.Mesh.Material
	assert.Equal(t, "Car_Tire", mat.Name)
	assert.Equal(t, scene.RoleTire, mat.Role)
	assert.InDelta(t, 0.9, mat.Roughness, 1e-6)
	assert.InDelta(t, 0.1, mat.Color.X(), 1e-6)

	cabin := findNode(root, "cabin")
	require.NotNil(t, cabin)
	assert.Nil(t, cabin.Mesh)
	require.Len(t, cabin.Children(), 2)
	assert.Equal(t, []uint32{0, 1, 2}, cabin.Children()[0].Mesh.Geometry.Indices)
	// Primitives sharing a material share the converted material.
	assert.Same(t, mat, cabin.Children()[0].Mesh.Material)

	glass := cabin.Children()[1].Mesh.Material
	assert.Equal(t, scene.RoleGlass, glass.Role)
	assert.True(t, glass.Transparent)

	bounds := scene.Bounds(root)
	assert.False(t, bounds.IsEmpty())
}

func TestGLTFLoaderMissingFile(t *testing.T) {
	_, err := GLTFLoader{}.Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestBuilderAccessorOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		prim func(pos int) *gltf.Primitive
		want string
	}{
		{
			name: "position",
			prim: func(int) *gltf.Primitive {
				return &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: 7}}
			},
			want: "read positions: accessor 7 out of range",
		},
		{
			name: "normal",
			prim: func(pos int) *gltf.Primitive {
				return &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos, gltf.NORMAL: 9}}
			},
			want: "read normals: accessor 9 out of range",
		},
		{
			name: "texcoord",
			prim: func(pos int) *gltf.Primitive {
				return &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: -1}}
			},
			want: "read uvs: accessor -1 out of range",
		},
		{
			name: "indices",
			prim: func(pos int) *gltf.Primitive {
				return &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos}, Indices: gltf.Index(12)}
			},
			want: "read indices: accessor 12 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := gltf.NewDocument()
			pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
			doc.Meshes = []*gltf.Mesh{{Name: "broken", Primitives: []*gltf.Primitive{tt.prim(pos)}}}
			doc.Nodes = []*gltf.Node{{Name: "broken", Mesh: gltf.Index(0)}}
			doc.Scenes[0].Nodes = []int{0}

			var err error
			assert.NotPanics(t, func() {
				_, err = newBuilder(doc, "").build("broken")
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name string
		want scene.MaterialRole
	}{
		{"Tire_Front", scene.RoleTire},
		{"chrome RIM", scene.RoleRim},
		{"Window", scene.RoleGlass},
		{"CarPaint", scene.RoleBody},
		{"car_tire", scene.RoleTire},
		{"Headlight", scene.RoleOther},
		{"", scene.RoleOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.name))
		})
	}
}

func TestStyleCar(t *testing.T) {
	car := scene.NewGroup("car")
	tire := scene.NewMeshNode("tire", nil, &scene.Material{Name: "Tire", Role: scene.RoleTire})
	glass := scene.NewMeshNode("glass", nil, &scene.Material{Name: "Window", Role: scene.RoleGlass})
	bare := scene.NewMeshNode("bare", nil, nil)
	car.Add(tire, glass, bare)

	StyleCar(car)

	assert.Equal(t, scene.Hex(0x1a1b1d), tire.Mesh.Material.Color)
	assert.InDelta(t, 0.95, tire.Mesh.Material.Roughness, 1e-6)
	assert.Equal(t, "Tire", tire.Mesh.Material.Name)

	assert.True(t, glass.Mesh.Material.Transparent)
	assert.InDelta(t, 0.85, glass.Mesh.Material.Opacity, 1e-6)

	assert.Equal(t, scene.Hex(0x5d646f), bare.Mesh.Material.Color)
	for _, n := range []*scene.Node{tire, glass, bare} {
		assert.True(t, n.CastShadow, n.Name)
		assert.True(t, n.ReceiveShadow, n.Name)
	}
}

func TestCarMaterialFresh(t *testing.T) {
	a := CarMaterial(scene.RoleBody)
	b := CarMaterial(scene.RoleBody)
	assert.NotSame(t, a, b)
	assert.Equal(t, scene.RoleBody, a.Role)
}

func TestStyleHouse(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	shared := scene.NewStandardMaterial(0x808080, 0.5, 0.5)
	shared.Map = src

	house := scene.NewGroup("house")
	a := scene.NewMeshNode("a", nil, shared)
	b := scene.NewMeshNode("b", nil, shared)
	house.Add(a, b)

	rc := texture.NewRecolorer()
	StyleHouse(house, rc)

	assert.NotSame(t, shared, a.Mesh.Material)
	assert.NotSame(t, a.Mesh.Material, b.Mesh.Material)
	assert.Equal(t, scene.Hex(0x808080), shared.Color)
	assert.Equal(t, scene.Hex(0xfffdf7), a.Mesh.Material.Color)
	assert.InDelta(t, 0.87, a.Mesh.Material.Roughness, 1e-6)
	assert.Equal(t, a.Mesh.Material.Map, b.Mesh.Material.Map)
	assert.Equal(t, 1, rc.Len())
	assert.True(t, a.CastShadow)
	assert.True(t, b.ReceiveShadow)
}

type fakeLoader map[string]error

func (f fakeLoader) Load(path string) (*scene.Node, error) {
	if err := f[path]; err != nil {
		return nil, err
	}
	return scene.NewGroup(path), nil
}

func TestAsyncLoader(t *testing.T) {
	failure := errors.New("boom")
	a := NewAsyncLoader(fakeLoader{"bad.glb": failure})

	var loaded []string
	var failed []error

	a.Load("house.glb", func(n *scene.Node) {
		loaded = append(loaded, n.Name)
		// Chained load issued from a continuation.
		a.Load("bad.glb", func(*scene.Node) {
			t.Error("bad.glb should fail")
		}, func(err error) {
			failed = append(failed, err)
		})
	}, func(err error) {
		t.Errorf("house.glb failed: %v", err)
	})
	assert.Equal(t, 1, a.Pending())

	a.Wait()
	assert.Equal(t, 0, a.Pending())
	assert.Equal(t, []string{"house.glb"}, loaded)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], failure)
	assert.Equal(t, 0, a.Poll())
}
