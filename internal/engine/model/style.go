package model

import (
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/texture"
)

// carMaterials builds the replacement material for each car part.
var carMaterials = map[scene.MaterialRole]func() *scene.Material{
	scene.RoleTire: func() *scene.Material {
		return scene.NewStandardMaterial(0x1a1b1d, 0.95, 0.02)
	},
	scene.RoleRim: func() *scene.Material {
		return scene.NewStandardMaterial(0xa3aab4, 0.3, 0.88)
	},
	scene.RoleGlass: func() *scene.Material {
		m := scene.NewStandardMaterial(0x95abc2, 0.14, 0)
		m.Opacity = 0.85
		m.Transparent = true
		return m
	},
	scene.RoleBody: func() *scene.Material {
		return scene.NewStandardMaterial(0x2d3440, 0.24, 0.66)
	},
	scene.RoleOther: func() *scene.Material {
		return scene.NewStandardMaterial(0x5d646f, 0.46, 0.38)
	},
}

// CarMaterial returns a fresh styled material for role.
func CarMaterial(role scene.MaterialRole) *scene.Material {
	build, ok := carMaterials[role]
	if !ok {
		build = carMaterials[scene.RoleOther]
	}
	m := build()
	m.Role = role
	return m
}

// StyleCar replaces every mesh material with the styled material for its
// role. All car meshes cast and receive shadows.
func StyleCar(car *scene.Node) {
	car.Traverse(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		role, name := scene.RoleOther, ""
		if src := n.Mesh.Material; src != nil {
			role, name = src.Role, src.Name
		}
		n.Mesh.Material = CarMaterial(role)
		n.Mesh.Material.Name = name
		n.CastShadow = true
		n.ReceiveShadow = true
	})
}

// StyleHouse gives the house a soft matte finish. Materials are cloned so
// shared source materials stay untouched, and base-color maps go through rc
// so a map shared by several materials is recolored once.
func StyleHouse(house *scene.Node, rc *texture.Recolorer) {
	house.Traverse(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		n.CastShadow = true
		n.ReceiveShadow = true
		if n.Mesh.Material == nil {
			return
		}

		m := n.Mesh.Material.Clone()
		if m.Map != nil {
			m.Map = rc.Recolor(m.Map)
		}
		m.Color = scene.Hex(0xfffdf7)
		m.Roughness = 0.87
		m.Metalness = 0.04
		n.Mesh.Material = m
	})
}
