package animate

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/layout"
	"github.com/Faultbox/diorama/pkg/math"
)

const lampColor = 0xffc982

// Lamp is a small emissive bulb with a warm point light.
type Lamp struct {
	Node         *scene.Node
	Bulb         *scene.Node
	Light        *scene.PointLight
	MaxIntensity float32
}

func newLamp(name string, bulbRadius, distance, maxIntensity float32) *Lamp {
	mat := scene.NewStandardMaterial(0x5a4633, 0.22, 0.1)
	mat.Emissive = scene.Hex(lampColor)

	l := &Lamp{
		Node:         scene.NewGroup(name),
		Bulb:         scene.NewMeshNode(name+"-bulb", geometry.Sphere(bulbRadius, 12, 12), mat),
		Light:        &scene.PointLight{Color: scene.Hex(lampColor), Distance: distance, Decay: 2},
		MaxIntensity: maxIntensity,
	}
	l.Node.Add(l.Bulb, scene.NewPointLightNode(name+"-light", l.Light))
	return l
}

// Lamps are the practical lights that come on at night: one by the garage,
// one by the door and four along the front path.
type Lamps struct {
	Root   *scene.Node
	Garage *Lamp
	Door   *Lamp
	Path   [4]*Lamp
}

// NewLamps builds the lamps, switched off.
func NewLamps() *Lamps {
	l := &Lamps{
		Root:   scene.NewGroup("lamps"),
		Garage: newLamp("garage-lamp", 0.078, 3.6, 1.02),
		Door:   newLamp("door-lamp", 0.065, 2.9, 0.82),
	}
	l.Root.Add(l.Garage.Node, l.Door.Node)
	for i := range l.Path {
		l.Path[i] = newLamp("path-lamp", 0.042, 1.55, 0.4)
		l.Root.Add(l.Path[i].Node)
	}
	return l
}

// All returns the lamps in flicker order.
func (l *Lamps) All() []*Lamp {
	return append([]*Lamp{l.Garage, l.Door}, l.Path[:]...)
}

// Place moves the lamps to their mounting points.
func (l *Lamps) Place(p layout.LampLayout) {
	l.Garage.Node.Position = p.Garage
	l.Door.Node.Position = p.Door
	for i, pos := range p.Path {
		l.Path[i].Node.Position = pos
	}
}

// Update fades the lamps in with the night and adds a gentle flicker.
func (l *Lamps) Update(sample cycle.Sample) {
	t := sample.Time
	warm := math.SmoothProgress(sample.NightMix, 0.04, 0.88)
	pulse := 0.94 + math.Wave(t, 3.4, 0)*0.06
	visible := warm > 0.03

	for i, lamp := range l.All() {
		lamp.Node.Visible = visible
		lamp.Bulb.Visible = visible
		mat := lamp.Bulb.Mesh.Material
		if !visible {
			lamp.Light.Intensity = 0
			mat.EmissiveIntensity = 0
			continue
		}
		fi := float32(i)
		flicker := 0.9 + math.Wave(t, 4.6+fi*0.37, fi*1.13)*0.1
		lamp.Light.Intensity = lamp.MaxIntensity * warm * flicker * pulse
		mat.EmissiveIntensity = warm * (0.42 + lamp.MaxIntensity*0.65)
	}
}

// Positions returns the lamp positions in flicker order.
func (l *Lamps) Positions() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, lamp := range l.All() {
		out = append(out, lamp.Node.Position)
	}
	return out
}
