// Package lighting collects the scene lights for GPU upload and drives the
// day/night light rig.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/scene"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 16

// MaxDirectionalLights is the maximum number of directional lights supported
// in shaders.
const MaxDirectionalLights = 4

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Cutoff distance, 0 for unbounded
	Decay     float32    // Falloff exponent
	Intensity float32
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// GetColors returns colors premultiplied by intensity as a flat float32
// slice for GPU upload.
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color[0] * light.Intensity
		result[i*3+1] = light.Color[1] * light.Intensity
		result[i*3+2] = light.Color[2] * light.Intensity
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetDecays returns decay exponents as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetDecays() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Decay
	}
	return result
}

// DirectionalLight is a parallel light prepared for GPU upload.
type DirectionalLight struct {
	// Direction points from the surface towards the light.
	Direction [3]float32
	Color     [3]float32 // premultiplied by intensity

	CastShadow bool
	Position   mgl32.Vec3
	Source     *scene.DirectionalLight
}

// Lights is everything the lit shader needs for one frame.
type Lights struct {
	SkyColor    [3]float32
	GroundColor [3]float32
	Directional []DirectionalLight
	Points      *PointLightBuffer
}

// NewLights creates an empty light set.
func NewLights() *Lights {
	return &Lights{Points: NewPointLightBuffer()}
}

// Gather refreshes world matrices under root and collects every light in a
// visible subtree. Lights at zero intensity are skipped.
func (l *Lights) Gather(root *scene.Node) {
	l.SkyColor = [3]float32{}
	l.GroundColor = [3]float32{}
	l.Directional = l.Directional[:0]
	l.Points.Clear()

	root.UpdateWorld()
	root.TraverseVisible(func(n *scene.Node) {
		switch {
		case n.Hemisphere != nil:
			h := n.Hemisphere
			for i := 0; i < 3; i++ {
				l.SkyColor[i] += h.SkyColor[i] * h.Intensity
				l.GroundColor[i] += h.GroundColor[i] * h.Intensity
			}
		case n.Directional != nil && n.Directional.Intensity > 0:
			if len(l.Directional) >= MaxDirectionalLights {
				return
			}
			d := n.Directional
			pos := n.WorldPosition()
			toLight := d.Direction(pos).Mul(-1)
			c := d.Color.Mul(d.Intensity)
			l.Directional = append(l.Directional, DirectionalLight{
				Direction:  [3]float32{toLight[0], toLight[1], toLight[2]},
				Color:      [3]float32{c[0], c[1], c[2]},
				CastShadow: d.CastShadow,
				Position:   pos,
				Source:     d,
			})
		case n.Light != nil && n.Light.Intensity > 0:
			p := n.Light
			pos := n.WorldPosition()
			l.Points.AddLight(PointLight{
				Position:  [3]float32{pos[0], pos[1], pos[2]},
				Color:     [3]float32{p.Color[0], p.Color[1], p.Color[2]},
				Range:     p.Distance,
				Decay:     p.Decay,
				Intensity: p.Intensity,
			})
		}
	})
}

// ShadowCaster returns the first shadow casting directional light, if any.
func (l *Lights) ShadowCaster() (DirectionalLight, bool) {
	for _, d := range l.Directional {
		if d.CastShadow {
			return d, true
		}
	}
	return DirectionalLight{}, false
}
