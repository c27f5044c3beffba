package animate

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// Star layout constants.
const (
	StarCount = 16
	StarSeed  = 9417
)

// StarConfig is the fixed layout and twinkle parameters of one star.
type StarConfig struct {
	Offset    mgl32.Vec3
	Scale     float32
	Speed     float32
	Amplitude float32
	Phase     float32
}

// StarLayout draws count stars from a generator seeded with seed. The same
// arguments always produce the same layout.
func StarLayout(seed uint32, count int) []StarConfig {
	rng := math.NewSeededRandom(seed)
	stars := make([]StarConfig, count)
	for i := range stars {
		angle := rng.Float32() * math32.Pi * 2
		radius := 1.35 + rng.Float32()*3.8
		y := 0.16 + rng.Float32()*1.95
		z := (rng.Float32() - 0.5) * 0.74

		stars[i] = StarConfig{
			Offset:    mgl32.Vec3{math32.Cos(angle) * radius, y, z},
			Scale:     0.055 + rng.Float32()*0.088,
			Speed:     1.35 + rng.Float32()*2.8,
			Amplitude: 0.12 + rng.Float32()*0.24,
		}
		stars[i].Phase = float32(i)*0.83 + rng.Float32()*math32.Pi*2
	}
	return stars
}

// Twinkle returns the star's brightness factor at time t.
func (s StarConfig) Twinkle(t float64) float32 {
	return 0.82 + math.Wave(t, s.Speed, s.Phase)*s.Amplitude
}
