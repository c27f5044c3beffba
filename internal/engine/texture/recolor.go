package texture

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/diorama/pkg/math"
)

// Recolorer restyles house textures: warm roof and garage tones become
// slate, bright neutral walls become warm white. Results are memoized per
// source image so materials sharing a texture share the recolored copy.
type Recolorer struct {
	roof colorful.Color
	wall colorful.Color

	mu    sync.Mutex
	cache map[image.Image]image.Image
}

// NewRecolorer returns a Recolorer with the default palette.
func NewRecolorer() *Recolorer {
	return &Recolorer{
		roof:  mustLinearHex("#53575d"),
		wall:  mustLinearHex("#f8f4ea"),
		cache: make(map[image.Image]image.Image),
	}
}

// linearHex returns the linear-light components of a hex color. Target
// colors are blended into the sRGB texels in linear form, which darkens the
// slate noticeably.
func linearHex(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("texture: palette color %q: %w", s, err)
	}
	r, g, b := c.LinearRgb()
	return colorful.Color{R: r, G: g, B: b}, nil
}

// mustLinearHex is linearHex for the built-in palette constants.
func mustLinearHex(s string) colorful.Color {
	c, err := linearHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Recolor returns the restyled copy of src. A nil src yields nil.
func (rc *Recolorer) Recolor(src image.Image) image.Image {
	if src == nil {
		return nil
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if out, ok := rc.cache[src]; ok {
		return out
	}
	out := adjust.Apply(src, rc.pixel)
	rc.cache[src] = out
	return out
}

// Len returns the number of memoized textures.
func (rc *Recolorer) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.cache)
}

func (rc *Recolorer) pixel(px color.RGBA) color.RGBA {
	if px.A == 0 {
		return px
	}
	// Channels arrive premultiplied.
	alpha := float64(px.A) / 255
	c := colorful.Color{
		R: float64(px.R) / 255 / alpha,
		G: float64(px.G) / 255 / alpha,
		B: float64(px.B) / 255 / alpha,
	}
	out := rc.recolor(c.Clamped())
	return color.RGBA{
		R: uint8(out.R*alpha*255 + 0.5),
		G: uint8(out.G*alpha*255 + 0.5),
		B: uint8(out.B*alpha*255 + 0.5),
		A: px.A,
	}
}

func (rc *Recolorer) recolor(c colorful.Color) colorful.Color {
	hue, sat, val := c.Hsv()
	h := float32(hue / 360)
	s := float32(sat)
	v := float32(val)

	warmDist := math32.Abs(h - 0.075)
	warmDist = min(warmDist, 1-warmDist)
	roofMask := (1 - math.Smoothstep(warmDist, 0.055, 0.19)) *
		math.Smoothstep(s, 0.12, 0.86) *
		math.Smoothstep(v, 0.14, 0.95)

	next := c
	if roofMask > 0.01 {
		shade := float64(math.Lerp(0.74, 1.08, v))
		roof := colorful.Color{
			R: clamp01(rc.roof.R * shade),
			G: clamp01(rc.roof.G * shade),
			B: clamp01(rc.roof.B * shade),
		}
		next = lerpColor(next, roof, float64(min(1, roofMask*1.45)))
	}

	wallMask := (1 - math.Smoothstep(s, 0.2, 0.45)) *
		math.Smoothstep(v, 0.6, 0.98) *
		(1 - roofMask)
	if wallMask > 0.01 {
		next = lerpColor(next, rc.wall, float64(min(1, wallMask*0.68)))
	}
	return next
}

func lerpColor(a, b colorful.Color, t float64) colorful.Color {
	return colorful.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
