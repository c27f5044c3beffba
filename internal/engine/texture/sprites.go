// Package texture generates the procedural sprite textures and recolors
// loaded model textures.
package texture

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/vector"
)

// SunGlow returns a warm radial glow used for the sun halo and, tinted, for
// the moon halo.
func SunGlow(size int) image.Image {
	s := float32(size)
	return paint(size, radial(size, s*0.08, s*0.5,
		stop(255, 255, 238, 1, 0),
		stop(255, 226, 146, 0.95, 0.18),
		stop(255, 178, 86, 0.55, 0.44),
		stop(255, 160, 74, 0, 1),
	))
}

// SunRays returns rays alternating between long and short spikes around a
// clear center.
func SunRays(size, rays int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	center := math32.Vec2(s/2, s/2)
	start := s * 0.14

	for i := 0; i < rays; i++ {
		angle := float32(i) / float32(rays) * 2 * math32.Pi
		length, width := s*0.42, s*0.032
		if i%2 == 0 {
			length, width = s*0.47, s*0.05
		}
		sin, cos := math32.Sincos(angle)
		rot := func(x, y float32) (float32, float32) {
			return center.X + x*cos - y*sin, center.Y + x*sin + y*cos
		}

		r := vector.NewRasterizer(size, size)
		r.MoveTo(rot(start, -width/2))
		r.LineTo(rot(length, 0))
		r.LineTo(rot(start, width/2))
		r.ClosePath()

		src := linear(size, center, center.Add(math32.Vec2(cos, sin).MulScalar(length)),
			stop(255, 210, 120, 0.28, 0),
			stop(255, 188, 85, 0.2, 0.55),
			stop(255, 180, 90, 0, 1),
		)
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
	return img
}

// Star returns a soft blue-white point with a thin cross.
func Star(size int) image.Image {
	s := float32(size)
	img := paint(size, radial(size, 0, s*0.5,
		stop(255, 255, 255, 1, 0),
		stop(218, 230, 255, 0.96, 0.28),
		stop(185, 205, 255, 0, 1),
	))

	center := s / 2
	arm := s * 0.2
	half := s * 0.045 / 2
	stroke := image.NewUniform(color.NRGBA{R: 210, G: 225, B: 255, A: 184})
	r := vector.NewRasterizer(size, size)
	rect(r, center-arm, center-half, center+arm, center+half)
	r.Draw(img, img.Bounds(), stroke, image.Point{})
	r.Reset(size, size)
	rect(r, center-half, center-arm, center+half, center+arm)
	r.Draw(img, img.Bounds(), stroke, image.Point{})
	return img
}

func rect(r *vector.Rasterizer, x0, y0, x1, y1 float32) {
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.ClosePath()
}

// Smoke returns a soft gray puff. A light blur removes gradient banding.
func Smoke(size int) image.Image {
	s := float32(size)
	puff := paint(size, radial(size, s*0.08, s*0.48,
		stop(245, 248, 255, 0.9, 0),
		stop(214, 222, 235, 0.58, 0.5),
		stop(180, 190, 206, 0, 1),
	))
	return blur.Gaussian(puff, float64(s)/128)
}
