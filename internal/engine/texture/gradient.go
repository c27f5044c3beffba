package texture

import (
	"image"
	"image/color"

	"cogentcore.org/core/colors/gradient"
	"cogentcore.org/core/math32"
	"golang.org/x/image/draw"
)

// stop builds a gradient stop from an opaque color, an opacity in [0, 1]
// and a position along the gradient.
func stop(r, g, b uint8, opacity, pos float32) gradient.Stop {
	return gradient.Stop{Color: color.RGBA{R: r, G: g, B: b, A: 255}, Opacity: opacity, Pos: pos}
}

// bounds returns the pixel box of a size x size image.
func bounds(size int) math32.Box2 {
	return math32.B2(0, 0, float32(size), float32(size))
}

// radial returns a gradient between two concentric circles around the
// center of a size x size image. Stop positions run from the inner circle
// at 0 to the outer circle at 1.
func radial(size int, inner, outer float32, stops ...gradient.Stop) *gradient.Radial {
	c := float32(size) / 2

	g := gradient.NewRadial()
	g.Units = gradient.UserSpaceOnUse
	g.Center = math32.Vec2(c, c)
	g.Focal = g.Center
	g.Radius = math32.Vec2(outer, outer)
	for _, s := range stops {
		s.Pos = (inner + s.Pos*(outer-inner)) / outer
		g.Stops = append(g.Stops, s)
	}
	g.Update(1, bounds(size), math32.Identity2())
	return g
}

// linear returns a gradient from start to end, in pixels of a size x size
// image.
func linear(size int, start, end math32.Vector2, stops ...gradient.Stop) *gradient.Linear {
	g := gradient.NewLinear()
	g.Units = gradient.UserSpaceOnUse
	g.Start = start
	g.End = end
	g.Stops = append(g.Stops, stops...)
	g.Update(1, bounds(size), math32.Identity2())
	return g
}

// paint renders src into a new size x size image.
func paint(size int, src image.Image) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
	return img
}
