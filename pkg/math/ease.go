package math

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the clamped cubic Hermite step of x between lo and hi.
func Smoothstep(x, lo, hi float32) float32 {
	if x <= lo {
		return 0
	}
	if x >= hi {
		return 1
	}
	x = (x - lo) / (hi - lo)
	return x * x * (3 - 2*x)
}

// SegmentProgress maps v to [0, 1] linearly across [start, end].
func SegmentProgress(v, start, end float32) float32 {
	if v <= start {
		return 0
	}
	if v >= end {
		return 1
	}
	return (v - start) / (end - start)
}

// SmoothProgress is SegmentProgress shaped by Smoothstep.
func SmoothProgress(v, start, end float32) float32 {
	return Smoothstep(SegmentProgress(v, start, end), 0, 1)
}

// EaseOutCubic decelerates towards t = 1.
func EaseOutCubic(t float32) float32 {
	t = Clamp(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}

// EaseInCubic accelerates away from t = 0.
func EaseInCubic(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * t
}

// Fract returns the fractional part of v in [0, 1).
func Fract(v float32) float32 {
	f := v - math32.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Wave returns sin(t*speed + offset). The argument is formed in float64 so
// a clock that has run for days keeps sub-frame resolution.
func Wave(t float64, speed, offset float32) float32 {
	return float32(gomath.Sin(t*float64(speed) + float64(offset)))
}

// CosWave is the cosine counterpart of Wave.
func CosWave(t float64, speed, offset float32) float32 {
	return float32(gomath.Cos(t*float64(speed) + float64(offset)))
}

// Cycle returns the fractional part of t*rate + offset in [0, 1).
func Cycle(t float64, rate, offset float32) float32 {
	v := t*float64(rate) + float64(offset)
	f := float32(v - gomath.Floor(v))
	if f >= 1 {
		return 0
	}
	return f
}

// Angle returns t*rate wrapped into [0, 2*pi).
func Angle(t float64, rate float32) float32 {
	a := gomath.Mod(t*float64(rate), 2*gomath.Pi)
	if a < 0 {
		a += 2 * gomath.Pi
	}
	return float32(a)
}
