// Package animate moves the diorama's animated objects for a point on the
// day/night timeline: the car loop, the sun, moon and stars, the chimney
// smoke and the practical lamps.
package animate

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/layout"
	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/pkg/math"
)

var log = logger.Component("animate")

// CarState is the car's part of the animation state. It is written once by
// ConfigureCar; afterwards CarLoop only reads it and owns the car node's
// transform and visibility.
type CarState struct {
	Node  *scene.Node
	Ready bool

	BaseScale       mgl32.Vec3
	Parked          mgl32.Vec3
	Entry           mgl32.Vec3
	Exit            mgl32.Vec3
	ParkedRotationY float32
}

// hideScale is the scale multiplier at or below which the car is hidden.
const hideScale = 0.025

// ConfigureCar records the parked transform of a placed car and derives the
// entry and exit points down the driveway. The car starts hidden.
func ConfigureCar(st *CarState, car *scene.Node, d layout.Driveway) {
	st.Node = car
	st.Parked = car.Position
	st.ParkedRotationY = car.Rotation.Y()
	st.BaseScale = car.Scale

	size := scene.Bounds(car).Size()
	travel := d.Depth*0.98 + math32.Max(size.X(), size.Z())*1.02

	st.Entry = st.Parked.Add(mgl32.Vec3{0, 0, travel})
	st.Exit = mgl32.Vec3{st.Parked.X(), st.Parked.Y(), st.Entry.Z() + d.Depth*0.12}
	st.Ready = true
	car.Visible = false

	log.Debug("car loop configured",
		zap.Float32("travel", travel),
		zap.Float32s("entry", st.Entry[:]),
		zap.Float32s("exit", st.Exit[:]),
	)
}

// CarLoop drives the car in from the street, parks it through the night and
// turns it around to leave at dawn.
type CarLoop struct {
	Phases cycle.Phases
}

// Region returns the part of the loop phase falls in.
func (l CarLoop) Region(phase float32) cycle.Region {
	return l.Phases.CarRegion(phase)
}

// Update positions the car for phase. It is a no-op until the car is
// configured.
func (l CarLoop) Update(st *CarState, phase float32) {
	if !st.Ready || st.Node == nil {
		return
	}
	p := l.Phases

	switch l.Region(phase) {
	case cycle.Hidden:
		st.Node.Visible = false

	case cycle.Entering:
		in := math.EaseOutCubic(math.SegmentProgress(phase, p.CarInStart, p.CarInEnd))
		pos := lerpVec(st.Entry, st.Parked, in)
		setCar(st, pos, st.ParkedRotationY, EntryScale(in))

	case cycle.Parked:
		setCar(st, st.Parked, st.ParkedRotationY, 1)

	case cycle.Exiting:
		out := math.SegmentProgress(phase, p.SunriseEnd, p.CarOutEnd)
		turn := math.SmoothProgress(out, 0, 0.32)
		move := math.EaseInCubic(math.SmoothProgress(out, 0.2, 1))
		pos := lerpVec(st.Parked, st.Exit, move)
		setCar(st, pos, st.ParkedRotationY+turn*math32.Pi, math.Lerp(1, 0.02, move))
	}
}

// EntryScale is the scale multiplier while driving in: the car grows from a
// speck, overshoots with a small bounce and settles at full size.
func EntryScale(progress float32) float32 {
	growth := math.Lerp(0.04, 1, progress)
	bounce := math32.Sin(progress*math32.Pi) * 0.2 * (1 - progress*0.45)
	overshoot := math32.Min(1.12, growth+bounce)
	return math.Lerp(overshoot, 1, math.SmoothProgress(progress, 0.72, 1))
}

func setCar(st *CarState, pos mgl32.Vec3, rotationY, scale float32) {
	scale = math32.Max(0, scale)
	if scale <= hideScale {
		st.Node.Visible = false
		return
	}
	st.Node.Visible = true
	st.Node.Position = pos
	st.Node.Rotation[1] = rotationY
	st.Node.Scale = st.BaseScale.Mul(scale)
}

func lerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
