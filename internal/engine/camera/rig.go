package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/math"
)

// RigConfig tunes the idle motion of the rig.
type RigConfig struct {
	AutoPanSpeed float32 // Angular speed of the idle sway
	AutoPanAngle float32 // Amplitude of the idle sway, radians
	AutoPanBias  float32 // Constant yaw offset, radians
	PointerPan   float32 // Yaw at full horizontal pointer deflection
	PointerLift  float32 // Height change at full vertical pointer deflection
	Smoothing    float32 // Per-frame pointer smoothing factor
}

// DefaultRigConfig returns the standard idle motion.
func DefaultRigConfig() RigConfig {
	return RigConfig{
		AutoPanSpeed: 0.23,
		AutoPanAngle: 0.22,
		AutoPanBias:  -0.06,
		PointerPan:   0.075,
		PointerLift:  0.58,
		Smoothing:    0.14,
	}
}

// Framing constants.
const (
	fitMargin   = 2.08
	targetLift  = 0.11
	targetShift = 0.03
	lookLift    = 0.18
)

var viewDirection = mgl32.Vec3{1.04, 0.58, 1.0}.Normalize()

// Rig frames the scene from a fixed diagonal and sways gently, nudged by
// the pointer. It takes no rotate, zoom or pan input.
type Rig struct {
	cfg RigConfig

	ready      bool
	target     mgl32.Vec3
	baseOffset mgl32.Vec3
	distance   float32

	pointerTarget  mgl32.Vec2
	pointerCurrent mgl32.Vec2
}

// NewRig creates an unfitted rig.
func NewRig(cfg RigConfig) *Rig {
	return &Rig{cfg: cfg}
}

// Ready reports whether the rig has been fitted to a scene.
func (r *Rig) Ready() bool { return r.ready }

// Target returns the fitted look target.
func (r *Rig) Target() mgl32.Vec3 { return r.target }

// Distance returns the fitted camera distance.
func (r *Rig) Distance() float32 { return r.distance }

// Pointer returns the smoothed pointer position in [-1, 1].
func (r *Rig) Pointer() mgl32.Vec2 { return r.pointerCurrent }

// Fit places cam so the whole of bounds is in view and updates its clip
// planes. Empty bounds leave the rig and camera untouched.
func (r *Rig) Fit(bounds math.Box3, cam *Perspective) {
	if bounds.IsEmpty() {
		return
	}
	size := bounds.Size()
	center := bounds.Center()

	maxDim := math32.Max(size.X(), math32.Max(size.Y(), size.Z()))
	fitDistance := maxDim / (2 * math32.Tan(math.DegToRad(cam.FOV/2)))
	distance := fitDistance * fitMargin

	cam.Near = math32.Max(0.03, distance/180)
	cam.Far = distance * 120

	r.target = mgl32.Vec3{
		center.X(),
		center.Y() + size.Y()*targetLift,
		center.Z() - size.Z()*targetShift,
	}
	r.baseOffset = viewDirection.Mul(distance)
	r.distance = distance
	r.ready = true

	cam.Position = r.target.Add(r.baseOffset)
	cam.LookAt(r.target)
}

// Update moves cam for elapsed seconds. It does nothing until fitted.
func (r *Rig) Update(elapsed float64, cam *Perspective) {
	if !r.ready {
		return
	}
	r.pointerCurrent = r.pointerCurrent.Add(r.pointerTarget.Sub(r.pointerCurrent).Mul(r.cfg.Smoothing))

	yaw := r.cfg.AutoPanBias + math.Wave(elapsed, r.cfg.AutoPanSpeed, 0)*r.cfg.AutoPanAngle +
		r.pointerCurrent.X()*r.cfg.PointerPan
	lift := r.pointerCurrent.Y() * r.cfg.PointerLift

	offset := mgl32.Rotate3DY(yaw).Mul3x1(r.baseOffset)
	cam.Position = r.target.Add(offset).Add(mgl32.Vec3{0, lift, 0})
	cam.LookAt(r.target.Add(mgl32.Vec3{0, lift * lookLift, 0}))
}

// PointerMove records a pointer position in pixels over a viewport.
func (r *Rig) PointerMove(x, y float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.pointerTarget = mgl32.Vec2{
		math.Clamp(x/float32(width)*2-1, -1, 1),
		math.Clamp(y/float32(height)*2-1, -1, 1),
	}
}

// PointerLeave recenters the pointer target. The rig eases back over the
// following frames.
func (r *Rig) PointerLeave() {
	r.pointerTarget = mgl32.Vec2{}
}
