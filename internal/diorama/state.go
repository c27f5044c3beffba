package diorama

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/animate"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/layout"
	"github.com/Faultbox/diorama/pkg/math"
)

// defaultChimney is the smoke anchor used until the house is available.
var defaultChimney = mgl32.Vec3{0, 2.35, -0.6}

// horizonFactor places the sky horizon as a fraction of the house height.
const horizonFactor = 0.87

// State is the animation state shared by the load continuations and the
// frame tick. All fields are written on the frame thread only.
type State struct {
	// Written once by the house continuation.
	House     *scene.Node
	Footprint math.Box3
	Ground    layout.Ground
	HasGround bool

	// Written by every environment anchor refresh.
	HouseBounds math.Box3
	HouseSize   mgl32.Vec3
	FrontWallZ  float32
	DoorX       float32
	HorizonY    float32

	// Written once by the car continuation; read by the car loop.
	Car animate.CarState

	// SmokeOffset is added to the chimney anchor to place the emitter.
	SmokeOffset mgl32.Vec3

	chimney         mgl32.Vec3
	chimneyResolved bool
}

// NewState returns the state before any model has loaded.
func NewState() *State {
	return &State{
		SmokeOffset: animate.SmokeOffset,
		chimney:     defaultChimney,
	}
}

// Chimney returns the chimney anchor and whether it has been resolved from
// the house geometry.
func (s *State) Chimney() (mgl32.Vec3, bool) {
	return s.chimney, s.chimneyResolved
}

// resolveChimney computes the chimney anchor from the house on first use.
// Later calls keep the first result until resetChimney.
func (s *State) resolveChimney() {
	if s.chimneyResolved || s.House == nil {
		return
	}
	s.chimney = layout.FindChimneyAnchor(s.House)
	s.chimneyResolved = true
}

func (s *State) resetChimney() {
	s.chimneyResolved = false
}

// SmokeEmitter returns the world position of the smoke plume's base.
func (s *State) SmokeEmitter() mgl32.Vec3 {
	return s.chimney.Add(s.SmokeOffset)
}

// refreshHouse recomputes the house bounds and the horizon. It reports
// false when there is no house or it has no geometry.
func (s *State) refreshHouse() bool {
	if s.House == nil {
		return false
	}
	bounds := scene.Bounds(s.House)
	if bounds.IsEmpty() {
		return false
	}
	s.HouseBounds = bounds
	s.HouseSize = bounds.Size()
	s.resolveChimney()
	s.HorizonY = bounds.Min.Y() + s.HouseSize.Y()*horizonFactor
	return true
}
