// Package diorama assembles the looping day/night scene. It owns the scene
// graph and the animation state, runs the model load continuations and
// advances every animator from a single elapsed time.
package diorama

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/animate"
	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/lighting"
	"github.com/Faultbox/diorama/internal/engine/model"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/engine/texture"
	"github.com/Faultbox/diorama/internal/layout"
	"github.com/Faultbox/diorama/internal/logger"
)

var log = logger.Component("diorama")

// houseLift raises the normalized house off the ground slabs.
const houseLift = 0.01

// Config holds the scene settings.
type Config struct {
	HouseModel string
	CarModel   string
	// HouseFootprint is the target horizontal extent of the house.
	HouseFootprint float32

	Phases cycle.Phases
	Camera camera.RigConfig
	FOV    float32

	// ShadowResolution is the key light's shadow map size; zero disables
	// shadows.
	ShadowResolution int32
}

// DefaultConfig returns the standard scene.
func DefaultConfig() Config {
	return Config{
		HouseModel:       "assets/house.glb",
		CarModel:         "assets/car.glb",
		HouseFootprint:   8.2,
		Phases:           cycle.Default(),
		Camera:           camera.DefaultRigConfig(),
		FOV:              45,
		ShadowResolution: 1024,
	}
}

// Validate checks the config for values the scene cannot run with.
func (c Config) Validate() error {
	if c.HouseModel == "" {
		return fmt.Errorf("diorama: house model path is empty")
	}
	if c.CarModel == "" {
		return fmt.Errorf("diorama: car model path is empty")
	}
	if !(c.HouseFootprint > 0) {
		return fmt.Errorf("diorama: house footprint must be positive, got %v", c.HouseFootprint)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("diorama: fov must be in (0, 180), got %v", c.FOV)
	}
	return c.Phases.Validate()
}

// Renderer draws a frame of the scene.
type Renderer interface {
	Render(root *scene.Node, cam *camera.Perspective)
	Resize(width, height int)
}

// Diorama is the scene and its animators.
type Diorama struct {
	cfg Config

	Scene  *scene.Node
	World  *scene.Node
	Camera *camera.Perspective
	Rig    *camera.Rig
	Lights *lighting.Rig
	Sky    *animate.Sky
	Smoke  *animate.Smoke
	Lamps  *animate.Lamps
	State  *State

	groundRoot *scene.Node
	houseRoot  *scene.Node
	carRoot    *scene.Node

	carLoop    animate.CarLoop
	recolorer  *texture.Recolorer
	loader     *model.AsyncLoader
	lastRegion cycle.Region
}

// New builds the empty scene. Nothing is loaded until Start.
func New(cfg Config, loader model.Loader, aspect float32) *Diorama {
	d := &Diorama{
		cfg:        cfg,
		Scene:      scene.NewGroup("scene"),
		World:      scene.NewGroup("world"),
		Camera:     camera.NewPerspective(cfg.FOV, aspect),
		Rig:        camera.NewRig(cfg.Camera),
		Lights:     lighting.NewRig(cfg.ShadowResolution),
		Sky:        animate.NewSky(),
		Smoke:      animate.NewSmoke(),
		Lamps:      animate.NewLamps(),
		State:      NewState(),
		groundRoot: scene.NewGroup("ground"),
		houseRoot:  scene.NewGroup("house"),
		carRoot:    scene.NewGroup("car"),
		carLoop:    animate.CarLoop{Phases: cfg.Phases},
		recolorer:  texture.NewRecolorer(),
		loader:     model.NewAsyncLoader(loader),
		lastRegion: cycle.Hidden,
	}

	d.World.Add(d.groundRoot, d.houseRoot, d.carRoot)
	d.Scene.Add(d.Lights.Root, d.World)
	d.Scene.Add(d.Sky.Nodes()...)
	d.Scene.Add(d.Smoke.Root, d.Lamps.Root)
	d.Smoke.Root.Position = d.State.SmokeEmitter()
	d.Camera.LookAt(mgl32.Vec3{})
	return d
}

// Start issues the house load. The car load follows from its continuation.
func (d *Diorama) Start() {
	d.loader.Load(d.cfg.HouseModel, d.OnHouseLoaded, d.OnHouseFailed)
}

// Poll runs the continuations of finished loads. Call it once per frame.
func (d *Diorama) Poll() int {
	return d.loader.Poll()
}

// Wait blocks until every issued load, including chained ones, has run its
// continuation.
func (d *Diorama) Wait() {
	d.loader.Wait()
}

// Loading reports whether a load is still in flight.
func (d *Diorama) Loading() bool {
	return d.loader.Pending() > 0
}

// OnHouseLoaded prepares the house, derives the ground from its footprint
// and issues the car load.
func (d *Diorama) OnHouseLoaded(house *scene.Node) {
	st := d.State
	d.houseRoot.Add(house)
	st.House = house

	layout.ScaleModelToFootprint(house, d.cfg.HouseFootprint)
	layout.NormalizeOnGroundAndCenter(house)
	house.Position[1] += houseLift

	model.StyleHouse(house, d.recolorer)

	st.Footprint = layout.LowerFootprintBounds(house)
	st.Ground = layout.BuildGround(st.Footprint)
	st.HasGround = true
	layout.BuildGroundMeshes(d.groundRoot, st.Ground)

	st.resetChimney()
	d.updateEnvironmentAnchors()

	dw := st.Ground.Driveway
	log.Info("house ready",
		zap.Float32("footprint_x", st.Footprint.Size().X()),
		zap.Float32("footprint_z", st.Footprint.Size().Z()),
		zap.Float32("driveway_x", dw.X),
		zap.Float32("driveway_width", dw.Width),
		zap.Float32("driveway_depth", dw.Depth),
		zap.Int("recolored_textures", d.recolorer.Len()),
	)

	d.loader.Load(d.cfg.CarModel, d.OnCarLoaded, d.OnCarFailed)
}

// OnHouseFailed leaves the scene empty. The car is never loaded.
func (d *Diorama) OnHouseFailed(err error) {
	log.Error("house model failed to load",
		zap.String("path", d.cfg.HouseModel),
		zap.Error(err),
	)
}

// OnCarLoaded parks the car on the driveway, arms the car loop and frames
// the finished scene.
func (d *Diorama) OnCarLoaded(car *scene.Node) {
	st := d.State
	d.carRoot.Add(car)

	model.StyleCar(car)
	layout.PlaceCarOnDriveway(car, st.Ground.Driveway)
	animate.ConfigureCar(&st.Car, car, st.Ground.Driveway)

	log.Info("car ready",
		zap.Float32("parked_x", st.Car.Parked.X()),
		zap.Float32("parked_z", st.Car.Parked.Z()),
		zap.Float32("entry_z", st.Car.Entry.Z()),
		zap.Float32("exit_z", st.Car.Exit.Z()),
	)

	d.FrameScene()
}

// OnCarFailed frames the scene without a car.
func (d *Diorama) OnCarFailed(err error) {
	log.Warn("car model failed to load",
		zap.String("path", d.cfg.CarModel),
		zap.Error(err),
	)
	d.FrameScene()
}

// FrameScene fits the camera, the sky anchor and the shadow volume to the
// world. It does nothing while the world is empty.
func (d *Diorama) FrameScene() {
	bounds := scene.Bounds(d.World)
	if bounds.IsEmpty() {
		return
	}

	d.Rig.Fit(bounds, d.Camera)
	if anchor, ok := animate.SkyAnchor(bounds); ok {
		d.Sky.SetAnchor(anchor)
	}
	d.updateEnvironmentAnchors()
	d.Lights.FitShadow(bounds)

	log.Debug("scene framed",
		zap.Float32("distance", d.Rig.Distance()),
		zap.Float32("near", d.Camera.Near),
		zap.Float32("far", d.Camera.Far),
	)
}

// updateEnvironmentAnchors refreshes everything positioned relative to the
// house: the horizon, the chimney smoke and the night lamps.
func (d *Diorama) updateEnvironmentAnchors() {
	st := d.State
	if !st.refreshHouse() {
		return
	}
	if st.HasGround {
		lamps := layout.PlaceLamps(st.Footprint, st.Ground.Driveway, st.HouseBounds)
		st.FrontWallZ = lamps.FrontWallZ
		st.DoorX = lamps.DoorX
		d.Lamps.Place(lamps)
	}
	d.Smoke.Root.Position = st.SmokeEmitter()
}

// Frame advances every animator to elapsed seconds.
func (d *Diorama) Frame(elapsed float64) cycle.Sample {
	sample := d.cfg.Phases.Sample(elapsed)

	d.carLoop.Update(&d.State.Car, sample.Phase)
	d.Sky.Update(sample, d.State.HorizonY)
	d.Lights.Update(sample.NightMix)
	d.Lamps.Update(sample)
	d.Smoke.Update(sample, d.State.SmokeEmitter())
	d.Rig.Update(sample.Time, d.Camera)

	if region := d.carLoop.Region(sample.Phase); region != d.lastRegion {
		log.Debug("loop region",
			zap.Stringer("from", d.lastRegion),
			zap.Stringer("to", region),
			zap.Float32("phase", sample.Phase),
			zap.Float32("night", sample.NightMix),
		)
		d.lastRegion = region
	}
	return sample
}

// Render draws the current frame.
func (d *Diorama) Render(r Renderer) {
	r.Render(d.Scene, d.Camera)
}

// Resize updates the camera and renderer for a new viewport and refits the
// scene.
func (d *Diorama) Resize(r Renderer, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.Camera.SetAspect(width, height)
	r.Resize(width, height)
	d.FrameScene()
}

// PointerMove nudges the camera toward a pointer position in window pixels.
func (d *Diorama) PointerMove(x, y float32, width, height int) {
	d.Rig.PointerMove(x, y, width, height)
}

// PointerLeave recenters the camera nudge.
func (d *Diorama) PointerLeave() {
	d.Rig.PointerLeave()
}
