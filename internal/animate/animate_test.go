package animate

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/scene"
	"github.com/Faultbox/diorama/internal/layout"
	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/pkg/math"
)

func TestStarLayoutDeterministic(t *testing.T) {
	a := StarLayout(StarSeed, StarCount)
	b := StarLayout(StarSeed, StarCount)
	require.Len(t, a, StarCount)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("star layouts differ (-first +second):\n%s", diff)
	}

	other := StarLayout(StarSeed+1, StarCount)
	assert.NotEqual(t, a[0].Offset, other[0].Offset)
}

func TestStarLayoutRanges(t *testing.T) {
	for i, s := range StarLayout(StarSeed, StarCount) {
		radius := mgl32.Vec2{s.Offset.X(), 0}.Len()
		assert.LessOrEqual(t, radius, float32(1.35+3.8), "star %d radius", i)
		assert.GreaterOrEqual(t, s.Offset.Y(), float32(0.16), "star %d y", i)
		assert.LessOrEqual(t, s.Offset.Y(), float32(0.16+1.95), "star %d y", i)
		assert.InDelta(t, 0, s.Offset.Z(), 0.37+1e-5, "star %d z", i)
		assert.GreaterOrEqual(t, s.Scale, float32(0.055), "star %d scale", i)
		assert.LessOrEqual(t, s.Scale, float32(0.055+0.088), "star %d scale", i)
		assert.GreaterOrEqual(t, s.Phase, float32(i)*0.83, "star %d phase", i)
	}
}

func newTestCar() *scene.Node {
	car := scene.NewGroup("car")
	car.Add(scene.NewMeshNode("body", geometry.RoundedBox(4.2, 1.4, 1.8, 2, 0.1), scene.NewStandardMaterial(0x2d3440, 0.24, 0.66)))
	return car
}

func configuredCar(t *testing.T) (*CarState, layout.Driveway) {
	t.Helper()
	d := layout.Driveway{X: -2, Z: 5, Width: 3, Depth: 4.5, TopY: 0.06}
	car := newTestCar()
	layout.PlaceCarOnDriveway(car, d)

	st := &CarState{}
	ConfigureCar(st, car, d)
	require.True(t, st.Ready)
	return st, d
}

func TestConfigureCarWaypoints(t *testing.T) {
	st, d := configuredCar(t)

	size := scene.Bounds(st.Node).Size()
	travel := d.Depth*0.98 + max(size.X(), size.Z())*1.02

	assert.InDelta(t, st.Parked.Z()+travel, st.Entry.Z(), 1e-4)
	assert.Equal(t, st.Parked.X(), st.Entry.X())
	assert.InDelta(t, st.Entry.Z()+d.Depth*0.12, st.Exit.Z(), 1e-4)
	assert.False(t, st.Node.Visible)
}

func TestConfigureCarLogsWaypoints(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	st, _ := configuredCar(t)

	entries := logs.FilterMessage("car loop configured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "animate", entries[0].LoggerName)
	assert.Equal(t, []interface{}{st.Entry.X(), st.Entry.Y(), st.Entry.Z()}, entries[0].ContextMap()["entry"])
}

func TestCarLoopEndpoints(t *testing.T) {
	st, _ := configuredCar(t)
	loop := CarLoop{Phases: cycle.Default()}
	p := loop.Phases

	tests := []struct {
		name    string
		phase   float32
		visible bool
		region  cycle.Region
	}{
		{"before entry", 0, false, cycle.Hidden},
		{"just before entry", p.CarInStart - 0.001, false, cycle.Hidden},
		{"entry start", p.CarInStart, true, cycle.Entering},
		{"parked", 0.5, true, cycle.Parked},
		{"leaving", p.SunriseEnd + 0.01, true, cycle.Exiting},
		{"gone", p.CarOutEnd, false, cycle.Hidden},
		{"loop end", 0.999, false, cycle.Hidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.region, loop.Region(tt.phase))
			loop.Update(st, tt.phase)
			assert.Equal(t, tt.visible, st.Node.Visible)
		})
	}
}

func TestCarLoopParkedTransform(t *testing.T) {
	st, _ := configuredCar(t)
	loop := CarLoop{Phases: cycle.Default()}

	loop.Update(st, 0.5)
	assert.Equal(t, st.Parked, st.Node.Position)
	assert.Equal(t, st.BaseScale, st.Node.Scale)
	assert.Equal(t, st.ParkedRotationY, st.Node.Rotation.Y())

	// End of the entry segment lands exactly on the parked point.
	loop.Update(st, loop.Phases.CarInEnd-1e-6)
	assert.InDelta(t, st.Parked.Z(), st.Node.Position.Z(), 1e-3)
}

func TestCarLoopExitTurns(t *testing.T) {
	st, _ := configuredCar(t)
	loop := CarLoop{Phases: cycle.Default()}
	p := loop.Phases

	// Past the turn but before the move finishes the car faces the other way.
	phase := p.SunriseEnd + (p.CarOutEnd-p.SunriseEnd)*0.5
	loop.Update(st, phase)
	require.True(t, st.Node.Visible)
	assert.InDelta(t, st.ParkedRotationY+3.14159265, st.Node.Rotation.Y(), 1e-4)
	assert.Greater(t, st.Node.Position.Z(), st.Parked.Z())
}

func TestCarLoopNotReady(t *testing.T) {
	loop := CarLoop{Phases: cycle.Default()}
	st := &CarState{}
	assert.NotPanics(t, func() { loop.Update(st, 0.5) })
}

func TestEntryScale(t *testing.T) {
	tests := []struct {
		progress float32
		want     float32
	}{
		{0, 0.04},
		{0.25, 0.405511},
		{0.5, 0.675},
		{0.75, 0.858370},
		{0.9, 0.982733},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, EntryScale(tt.progress), 1e-4, "progress %v", tt.progress)
	}

	prev := EntryScale(0)
	for i := 1; i <= 1000; i++ {
		s := EntryScale(float32(i) / 1000)
		assert.LessOrEqual(t, s, float32(1.12))
		assert.GreaterOrEqual(t, s, prev-1e-6, "growth is monotonic at %d", i)
		prev = s
	}
}

func TestSkyAnchor(t *testing.T) {
	_, ok := SkyAnchor(math.EmptyBox3())
	assert.False(t, ok)

	box := math.NewBox3(mgl32.Vec3{-4, 0, -3}, mgl32.Vec3{6, 5, 7})
	got, ok := SkyAnchor(box)
	require.True(t, ok)
	want := mgl32.Vec3{1 + 10*0.06, 2.5 + 5*0.94, 2 - 10*0.16}
	assert.True(t, got.ApproxEqualThreshold(want, 1e-5), "got %v want %v", got, want)
}

func TestSkyDayAndNight(t *testing.T) {
	sky := NewSky()
	assert.Equal(t, DefaultSkyAnchor, sky.Anchor())
	horizon := float32(4)

	sky.Update(cycle.Sample{Time: 1, NightMix: 0}, horizon)
	assert.True(t, sky.Sun.Visible)
	assert.False(t, sky.Moon.Visible)
	assert.InDelta(t, 1, sky.Sun.Scale.X(), 1e-6)
	assert.Greater(t, sky.SunLight().Intensity, float32(0.43))
	assert.Zero(t, sky.MoonLight().Intensity)
	for i := 0; i < StarCount; i++ {
		assert.Zero(t, sky.StarNode(i).Sprite.Material.Opacity)
	}

	sky.Update(cycle.Sample{Time: 2, NightMix: 1}, horizon)
	assert.False(t, sky.Sun.Visible)
	assert.InDelta(t, horizon-0.92, sky.Sun.Position.Y(), 1e-5)
	assert.True(t, sky.Moon.Visible)
	assert.InDelta(t, DefaultSkyAnchor.Y()+0.04, sky.Moon.Position.Y(), 1e-5)
	assert.InDelta(t, 0.34, sky.MoonLight().Intensity, 1e-6)
	assert.Zero(t, sky.SunLight().Intensity)
	for i := 0; i < StarCount; i++ {
		op := sky.StarNode(i).Sprite.Material.Opacity
		assert.Greater(t, op, float32(0))
		assert.LessOrEqual(t, op, float32(1))
		assert.Equal(t, sky.Star(i).Offset, sky.StarNode(i).Position)
	}
}

func TestSkySetAnchor(t *testing.T) {
	sky := NewSky()
	base := mgl32.Vec3{1, 9, -2}
	sky.SetAnchor(base)
	for _, n := range sky.Nodes() {
		assert.Equal(t, base, n.Position, n.Name)
	}
}

func TestSmoke(t *testing.T) {
	smoke := NewSmoke()
	emitter := mgl32.Vec3{0.5, 3, -1}

	smoke.Update(cycle.Sample{Time: 0.7, SmokeMix: 0}, emitter)
	assert.Equal(t, emitter, smoke.Root.Position)
	for i := 0; i < SmokeCount; i++ {
		assert.False(t, smoke.Puff(i).Visible)
		assert.Zero(t, smoke.Puff(i).Sprite.Material.Opacity)
	}

	smoke.Update(cycle.Sample{Time: 0.7, SmokeMix: 1}, emitter)
	for i := 0; i < SmokeCount; i++ {
		p := smoke.Puff(i)
		assert.True(t, p.Visible)
		assert.GreaterOrEqual(t, p.Position.Y(), float32(0))
		assert.Less(t, p.Position.Y(), float32(1.35))
		assert.LessOrEqual(t, p.Sprite.Material.Opacity, float32(0.86))
		assert.GreaterOrEqual(t, p.Sprite.Material.Opacity, float32(0))
		assert.InDelta(t, p.Scale.Y()/p.Scale.X(), 1.4/0.9, 1e-4)
	}
}

func TestLamps(t *testing.T) {
	lamps := NewLamps()
	require.Len(t, lamps.All(), 6)

	pl := layout.LampLayout{
		Garage: mgl32.Vec3{-3, 1.5, 4},
		Door:   mgl32.Vec3{1, 1.8, 4},
	}
	for i := range pl.Path {
		pl.Path[i] = mgl32.Vec3{float32(i), 0.2, 6}
	}
	lamps.Place(pl)
	assert.Equal(t, pl.Garage, lamps.Garage.Node.Position)
	assert.Equal(t, pl.Door, lamps.Door.Node.Position)
	assert.Len(t, lamps.Positions(), 6)

	lamps.Update(cycle.Sample{Time: 1, NightMix: 0})
	for _, l := range lamps.All() {
		assert.False(t, l.Node.Visible)
		assert.Zero(t, l.Light.Intensity)
	}

	lamps.Update(cycle.Sample{Time: 1, NightMix: 1})
	for _, l := range lamps.All() {
		assert.True(t, l.Node.Visible)
		assert.Greater(t, l.Light.Intensity, float32(0))
		assert.LessOrEqual(t, l.Light.Intensity, l.MaxIntensity)
		assert.InDelta(t, 0.42+l.MaxIntensity*0.65, l.Bulb.Mesh.Material.EmissiveIntensity, 1e-5)
	}
}
