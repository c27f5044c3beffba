package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/internal/diorama"
	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/geometry"
	"github.com/Faultbox/diorama/internal/engine/input"
	"github.com/Faultbox/diorama/internal/engine/scene"
)

type boxLoader struct{}

func (boxLoader) Load(path string) (*scene.Node, error) {
	root := scene.NewGroup(path)
	root.Add(scene.NewMeshNode("box", geometry.RoundedBox(4, 2, 3, 1, 0), scene.NewStandardMaterial(0xffffff, 1, 0)))
	return root, nil
}

type fakeWindow struct {
	w, h   int
	dw, dh int
	vw, vh int
}

func (f fakeWindow) GetSize() (int, int)      { return f.w, f.h }
func (f fakeWindow) DrawableSize() (int, int) { return f.dw, f.dh }
func (f fakeWindow) ViewportSize() (int, int) { return f.vw, f.vh }

type fakeOutput struct {
	outW, outH int
	w, h       int
	frames     int
}

func (f *fakeOutput) Render(*scene.Node, *camera.Perspective) { f.frames++ }
func (f *fakeOutput) Resize(width, height int)                { f.w, f.h = width, height }
func (f *fakeOutput) SetOutputSize(width, height int)         { f.outW, f.outH = width, height }

func loadedScene(t *testing.T) *diorama.Diorama {
	t.Helper()
	d := diorama.New(diorama.DefaultConfig(), boxLoader{}, 1)
	d.Start()
	d.Wait()
	require.True(t, d.Rig.Ready())
	return d
}

func TestHandleResize(t *testing.T) {
	d := loadedScene(t)
	win := fakeWindow{w: 1000, h: 500, dw: 3000, dh: 1500, vw: 2000, vh: 1000}
	out := &fakeOutput{}

	handleEvent(input.Event{Type: input.EventWindowResize, Width: 1000, Height: 500}, d, win, out)

	assert.Equal(t, 3000, out.outW)
	assert.Equal(t, 1500, out.outH)
	assert.Equal(t, 2000, out.w)
	assert.Equal(t, 1000, out.h)
	assert.Equal(t, float32(2), d.Camera.Aspect)
}

func TestHandlePointer(t *testing.T) {
	d := loadedScene(t)
	win := fakeWindow{w: 800, h: 600}
	out := &fakeOutput{}

	handleEvent(input.Event{Type: input.EventPointerMove, MouseX: 800, MouseY: 300}, d, win, out)
	for i := 0; i < 100; i++ {
		d.Frame(1)
	}
	assert.InDelta(t, 1, d.Rig.Pointer().X(), 1e-3)
	assert.InDelta(t, 0, d.Rig.Pointer().Y(), 1e-3)

	for _, typ := range []input.EventType{input.EventPointerLeave, input.EventFocusLost} {
		handleEvent(input.Event{Type: input.EventPointerMove, MouseX: 0, MouseY: 0}, d, win, out)
		handleEvent(input.Event{Type: typ}, d, win, out)
		for i := 0; i < 200; i++ {
			d.Frame(1)
		}
		assert.InDelta(t, 0, d.Rig.Pointer().Len(), 1e-3)
	}
}
