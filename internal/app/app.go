// Package app runs the diorama in a window: it owns the frame loop and
// connects window events to the scene.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/config"
	"github.com/Faultbox/diorama/internal/diorama"
	"github.com/Faultbox/diorama/internal/engine/debug"
	"github.com/Faultbox/diorama/internal/engine/input"
	"github.com/Faultbox/diorama/internal/engine/model"
	"github.com/Faultbox/diorama/internal/engine/renderer"
	"github.com/Faultbox/diorama/internal/engine/window"
	"github.com/Faultbox/diorama/internal/logger"
)

var log = logger.Component("app")

// surface is the part of the window the event handling reads.
type surface interface {
	GetSize() (int, int)
	DrawableSize() (int, int)
	ViewportSize() (int, int)
}

// output is a renderer whose output size follows the window.
type output interface {
	diorama.Renderer
	SetOutputSize(width, height int)
}

// App is the running application.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	diorama  *diorama.Diorama
	shots    *debug.ScreenshotCapture
}

// New opens the window and builds the scene. Models start loading
// immediately.
func New(cfg *config.Config) (*App, error) {
	log.Info("initializing diorama",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	clearColor, err := cfg.ClearRGB()
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		MaxPixelRatio: cfg.Window.MaxPixelRatio,
		Samples:       cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	vw, vh := a.window.ViewportSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:            vw,
		Height:           vh,
		Shadows:          cfg.Render.Shadows,
		ShadowResolution: int32(cfg.Render.ShadowResolution),
		ClearColor:       clearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetOutputSize(a.window.DrawableSize())

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "diorama")

	ww, wh := a.window.GetSize()
	a.diorama = diorama.New(cfg.Scene(), model.GLTFLoader{}, float32(ww)/float32(max(wh, 1)))
	a.diorama.Start()

	log.Info("diorama initialized")
	return a, nil
}

// Run starts the frame loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	log.Info("starting frame loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			handleEvent(event, a.diorama, a.window, a.renderer)
		}

		// 2. Run load continuations before the frame reads the state
		a.diorama.Poll()

		// 3. Animate and render
		a.diorama.Frame(time.Since(start).Seconds())
		a.diorama.Render(a.renderer)
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the renderer and the window.
func (a *App) Close() {
	log.Info("closing diorama")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// screenshot saves the frame just rendered.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		log.Warn("screenshot failed", zap.Error(err))
		return
	}
	log.Info("screenshot saved", zap.String("path", path))
}

// handleEvent forwards a window event to the scene.
func handleEvent(event input.Event, d *diorama.Diorama, win surface, out output) {
	switch event.Type {
	case input.EventWindowResize:
		out.SetOutputSize(win.DrawableSize())
		vw, vh := win.ViewportSize()
		d.Resize(out, vw, vh)
	case input.EventPointerMove:
		ww, wh := win.GetSize()
		d.PointerMove(float32(event.MouseX), float32(event.MouseY), ww, wh)
	case input.EventPointerLeave, input.EventFocusLost:
		d.PointerLeave()
	}
}
