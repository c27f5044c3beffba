// Package config handles diorama configuration loading and management.
package config

import (
	"github.com/Faultbox/diorama/internal/cycle"
	"github.com/Faultbox/diorama/internal/diorama"
	"github.com/Faultbox/diorama/internal/engine/camera"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Loop    LoopConfig    `yaml:"loop"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MaxPixelRatio float32 `yaml:"max_pixel_ratio"` // 0 for uncapped
	Samples       int     `yaml:"samples"`         // MSAA samples, 0 disables
}

// AssetsConfig holds the model file paths.
type AssetsConfig struct {
	HouseModel     string  `yaml:"house_model"`
	CarModel       string  `yaml:"car_model"`
	HouseFootprint float32 `yaml:"house_footprint"` // Horizontal extent the house is scaled to
}

// LoopConfig holds the day/night loop timing. Breakpoints are fractions of
// the loop.
type LoopConfig struct {
	Duration     float64 `yaml:"duration"` // Seconds
	CarInStart   float32 `yaml:"car_in_start"`
	CarInEnd     float32 `yaml:"car_in_end"`
	SunsetEnd    float32 `yaml:"sunset_end"`
	NightHoldEnd float32 `yaml:"night_hold_end"`
	SunriseEnd   float32 `yaml:"sunrise_end"`
	CarOutEnd    float32 `yaml:"car_out_end"`
}

// CameraConfig holds the camera lens and idle motion.
type CameraConfig struct {
	FOV          float32 `yaml:"fov"` // Vertical, degrees
	AutoPanSpeed float32 `yaml:"auto_pan_speed"`
	AutoPanAngle float32 `yaml:"auto_pan_angle"` // Radians
	AutoPanBias  float32 `yaml:"auto_pan_bias"`  // Radians
	PointerPan   float32 `yaml:"pointer_pan"`    // Radians
	PointerLift  float32 `yaml:"pointer_lift"`
	Smoothing    float32 `yaml:"smoothing"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Shadows          bool   `yaml:"shadows"`
	ShadowResolution int    `yaml:"shadow_resolution"`
	ClearColor       string `yaml:"clear_color"` // Hex, e.g. "#ffffff"
	ScreenshotDir    string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	phases := cycle.Default()
	rig := camera.DefaultRigConfig()
	scene := diorama.DefaultConfig()

	return &Config{
		Window: WindowConfig{
			Title:         "Diorama",
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
			Samples:       4,
		},
		Assets: AssetsConfig{
			HouseModel:     scene.HouseModel,
			CarModel:       scene.CarModel,
			HouseFootprint: scene.HouseFootprint,
		},
		Loop: LoopConfig{
			Duration:     phases.Duration,
			CarInStart:   phases.CarInStart,
			CarInEnd:     phases.CarInEnd,
			SunsetEnd:    phases.SunsetEnd,
			NightHoldEnd: phases.NightHoldEnd,
			SunriseEnd:   phases.SunriseEnd,
			CarOutEnd:    phases.CarOutEnd,
		},
		Camera: CameraConfig{
			FOV:          scene.FOV,
			AutoPanSpeed: rig.AutoPanSpeed,
			AutoPanAngle: rig.AutoPanAngle,
			AutoPanBias:  rig.AutoPanBias,
			PointerPan:   rig.PointerPan,
			PointerLift:  rig.PointerLift,
			Smoothing:    rig.Smoothing,
		},
		Render: RenderConfig{
			Shadows:          true,
			ShadowResolution: int(scene.ShadowResolution),
			ClearColor:       "#ffffff",
			ScreenshotDir:    "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Phases returns the loop timing as a cycle schedule.
func (c *Config) Phases() cycle.Phases {
	return cycle.Phases{
		Duration:     c.Loop.Duration,
		CarInStart:   c.Loop.CarInStart,
		CarInEnd:     c.Loop.CarInEnd,
		SunsetEnd:    c.Loop.SunsetEnd,
		NightHoldEnd: c.Loop.NightHoldEnd,
		SunriseEnd:   c.Loop.SunriseEnd,
		CarOutEnd:    c.Loop.CarOutEnd,
	}
}

// Rig returns the camera idle motion settings.
func (c *Config) Rig() camera.RigConfig {
	return camera.RigConfig{
		AutoPanSpeed: c.Camera.AutoPanSpeed,
		AutoPanAngle: c.Camera.AutoPanAngle,
		AutoPanBias:  c.Camera.AutoPanBias,
		PointerPan:   c.Camera.PointerPan,
		PointerLift:  c.Camera.PointerLift,
		Smoothing:    c.Camera.Smoothing,
	}
}

// Scene returns the settings of the diorama itself.
func (c *Config) Scene() diorama.Config {
	shadowRes := int32(0)
	if c.Render.Shadows {
		shadowRes = int32(c.Render.ShadowResolution)
	}
	return diorama.Config{
		HouseModel:       c.Assets.HouseModel,
		CarModel:         c.Assets.CarModel,
		HouseFootprint:   c.Assets.HouseFootprint,
		Phases:           c.Phases(),
		Camera:           c.Rig(),
		FOV:              c.Camera.FOV,
		ShadowResolution: shadowRes,
	}
}
