package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/diorama/internal/logger"
)

// maxShadowResolution bounds the shadow map size.
const maxShadowResolution = 8192

// Validate rejects settings the diorama cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MaxPixelRatio < 0 {
		return fmt.Errorf("config: max_pixel_ratio must not be negative, got %v", c.Window.MaxPixelRatio)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("config: samples must not be negative, got %d", c.Window.Samples)
	}
	if c.Render.Shadows && (c.Render.ShadowResolution <= 0 || c.Render.ShadowResolution > maxShadowResolution) {
		return fmt.Errorf("config: shadow_resolution must be in (0, %d], got %d", maxShadowResolution, c.Render.ShadowResolution)
	}
	if _, err := c.ClearRGB(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Scene().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ClearRGB parses the clear color into [0, 1] components.
func (c *Config) ClearRGB() ([3]float32, error) {
	col, err := colorful.Hex(c.Render.ClearColor)
	if err != nil {
		return [3]float32{}, fmt.Errorf("config: clear_color %q: %w", c.Render.ClearColor, err)
	}
	return [3]float32{float32(col.R), float32(col.G), float32(col.B)}, nil
}
