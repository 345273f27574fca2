package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for render or camera settings that cannot be rendered
var ErrInvalidConfig = errors.New("invalid render configuration")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Edge length of a work tile in pixels
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Base seed; tile i uses Seed+i
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.TileSize != 0 {
		result.TileSize = override.TileSize
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// AspectRatio returns width / height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate checks that all counts are positive
func (c SamplingConfig) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"samples per pixel", c.SamplesPerPixel},
		{"max depth", c.MaxDepth},
		{"tile size", c.TileSize},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, check.name, check.value)
		}
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}
