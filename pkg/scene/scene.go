package scene

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.List // Objects in the scene, in insertion order
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     integrator.Background
}

// newScene creates an empty scene and builds its camera.
// Callers validate with Validate before rendering.
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, background integrator.Background) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewList(),
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     background,
	}
}

// SetWidth changes the image width and derives the height from the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// Validate checks the camera and sampling settings
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
