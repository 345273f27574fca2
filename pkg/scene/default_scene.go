package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the classic scene: a diffuse sphere between a hollow
// glass sphere and a gold mirror, resting on a large yellow-green ground sphere.
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(3, 3, 2),  // Look from above and to the right
		LookAt:        core.NewVec3(0, 0, -1), // Look at the center sphere
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.5,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.Height = int(float64(samplingConfig.Width) / cameraConfig.AspectRatio)

	s := newScene("default", cameraConfig, samplingConfig, integrator.DefaultBackground())

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.World.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter),
		// Negative inner radius flips the normals and makes a hollow bubble
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.4, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialGold),
	)

	return s
}
