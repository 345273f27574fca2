package scene

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*l_-3.3077115913*m_+0.2309699292*s_,
		-1.2684380046*l_+2.6097574011*m_-0.3413193965*s_,
		-0.0041960863*l_-0.7034186147*m_+1.7076147010*s_,
	)

	return rgb.Clamp(0, 1)
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 10

// NewSphereGridScene creates a 10x10 grid of small spheres on a checkered ground.
// Hue varies along X and chroma along Z; materials cycle between metal, diffuse
// and glass. A large emissive sphere acts as the sun.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),    // Back from the grid and above it
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of the grid, slightly lower
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.02, // Small depth of field for some focus variation
		FocusDistance: 0.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.MaxDepth = 40
	samplingConfig.Height = int(float64(samplingConfig.Width) / cameraConfig.AspectRatio)

	s := newScene("spheregrid", cameraConfig, samplingConfig, integrator.DefaultBackground())

	// Sun
	s.World.Add(geometry.NewSphere(
		core.NewVec3(20, 25, 20),
		8,
		material.NewEmissive(core.NewVec3(12.0, 11.5, 10.0)),
	))

	// Ground: a sphere large enough to look flat under the grid
	checker := material.NewChecker(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9), 1.0)
	s.World.Add(geometry.NewSphere(
		core.NewVec3(4.5, -1000, 4.5),
		1000,
		material.NewTexturedLambertian(checker),
	))

	// Fit the grid into a 9x9 area around (4.5, 4.5)
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z) // Resting on the ground

			hue := (float64(i) / float64(sphereGridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(sphereGridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			s.World.Add(geometry.NewSphere(position, sphereRadius, gridMaterial(i, j, color)))
		}
	}

	return s
}

// gridMaterial picks the material for grid cell (i, j)
func gridMaterial(i, j int, color core.Vec3) material.Material {
	switch {
	case (i+j)%7 == 0:
		return material.NewDielectric(1.5)
	case (i*j)%3 == 1:
		return material.NewLambertian(color)
	default:
		roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
		return material.NewMetal(color, roughness)
	}
}
