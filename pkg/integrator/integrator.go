package integrator

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// The sampler is owned by the caller and must not be shared between goroutines.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}

// DepthLimited is implemented by integrators whose bounce limit can be set
// from the render configuration
type DepthLimited interface {
	SetMaxDepth(maxDepth int)
}

const (
	// ShadowAcneEpsilon is the lower bound of every scene query; it keeps
	// secondary rays from re-hitting the surface they start on.
	ShadowAcneEpsilon = 0.001
)

// Background is a vertical gradient used for rays that escape the scene
type Background struct {
	Top    core.Vec3 // Color looking straight up
	Bottom core.Vec3 // Color looking straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for a ray direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Unit()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
