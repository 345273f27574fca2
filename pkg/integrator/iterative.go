package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// IterativePathTracingIntegrator evaluates the same estimator as
// PathTracingIntegrator with a loop and a throughput accumulator, so very large
// depth limits do not grow the call stack. Given the same sampler state both
// integrators return the same color.
type IterativePathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewIterativePathTracingIntegrator creates a loop-based path tracer
func NewIterativePathTracingIntegrator(maxDepth int, background Background) *IterativePathTracingIntegrator {
	return &IterativePathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// SetMaxDepth sets the bounce limit
func (it *IterativePathTracingIntegrator) SetMaxDepth(maxDepth int) {
	it.MaxDepth = maxDepth
}

// RayColor computes the color for a single camera ray
func (it *IterativePathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := it.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return radiance.Add(throughput.MultiplyVec(it.Background.Color(ray)))
		}

		radiance = radiance.Add(throughput.MultiplyVec(emittedLight(ray, hit)))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return radiance
}
