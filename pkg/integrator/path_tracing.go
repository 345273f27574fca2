package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// PathTracingIntegrator implements unidirectional path tracing by recursion.
// Stack depth is bounded by MaxDepth.
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// SetMaxDepth sets the bounce limit
func (pt *PathTracingIntegrator) SetMaxDepth(maxDepth int) {
	pt.MaxDepth = maxDepth
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, pt.MaxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.Background.Color(ray)
	}

	colorEmitted := emittedLight(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	incoming := pt.rayColor(scatter.Scattered, world, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}
