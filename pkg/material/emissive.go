package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted light color/intensity
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter absorbs every incoming ray; emissive surfaces only emit
func (e *Emissive) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light for this material
func (e *Emissive) Emit(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return e.Emission
}

// NormalShade visualizes surface orientation: it emits 0.5*(normal+1) and absorbs.
// It is deterministic, which makes it useful for debugging camera and geometry.
type NormalShade struct{}

// NewNormalShade creates a normal-visualization material
func NewNormalShade() *NormalShade {
	return &NormalShade{}
}

// Scatter always absorbs
func (n *NormalShade) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit maps the stored unit normal from [-1,1] to [0,1] per channel
func (n *NormalShade) Emit(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
