package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

// tripleSampler returns a fixed 3D sample and a fixed 1D sample
type tripleSampler struct {
	sample3D core.Vec3
	sample1D float64
}

func (s tripleSampler) Get1D() float64 { return s.sample1D }
func (s tripleSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.sample3D.X, s.sample3D.Y)
}
func (s tripleSampler) Get3D() core.Vec3 { return s.sample3D }

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
