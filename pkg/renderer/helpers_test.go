package renderer

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
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

// countingSampler returns 0.5 everywhere and counts draws
type countingSampler struct {
	calls int
}

func (c *countingSampler) Get1D() float64 {
	c.calls++
	return 0.5
}
func (c *countingSampler) Get2D() core.Vec2 {
	c.calls++
	return core.NewVec2(0.5, 0.5)
}
func (c *countingSampler) Get3D() core.Vec3 {
	c.calls++
	return core.NewVec3(0.5, 0.5, 0.5)
}

// MockIntegrator returns a constant color for every ray
type MockIntegrator struct {
	returnColor core.Vec3
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return m.returnColor
}

// panickingIntegrator fails on every ray
type panickingIntegrator struct{}

func (panickingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	panic("integrator failure")
}

// testLogger discards output
type testLogger struct {
	messages int
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.messages++
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// forwardCameraConfig looks down -Z from the origin with a 90 degree square view
func forwardCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 1.0,
	}
}
