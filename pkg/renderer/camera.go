package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the focal plane, 0 = distance to LookAt
}

// Validate reports configurations that would produce degenerate rays
func (c CameraConfig) Validate() error {
	if _, err := core.NewCheckedRay(c.Center, c.LookAt.Subtract(c.Center)); err != nil {
		return fmt.Errorf("%w: camera look direction: %v", ErrInvalidConfig, err)
	}
	if c.Up.Cross(c.LookAt.Subtract(c.Center)).NearZero() {
		return fmt.Errorf("%w: camera up vector %v is parallel to the view direction", ErrInvalidConfig, c.Up)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: vertical field of view %g must be in (0, 180)", ErrInvalidConfig, c.VFov)
	}
	if c.AspectRatio <= 0 || math.IsInf(c.AspectRatio, 0) {
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidConfig, c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("%w: aperture %g must not be negative", ErrInvalidConfig, c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("%w: focus distance %g must not be negative", ErrInvalidConfig, c.FocusDistance)
	}
	return nil
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering.
// It is immutable after construction and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis
	lensRadius      float64
}

// NewCamera creates a thin-lens camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Unit()
	u := config.Up.Cross(w).Unit()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and
// (0, 0) is the lower-left corner. With a non-zero aperture the origin is
// jittered across the lens disk; a pinhole camera draws no lens sample.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y)))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
