package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at a world-space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two colors on a 3D lattice of cubes
type Checker struct {
	Even, Odd core.Vec3
	Scale     float64 // Edge length of one cube
}

// NewChecker creates a solid checker pattern with the given cube size
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	if scale <= 0 {
		scale = 1
	}
	return &Checker{Even: even, Odd: odd, Scale: scale}
}

// Evaluate picks a color from the parity of the cube containing point
func (c *Checker) Evaluate(point core.Vec3) core.Vec3 {
	x := int(math.Floor(point.X / c.Scale))
	y := int(math.Floor(point.Y / c.Scale))
	z := int(math.Floor(point.Z / c.Scale))
	if (x+y+z)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
