package core

import (
	"errors"
	"fmt"
)

// ErrDegenerateRay is returned when a ray direction cannot define a line
var ErrDegenerateRay = errors.New("degenerate ray direction")

// Ray represents a ray with an origin and direction.
// The direction need not be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray without validation; it is the hot-path constructor
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewCheckedRay creates a ray, rejecting zero-length or non-finite directions
// and non-finite origins so NaN never enters color accumulation.
func NewCheckedRay(origin, direction Vec3) (Ray, error) {
	if !origin.IsFinite() {
		return Ray{}, fmt.Errorf("%w: origin %v is not finite", ErrDegenerateRay, origin)
	}
	if !direction.IsFinite() || direction.LengthSquared() == 0 {
		return Ray{}, fmt.Errorf("%w: direction %v", ErrDegenerateRay, direction)
	}
	return NewRay(origin, direction), nil
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
