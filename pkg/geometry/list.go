package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// List is an insertion-ordered collection of shapes that is itself a Shape.
// It is built once and must not be modified while rendering.
type List struct {
	shapes []Shape
}

// NewList creates a list holding the given shapes
func NewList(shapes ...Shape) *List {
	l := &List{}
	l.Add(shapes...)
	return l
}

// Add appends shapes to the list
func (l *List) Add(shapes ...Shape) {
	l.shapes = append(l.shapes, shapes...)
}

// Len returns the number of shapes in the list
func (l *List) Len() int {
	return len(l.shapes)
}

// Shapes returns the shapes in insertion order
func (l *List) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest intersection across all shapes in one pass.
// Each accepted hit shrinks the upper bound so later shapes only compete for closer hits.
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
