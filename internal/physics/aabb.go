// Package physics provides the collision primitives the cube core exposes
// to a physics engine: axis-aligned boxes, AABB-to-octant intersection
// regions, and triangle-mesh collider synthesis from visible faces.
package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Aabb is an axis-aligned bounding box
type Aabb struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAabb creates a box from its extreme corners
func NewAabb(min, max mgl32.Vec3) Aabb {
	return Aabb{Min: min, Max: max}
}

// UnitAabb is the [0,1] box, the cube's local space
func UnitAabb() Aabb {
	return Aabb{Min: mgl32.Vec3{}, Max: mgl32.Vec3{1, 1, 1}}
}

// ToWorld transforms the box by position, rotation and uniform scale and
// returns the tight axis-aligned box of the eight transformed corners.
// The result grows under rotation.
func (a Aabb) ToWorld(position mgl32.Vec3, rotation mgl32.Quat, scale float32) Aabb {
	var out Aabb
	first := true
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{a.Min.X(), a.Min.Y(), a.Min.Z()}
		if i&4 != 0 {
			corner[0] = a.Max.X()
		}
		if i&2 != 0 {
			corner[1] = a.Max.Y()
		}
		if i&1 != 0 {
			corner[2] = a.Max.Z()
		}
		world := rotation.Rotate(corner.Mul(scale)).Add(position)
		if first {
			out.Min, out.Max = world, world
			first = false
			continue
		}
		for c := 0; c < 3; c++ {
			out.Min[c] = math32.Min(out.Min[c], world[c])
			out.Max[c] = math32.Max(out.Max[c], world[c])
		}
	}
	return out
}

// Intersects reports whether two boxes overlap
func (a Aabb) Intersects(b Aabb) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Intersection returns the overlapping box, or nil when the boxes are
// disjoint
func (a Aabb) Intersection(b Aabb) *Aabb {
	var out Aabb
	for c := 0; c < 3; c++ {
		out.Min[c] = math32.Max(a.Min[c], b.Min[c])
		out.Max[c] = math32.Min(a.Max[c], b.Max[c])
		if out.Min[c] >= out.Max[c] {
			return nil
		}
	}
	return &out
}

// Center returns the box center
func (a Aabb) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Size returns the box extent per axis
func (a Aabb) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// HalfSize returns half the extent per axis
func (a Aabb) HalfSize() mgl32.Vec3 {
	return a.Size().Mul(0.5)
}

// Volume returns the enclosed volume
func (a Aabb) Volume() float32 {
	s := a.Size()
	return s.X() * s.Y() * s.Z()
}

// ContainsPoint reports whether the point lies inside the box
func (a Aabb) ContainsPoint(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// ExpandToInclude grows the box to cover the point
func (a *Aabb) ExpandToInclude(p mgl32.Vec3) {
	for c := 0; c < 3; c++ {
		a.Min[c] = math32.Min(a.Min[c], p[c])
		a.Max[c] = math32.Max(a.Max[c], p[c])
	}
}

// Union returns the smallest box covering both
func (a Aabb) Union(b Aabb) Aabb {
	var out Aabb
	for c := 0; c < 3; c++ {
		out.Min[c] = math32.Min(a.Min[c], b.Min[c])
		out.Max[c] = math32.Max(a.Max[c], b.Max[c])
	}
	return out
}
