// Package math provides integer vector and scalar utilities for octree math
package math

import "github.com/go-gl/mathgl/mgl32"

// IVec3 is a three-component integer vector
type IVec3 struct {
	X, Y, Z int32
}

// IVec3Zero is the zero vector
var IVec3Zero = IVec3{0, 0, 0}

// IVec3One is the all-ones vector
var IVec3One = IVec3{1, 1, 1}

// NewIVec3 creates a vector from three components
func NewIVec3(x, y, z int32) IVec3 {
	return IVec3{x, y, z}
}

// Splat creates a vector with all components set to v
func Splat(v int32) IVec3 {
	return IVec3{v, v, v}
}

// Add returns the component-wise sum
func (v IVec3) Add(o IVec3) IVec3 {
	return IVec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference
func (v IVec3) Sub(o IVec3) IVec3 {
	return IVec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// MulScalar returns the vector scaled by s
func (v IVec3) MulScalar(s int32) IVec3 {
	return IVec3{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar returns the vector divided by s, truncating toward zero
func (v IVec3) DivScalar(s int32) IVec3 {
	return IVec3{v.X / s, v.Y / s, v.Z / s}
}

// Shr returns the vector arithmetically shifted right by k bits
func (v IVec3) Shr(k uint32) IVec3 {
	return IVec3{v.X >> k, v.Y >> k, v.Z >> k}
}

// And returns the component-wise bitwise AND with mask
func (v IVec3) And(mask int32) IVec3 {
	return IVec3{v.X & mask, v.Y & mask, v.Z & mask}
}

// Vec3 converts to a float vector
func (v IVec3) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Step0 maps each component to -1 if negative, else +1.
// Zero is biased to the positive side; octant extraction depends on this.
func (v IVec3) Step0() IVec3 {
	s := func(c int32) int32 {
		if c < 0 {
			return -1
		}
		return 1
	}
	return IVec3{s(v.X), s(v.Y), s(v.Z)}
}

// OctantIndex reads the sign bits as an octant number.
// Index layout: (x>0)<<2 | (y>0)<<1 | (z>0), so octant 0 is (-,-,-)
// and octant 7 is (+,+,+).
func (v IVec3) OctantIndex() int {
	b := func(c int32) int {
		if c > 0 {
			return 1
		}
		return 0
	}
	return b(v.X)<<2 | b(v.Y)<<1 | b(v.Z)
}

// OctantPositions holds the center-based position of each octant,
// -1 or +1 per axis, indexed 0..7 by sign bits.
var OctantPositions = [8]IVec3{
	{-1, -1, -1},
	{-1, -1, 1},
	{-1, 1, -1},
	{-1, 1, 1},
	{1, -1, -1},
	{1, -1, 1},
	{1, 1, -1},
	{1, 1, 1},
}

// FromOctantIndex converts an octant index (0-7) to its center-based position
func FromOctantIndex(index int) IVec3 {
	return OctantPositions[index]
}

// OctantBits converts an octant index to corner-style 0/1 bits per axis
func OctantBits(index int) IVec3 {
	return IVec3{int32(index >> 2 & 1), int32(index >> 1 & 1), int32(index & 1)}
}

// CornerToCenter converts a corner-based position in [0, 2^depth) to the
// center-based odd-integer position at the same depth.
func CornerToCenter(corner IVec3, depth uint32) IVec3 {
	n := int32(1) << depth
	return corner.MulScalar(2).Sub(Splat(n - 1))
}

// CenterToCorner is the inverse of CornerToCenter.
func CenterToCorner(center IVec3, depth uint32) IVec3 {
	n := int32(1) << depth
	return center.Add(Splat(n - 1)).DivScalar(2)
}
