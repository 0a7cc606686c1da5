package cube

import (
	"github.com/k0sti/crossworld/pkg/math"
)

// Coord pairs a center-based position with a depth.
//
// At depth d, well-formed positions are odd integers in
// {-(2^d - 1), ..., -1, +1, ..., +(2^d - 1)} per axis. At depth 0 the
// coord identifies the whole cube and the position is irrelevant.
type Coord struct {
	Pos   math.IVec3
	Depth uint32
}

// NewCoord creates a coordinate
func NewCoord(pos math.IVec3, depth uint32) Coord {
	return Coord{Pos: pos, Depth: depth}
}

// Index calculates the octant index at the given depth level for a position.
// The position is shifted right by depth, zeros are biased to the positive
// side, and the sign bits are read as the octant number. Descent through
// Get/Update re-centers positions so that this extraction stays exact at
// every level. The GPU BCF tracer applies the same rule (zero counts as
// the positive side); raycasting reads octants from the signs of its entry
// point with its own boundary bias and does not call Index.
func Index(depth uint32, pos math.IVec3) int {
	return pos.Shr(depth).Step0().OctantIndex()
}

// Child descends one level toward octant i in the accumulated-position
// convention used by traversal: the position doubles and takes the octant
// offset, the depth increases by one.
func (c Coord) Child(i int) Coord {
	return Coord{
		Pos:   c.Pos.MulScalar(2).Add(math.FromOctantIndex(i)),
		Depth: c.Depth + 1,
	}
}

// Parent is the inverse of Child. Undefined at depth 0.
func (c Coord) Parent() Coord {
	if c.Depth == 0 {
		panic("cube: Parent of depth-0 coord")
	}
	if c.Depth == 1 {
		return Coord{Pos: math.IVec3Zero, Depth: 0}
	}
	return Coord{
		Pos: math.NewIVec3(
			parentComponent(c.Pos.X),
			parentComponent(c.Pos.Y),
			parentComponent(c.Pos.Z),
		),
		Depth: c.Depth - 1,
	}
}

// parentComponent undoes pos = 2*parent + octant for one axis. Of the two
// integer candidates, the parent position is the odd one; positions at
// every depth below the root are odd.
func parentComponent(pos int32) int32 {
	a := (pos - 1) / 2
	if a&1 != 0 {
		return a
	}
	return (pos + 1) / 2
}

// VoxelSize returns the edge length of a cell at this depth in the
// normalized [0,1] cube.
func (c Coord) VoxelSize() float32 {
	return 1.0 / float32(int32(1)<<c.Depth)
}

// Corner returns the corner-based position of the cell, range [0, 2^depth).
func (c Coord) Corner() math.IVec3 {
	return math.CenterToCorner(c.Pos, c.Depth)
}

// FromCorner creates a coordinate from a corner-based position.
func FromCorner(corner math.IVec3, depth uint32) Coord {
	return Coord{Pos: math.CornerToCenter(corner, depth), Depth: depth}
}
