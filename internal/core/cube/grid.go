package cube

import (
	"github.com/k0sti/crossworld/pkg/math"
)

// CubeGrid is the editor-facing root wrapper. Positions are origin-centric
// voxel coordinates; writes outside the current bounds grow the root one
// depth at a time, doubling the bounding box toward the write and filling
// the new space with Solid(0).
type CubeGrid struct {
	root  *Cube
	depth uint32
	// origin is the corner-based cell of the world origin inside the root
	origin math.IVec3
}

// SolidGrid creates a grid holding a single uniform cube
func SolidGrid(v uint8) *CubeGrid {
	return &CubeGrid{root: Solid(v)}
}

// FromCube creates a grid around an existing cube at the given depth
func FromCube(c *Cube, depth uint32) *CubeGrid {
	return &CubeGrid{root: c, depth: depth, origin: math.Splat(int32(1) << depth / 2)}
}

// WithScale re-homes the grid at the given depth, centering the content
func (g *CubeGrid) WithScale(depth uint32) *CubeGrid {
	g.depth = depth
	g.origin = math.Splat(int32(1) << depth / 2)
	return g
}

// Root returns the current root cube
func (g *CubeGrid) Root() *Cube {
	return g.root
}

// Depth returns the current root depth
func (g *CubeGrid) Depth() uint32 {
	return g.depth
}

// Size returns the side length of the grid in voxels
func (g *CubeGrid) Size() int32 {
	return int32(1) << g.depth
}

// corner converts an origin-centric position to corner-based, without
// bounds checking
func (g *CubeGrid) corner(pos math.IVec3) math.IVec3 {
	return pos.Add(g.origin)
}

func (g *CubeGrid) inBounds(corner math.IVec3) bool {
	n := g.Size()
	return corner.X >= 0 && corner.Y >= 0 && corner.Z >= 0 &&
		corner.X < n && corner.Y < n && corner.Z < n
}

// Get returns the material at an origin-centric position, or 0 outside
// the current bounds
func (g *CubeGrid) Get(pos math.IVec3) uint8 {
	corner := g.corner(pos)
	if !g.inBounds(corner) {
		return 0
	}
	return g.root.GetID(g.depth, math.CornerToCenter(corner, g.depth))
}

// Set writes the material at an origin-centric position, growing the grid
// when the position lies outside the current bounds
func (g *CubeGrid) Set(pos math.IVec3, value uint8) {
	g.growToInclude(pos)
	corner := g.corner(pos)
	g.root = g.root.SetVoxel(corner, g.depth, value)
}

// SetCube places a subtree occupying 2^scale cells, its low corner at the
// origin-centric position, growing the grid as needed
func (g *CubeGrid) SetCube(pos math.IVec3, scale uint32, c *Cube) {
	size := int32(1) << scale
	g.growToInclude(pos)
	g.growToInclude(pos.Add(math.Splat(size - 1)))
	for g.depth < scale {
		g.expandToward(math.IVec3One)
	}
	g.root = g.root.UpdateDepthTree(g.depth, g.corner(pos), scale, c)
}

// growToInclude expands the root until the origin-centric position is in
// bounds. Each expansion doubles the bounds; the old content lands in the
// child slot matching the octant of the new bounds it occupies.
func (g *CubeGrid) growToInclude(pos math.IVec3) {
	for !g.inBounds(g.corner(pos)) {
		corner := g.corner(pos)
		// grow toward each violated side; +1 keeps the old content in the
		// low octant, -1 in the high octant
		dir := math.IVec3One
		if corner.X < 0 {
			dir.X = -1
		}
		if corner.Y < 0 {
			dir.Y = -1
		}
		if corner.Z < 0 {
			dir.Z = -1
		}
		g.expandToward(dir)
	}
}

// expandToward doubles the bounds, extending toward the positive side of
// each axis with dir>0 and the negative side otherwise
func (g *CubeGrid) expandToward(dir math.IVec3) {
	// slot bits of the old content inside the grown root
	var bits math.IVec3
	if dir.X < 0 {
		bits.X = 1
	}
	if dir.Y < 0 {
		bits.Y = 1
	}
	if dir.Z < 0 {
		bits.Z = 1
	}
	slot := bits.OctantIndex()

	var children [8]*Cube
	for i := range children {
		children[i] = Solid(0)
	}
	children[slot] = g.root

	g.root = NewCubes(children)
	g.origin = g.origin.Add(bits.MulScalar(g.Size()))
	g.depth++
}
