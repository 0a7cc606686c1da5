// Package traverse implements neighbor-aware octree traversal: a 4x4x4
// sliding window that gives leaf-level visitors O(1) access to their
// 26-neighborhood at every depth, plus the region and face drivers built
// on top of it.
package traverse

import (
	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

// Window cell offsets of the six axis neighbors, relative to a center cell
const (
	OffsetLeft  = -1
	OffsetRight = 1
	OffsetDown  = -4
	OffsetUp    = 4
	OffsetBack  = -16
	OffsetFront = 16
)

// BorderMaterials assigns a solid fill material to each of four vertical
// bands outside the octree's Y extent. A typical terrain setting is
// [ground, ground, air, air].
type BorderMaterials [4]uint8

// Grid is the 4x4x4 window of cube cells. The center is the 2x2x2 block
// at indices {1,2} per axis; the surrounding shell provides the
// neighborhood.
type Grid struct {
	cells [64]*cube.Cube
}

// XYZToIndex converts window coordinates in [0,4) to a cell index
func XYZToIndex(x, y, z int32) int {
	return int(x + y*4 + z*16)
}

// IndexToPos converts a cell index back to window coordinates
func IndexToPos(i int) math.IVec3 {
	return math.NewIVec3(int32(i)&3, (int32(i)>>2)&3, (int32(i)>>4)&3)
}

// NewGrid builds the root-level window: the root's octants fill the
// center and the shell takes the border material of its vertical band.
func NewGrid(root *cube.Cube, borders BorderMaterials) *Grid {
	g := &Grid{}
	for z := int32(0); z < 4; z++ {
		for y := int32(0); y < 4; y++ {
			for x := int32(0); x < 4; x++ {
				idx := XYZToIndex(x, y, z)
				if x >= 1 && x <= 2 && y >= 1 && y <= 2 && z >= 1 && z <= 2 {
					bits := math.NewIVec3(x-1, y-1, z-1)
					g.cells[idx] = root.ChildOrSelf(bits.OctantIndex())
				} else {
					g.cells[idx] = cube.Solid(borders[y])
				}
			}
		}
	}
	return g
}

// Cell returns the cube at a cell index
func (g *Grid) Cell(i int) *cube.Cube {
	return g.cells[i]
}

// View is a borrow of a grid centered on one of its center cells
type View struct {
	grid  *Grid
	index int
}

// NewView creates a view centered on the given cell index
func NewView(g *Grid, index int) View {
	return View{grid: g, index: index}
}

// Center returns the cell the view is centered on
func (v View) Center() *cube.Cube {
	return v.grid.cells[v.index]
}

// Get returns the neighbor along one of the six axis offsets
func (v View) Get(offset int) *cube.Cube {
	return v.grid.cells[v.index+offset]
}

// CreateChildGrid builds the window one level deeper: the center cell's
// children become the new 2x2x2 center and the shell is resampled from
// the parent window. Each child cell reads the aligned child of the
// parent cell that covers it; leaf parent cells (including borders) stand
// in for their own children, which is how border materials propagate down.
func (v View) CreateChildGrid() *Grid {
	c := IndexToPos(v.index)
	child := &Grid{}
	for z := int32(0); z < 4; z++ {
		for y := int32(0); y < 4; y++ {
			for x := int32(0); x < 4; x++ {
				k := math.NewIVec3(x-1, y-1, z-1)
				parentCell := math.NewIVec3(
					c.X+floorHalf(k.X),
					c.Y+floorHalf(k.Y),
					c.Z+floorHalf(k.Z),
				)
				bits := k.And(1)
				parent := v.grid.cells[XYZToIndex(parentCell.X, parentCell.Y, parentCell.Z)]
				child.cells[XYZToIndex(x, y, z)] = parent.ChildOrSelf(bits.OctantIndex())
			}
		}
	}
	return child
}

// floorHalf divides by two rounding toward negative infinity; the window
// resampling needs -1/2 to land in the cell below.
func floorHalf(k int32) int32 {
	if k < 0 {
		return -1
	}
	return k / 2
}
