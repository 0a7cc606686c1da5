package traverse

import (
	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

// Visitor receives each visited cell with its neighbor view and
// accumulated coordinate. subleaf is true when the center is a leaf that
// could still be subdivided (depth > 0). Returning true subdivides a leaf
// (uniform values replicate into eight children) or descends into the
// real children of a branching cell.
type Visitor func(view View, coord cube.Coord, subleaf bool) bool

// Traverse walks the octree from a root-level window, visiting the eight
// octants and recursing wherever the visitor asks.
func Traverse(grid *Grid, visitor Visitor) {
	for i := 0; i < 8; i++ {
		bits := math.OctantBits(i)
		view := NewView(grid, XYZToIndex(bits.X+1, bits.Y+1, bits.Z+1))
		coord := cube.NewCoord(math.FromOctantIndex(i), 1)
		traverseRecursive(view, coord, visitor)
	}
}

func traverseRecursive(view View, coord cube.Coord, visitor Visitor) {
	center := view.Center()
	if center.IsLeaf() {
		subleaf := coord.Depth > 0
		if visitor(view, coord, subleaf) && subleaf {
			traverseChildren(view, coord, visitor)
		}
		return
	}
	if visitor(view, coord, false) {
		traverseChildren(view, coord, visitor)
	}
}

func traverseChildren(view View, coord cube.Coord, visitor Visitor) {
	child := view.CreateChildGrid()
	for i := 0; i < 8; i++ {
		bits := math.OctantBits(i)
		childView := NewView(child, XYZToIndex(bits.X+1, bits.Y+1, bits.Z+1))
		traverseRecursive(childView, coord.Child(i), visitor)
	}
}

// TraverseRegion visits every cell of the corner-based rectangular region
// [start, start+size) at the given depth, in Z-major then Y-major then
// X-major order. One grid covering the region plus a one-cell border is
// built up front; each cell's 4x4x4 window is extracted from it.
func TraverseRegion(root *cube.Cube, start, size math.IVec3, depth uint32, visitor Visitor, borders BorderMaterials) {
	if depth == 0 {
		g := singleCellGrid(root, borders)
		view := NewView(g, XYZToIndex(1, 1, 1))
		coord := cube.NewCoord(math.IVec3Zero, 0)
		traverseRecursive(view, coord, visitor)
		return
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return
	}

	regionGrid := buildRegionGrid(root, start, size, depth, borders)
	gridSize := size.Add(math.Splat(2))

	for z := int32(0); z < size.Z; z++ {
		for y := int32(0); y < size.Y; y++ {
			for x := int32(0); x < size.X; x++ {
				local := math.NewIVec3(x, y, z)
				corner := start.Add(local)
				coord := cube.FromCorner(corner, depth)

				window := extractWindow(regionGrid, local.Add(math.IVec3One), gridSize)
				view := NewView(window, XYZToIndex(1, 1, 1))
				traverseRecursive(view, coord, visitor)
			}
		}
	}
}

// singleCellGrid hosts the root in one cell surrounded by border material,
// for depth-0 traversal of the whole cube.
func singleCellGrid(root *cube.Cube, borders BorderMaterials) *Grid {
	g := &Grid{}
	for z := int32(0); z < 4; z++ {
		for y := int32(0); y < 4; y++ {
			for x := int32(0); x < 4; x++ {
				band := 1
				if y == 0 {
					band = 0
				} else if y >= 2 {
					band = 3
				}
				g.cells[XYZToIndex(x, y, z)] = cube.Solid(borders[band])
			}
		}
	}
	g.cells[XYZToIndex(1, 1, 1)] = root
	return g
}

// buildRegionGrid fills a (size+2)^3 grid with the cubes at every cell of
// the region and its one-cell border. Cells outside the octree bounds take
// the border material of their vertical band.
func buildRegionGrid(root *cube.Cube, start, size math.IVec3, depth uint32, borders BorderMaterials) []*cube.Cube {
	gridSize := size.Add(math.Splat(2))
	octreeSize := int32(1) << depth
	grid := make([]*cube.Cube, gridSize.X*gridSize.Y*gridSize.Z)

	i := 0
	for z := int32(0); z < gridSize.Z; z++ {
		for y := int32(0); y < gridSize.Y; y++ {
			for x := int32(0); x < gridSize.X; x++ {
				corner := start.Add(math.NewIVec3(x, y, z)).Sub(math.IVec3One)
				if corner.X < 0 || corner.Y < 0 || corner.Z < 0 ||
					corner.X >= octreeSize || corner.Y >= octreeSize || corner.Z >= octreeSize {
					grid[i] = cube.Solid(borders[borderBand(corner.Y, octreeSize)])
				} else {
					grid[i] = cubeAtCorner(root, corner, depth)
				}
				i++
			}
		}
	}
	return grid
}

// borderBand maps a corner-based Y position to one of the four border
// bands.
func borderBand(y, octreeSize int32) int {
	if y < 0 {
		return 0
	}
	if y >= octreeSize {
		return 3
	}
	band := int(y * 4 / octreeSize)
	if band > 3 {
		band = 3
	}
	return band
}

// cubeAtCorner navigates to the cell at a corner-based position by
// extracting one position bit per level, distinct from the center-based
// descent of cube.Get. Leaves reached early stand for the whole region
// they cover.
func cubeAtCorner(root *cube.Cube, corner math.IVec3, depth uint32) *cube.Cube {
	current := root
	for level := uint32(0); level < depth; level++ {
		if current.IsLeaf() {
			return current
		}
		shift := depth - level - 1
		bits := corner.Shr(shift).And(1)
		current = current.Child(bits.OctantIndex())
	}
	return current
}

func regionGridIndex(pos, gridSize math.IVec3) int {
	return int(pos.X + pos.Y*gridSize.X + pos.Z*gridSize.X*gridSize.Y)
}

// extractWindow pulls a 4x4x4 window out of the region grid centered on
// the given cell.
func extractWindow(regionGrid []*cube.Cube, center, gridSize math.IVec3) *Grid {
	g := &Grid{}
	for i := range g.cells {
		offset := IndexToPos(i).Sub(math.IVec3One)
		pos := center.Add(offset)
		if pos.X >= 0 && pos.Y >= 0 && pos.Z >= 0 &&
			pos.X < gridSize.X && pos.Y < gridSize.Y && pos.Z < gridSize.Z {
			g.cells[i] = regionGrid[regionGridIndex(pos, gridSize)]
		} else {
			g.cells[i] = cube.Solid(0)
		}
	}
	return g
}
