package traverse

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

// RegionBounds is a rectangular range of octants at a fixed depth, used
// to clip traversal, meshing and collider work to an AABB intersection.
type RegionBounds struct {
	Min   math.IVec3
	Size  math.IVec3
	Depth uint32
}

// NewRegionBounds creates a region from its corner-based min cell and
// cell counts
func NewRegionBounds(min, size math.IVec3, depth uint32) *RegionBounds {
	return &RegionBounds{Min: min, Size: size, Depth: depth}
}

// WholeCube returns the region covering the entire octree at the given
// depth
func WholeCube(depth uint32) *RegionBounds {
	n := int32(1) << depth
	return &RegionBounds{Min: math.IVec3Zero, Size: math.Splat(n), Depth: depth}
}

// FromLocalAabb clips an axis-aligned box in the cube's local [0,1] space
// to the unit cube and returns the enclosing octant rectangle at the
// given depth, or nil when the intersection is empty.
func FromLocalAabb(min, max mgl32.Vec3, depth uint32) *RegionBounds {
	n := float32(int32(1) << depth)

	var lo, hi math.IVec3
	loF := [3]*int32{&lo.X, &lo.Y, &lo.Z}
	hiF := [3]*int32{&hi.X, &hi.Y, &hi.Z}
	for a := 0; a < 3; a++ {
		cmin := min[a]
		cmax := max[a]
		if cmin < 0 {
			cmin = 0
		}
		if cmax > 1 {
			cmax = 1
		}
		if cmin >= cmax {
			return nil
		}
		*loF[a] = int32(math32.Floor(cmin * n))
		*hiF[a] = int32(math32.Ceil(cmax * n))
		if *hiF[a] > int32(n) {
			*hiF[a] = int32(n)
		}
	}

	return &RegionBounds{Min: lo, Size: hi.Sub(lo), Depth: depth}
}

// OctantCount returns the number of cells in the region
func (r *RegionBounds) OctantCount() int {
	return int(r.Size.X * r.Size.Y * r.Size.Z)
}

// ForEachCoord calls the callback with every center-based coordinate in
// the region, Z-major then Y-major then X-major.
func (r *RegionBounds) ForEachCoord(cb func(coord cube.Coord)) {
	for z := int32(0); z < r.Size.Z; z++ {
		for y := int32(0); y < r.Size.Y; y++ {
			for x := int32(0); x < r.Size.X; x++ {
				corner := r.Min.Add(math.NewIVec3(x, y, z))
				cb(cube.FromCorner(corner, r.Depth))
			}
		}
	}
}

// Coords collects every coordinate in the region
func (r *RegionBounds) Coords() []cube.Coord {
	out := make([]cube.Coord, 0, r.OctantCount())
	r.ForEachCoord(func(c cube.Coord) {
		out = append(out, c)
	})
	return out
}

// ContainsCoord reports whether a coordinate lies inside the region.
// Coordinates at a different depth are rescaled to the region's depth.
func (r *RegionBounds) ContainsCoord(c cube.Coord) bool {
	corner := c.Corner()
	switch {
	case c.Depth > r.Depth:
		corner = corner.Shr(c.Depth - r.Depth)
	case c.Depth < r.Depth:
		corner = corner.MulScalar(1 << (r.Depth - c.Depth))
	}
	end := r.Min.Add(r.Size)
	return corner.X >= r.Min.X && corner.Y >= r.Min.Y && corner.Z >= r.Min.Z &&
		corner.X < end.X && corner.Y < end.Y && corner.Z < end.Z
}

// ContainsWorldPoint reports whether a world-space point falls inside the
// region of a cube spanning [cubePos, cubePos+scale] per axis.
func (r *RegionBounds) ContainsWorldPoint(point, cubePos mgl32.Vec3, scale float32) bool {
	if scale <= 0 {
		return false
	}
	local := point.Sub(cubePos).Mul(1 / scale)
	n := float32(int32(1) << r.Depth)
	cell := math.NewIVec3(
		int32(math32.Floor(local.X()*n)),
		int32(math32.Floor(local.Y()*n)),
		int32(math32.Floor(local.Z()*n)),
	)
	end := r.Min.Add(r.Size)
	return cell.X >= r.Min.X && cell.Y >= r.Min.Y && cell.Z >= r.Min.Z &&
		cell.X < end.X && cell.Y < end.Y && cell.Z < end.Z
}
