package cube

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/pkg/math"
)

// CubeBox pairs a cube with the actual integer extent of the model it
// holds, for voxel models whose size is not a power of two. The octree
// side is 2^Depth cells, of which only [0, Size) per axis carry content.
type CubeBox struct {
	Cube  *Cube
	Size  math.IVec3
	Depth uint32
}

// NewCubeBox wraps a cube with its model extent, choosing the smallest
// depth whose side covers every size component.
func NewCubeBox(c *Cube, size math.IVec3) CubeBox {
	return CubeBox{Cube: c, Size: size, Depth: DepthForSize(size)}
}

// DepthForSize returns the smallest depth d with 2^d >= max(size).
func DepthForSize(size math.IVec3) uint32 {
	max := size.X
	if size.Y > max {
		max = size.Y
	}
	if size.Z > max {
		max = size.Z
	}
	depth := uint32(0)
	for int32(1)<<depth < max {
		depth++
	}
	return depth
}

// Scale returns the per-axis factor Size/2^Depth that maps the octree's
// normalized [0,1] space onto the model extent. Meshing and collider
// synthesis multiply emitted geometry by this factor.
func (b CubeBox) Scale() mgl32.Vec3 {
	side := float32(int32(1) << b.Depth)
	return mgl32.Vec3{
		float32(b.Size.X) / side,
		float32(b.Size.Y) / side,
		float32(b.Size.Z) / side,
	}
}
