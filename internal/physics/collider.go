package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/traverse"
)

// Collider is a triangle mesh: four vertices and two triangles per
// visible face, wound so normals point outward from solid into empty.
type Collider struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh
func (c *Collider) TriangleCount() int {
	return len(c.Indices) / 3
}

// VoxelColliderBuilder accumulates visible faces into a triangle mesh
type VoxelColliderBuilder struct {
	vertices  []mgl32.Vec3
	indices   []uint32
	faceCount int
}

// NewVoxelColliderBuilder creates an empty builder
func NewVoxelColliderBuilder() *VoxelColliderBuilder {
	return &VoxelColliderBuilder{}
}

// FaceCount returns the number of faces added so far
func (b *VoxelColliderBuilder) FaceCount() int {
	return b.faceCount
}

func (b *VoxelColliderBuilder) addFace(info *traverse.FaceInfo, scale mgl32.Vec3) {
	base := uint32(len(b.vertices))
	for _, v := range info.Face.Vertices(info.Position, info.Size) {
		b.vertices = append(b.vertices, mgl32.Vec3{
			v.X() * scale.X(),
			v.Y() * scale.Y(),
			v.Z() * scale.Z(),
		})
	}
	b.indices = append(b.indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	b.faceCount++
}

func (b *VoxelColliderBuilder) build() Collider {
	return Collider{Vertices: b.vertices, Indices: b.indices}
}

var noBorders = traverse.BorderMaterials{0, 0, 0, 0}

// FromCube builds a collider covering every visible face of the cube in
// its local [0,1] space.
func FromCube(c *cube.Cube) Collider {
	return FromCubeScaled(c, 1)
}

// FromCubeScaled builds a collider scaled to a world size.
func FromCubeScaled(c *cube.Cube, worldSize float32) Collider {
	b := NewVoxelColliderBuilder()
	scale := mgl32.Vec3{worldSize, worldSize, worldSize}
	traverse.VisitFaces(c, func(f *traverse.FaceInfo) {
		b.addFace(f, scale)
	}, noBorders)
	return b.build()
}

// FromCubeWithRegion restricts collider synthesis to a region; a nil
// region covers the whole cube.
func FromCubeWithRegion(c *cube.Cube, region *traverse.RegionBounds) Collider {
	return FromCubeWithRegionScaled(c, region, 1)
}

// FromCubeWithRegionScaled restricts synthesis to a region and scales the
// result to a world size.
func FromCubeWithRegionScaled(c *cube.Cube, region *traverse.RegionBounds, worldSize float32) Collider {
	if region == nil {
		return FromCubeScaled(c, worldSize)
	}
	b := NewVoxelColliderBuilder()
	scale := mgl32.Vec3{worldSize, worldSize, worldSize}
	traverse.VisitFacesInRegion(c, region, func(f *traverse.FaceInfo) {
		b.addFace(f, scale)
	}, noBorders)
	return b.build()
}

// FromCubeRegion clips synthesis to a local-space AABB at the given depth.
func FromCubeRegion(c *cube.Cube, localAabb Aabb, depth uint32) Collider {
	region := traverse.FromLocalAabb(localAabb.Min, localAabb.Max, depth)
	if region == nil {
		return Collider{}
	}
	return FromCubeWithRegion(c, region)
}

// FromCubeBox builds a collider for a bounded model, scaling emitted
// geometry by size/2^depth per axis so the mesh covers the model extent.
func FromCubeBox(box cube.CubeBox) Collider {
	return FromCubeBoxScaled(box, 1)
}

// FromCubeBoxScaled additionally applies a uniform world size.
func FromCubeBoxScaled(box cube.CubeBox, worldSize float32) Collider {
	b := NewVoxelColliderBuilder()
	scale := box.Scale().Mul(worldSize)
	traverse.VisitFaces(box.Cube, func(f *traverse.FaceInfo) {
		b.addFace(f, scale)
	}, noBorders)
	return b.build()
}

// FromCubeBoxWithRegion restricts a bounded model's collider to a region.
func FromCubeBoxWithRegion(box cube.CubeBox, region *traverse.RegionBounds) Collider {
	if region == nil {
		return FromCubeBox(box)
	}
	b := NewVoxelColliderBuilder()
	scale := box.Scale()
	traverse.VisitFacesInRegion(box.Cube, region, func(f *traverse.FaceInfo) {
		b.addFace(f, scale)
	}, noBorders)
	return b.build()
}
