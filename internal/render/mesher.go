// Package render turns cubes into something visible: vertex streams for
// GL meshes, orthographic software snapshots, and a fragment-shader
// tracer that walks BCF bytes on the GPU.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/traverse"
)

// MeshBuilder receives faces during mesh generation
type MeshBuilder interface {
	// AddFace adds a quad with a flat color
	AddFace(vertices [4]mgl32.Vec3, normal mgl32.Vec3, color [3]float32)
	// AddTexturedFace adds a quad with UVs and a material for texture
	// lookup
	AddTexturedFace(vertices [4]mgl32.Vec3, normal mgl32.Vec3, color [3]float32, uvs [4][2]float32, materialID uint8)
}

// DefaultMeshBuilder accumulates faces into flat vertex streams plus a
// shared index list, two triangles per face
type DefaultMeshBuilder struct {
	Vertices    []float32
	Normals     []float32
	Colors      []float32
	UVs         []float32
	MaterialIDs []uint8
	Indices     []uint32

	vertexCount uint32
}

// NewDefaultMeshBuilder creates an empty builder
func NewDefaultMeshBuilder() *DefaultMeshBuilder {
	return &DefaultMeshBuilder{}
}

// FaceCount returns the number of quads added
func (b *DefaultMeshBuilder) FaceCount() int {
	return len(b.Indices) / 6
}

// AddFace implements MeshBuilder
func (b *DefaultMeshBuilder) AddFace(vertices [4]mgl32.Vec3, normal mgl32.Vec3, color [3]float32) {
	b.AddTexturedFace(vertices, normal, color, [4][2]float32{}, 0)
}

// AddTexturedFace implements MeshBuilder
func (b *DefaultMeshBuilder) AddTexturedFace(vertices [4]mgl32.Vec3, normal mgl32.Vec3, color [3]float32, uvs [4][2]float32, materialID uint8) {
	base := b.vertexCount
	for i, v := range vertices {
		b.Vertices = append(b.Vertices, v.X(), v.Y(), v.Z())
		b.Normals = append(b.Normals, normal.X(), normal.Y(), normal.Z())
		b.Colors = append(b.Colors, color[0], color[1], color[2])
		b.UVs = append(b.UVs, uvs[i][0], uvs[i][1])
		b.MaterialIDs = append(b.MaterialIDs, materialID)
	}
	b.Indices = append(b.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	b.vertexCount += 4
}

// texturedLow and texturedHigh bound the material range rendered with
// texture lookup; everything else is flat colored
const (
	texturedLow  = 2
	texturedHigh = 127
)

// GenerateFaceMesh emits one quad per visible face of the octree into
// the builder. colorFn maps materials to colors; baseDepth sets the UV
// tiling scale so textures stay seamless across depths.
func GenerateFaceMesh(root *cube.Cube, builder MeshBuilder, colorFn func(uint8) [3]float32, borders traverse.BorderMaterials, baseDepth uint32) {
	traverse.VisitFaces(root, func(f *traverse.FaceInfo) {
		vertices := f.Face.Vertices(f.Position, f.Size)
		normal := f.Face.Normal()
		color := colorFn(f.Material)

		if f.Material >= texturedLow && f.Material <= texturedHigh {
			uvScale := float32(int32(1) << baseDepth)
			builder.AddTexturedFace(vertices, normal, color, faceUVs(f, vertices, uvScale), f.Material)
		} else {
			builder.AddFace(vertices, normal, color)
		}
	}, borders)
}

// GenerateFaceMeshInRegion is GenerateFaceMesh clipped to a region.
func GenerateFaceMeshInRegion(root *cube.Cube, region *traverse.RegionBounds, builder MeshBuilder, colorFn func(uint8) [3]float32, borders traverse.BorderMaterials, baseDepth uint32) {
	traverse.VisitFacesInRegion(root, region, func(f *traverse.FaceInfo) {
		vertices := f.Face.Vertices(f.Position, f.Size)
		normal := f.Face.Normal()
		color := colorFn(f.Material)

		if f.Material >= texturedLow && f.Material <= texturedHigh {
			uvScale := float32(int32(1) << baseDepth)
			builder.AddTexturedFace(vertices, normal, color, faceUVs(f, vertices, uvScale), f.Material)
		} else {
			builder.AddFace(vertices, normal, color)
		}
	}, borders)
}

// faceUVs projects the quad onto the face plane so UVs tile with world
// position.
func faceUVs(f *traverse.FaceInfo, vertices [4]mgl32.Vec3, scale float32) [4][2]float32 {
	n := f.Face.Normal()
	// tangent axes: the two axes the normal does not use
	var u, v int
	switch {
	case n.X() != 0:
		u, v = 2, 1
	case n.Y() != 0:
		u, v = 0, 2
	default:
		u, v = 0, 1
	}
	var out [4][2]float32
	for i, vert := range vertices {
		out[i] = [2]float32{vert[u] * scale, vert[v] * scale}
	}
	return out
}
