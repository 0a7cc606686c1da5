package traverse

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

// Face identifies one of the six cube faces by the axis its normal
// points along
type Face uint8

// Faces in the fixed emission order
const (
	FaceRight Face = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
)

// Name returns the face name
func (f Face) Name() string {
	switch f {
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	}
	return "?"
}

// faceVertices holds the unit-cell quad of each face, counter-clockwise
// as seen from the normal side
var faceVertices = [6][4][3]float32{
	FaceRight:  {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	FaceLeft:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FaceFront:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	FaceBack:   {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

var faceNormals = [6]mgl32.Vec3{
	FaceRight:  {1, 0, 0},
	FaceLeft:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
	FaceFront:  {0, 0, 1},
	FaceBack:   {0, 0, -1},
}

// Normal returns the face's outward normal
func (f Face) Normal() mgl32.Vec3 {
	return faceNormals[f]
}

// Vertices returns the face quad of a cell with the given origin and edge
// size, counter-clockwise as seen from the normal side
func (f Face) Vertices(pos mgl32.Vec3, size float32) [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	for i, v := range faceVertices[f] {
		out[i] = mgl32.Vec3{
			pos.X() + v[0]*size,
			pos.Y() + v[1]*size,
			pos.Z() + v[2]*size,
		}
	}
	return out
}

// FaceInfo describes one visible face: the boundary between an empty
// observer cell and a solid cell. The normal of Face points from the
// solid into the empty observer.
type FaceInfo struct {
	// Face direction; its normal points at the observer
	Face Face
	// Origin of the cell whose Face quad forms the boundary, in
	// normalized [0,1] space
	Position mgl32.Vec3
	// Edge size of the voxel at this depth
	Size float32
	// Material of the solid side
	Material uint8
	// Coordinate of the empty observer
	Viewer cube.Coord
}

// FaceVisitor receives each visible face exactly once
type FaceVisitor func(face *FaceInfo)

// faceDirection pairs a window offset with the faces it produces: face is
// the solid neighbor's face seen by an empty center, outer is the solid
// center's own face toward an empty cell outside the octree.
type faceDirection struct {
	face  Face
	outer Face
	off   int
	step  math.IVec3
}

// The fixed six-direction emission order: right, left, top, bottom,
// front, back.
var faceDirections = [6]faceDirection{
	{FaceRight, FaceLeft, OffsetLeft, math.NewIVec3(-1, 0, 0)},
	{FaceLeft, FaceRight, OffsetRight, math.NewIVec3(1, 0, 0)},
	{FaceTop, FaceBottom, OffsetDown, math.NewIVec3(0, -1, 0)},
	{FaceBottom, FaceTop, OffsetUp, math.NewIVec3(0, 1, 0)},
	{FaceFront, FaceBack, OffsetBack, math.NewIVec3(0, 0, -1)},
	{FaceBack, FaceFront, OffsetFront, math.NewIVec3(0, 0, 1)},
}

// faceVisitor adapts a FaceVisitor into the traversal protocol. A face is
// emitted when an empty leaf cell sees a solid leaf neighbor at its own
// depth, or when a solid leaf cell on the octree boundary sees an empty
// border cell. An empty cell next to a finer-subdivided neighbor is
// subdivided instead, which stitches LOD transitions without T-junctions.
func faceVisitor(visitor FaceVisitor) Visitor {
	return func(view View, coord cube.Coord, _ bool) bool {
		center := view.Center()
		if !center.IsLeaf() {
			return true
		}
		centerID := center.ID()
		if centerID == 0 {
			for _, d := range faceDirections {
				if !view.Get(d.off).IsLeaf() {
					return true
				}
			}
		}

		size := coord.VoxelSize()
		corner := coord.Corner()
		base := corner.Vec3().Mul(size)
		n := int32(1) << coord.Depth

		for _, d := range faceDirections {
			neighbor := view.Get(d.off)
			if !neighbor.IsLeaf() {
				continue
			}
			nid := neighbor.ID()
			npos := corner.Add(d.step)
			outside := npos.X < 0 || npos.Y < 0 || npos.Z < 0 ||
				npos.X >= n || npos.Y >= n || npos.Z >= n

			switch {
			case centerID == 0 && nid != 0:
				visitor(&FaceInfo{
					Face:     d.face,
					Position: base.Add(d.step.Vec3().Mul(size)),
					Size:     size,
					Material: nid,
					Viewer:   coord,
				})
			case centerID != 0 && nid == 0 && outside:
				visitor(&FaceInfo{
					Face:     d.outer,
					Position: base,
					Size:     size,
					Material: centerID,
					Viewer:   cube.NewCoord(coord.Pos.Add(d.step.MulScalar(2)), coord.Depth),
				})
			}
		}
		return false
	}
}

// VisitFaces calls the visitor once per visible face of the whole cube.
func VisitFaces(root *cube.Cube, visitor FaceVisitor, borders BorderMaterials) {
	if root.IsLeaf() && root.ID() != 0 {
		emitLeafRootFaces(root.ID(), visitor, borders)
		return
	}
	Traverse(NewGrid(root, borders), faceVisitor(visitor))
}

// emitLeafRootFaces handles a uniform solid root: one size-1 face per
// side whose border band is empty.
func emitLeafRootFaces(id uint8, visitor FaceVisitor, borders BorderMaterials) {
	sidesEmpty := borders[1] == 0
	for _, d := range faceDirections {
		empty := sidesEmpty
		if d.step.Y < 0 {
			empty = borders[0] == 0
		} else if d.step.Y > 0 {
			empty = borders[3] == 0
		}
		if !empty {
			continue
		}
		visitor(&FaceInfo{
			Face:     d.outer,
			Position: mgl32.Vec3{},
			Size:     1,
			Material: id,
			Viewer:   cube.NewCoord(d.step.MulScalar(2), 0),
		})
	}
}

// VisitFacesInRegion restricts face extraction to a corner-based region
// at the region's depth.
func VisitFacesInRegion(root *cube.Cube, region *RegionBounds, visitor FaceVisitor, borders BorderMaterials) {
	if region == nil {
		return
	}
	TraverseRegion(root, region.Min, region.Size, region.Depth, faceVisitor(visitor), borders)
}

// VoxelInfo describes one solid cell encountered by VisitVoxelsInRegion
type VoxelInfo struct {
	Coord    cube.Coord
	Position mgl32.Vec3
	Size     float32
	Material uint8
}

// VoxelVisitor receives each solid voxel of a region
type VoxelVisitor func(voxel *VoxelInfo)

// VisitVoxelsInRegion calls the visitor once per solid cell in the
// region, descending through subdivided cells.
func VisitVoxelsInRegion(root *cube.Cube, region *RegionBounds, visitor VoxelVisitor, borders BorderMaterials) {
	if region == nil {
		return
	}
	TraverseRegion(root, region.Min, region.Size, region.Depth, func(view View, coord cube.Coord, _ bool) bool {
		center := view.Center()
		if !center.IsLeaf() {
			return true
		}
		id := center.ID()
		if id == 0 {
			return false
		}
		size := coord.VoxelSize()
		visitor(&VoxelInfo{
			Coord:    coord,
			Position: coord.Corner().Vec3().Mul(size),
			Size:     size,
			Material: id,
		})
		return false
	}, borders)
}
