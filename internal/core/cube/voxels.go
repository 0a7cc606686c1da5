package cube

import (
	"github.com/k0sti/crossworld/pkg/math"
)

// Voxel is a single corner-based cell with its material
type Voxel struct {
	Pos      math.IVec3
	Material uint8
}

// FromVoxels builds an octree containing each voxel at its corner-based
// position at the given depth; every other cell carries def. When several
// voxels share a position the last one wins. The result is simplified.
func FromVoxels(voxels []Voxel, depth uint32, def uint8) *Cube {
	if len(voxels) == 0 {
		return Solid(def)
	}
	if depth == 0 {
		return Solid(voxels[len(voxels)-1].Material)
	}

	half := int32(1) << (depth - 1)
	var parts [8][]Voxel
	for _, v := range voxels {
		var bits math.IVec3
		if v.Pos.X >= half {
			bits.X = 1
		}
		if v.Pos.Y >= half {
			bits.Y = 1
		}
		if v.Pos.Z >= half {
			bits.Z = 1
		}
		idx := bits.OctantIndex()
		parts[idx] = append(parts[idx], Voxel{
			Pos:      v.Pos.Sub(bits.MulScalar(half)),
			Material: v.Material,
		})
	}

	var children [8]*Cube
	for i := range children {
		children[i] = FromVoxels(parts[i], depth-1, def)
	}

	// collapse uniform levels as they are built
	if children[0].kind == KindSolid {
		v := children[0].value
		uniform := true
		for _, c := range children[1:] {
			if c.kind != KindSolid || c.value != v {
				uniform = false
				break
			}
		}
		if uniform {
			return Solid(v)
		}
	}
	return NewCubes(children)
}

// EnumerateVoxels lists every non-empty voxel of the cube at the given
// depth in corner-based coordinates, expanding coarser leaves across their
// extent. FromVoxels(EnumerateVoxels(c, d), d, 0) rebuilds c up to
// simplification when the cube's leaves fit at depth d.
func (c *Cube) EnumerateVoxels(depth uint32) []Voxel {
	var out []Voxel
	c.VisitLeaves(depth, math.IVec3Zero, func(leaf *Cube, remaining uint32, pos math.IVec3) {
		id := leaf.ID()
		if id == 0 {
			return
		}
		level := depth - remaining
		size := int32(1) << remaining
		base := math.CenterToCorner(pos, level).MulScalar(size)
		for z := int32(0); z < size; z++ {
			for y := int32(0); y < size; y++ {
				for x := int32(0); x < size; x++ {
					out = append(out, Voxel{Pos: base.Add(math.NewIVec3(x, y, z)), Material: id})
				}
			}
		}
	})
	return out
}

// SetVoxel returns a new cube with the voxel at the corner-based position
// set to the given material.
func (c *Cube) SetVoxel(pos math.IVec3, depth uint32, value uint8) *Cube {
	return c.Update(FromCorner(pos, depth), Solid(value))
}
