package cube

import (
	"github.com/k0sti/crossworld/pkg/math"
)

// expandChildren returns the eight children of a branching cube, or eight
// aliases of the uniform value for leaf shapes, so that updates can descend
// through uniform regions without losing their context.
func (c *Cube) expandChildren() [8]*Cube {
	var out [8]*Cube
	switch c.kind {
	case KindCubes:
		return *c.children
	case KindSolid:
		s := Solid(c.value)
		for i := range out {
			out[i] = s
		}
	default:
		s := Solid(c.ID())
		for i := range out {
			out[i] = s
		}
	}
	return out
}

// UpdatedIndex returns a copy of this cube with the child at index replaced
func (c *Cube) UpdatedIndex(index int, child *Cube) *Cube {
	children := c.expandChildren()
	children[index] = child
	return NewCubes(children)
}

// Update replaces the subtree rooted at coord with sub, allocating new
// nodes only along the descent path. Uniform nodes on the path are
// expanded into eight aliases of themselves before descending.
func (c *Cube) Update(coord Coord, sub *Cube) *Cube {
	if coord.Depth == 0 {
		return sub
	}
	d := coord.Depth - 1
	index := Index(d, coord.Pos)
	pos := coord.Pos.Sub(math.FromOctantIndex(index).MulScalar(1 << d))
	child := c.childOrSelf(index)
	newChild := child.Update(Coord{Pos: pos, Depth: d}, sub)
	return c.UpdatedIndex(index, newChild)
}

// UpdateDepth places source so that it occupies a 2^scale cube of cells at
// the target depth, starting at the corner-based offset. This strategy
// enumerates every leaf position of the source; UpdateDepthTree recurses
// octant-wise instead. The two are observationally equivalent.
func (c *Cube) UpdateDepth(depth uint32, offset math.IVec3, scale uint32, source *Cube) *Cube {
	if scale > depth {
		panic("cube: UpdateDepth scale exceeds target depth")
	}
	if scale == 0 {
		return c.Update(FromCorner(offset, depth), source)
	}
	result := c
	size := int32(1) << scale
	for z := int32(0); z < size; z++ {
		for y := int32(0); y < size; y++ {
			for x := int32(0); x < size; x++ {
				idx := math.NewIVec3(x, y, z)
				sub := source.Get(FromCorner(idx, scale))
				result = result.Update(FromCorner(offset.Add(idx), depth), sub)
			}
		}
	}
	return result
}

// UpdateDepthTree is the recursive strategy for UpdateDepth: equal-sized
// source subtrees are inserted in a single Update each.
func (c *Cube) UpdateDepthTree(depth uint32, offset math.IVec3, scale uint32, source *Cube) *Cube {
	if scale > depth {
		panic("cube: UpdateDepthTree scale exceeds target depth")
	}
	if scale == 0 {
		return c.Update(FromCorner(offset, depth), source)
	}
	result := c
	half := int32(1) << (scale - 1)
	for i := 0; i < 8; i++ {
		target := offset.Add(math.OctantBits(i).MulScalar(half))
		child := source.childOrSelf(i)
		result = result.UpdateDepthTree(depth, target, scale-1, child)
	}
	return result
}

// Simplified collapses branching nodes whose eight simplified children are
// the same Solid. Planes and Slices are left untouched. Simplification is
// not automatic; callers invoke it when they want the canonical form.
func (c *Cube) Simplified() *Cube {
	if c.kind != KindCubes {
		return c
	}
	var children [8]*Cube
	changed := false
	for i, child := range c.children {
		s := child.Simplified()
		children[i] = s
		if s != child {
			changed = true
		}
	}
	if children[0].kind == KindSolid {
		v := children[0].value
		uniform := true
		for _, child := range children[1:] {
			if child.kind != KindSolid || child.value != v {
				uniform = false
				break
			}
		}
		if uniform {
			return Solid(v)
		}
	}
	if !changed {
		return c
	}
	return NewCubes(children)
}

// mergeChild extracts the i-th operand for Add, replicating uniform cubes
// and treating Planes/Slices as their representative material.
func (c *Cube) mergeChild(i int) *Cube {
	switch c.kind {
	case KindCubes:
		return c.children[i]
	case KindSolid:
		return c
	default:
		return Solid(c.ID())
	}
}

// Add merges two cubes as a material union: non-zero wins over zero, and
// when both leaves are non-zero the second operand wins. The result is
// simplified.
func (c *Cube) Add(other *Cube) *Cube {
	if c.kind == KindSolid && other.kind == KindSolid {
		if other.value != 0 {
			return Solid(other.value)
		}
		return Solid(c.value)
	}
	return Tabulate(func(i int) *Cube {
		return c.mergeChild(i).Add(other.mergeChild(i))
	}).Simplified()
}

// Shift moves the cube's content by pos voxels within its own
// depth-sized space: result[x] = self[x - pos]. Cells shifted outside the
// bounds are dropped and vacated cells become Solid(0). The operation
// resamples one octant layer per level, reading the (parent, child) pair
// selected by the global octant position plus the shift bit at that level.
func (c *Cube) Shift(depth uint32, pos math.IVec3) *Cube {
	n := int32(1) << depth
	if pos.X >= n || pos.X <= -n ||
		pos.Y >= n || pos.Y <= -n ||
		pos.Z >= n || pos.Z <= -n {
		return Solid(0)
	}

	// Place self into a two-cell window per axis and translate the shift
	// into a non-negative readout offset q in [0, 2^depth).
	var slot, q math.IVec3
	place := func(p, n int32) (int32, int32) {
		if p > 0 {
			return 1, n - p
		}
		return 0, -p
	}
	slot.X, q.X = place(pos.X, n)
	slot.Y, q.Y = place(pos.Y, n)
	slot.Z, q.Z = place(pos.Z, n)

	var layer [8]*Cube
	for i := range layer {
		layer[i] = Solid(0)
	}
	layer[slot.OctantIndex()] = c
	return shiftWindow(&layer, depth, q)
}

// shiftWindow reads the depth-sized region at offset q out of a 2x2x2
// window of depth-sized cubes.
func shiftWindow(layer *[8]*Cube, depth uint32, q math.IVec3) *Cube {
	if depth == 0 {
		return layer[0]
	}

	first := layer[0]
	uniform := true
	for _, c := range layer[1:] {
		if c != first && !c.Equal(first) {
			uniform = false
			break
		}
	}
	if uniform {
		return first
	}

	half := int32(1) << (depth - 1)
	qh := q.DivScalar(half)
	qr := q.Sub(qh.MulScalar(half))

	return Tabulate(func(w int) *Cube {
		base := math.OctantBits(w).Add(qh)
		var child [8]*Cube
		for j := 0; j < 8; j++ {
			o := base.Add(math.OctantBits(j))
			p := layer[o.Shr(1).OctantIndex()]
			switch p.kind {
			case KindCubes:
				child[j] = p.children[o.And(1).OctantIndex()]
			case KindSolid:
				child[j] = p
			default:
				child[j] = Solid(p.ID())
			}
		}
		return shiftWindow(&child, depth-1, qr)
	}).Simplified()
}

// ApplySwap reflects one level: for each axis the four child pairs on
// opposite sides of the axis plane are exchanged. Children keep their
// internal structure.
func (c *Cube) ApplySwap(axes []Axis) *Cube {
	if c.kind != KindCubes {
		return c
	}
	children := *c.children
	for _, axis := range axes {
		for _, pair := range swapPairs[axis] {
			children[pair[0]], children[pair[1]] = children[pair[1]], children[pair[0]]
		}
	}
	return NewCubes(children)
}

// ApplyMirror is the true geometric mirror: the same pair exchange as
// ApplySwap, applied recursively to every child first.
func (c *Cube) ApplyMirror(axes []Axis) *Cube {
	if c.kind != KindCubes {
		return c
	}
	var children [8]*Cube
	for i, child := range c.children {
		children[i] = child.ApplyMirror(axes)
	}
	for _, axis := range axes {
		for _, pair := range swapPairs[axis] {
			children[pair[0]], children[pair[1]] = children[pair[1]], children[pair[0]]
		}
	}
	return NewCubes(children)
}
