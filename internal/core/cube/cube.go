// Package cube implements the recursive, structurally shared cube container
// and its algebra. A Cube is immutable once constructed: every structural
// operation returns a new root and shares untouched branches by pointer.
package cube

import (
	"github.com/k0sti/crossworld/pkg/math"
)

// Kind discriminates the four cube shapes
type Kind uint8

// Cube shapes
const (
	KindSolid Kind = iota
	KindCubes
	KindPlanes
	KindSlices
)

// Cube is a recursive sum type: a uniform Solid region, eight ordered
// octant children, a quadtree extruded along an axis (Planes), or a stack
// of layers along an axis (Slices). Only Solid and Cubes participate in
// the hot paths; Planes and Slices are carried for codec round-trips and
// treated as uniform elsewhere.
type Cube struct {
	kind     Kind
	value    uint8
	children *[8]*Cube
	axis     Axis
	quad     *Quad
	layers   []*Cube
}

// Quad is the 2D analogue of Cube used by the Planes variant
type Quad struct {
	value    uint8
	children *[4]*Quad
}

// SolidQuad creates a uniform quad
func SolidQuad(v uint8) *Quad {
	return &Quad{value: v}
}

// NewQuads creates a subdivided quad from four children
func NewQuads(children [4]*Quad) *Quad {
	for _, q := range children {
		if q == nil {
			panic("cube: nil quad child in NewQuads")
		}
	}
	c := children
	return &Quad{children: &c}
}

// IsLeaf reports whether the quad is not subdivided
func (q *Quad) IsLeaf() bool {
	return q.children == nil
}

// Value returns the quad's value (the first child's value when subdivided)
func (q *Quad) Value() uint8 {
	if q.children != nil {
		return q.children[0].Value()
	}
	return q.value
}

// Child returns the i-th quad child, or nil for leaves
func (q *Quad) Child(i int) *Quad {
	if q.children == nil {
		return nil
	}
	return q.children[i]
}

// Equal reports structural equality of two quads
func (q *Quad) Equal(o *Quad) bool {
	if q == o {
		return true
	}
	if (q.children == nil) != (o.children == nil) {
		return false
	}
	if q.children == nil {
		return q.value == o.value
	}
	for i := range q.children {
		if !q.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// solids interns the 256 uniform cubes so aliased leaves share storage
var solids = func() [256]Cube {
	var s [256]Cube
	for i := range s {
		s[i] = Cube{kind: KindSolid, value: uint8(i)}
	}
	return s
}()

// Solid returns the uniform cube carrying the given material
func Solid(v uint8) *Cube {
	return &solids[v]
}

// NewCubes creates a branching cube from eight ordered children
func NewCubes(children [8]*Cube) *Cube {
	for _, c := range children {
		if c == nil {
			panic("cube: nil child in NewCubes")
		}
	}
	c := children
	return &Cube{kind: KindCubes, children: &c}
}

// NewPlanes creates a cube from a quadtree extruded along an axis
func NewPlanes(axis Axis, quad *Quad) *Cube {
	return &Cube{kind: KindPlanes, axis: axis, quad: quad}
}

// NewSlices creates a cube from a stack of layers along an axis
func NewSlices(axis Axis, layers []*Cube) *Cube {
	return &Cube{kind: KindSlices, axis: axis, layers: layers}
}

// Tabulate builds a branching cube from an octant-index producer
func Tabulate(f func(i int) *Cube) *Cube {
	var children [8]*Cube
	for i := range children {
		children[i] = f(i)
	}
	return NewCubes(children)
}

// TabulateVector builds a branching cube from a center-based
// octant-position producer
func TabulateVector(f func(pos math.IVec3) *Cube) *Cube {
	var children [8]*Cube
	for i := range children {
		children[i] = f(math.FromOctantIndex(i))
	}
	return NewCubes(children)
}

// Kind returns the cube's shape discriminator
func (c *Cube) Kind() Kind {
	return c.kind
}

// IsLeaf reports whether the cube is not subdivided into octants
func (c *Cube) IsLeaf() bool {
	return c.kind != KindCubes
}

// Axis returns the extrusion axis of a Planes or Slices cube
func (c *Cube) Axis() Axis {
	return c.axis
}

// PlaneQuad returns the quadtree of a Planes cube, nil otherwise
func (c *Cube) PlaneQuad() *Quad {
	return c.quad
}

// SliceLayers returns the layer stack of a Slices cube, nil otherwise
func (c *Cube) SliceLayers() []*Cube {
	return c.layers
}

// Child returns the child at the given octant index, or nil for leaves
func (c *Cube) Child(i int) *Cube {
	if c.kind != KindCubes || i < 0 || i > 7 {
		return nil
	}
	return c.children[i]
}

// Children returns a copy of the eight children of a branching cube
func (c *Cube) Children() [8]*Cube {
	if c.kind != KindCubes {
		panic("cube: Children on a leaf")
	}
	return *c.children
}

// childOrSelf returns the child at index, or the cube itself for uniform
// shapes.
func (c *Cube) childOrSelf(i int) *Cube {
	if c.kind == KindCubes {
		return c.children[i]
	}
	return c
}

// ChildOrSelf returns the child at the given octant index, with uniform
// shapes standing in for all eight of their children.
func (c *Cube) ChildOrSelf(i int) *Cube {
	return c.childOrSelf(i)
}

// ID returns the material carried by this cube. Branching cubes report
// the first child's id; queries above leaf depth are advisory only.
// Planes and Slices report their representative material.
func (c *Cube) ID() uint8 {
	switch c.kind {
	case KindSolid:
		return c.value
	case KindCubes:
		return c.children[0].ID()
	case KindPlanes:
		return c.quad.Value()
	case KindSlices:
		if len(c.layers) > 0 {
			return c.layers[0].ID()
		}
		return 0
	}
	return 0
}

// Get returns the subtree at the given coordinate. When the traversal
// reaches a uniform node before the depth is exhausted, that node is
// returned as the uniform answer.
func (c *Cube) Get(coord Coord) *Cube {
	if coord.Depth == 0 {
		return c
	}
	d := coord.Depth - 1
	index := Index(d, coord.Pos)
	pos := coord.Pos.Sub(math.FromOctantIndex(index).MulScalar(1 << d))
	return c.childOrSelf(index).Get(Coord{Pos: pos, Depth: d})
}

// GetID returns the material at a position and depth
func (c *Cube) GetID(depth uint32, pos math.IVec3) uint8 {
	return c.Get(Coord{Pos: pos, Depth: depth}).ID()
}

// GetAtPath follows a path of octant indices, returning nil when the path
// leaves the branching structure
func (c *Cube) GetAtPath(path []int) *Cube {
	if len(path) == 0 {
		return nil
	}
	current := c.Child(path[0])
	for _, idx := range path[1:] {
		if current == nil {
			return nil
		}
		current = current.Child(idx)
	}
	return current
}

// VisitLeaves visits every leaf with its remaining depth and accumulated
// center-based position. Branching nodes at depth 0 are reported as leaves.
func (c *Cube) VisitLeaves(depth uint32, pos math.IVec3, cb func(c *Cube, depth uint32, pos math.IVec3)) {
	if c.kind == KindCubes && depth > 0 {
		for i, child := range c.children {
			child.VisitLeaves(depth-1, pos.MulScalar(2).Add(math.FromOctantIndex(i)), cb)
		}
		return
	}
	cb(c, depth, pos)
}

// VisitDeep visits every cell at exactly the given depth, replicating
// uniform nodes across their extent.
func (c *Cube) VisitDeep(depth uint32, pos math.IVec3, cb func(c *Cube, pos math.IVec3)) {
	if depth == 0 {
		cb(c, pos)
		return
	}
	for i := 0; i < 8; i++ {
		child := c.childOrSelf(i)
		child.VisitDeep(depth-1, pos.MulScalar(2).Add(math.FromOctantIndex(i)), cb)
	}
}

// Equal reports structural equality
func (c *Cube) Equal(o *Cube) bool {
	if c == o {
		return true
	}
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindSolid:
		return c.value == o.value
	case KindCubes:
		for i := range c.children {
			if !c.children[i].Equal(o.children[i]) {
				return false
			}
		}
		return true
	case KindPlanes:
		return c.axis == o.axis && c.quad.Equal(o.quad)
	case KindSlices:
		if c.axis != o.axis || len(c.layers) != len(o.layers) {
			return false
		}
		for i := range c.layers {
			if !c.layers[i].Equal(o.layers[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Octant letters a..h used by the CSM text format

// OctantCharToIndex converts an octant letter a-h to its index 0-7
func OctantCharToIndex(ch byte) (int, bool) {
	if ch < 'a' || ch > 'h' {
		return 0, false
	}
	return int(ch - 'a'), true
}

// OctantIndexToChar converts an octant index 0-7 to its letter a-h
func OctantIndexToChar(index int) (byte, bool) {
	if index < 0 || index > 7 {
		return 0, false
	}
	return byte('a' + index), true
}
