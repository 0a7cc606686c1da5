package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/traverse"
	"github.com/k0sti/crossworld/pkg/math"
)

func TestAabbIntersects(t *testing.T) {
	a := NewAabb(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})
	b := NewAabb(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{2, 2, 2})
	c := NewAabb(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3})

	if !a.Intersects(b) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint boxes should not intersect")
	}

	overlap := a.Intersection(b)
	if overlap == nil {
		t.Fatal("nil intersection")
	}
	if overlap.Min != (mgl32.Vec3{0.5, 0.5, 0.5}) || overlap.Max != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("intersection %+v", overlap)
	}
	if a.Intersection(c) != nil {
		t.Error("disjoint intersection should be nil")
	}
}

func TestAabbToWorldGrowsUnderRotation(t *testing.T) {
	unit := UnitAabb()
	identity := unit.ToWorld(mgl32.Vec3{}, mgl32.QuatIdent(), 1)
	if identity.Volume() > 1.0001 || identity.Volume() < 0.9999 {
		t.Errorf("identity transform changed volume: %f", identity.Volume())
	}

	rot := mgl32.QuatRotate(math32.Pi/4, mgl32.Vec3{0, 1, 0})
	rotated := unit.ToWorld(mgl32.Vec3{}, rot, 1)
	if rotated.Size().X() <= identity.Size().X() {
		t.Errorf("rotated box should grow along X: %v", rotated.Size())
	}
}

func TestAabbHelpers(t *testing.T) {
	a := NewAabb(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6})
	if a.Center() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("center %v", a.Center())
	}
	if a.Volume() != 48 {
		t.Errorf("volume %f", a.Volume())
	}
	if !a.ContainsPoint(mgl32.Vec3{1, 1, 1}) || a.ContainsPoint(mgl32.Vec3{3, 1, 1}) {
		t.Error("contains point")
	}
	a.ExpandToInclude(mgl32.Vec3{-1, 0, 0})
	if a.Min.X() != -1 {
		t.Errorf("expand min %v", a.Min)
	}
}

func TestCubeColliderIntersectionRegion(t *testing.T) {
	cubePos := mgl32.Vec3{10, 0, 0}
	scale := float32(10)
	cubeAabb := NewAabb(cubePos, cubePos.Add(mgl32.Vec3{scale, scale, scale}))
	object := NewAabb(mgl32.Vec3{12, 1, 1}, mgl32.Vec3{14, 3, 3})

	local := CubeCollider{}.IntersectionRegion(cubeAabb, object, cubePos, scale)
	if local == nil {
		t.Fatal("nil region")
	}
	if math32.Abs(local.Min.X()-0.2) > 1e-5 || math32.Abs(local.Max.X()-0.4) > 1e-5 {
		t.Errorf("local X range [%f, %f]", local.Min.X(), local.Max.X())
	}

	far := NewAabb(mgl32.Vec3{100, 100, 100}, mgl32.Vec3{101, 101, 101})
	if (CubeCollider{}).IntersectionRegion(cubeAabb, far, cubePos, scale) != nil {
		t.Error("disjoint object should produce no region")
	}
}

func TestColliderFromSolidCube(t *testing.T) {
	col := FromCube(cube.Solid(1))
	if col.TriangleCount() != 12 {
		t.Errorf("solid cube: %d triangles, want 12 (6 faces)", col.TriangleCount())
	}
	if len(col.Vertices) != 24 {
		t.Errorf("solid cube: %d vertices, want 24", len(col.Vertices))
	}
}

func TestColliderFromEmptyCube(t *testing.T) {
	col := FromCube(cube.Solid(0))
	if col.TriangleCount() != 0 {
		t.Errorf("empty cube: %d triangles, want 0", col.TriangleCount())
	}
}

func TestColliderScaled(t *testing.T) {
	col := FromCubeScaled(cube.Solid(1), 4)
	var max float32
	for _, v := range col.Vertices {
		max = math32.Max(max, math32.Max(v.X(), math32.Max(v.Y(), v.Z())))
	}
	if math32.Abs(max-4) > 1e-5 {
		t.Errorf("scaled extent %f, want 4", max)
	}
}

func TestColliderRegionReducesFaces(t *testing.T) {
	rng := math.NewSeededRNG(17)
	var build func(depth uint32) *cube.Cube
	build = func(depth uint32) *cube.Cube {
		if depth == 0 {
			if rng.Next() < 0.5 {
				return cube.Solid(0)
			}
			return cube.Solid(1)
		}
		return cube.Tabulate(func(int) *cube.Cube { return build(depth - 1) })
	}
	c := build(3)

	whole := FromCube(c)
	region := traverse.NewRegionBounds(math.IVec3Zero, math.Splat(2), 3)
	partial := FromCubeWithRegion(c, region)

	if partial.TriangleCount() >= whole.TriangleCount() {
		t.Errorf("region collider has %d triangles, whole has %d",
			partial.TriangleCount(), whole.TriangleCount())
	}
}

func TestColliderFromCubeRegionAabb(t *testing.T) {
	c := cube.Solid(1)
	col := FromCubeRegion(c, NewAabb(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{3, 3, 3}), 2)
	if col.TriangleCount() != 0 {
		t.Errorf("disjoint region: %d triangles", col.TriangleCount())
	}
}

func TestColliderFromCubeBoxScaling(t *testing.T) {
	box := cube.NewCubeBox(cube.Solid(1), math.NewIVec3(16, 32, 8))
	col := FromCubeBox(box)
	if col.TriangleCount() != 12 {
		t.Fatalf("%d triangles, want 12", col.TriangleCount())
	}
	var max mgl32.Vec3
	for _, v := range col.Vertices {
		for c := 0; c < 3; c++ {
			max[c] = math32.Max(max[c], v[c])
		}
	}
	// depth 5, side 32: extents scale to 16/32, 32/32, 8/32
	want := mgl32.Vec3{0.5, 1.0, 0.25}
	if max.Sub(want).Len() > 1e-5 {
		t.Errorf("scaled extents %v, want %v", max, want)
	}
}

func TestColliderWindingFacesOutward(t *testing.T) {
	col := FromCube(cube.Solid(1))
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	for i := 0; i < len(col.Indices); i += 3 {
		a := col.Vertices[col.Indices[i]]
		b := col.Vertices[col.Indices[i+1]]
		c := col.Vertices[col.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		outward := a.Add(b).Add(c).Mul(1.0 / 3).Sub(center)
		if n.Dot(outward) <= 0 {
			t.Fatalf("triangle %d wound inward", i/3)
		}
	}
}
