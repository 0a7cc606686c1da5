package cube

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/k0sti/crossworld/pkg/math"
)

func TestRaycastMiss(t *testing.T) {
	if hit := Raycast(Solid(1), mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 0, 0}, -1); hit != nil {
		t.Errorf("ray travelling away should miss, got %+v", hit)
	}
}

func TestRaycastEmptyCube(t *testing.T) {
	dirs := []mgl32.Vec3{
		{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0},
		{-1, -0.5, 0.25},
	}
	for _, d := range dirs {
		if hit := Raycast(Solid(0), mgl32.Vec3{3, 0, 0}, d, -1); hit != nil {
			t.Errorf("dir %v: empty cube must never hit", d)
		}
	}
}

func TestRaycastFaceHit(t *testing.T) {
	hit := Raycast(Solid(7), mgl32.Vec3{2, 0, 0}, mgl32.Vec3{-1, 0, 0}, -1)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if math32.Abs(hit.T-1.0) > 1e-5 {
		t.Errorf("t = %f, want 1", hit.T)
	}
	if hit.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v, want +X", hit.Normal)
	}
	if hit.Material != 7 {
		t.Errorf("material = %d", hit.Material)
	}
	if hit.Point.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-5 {
		t.Errorf("point = %v, want (1,0,0)", hit.Point)
	}
}

func TestRaycastMatchesSlabOnSolid(t *testing.T) {
	rng := math.NewSeededRNG(5)
	for trial := 0; trial < 50; trial++ {
		origin := mgl32.Vec3{
			float32(rng.NextFloat(-4, 4)),
			float32(rng.NextFloat(-4, 4)),
			float32(rng.NextFloat(-4, 4)),
		}
		if origin.Len() < 1.8 {
			continue // keep origins outside the cube
		}
		dir := origin.Mul(-1).Normalize() // aim at the center

		hit := Raycast(Solid(9), origin, dir, -1)
		if hit == nil {
			t.Fatalf("trial %d: ray aimed at the cube missed", trial)
		}
		tEnter, _, _, ok := slabTest(origin, dir, mgl32.Vec3{}, 1)
		if !ok {
			t.Fatalf("trial %d: slab disagreed", trial)
		}
		if math32.Abs(hit.T-tEnter) > 1e-4 {
			t.Errorf("trial %d: t=%f slab=%f", trial, hit.T, tEnter)
		}
	}
}

func TestRaycastIntoOctant(t *testing.T) {
	// only octant 7 (+,+,+) is solid
	c := Tabulate(func(i int) *Cube {
		if i == 7 {
			return Solid(3)
		}
		return Solid(0)
	})

	// aim at the center of octant 7
	hit := Raycast(c, mgl32.Vec3{3, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, -1)
	if hit == nil {
		t.Fatal("expected a hit on octant 7")
	}
	if hit.Material != 3 {
		t.Errorf("material = %d", hit.Material)
	}
	if hit.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("normal = %v", hit.Normal)
	}
	// octant 7 spans [0,1]^3; entry at x=1
	if math32.Abs(hit.Point.X()-1) > 1e-5 {
		t.Errorf("entry x = %f, want 1", hit.Point.X())
	}
	if hit.Coord.Depth != 1 {
		t.Errorf("hit depth = %d, want 1", hit.Coord.Depth)
	}

	// aim at the empty octant below it and through to nothing
	if hit := Raycast(c, mgl32.Vec3{3, -0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, -1); hit != nil {
		t.Errorf("ray through empty octants hit %+v", hit)
	}
}

func TestRaycastStepsThroughOctants(t *testing.T) {
	// solid only in octant 0 (-,-,-): a ray entering at +X must step
	// across the internal plane to reach it
	c := Tabulate(func(i int) *Cube {
		if i == 0 {
			return Solid(4)
		}
		return Solid(0)
	})
	hit := Raycast(c, mgl32.Vec3{3, -0.5, -0.5}, mgl32.Vec3{-1, 0, 0}, -1)
	if hit == nil {
		t.Fatal("expected DDA to reach octant 0")
	}
	if hit.Material != 4 {
		t.Errorf("material = %d", hit.Material)
	}
	// entry into octant 0 is the internal plane x=0
	if math32.Abs(hit.Point.X()) > 1e-5 {
		t.Errorf("entry x = %f, want 0", hit.Point.X())
	}
}

func TestRaycastBoundaryBias(t *testing.T) {
	// a ray along the exact center plane biases toward the side it moves
	// into; the +Y half is solid
	c := Tabulate(func(i int) *Cube {
		if i&2 != 0 {
			return Solid(6)
		}
		return Solid(0)
	})
	hit := Raycast(c, mgl32.Vec3{-3, 0, 0}, mgl32.Vec3{1, 0.0, 0}, -1)
	if hit == nil {
		t.Fatal("boundary ray missed")
	}
	if hit.Material != 6 {
		t.Errorf("material = %d: boundary should bias to the positive side", hit.Material)
	}
}

func TestRaycastMaxDepth(t *testing.T) {
	inner := Tabulate(func(i int) *Cube {
		if i == 0 {
			return Solid(5)
		}
		return Solid(0)
	})
	c := Tabulate(func(i int) *Cube {
		if i == 0 {
			return inner
		}
		return Solid(0)
	})

	// unbounded: finds the grandchild at depth 2
	hit := Raycast(c, mgl32.Vec3{-3, -0.75, -0.75}, mgl32.Vec3{1, 0, 0}, -1)
	if hit == nil || hit.Coord.Depth != 2 {
		t.Fatalf("unbounded hit = %+v, want depth 2", hit)
	}

	// bounded at depth 1: the subdivided octant is treated as its
	// representative material
	hit = Raycast(c, mgl32.Vec3{-3, -0.75, -0.75}, mgl32.Vec3{1, 0, 0}, 1)
	if hit == nil {
		t.Fatal("bounded raycast missed")
	}
	if hit.Coord.Depth != 1 {
		t.Errorf("bounded hit depth = %d, want 1", hit.Coord.Depth)
	}
	if hit.Material != 5 {
		t.Errorf("bounded material = %d, want representative 5", hit.Material)
	}
}

func TestRaycastFromInside(t *testing.T) {
	hit := Raycast(Solid(2), mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, -1)
	if hit == nil {
		t.Fatal("ray starting inside a solid should hit immediately")
	}
	if hit.T != 0 {
		t.Errorf("t = %f, want 0", hit.T)
	}
}
