package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CubeCollider maps collisions against a static cube whose octree spans
// [cubePos, cubePos+scale] per axis in world space.
type CubeCollider struct{}

// MightCollide is the broad-phase AABB check
func (CubeCollider) MightCollide(cubeAabb, objectAabb Aabb) bool {
	return cubeAabb.Intersects(objectAabb)
}

// IntersectionRegion returns the overlap between the cube's world box and
// an object's box, expressed in the cube's local [0,1] space, or nil when
// they do not overlap. Collider builders use it to synthesize only the
// faces an object can touch.
func (CubeCollider) IntersectionRegion(cubeAabb, objectAabb Aabb, cubePos mgl32.Vec3, cubeScale float32) *Aabb {
	overlap := cubeAabb.Intersection(objectAabb)
	if overlap == nil || cubeScale <= 0 {
		return nil
	}
	inv := 1 / cubeScale
	return &Aabb{
		Min: overlap.Min.Sub(cubePos).Mul(inv),
		Max: overlap.Max.Sub(cubePos).Mul(inv),
	}
}

// ObjectCollider pairs two dynamic objects
type ObjectCollider struct{}

// MightCollide is the broad-phase AABB check for two objects
func (ObjectCollider) MightCollide(a, b Aabb) bool {
	return a.Intersects(b)
}

// IntersectionRegions returns the overlap expressed in each object's own
// local space, or nil when the objects do not overlap.
func (ObjectCollider) IntersectionRegions(a, b Aabb, posA, posB mgl32.Vec3, scaleA, scaleB float32) (*Aabb, *Aabb) {
	overlap := a.Intersection(b)
	if overlap == nil || scaleA <= 0 || scaleB <= 0 {
		return nil, nil
	}
	localA := Aabb{
		Min: overlap.Min.Sub(posA).Mul(1 / scaleA),
		Max: overlap.Max.Sub(posA).Mul(1 / scaleA),
	}
	localB := Aabb{
		Min: overlap.Min.Sub(posB).Mul(1 / scaleB),
		Max: overlap.Max.Sub(posB).Mul(1 / scaleB),
	}
	return &localA, &localB
}
