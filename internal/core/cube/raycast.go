package cube

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// rayEps is the tolerance used for boundary and parallel-axis decisions
const rayEps = 1e-6

// Hit describes the first solid cell a ray reaches
type Hit struct {
	T        float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Coord    Coord
	Material uint8
}

// Raycast intersects a ray with the cube over the normalized [-1,1] extent
// and returns the first solid hit, or nil. maxDepth bounds the descent; a
// negative value leaves it unbounded. At the bound a branching cell is
// treated as its representative material.
func Raycast(c *Cube, origin, direction mgl32.Vec3, maxDepth int) *Hit {
	if direction.Len() < rayEps {
		return nil
	}
	dir := direction.Normalize()
	return raycastNode(c, Coord{}, mgl32.Vec3{}, 1, origin, dir, maxDepth)
}

// slabTest intersects the ray with the box [center-half, center+half],
// returning the entry and exit parameters and the axis of the entering
// slab. Parallel axes use a large sentinel so they never drive the DDA.
func slabTest(origin, dir, center mgl32.Vec3, half float32) (tEnter, tExit float32, axis int, ok bool) {
	tEnter = -math32.MaxFloat32
	tExit = math32.MaxFloat32
	axis = 0
	for a := 0; a < 3; a++ {
		lo := center[a] - half
		hi := center[a] + half
		if math32.Abs(dir[a]) < rayEps {
			if origin[a] < lo || origin[a] > hi {
				return 0, 0, 0, false
			}
			continue
		}
		t1 := (lo - origin[a]) / dir[a]
		t2 := (hi - origin[a]) / dir[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			axis = a
		}
		if t2 < tExit {
			tExit = t2
		}
	}
	if tEnter > tExit || tExit < 0 {
		return 0, 0, 0, false
	}
	return tEnter, tExit, axis, true
}

func raycastNode(c *Cube, coord Coord, center mgl32.Vec3, half float32, origin, dir mgl32.Vec3, maxDepth int) *Hit {
	tEnter, tExit, axis, ok := slabTest(origin, dir, center, half)
	if !ok {
		return nil
	}

	atBound := maxDepth >= 0 && int(coord.Depth) >= maxDepth
	if c.IsLeaf() || atBound {
		id := c.ID()
		if id == 0 {
			return nil
		}
		t := tEnter
		if t < 0 {
			t = 0
		}
		var normal mgl32.Vec3
		if dir[axis] > 0 {
			normal[axis] = -1
		} else {
			normal[axis] = 1
		}
		return &Hit{
			T:        t,
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Coord:    coord,
			Material: id,
		}
	}

	tStart := tEnter
	if tStart < 0 {
		tStart = 0
	}
	entry := origin.Add(dir.Mul(tStart))

	// Octant of the entry point; exact boundaries bias toward the side the
	// ray is moving into.
	var sign [3]int32
	for a := 0; a < 3; a++ {
		rel := entry[a] - center[a]
		switch {
		case rel > rayEps:
			sign[a] = 1
		case rel < -rayEps:
			sign[a] = -1
		case dir[a] >= 0:
			sign[a] = 1
		default:
			sign[a] = -1
		}
	}

	// Parameters at which the ray crosses the three internal planes ahead
	// of the entry point.
	var cross [3]float32
	for a := 0; a < 3; a++ {
		cross[a] = math32.MaxFloat32
		if math32.Abs(dir[a]) < rayEps {
			continue
		}
		t := (center[a] - origin[a]) / dir[a]
		if t > tStart+rayEps && t < tExit-rayEps {
			cross[a] = t
		}
	}

	for step := 0; step < 4; step++ {
		idx := 0
		if sign[0] > 0 {
			idx |= 4
		}
		if sign[1] > 0 {
			idx |= 2
		}
		if sign[2] > 0 {
			idx |= 1
		}

		childCenter := mgl32.Vec3{
			center[0] + float32(sign[0])*half/2,
			center[1] + float32(sign[1])*half/2,
			center[2] + float32(sign[2])*half/2,
		}
		if hit := raycastNode(c.children[idx], coord.Child(idx), childCenter, half/2, origin, dir, maxDepth); hit != nil {
			return hit
		}

		// Step across the nearest internal plane not yet crossed
		next := 0
		for a := 1; a < 3; a++ {
			if cross[a] < cross[next] {
				next = a
			}
		}
		if cross[next] == math32.MaxFloat32 {
			break
		}
		cross[next] = math32.MaxFloat32
		if dir[next] > 0 {
			if sign[next] > 0 {
				break
			}
			sign[next] = 1
		} else {
			if sign[next] < 0 {
				break
			}
			sign[next] = -1
		}
	}
	return nil
}
