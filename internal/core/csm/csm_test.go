package csm

import (
	"strings"
	"testing"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

func TestParseSimple(t *testing.T) {
	c, err := Parse(">a [1 2 3 4 5 6 7 8]")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8; i++ {
		if got := c.Child(i).ID(); got != uint8(i+1) {
			t.Errorf("octant %d = %d, want %d", i, got, i+1)
		}
	}
}

func TestParseNestedGroup(t *testing.T) {
	c, err := Parse(">a [1 [2 3 4 5 6 7 8 9] 0 0 0 0 0 0]")
	if err != nil {
		t.Fatal(err)
	}
	inner := c.Child(1)
	if inner.Kind() != cube.KindCubes {
		t.Fatal("octant 1 should be subdivided")
	}
	if got := inner.Child(7).ID(); got != 9 {
		t.Errorf("inner octant 7 = %d", got)
	}
}

func TestParsePathAssignment(t *testing.T) {
	src := `
		# refine octant a of model a
		>a [1 2 3 4 5 6 7 8]
		>aa [10 11 12 13 14 15 16 17]
	`
	c, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	inner := c.Child(0)
	if inner.Kind() != cube.KindCubes {
		t.Fatal("octant a should be subdivided")
	}
	if got := inner.Child(0).ID(); got != 10 {
		t.Errorf("refined octant = %d", got)
	}
	if got := c.Child(1).ID(); got != 2 {
		t.Errorf("sibling octant = %d", got)
	}
}

func TestParseMirrorOp(t *testing.T) {
	src := `
		>a [1 0 0 0 2 0 0 0]
		| >b /x <a
	`
	c, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	// mirror over X swaps octants 0 and 4
	if got := c.Child(0).ID(); got != 2 {
		t.Errorf("octant 0 = %d, want 2", got)
	}
	if got := c.Child(4).ID(); got != 1 {
		t.Errorf("octant 4 = %d, want 1", got)
	}
}

func TestParseSwapVsMirror(t *testing.T) {
	base := ">a [1 0 0 0 [10 0 0 0 0 0 0 0] 0 0 0]\n"

	swapped, err := Parse(base + "| >b ^x <a")
	if err != nil {
		t.Fatal(err)
	}
	mirrored, err := Parse(base + "| >b /x <a")
	if err != nil {
		t.Fatal(err)
	}
	if swapped.Equal(mirrored) {
		t.Error("swap and mirror should differ on nested structure")
	}
	// the nested child moves to octant 0 either way
	if swapped.Child(0).Kind() != cube.KindCubes {
		t.Error("swap should move the nested cube to octant 0")
	}
	// swap preserves inner layout, mirror reflects it
	if got := swapped.Child(0).Child(0).ID(); got != 10 {
		t.Errorf("swap inner octant 0 = %d, want 10", got)
	}
	if got := mirrored.Child(0).Child(4).ID(); got != 10 {
		t.Errorf("mirror inner octant 4 = %d, want 10", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	rng := math.NewSeededRNG(3)
	var build func(depth uint32) *cube.Cube
	build = func(depth uint32) *cube.Cube {
		if depth == 0 || rng.Next() < 0.4 {
			return cube.Solid(uint8(rng.NextInt(0, 255)))
		}
		return cube.Tabulate(func(int) *cube.Cube { return build(depth - 1) })
	}

	for trial := 0; trial < 10; trial++ {
		c := build(3)
		parsed, err := Parse(Format(c))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if !parsed.Equal(c) {
			t.Fatalf("trial %d: round trip mismatch", trial)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		">a [1 2 3]",
		">a [1 2 3 4 5 6 7 8",
		">a [1 2 3 4 5 6 7 999]",
		">az [0 0 0 0 0 0 0 0]",
		"| >b /x <missing",
		"| >b /q <a",
		"nonsense",
	}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) should fail", strings.TrimSpace(src))
		}
	}
}
