package terrain

import (
	"testing"

	"github.com/k0sti/crossworld/internal/core/material"
	"github.com/k0sti/crossworld/internal/core/traverse"
)

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(DefaultConfig()).Generate(4)
	b := NewGenerator(DefaultConfig()).Generate(4)
	if !a.Equal(b) {
		t.Error("same seed must produce the same terrain")
	}

	config := DefaultConfig()
	config.Seed = 9999
	c := NewGenerator(config).Generate(4)
	if a.Equal(c) {
		t.Error("different seeds should produce different terrain")
	}
}

func TestGenerateHeightsInBounds(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	for z := int32(0); z < 16; z++ {
		for x := int32(0); x < 16; x++ {
			h := g.Height(x, z, 4)
			if h < 0 || h >= 16 {
				t.Fatalf("column (%d,%d): height %d out of range", x, z, h)
			}
		}
	}
}

func TestGenerateHasSurfaceAndDepths(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	c := g.Generate(4)

	seen := map[uint8]bool{}
	for _, v := range c.EnumerateVoxels(4) {
		seen[v.Material] = true
	}
	if !seen[uint8(material.Stone)] {
		t.Error("terrain should have a stone base")
	}
	if !seen[uint8(material.Grass)] && !seen[uint8(material.Sand)] {
		t.Error("terrain should have a surface layer")
	}
}

func TestGenerateMeshesWithBorders(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	c := g.Generate(3)

	faces := 0
	traverse.VisitFaces(c, func(*traverse.FaceInfo) {
		faces++
	}, Borders())
	if faces == 0 {
		t.Error("terrain with sky borders should expose a surface")
	}
}

func TestGenerateGrid(t *testing.T) {
	grid := NewGenerator(DefaultConfig()).GenerateGrid(3)
	if grid.Depth() != 3 {
		t.Errorf("grid depth %d", grid.Depth())
	}
	if grid.Root() == nil {
		t.Fatal("nil root")
	}
}
