// Package terrain builds octree worlds from layered noise: a heightmap
// of simplex FBM sampled per column, stacked into materials and folded
// into a cube through voxel construction.
package terrain

import (
	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/material"
	"github.com/k0sti/crossworld/internal/core/noise"
	"github.com/k0sti/crossworld/pkg/math"
)

// Config controls the generated landscape
type Config struct {
	Seed      int64
	FBM       noise.FBMConfig
	SeaLevel  float64 // fraction of the world height
	Amplitude float64 // height variation as a fraction of world height
}

// DefaultConfig returns gentle rolling terrain
func DefaultConfig() Config {
	return Config{
		Seed:      1337,
		FBM:       noise.DefaultFBMConfig(),
		SeaLevel:  0.3,
		Amplitude: 0.35,
	}
}

// Generator produces cube worlds from a noise field
type Generator struct {
	config  Config
	simplex *noise.SimplexNoise
	fbm     *noise.FBM
}

// NewGenerator creates a generator for a seed
func NewGenerator(config Config) *Generator {
	return &Generator{
		config:  config,
		simplex: noise.NewSimplexNoise(config.Seed),
		fbm:     noise.NewFBM(config.FBM),
	}
}

// Height samples the terrain height for a column, in voxel units at the
// given depth
func (g *Generator) Height(x, z int32, depth uint32) int32 {
	n := int32(1) << depth
	fx := float64(x) / float64(n)
	fz := float64(z) / float64(n)
	h := g.fbm.Sample2D(g.simplex, fx*4, fz*4)

	base := g.config.SeaLevel * float64(n)
	height := base + h*g.config.Amplitude*float64(n)
	return int32(math.Clamp(height, 0, float64(n-1)))
}

// Generate builds a depth-sized terrain cube. Columns are stone below,
// dirt in the middle, grass on top, with sand near the sea level.
func (g *Generator) Generate(depth uint32) *cube.Cube {
	n := int32(1) << depth
	sea := int32(g.config.SeaLevel * float64(n))

	var voxels []cube.Voxel
	for z := int32(0); z < n; z++ {
		for x := int32(0); x < n; x++ {
			height := g.Height(x, z, depth)
			for y := int32(0); y <= height; y++ {
				voxels = append(voxels, cube.Voxel{
					Pos:      math.NewIVec3(x, y, z),
					Material: uint8(g.materialAt(y, height, sea)),
				})
			}
		}
	}
	return cube.FromVoxels(voxels, depth, uint8(material.Air))
}

// GenerateGrid wraps the terrain in an editor grid so it can be carved
// and extended
func (g *Generator) GenerateGrid(depth uint32) *cube.CubeGrid {
	return cube.FromCube(g.Generate(depth), depth)
}

// Borders returns the border bands that match the generated terrain:
// solid ground below, open sky above.
func Borders() [4]uint8 {
	return [4]uint8{uint8(material.Ground), uint8(material.Ground), uint8(material.Air), uint8(material.Air)}
}

func (g *Generator) materialAt(y, height, sea int32) material.Type {
	switch {
	case y == height && height <= sea+1:
		return material.Sand
	case y == height:
		return material.Grass
	case y >= height-2:
		return material.Dirt
	default:
		return material.Stone
	}
}
