package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/internal/core/material"
)

// ViewDirection selects an orthographic projection axis
type ViewDirection uint8

// The six axis-aligned view directions
const (
	ViewPosX ViewDirection = iota
	ViewNegX
	ViewPosY
	ViewNegY
	ViewPosZ
	ViewNegZ
)

// AllViewDirections lists every direction for batch rendering
func AllViewDirections() [6]ViewDirection {
	return [6]ViewDirection{ViewPosX, ViewNegX, ViewPosY, ViewNegY, ViewPosZ, ViewNegZ}
}

// Name returns the direction's snapshot file stem
func (d ViewDirection) Name() string {
	switch d {
	case ViewPosX:
		return "pos_x"
	case ViewNegX:
		return "neg_x"
	case ViewPosY:
		return "pos_y"
	case ViewNegY:
		return "neg_y"
	case ViewPosZ:
		return "pos_z"
	default:
		return "neg_z"
	}
}

// ColorMapper maps a material to a display color
type ColorMapper func(id uint8) [3]float32

// PaletteColors is the default mapper backed by the material registry
func PaletteColors(id uint8) [3]float32 {
	return material.Type(id).Color()
}

// RenderOrthographic draws the octree into a 2^depth square image from
// the given direction. Voxels are painted far to near with simple
// overwrite; empty cells leave black.
func RenderOrthographic(root *cube.Cube, dir ViewDirection, depth uint32, mapper ColorMapper) *image.RGBA {
	size := 1 << depth
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	renderCube(root, 0, 0, 0, 1, 0, depth, dir, img, mapper)
	return img
}

// paintOrder lists the octants far to near for each view direction, so
// the overwrite in drawVoxel keeps the nearest voxel.
var paintOrder = [6][8]int{
	ViewPosX: {0, 1, 2, 3, 4, 5, 6, 7},
	ViewNegX: {4, 5, 6, 7, 0, 1, 2, 3},
	ViewPosY: {0, 1, 4, 5, 2, 3, 6, 7},
	ViewNegY: {2, 3, 6, 7, 0, 1, 4, 5},
	ViewPosZ: {0, 2, 4, 6, 1, 3, 5, 7},
	ViewNegZ: {1, 3, 5, 7, 0, 2, 4, 6},
}

func renderCube(c *cube.Cube, x, y, z, size float32, depth, maxDepth uint32, dir ViewDirection, img *image.RGBA, mapper ColorMapper) {
	if c.IsLeaf() || depth >= maxDepth {
		id := c.ID()
		if id == 0 {
			return
		}
		drawVoxel(x, y, z, size, id, dir, img, mapper)
		return
	}
	half := size / 2
	for _, i := range paintOrder[dir] {
		cx, cy, cz := x, y, z
		if i&4 != 0 {
			cx += half
		}
		if i&2 != 0 {
			cy += half
		}
		if i&1 != 0 {
			cz += half
		}
		renderCube(c.Child(i), cx, cy, cz, half, depth+1, maxDepth, dir, img, mapper)
	}
}

func drawVoxel(x, y, z, size float32, id uint8, dir ViewDirection, img *image.RGBA, mapper ColorMapper) {
	u0, u1, v0, v1 := projectVoxel(x, y, z, size, dir)
	c := mapper(id)
	rgba := color.RGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: 255,
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	px0 := int(u0 * float32(w))
	px1 := int(u1 * float32(w))
	py0 := int(v0 * float32(h))
	py1 := int(v1 * float32(h))
	for py := py0; py < py1 && py < h; py++ {
		for px := px0; px < px1 && px < w; px++ {
			// image origin is top-left; flip vertically so +V is up
			img.SetRGBA(px, h-1-py, rgba)
		}
	}
}

// projectVoxel maps a voxel to its screen-plane UV range for a view
// direction
func projectVoxel(x, y, z, size float32, dir ViewDirection) (u0, u1, v0, v1 float32) {
	switch dir {
	case ViewPosX:
		return z, z + size, y, y + size
	case ViewNegX:
		return 1 - (z + size), 1 - z, y, y + size
	case ViewPosY:
		return x, x + size, z, z + size
	case ViewNegY:
		return x, x + size, 1 - (z + size), 1 - z
	case ViewPosZ:
		return x, x + size, y, y + size
	default: // ViewNegZ
		return 1 - (x + size), 1 - x, y, y + size
	}
}

// SavePNG writes an image to disk
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

// ScaleImage resizes a snapshot with nearest-neighbor sampling, keeping
// voxel edges crisp
func ScaleImage(img image.Image, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return out
}
