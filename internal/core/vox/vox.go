// Package vox reads and writes MagicaVoxel .vox files: a RIFF-like
// container with a MAIN chunk holding SIZE, XYZI and optional RGBA
// chunks. Voxel color indices map directly onto cube materials; the
// file's Z-up axes are swapped to the engine's Y-up on the way in and
// back on the way out.
package vox

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

const (
	magic   = "VOX "
	version = 150
)

// Decode errors
var (
	ErrMagic = errors.New("vox: bad magic")
	ErrChunk = errors.New("vox: malformed chunk")
)

// Model is a decoded voxel model
type Model struct {
	Box        cube.CubeBox
	Palette    [256][4]uint8
	HasPalette bool
}

type chunkHeader struct {
	ID           [4]byte
	ContentSize  uint32
	ChildrenSize uint32
}

// Decode reads a .vox stream into a bounded cube model.
func Decode(r io.Reader) (*Model, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("vox: header: %w", err)
	}
	if string(head[0:4]) != magic {
		return nil, ErrMagic
	}

	var main chunkHeader
	if err := binary.Read(r, binary.LittleEndian, &main); err != nil {
		return nil, fmt.Errorf("vox: main chunk: %w", err)
	}
	if string(main.ID[:]) != "MAIN" {
		return nil, fmt.Errorf("%w: expected MAIN, got %q", ErrChunk, main.ID)
	}

	model := &Model{}
	var size math.IVec3
	var voxels []cube.Voxel

	for {
		var ch chunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("vox: chunk header: %w", err)
		}
		content := make([]byte, ch.ContentSize)
		if _, err := io.ReadFull(r, content); err != nil {
			return nil, fmt.Errorf("vox: chunk %q: %w", ch.ID, err)
		}

		switch string(ch.ID[:]) {
		case "SIZE":
			if len(content) < 12 {
				return nil, fmt.Errorf("%w: SIZE too short", ErrChunk)
			}
			// .vox is Z-up; swap to Y-up
			size = math.NewIVec3(
				int32(binary.LittleEndian.Uint32(content[0:])),
				int32(binary.LittleEndian.Uint32(content[8:])),
				int32(binary.LittleEndian.Uint32(content[4:])),
			)
		case "XYZI":
			if len(content) < 4 {
				return nil, fmt.Errorf("%w: XYZI too short", ErrChunk)
			}
			n := binary.LittleEndian.Uint32(content)
			if uint32(len(content)) < 4+n*4 {
				return nil, fmt.Errorf("%w: XYZI voxel count", ErrChunk)
			}
			for i := uint32(0); i < n; i++ {
				b := content[4+i*4:]
				voxels = append(voxels, cube.Voxel{
					Pos:      math.NewIVec3(int32(b[0]), int32(b[2]), int32(b[1])),
					Material: b[3],
				})
			}
		case "RGBA":
			if len(content) < 256*4 {
				return nil, fmt.Errorf("%w: RGBA too short", ErrChunk)
			}
			for i := 0; i < 256; i++ {
				copy(model.Palette[i][:], content[i*4:i*4+4])
			}
			model.HasPalette = true
		default:
			// skip unknown chunks (nTRN, nGRP, MATL, ...)
		}
	}

	if size == math.IVec3Zero {
		return nil, fmt.Errorf("%w: missing SIZE", ErrChunk)
	}
	depth := cube.DepthForSize(size)
	root := cube.FromVoxels(voxels, depth, 0)
	model.Box = cube.CubeBox{Cube: root, Size: size, Depth: depth}
	return model, nil
}

// Encode writes a bounded cube model as a .vox stream. A nil palette
// omits the RGBA chunk.
func Encode(w io.Writer, box cube.CubeBox, palette *[256][4]uint8) error {
	voxels := box.Cube.EnumerateVoxels(box.Depth)

	// keep only voxels inside the model extent
	kept := voxels[:0]
	for _, v := range voxels {
		if v.Pos.X < box.Size.X && v.Pos.Y < box.Size.Y && v.Pos.Z < box.Size.Z {
			kept = append(kept, v)
		}
	}

	sizeContent := make([]byte, 12)
	binary.LittleEndian.PutUint32(sizeContent[0:], uint32(box.Size.X))
	binary.LittleEndian.PutUint32(sizeContent[4:], uint32(box.Size.Z))
	binary.LittleEndian.PutUint32(sizeContent[8:], uint32(box.Size.Y))

	xyziContent := make([]byte, 4+len(kept)*4)
	binary.LittleEndian.PutUint32(xyziContent, uint32(len(kept)))
	for i, v := range kept {
		b := xyziContent[4+i*4:]
		b[0] = uint8(v.Pos.X)
		b[1] = uint8(v.Pos.Z)
		b[2] = uint8(v.Pos.Y)
		b[3] = v.Material
	}

	childrenSize := 12 + len(sizeContent) + 12 + len(xyziContent)
	if palette != nil {
		childrenSize += 12 + 256*4
	}

	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(version)); err != nil {
		return err
	}
	if err := writeChunk(w, "MAIN", nil, uint32(childrenSize)); err != nil {
		return err
	}
	if err := writeChunk(w, "SIZE", sizeContent, 0); err != nil {
		return err
	}
	if err := writeChunk(w, "XYZI", xyziContent, 0); err != nil {
		return err
	}
	if palette != nil {
		rgba := make([]byte, 256*4)
		for i := range palette {
			copy(rgba[i*4:], palette[i][:])
		}
		if err := writeChunk(w, "RGBA", rgba, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeChunk(w io.Writer, id string, content []byte, childrenSize uint32) error {
	if _, err := w.Write([]byte(id)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(content))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, childrenSize); err != nil {
		return err
	}
	_, err := w.Write(content)
	return err
}
