// Package bcf implements the Binary Cube Format, the byte-addressable
// octree layout the GPU traverses directly. Nodes start with a tag byte
// whose high two bits select the form; offsets are absolute, little
// endian and forward-only, so a single depth-first pass decodes the
// whole stream.
package bcf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/k0sti/crossworld/internal/core/cube"
)

// Wire format constants
const (
	Magic      = "BCF1"
	Version    = 1
	HeaderSize = 12

	// TagMask selects the node form from the tag byte's high two bits
	TagMask = 0xC0
	// TagInline is an inline leaf: material in the low six bits
	TagInline = 0x00
	// TagExtended is an extended leaf: one material byte follows
	TagExtended = 0x40
	// TagOctaLeaves is a branching node whose eight children are all
	// leaves: eight material bytes follow
	TagOctaLeaves = 0x80
	// TagOctaPointers is a branching node with a table of eight 32-bit
	// child offsets, the children following depth-first
	TagOctaPointers = 0xC0

	// InlineMax is the largest material an inline leaf can carry
	InlineMax = 0x3F

	// MaxDepth bounds decoding against malformed input
	MaxDepth = 32
)

// Decode errors
var (
	ErrMagic    = errors.New("bcf: bad magic")
	ErrVersion  = errors.New("bcf: unsupported version")
	ErrTag      = errors.New("bcf: unknown node tag")
	ErrOffset   = errors.New("bcf: offset out of range")
	ErrTooDeep  = errors.New("bcf: nesting exceeds maximum depth")
	ErrTruncate = errors.New("bcf: truncated input")
)

// Encode serializes a cube. The cube is simplified first so uniform
// regions compress into single leaves; Planes and Slices are encoded as
// leaves of their representative material.
func Encode(c *cube.Cube, depth uint8) []byte {
	s := c.Simplified()

	buf := make([]byte, HeaderSize, HeaderSize+64)
	copy(buf, Magic)
	buf[4] = Version
	buf[5] = depth
	binary.LittleEndian.PutUint32(buf[8:12], HeaderSize)

	return encodeNode(buf, s)
}

func encodeNode(buf []byte, c *cube.Cube) []byte {
	if c.IsLeaf() {
		id := c.ID()
		if id <= InlineMax {
			return append(buf, TagInline|id)
		}
		return append(buf, TagExtended, id)
	}

	allLeaves := true
	for i := 0; i < 8; i++ {
		if !c.Child(i).IsLeaf() {
			allLeaves = false
			break
		}
	}
	if allLeaves {
		buf = append(buf, TagOctaLeaves)
		for i := 0; i < 8; i++ {
			buf = append(buf, c.Child(i).ID())
		}
		return buf
	}

	table := len(buf) + 1
	buf = append(buf, TagOctaPointers)
	buf = append(buf, make([]byte, 32)...)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(buf[table+i*4:], uint32(len(buf)))
		buf = encodeNode(buf, c.Child(i))
	}
	return buf
}

// Decode parses a BCF stream back into a cube and its depth. It fails on
// malformed magic, unknown tags, out-of-range or backward offsets, and
// nesting beyond MaxDepth.
func Decode(data []byte) (*cube.Cube, uint8, error) {
	if len(data) < HeaderSize {
		return nil, 0, ErrTruncate
	}
	if string(data[0:4]) != Magic {
		return nil, 0, ErrMagic
	}
	if data[4] != Version {
		return nil, 0, fmt.Errorf("%w: %d", ErrVersion, data[4])
	}
	depth := data[5]
	root := binary.LittleEndian.Uint32(data[8:12])
	if root < HeaderSize {
		return nil, 0, fmt.Errorf("%w: root %d inside header", ErrOffset, root)
	}

	c, err := decodeNode(data, root, 0)
	if err != nil {
		return nil, 0, err
	}
	return c, depth, nil
}

func decodeNode(data []byte, offset uint32, nesting int) (*cube.Cube, error) {
	if nesting > MaxDepth {
		return nil, ErrTooDeep
	}
	if offset >= uint32(len(data)) {
		return nil, fmt.Errorf("%w: node at %d", ErrOffset, offset)
	}
	tag := data[offset]

	switch tag & TagMask {
	case TagInline:
		return cube.Solid(tag & InlineMax), nil

	case TagExtended:
		if tag != TagExtended {
			return nil, fmt.Errorf("%w: 0x%02x", ErrTag, tag)
		}
		if offset+1 >= uint32(len(data)) {
			return nil, ErrTruncate
		}
		return cube.Solid(data[offset+1]), nil

	case TagOctaLeaves:
		if tag != TagOctaLeaves {
			return nil, fmt.Errorf("%w: 0x%02x", ErrTag, tag)
		}
		if offset+8 >= uint32(len(data)) {
			return nil, ErrTruncate
		}
		var children [8]*cube.Cube
		for i := 0; i < 8; i++ {
			children[i] = cube.Solid(data[offset+1+uint32(i)])
		}
		return cube.NewCubes(children), nil

	default: // TagOctaPointers
		if tag != TagOctaPointers {
			return nil, fmt.Errorf("%w: 0x%02x", ErrTag, tag)
		}
		if offset+1+32 > uint32(len(data)) {
			return nil, ErrTruncate
		}
		var children [8]*cube.Cube
		for i := 0; i < 8; i++ {
			child := binary.LittleEndian.Uint32(data[offset+1+uint32(i)*4:])
			if child <= offset {
				return nil, fmt.Errorf("%w: child %d at %d not past parent %d", ErrOffset, i, child, offset)
			}
			if child >= uint32(len(data)) {
				return nil, fmt.Errorf("%w: child %d at %d", ErrOffset, i, child)
			}
			node, err := decodeNode(data, child, nesting+1)
			if err != nil {
				return nil, err
			}
			children[i] = node
		}
		return cube.NewCubes(children), nil
	}
}
