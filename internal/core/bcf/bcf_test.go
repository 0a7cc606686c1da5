package bcf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/k0sti/crossworld/internal/core/cube"
	"github.com/k0sti/crossworld/pkg/math"
)

func header(depth uint8) []byte {
	h := []byte{'B', 'C', 'F', '1', Version, depth, 0, 0, HeaderSize, 0, 0, 0}
	return h
}

func TestEncodeInlineLeafVector(t *testing.T) {
	got := Encode(cube.Solid(5), 0)
	want := append(header(0), 0x05)
	if !bytes.Equal(got, want) {
		t.Errorf("inline leaf\n got %x\nwant %x", got, want)
	}
}

func TestEncodeExtendedLeafVector(t *testing.T) {
	got := Encode(cube.Solid(200), 0)
	want := append(header(0), TagExtended, 200)
	if !bytes.Equal(got, want) {
		t.Errorf("extended leaf\n got %x\nwant %x", got, want)
	}
}

func TestEncodeOctaLeavesVector(t *testing.T) {
	c := cube.Tabulate(func(i int) *cube.Cube { return cube.Solid(uint8(i)) })
	got := Encode(c, 1)
	want := append(header(1), TagOctaLeaves, 0, 1, 2, 3, 4, 5, 6, 7)
	if !bytes.Equal(got, want) {
		t.Errorf("octa-leaves\n got %x\nwant %x", got, want)
	}
}

func TestEncodeOctaPointersVector(t *testing.T) {
	inner := cube.Tabulate(func(i int) *cube.Cube { return cube.Solid(uint8(i)) })
	c := cube.Tabulate(func(i int) *cube.Cube {
		if i == 0 {
			return inner
		}
		return cube.Solid(uint8(10 + i))
	})
	got := Encode(c, 2)

	if got[HeaderSize] != TagOctaPointers {
		t.Fatalf("root tag 0x%02x", got[HeaderSize])
	}
	table := HeaderSize + 1
	first := binary.LittleEndian.Uint32(got[table:])
	if first != uint32(table+32) {
		t.Errorf("first child offset %d, want %d", first, table+32)
	}
	// the first child is the inner octa-leaves node
	if got[first] != TagOctaLeaves {
		t.Errorf("first child tag 0x%02x", got[first])
	}
	// offsets are strictly increasing and forward-only
	prev := uint32(0)
	for i := 0; i < 8; i++ {
		off := binary.LittleEndian.Uint32(got[table+i*4:])
		if off <= prev {
			t.Errorf("child %d offset %d not increasing", i, off)
		}
		if off >= uint32(len(got)) {
			t.Errorf("child %d offset %d past end %d", i, off, len(got))
		}
		prev = off
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	rng := math.NewSeededRNG(31)
	var build func(depth uint32) *cube.Cube
	build = func(depth uint32) *cube.Cube {
		if depth == 0 || rng.Next() < 0.3 {
			if rng.Next() < 0.5 {
				return cube.Solid(0)
			}
			return cube.Solid(uint8(rng.NextInt(1, 255)))
		}
		return cube.Tabulate(func(int) *cube.Cube { return build(depth - 1) })
	}

	for trial := 0; trial < 20; trial++ {
		c := build(4)
		data := Encode(c, 4)

		decoded, depth, err := Decode(data)
		if err != nil {
			t.Fatalf("trial %d: decode: %v", trial, err)
		}
		if depth != 4 {
			t.Errorf("trial %d: depth %d", trial, depth)
		}
		if !decoded.Equal(c.Simplified()) {
			t.Fatalf("trial %d: decode(encode(c)) != c.Simplified()", trial)
		}

		// re-encoding the decoded cube reproduces the bytes
		again := Encode(decoded, 4)
		if !bytes.Equal(data, again) {
			t.Fatalf("trial %d: encode(decode(b)) != b", trial)
		}
	}
}

func TestEncodeSimplifies(t *testing.T) {
	uniform := cube.Tabulate(func(int) *cube.Cube { return cube.Solid(9) })
	got := Encode(uniform, 1)
	want := append(header(1), 0x09)
	if !bytes.Equal(got, want) {
		t.Errorf("uniform cube should encode as one inline leaf\n got %x\nwant %x", got, want)
	}
}

func TestEncodePlanesAsLeaf(t *testing.T) {
	p := cube.NewPlanes(cube.AxisY, cube.SolidQuad(3))
	data := Encode(p, 0)
	decoded, _, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	// Planes encode lossily as their representative material
	if decoded.Kind() != cube.KindSolid {
		t.Errorf("decoded kind %v", decoded.Kind())
	}
}

func TestDecodeErrors(t *testing.T) {
	c := cube.Tabulate(func(i int) *cube.Cube { return cube.Solid(uint8(i)) })
	good := Encode(c, 1)

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{"short", good[:4], ErrTruncate},
		{"magic", append([]byte("XXXX"), good[4:]...), ErrMagic},
		{"version", func() []byte {
			b := bytes.Clone(good)
			b[4] = 99
			return b
		}(), ErrVersion},
		{"root offset", func() []byte {
			b := bytes.Clone(good)
			binary.LittleEndian.PutUint32(b[8:12], uint32(len(b)+10))
			return b
		}(), ErrOffset},
		{"truncated node", good[:HeaderSize+3], ErrTruncate},
	}
	for _, tc := range cases {
		_, _, err := Decode(tc.data)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	data := append(header(0), TagExtended|0x01, 7)
	if _, _, err := Decode(data); !errors.Is(err, ErrTag) {
		t.Errorf("got %v, want ErrTag", err)
	}
}

func TestDecodeRejectsBackwardOffset(t *testing.T) {
	data := append(header(1), TagOctaPointers)
	data = append(data, make([]byte, 32)...)
	// all child offsets point back at the header
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(data[HeaderSize+1+i*4:], 0)
	}
	if _, _, err := Decode(data); !errors.Is(err, ErrOffset) {
		t.Errorf("got %v, want ErrOffset", err)
	}
}

func TestDecodeRejectsCycles(t *testing.T) {
	// a node pointing at itself must be caught by the forward-only rule
	data := append(header(1), TagOctaPointers)
	data = append(data, make([]byte, 32)...)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint32(data[HeaderSize+1+i*4:], HeaderSize)
	}
	if _, _, err := Decode(data); !errors.Is(err, ErrOffset) {
		t.Errorf("got %v, want ErrOffset", err)
	}
}
