// Package noise provides the simplex noise and fractal Brownian motion
// the terrain generator samples its heightmaps from.
package noise

import (
	"math"
)

// SimplexNoise implements 2D simplex noise after Perlin and Gustavson
type SimplexNoise struct {
	perm      [512]uint8
	permMod12 [512]uint8

	f2 float64
	g2 float64
}

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// NewSimplexNoise creates a generator with a seeded permutation table
func NewSimplexNoise(seed int64) *SimplexNoise {
	s := &SimplexNoise{
		f2: 0.5 * (math.Sqrt(3.0) - 1.0),
		g2: (3.0 - math.Sqrt(3.0)) / 6.0,
	}

	// seed-shuffled permutation table
	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}
	state := uint64(seed)
	if state == 0 {
		state = 0x9e3779b97f4a7c15
	}
	for i := 255; i > 0; i-- {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		j := int(state % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 512; i++ {
		s.perm[i] = base[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
	return s
}

// Noise2D samples 2D simplex noise, returning a value in about [-1, 1]
func (s *SimplexNoise) Noise2D(x, y float64) float64 {
	skew := (x + y) * s.f2
	i := math.Floor(x + skew)
	j := math.Floor(y + skew)

	unskew := (i + j) * s.g2
	x0 := x - (i - unskew)
	y0 := y - (j - unskew)

	var i1, j1 float64
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - i1 + s.g2
	y1 := y0 - j1 + s.g2
	x2 := x0 - 1 + 2*s.g2
	y2 := y0 - 1 + 2*s.g2

	ii := int(i) & 255
	jj := int(j) & 255

	var total float64
	corners := [3][3]float64{
		{x0, y0, float64(s.permMod12[ii+int(s.perm[jj])])},
		{x1, y1, float64(s.permMod12[ii+int(i1)+int(s.perm[jj+int(j1)])])},
		{x2, y2, float64(s.permMod12[ii+1+int(s.perm[jj+1])])},
	}
	for _, c := range corners {
		t := 0.5 - c[0]*c[0] - c[1]*c[1]
		if t < 0 {
			continue
		}
		t *= t
		g := grad3[int(c[2])]
		total += t * t * (g[0]*c[0] + g[1]*c[1])
	}

	// scale into [-1, 1]
	return 70 * total
}
