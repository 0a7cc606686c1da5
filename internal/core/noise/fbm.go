package noise

// FBMConfig controls fractal Brownian motion layering
type FBMConfig struct {
	Octaves     int     // number of noise layers
	Lacunarity  float64 // frequency multiplier per octave
	Persistence float64 // amplitude multiplier per octave
	Scale       float64 // base frequency
}

// DefaultFBMConfig returns terrain-friendly defaults
func DefaultFBMConfig() FBMConfig {
	return FBMConfig{
		Octaves:     5,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Scale:       1.0,
	}
}

// FBM layers simplex octaves into natural-looking terrain
type FBM struct {
	Config FBMConfig
}

// NewFBM creates a generator with the given configuration
func NewFBM(config FBMConfig) *FBM {
	return &FBM{Config: config}
}

// Sample2D returns layered noise in the approximate range [-1, 1]
func (f *FBM) Sample2D(n *SimplexNoise, x, z float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := f.Config.Scale
	maxValue := 0.0

	for i := 0; i < f.Config.Octaves; i++ {
		value += amplitude * n.Noise2D(x*frequency, z*frequency)
		maxValue += amplitude
		amplitude *= f.Config.Persistence
		frequency *= f.Config.Lacunarity
	}
	if maxValue == 0 {
		return 0
	}
	return value / maxValue
}
