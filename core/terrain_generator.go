package core

import "math/rand"

// Synthesize produces a terrain over params.Box by iterative refinement:
// a 3x3 lattice of uniform height is repeatedly rebuilt at twice the
// resolution, the previous elevations are bilinearly interpolated onto the
// finer lattice, zero-mean Gaussian noise with geometrically decaying
// standard deviation is added per cell, and elevations are floored at sea
// level. All randomness comes from rng, one draw per cell per refinement
// in row-major order, so a fixed seed reproduces the terrain bit for bit.
func Synthesize(params SynthesisParams, rng *rand.Rand) (*Terrain, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	xs := linspace(params.Box.MinX, params.Box.MaxX, 3)
	ys := linspace(params.Box.MinY, params.Box.MaxY, 3)
	elevation := NewMatrix(3, 3)
	elevation.Fill(params.InitialHeight)
	ClampFloor(elevation, SeaLevel)

	amplitude := params.InitialAmplitude
	for k := 2; k <= params.Iterations; k++ {
		amplitude /= params.Roughness

		n := 1<<uint(k) + 1
		fineXs := linspace(params.Box.MinX, params.Box.MaxX, n)
		fineYs := linspace(params.Box.MinY, params.Box.MaxY, n)

		coarse := NewBilinear(xs, ys, elevation)
		fine := NewMatrix(n, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				fine[i][j] = coarse.At(fineXs[j], fineYs[i]) + rng.NormFloat64()*amplitude
			}
		}
		ClampFloor(fine, SeaLevel)

		xs, ys, elevation = fineXs, fineYs, fine
	}

	x, y := meshgrid(xs, ys)
	return &Terrain{X: x, Y: y, Elevation: elevation, xs: xs, ys: ys}, nil
}

// SeaLevel is the elevation floor applied after every refinement step.
const SeaLevel = 0.0

// ClampFloor raises every entry below floor up to it. Flooring negative
// elevations at sea level is a domain rule, kept as its own step rather
// than folded into the noise loop.
func ClampFloor(m Matrix, floor float64) {
	for i := range m {
		for j := range m[i] {
			if m[i][j] < floor {
				m[i][j] = floor
			}
		}
	}
}

// linspace returns n evenly spaced values from min to max inclusive.
// Endpoints are set explicitly so the span is honored exactly.
func linspace(min, max float64, n int) []float64 {
	vals := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	vals[0] = min
	vals[n-1] = max
	return vals
}

// meshgrid expands axis breakpoints into full coordinate matrices:
// X[i][j] = xs[j], Y[i][j] = ys[i].
func meshgrid(xs, ys []float64) (Matrix, Matrix) {
	x := NewMatrix(len(ys), len(xs))
	y := NewMatrix(len(ys), len(xs))
	for i := range ys {
		for j := range xs {
			x[i][j] = xs[j]
			y[i][j] = ys[i]
		}
	}
	return x, y
}
