package main

import (
	"fmt"
	"math/rand"

	"terrainsim/core"
)

func main() {
	fmt.Println("=== Terrain Grid Diagnostics ===")

	// Test 1: Grid shapes per iteration count
	fmt.Println("\nTest 1: Grid shape per iteration count")
	box := core.BoundingBox{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
	for iterations := 1; iterations <= 7; iterations++ {
		params := core.SynthesisParams{
			Roughness:        2.0,
			InitialAmplitude: 100.0,
			Box:              box,
			Iterations:       iterations,
		}
		terrain, err := core.Synthesize(params, rand.New(rand.NewSource(1)))
		if err != nil {
			fmt.Printf("  iterations=%d: ERROR %v\n", iterations, err)
			continue
		}
		min, max := terrain.Elevation.MinMax()
		fmt.Printf("  iterations=%d: %dx%d grid, elevation [%.2f, %.2f]\n",
			iterations, terrain.Rows(), terrain.Cols(), min, max)
	}

	// Test 2: Roughness sweep at fixed seed
	fmt.Println("\nTest 2: Roughness sweep (seed 42, 6 iterations)")
	for _, roughness := range []float64{1.2, 1.6, 2.0, 3.0, 5.0} {
		params := core.SynthesisParams{
			Roughness:        roughness,
			InitialAmplitude: 100.0,
			Box:              box,
			Iterations:       6,
		}
		terrain, err := core.Synthesize(params, rand.New(rand.NewSource(42)))
		if err != nil {
			fmt.Printf("  roughness=%.1f: ERROR %v\n", roughness, err)
			continue
		}
		min, max := terrain.Elevation.MinMax()
		fmt.Printf("  roughness=%.1f: elevation [%.2f, %.2f]\n", roughness, min, max)
	}

	// Test 3: Interpolator round trip on the final grid
	fmt.Println("\nTest 3: Interpolator round trip")
	params := core.SynthesisParams{
		Roughness:        2.0,
		InitialAmplitude: 100.0,
		Box:              box,
		Iterations:       5,
	}
	terrain, _ := core.Synthesize(params, rand.New(rand.NewSource(7)))
	sampler := terrain.Interpolator()

	mismatches := 0
	for i := 0; i < terrain.Rows(); i++ {
		for j := 0; j < terrain.Cols(); j++ {
			if sampler.At(terrain.X[i][j], terrain.Y[i][j]) != terrain.Elevation[i][j] {
				mismatches++
			}
		}
	}
	fmt.Printf("  %d grid points, %d round-trip mismatches\n", terrain.Rows()*terrain.Cols(), mismatches)
}
