package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"terrainsim/config"
	"terrainsim/core"
)

func main() {
	defaults := config.GetSettings()

	// Parse command line flags
	var (
		roughness  = flag.Float64("roughness", defaults.Terrain.Roughness, "Amplitude divisor per refinement (> 0, larger = smoother)")
		height     = flag.Float64("height", defaults.Terrain.InitialHeight, "Uniform starting elevation")
		amplitude  = flag.Float64("amplitude", defaults.Terrain.InitialAmplitude, "Initial noise amplitude (>= 0)")
		minX       = flag.Float64("minx", 0, "Bounding box minimum x")
		maxX       = flag.Float64("maxx", 1000, "Bounding box maximum x")
		minY       = flag.Float64("miny", 0, "Bounding box minimum y")
		maxY       = flag.Float64("maxy", 1000, "Bounding box maximum y")
		iterations = flag.Int("iterations", defaults.Terrain.Iterations, "Refinement iterations (final grid is 2^n+1 square)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed (same seed reproduces the terrain)")
		mode       = flag.String("mode", "view", "Run mode (view, serve, report)")
		radarX     = flag.Float64("radar-x", 500, "Radar site x position")
		radarY     = flag.Float64("radar-y", 500, "Radar site y position")
	)
	flag.Parse()

	fmt.Println("=== Fractal Terrain Synthesizer ===")
	fmt.Printf("Roughness: %.2f\n", *roughness)
	fmt.Printf("Iterations: %d (%dx%d grid)\n", *iterations, 1<<uint(*iterations)+1, 1<<uint(*iterations)+1)
	fmt.Printf("Region: [%.0f, %.0f] x [%.0f, %.0f]\n", *minX, *maxX, *minY, *maxY)
	fmt.Printf("Seed: %d\n", *seed)

	params := core.SynthesisParams{
		Roughness:        *roughness,
		InitialHeight:    *height,
		InitialAmplitude: *amplitude,
		Box:              core.BoundingBox{MinX: *minX, MaxX: *maxX, MinY: *minY, MaxY: *maxY},
		Iterations:       *iterations,
	}
	site := RadarSite{X: *radarX, Y: *radarY, Height: defaults.Radar.AntennaHeight}

	if *mode == "serve" {
		log.Fatal(startServer(params, *seed, site))
	}

	start := time.Now()
	terrain, err := core.Synthesize(params, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatalf("Synthesis failed: %v", err)
	}
	min, max := terrain.Elevation.MinMax()
	fmt.Printf("Synthesized in %v, elevation range [%.2f, %.2f]\n", time.Since(start), min, max)

	targets := defaultTargets(terrain, site, defaults.Radar.TargetCount, defaults.Radar.TargetHeight)
	reports := surveyTargets(terrain, site, targets)

	switch *mode {
	case "view":
		types := classifyLandTypes(terrain)
		runViewer(terrain, types, site, targets, reports)
	case "report":
		printVisibilityTable(site, targets, reports)
	default:
		log.Fatalf("Unknown mode: %s", *mode)
	}
}
