package core

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func testBox() BoundingBox {
	return BoundingBox{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}
}

// TestOutputShape checks the shape law: k iterations give a (2^k+1) square grid.
func TestOutputShape(t *testing.T) {
	for _, iterations := range []int{1, 2, 3, 4, 5, 6} {
		params := SynthesisParams{
			Roughness:        2.0,
			InitialAmplitude: 100.0,
			Box:              testBox(),
			Iterations:       iterations,
		}
		terrain, err := Synthesize(params, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("iterations=%d: %v", iterations, err)
		}

		want := 1<<uint(iterations) + 1
		for name, m := range map[string]Matrix{"X": terrain.X, "Y": terrain.Y, "Elevation": terrain.Elevation} {
			if m.Rows() != want || m.Cols() != want {
				t.Errorf("iterations=%d: %s is %dx%d, want %dx%d",
					iterations, name, m.Rows(), m.Cols(), want, want)
			}
		}
	}
}

// TestBaseCase checks that a single iteration returns the untouched 3x3
// lattice with every elevation equal to max(initialHeight, 0).
func TestBaseCase(t *testing.T) {
	tests := []struct {
		name          string
		initialHeight float64
		want          float64
	}{
		{"positive height", 12.5, 12.5},
		{"zero height", 0.0, 0.0},
		{"negative height floors at sea level", -4.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := SynthesisParams{
				Roughness:        2.0,
				InitialHeight:    tt.initialHeight,
				InitialAmplitude: 100.0,
				Box:              testBox(),
				Iterations:       1,
			}
			terrain, err := Synthesize(params, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatal(err)
			}
			if terrain.Rows() != 3 || terrain.Cols() != 3 {
				t.Fatalf("got %dx%d grid, want 3x3", terrain.Rows(), terrain.Cols())
			}
			for i := range terrain.Elevation {
				for j, h := range terrain.Elevation[i] {
					if h != tt.want {
						t.Errorf("elevation[%d][%d] = %g, want %g", i, j, h, tt.want)
					}
				}
			}
		})
	}
}

// TestNonNegativity checks the sea-level floor across seeds and parameters.
func TestNonNegativity(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		params := SynthesisParams{
			Roughness:        1.5,
			InitialHeight:    -50.0,
			InitialAmplitude: 200.0,
			Box:              testBox(),
			Iterations:       5,
		}
		terrain, err := Synthesize(params, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		min, _ := terrain.Elevation.MinMax()
		if min < 0 {
			t.Errorf("seed %d: minimum elevation %g is below sea level", seed, min)
		}
	}
}

// TestBoundingBoxFidelity checks that the coordinate grids hit the box
// bounds exactly at every resolution.
func TestBoundingBoxFidelity(t *testing.T) {
	box := BoundingBox{MinX: -37.2, MaxX: 411.9, MinY: 3.1, MaxY: 88.8}
	for iterations := 1; iterations <= 7; iterations++ {
		params := SynthesisParams{
			Roughness:        2.0,
			InitialAmplitude: 10.0,
			Box:              box,
			Iterations:       iterations,
		}
		terrain, err := Synthesize(params, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatal(err)
		}

		minX, maxX := terrain.X.MinMax()
		minY, maxY := terrain.Y.MinMax()
		if minX != box.MinX || maxX != box.MaxX {
			t.Errorf("iterations=%d: x range [%g, %g], want exactly [%g, %g]",
				iterations, minX, maxX, box.MinX, box.MaxX)
		}
		if minY != box.MinY || maxY != box.MaxY {
			t.Errorf("iterations=%d: y range [%g, %g], want exactly [%g, %g]",
				iterations, minY, maxY, box.MinY, box.MaxY)
		}
	}
}

// TestReproducibility checks that identically seeded sources give
// bit-identical terrain.
func TestReproducibility(t *testing.T) {
	params := SynthesisParams{
		Roughness:        2.2,
		InitialHeight:    5.0,
		InitialAmplitude: 80.0,
		Box:              testBox(),
		Iterations:       6,
	}

	a, err := Synthesize(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Synthesize(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Elevation {
		for j := range a.Elevation[i] {
			if a.Elevation[i][j] != b.Elevation[i][j] {
				t.Fatalf("elevation[%d][%d] differs: %v vs %v", i, j, a.Elevation[i][j], b.Elevation[i][j])
			}
			if a.X[i][j] != b.X[i][j] || a.Y[i][j] != b.Y[i][j] {
				t.Fatalf("coordinates differ at [%d][%d]", i, j)
			}
		}
	}
}

// TestPerturbationScale reconstructs the second iteration from a twin
// random stream: with a uniform starting surface every cell must equal
// initialHeight + z*(initialAmplitude/roughness), floored at sea level,
// with draws consumed in row-major order.
func TestPerturbationScale(t *testing.T) {
	const (
		seed      = int64(99)
		height    = 10.0
		amplitude = 100.0
		roughness = 2.5
	)
	params := SynthesisParams{
		Roughness:        roughness,
		InitialHeight:    height,
		InitialAmplitude: amplitude,
		Box:              testBox(),
		Iterations:       2,
	}
	terrain, err := Synthesize(params, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}

	twin := rand.New(rand.NewSource(seed))
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := height + twin.NormFloat64()*(amplitude/roughness)
			if want < 0 {
				want = 0
			}
			if terrain.Elevation[i][j] != want {
				t.Fatalf("elevation[%d][%d] = %v, want %v", i, j, terrain.Elevation[i][j], want)
			}
		}
	}
}

// TestAmplitudeDecay checks that the noise scale at iteration k is
// initialAmplitude / roughness^(k-1): with a flat zero start and a huge
// roughness the later refinements contribute almost nothing, so the
// sample standard deviation of the final surface stays near the
// first-refinement amplitude.
func TestAmplitudeDecay(t *testing.T) {
	const (
		amplitude = 100.0
		roughness = 10.0
	)
	params := SynthesisParams{
		Roughness:        roughness,
		InitialHeight:    1000.0, // keep every cell clear of the clamp
		InitialAmplitude: amplitude,
		Box:              testBox(),
		Iterations:       6,
	}
	terrain, err := Synthesize(params, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	// Residual noise after the first refinement is bounded by the
	// geometric tail: amp/f + amp/f^2 + ... < amp/(f-1).
	mean := 0.0
	count := 0
	for i := range terrain.Elevation {
		for _, h := range terrain.Elevation[i] {
			mean += h
			count++
		}
	}
	mean /= float64(count)

	variance := 0.0
	for i := range terrain.Elevation {
		for _, h := range terrain.Elevation[i] {
			variance += (h - mean) * (h - mean)
		}
	}
	variance /= float64(count)
	stddev := math.Sqrt(variance)

	first := amplitude / roughness
	if stddev < first*0.5 || stddev > first*2.0 {
		t.Errorf("surface stddev %g, expected within [%g, %g] around first-refinement amplitude %g",
			stddev, first*0.5, first*2.0, first)
	}
}

// TestValidation checks that every precondition violation is rejected
// before any computation, naming the offending field.
func TestValidation(t *testing.T) {
	valid := SynthesisParams{
		Roughness:        2.0,
		InitialAmplitude: 100.0,
		Box:              testBox(),
		Iterations:       3,
	}

	tests := []struct {
		name      string
		mutate    func(*SynthesisParams)
		wantField string
	}{
		{"zero roughness", func(p *SynthesisParams) { p.Roughness = 0 }, "Roughness"},
		{"negative roughness", func(p *SynthesisParams) { p.Roughness = -1 }, "Roughness"},
		{"negative amplitude", func(p *SynthesisParams) { p.InitialAmplitude = -1 }, "InitialAmplitude"},
		{"zero iterations", func(p *SynthesisParams) { p.Iterations = 0 }, "Iterations"},
		{"inverted x span", func(p *SynthesisParams) { p.Box.MinX, p.Box.MaxX = 10, 10 }, "Box"},
		{"inverted y span", func(p *SynthesisParams) { p.Box.MinY, p.Box.MaxY = 5, -5 }, "Box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			_, err := Synthesize(params, rand.New(rand.NewSource(1)))
			var perr *ParamError
			if !errors.As(err, &perr) {
				t.Fatalf("got error %v, want *ParamError", err)
			}
			if perr.Field != tt.wantField {
				t.Errorf("error names field %q, want %q", perr.Field, tt.wantField)
			}
		})
	}
}

// TestConcreteScenario pins down the two reference scenarios: a flat
// single-iteration run and its 5x5 second iteration.
func TestConcreteScenario(t *testing.T) {
	params := SynthesisParams{
		Roughness:        2.0,
		InitialHeight:    0.0,
		InitialAmplitude: 100.0,
		Box:              testBox(),
		Iterations:       1,
	}
	terrain, err := Synthesize(params, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}

	wantAxis := []float64{0, 50, 100}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if terrain.X[i][j] != wantAxis[j] {
				t.Errorf("X[%d][%d] = %g, want %g", i, j, terrain.X[i][j], wantAxis[j])
			}
			if terrain.Y[i][j] != wantAxis[i] {
				t.Errorf("Y[%d][%d] = %g, want %g", i, j, terrain.Y[i][j], wantAxis[i])
			}
			if terrain.Elevation[i][j] != 0 {
				t.Errorf("elevation[%d][%d] = %g, want 0", i, j, terrain.Elevation[i][j])
			}
		}
	}

	params.Iterations = 2
	terrain, err = Synthesize(params, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	if terrain.Rows() != 5 || terrain.Cols() != 5 {
		t.Fatalf("got %dx%d grid, want 5x5", terrain.Rows(), terrain.Cols())
	}

	// The flat zero base interpolates to zero everywhere, so each cell is
	// a clamped draw at amplitude 100/2 = 50. Check the corners against a
	// twin stream (row-major draws 0, 4, 20 and 24).
	twin := rand.New(rand.NewSource(5))
	draws := make([]float64, 25)
	for i := range draws {
		draws[i] = twin.NormFloat64() * 50.0
	}
	corners := map[[2]int]float64{
		{0, 0}: draws[0],
		{0, 4}: draws[4],
		{4, 0}: draws[20],
		{4, 4}: draws[24],
	}
	for pos, draw := range corners {
		want := draw
		if want < 0 {
			want = 0
		}
		got := terrain.Elevation[pos[0]][pos[1]]
		if got != want {
			t.Errorf("corner elevation[%d][%d] = %v, want %v", pos[0], pos[1], got, want)
		}
	}
	min, _ := terrain.Elevation.MinMax()
	if min < 0 {
		t.Errorf("minimum elevation %g is below sea level", min)
	}
}

// TestCoarsePointsSurviveRefinement checks that coarse lattice positions
// reappear exactly in the refined lattice so the interpolation step never
// moves an existing sample's coordinates.
func TestCoarsePointsSurviveRefinement(t *testing.T) {
	box := BoundingBox{MinX: -3.7, MaxX: 19.3, MinY: 2.2, MaxY: 104.6}
	coarse := linspace(box.MinX, box.MaxX, 5)
	fine := linspace(box.MinX, box.MaxX, 9)
	for i, v := range coarse {
		if fine[2*i] != v {
			t.Errorf("coarse breakpoint %d (%v) not preserved in fine lattice (%v)", i, v, fine[2*i])
		}
	}
}

func TestClampFloor(t *testing.T) {
	m := Matrix{{-1, 0.5}, {0, -0.001}}
	ClampFloor(m, 0)
	want := Matrix{{0, 0.5}, {0, 0}}
	for i := range m {
		for j := range m[i] {
			if m[i][j] != want[i][j] {
				t.Errorf("[%d][%d] = %g, want %g", i, j, m[i][j], want[i][j])
			}
		}
	}
}
