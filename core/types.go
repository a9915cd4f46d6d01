package core

import "fmt"

// BoundingBox is the axis-aligned rectangular region terrain is synthesized over.
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b BoundingBox) SpanX() float64 {
	return b.MaxX - b.MinX
}

func (b BoundingBox) SpanY() float64 {
	return b.MaxY - b.MinY
}

// Contains reports whether the point lies inside the box (boundary included).
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Matrix is a dense row-major grid of float64 samples.
type Matrix [][]float64

// NewMatrix allocates a rows x cols matrix filled with zeros.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func (m Matrix) Rows() int {
	return len(m)
}

func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Fill sets every entry to v.
func (m Matrix) Fill(v float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = v
		}
	}
}

// MinMax returns the smallest and largest entry.
func (m Matrix) MinMax() (float64, float64) {
	min, max := m[0][0], m[0][0]
	for i := range m {
		for _, v := range m[i] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

// SynthesisParams controls a single terrain synthesis run.
type SynthesisParams struct {
	// Roughness divides the perturbation amplitude each iteration.
	// Larger values give smoother terrain. Must be > 0.
	Roughness float64

	// InitialHeight is the uniform elevation of the starting 3x3 lattice.
	InitialHeight float64

	// InitialAmplitude is the noise standard deviation before the first
	// refinement divides it. Must be >= 0.
	InitialAmplitude float64

	// Box is the fixed region the lattice spans at every resolution.
	Box BoundingBox

	// Iterations is the number of lattice resolutions, including the
	// initial 3x3 one. The final grid is (2^Iterations + 1) square.
	Iterations int
}

// Validate checks every precondition and returns a *ParamError naming the
// first offending field, or nil.
func (p SynthesisParams) Validate() error {
	if p.Roughness <= 0 {
		return &ParamError{Field: "Roughness", Reason: fmt.Sprintf("must be > 0, got %g", p.Roughness)}
	}
	if p.InitialAmplitude < 0 {
		return &ParamError{Field: "InitialAmplitude", Reason: fmt.Sprintf("must be >= 0, got %g", p.InitialAmplitude)}
	}
	if p.Iterations < 1 {
		return &ParamError{Field: "Iterations", Reason: fmt.Sprintf("must be >= 1, got %d", p.Iterations)}
	}
	if p.Box.MinX >= p.Box.MaxX {
		return &ParamError{Field: "Box", Reason: fmt.Sprintf("MinX must be < MaxX, got [%g, %g]", p.Box.MinX, p.Box.MaxX)}
	}
	if p.Box.MinY >= p.Box.MaxY {
		return &ParamError{Field: "Box", Reason: fmt.Sprintf("MinY must be < MaxY, got [%g, %g]", p.Box.MinY, p.Box.MaxY)}
	}
	return nil
}

// ParamError reports a synthesis parameter that violates its precondition.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Terrain is the synthesizer output: coordinate grids and matching elevations.
// X, Y and Elevation all share the same shape. Consumers treat it as read-only.
type Terrain struct {
	X         Matrix
	Y         Matrix
	Elevation Matrix

	// Axis breakpoints the coordinate matrices were built from.
	xs, ys []float64
}

func (t *Terrain) Rows() int {
	return t.Elevation.Rows()
}

func (t *Terrain) Cols() int {
	return t.Elevation.Cols()
}

// Box returns the region the terrain spans.
func (t *Terrain) Box() BoundingBox {
	return BoundingBox{
		MinX: t.xs[0], MaxX: t.xs[len(t.xs)-1],
		MinY: t.ys[0], MaxY: t.ys[len(t.ys)-1],
	}
}

// Interpolator returns a bilinear sampler over the terrain's own lattice,
// for consumers that need elevation at off-grid positions.
func (t *Terrain) Interpolator() *BilinearGrid {
	return NewBilinear(t.xs, t.ys, t.Elevation)
}
