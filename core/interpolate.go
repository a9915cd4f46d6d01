package core

import "fmt"

// BilinearGrid samples a regular 2D lattice at arbitrary positions inside
// its span by locating the surrounding cell and interpolating along each
// axis. Queries at a lattice point return the stored value exactly.
type BilinearGrid struct {
	xs, ys []float64 // strictly increasing axis breakpoints
	values Matrix    // values[i][j] is the sample at (xs[j], ys[i])
}

// NewBilinear builds a sampler over the lattice defined by the axis
// breakpoints and the matching value matrix. The breakpoints must be
// strictly increasing with at least two entries per axis, and values must
// be shaped len(ys) x len(xs).
func NewBilinear(xs, ys []float64, values Matrix) *BilinearGrid {
	if len(xs) < 2 || len(ys) < 2 {
		panic(fmt.Sprintf("bilinear grid needs at least 2 breakpoints per axis, got %dx%d", len(xs), len(ys)))
	}
	if values.Rows() != len(ys) || values.Cols() != len(xs) {
		panic(fmt.Sprintf("value matrix is %dx%d, lattice is %dx%d",
			values.Rows(), values.Cols(), len(ys), len(xs)))
	}
	return &BilinearGrid{xs: xs, ys: ys, values: values}
}

// At evaluates the lattice at (x, y). Positions outside the lattice span
// are clamped to the nearest edge cell.
func (g *BilinearGrid) At(x, y float64) float64 {
	j, tx := locate(g.xs, x)
	i, ty := locate(g.ys, y)

	v00 := g.values[i][j]
	v01 := g.values[i][j+1]
	v10 := g.values[i+1][j]
	v11 := g.values[i+1][j+1]

	// Interpolate along x within each row, then along y.
	top := v00*(1-tx) + v01*tx
	bottom := v10*(1-tx) + v11*tx
	return top*(1-ty) + bottom*ty
}

// locate returns the index of the cell containing v along the axis and the
// fractional position within that cell. The uniform-spacing estimate is
// corrected against the actual breakpoints so a query that coincides with a
// breakpoint lands on it with a fraction of exactly 0 or 1.
func locate(ax []float64, v float64) (int, float64) {
	n := len(ax)
	step := (ax[n-1] - ax[0]) / float64(n-1)
	i := int((v - ax[0]) / step)
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	for i < n-2 && v >= ax[i+1] {
		i++
	}
	for i > 0 && v < ax[i] {
		i--
	}
	t := (v - ax[i]) / (ax[i+1] - ax[i])
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return i, t
}
