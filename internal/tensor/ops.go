package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/nncore/internal/parallel"
)

// parallelCfg drives the per-column kernels.
var parallelCfg = parallel.DefaultConfig()

// Add performs t += other element-wise.
func (t *Tensor) Add(other *Tensor) error {
	if err := checkShape("Add", t, other); err != nil {
		return err
	}
	floats.Add(t.data, other.data)
	return nil
}

// Sub performs t -= other element-wise.
func (t *Tensor) Sub(other *Tensor) error {
	if err := checkShape("Sub", t, other); err != nil {
		return err
	}
	floats.Sub(t.data, other.data)
	return nil
}

// Mul performs t *= other element-wise.
func (t *Tensor) Mul(other *Tensor) error {
	if err := checkShape("Mul", t, other); err != nil {
		return err
	}
	floats.Mul(t.data, other.data)
	return nil
}

// Div performs t /= other element-wise.
func (t *Tensor) Div(other *Tensor) error {
	if err := checkShape("Div", t, other); err != nil {
		return err
	}
	floats.Div(t.data, other.data)
	return nil
}

// AddScaled performs t += alpha * other element-wise.
func (t *Tensor) AddScaled(alpha float64, other *Tensor) error {
	if err := checkShape("AddScaled", t, other); err != nil {
		return err
	}
	floats.AddScaled(t.data, alpha, other.data)
	return nil
}

// Scale multiplies every element by c.
func (t *Tensor) Scale(c float64) {
	floats.Scale(c, t.data)
}

// AddConst adds c to every element.
func (t *Tensor) AddConst(c float64) {
	floats.AddConst(c, t.data)
}

// Square replaces every element with its square.
func (t *Tensor) Square() {
	for i, v := range t.data {
		t.data[i] = v * v
	}
}

// Sqrt replaces every element with its square root.
func (t *Tensor) Sqrt() {
	for i, v := range t.data {
		t.data[i] = math.Sqrt(v)
	}
}

// Norm returns the L2 norm of all elements.
func (t *Tensor) Norm() float64 {
	return floats.Norm(t.data, 2)
}

// EqualApprox reports whether t and other have the same shape and every pair
// of elements is within tol (absolute or relative).
func (t *Tensor) EqualApprox(other *Tensor, tol float64) bool {
	return t.shape.Equal(other.shape) && floats.EqualApprox(t.data, other.data, tol)
}

// ColumnNorms returns the L2 norm along axis 0, one value per column.
//
// For shape (d0, d1, ..., dk) the result has d1*...*dk entries; entry c is
// the norm of the strided vector t[0, c], t[1, c], ..., t[d0-1, c].
func (t *Tensor) ColumnNorms() []float64 {
	rows, cols := t.shape.Columns()
	norms := make([]float64, cols)

	parallel.ForRange(cols, func(start, end int) {
		for c := start; c < end; c++ {
			norms[c] = blas64.Nrm2(t.column(c, rows, cols))
		}
	}, columnConfig(rows))

	return norms
}

// ScaleColumns multiplies column c by scale[c] in place.
//
// Columns whose factor is exactly 1 are not touched.
func (t *Tensor) ScaleColumns(scale []float64) error {
	rows, cols := t.shape.Columns()
	if len(scale) != cols {
		return fmt.Errorf("ScaleColumns: %w: %d factors for %d columns of %v",
			ErrShapeMismatch, len(scale), cols, t.shape)
	}

	parallel.ForRange(cols, func(start, end int) {
		for c := start; c < end; c++ {
			if scale[c] == 1 {
				continue
			}
			blas64.Scal(scale[c], t.column(c, rows, cols))
		}
	}, columnConfig(rows))

	return nil
}

// column returns a strided BLAS view of column c.
func (t *Tensor) column(c, rows, cols int) blas64.Vector {
	return blas64.Vector{N: rows, Data: t.data[c:], Inc: cols}
}

// columnConfig scales the chunk threshold so each goroutine handles at least
// MinChunkSize elements rather than MinChunkSize columns.
func columnConfig(rows int) parallel.Config {
	cfg := parallelCfg
	cfg.MinChunkSize = max(1, cfg.MinChunkSize/max(rows, 1))
	return cfg
}
