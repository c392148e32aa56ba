package optim

import "github.com/born-ml/nncore/internal/tensor"

// ClipColumnNorms enforces a max-norm constraint on every column of param.
//
// Column norms are L2 norms along axis 0 (one per output unit of a weight
// matrix). A column whose norm exceeds limit is rescaled by limit/norm; every
// other column, including an all-zero one, is left exactly as it was.
//
// Returns the number of columns that were rescaled.
func ClipColumnNorms(param *tensor.Tensor, limit float64) (int, error) {
	factors := param.ColumnNorms()

	clipped := 0
	for c, norm := range factors {
		if norm > limit {
			factors[c] = limit / norm
			clipped++
		} else {
			factors[c] = 1
		}
	}

	if clipped == 0 {
		return 0, nil
	}
	return clipped, param.ScaleColumns(factors)
}

// applyWeightLimit runs ClipColumnNorms when a limit is configured.
func applyWeightLimit(param *tensor.Tensor, limit *float64) error {
	if limit == nil {
		return nil
	}
	_, err := ClipColumnNorms(param, *limit)
	return err
}
