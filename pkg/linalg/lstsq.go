package linalg

import (
	"fmt"

	"github.com/philipparndt/gofit/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// RankTolerance is the relative singular value threshold below which a
// least-squares system is considered rank deficient.
const RankTolerance = 1e-10

// LeastSquares solves the overdetermined system A·x = b in the least-squares
// sense. The rows of a are the equations; all rows must have the same
// length. The system needs at least as many equations as unknowns and full
// column rank, otherwise ErrInsufficientData or ErrDegenerateInput is
// returned.
func LeastSquares(a [][]float64, b []float64) ([]float64, error) {
	rows := len(a)
	if rows == 0 {
		return nil, fmt.Errorf("empty system: %w", geometry.ErrInsufficientData)
	}
	if len(b) != rows {
		return nil, fmt.Errorf("system has %d equations but %d right-hand sides: %w", rows, len(b), geometry.ErrInvalidRepresentation)
	}
	cols := len(a[0])
	if cols == 0 {
		return nil, fmt.Errorf("system has no unknowns: %w", geometry.ErrInvalidRepresentation)
	}
	if rows < cols {
		return nil, fmt.Errorf("%d equations for %d unknowns: %w", rows, cols, geometry.ErrInsufficientData)
	}

	m := mat.NewDense(rows, cols, nil)
	for i, row := range a {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, geometry.ErrInvalidRepresentation)
		}
		m.SetRow(i, row)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDFull); !ok {
		return nil, fmt.Errorf("singular value decomposition failed: %w", geometry.ErrDegenerateInput)
	}
	rank := svd.Rank(RankTolerance)
	if rank < cols {
		return nil, fmt.Errorf("system has rank %d, need %d: %w", rank, cols, geometry.ErrDegenerateInput)
	}

	var x mat.VecDense
	svd.SolveVecTo(&x, mat.NewVecDense(rows, append([]float64(nil), b...)), rank)
	return append([]float64(nil), x.RawVector().Data...), nil
}
