package linalg

import (
	"fmt"

	"github.com/philipparndt/gofit/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// SVD3 is the singular value decomposition M = U·diag(S)·Vᵀ of a 3x3 matrix.
type SVD3 struct {
	U geometry.Matrix3
	// S holds the singular values in decreasing order.
	S [3]float64
	V geometry.Matrix3
}

// DecomposeSVD computes the full singular value decomposition of m.
func DecomposeSVD(m geometry.Matrix3) (SVD3, error) {
	a := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, m[i][j])
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return SVD3{}, fmt.Errorf("singular value decomposition failed: %w", geometry.ErrDegenerateInput)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	var out SVD3
	for i := 0; i < 3; i++ {
		out.S[i] = values[i]
		for j := 0; j < 3; j++ {
			out.U[i][j] = u.At(i, j)
			out.V[i][j] = v.At(i, j)
		}
	}
	return out, nil
}

// RightSingularVector returns column i of V, the input-space direction
// belonging to S[i].
func (s SVD3) RightSingularVector(i int) geometry.Vector3 {
	return s.V.Column(i)
}
