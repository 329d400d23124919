package linalg

import (
	"fmt"

	"github.com/philipparndt/gofit/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// PrincipalAxes is the result of a principal component analysis of a point
// set.
type PrincipalAxes struct {
	Centroid geometry.Point3
	// Axes are orthonormal, ordered by decreasing variance and form a
	// right-handed triad (Axes[2] = Axes[0] × Axes[1]).
	Axes [3]geometry.Vector3
	// Variances along each axis, decreasing.
	Variances [3]float64
}

// Frame returns the frame at the centroid spanned by the two dominant axes.
// Its normal is the direction of least variance.
func (p PrincipalAxes) Frame() (geometry.Frame, error) {
	return geometry.NewFrame(p.Centroid, p.Axes[0], p.Axes[1])
}

// Covariance returns the centroid and the sample covariance matrix of the
// points, normalized by n-1.
func Covariance(points []geometry.Point3) (geometry.Point3, geometry.Matrix3, error) {
	n := len(points)
	if n < 2 {
		return geometry.Point3{}, geometry.Matrix3{}, fmt.Errorf("covariance needs at least 2 points, got %d: %w", n, geometry.ErrInsufficientData)
	}
	c := geometry.Centroid(points)
	var cov geometry.Matrix3
	for _, p := range points {
		d := p.Sub(c).Array()
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov[i][j] += d[i] * d[j]
			}
		}
	}
	scale := 1.0 / float64(n-1)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			cov[i][j] *= scale
			cov[j][i] = cov[i][j]
		}
	}
	return c, cov, nil
}

// PCA computes the principal axes of a point set from the eigen
// decomposition of its covariance matrix. Axis signs are canonical: the
// largest component of the first and third axis is positive.
func PCA(points []geometry.Point3) (PrincipalAxes, error) {
	c, cov, err := Covariance(points)
	if err != nil {
		return PrincipalAxes{}, err
	}

	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, cov[i][j])
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return PrincipalAxes{}, fmt.Errorf("eigen decomposition of covariance failed: %w", geometry.ErrDegenerateInput)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// gonum returns eigenvalues in ascending order.
	column := func(j int) geometry.Vector3 {
		return geometry.NewVector3(vectors.At(0, j), vectors.At(1, j), vectors.At(2, j))
	}
	a0 := CanonicalSign(column(2))
	a1 := column(1)
	a2 := a0.Cross(a1)
	if a2.Component(a2.LargestComponent()) < 0 {
		a1 = a1.Neg()
		a2 = a2.Neg()
	}

	return PrincipalAxes{
		Centroid:  c,
		Axes:      [3]geometry.Vector3{a0, a1, a2},
		Variances: [3]float64{clampZero(values[2]), clampZero(values[1]), clampZero(values[0])},
	}, nil
}

// CanonicalSign flips a direction so that its largest-magnitude component
// is positive. Directions that are only defined up to sign, such as plane
// normals, become deterministic this way.
func CanonicalSign(v geometry.Vector3) geometry.Vector3 {
	if v.Component(v.LargestComponent()) < 0 {
		return v.Neg()
	}
	return v
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
