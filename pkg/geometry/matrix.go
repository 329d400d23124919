package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix3 is a row-major 3x3 matrix. Rotation matrices store the basis
// vectors of the rotated frame in their columns.
type Matrix3 [3][3]float64

// Matrix4 is a row-major 4x4 homogeneous transformation matrix.
type Matrix4 [4][4]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Matrix3FromSlice builds a matrix from 9 row-major values.
func Matrix3FromSlice(values []float64) (Matrix3, error) {
	var m Matrix3
	if len(values) != 9 {
		return m, fmt.Errorf("expected 9 values for a 3x3 matrix but got %d: %w", len(values), ErrInvalidRepresentation)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = values[i*3+j]
		}
	}
	return m, nil
}

// Matrix4FromSlice builds a matrix from 12 or 16 row-major values. With 12
// values the last row is taken to be 0 0 0 1.
func Matrix4FromSlice(values []float64) (Matrix4, error) {
	m := Identity4()
	if len(values) != 12 && len(values) != 16 {
		return m, fmt.Errorf("expected 12 or 16 values but got %d: %w", len(values), ErrInvalidRepresentation)
	}
	for i := 0; i < len(values)/4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = values[i*4+j]
		}
	}
	return m, nil
}

// Column returns column j as a vector.
func (m Matrix3) Column(j int) Vector3 {
	return Vector3{X: m[0][j], Y: m[1][j], Z: m[2][j]}
}

// Mul returns the matrix product m*other.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return r
}

// MulVector returns m*v.
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix. For a rotation it is the inverse.
func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Trace returns the sum of the diagonal.
func (m Matrix3) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// ApproxEqual reports whether all entries differ by at most tol.
func (m Matrix3) ApproxEqual(other Matrix3, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := m[i][j] - other[i][j]
			if d > tol || d < -tol {
				return false
			}
		}
	}
	return true
}

// Homogeneous embeds the matrix into a 4x4 transformation without translation.
func (m Matrix3) Homogeneous() Matrix4 {
	r := Identity4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	return r
}

// Translation returns a transformation that moves points by v.
func Translation(v Vector3) Matrix4 {
	m := Identity4()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Mul returns the matrix product m*other, i.e. other is applied first.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return r
}

// Rotation returns the upper-left 3x3 block.
func (m Matrix4) Rotation() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	return r
}

// Translation returns the translation column.
func (m Matrix4) Translation() Vector3 {
	return Vector3{X: m[0][3], Y: m[1][3], Z: m[2][3]}
}

// TransformPoint applies the transformation to a point (w=1), including the
// projective division.
func (m Matrix4) TransformPoint(p Point3) Point3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 0 && w != 1 {
		return Point3{X: x / w, Y: y / w, Z: z / w}
	}
	return Point3{X: x, Y: y, Z: z}
}

// TransformVector applies the transformation to a direction (w=0), so the
// translation part is ignored.
func (m Matrix4) TransformVector(v Vector3) Vector3 {
	return m.Rotation().MulVector(v)
}

// Inverse returns the inverse transformation.
func (m Matrix4) Inverse() (Matrix4, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Matrix4{}, fmt.Errorf("matrix is not invertible: %v: %w", err, ErrDegenerateInput)
	}
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = inv.At(i, j)
		}
	}
	return r, nil
}

// ApproxEqual reports whether all entries differ by at most tol.
func (m Matrix4) ApproxEqual(other Matrix4, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := m[i][j] - other[i][j]
			if d > tol || d < -tol {
				return false
			}
		}
	}
	return true
}

// Slice returns the 16 values in row-major order.
func (m Matrix4) Slice() []float64 {
	values := make([]float64, 0, 16)
	for i := 0; i < 4; i++ {
		values = append(values, m[i][:]...)
	}
	return values
}

func (m Matrix4) dense() *mat.Dense {
	return mat.NewDense(4, 4, m.Slice())
}
