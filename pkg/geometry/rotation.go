package geometry

import (
	"fmt"
	"math"
)

// Rotation is one of the supported rotation representations. Every
// representation converts through the 3x3 rotation matrix; the set of
// implementations is closed: RotationMatrix, Quaternion, AxisAngle,
// EulerAngles and BasisVectors.
type Rotation interface {
	// Matrix returns the equivalent 3x3 rotation matrix.
	Matrix() (Matrix3, error)
	isRotation()
}

// RotationMatrix is a 3x3 matrix used as a rotation.
type RotationMatrix Matrix3

// AxisAngle is a rotation vector: its direction is the axis, its length
// the angle in radians.
type AxisAngle Vector3

// BasisVectors describes a rotation by the images of the x and y axes.
type BasisVectors struct {
	XAxis Vector3
	YAxis Vector3
}

func (RotationMatrix) isRotation() {}
func (Quaternion) isRotation()     {}
func (AxisAngle) isRotation()      {}
func (EulerAngles) isRotation()    {}
func (BasisVectors) isRotation()   {}

// Matrix implements Rotation.
func (r RotationMatrix) Matrix() (Matrix3, error) { return Matrix3(r), nil }

// Matrix implements Rotation. The quaternion need not be normalized.
func (q Quaternion) Matrix() (Matrix3, error) { return MatrixFromQuaternion(q) }

// Matrix implements Rotation.
func (a AxisAngle) Matrix() (Matrix3, error) { return MatrixFromAxisAngle(Vector3(a)), nil }

// Matrix implements Rotation.
func (e EulerAngles) Matrix() (Matrix3, error) { return MatrixFromEulerAngles(e.Angles, e.Convention) }

// Matrix implements Rotation. The pair is orthonormalized first.
func (b BasisVectors) Matrix() (Matrix3, error) { return MatrixFromBasisVectors(b.XAxis, b.YAxis) }

// Angle returns the rotation angle in radians.
func (a AxisAngle) Angle() float64 { return Vector3(a).Length() }

// Orthonormalize returns the unit x axis and the y axis adjusted to be
// orthogonal to it. The x axis is authoritative: z = x × y is derived first
// and y is rebuilt as z × x.
func Orthonormalize(xaxis, yaxis Vector3) (Vector3, Vector3, error) {
	x, err := xaxis.Normalize()
	if err != nil {
		return Vector3{}, Vector3{}, fmt.Errorf("x axis: %w", err)
	}
	y, err := yaxis.Normalize()
	if err != nil {
		return Vector3{}, Vector3{}, fmt.Errorf("y axis: %w", err)
	}
	z, err := x.Cross(y).Normalize()
	if err != nil {
		return Vector3{}, Vector3{}, fmt.Errorf("x and y axes are parallel: %w", ErrDegenerateInput)
	}
	return x, z.Cross(x), nil
}

// MatrixFromBasisVectors returns the rotation whose columns are the
// orthonormalized x, y and z axes.
func MatrixFromBasisVectors(xaxis, yaxis Vector3) (Matrix3, error) {
	x, y, err := Orthonormalize(xaxis, yaxis)
	if err != nil {
		return Matrix3{}, err
	}
	z := x.Cross(y)
	return Matrix3{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}, nil
}

// BasisVectorsFromMatrix returns the first two columns of a rotation matrix.
func BasisVectorsFromMatrix(m Matrix3) (xaxis, yaxis Vector3) {
	return m.Column(0), m.Column(1)
}

// QuaternionFromMatrix extracts a unit quaternion with non-negative scalar
// part from a rotation matrix.
func QuaternionFromMatrix(m Matrix3) (Quaternion, error) {
	var q Quaternion
	trace := m.Trace()
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quaternion{
			W: 0.25 / s,
			X: (m[2][1] - m[1][2]) * s,
			Y: (m[0][2] - m[2][0]) * s,
			Z: (m[1][0] - m[0][1]) * s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2 * math.Sqrt(1+m[0][0]-m[1][1]-m[2][2])
		q = Quaternion{
			W: (m[2][1] - m[1][2]) / s,
			X: 0.25 * s,
			Y: (m[0][1] + m[1][0]) / s,
			Z: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := 2 * math.Sqrt(1+m[1][1]-m[0][0]-m[2][2])
		q = Quaternion{
			W: (m[0][2] - m[2][0]) / s,
			X: (m[0][1] + m[1][0]) / s,
			Y: 0.25 * s,
			Z: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m[2][2]-m[0][0]-m[1][1])
		q = Quaternion{
			W: (m[1][0] - m[0][1]) / s,
			X: (m[0][2] + m[2][0]) / s,
			Y: (m[1][2] + m[2][1]) / s,
			Z: 0.25 * s,
		}
	}
	u, err := q.Unitized()
	if err != nil {
		return Quaternion{}, fmt.Errorf("matrix is not a rotation: %w", err)
	}
	return u.Canonized(), nil
}

// MatrixFromQuaternion returns the rotation matrix of q. The input is
// normalized first; a zero quaternion fails with ErrInvalidRepresentation.
func MatrixFromQuaternion(q Quaternion) (Matrix3, error) {
	u, err := q.Unitized()
	if err != nil {
		return Matrix3{}, err
	}
	w, x, y, z := u.W, u.X, u.Y, u.Z
	return Matrix3{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}, nil
}

// angleEpsilon is the rotation angle below which a matrix is treated as the
// identity by AxisAngleFromMatrix.
const angleEpsilon = 1e-12

// AxisAngleFromMatrix returns the rotation vector of m. The identity yields
// the zero vector.
func AxisAngleFromMatrix(m Matrix3) AxisAngle {
	skew := Vector3{
		X: m[2][1] - m[1][2],
		Y: m[0][2] - m[2][0],
		Z: m[1][0] - m[0][1],
	}
	// atan2 stays accurate near a half turn, where acos of the cosine loses
	// about half the digits.
	angle := math.Atan2(skew.Length()/2, (m.Trace()-1)/2)
	if angle < angleEpsilon {
		return AxisAngle{}
	}
	s := math.Sin(angle)
	if s > 1e-6 {
		axis, err := skew.Mul(1 / (2 * s)).Normalize()
		if err == nil {
			return AxisAngle(axis.Mul(angle))
		}
	}

	// Close to a half turn the skew part vanishes; recover the axis from the
	// symmetric part (R + I) / 2 = a aᵀ using its largest diagonal entry.
	k := 0
	for i := 1; i < 3; i++ {
		if m[i][i] > m[k][k] {
			k = i
		}
	}
	d := math.Sqrt(math.Max((m[k][k]+1)/2, 0))
	var axis Vector3
	if d > 0 {
		col := [3]float64{}
		for i := 0; i < 3; i++ {
			if i == k {
				col[i] = d
			} else {
				col[i] = (m[i][k] + m[k][i]) / (4 * d)
			}
		}
		axis = Vector3{X: col[0], Y: col[1], Z: col[2]}
	}
	axis, err := axis.Normalize()
	if err != nil {
		return AxisAngle{}
	}
	if axis.Dot(skew) < 0 {
		axis = axis.Neg()
	}
	return AxisAngle(axis.Mul(angle))
}

// MatrixFromAxisAngle returns the rotation about the direction of v by |v|
// radians (Rodrigues' formula). The zero vector yields the identity.
func MatrixFromAxisAngle(v Vector3) Matrix3 {
	angle := v.Length()
	if angle < angleEpsilon {
		return Identity3()
	}
	a := v.Mul(1 / angle)
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z
	return Matrix3{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	}
}
