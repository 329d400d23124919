package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultTolerance is the component tolerance used when comparing frames.
const DefaultTolerance = 1e-5

// Frame is a local coordinate system given by an origin and two orthonormal
// axes. The z axis is always derived as x × y.
//
// Frames are values: the axes can only be set through constructors and the
// With* builders, each of which orthonormalizes the pair again. The x axis
// is authoritative; the stored y axis is the part of the requested y axis
// orthogonal to x, so it may differ from the input. The zero Frame has no
// axes and is not valid; start from WorldXY or a constructor.
type Frame struct {
	point Point3
	xaxis Vector3
	yaxis Vector3
}

// NewFrame creates a frame at point with the given axes. It fails with
// ErrDegenerateInput if an axis has zero length or the axes are parallel.
func NewFrame(point Point3, xaxis, yaxis Vector3) (Frame, error) {
	x, y, err := Orthonormalize(xaxis, yaxis)
	if err != nil {
		return Frame{}, fmt.Errorf("invalid frame axes: %w", err)
	}
	return Frame{point: point, xaxis: x, yaxis: y}, nil
}

// WorldXY returns the world frame: origin (0,0,0), x (1,0,0), y (0,1,0).
func WorldXY() Frame {
	return Frame{xaxis: NewVector3(1, 0, 0), yaxis: NewVector3(0, 1, 0)}
}

// WorldZX returns the frame with x along world z and y along world x.
func WorldZX() Frame {
	return Frame{xaxis: NewVector3(0, 0, 1), yaxis: NewVector3(1, 0, 0)}
}

// WorldYZ returns the frame with x along world y and y along world z.
func WorldYZ() Frame {
	return Frame{xaxis: NewVector3(0, 1, 0), yaxis: NewVector3(0, 0, 1)}
}

// FrameFromPoints creates a frame at origin whose x axis points to
// pointXAxis and whose xy-plane contains pointXYPlane.
func FrameFromPoints(origin, pointXAxis, pointXYPlane Point3) (Frame, error) {
	xaxis := pointXAxis.Sub(origin)
	xyvec := pointXYPlane.Sub(origin)
	yaxis := xaxis.Cross(xyvec).Cross(xaxis)
	if xaxis.IsZero() || yaxis.IsZero() {
		return Frame{}, fmt.Errorf("points %v, %v, %v are collinear: %w", origin, pointXAxis, pointXYPlane, ErrDegenerateInput)
	}
	return NewFrame(origin, xaxis, yaxis)
}

// FrameFromRotation creates a frame at point oriented by any rotation
// representation.
func FrameFromRotation(r Rotation, point Point3) (Frame, error) {
	m, err := r.Matrix()
	if err != nil {
		return Frame{}, err
	}
	xaxis, yaxis := BasisVectorsFromMatrix(m)
	return NewFrame(point, xaxis, yaxis)
}

// FrameFromQuaternion creates a frame from quaternion coefficients.
func FrameFromQuaternion(q Quaternion, point Point3) (Frame, error) {
	return FrameFromRotation(q, point)
}

// FrameFromAxisAngle creates a frame from a rotation vector.
func FrameFromAxisAngle(v Vector3, point Point3) (Frame, error) {
	return FrameFromRotation(AxisAngle(v), point)
}

// FrameFromEulerAngles creates a frame from Euler angles in conv.
func FrameFromEulerAngles(angles [3]float64, conv EulerConvention, point Point3) (Frame, error) {
	return FrameFromRotation(EulerAngles{Angles: angles, Convention: conv}, point)
}

// FrameFromMatrix creates a frame from a transformation. The origin is the
// translation; the axes are the first two columns, orthonormalized, which
// discards scale and shear.
func FrameFromMatrix(m Matrix4) (Frame, error) {
	xaxis, yaxis := BasisVectorsFromMatrix(m.Rotation())
	return NewFrame(m.Translation(), xaxis, yaxis)
}

// FrameFromList creates a frame from 12 or 16 row-major matrix values.
func FrameFromList(values []float64) (Frame, error) {
	m, err := Matrix4FromSlice(values)
	if err != nil {
		return Frame{}, err
	}
	return FrameFromMatrix(m)
}

// FrameFromPlane creates a frame on a plane. The in-plane axes are chosen
// deterministically: two auxiliary points are solved from the plane equation
// along the dominant normal component, their difference becomes the x axis
// and y = normal × x.
func FrameFromPlane(plane Plane) (Frame, error) {
	normal := plane.Normal
	d := plane.Point.Dot(normal)
	idx := normal.LargestComponent()
	coeffs := normal.Array()
	if coeffs[idx] == 0 {
		return Frame{}, fmt.Errorf("plane normal is zero: %w", ErrDegenerateInput)
	}

	var p1 [3]float64
	p1[idx] = d / coeffs[idx]

	p2 := [3]float64{1, 1, 1}
	p2[idx] = 0
	sum := coeffs[0]*p2[0] + coeffs[1]*p2[1] + coeffs[2]*p2[2]
	p2[idx] = (d - sum) / coeffs[idx]

	xaxis := NewVector3(p2[0]-p1[0], p2[1]-p1[1], p2[2]-p1[2])
	yaxis := normal.Cross(xaxis)
	return NewFrame(plane.Point, xaxis, yaxis)
}

// Point returns the origin.
func (f Frame) Point() Point3 { return f.point }

// XAxis returns the unit x axis.
func (f Frame) XAxis() Vector3 { return f.xaxis }

// YAxis returns the unit y axis.
func (f Frame) YAxis() Vector3 { return f.yaxis }

// ZAxis returns x × y. It is computed on every call.
func (f Frame) ZAxis() Vector3 { return f.xaxis.Cross(f.yaxis) }

// Normal is an alias for ZAxis.
func (f Frame) Normal() Vector3 { return f.ZAxis() }

// Plane returns the xy-plane of the frame.
func (f Frame) Plane() Plane {
	return Plane{Point: f.point, Normal: f.ZAxis()}
}

// WithPoint returns a copy of the frame moved to point.
func (f Frame) WithPoint(point Point3) Frame {
	f.point = point
	return f
}

// WithXAxis returns a new frame with the given x axis; the current y axis is
// re-orthonormalized against it.
func (f Frame) WithXAxis(xaxis Vector3) (Frame, error) {
	return NewFrame(f.point, xaxis, f.yaxis)
}

// WithYAxis returns a new frame with the given y axis orthonormalized against
// the current x axis.
func (f Frame) WithYAxis(yaxis Vector3) (Frame, error) {
	return NewFrame(f.point, f.xaxis, yaxis)
}

// RotationMatrix returns the 3x3 matrix with the axes as columns.
func (f Frame) RotationMatrix() Matrix3 {
	z := f.ZAxis()
	return Matrix3{
		{f.xaxis.X, f.yaxis.X, z.X},
		{f.xaxis.Y, f.yaxis.Y, z.Y},
		{f.xaxis.Z, f.yaxis.Z, z.Z},
	}
}

// Matrix returns the transformation from local to world coordinates:
// rotation by the axes followed by translation to the origin.
func (f Frame) Matrix() Matrix4 {
	m := f.RotationMatrix().Homogeneous()
	m[0][3] = f.point.X
	m[1][3] = f.point.Y
	m[2][3] = f.point.Z
	return m
}

// Quaternion returns the orientation as a unit quaternion.
func (f Frame) Quaternion() Quaternion {
	// The rotation of an orthonormal frame always has a valid quaternion.
	q, _ := QuaternionFromMatrix(f.RotationMatrix())
	return q
}

// AxisAngle returns the orientation as a rotation vector.
func (f Frame) AxisAngle() AxisAngle {
	return AxisAngleFromMatrix(f.RotationMatrix())
}

// EulerAngles returns the orientation as Euler angles in conv.
func (f Frame) EulerAngles(conv EulerConvention) ([3]float64, error) {
	return EulerAnglesFromMatrix(f.RotationMatrix(), conv)
}

// PointToLocal expresses a world point in the frame's coordinates.
func (f Frame) PointToLocal(p Point3) Point3 {
	return f.RotationMatrix().Transpose().MulVector(p.Sub(f.point))
}

// PointToGlobal expresses a point given in frame coordinates in world
// coordinates.
func (f Frame) PointToGlobal(p Point3) Point3 {
	return f.Matrix().TransformPoint(p)
}

// VectorToLocal expresses a world vector in the frame's coordinates.
func (f Frame) VectorToLocal(v Vector3) Vector3 {
	return f.RotationMatrix().Transpose().MulVector(v)
}

// VectorToGlobal expresses a vector given in frame coordinates in world
// coordinates. The origin does not affect vectors.
func (f Frame) VectorToGlobal(v Vector3) Vector3 {
	return f.Matrix().TransformVector(v)
}

// FrameToLocal expresses another world frame in this frame's coordinates.
func (f Frame) FrameToLocal(other Frame) (Frame, error) {
	inv, err := f.Matrix().Inverse()
	if err != nil {
		return Frame{}, err
	}
	return other.Transformed(inv)
}

// FrameToGlobal expresses a frame given in this frame's coordinates in world
// coordinates.
func (f Frame) FrameToGlobal(other Frame) (Frame, error) {
	return other.Transformed(f.Matrix())
}

// Transform applies t to the frame in place. The result is t composed with
// the frame's own matrix; origin and axes are re-extracted and the axes
// orthonormalized, so numerical drift in t does not accumulate. On error the
// frame is left unchanged.
func (f *Frame) Transform(t Matrix4) error {
	m := t.Mul(f.Matrix())
	next, err := FrameFromMatrix(m)
	if err != nil {
		return fmt.Errorf("transform frame: %w", err)
	}
	*f = next
	return nil
}

// Transformed returns a transformed copy of the frame.
func (f Frame) Transformed(t Matrix4) (Frame, error) {
	if err := f.Transform(t); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// ApproxEqual reports whether origin and both axes match component-wise
// within tol.
func (f Frame) ApproxEqual(other Frame, tol float64) bool {
	return f.point.ApproxEqual(other.point, tol) &&
		f.xaxis.ApproxEqual(other.xaxis, tol) &&
		f.yaxis.ApproxEqual(other.yaxis, tol)
}

// Equal compares frames with DefaultTolerance.
func (f Frame) Equal(other Frame) bool {
	return f.ApproxEqual(other, DefaultTolerance)
}

// IsOrthonormal checks the frame invariant within tol.
func (f Frame) IsOrthonormal(tol float64) bool {
	return math.Abs(f.xaxis.Length()-1) <= tol &&
		math.Abs(f.yaxis.Length()-1) <= tol &&
		math.Abs(f.xaxis.Dot(f.yaxis)) <= tol
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame(%v, %v, %v)", f.point, f.xaxis, f.yaxis)
}

// FrameData is the interchange form of a frame.
type FrameData struct {
	Point [3]float64 `json:"point" yaml:"point"`
	XAxis [3]float64 `json:"xaxis" yaml:"xaxis"`
	YAxis [3]float64 `json:"yaxis" yaml:"yaxis"`
}

// Data returns the interchange form of the frame.
func (f Frame) Data() FrameData {
	return FrameData{
		Point: f.point.Array(),
		XAxis: f.xaxis.Array(),
		YAxis: f.yaxis.Array(),
	}
}

// FrameFromData rebuilds a frame from its interchange form. The axes are
// orthonormalized again.
func FrameFromData(data FrameData) (Frame, error) {
	p := data.Point
	x := data.XAxis
	y := data.YAxis
	return NewFrame(NewPoint3(p[0], p[1], p[2]), NewVector3(x[0], x[1], x[2]), NewVector3(y[0], y[1], y[2]))
}

// MarshalJSON implements json.Marshaler.
func (f Frame) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Data())
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Frame) UnmarshalJSON(b []byte) error {
	var data FrameData
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	frame, err := FrameFromData(data)
	if err != nil {
		return err
	}
	*f = frame
	return nil
}
