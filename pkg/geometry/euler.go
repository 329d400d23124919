package geometry

import (
	"fmt"
	"math"
)

// EulerConvention selects how Euler angles are composed.
//
// Static (extrinsic) rotations are applied about the fixed world axes in the
// order given by Axes. Rotating (intrinsic) rotations are applied about the
// axes of the frame as it rotates. The two are not equivalent: rotating "xyz"
// equals static "zyx" with the angle order reversed.
type EulerConvention struct {
	Static bool
	// Axes is a permutation of "xyz". Empty means "xyz".
	Axes string
}

// DefaultEulerConvention is static rotation about x, then y, then z.
var DefaultEulerConvention = EulerConvention{Static: true, Axes: "xyz"}

// EulerAngles is a rotation given by three angles in radians together with
// the convention they are expressed in. Angles[i] belongs to Axes[i].
type EulerAngles struct {
	Angles     [3]float64
	Convention EulerConvention
}

// eulerEpsilon is the threshold on cos(middle angle) below which a matrix is
// treated as gimbal locked.
const eulerEpsilon = 4 * 0x1p-52

var nextAxis = [4]int{1, 2, 0, 1}

// eulerParams resolves a convention into the first axis index, whether the
// axis sequence is odd (parity) and whether the frame rotates.
func (c EulerConvention) eulerParams() (first, parity int, rotating bool, err error) {
	axes := c.Axes
	if axes == "" {
		axes = "xyz"
	}
	idx, err := axisIndices(axes)
	if err != nil {
		return 0, 0, false, err
	}
	// A rotating sequence is the static sequence read backwards.
	if !c.Static {
		idx[0], idx[2] = idx[2], idx[0]
	}
	first = idx[0]
	if idx[1] != nextAxis[first] {
		parity = 1
	}
	return first, parity, !c.Static, nil
}

// Validate reports whether Axes is one of the six permutations of "xyz".
func (c EulerConvention) Validate() error {
	_, _, _, err := c.eulerParams()
	return err
}

func axisIndices(axes string) ([3]int, error) {
	var idx [3]int
	if len(axes) != 3 {
		return idx, fmt.Errorf("axis order %q must have 3 characters: %w", axes, ErrInvalidRepresentation)
	}
	var seen [3]bool
	for i := 0; i < 3; i++ {
		var a int
		switch axes[i] {
		case 'x', 'X':
			a = 0
		case 'y', 'Y':
			a = 1
		case 'z', 'Z':
			a = 2
		default:
			return idx, fmt.Errorf("axis order %q contains %q: %w", axes, axes[i], ErrInvalidRepresentation)
		}
		if seen[a] {
			return idx, fmt.Errorf("axis order %q repeats an axis: %w", axes, ErrInvalidRepresentation)
		}
		seen[a] = true
		idx[i] = a
	}
	return idx, nil
}

// MatrixFromEulerAngles returns the rotation matrix for three angles in the
// given convention.
func MatrixFromEulerAngles(angles [3]float64, conv EulerConvention) (Matrix3, error) {
	first, parity, rotating, err := conv.eulerParams()
	if err != nil {
		return Matrix3{}, err
	}
	i := first
	j := nextAxis[i+parity]
	k := nextAxis[i-parity+1]

	ai, aj, ak := angles[0], angles[1], angles[2]
	if rotating {
		ai, ak = ak, ai
	}
	if parity == 1 {
		ai, aj, ak = -ai, -aj, -ak
	}

	si, sj, sk := math.Sin(ai), math.Sin(aj), math.Sin(ak)
	ci, cj, ck := math.Cos(ai), math.Cos(aj), math.Cos(ak)
	cc, cs := ci*ck, ci*sk
	sc, ss := si*ck, si*sk

	var m Matrix3
	m[i][i] = cj * ck
	m[i][j] = sj*sc - cs
	m[i][k] = sj*cc + ss
	m[j][i] = cj * sk
	m[j][j] = sj*ss + cc
	m[j][k] = sj*cs - sc
	m[k][i] = -sj
	m[k][j] = cj * si
	m[k][k] = cj * ci
	return m, nil
}

// EulerAnglesFromMatrix decomposes a rotation matrix into three angles in
// the given convention.
//
// When the middle rotation is ±90° (gimbal lock) the first and last axes
// coincide and only their combined angle is defined. The angle of the axis
// applied last in the static sequence is then reported as 0 (the last angle
// for static conventions, the first for rotating ones) and the other angle
// carries the whole rotation.
func EulerAnglesFromMatrix(m Matrix3, conv EulerConvention) ([3]float64, error) {
	first, parity, rotating, err := conv.eulerParams()
	if err != nil {
		return [3]float64{}, err
	}
	i := first
	j := nextAxis[i+parity]
	k := nextAxis[i-parity+1]

	var ax, ay, az float64
	cy := math.Sqrt(m[i][i]*m[i][i] + m[j][i]*m[j][i])
	if cy > eulerEpsilon {
		ax = math.Atan2(m[k][j], m[k][k])
		ay = math.Atan2(-m[k][i], cy)
		az = math.Atan2(m[j][i], m[i][i])
	} else {
		ax = math.Atan2(-m[j][k], m[j][j])
		ay = math.Atan2(-m[k][i], cy)
		az = 0
	}

	if parity == 1 {
		ax, ay, az = -ax, -ay, -az
	}
	if rotating {
		ax, az = az, ax
	}
	return [3]float64{ax, ay, az}, nil
}
