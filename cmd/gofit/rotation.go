package main

import (
	"fmt"
	"math"
	"os"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	rotQuaternion []float64
	rotAxisAngle  []float64
	rotEuler      []float64
	rotDegrees    bool
	rotJSON       bool
)

var rotationCmd = &cobra.Command{
	Use:   "rotation",
	Short: "Convert a rotation between representations",
	Long: `Convert one rotation representation into all others. Exactly one of
--quaternion, --axis-angle or --euler must be given. Euler angles use the
configured convention (--axes, --rotating).`,
	Args: cobra.NoArgs,
	Run:  runRotation,
}

func init() {
	rootCmd.AddCommand(rotationCmd)

	rotationCmd.Flags().Float64SliceVar(&rotQuaternion, "quaternion", nil, "quaternion as w,x,y,z")
	rotationCmd.Flags().Float64SliceVar(&rotAxisAngle, "axis-angle", nil, "rotation vector as x,y,z (length is the angle)")
	rotationCmd.Flags().Float64SliceVar(&rotEuler, "euler", nil, "Euler angles as a,b,c")
	rotationCmd.Flags().BoolVar(&rotDegrees, "degrees", false, "angles are given and printed in degrees")
	rotationCmd.Flags().BoolVar(&rotJSON, "json", false, "print the result as JSON")

	rotationCmd.MarkFlagsMutuallyExclusive("quaternion", "axis-angle", "euler")
	rotationCmd.MarkFlagsOneRequired("quaternion", "axis-angle", "euler")
}

type rotationOutput struct {
	Matrix     geometry.Matrix3 `json:"matrix"`
	Quaternion [4]float64       `json:"quaternion"`
	AxisAngle  [3]float64       `json:"axis_angle"`
	Euler      eulerOutput      `json:"euler"`
	Frame      geometry.Frame   `json:"frame"`
}

func runRotation(cmd *cobra.Command, args []string) {
	r, err := parseRotation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := convertRotation(r, cfg.EulerConvention())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	aa := geometry.AxisAngle(geometry.NewVector3(out.AxisAngle[0], out.AxisAngle[1], out.AxisAngle[2]))
	angles := out.Euler.Angles
	if rotDegrees {
		for i := range angles {
			angles[i] = toDegrees(angles[i])
		}
		out.Euler.Angles = angles
	}

	if wantJSON(rotJSON) {
		printJSON(out)
		return
	}

	fmt.Println("Rotation matrix:")
	for _, row := range out.Matrix {
		fmt.Printf("  [%s %s %s]\n", formatValue(row[0]), formatValue(row[1]), formatValue(row[2]))
	}
	fmt.Println()
	printOrientation(out.Quaternion, aa, angles, cfg.EulerConvention())
}

func parseRotation() (geometry.Rotation, error) {
	switch {
	case rotQuaternion != nil:
		return geometry.QuaternionFromSlice(rotQuaternion)
	case rotAxisAngle != nil:
		v, err := geometry.Vector3FromSlice(rotAxisAngle)
		if err != nil {
			return nil, err
		}
		if rotDegrees {
			v = v.Mul(math.Pi / 180)
		}
		return geometry.AxisAngle(v), nil
	default:
		if len(rotEuler) != 3 {
			return nil, fmt.Errorf("expected 3 Euler angles but got %d: %w", len(rotEuler), geometry.ErrInvalidRepresentation)
		}
		var angles [3]float64
		for i, a := range rotEuler {
			if rotDegrees {
				a *= math.Pi / 180
			}
			angles[i] = a
		}
		return geometry.EulerAngles{Angles: angles, Convention: cfg.EulerConvention()}, nil
	}
}

// convertRotation expresses r in every representation, going through the
// rotation matrix.
func convertRotation(r geometry.Rotation, conv geometry.EulerConvention) (rotationOutput, error) {
	m, err := r.Matrix()
	if err != nil {
		return rotationOutput{}, err
	}
	frame, err := geometry.FrameFromRotation(geometry.RotationMatrix(m), geometry.Point3{})
	if err != nil {
		return rotationOutput{}, err
	}
	angles, err := geometry.EulerAnglesFromMatrix(m, conv)
	if err != nil {
		return rotationOutput{}, err
	}
	return rotationOutput{
		Matrix:     m,
		Quaternion: frame.Quaternion().WXYZ(),
		AxisAngle:  geometry.Vector3(geometry.AxisAngleFromMatrix(m)).Array(),
		Euler:      eulerOutput{Angles: angles, Static: conv.Static, Axes: conv.Axes},
		Frame:      frame,
	}, nil
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
