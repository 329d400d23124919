package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gofit/pkg/bestfit"
	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/pointset"
	"github.com/spf13/cobra"
)

var (
	framePlane bool
	frameJSON  bool
)

var frameCmd = &cobra.Command{
	Use:   "frame [file]",
	Short: "Build a coordinate frame from a point set",
	Long: `Build a frame from the first three points of a file: origin at the first point,
x axis towards the second and the third point in the xy-plane. With --plane the
frame lies on the best-fit plane of all points instead.

The frame is printed with its orientation as quaternion, axis-angle vector and
Euler angles in the configured convention.`,
	Args: cobra.ExactArgs(1),
	Run:  runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)

	frameCmd.Flags().BoolVar(&framePlane, "plane", false, "place the frame on the best-fit plane")
	frameCmd.Flags().BoolVar(&frameJSON, "json", false, "print the frame as JSON")
}

type frameOutput struct {
	Frame      geometry.Frame `json:"frame"`
	Quaternion [4]float64     `json:"quaternion"`
	AxisAngle  [3]float64     `json:"axis_angle"`
	Euler      eulerOutput    `json:"euler"`
	// Mismatches lists representations that do not reproduce the frame
	// within the configured tolerance.
	Mismatches []string `json:"round_trip_mismatches,omitempty"`
}

type eulerOutput struct {
	Angles [3]float64 `json:"angles"`
	Static bool       `json:"static"`
	Axes   string     `json:"axes"`
}

func runFrame(cmd *cobra.Command, args []string) {
	frame, err := buildFrame(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	conv := cfg.EulerConvention()
	angles, err := frame.EulerAngles(conv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out := frameOutput{
		Frame:      frame,
		Quaternion: frame.Quaternion().WXYZ(),
		AxisAngle:  geometry.Vector3(frame.AxisAngle()).Array(),
		Euler:      eulerOutput{Angles: angles, Static: conv.Static, Axes: conv.Axes},
		Mismatches: roundTripMismatches(frame, conv, cfg.Tolerance),
	}

	if wantJSON(frameJSON) {
		printJSON(out)
		return
	}

	fmt.Println("Frame")
	fmt.Println("=====")
	fmt.Printf("  Origin: %s\n", formatVector(frame.Point()))
	fmt.Printf("  X axis: %s\n", formatVector(frame.XAxis()))
	fmt.Printf("  Y axis: %s\n", formatVector(frame.YAxis()))
	fmt.Printf("  Z axis: %s\n\n", formatVector(frame.ZAxis()))
	printOrientation(out.Quaternion, frame.AxisAngle(), angles, conv)
	for _, name := range out.Mismatches {
		fmt.Printf("\nWarning: %s does not reproduce the frame within %g\n", name, cfg.Tolerance)
	}
}

// roundTripMismatches rebuilds frame from each rotation representation and
// returns the names of those that differ from it by more than tol.
func roundTripMismatches(frame geometry.Frame, conv geometry.EulerConvention, tol float64) []string {
	angles, err := frame.EulerAngles(conv)
	reps := []struct {
		name string
		rot  geometry.Rotation
	}{
		{"quaternion", frame.Quaternion()},
		{"axis-angle", frame.AxisAngle()},
		{"euler angles", geometry.EulerAngles{Angles: angles, Convention: conv}},
	}
	if err != nil {
		reps = reps[:2]
	}

	var mismatches []string
	for _, rep := range reps {
		g, err := geometry.FrameFromRotation(rep.rot, frame.Point())
		if err != nil || !g.ApproxEqual(frame, tol) {
			mismatches = append(mismatches, rep.name)
		}
	}
	return mismatches
}

func buildFrame(ctx context.Context, filename string) (geometry.Frame, error) {
	points, err := pointset.Load(ctx, filename)
	if err != nil {
		return geometry.Frame{}, err
	}
	if framePlane {
		fit, err := bestfit.Plane(points)
		if err != nil {
			return geometry.Frame{}, err
		}
		debugf("plane through %d points at %v\n", len(points), fit.Point)
		return fit.Frame()
	}
	if len(points) < 3 {
		return geometry.Frame{}, fmt.Errorf("need 3 points for a frame, got %d: %w", len(points), geometry.ErrInsufficientData)
	}
	return geometry.FrameFromPoints(points[0], points[1], points[2])
}

func printOrientation(q [4]float64, aa geometry.AxisAngle, angles [3]float64, conv geometry.EulerConvention) {
	kind := "static"
	if !conv.Static {
		kind = "rotating"
	}
	fmt.Println("Orientation:")
	fmt.Printf("  Quaternion (w, x, y, z): (%s, %s, %s, %s)\n", formatValue(q[0]), formatValue(q[1]), formatValue(q[2]), formatValue(q[3]))
	fmt.Printf("  Axis-angle: %s (angle %s rad)\n", formatVector(geometry.Vector3(aa)), formatValue(aa.Angle()))
	fmt.Printf("  Euler %s %s: %s rad\n", kind, conv.Axes, formatVector(geometry.NewVector3(angles[0], angles[1], angles[2])))
}
