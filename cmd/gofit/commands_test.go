package main

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gofit/pkg/geometry"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestFitPlane(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(0, 0, 1),
		geometry.NewPoint3(2, 0, 1),
		geometry.NewPoint3(2, 2, 1),
		geometry.NewPoint3(0, 2, 1),
	}
	fitWorst = 2
	defer func() { fitWorst = 0 }()

	r, err := fit("plane", "square.txt", points)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([3]float64{1, 1, 1}, *r.Point, approx); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff([3]float64{0, 0, 1}, *r.Normal, approx); d != "" {
		t.Error(d)
	}
	if r.Warning != "" {
		t.Errorf("unexpected warning %q", r.Warning)
	}
	if len(r.Worst) != 2 {
		t.Errorf("got %d worst points, want 2", len(r.Worst))
	}
	if r.Deviation.RMS > 1e-9 {
		t.Errorf("RMS deviation %g, want 0", r.Deviation.RMS)
	}
}

func TestFitCollinearPlaneWarns(t *testing.T) {
	points := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(2, 0, 0),
	}
	r, err := fit("plane", "line.txt", points)
	if err != nil {
		t.Fatal(err)
	}
	if r.Warning == "" {
		t.Error("expected a warning for collinear points")
	}
}

func TestFitSphere(t *testing.T) {
	center := geometry.NewPoint3(1, -2, 3)
	var points []geometry.Point3
	for _, d := range []geometry.Vector3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	} {
		points = append(points, center.Add(d.Mul(2)))
	}

	r, err := fit("sphere", "sphere.txt", points)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([3]float64{1, -2, 3}, *r.Center, approx); d != "" {
		t.Error(d)
	}
	if math.Abs(*r.Radius-2) > 1e-9 {
		t.Errorf("radius %g, want 2", *r.Radius)
	}
	if r.Normal != nil {
		t.Error("sphere result has a normal")
	}
}

func TestFitCircle(t *testing.T) {
	var points []geometry.Point3
	for i := 0; i < 12; i++ {
		a := 2 * math.Pi * float64(i) / 12
		points = append(points, geometry.NewPoint3(3*math.Cos(a)+1, 3*math.Sin(a), 5))
	}

	r, err := fit("circle", "circle.txt", points)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([3]float64{1, 0, 5}, *r.Center, cmpopts.EquateApprox(0, 1e-6)); d != "" {
		t.Error(d)
	}
	if math.Abs(*r.Radius-3) > 1e-6 {
		t.Errorf("radius %g, want 3", *r.Radius)
	}
}

func TestFitUnknownKind(t *testing.T) {
	if _, err := fit("cone", "x.txt", nil); err == nil {
		t.Error("expected an error for an unknown fit")
	}
}

func TestConvertRotation(t *testing.T) {
	half := math.Pi / 4
	inputs := map[string]geometry.Rotation{
		"quaternion": geometry.Quaternion{W: math.Cos(half), Z: math.Sin(half)},
		"axis-angle": geometry.AxisAngle(geometry.NewVector3(0, 0, math.Pi/2)),
		"euler": geometry.EulerAngles{
			Angles:     [3]float64{0, 0, math.Pi / 2},
			Convention: geometry.DefaultEulerConvention,
		},
		"matrix": geometry.RotationMatrix{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	}

	for name, r := range inputs {
		t.Run(name, func(t *testing.T) {
			out, err := convertRotation(r, geometry.DefaultEulerConvention)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff([4]float64{math.Cos(half), 0, 0, math.Sin(half)}, out.Quaternion, approx); d != "" {
				t.Error(d)
			}
			if d := cmp.Diff([3]float64{0, 0, math.Pi / 2}, out.AxisAngle, approx); d != "" {
				t.Error(d)
			}
			if d := cmp.Diff([3]float64{0, 0, math.Pi / 2}, out.Euler.Angles, approx); d != "" {
				t.Error(d)
			}
			if !out.Frame.XAxis().ApproxEqual(geometry.NewVector3(0, 1, 0), 1e-9) {
				t.Errorf("x axis %v, want (0, 1, 0)", out.Frame.XAxis())
			}
		})
	}
}

func TestConvertRotationRejectsBadEulerAxes(t *testing.T) {
	_, err := convertRotation(geometry.AxisAngle{}, geometry.EulerConvention{Static: true, Axes: "xxz"})
	if err == nil {
		t.Error("expected an error for an invalid axis order")
	}
}

func TestRoundTripMismatches(t *testing.T) {
	frame, err := geometry.NewFrame(geometry.NewPoint3(1, 2, 3), geometry.NewVector3(1, 2, 0.5), geometry.NewVector3(-1, 0.3, 2))
	if err != nil {
		t.Fatal(err)
	}
	conv := geometry.EulerConvention{Static: false, Axes: "zyx"}

	if got := roundTripMismatches(frame, conv, geometry.DefaultTolerance); len(got) != 0 {
		t.Errorf("unexpected mismatches %v", got)
	}

	// No representation is exact under a negative tolerance.
	got := roundTripMismatches(frame, conv, -1)
	if d := cmp.Diff([]string{"quaternion", "axis-angle", "euler angles"}, got); d != "" {
		t.Error(d)
	}
}
