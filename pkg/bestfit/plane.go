package bestfit

import (
	"fmt"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
)

// degenerateRatio is the relative singular value below which a direction of
// the point set is treated as collapsed.
const degenerateRatio = 1e-12

// PlaneFit is the least-squares plane through a point set.
type PlaneFit struct {
	// Point is the centroid of the input.
	Point geometry.Point3
	// Normal is a unit vector whose largest-magnitude component is positive.
	Normal geometry.Vector3
}

// Plane returns the fit as a plane primitive.
func (f PlaneFit) Plane() geometry.Plane {
	return geometry.Plane{Point: f.Point, Normal: f.Normal}
}

// Frame returns a frame on the fitted plane.
func (f PlaneFit) Frame() (geometry.Frame, error) {
	return geometry.FrameFromPlane(f.Plane())
}

// Plane fits a plane to at least three points. The normal is the right
// singular vector of the centered covariance matrix belonging to the
// smallest singular value.
//
// If the points are collinear the plane is underdetermined: the returned fit
// has the centroid and a deterministic normal perpendicular to the line, and
// the error wraps ErrDegenerateInput. Callers that accept such a plane can
// ignore that error.
func Plane(points []geometry.Point3) (PlaneFit, error) {
	if len(points) < 3 {
		return PlaneFit{}, fmt.Errorf("need at least 3 points to fit a plane, got %d: %w", len(points), geometry.ErrInsufficientData)
	}
	centroid, cov, err := linalg.Covariance(points)
	if err != nil {
		return PlaneFit{}, err
	}
	svd, err := linalg.DecomposeSVD(cov)
	if err != nil {
		return PlaneFit{}, err
	}

	s := svd.S
	if s[0] == 0 {
		return PlaneFit{}, fmt.Errorf("all %d points coincide: %w", len(points), geometry.ErrDegenerateInput)
	}
	if s[1] <= degenerateRatio*s[0] {
		dir := svd.RightSingularVector(0)
		normal := linalg.CanonicalSign(dir.Ortho())
		return PlaneFit{Point: centroid, Normal: normal},
			fmt.Errorf("points are collinear, plane normal is arbitrary: %w", geometry.ErrDegenerateInput)
	}

	normal, err := svd.RightSingularVector(2).Normalize()
	if err != nil {
		return PlaneFit{}, err
	}
	return PlaneFit{Point: centroid, Normal: linalg.CanonicalSign(normal)}, nil
}
