package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
)

// PointSetStats describes a point cloud.
type PointSetStats struct {
	Count       int
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Centroid    geometry.Point3
	// Principal holds the principal axes. It is nil for fewer than two
	// points.
	Principal *linalg.PrincipalAxes
}

// Describe computes statistics of a point set.
func Describe(points []geometry.Point3) (*PointSetStats, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("empty point set: %w", geometry.ErrInsufficientData)
	}
	bb := geometry.BoundsOf(points)
	stats := &PointSetStats{
		Count:       len(points),
		BoundingBox: bb,
		Dimensions:  bb.Size(),
		Centroid:    geometry.Centroid(points),
	}
	if len(points) >= 2 {
		pa, err := linalg.PCA(points)
		if err != nil {
			return nil, err
		}
		stats.Principal = &pa
	}
	return stats, nil
}

// FindNearestPoint returns the index of the point closest to p and its
// distance, or -1 for an empty set.
func FindNearestPoint(points []geometry.Point3, p geometry.Point3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64
	for i, q := range points {
		if d := p.Distance(q); d < minDistance {
			nearest = i
			minDistance = d
		}
	}
	return nearest, minDistance
}

// FormatValue formats a number with the given number of decimals.
func FormatValue(value float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, value)
}

// FormatVector formats a 3D vector with the given number of decimals.
func FormatVector(v geometry.Vector3, precision int) string {
	return fmt.Sprintf("(%.*f, %.*f, %.*f)", precision, v.X, precision, v.Y, precision, v.Z)
}
