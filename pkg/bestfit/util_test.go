package bestfit

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/philipparndt/gofit/pkg/geometry"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// pointsOnCircle samples n points of a circle given by its frame and radius,
// starting at angle start and covering sweep radians.
func pointsOnCircle(f geometry.Frame, radius float64, n int, start, sweep float64) []geometry.Point3 {
	points := make([]geometry.Point3, n)
	for i := range points {
		a := start + sweep*float64(i)/float64(n)
		local := geometry.NewPoint3(radius*math.Cos(a), radius*math.Sin(a), 0)
		points[i] = f.PointToGlobal(local)
	}
	return points
}
