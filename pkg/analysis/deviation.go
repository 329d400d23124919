package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/gofit/pkg/bestfit"
	"github.com/philipparndt/gofit/pkg/geometry"
)

// PointDeviation is the signed distance of one input point from a fitted
// shape.
type PointDeviation struct {
	Index     int
	Point     geometry.Point3
	Deviation float64
}

// DeviationReport summarizes how well a shape fits a point set.
type DeviationReport struct {
	Count int
	// Min and Max are the extreme signed deviations.
	Min, Max float64
	// MeanAbs is the mean absolute deviation.
	MeanAbs float64
	RMS     float64
	All     []PointDeviation
}

// Deviations measures every point against shape.
func Deviations(shape bestfit.Shape, points []geometry.Point3) *DeviationReport {
	report := &DeviationReport{
		Count: len(points),
		All:   make([]PointDeviation, 0, len(points)),
	}
	if len(points) == 0 {
		return report
	}

	report.Min = math.MaxFloat64
	report.Max = -math.MaxFloat64
	var sumAbs, sumSq float64
	for i, p := range points {
		d := shape.Deviation(p)
		report.All = append(report.All, PointDeviation{Index: i, Point: p, Deviation: d})
		report.Min = math.Min(report.Min, d)
		report.Max = math.Max(report.Max, d)
		sumAbs += math.Abs(d)
		sumSq += d * d
	}
	n := float64(len(points))
	report.MeanAbs = sumAbs / n
	report.RMS = math.Sqrt(sumSq / n)
	return report
}

// Worst returns the count points with the largest absolute deviation,
// largest first.
func (r *DeviationReport) Worst(count int) []PointDeviation {
	devs := make([]PointDeviation, len(r.All))
	copy(devs, r.All)
	sort.SliceStable(devs, func(i, j int) bool {
		return math.Abs(devs[i].Deviation) > math.Abs(devs[j].Deviation)
	})
	count = max(0, min(count, len(devs)))
	return devs[:count]
}

// Within returns the points whose absolute deviation is at most tol.
func (r *DeviationReport) Within(tol float64) []PointDeviation {
	var devs []PointDeviation
	for _, d := range r.All {
		if math.Abs(d.Deviation) <= tol {
			devs = append(devs, d)
		}
	}
	return devs
}
