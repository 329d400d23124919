package linalg

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/gofit/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// expDecay fits y = a·exp(-b·t) to noise-free samples.
func expDecay(a, b float64) (Problem, []float64) {
	ts := []float64{0, 0.5, 1, 1.5, 2, 3, 4}
	ys := make([]float64, len(ts))
	for i, t := range ts {
		ys[i] = a * math.Exp(-b*t)
	}
	return Problem{
		M: len(ts),
		Residuals: func(dst, p []float64) {
			for i, t := range ts {
				dst[i] = p[0]*math.Exp(-p[1]*t) - ys[i]
			}
		},
	}, ts
}

func TestLevenbergMarquardtNumericJacobian(t *testing.T) {
	p, _ := expDecay(3, 0.7)
	res, err := LevenbergMarquardt(p, []float64{1, 0.1}, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{3, 0.7}, res.Params, cmpopts.EquateApprox(0, 1e-6))
	if res.Cost > 1e-12 {
		t.Errorf("cost = %v, want 0", res.Cost)
	}
	if res.Iterations < 1 || res.Iterations > DefaultMaxIterations {
		t.Errorf("iterations = %d", res.Iterations)
	}
}

func TestLevenbergMarquardtAnalyticJacobian(t *testing.T) {
	p, ts := expDecay(-2, 1.3)
	p.Jacobian = func(dst *mat.Dense, params []float64) {
		for i, t := range ts {
			e := math.Exp(-params[1] * t)
			dst.Set(i, 0, e)
			dst.Set(i, 1, -params[0]*t*e)
		}
	}
	res, err := LevenbergMarquardt(p, []float64{-1, 1}, Settings{})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []float64{-2, 1.3}, res.Params, cmpopts.EquateApprox(0, 1e-8))
}

func TestLevenbergMarquardtConvergenceError(t *testing.T) {
	p, _ := expDecay(3, 0.7)
	x0 := []float64{1, 0.1}
	res, err := LevenbergMarquardt(p, x0, Settings{MaxIterations: 1, Tolerance: 1e-15})
	if !errors.Is(err, geometry.ErrConvergence) {
		t.Fatalf("expected ErrConvergence, got %v", err)
	}
	if res.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", res.Iterations)
	}
	if len(res.Params) != 2 {
		t.Fatalf("expected the last iterate, got %v", res.Params)
	}
	if x0[0] != 1 || x0[1] != 0.1 {
		t.Errorf("start vector modified: %v", x0)
	}
}

func TestLevenbergMarquardtInvalid(t *testing.T) {
	p, _ := expDecay(1, 1)
	if _, err := LevenbergMarquardt(p, nil, DefaultSettings()); !errors.Is(err, geometry.ErrInvalidRepresentation) {
		t.Errorf("expected ErrInvalidRepresentation, got %v", err)
	}
	p.M = 1
	if _, err := LevenbergMarquardt(p, []float64{1, 1}, DefaultSettings()); !errors.Is(err, geometry.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
