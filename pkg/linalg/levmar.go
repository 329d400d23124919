package linalg

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gofit/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMaxIterations bounds the number of trial steps.
	DefaultMaxIterations = 100
	// DefaultStepTolerance is the relative parameter update tolerance.
	DefaultStepTolerance = 1e-10

	initialDamping = 1e-3
	maxDamping     = 1e16
	minCurvature   = 1e-300
)

// Settings control the Levenberg-Marquardt iteration. Zero fields select the
// defaults.
type Settings struct {
	MaxIterations int
	// Tolerance ends the iteration once a step dx satisfies
	// |dx| <= Tolerance * (|x| + Tolerance).
	Tolerance float64
}

// DefaultSettings returns 100 iterations and a tolerance of 1e-10.
func DefaultSettings() Settings {
	return Settings{MaxIterations: DefaultMaxIterations, Tolerance: DefaultStepTolerance}
}

func (s Settings) withDefaults() Settings {
	if s.MaxIterations <= 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultStepTolerance
	}
	return s
}

// Problem is a nonlinear least-squares problem: minimize the sum of squares
// of M residuals over the parameters.
type Problem struct {
	// M is the number of residuals.
	M int
	// Residuals writes the M residuals at params into dst.
	Residuals func(dst, params []float64)
	// Jacobian writes the M x len(params) derivative of the residuals into
	// dst. If nil, a forward-difference approximation is used.
	Jacobian func(dst *mat.Dense, params []float64)
}

// Result is the outcome of a solve.
type Result struct {
	Params []float64
	// Cost is the sum of squared residuals at Params.
	Cost float64
	// Iterations counts trial steps, accepted or not.
	Iterations int
}

// LevenbergMarquardt minimizes the problem starting at x0.
//
// Each iteration solves the damped normal equations
// (JᵀJ + λ·diag(JᵀJ))·dx = Jᵀr by Cholesky factorization. Steps that reduce
// the cost are accepted and decrease λ by ten; others are rejected and
// increase it by ten. If the step budget runs out, the best parameters found
// are returned together with an error wrapping ErrConvergence.
func LevenbergMarquardt(p Problem, x0 []float64, settings Settings) (Result, error) {
	n := len(x0)
	if n == 0 {
		return Result{}, fmt.Errorf("no parameters: %w", geometry.ErrInvalidRepresentation)
	}
	if p.Residuals == nil {
		return Result{}, fmt.Errorf("no residual function: %w", geometry.ErrInvalidRepresentation)
	}
	if p.M < n {
		return Result{}, fmt.Errorf("%d residuals for %d parameters: %w", p.M, n, geometry.ErrInsufficientData)
	}
	settings = settings.withDefaults()

	jacobian := p.Jacobian
	if jacobian == nil {
		jacobian = func(dst *mat.Dense, params []float64) {
			numericJacobian(dst, p.Residuals, params, p.M)
		}
	}

	x := append([]float64(nil), x0...)
	r := make([]float64, p.M)
	p.Residuals(r, x)
	cost := sumSquares(r)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return Result{}, fmt.Errorf("residuals at start are not finite: %w", geometry.ErrDegenerateInput)
	}

	jac := mat.NewDense(p.M, n, nil)
	trial := make([]float64, n)
	rTrial := make([]float64, p.M)
	lambda := initialDamping
	iterations := 0

	for it := 1; it <= settings.MaxIterations; it++ {
		iterations = it
		jacobian(jac, x)

		var jtj mat.SymDense
		jtj.SymOuterK(1, jac.T())
		var grad mat.VecDense
		grad.MulVec(jac.T(), mat.NewVecDense(p.M, r))

		dx, ok := dampedStep(&jtj, &grad, lambda)
		if !ok {
			lambda *= 10
			if lambda > maxDamping {
				break
			}
			continue
		}

		for i := range x {
			trial[i] = x[i] - dx[i]
		}
		p.Residuals(rTrial, trial)
		trialCost := sumSquares(rTrial)

		if trialCost < cost {
			copy(x, trial)
			copy(r, rTrial)
			cost = trialCost
			lambda = math.Max(lambda/10, 1e-12)
		} else {
			lambda *= 10
		}

		if norm(dx) <= settings.Tolerance*(norm(x)+settings.Tolerance) {
			return Result{Params: x, Cost: cost, Iterations: it}, nil
		}
		if lambda > maxDamping {
			break
		}
	}

	return Result{Params: x, Cost: cost, Iterations: iterations},
		fmt.Errorf("no convergence after %d iterations: %w", iterations, geometry.ErrConvergence)
}

// dampedStep solves (A + λ·diag(A))·dx = g. It reports false if the damped
// matrix is not positive definite or the step is not finite.
func dampedStep(a *mat.SymDense, g *mat.VecDense, lambda float64) ([]float64, bool) {
	n := a.SymmetricDim()
	damped := mat.NewSymDense(n, nil)
	damped.CopySym(a)
	for i := 0; i < n; i++ {
		d := math.Max(a.At(i, i), minCurvature)
		damped.SetSym(i, i, a.At(i, i)+lambda*d)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(damped); !ok {
		return nil, false
	}
	var dx mat.VecDense
	if err := chol.SolveVecTo(&dx, g); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, false
		}
	}
	step := dx.RawVector().Data
	for _, v := range step {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
	}
	return append([]float64(nil), step...), true
}

// numericJacobian fills dst with forward differences of f at x.
func numericJacobian(dst *mat.Dense, f func(dst, params []float64), x []float64, m int) {
	base := make([]float64, m)
	f(base, x)
	shifted := make([]float64, m)
	xh := append([]float64(nil), x...)
	for j := range x {
		h := math.Sqrt(0x1p-52) * math.Max(math.Abs(x[j]), 1)
		xh[j] = x[j] + h
		f(shifted, xh)
		xh[j] = x[j]
		for i := 0; i < m; i++ {
			dst.Set(i, j, (shifted[i]-base[i])/h)
		}
	}
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

func norm(v []float64) float64 {
	return math.Sqrt(sumSquares(v))
}
