package geometry

import "errors"

// Error kinds reported by the geometry, linalg and bestfit packages. Errors
// are wrapped with context, test them with errors.Is.
var (
	// ErrDegenerateInput is returned when the input makes the result
	// mathematically undefined (zero-length, collinear or coplanar data).
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrInsufficientData is returned when fewer points than required are given.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrConvergence is returned when an iterative solver exhausts its
	// iteration budget without meeting its tolerance.
	ErrConvergence = errors.New("solver did not converge")

	// ErrInvalidRepresentation is returned for malformed rotation or
	// transformation input, such as a coefficient list of the wrong length.
	ErrInvalidRepresentation = errors.New("invalid representation")
)
