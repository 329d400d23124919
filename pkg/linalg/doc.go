// Package linalg provides the numerical building blocks of the fitting
// routines: principal axes of a point set, singular value decomposition of
// 3x3 matrices, linear least squares and a Levenberg-Marquardt solver for
// small nonlinear least-squares problems.
//
// All functions are pure and safe for concurrent use. Decompositions are
// delegated to gonum.
package linalg
