// Package bestfit derives planes, circles and spheres from unordered point
// sets under a least-squares criterion.
//
// Every estimator is a pure function of its input and can be called
// concurrently. Failures wrap the sentinel errors of package geometry.
package bestfit
