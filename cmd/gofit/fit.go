package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/philipparndt/gofit/pkg/analysis"
	"github.com/philipparndt/gofit/pkg/bestfit"
	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/pointset"
	"github.com/philipparndt/gofit/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	fitJSON  bool
	fitWatch bool
	fitWorst int
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a plane, circle or sphere to a point set",
}

func init() {
	rootCmd.AddCommand(fitCmd)

	for _, kind := range []struct{ name, short string }{
		{"plane", "Fit a plane (centroid and least-variance normal)"},
		{"circle", "Fit a circle in the best-fit plane of the points"},
		{"sphere", "Fit a sphere by linear least squares"},
	} {
		fitCmd.AddCommand(&cobra.Command{
			Use:   kind.name + " [file]",
			Short: kind.short,
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				runFit(cmd, kind.name, args[0])
			},
		})
	}

	fitCmd.PersistentFlags().BoolVar(&fitJSON, "json", false, "print the result as JSON")
	fitCmd.PersistentFlags().BoolVarP(&fitWatch, "watch", "w", false, "fit again whenever the file changes")
	fitCmd.PersistentFlags().IntVar(&fitWorst, "worst", 0, "list the N points with the largest deviation")
}

// fitResult is the printable outcome of one fit.
type fitResult struct {
	Kind       string      `json:"kind"`
	File       string      `json:"file"`
	Points     int         `json:"points"`
	Point      *[3]float64 `json:"point,omitempty"`
	Center     *[3]float64 `json:"center,omitempty"`
	Normal     *[3]float64 `json:"normal,omitempty"`
	Radius     *float64    `json:"radius,omitempty"`
	Iterations int         `json:"iterations,omitempty"`
	Warning    string      `json:"warning,omitempty"`
	Deviation  deviation   `json:"deviation"`
	Worst      []worst     `json:"worst,omitempty"`
}

type deviation struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	MeanAbs float64 `json:"mean_abs"`
	RMS     float64 `json:"rms"`
}

type worst struct {
	Index     int        `json:"index"`
	Point     [3]float64 `json:"point"`
	Deviation float64    `json:"deviation"`
}

func runFit(cmd *cobra.Command, kind, filename string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fitAndPrint(ctx, kind, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !fitWatch {
			os.Exit(1)
		}
	}
	if !fitWatch {
		return
	}

	if err := watchAndFit(ctx, kind, filename); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func watchAndFit(ctx context.Context, kind, filename string) error {
	files, err := pointset.Dependencies(filename)
	if err != nil {
		return err
	}
	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.OnError = func(err error) {
		fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
	}

	if err := fw.Watch(files, func(path string) {
		debugf("%s changed\n", path)
		fmt.Println()
		if err := fitAndPrint(ctx, kind, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Watching %d file(s), press Ctrl+C to stop\n", len(files))
	return fw.Run(ctx)
}

func fitAndPrint(ctx context.Context, kind, filename string) error {
	start := time.Now()
	points, err := pointset.Load(ctx, filename)
	if err != nil {
		return err
	}
	debugf("loaded %d points from %s in %v\n", len(points), filename, time.Since(start))

	result, err := fit(kind, filename, points)
	if err != nil {
		return err
	}
	if wantJSON(fitJSON) {
		printJSON(result)
	} else {
		printFitText(result)
	}
	return nil
}

func fit(kind, filename string, points []geometry.Point3) (*fitResult, error) {
	result := &fitResult{Kind: kind, File: filename, Points: len(points)}
	var shape bestfit.Shape

	switch kind {
	case "plane":
		p, err := bestfit.Plane(points)
		if err != nil {
			if !errors.Is(err, geometry.ErrDegenerateInput) || p.Normal.IsZero() {
				return nil, err
			}
			result.Warning = err.Error()
		}
		result.Point = ptr(p.Point.Array())
		result.Normal = ptr(p.Normal.Array())
		shape = p

	case "circle":
		c, err := bestfit.CircleWith(points, cfg.SolverSettings())
		if err != nil {
			return nil, err
		}
		debugf("circle solver: %d iterations, residual %g\n", c.Iterations, c.Residual)
		result.Center = ptr(c.Center.Array())
		result.Normal = ptr(c.Normal.Array())
		result.Radius = ptr(c.Radius)
		result.Iterations = c.Iterations
		shape = c

	case "sphere":
		s, err := bestfit.Sphere(points)
		if err != nil {
			return nil, err
		}
		result.Center = ptr(s.Center.Array())
		result.Radius = ptr(s.Radius)
		shape = s

	default:
		return nil, fmt.Errorf("unknown fit %q", kind)
	}

	report := analysis.Deviations(shape, points)
	result.Deviation = deviation{Min: report.Min, Max: report.Max, MeanAbs: report.MeanAbs, RMS: report.RMS}
	for _, w := range report.Worst(fitWorst) {
		result.Worst = append(result.Worst, worst{Index: w.Index, Point: w.Point.Array(), Deviation: w.Deviation})
	}
	return result, nil
}

func ptr[T any](v T) *T {
	return &v
}

func vector(a *[3]float64) geometry.Vector3 {
	return geometry.NewVector3(a[0], a[1], a[2])
}

func printFitText(r *fitResult) {
	title := fmt.Sprintf("Best-fit %s", r.Kind)
	fmt.Println(title)
	fmt.Println(underline(title))
	fmt.Printf("File: %s\n", r.File)
	fmt.Printf("Points: %d\n\n", r.Points)

	if r.Warning != "" {
		fmt.Printf("Warning: %s\n\n", r.Warning)
	}
	if r.Point != nil {
		fmt.Printf("  Point:  %s\n", formatVector(vector(r.Point)))
	}
	if r.Center != nil {
		fmt.Printf("  Center: %s\n", formatVector(vector(r.Center)))
	}
	if r.Normal != nil {
		fmt.Printf("  Normal: %s\n", formatVector(vector(r.Normal)))
	}
	if r.Radius != nil {
		fmt.Printf("  Radius: %s\n", formatValue(*r.Radius))
	}
	if r.Iterations > 0 {
		fmt.Printf("  Solver iterations: %d\n", r.Iterations)
	}

	fmt.Println("\nDeviation:")
	fmt.Printf("  Minimum: %s\n", formatValue(r.Deviation.Min))
	fmt.Printf("  Maximum: %s\n", formatValue(r.Deviation.Max))
	fmt.Printf("  Mean |d|: %s\n", formatValue(r.Deviation.MeanAbs))
	fmt.Printf("  RMS: %s\n", formatValue(r.Deviation.RMS))

	if len(r.Worst) > 0 {
		fmt.Printf("\nLargest deviations:\n")
		for _, w := range r.Worst {
			fmt.Printf("  #%d %s: %s\n", w.Index, formatVector(geometry.NewVector3(w.Point[0], w.Point[1], w.Point[2])), formatValue(w.Deviation))
		}
	}
}

func underline(s string) string {
	return strings.Repeat("=", len(s))
}
