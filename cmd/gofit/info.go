package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gofit/pkg/analysis"
	"github.com/philipparndt/gofit/pkg/pointset"
	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Describe a point set",
	Long: `Print the number of points, the bounding box, the centroid and the principal
axes of a point set read from a text, JSON, YAML, STL or OpenSCAD file.`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "print the statistics as JSON")
}

type infoOutput struct {
	Count      int          `json:"count"`
	Min        [3]float64   `json:"min"`
	Max        [3]float64   `json:"max"`
	Dimensions [3]float64   `json:"dimensions"`
	Centroid   [3]float64   `json:"centroid"`
	Axes       [][3]float64 `json:"axes,omitempty"`
	Variances  []float64    `json:"variances,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) {
	points, err := pointset.Load(cmd.Context(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading points: %v\n", err)
		os.Exit(1)
	}
	stats, err := analysis.Describe(points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if wantJSON(infoJSON) {
		printJSON(newInfoOutput(stats))
		return
	}

	title := fmt.Sprintf("Point set: %s", args[0])
	fmt.Println(title)
	fmt.Println(underline(title))
	fmt.Printf("  Points: %d\n", stats.Count)
	fmt.Printf("  Min: %s\n", formatVector(stats.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", formatVector(stats.BoundingBox.Max))
	fmt.Printf("  Dimensions: %s\n", formatVector(stats.Dimensions))
	fmt.Printf("  Centroid: %s\n", formatVector(stats.Centroid))
	if pa := stats.Principal; pa != nil {
		fmt.Println("\nPrincipal axes:")
		for i, axis := range pa.Axes {
			fmt.Printf("  %d: %s variance %s\n", i+1, formatVector(axis), formatValue(pa.Variances[i]))
		}
	}
}

func newInfoOutput(stats *analysis.PointSetStats) infoOutput {
	out := infoOutput{
		Count:      stats.Count,
		Min:        stats.BoundingBox.Min.Array(),
		Max:        stats.BoundingBox.Max.Array(),
		Dimensions: stats.Dimensions.Array(),
		Centroid:   stats.Centroid.Array(),
	}
	if pa := stats.Principal; pa != nil {
		for i, axis := range pa.Axes {
			out.Axes = append(out.Axes, axis.Array())
			out.Variances = append(out.Variances, pa.Variances[i])
		}
	}
	return out
}
