package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/philipparndt/gofit/internal/config"
	"github.com/philipparndt/gofit/pkg/analysis"
	"github.com/philipparndt/gofit/pkg/geometry"
)

func formatVector(v geometry.Vector3) string {
	return analysis.FormatVector(v, cfg.Output.Precision)
}

func formatValue(v float64) string {
	return analysis.FormatValue(v, cfg.Output.Precision)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}

func wantJSON(flag bool) bool {
	return flag || cfg.Output.Format == config.FormatJSON
}
