package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gofit/internal/config"
	"github.com/philipparndt/gofit/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	maxIterations int
	tolerance     float64
	eulerAxes     string
	rotating      bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gofit",
	Short: "Best-fit planes, circles and spheres for 3D point sets",
	Long: `gofit fits planes, circles and spheres to point clouds read from STL meshes,
OpenSCAD sources, JSON/YAML coordinate lists or plain "x y z" text files.
It also converts between rotation representations and builds coordinate frames.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML or TOML configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print solver diagnostics to stderr")
	flags.IntVar(&maxIterations, "max-iter", 0, "maximum solver iterations (overrides config)")
	flags.Float64Var(&tolerance, "tol", 0, "solver step tolerance (overrides config)")
	flags.StringVar(&eulerAxes, "axes", "", "Euler axis order, a permutation of xyz (overrides config)")
	flags.BoolVar(&rotating, "rotating", false, "use rotating (intrinsic) Euler angles")
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then explicitly set flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIterations = maxIterations
	}
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("axes") {
		cfg.Euler.Axes = eulerAxes
	}
	if flags.Changed("rotating") {
		cfg.Euler.Static = !rotating
	}
	return cfg.Validate()
}

func debugf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
