// Package config holds the settings of the gofit command line tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/linalg"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Solver configures the nonlinear least-squares solver.
type Solver struct {
	MaxIterations int     `yaml:"max_iterations" toml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance" toml:"tolerance"`
}

// Euler selects the Euler angle convention for output.
type Euler struct {
	Static bool   `yaml:"static" toml:"static"`
	Axes   string `yaml:"axes" toml:"axes"`
}

// Output controls how results are printed.
type Output struct {
	Precision int    `yaml:"precision" toml:"precision"`
	Format    string `yaml:"format" toml:"format"`
}

// Config is the complete tool configuration.
type Config struct {
	Solver Solver `yaml:"solver" toml:"solver"`
	Euler  Euler  `yaml:"euler" toml:"euler"`
	// Tolerance is used when comparing frames.
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	Output    Output  `yaml:"output" toml:"output"`
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the built-in configuration.
func Default() Config {
	settings := linalg.DefaultSettings()
	return Config{
		Solver: Solver{
			MaxIterations: settings.MaxIterations,
			Tolerance:     settings.Tolerance,
		},
		Euler: Euler{
			Static: geometry.DefaultEulerConvention.Static,
			Axes:   geometry.DefaultEulerConvention.Axes,
		},
		Tolerance: geometry.DefaultTolerance,
		Output: Output{
			Precision: 6,
			Format:    FormatText,
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults and
// validates the result. Keys missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config file type %q: %w", ext, ErrInvalid)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive, got %d: %w", c.Solver.MaxIterations, ErrInvalid)
	}
	if !(c.Solver.Tolerance > 0) {
		return fmt.Errorf("solver.tolerance must be positive, got %g: %w", c.Solver.Tolerance, ErrInvalid)
	}
	if err := c.EulerConvention().Validate(); err != nil {
		return fmt.Errorf("euler.axes: %v: %w", err, ErrInvalid)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("tolerance must be positive, got %g: %w", c.Tolerance, ErrInvalid)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		return fmt.Errorf("output.precision must be between 0 and 17, got %d: %w", c.Output.Precision, ErrInvalid)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q: %w", FormatText, FormatJSON, c.Output.Format, ErrInvalid)
	}
	return nil
}

// SolverSettings returns the solver section as solver settings.
func (c Config) SolverSettings() linalg.Settings {
	return linalg.Settings{MaxIterations: c.Solver.MaxIterations, Tolerance: c.Solver.Tolerance}
}

// EulerConvention returns the euler section as a convention.
func (c Config) EulerConvention() geometry.EulerConvention {
	return geometry.EulerConvention{Static: c.Euler.Static, Axes: strings.ToLower(c.Euler.Axes)}
}
