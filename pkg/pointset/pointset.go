// Package pointset loads point clouds for fitting from STL meshes, OpenSCAD
// sources, JSON or YAML coordinate lists and plain text files.
package pointset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/openscad"
	"github.com/philipparndt/gofit/pkg/stl"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for unreadable coordinate data.
var ErrFormat = errors.New("invalid point data")

// Format identifies how a file is decoded.
type Format int

const (
	FormatText Format = iota
	FormatSTL
	FormatSCAD
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatSCAD:
		return "scad"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "text"
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL
	case ".scad":
		return FormatSCAD
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Load reads the points stored in path. Meshes contribute their distinct
// vertices. ctx bounds the OpenSCAD render.
func Load(ctx context.Context, path string) ([]geometry.Point3, error) {
	format := DetectFormat(path)
	switch format {
	case FormatSTL:
		model, err := stl.Parse(path)
		if err != nil {
			return nil, err
		}
		return model.Vertices(), nil
	case FormatSCAD:
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return openscad.NewRenderer(filepath.Dir(abs)).Points(ctx, abs)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	points, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// Decode parses coordinate data held in memory. STL data is accepted as
// well; OpenSCAD sources need Load.
func Decode(data []byte, format Format) ([]geometry.Point3, error) {
	var triples [][]float64
	switch format {
	case FormatSTL:
		model, err := stl.ParseBytes(data)
		if err != nil {
			return nil, err
		}
		return model.Vertices(), nil
	case FormatSCAD:
		return nil, fmt.Errorf("OpenSCAD sources must be loaded from a file: %w", ErrFormat)
	case FormatJSON:
		if err := json.Unmarshal(data, &triples); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrFormat)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &triples); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrFormat)
		}
	default:
		return ReadText(bytes.NewReader(data))
	}

	points := make([]geometry.Point3, len(triples))
	for i, t := range triples {
		p, err := geometry.Vector3FromSlice(t)
		if err != nil {
			return nil, fmt.Errorf("point %d: %v: %w", i, err, ErrFormat)
		}
		points[i] = p
	}
	return points, nil
}

// ReadText reads one point per line as three numbers separated by spaces,
// tabs or commas. Blank lines and text after '#' are ignored.
func ReadText(r io.Reader) ([]geometry.Point3, error) {
	var points []geometry.Point3
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 coordinates but got %d: %w", line, len(fields), ErrFormat)
		}
		var xyz [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", line, f, ErrFormat)
			}
			xyz[i] = v
		}
		points = append(points, geometry.NewPoint3(xyz[0], xyz[1], xyz[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// Dependencies lists the files whose change affects the points of path:
// the file itself and, for OpenSCAD sources, everything it uses or
// includes.
func Dependencies(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if DetectFormat(path) != FormatSCAD {
		return []string{abs}, nil
	}
	return openscad.NewRenderer(filepath.Dir(abs)).ResolveDependencies(abs)
}
