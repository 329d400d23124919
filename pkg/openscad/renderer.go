package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/gofit/pkg/geometry"
	"github.com/philipparndt/gofit/pkg/stl"
)

// ErrNotInstalled is returned when the openscad executable cannot be found.
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Renderer turns OpenSCAD sources into meshes by running the openscad
// executable.
type Renderer struct {
	workDir string
	// Binary is the executable to run. Defaults to "openscad".
	Binary string
}

// NewRenderer creates a renderer resolving relative paths against workDir.
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir, Binary: "openscad"}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile.
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			return fmt.Errorf("failed to render %s: %w", scadFile, err)
		}
		return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, msg)
	}
	return nil
}

// Points renders scadFile to a temporary STL and returns the distinct mesh
// vertices.
func (r *Renderer) Points(ctx context.Context, scadFile string) ([]geometry.Point3, error) {
	tmp, err := os.MkdirTemp("", "gofit-scad-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	out := filepath.Join(tmp, strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))+".stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, err
	}
	model, err := stl.Parse(out)
	if err != nil {
		return nil, fmt.Errorf("rendered %s: %w", scadFile, err)
	}
	return model.Vertices(), nil
}

var dependencyPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// ResolveDependencies returns scadFile followed by every file it pulls in
// through use or include statements, recursively, as absolute paths.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string
	var visit func(string) error
	visit = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, dep := range direct {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(r.abs(scadFile)); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := dependencyPattern.FindStringSubmatch(scanner.Text()); m != nil {
			deps = append(deps, r.resolveDepPath(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath looks a dependency up next to the including file first and
// falls back to the work directory.
func (r *Renderer) resolveDepPath(dep, currentDir string) string {
	local := filepath.Join(currentDir, dep)
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return filepath.Clean(local)
	}
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}
