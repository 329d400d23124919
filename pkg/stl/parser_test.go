package stl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gofit/pkg/geometry"
)

const asciiTetrahedron = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 0 1
    endloop
  endfacet
endsolid tetra
`

func TestParseASCII(t *testing.T) {
	model, err := ParseBytes([]byte(asciiTetrahedron))
	if err != nil {
		t.Fatal(err)
	}
	if model.Name != "tetra" {
		t.Errorf("Name = %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", model.TriangleCount())
	}
	want := []geometry.Point3{
		geometry.NewPoint3(0, 0, 0),
		geometry.NewPoint3(1, 0, 0),
		geometry.NewPoint3(0, 1, 0),
		geometry.NewPoint3(0, 0, 1),
	}
	got := model.Vertices()
	if len(got) != len(want) {
		t.Fatalf("Vertices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
	if a := model.SurfaceArea(); a != 1 {
		t.Errorf("SurfaceArea = %v, want 1", a)
	}
}

func TestParseASCIIMalformed(t *testing.T) {
	data := []byte("solid x\nfacet normal 0 0 1\nvertex 0 0 zero\nendfacet\nendsolid\n")
	if _, err := ParseBytes(data); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	// Binary files are allowed to start with "solid".
	copy(header, "solid binary")
	buf.Write(header)
	facets := []facet{
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}},
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{2, 0, 0}, {2, 2, 0}, {0, 2, 0}}},
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(facets))); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, facets); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "square.stl")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	model, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if model.Name != "solid binary" {
		t.Errorf("Name = %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", model.TriangleCount())
	}
	if n := len(model.Vertices()); n != 4 {
		t.Errorf("%d distinct vertices, want 4", n)
	}
	bb := model.BoundingBox()
	if bb.Max != geometry.NewVector3(2, 2, 0) {
		t.Errorf("bounding box max = %v", bb.Max)
	}
}

func TestParseBinaryTruncated(t *testing.T) {
	data := make([]byte, 84+10)
	binary.LittleEndian.PutUint32(data[80:], 3)
	if _, err := ParseBytes(data); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
