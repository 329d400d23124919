package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gofit/pkg/geometry"
)

// ErrFormat is returned for files that are neither valid ASCII nor binary STL.
var ErrFormat = errors.New("invalid STL data")

// Parse reads an STL file. ASCII and binary files are told apart by content.
func Parse(filename string) (*Model, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes STL data held in memory.
//
// Binary files may also start with "solid" in their header, so the binary
// interpretation wins whenever the facet count in the header matches the
// data length exactly.
func ParseBytes(data []byte) (*Model, error) {
	if isBinary(data) {
		return parseBinary(bytes.NewReader(data))
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(bytes.NewReader(data))
}

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50
)

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryFacetSize
}

func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var normal geometry.Vector3
	var vertices []geometry.Point3
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			model.Name = strings.Join(fields[1:], " ")

		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet: %w", line, ErrFormat)
			}
			v, err := parseVector(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normal = v
			vertices = vertices[:0]

		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed vertex: %w", line, ErrFormat)
			}
			v, err := parseVector(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices: %w", line, len(vertices), ErrFormat)
			}
			model.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, ErrFormat)
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// facet is the on-disk layout of one binary STL triangle.
type facet struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

func parseBinary(reader io.Reader) (*Model, error) {
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %v: %w", err, ErrFormat)
	}
	model := NewModel(strings.TrimSpace(string(bytes.TrimRight(header, "\x00"))))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %v: %w", err, ErrFormat)
	}

	for i := uint32(0); i < count; i++ {
		var f facet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d of %d: %v: %w", i, count, err, ErrFormat)
		}
		v := f.Vertices
		model.AddTriangle(geometry.NewTriangle(vec32(f.Normal), vec32(v[0]), vec32(v[1]), vec32(v[2])))
	}
	return model, nil
}

func vec32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
