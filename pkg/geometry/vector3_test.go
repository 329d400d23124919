package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	result := NewVector3(5, 7, 9).Sub(NewVector3(1, 2, 3))

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Scale(t *testing.T) {
	result := NewVector3(1, -2, 3).Mul(2)
	if result != NewVector3(2, -4, 6) {
		t.Errorf("Mul failed: got %v", result)
	}
	if neg := result.Neg(); neg != NewVector3(-2, 4, -6) {
		t.Errorf("Neg failed: got %v", neg)
	}
}

func TestVector3Length(t *testing.T) {
	length := NewVector3(3, 4, 0).Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	distance := NewVector3(0, 0, 0).Distance(NewVector3(3, 4, 0))

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized, err := NewVector3(3, 4, 0).Normalize()
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	diff(t, NewVector3(0.6, 0.8, 0), normalized, cmpopts.EquateApprox(0, 1e-12))
}

func TestVector3NormalizeZero(t *testing.T) {
	for _, v := range []Vector3{{}, {X: math.NaN()}, {Y: math.Inf(1)}} {
		if _, err := v.Normalize(); !errors.Is(err, ErrDegenerateInput) {
			t.Errorf("Normalize(%v): expected ErrDegenerateInput, got %v", v, err)
		}
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	result := NewVector3(1, 2, 3).Dot(NewVector3(4, 5, 6))

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Ortho(t *testing.T) {
	for _, v := range []Vector3{{X: 1}, {Y: -2}, {Z: 3}, {X: 1, Y: 2, Z: 3}} {
		o := v.Ortho()
		if math.Abs(o.Length()-1) > 1e-12 {
			t.Errorf("Ortho(%v) = %v is not a unit vector", v, o)
		}
		if math.Abs(o.Dot(v)) > 1e-12 {
			t.Errorf("Ortho(%v) = %v is not orthogonal", v, o)
		}
	}
}

func TestVector3LargestComponent(t *testing.T) {
	tests := []struct {
		v    Vector3
		want int
	}{
		{NewVector3(1, 0, 0), 0},
		{NewVector3(0.1, -5, 2), 1},
		{NewVector3(0, 0, -1), 2},
	}
	for _, tt := range tests {
		if got := tt.v.LargestComponent(); got != tt.want {
			t.Errorf("LargestComponent(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestVector3FromSlice(t *testing.T) {
	v, err := Vector3FromSlice([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if v != NewVector3(1, 2, 3) {
		t.Errorf("got %v", v)
	}
	if _, err := Vector3FromSlice([]float64{1, 2}); !errors.Is(err, ErrInvalidRepresentation) {
		t.Errorf("expected ErrInvalidRepresentation, got %v", err)
	}
}

func TestCentroid(t *testing.T) {
	points := []Point3{
		NewPoint3(0, 0, 0),
		NewPoint3(2, 0, 0),
		NewPoint3(2, 2, 0),
		NewPoint3(0, 2, 4),
	}
	if c := Centroid(points); c != NewPoint3(1, 1, 1) {
		t.Errorf("Centroid = %v, want (1, 1, 1)", c)
	}
}
