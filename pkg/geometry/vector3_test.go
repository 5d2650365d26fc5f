package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(-0.01, 0.01, 0)
	result := v1.Add(v2)

	expected := NewVector3(0.99, 2.01, 3)
	if !result.ApproxEqual(expected, 1e-12) {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)

	if d := v1.Distance(v2); math.Abs(d-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if d1, d2 := v1.Distance(v2), v2.Distance(v1); d1 != d2 {
		t.Errorf("Distance failed: expected symmetric result, got %v and %v", d1, d2)
	}
	if d := v1.Distance(v1); d != 0 {
		t.Errorf("Distance failed: expected 0 for coincident points, got %v", d)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	if zero := (Vector3{}).Normalize(); zero != (Vector3{}) {
		t.Errorf("Normalize failed: expected zero vector, got %v", zero)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3String(t *testing.T) {
	v := NewVector3(1, -0.5, 0.25)

	expected := "(1.000, -0.500, 0.250)"
	if v.String() != expected {
		t.Errorf("String failed: expected %q, got %q", expected, v.String())
	}
}

func TestVector3IsFinite(t *testing.T) {
	tests := []struct {
		v        Vector3
		expected bool
	}{
		{NewVector3(1, -2, 0.5), true},
		{NewVector3(math.NaN(), 0, 0), false},
		{NewVector3(0, math.Inf(1), 0), false},
		{NewVector3(0, 0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		if tt.v.IsFinite() != tt.expected {
			t.Errorf("IsFinite failed for %v: expected %v", tt.v, tt.expected)
		}
	}
}
