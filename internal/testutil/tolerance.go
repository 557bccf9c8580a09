package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireRelativeNearlyEqual fails t if any element pair differs by more
// than rel times the magnitude of want (absolute eps for zero entries).
func RequireRelativeNearlyEqual(t *testing.T, got, want []float64, rel float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		tol := rel * math.Abs(want[i])
		if tol == 0 {
			tol = rel
		}
		if diff := math.Abs(got[i] - want[i]); diff > tol {
			t.Fatalf("index %d: got %v, want %v (diff %v > tol %v)", i, got[i], want[i], diff, tol)
		}
	}
}

// RequireComplexNearlyEqual fails t if got and want differ in length or if
// |got[i]-want[i]| exceeds eps for any i.
func RequireComplexNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := cmplx.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFiniteComplex fails t if any real or imaginary part is NaN or Inf.
func RequireFiniteComplex(t *testing.T, data []complex128) {
	t.Helper()
	for i, v := range data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiffComplex returns max |a[i]-b[i]|.
// Returns an error if the slices differ in length.
func MaxAbsDiffComplex(a, b []complex128) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := cmplx.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MaxAbsComplex returns the largest magnitude in data.
func MaxAbsComplex(data []complex128) float64 {
	m := 0.0
	for _, v := range data {
		m = math.Max(m, cmplx.Abs(v))
	}
	return m
}
