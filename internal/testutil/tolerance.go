package testutil

import (
	"fmt"
	"testing"
)

// RequireSamplesNear fails t if got and want differ in length or if any
// sample pair differs by more than tol.
func RequireSamplesNear(t testing.TB, got, want []int32, tol int32) {
	t.Helper()

	diff, at, err := MaxSampleDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if diff > tol {
		t.Fatalf("index %d: got %d, want %d (diff %d > tol %d)", at, got[at], want[at], diff, tol)
	}
}

// MaxSampleDiff returns the largest absolute difference between two sample
// slices and the index where it occurs.
func MaxSampleDiff(a, b []int32) (diff int32, index int, err error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}

		if d > diff {
			diff, index = d, i
		}
	}

	return diff, index, nil
}

// Peak returns the largest absolute sample value.
func Peak(x []int32) int32 {
	var p int32
	for _, v := range x {
		p = max(p, v, -v)
	}

	return p
}
