// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

import "testing"

func TestRangeBasics(t *testing.T) {
	cases := [...]struct {
		r         Range[int]
		wantValid bool
		wantEmpty bool
		wantDist  int
	}{
		{Range[int]{0, 10}, true, false, 10},
		{Range[int]{5, 5}, true, true, 0},
		{Range[int]{5, 3}, false, false, 0},
	}
	for _, c := range cases {
		if got := c.r.Valid(); got != c.wantValid {
			t.Errorf("%v.Valid() = %v, want %v", c.r, got, c.wantValid)
		}
		if got := c.r.Empty(); got != c.wantEmpty {
			t.Errorf("%v.Empty() = %v, want %v", c.r, got, c.wantEmpty)
		}
		if c.wantValid {
			if got := c.r.Distance(); got != c.wantDist {
				t.Errorf("%v.Distance() = %v, want %v", c.r, got, c.wantDist)
			}
		}
	}
}

func TestRangeIncludesIntersects(t *testing.T) {
	a := Range[int]{10, 20}
	if !a.Includes(10) || a.Includes(20) || !a.Includes(15) {
		t.Fatalf("Includes boundary behavior wrong for %v", a)
	}
	b := Range[int]{15, 25}
	if !a.Intersects(b) {
		t.Fatalf("%v should intersect %v", a, b)
	}
	c := Range[int]{20, 30}
	if a.Intersects(c) {
		t.Fatalf("%v should not intersect %v (half-open touching)", a, c)
	}
	if !a.IsPriorTo(c) {
		t.Fatalf("%v should be prior to %v", a, c)
	}
}

func TestRangeOffset(t *testing.T) {
	r := Range[int]{10, 20}
	got := r.Offset(5)
	want := Range[int]{15, 25}
	if got != want {
		t.Errorf("Offset(5) = %v, want %v", got, want)
	}
}
