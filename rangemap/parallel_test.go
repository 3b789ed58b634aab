// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rangemap

import "testing"

func TestCachedLowerBoundNext(t *testing.T) {
	m := buildMap(t, Range[int]{0, 5}, "A", Range[int]{5, 10}, "B")
	c := m.NewCachedLowerBound(0)
	if !c.Valid() || c.LowerBound() != 0 {
		t.Fatalf("initial cursor wrong: valid=%v lb=%d", c.Valid(), c.LowerBound())
	}
	for i := 0; i < 4; i++ {
		c.Next()
	}
	if c.Index() != 4 || c.LowerBound() != 0 {
		t.Fatalf("after 4 Next: index=%d lb=%d, want 4/0", c.Index(), c.LowerBound())
	}
	c.Next()
	if c.Index() != 5 || c.LowerBound() != 1 {
		t.Fatalf("crossing boundary: index=%d lb=%d, want 5/1", c.Index(), c.LowerBound())
	}
}

func TestCachedLowerBoundSeekAndGap(t *testing.T) {
	m := buildMap(t, Range[int]{0, 5}, "A", Range[int]{10, 15}, "B")
	c := m.NewCachedLowerBound(2)
	if d := c.DistanceToEdge(); d != 3 {
		t.Fatalf("DistanceToEdge() = %d, want 3", d)
	}
	c.Seek(7)
	if c.Valid() {
		t.Fatalf("index 7 falls in the gap, should be invalid")
	}
	if d := c.DistanceToEdge(); d != 3 {
		t.Fatalf("gap DistanceToEdge() = %d, want 3 (distance to next entry)", d)
	}
	c.Seek(20)
	if !c.AtEnd() {
		t.Fatalf("index 20 is past every entry, should be AtEnd")
	}
}

type concatUpdater struct{}

func (concatUpdater) Update(dst *string, src string) { *dst = *dst + src }
func (concatUpdater) Insert(src string) (string, bool) { return src, true }

func TestSpliceOverlapAndGap(t *testing.T) {
	dst := buildMap(t, Range[int]{0, 10}, "A", Range[int]{20, 30}, "B")
	src := buildMap(t, Range[int]{5, 25}, "x")

	Splice[int, string, string](dst, src, concatUpdater{})

	want := []Entry[int, string]{
		{Range[int]{0, 5}, "A"},
		{Range[int]{5, 10}, "Ax"},
		{Range[int]{10, 20}, "x"},
		{Range[int]{20, 25}, "Bx"},
		{Range[int]{25, 30}, "B"},
	}
	entriesEqual(t, snapshot(dst), want)
}

type markOps struct{ infilled []Range[int] }

func (o *markOps) Update(m *RangeMap[int, string], it int) {
	m.entries[it].Value = m.entries[it].Value + "!"
}

func (o *markOps) Infill(m *RangeMap[int, string], posHint int, gap Range[int]) {
	o.infilled = append(o.infilled, gap)
	m.Insert(gap, "new")
}

func TestInfillUpdateRange(t *testing.T) {
	m := buildMap(t, Range[int]{0, 5}, "A", Range[int]{15, 20}, "B")
	ops := &markOps{}
	InfillUpdateRange[int, string](m, Range[int]{0, 20}, ops)

	want := []Entry[int, string]{
		{Range[int]{0, 5}, "A!"},
		{Range[int]{5, 15}, "new"},
		{Range[int]{15, 20}, "B!"},
	}
	entriesEqual(t, snapshot(m), want)
	if len(ops.infilled) != 1 || ops.infilled[0] != (Range[int]{5, 15}) {
		t.Fatalf("infilled gaps = %v, want [{5,15}]", ops.infilled)
	}
}
