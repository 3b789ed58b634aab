// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package subres

import "testing"

// TestRangeGeneratorSingleAspect is spec scenario 5: a single-aspect,
// single-mip, 3-layer region over a 2-aspect/2-mip/4-layer encoder
// collapses to exactly one range.
func TestRangeGeneratorSingleAspect(t *testing.T) {
	full := Region{
		AspectMask: Mask(AspectDepth | AspectStencil),
		BaseMip:    0, MipCount: 2,
		BaseLayer: 0, LayerCount: 4,
	}
	e := NewRangeEncoder(full)

	region := Region{
		AspectMask: Mask(AspectDepth),
		BaseMip:    0, MipCount: 1,
		BaseLayer: 0, LayerCount: 3,
	}
	g := NewRangeGenerator(e, region)

	if !g.Valid() {
		t.Fatalf("generator should yield at least one range")
	}
	got := g.Range()
	want := IndexRange{Begin: 0, End: 3}
	if got != want {
		t.Fatalf("Range() = %v, want %v", got, want)
	}
	g.Next()
	if g.Valid() {
		t.Fatalf("generator should have exactly one range, got a second: %v", g.Range())
	}
}

func TestRangeGeneratorCoversEveryMip(t *testing.T) {
	full := Region{
		AspectMask: Mask(AspectColor),
		BaseMip:    0, MipCount: 3,
		BaseLayer: 0, LayerCount: 2,
	}
	e := NewRangeEncoder(full)
	g := NewRangeGenerator(e, full)

	var ranges []IndexRange
	for g.Valid() {
		ranges = append(ranges, g.Range())
		g.Next()
	}
	want := []IndexRange{{Begin: 0, End: 2}, {Begin: 2, End: 4}, {Begin: 4, End: 6}}
	if len(ranges) != len(want) {
		t.Fatalf("got %d ranges %v, want %d ranges %v", len(ranges), ranges, len(want), want)
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("range %d = %v, want %v", i, ranges[i], want[i])
		}
	}
}

func TestRangeGeneratorCrossesAspects(t *testing.T) {
	full := Region{
		AspectMask: Mask(AspectDepth | AspectStencil),
		BaseMip:    0, MipCount: 2,
		BaseLayer: 0, LayerCount: 2,
	}
	e := NewRangeEncoder(full)
	g := NewRangeGenerator(e, full)

	var total int
	seen := make(map[uint64]bool)
	for g.Valid() {
		r := g.Range()
		for i := r.Begin; i < r.End; i++ {
			if seen[i] {
				t.Fatalf("index %d yielded twice", i)
			}
			seen[i] = true
		}
		total += int(r.Distance())
		g.Next()
	}
	if want := int(e.SubresourceCount()); total != want {
		t.Fatalf("generator covered %d indices, want %d", total, want)
	}
}
