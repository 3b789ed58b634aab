// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package subres

import "github.com/gviegas/gpuval/rangemap"

// IndexRange is a half-open span in an encoder's dense index space.
type IndexRange = rangemap.Range[uint64]

// RangeGenerator walks a Region as a sequence of contiguous index
// ranges, in aspect-then-mip-then-layer order, collapsing every mip's
// layer span into a single range. It is finite, forward-only and
// non-restartable.
type RangeGenerator struct {
	encoder   *RangeEncoder
	region    Region
	aspectIdx uint32
	mip       uint32
	done      bool
	current   IndexRange
}

// NewRangeGenerator returns a RangeGenerator positioned at the first
// range addressed by region under encoder.
func NewRangeGenerator(encoder *RangeEncoder, region Region) *RangeGenerator {
	g := &RangeGenerator{encoder: encoder, region: region}
	g.aspectIdx = encoder.LowerBoundFromMask(region.AspectMask)
	g.mip = region.BaseMip
	if g.aspectIdx >= uint32(encoder.limits.AspectCount) {
		g.done = true
		return g
	}
	g.computeCurrent()
	return g
}

func (g *RangeGenerator) computeCurrent() {
	base := g.encoder.aspectBase[g.aspectIdx] + uint64(g.mip)*g.encoder.MipSize() + uint64(g.region.BaseLayer)
	g.current = IndexRange{Begin: base, End: base + uint64(g.region.LayerCount)}
}

// Valid reports whether the generator has a current range (i.e. has not
// run past the end of the region).
func (g *RangeGenerator) Valid() bool { return !g.done }

// Range returns the current contiguous index range.
func (g *RangeGenerator) Range() IndexRange { return g.current }

// Next advances past the current range.
func (g *RangeGenerator) Next() *RangeGenerator {
	if g.done {
		return g
	}
	g.mip++
	if g.mip >= g.region.BaseMip+g.region.MipCount {
		g.aspectIdx = g.encoder.LowerBoundFromMaskAfter(g.region.AspectMask, g.aspectIdx+1)
		g.mip = g.region.BaseMip
		if g.aspectIdx >= uint32(g.encoder.limits.AspectCount) {
			g.done = true
			return g
		}
	}
	g.computeCurrent()
	return g
}
