// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package driver

import "github.com/gviegas/gpuval/subres"

// ImageEncoder returns a subres.RangeEncoder sized for img's full
// subresource range (every aspect, mip and layer img was created with).
// A state tracker keys its per-image rangemap.RangeMap by the dense
// index space this encoder defines, rather than by the raw
// (aspect, mip, layer) tuple.
func ImageEncoder(img Image) *subres.RangeEncoder {
	full := subres.Region{
		AspectMask: img.Format().AspectMask(),
		BaseMip:    0,
		MipCount:   uint32(img.Levels()),
		BaseLayer:  0,
		LayerCount: uint32(img.Layers()),
	}
	return subres.NewRangeEncoder(full)
}

// WalkTransitions produces the dense index ranges addressed by a batch
// of Transition commands, one []subres.IndexRange per Transition, in
// the same order as t. This replaces what in a hand-rolled recorder
// would be a triple-nested loop over aspect, mip level and array layer
// for every Transition: the corresponding RangeGenerator already walks
// exactly that iteration order, collapsing same-mip layer spans into a
// single contiguous range.
//
// Callers (state trackers) use the returned ranges to look up or
// overwrite entries in a rangemap.RangeMap keyed by this encoder's
// index space — WalkTransitions itself performs no tracking, only the
// coordinate-to-index translation.
func WalkTransitions(t []Transition) [][]subres.IndexRange {
	out := make([][]subres.IndexRange, len(t))
	// Distinct images generally recur across a batch (e.g. repeated
	// mip transitions of one render target); cache each image's
	// encoder rather than rebuilding it per Transition.
	encoders := make(map[Image]*subres.RangeEncoder)
	for i, tr := range t {
		enc, ok := encoders[tr.Image]
		if !ok {
			enc = ImageEncoder(tr.Image)
			encoders[tr.Image] = enc
		}
		var ranges []subres.IndexRange
		for g := subres.NewRangeGenerator(enc, tr.Region); g.Valid(); g.Next() {
			ranges = append(ranges, g.Range())
		}
		out[i] = ranges
	}
	return out
}
