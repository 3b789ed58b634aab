// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package imgrange

import "github.com/gviegas/gpuval/subres"

// IndexRange is a half-open span of memory indices.
type IndexRange = subres.IndexRange

// ImageRangeGenerator walks a 3D sub-region of an image — an offset and
// extent inside a subresource region — as a sequence of contiguous
// memory-index ranges, one subresource (aspect, mip) at a time.
//
// Three collapsing tiers govern how finely the region is sliced, chosen
// anew for each subresource from how much of that subresource's extent
// the sub-region covers:
//   - neither full width nor full height: one range per row (per y).
//   - full width, not full height: one range per row (the row IS the
//     whole width, but rows still don't merge across y).
//   - full width and full height: one range per depth-slice/array-layer.
//
// This collapses the eight initial-position strategies of the C++
// original (each a named constructor dispatched by function pointer)
// into two booleans plus the is3D/depthSliced toggle; see DESIGN.md.
type ImageRangeGenerator struct {
	encoder     *ImageRangeEncoder
	region      subres.Region
	offset      Offset3D
	extent      Extent3D
	baseAddress uint64
	depthSliced bool

	aspectIdx uint32
	mip       uint32

	fullWidth  bool
	fullHeight bool

	layerZStart uint32
	layerZCount uint32
	layerZ      uint32
	y           uint32

	done    bool
	current IndexRange
}

// NewImageRangeGenerator returns a generator over the sub-region
// (offset, extent) of region, addressed by encoder.
//
// depthSliced selects, for a 3D image, whether the Z dimension should be
// walked one depth-slice at a time like an array layer (true) or treated
// as part of a single 3D subresource (false); it has no effect for a
// non-3D (array) image.
func NewImageRangeGenerator(
	encoder *ImageRangeEncoder,
	region subres.Region,
	offset Offset3D,
	extent Extent3D,
	baseAddress uint64,
	depthSliced bool,
) *ImageRangeGenerator {
	g := &ImageRangeGenerator{
		encoder:     encoder,
		region:      region,
		offset:      offset,
		extent:      extent,
		baseAddress: baseAddress,
		depthSliced: depthSliced,
	}
	g.aspectIdx = encoder.LowerBoundFromMask(region.AspectMask)
	g.mip = region.BaseMip
	if g.aspectIdx >= uint32(encoder.Limits().AspectCount) {
		g.done = true
		return g
	}
	g.loadSubres()
	g.computeCurrent()
	return g
}

func (g *ImageRangeGenerator) loadSubres() {
	info := g.encoder.GetSubresourceInfo(g.aspectIdx, g.mip)
	g.fullWidth = g.offset.X == 0 && g.extent.Width == info.Extent.Width
	g.fullHeight = g.fullWidth && g.offset.Y == 0 && g.extent.Height == info.Extent.Height

	if g.encoder.Is3D() && !g.depthSliced {
		g.layerZStart = uint32(g.offset.Z)
		g.layerZCount = g.extent.Depth
	} else {
		g.layerZStart = g.region.BaseLayer
		g.layerZCount = g.region.LayerCount
	}
	g.layerZ = g.layerZStart
	g.y = uint32(g.offset.Y)
}

func (g *ImageRangeGenerator) computeCurrent() {
	info := g.encoder.GetSubresourceInfo(g.aspectIdx, g.mip)
	var layerStride uint64
	if g.encoder.Is3D() && !g.depthSliced {
		layerStride = info.ZStepPitch
	} else {
		layerStride = info.LayerSpan
	}
	sliceBase := g.baseAddress + info.Layout.Offset + uint64(g.layerZ)*layerStride

	if g.fullHeight {
		span := uint64(g.extent.Height) * info.YStepPitch
		g.current = IndexRange{Begin: sliceBase, End: sliceBase + span}
		return
	}
	rowBase := sliceBase + uint64(g.y)*info.YStepPitch + uint64(g.offset.X)
	g.current = IndexRange{Begin: rowBase, End: rowBase + uint64(g.extent.Width)}
}

// Valid reports whether the generator has a current range.
func (g *ImageRangeGenerator) Valid() bool { return !g.done }

// Range returns the current memory-index range.
func (g *ImageRangeGenerator) Range() IndexRange { return g.current }

// Next advances past the current range.
func (g *ImageRangeGenerator) Next() *ImageRangeGenerator {
	if g.done {
		return g
	}
	if g.fullHeight {
		g.layerZ++
	} else {
		g.y++
		if g.y >= uint32(g.offset.Y)+g.extent.Height {
			g.y = uint32(g.offset.Y)
			g.layerZ++
		}
	}
	if g.layerZ >= g.layerZStart+g.layerZCount {
		g.mip++
		if g.mip >= g.region.BaseMip+g.region.MipCount {
			g.aspectIdx = g.encoder.LowerBoundFromMaskAfter(g.region.AspectMask, g.aspectIdx+1)
			g.mip = g.region.BaseMip
			if g.aspectIdx >= uint32(g.encoder.Limits().AspectCount) {
				g.done = true
				return g
			}
		}
		g.loadSubres()
	}
	g.computeCurrent()
	return g
}
