// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package imgrange

import "github.com/gviegas/gpuval/subres"

// ImageRangeEncoder extends a subresource encoder with the per-aspect
// byte-layout metadata needed to turn a sub-region of an image — a 3D
// offset and extent inside one or more subresources — into memory-index
// ranges (see ImageRangeGenerator).
//
// The layout of each (aspect, mip) subresource is supplied by the caller
// at construction: deriving row/depth/array pitch from a GPU API's own
// layout rules is outside this package's scope (it belongs to whatever
// driver layer owns the image description).
type ImageRangeEncoder struct {
	*subres.RangeEncoder

	texelSizes           []float64
	subresInfo           []SubresInfo
	aspectSizes          []uint64
	aspectExtentDivisors []Extent2D

	totalSize        uint64
	texelBlockExtent Extent3D
	is3D             bool
	linearImage      bool
	yInterleave      bool
	isCompressed     bool
}

// NewImageRangeEncoder builds an ImageRangeEncoder over region.
//
// perSubres must hold one SubresInfo per (aspect, mip) pair addressed by
// region's full aspect mask and mip count, ordered so that
// perSubres[GetSubresourceIndex(aspectIndex, mip)] is valid; texelSizes
// holds one entry per aspect, in the same aspect order as
// subres.ParamsFor(region.AspectMask).Bits().
func NewImageRangeEncoder(
	region subres.Region,
	perSubres []SubresInfo,
	texelSizes []float64,
	texelBlockExtent Extent3D,
	is3D, linearImage, yInterleave bool,
) *ImageRangeEncoder {
	e := &ImageRangeEncoder{
		RangeEncoder:     subres.NewRangeEncoder(region),
		texelSizes:       texelSizes,
		subresInfo:       perSubres,
		texelBlockExtent: texelBlockExtent,
		is3D:             is3D,
		linearImage:      linearImage,
		yInterleave:      yInterleave,
		isCompressed:     texelBlockExtent.Width > 1 || texelBlockExtent.Height > 1 || texelBlockExtent.Depth > 1,
	}

	aspectCount := e.Limits().AspectCount
	e.aspectSizes = make([]uint64, aspectCount)
	e.aspectExtentDivisors = make([]Extent2D, aspectCount)

	var total uint64
	for a := 0; a < aspectCount; a++ {
		var aspectTotal uint64
		for m := uint32(0); m < region.MipCount; m++ {
			aspectTotal += perSubres[e.GetSubresourceIndex(uint32(a), m)].Layout.Size
		}
		e.aspectSizes[a] = aspectTotal
		e.aspectExtentDivisors[a] = Extent2D{texelBlockExtent.Width, texelBlockExtent.Height}
		total += aspectTotal
	}
	e.totalSize = total
	return e
}

// GetSubresourceIndex returns perSubres's index for (aspectIndex, mip).
func (e *ImageRangeEncoder) GetSubresourceIndex(aspectIndex uint32, mip uint32) int {
	return int(mip) + int(aspectIndex)*int(e.Limits().MipCount)
}

// GetSubresourceInfo returns the layout metadata for a subresource.
func (e *ImageRangeEncoder) GetSubresourceInfo(aspectIndex uint32, mip uint32) SubresInfo {
	return e.subresInfo[e.GetSubresourceIndex(aspectIndex, mip)]
}

// GetAspectSize returns the total byte size of one aspect, across all its
// mip levels.
func (e *ImageRangeEncoder) GetAspectSize(aspectIndex uint32) uint64 { return e.aspectSizes[aspectIndex] }

// GetAspectExtentDivisors returns the texel-block divisors applied to an
// aspect's extent (1x1 for uncompressed formats).
func (e *ImageRangeEncoder) GetAspectExtentDivisors(aspectIndex uint32) Extent2D {
	return e.aspectExtentDivisors[aspectIndex]
}

// TexelSize returns the size in bytes of one texel (or texel block) of an
// aspect.
func (e *ImageRangeEncoder) TexelSize(aspectIndex uint32) float64 { return e.texelSizes[aspectIndex] }

// IsLinearImage reports whether the image uses a linear (as opposed to
// implementation-opaque tiled) layout.
func (e *ImageRangeEncoder) IsLinearImage() bool { return e.linearImage }

// TotalSize returns the image's total encoded byte size across every
// aspect.
func (e *ImageRangeEncoder) TotalSize() uint64 { return e.totalSize }

// Is3D reports whether the image has a 3D (as opposed to array) extent.
func (e *ImageRangeEncoder) Is3D() bool { return e.is3D }

// IsInterleaveY reports whether consecutive rows interleave across
// aspects (relevant to some compressed multi-plane layouts).
func (e *ImageRangeEncoder) IsInterleaveY() bool { return e.yInterleave }

// IsCompressed reports whether the image uses a block-compressed format.
func (e *ImageRangeEncoder) IsCompressed() bool { return e.isCompressed }

// TexelBlockExtent returns the texel-block extent (1x1x1 for
// uncompressed formats).
func (e *ImageRangeEncoder) TexelBlockExtent() Extent3D { return e.texelBlockExtent }

// Encode2D returns the memory index addressed by offset within the
// subresource at (aspectIndex, mip, layer).
func (e *ImageRangeEncoder) Encode2D(aspectIndex, mip, layer uint32, offset Offset3D) uint64 {
	info := e.GetSubresourceInfo(aspectIndex, mip)
	return info.Layout.Offset + uint64(layer)*info.LayerSpan +
		uint64(offset.Y)*info.YStepPitch + uint64(offset.X)
}

// Encode3D returns the memory index addressed by offset within the 3D
// subresource at (aspectIndex, mip); 3D images have no array layers, so
// the Z coordinate plays the role layer plays in Encode2D.
func (e *ImageRangeEncoder) Encode3D(aspectIndex, mip uint32, offset Offset3D) uint64 {
	info := e.GetSubresourceInfo(aspectIndex, mip)
	return info.Layout.Offset + uint64(offset.Z)*info.ZStepPitch +
		uint64(offset.Y)*info.YStepPitch + uint64(offset.X)
}

// Decode returns the offset within the subresource at (aspectIndex, mip)
// whose Encode3D (or, for a non-3D image, Encode2D) produces index; for
// a non-3D image the array layer is returned in Z.
func (e *ImageRangeEncoder) Decode(aspectIndex, mip uint32, index uint64) Offset3D {
	info := e.GetSubresourceInfo(aspectIndex, mip)
	rel := index - info.Layout.Offset
	var z uint64
	if e.is3D && info.ZStepPitch > 0 {
		z = rel / info.ZStepPitch
		rel -= z * info.ZStepPitch
	} else if info.LayerSpan > 0 {
		z = rel / info.LayerSpan
		rel -= z * info.LayerSpan
	}
	y := rel / info.YStepPitch
	x := rel - y*info.YStepPitch
	return Offset3D{X: int32(x), Y: int32(y), Z: int32(z)}
}
