// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package imgrange maps a 3D sub-region of a GPU image to the dense
// memory-index ranges it occupies, given the byte-layout metadata of
// each of its subresources.
package imgrange

// Extent3D is a size in texels (or compressed texel blocks).
type Extent3D struct{ Width, Height, Depth uint32 }

// Extent2D is a 2D size in texels.
type Extent2D struct{ Width, Height uint32 }

// Offset3D is a signed texel-space coordinate.
type Offset3D struct{ X, Y, Z int32 }

// Layout describes where one subresource lives in device memory.
type Layout struct {
	Offset     uint64
	Size       uint64
	RowPitch   uint64
	DepthPitch uint64
	ArrayPitch uint64
}

// SubresInfo bundles a subresource's byte layout with the derived
// per-axis strides an ImageRangeGenerator walks with.
type SubresInfo struct {
	Layout Layout
	Extent Extent3D

	// YStepPitch is the memory-index distance between consecutive rows.
	YStepPitch uint64
	// ZStepPitch is the memory-index distance between consecutive depth
	// slices of a 3D image.
	ZStepPitch uint64
	// LayerSpan is the memory-index distance between consecutive array
	// layers.
	LayerSpan uint64
}

// NewSubresInfo derives YStepPitch/ZStepPitch/LayerSpan from a layout and
// extent, dividing by texelBlockExtent first when the format is
// compressed (texelBlockExtent == {1,1,1} for uncompressed formats).
func NewSubresInfo(layout Layout, extent Extent3D, texelBlockExtent Extent3D, texelSize float64) SubresInfo {
	blocksWide := divCeil(extent.Width, texelBlockExtent.Width)
	blocksHigh := divCeil(extent.Height, texelBlockExtent.Height)
	blocksDeep := divCeil(extent.Depth, texelBlockExtent.Depth)
	return SubresInfo{
		Layout:     layout,
		Extent:     Extent3D{blocksWide, blocksHigh, blocksDeep},
		YStepPitch: uint64(float64(layout.RowPitch) / texelSize),
		ZStepPitch: uint64(float64(layout.DepthPitch) / texelSize),
		LayerSpan:  uint64(float64(layout.ArrayPitch) / texelSize),
	}
}

func divCeil(a, b uint32) uint32 {
	if b <= 1 {
		return a
	}
	return (a + b - 1) / b
}
