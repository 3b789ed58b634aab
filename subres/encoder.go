// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package subres

// Subresource is a single (aspect, mip, layer) coordinate, plus the
// index of Aspect within its encoder's aspect list.
type Subresource struct {
	Aspect      Aspect
	Mip         uint32
	Layer       uint32
	AspectIndex uint32
}

// Region describes a rectangular subresource range: an aspect mask plus
// a contiguous span of mip levels and array layers.
type Region struct {
	AspectMask Mask
	BaseMip    uint32
	MipCount   uint32
	BaseLayer  uint32
	LayerCount uint32
}

// Limits records the shape an encoder was built for.
type Limits struct {
	AspectCount int
	MipCount    uint32
	LayerCount  uint32
	AspectMask  Mask
}

// RangeEncoder bijectively encodes Subresource coordinates in
// (aspect, mip, layer) order — aspect slowest-varying, layer
// fastest-varying — into a dense index space.
//
// Three encode/decode specializations are chosen once at construction,
// based on whether the range has more than one mip level and more than
// one array layer, and dispatched through stored function values
// (subresource_adapter.h's RangeEncoder makes the same choice through
// stored member-function pointers).
type RangeEncoder struct {
	limits     Limits
	fullRegion Region
	bits       []Aspect
	aspectBase [MaxSupportedAspects]uint64
	encodeFn   func(Subresource) uint64
	decodeFn   func(uint64) Subresource
}

// NewRangeEncoder builds an encoder for the given full subresource
// region; full.AspectMask must be a canonical combination (see
// ParamsFor).
func NewRangeEncoder(full Region) *RangeEncoder {
	p := ParamsFor(full.AspectMask)
	e := &RangeEncoder{
		fullRegion: full,
		bits:       p.Bits(),
		limits: Limits{
			AspectCount: p.Count(),
			MipCount:    full.MipCount,
			LayerCount:  full.LayerCount,
			AspectMask:  full.AspectMask,
		},
	}
	for i := 0; i < p.Count(); i++ {
		e.aspectBase[i] = uint64(i) * uint64(full.MipCount) * uint64(full.LayerCount)
	}
	switch {
	case full.MipCount > 1 && full.LayerCount > 1:
		e.encodeFn, e.decodeFn = e.encodeMipArray, e.decodeMipArray
	case full.MipCount > 1:
		e.encodeFn, e.decodeFn = e.encodeMipOnly, e.decodeMipOnly
	default:
		e.encodeFn, e.decodeFn = e.encodeArrayOnly, e.decodeArrayOnly
	}
	return e
}

// InRange reports whether subres falls within the encoder's limits.
func (e *RangeEncoder) InRange(subres Subresource) bool {
	return subres.Mip < e.limits.MipCount && subres.Layer < e.limits.LayerCount &&
		Mask(subres.Aspect)&e.limits.AspectMask != 0
}

// InRangeRegion reports whether every subresource in r falls within the
// encoder's limits.
func (e *RangeEncoder) InRangeRegion(r Region) bool {
	return r.BaseMip < e.limits.MipCount && r.BaseMip+r.MipCount <= e.limits.MipCount &&
		r.BaseLayer < e.limits.LayerCount && r.BaseLayer+r.LayerCount <= e.limits.LayerCount &&
		r.AspectMask&e.limits.AspectMask != 0
}

// Encode returns the dense index for subres.
func (e *RangeEncoder) Encode(subres Subresource) uint64 { return e.encodeFn(subres) }

// Decode returns the Subresource coordinate for a dense index.
func (e *RangeEncoder) Decode(index uint64) Subresource { return e.decodeFn(index) }

// BeginSubresource returns the first Subresource addressed by r.
func (e *RangeEncoder) BeginSubresource(r Region) Subresource {
	if !e.InRangeRegion(r) {
		return Subresource{AspectIndex: uint32(e.limits.AspectCount)}
	}
	aspectIdx := e.LowerBoundFromMask(r.AspectMask)
	return Subresource{Aspect: e.bits[aspectIdx], Mip: r.BaseMip, Layer: r.BaseLayer, AspectIndex: aspectIdx}
}

// Begin returns the first Subresource of the encoder's full region.
func (e *RangeEncoder) Begin() Subresource {
	return Subresource{Aspect: e.bits[0], AspectIndex: 0}
}

// LowerBoundFromMask returns the aspect index of the lowest bit in mask
// that also appears in the encoder's aspect mask. mask must intersect
// the encoder's aspect mask.
func (e *RangeEncoder) LowerBoundFromMask(mask Mask) uint32 {
	for i, b := range e.bits {
		if mask&Mask(b) != 0 {
			return uint32(i)
		}
	}
	panic("subres: mask does not intersect encoder's aspect mask")
}

// LowerBoundFromMaskAfter returns the aspect index, at or after start, of
// the lowest bit in mask that also appears in the encoder's aspect mask,
// or AspectCount if none remains. Used to seek the next aspect after the
// one just processed.
func (e *RangeEncoder) LowerBoundFromMaskAfter(mask Mask, start uint32) uint32 {
	for i := start; i < uint32(e.limits.AspectCount); i++ {
		if mask&Mask(e.bits[i]) != 0 {
			return i
		}
	}
	return uint32(e.limits.AspectCount)
}

// AspectSize returns the number of encoded indices per aspect (mip count
// times layer count).
func (e *RangeEncoder) AspectSize() uint64 {
	return uint64(e.limits.MipCount) * uint64(e.limits.LayerCount)
}

// MipSize returns the number of encoded indices per mip level (the layer
// count).
func (e *RangeEncoder) MipSize() uint64 { return uint64(e.limits.LayerCount) }

// Limits returns the shape the encoder was built for.
func (e *RangeEncoder) Limits() Limits { return e.limits }

// FullRegion returns the region passed to NewRangeEncoder.
func (e *RangeEncoder) FullRegion() Region { return e.fullRegion }

// SubresourceCount returns the total number of distinct subresources the
// encoder addresses.
func (e *RangeEncoder) SubresourceCount() uint64 {
	return e.AspectSize() * uint64(e.limits.AspectCount)
}

// AspectMask returns the encoder's full aspect mask.
func (e *RangeEncoder) AspectMask() Mask { return e.limits.AspectMask }

// AspectBit returns the aspect bit at aspectIndex.
func (e *RangeEncoder) AspectBit(aspectIndex uint32) Aspect { return e.bits[aspectIndex] }

// AspectBase returns the first encoded index of aspectIndex.
func (e *RangeEncoder) AspectBase(aspectIndex uint32) uint64 { return e.aspectBase[aspectIndex] }

// MakeSubresource fills in the Aspect bit for a (aspect_index, mip,
// layer) coordinate.
func (e *RangeEncoder) MakeSubresource(aspectIndex uint32, mip, layer uint32) Subresource {
	return Subresource{Aspect: e.bits[aspectIndex], Mip: mip, Layer: layer, AspectIndex: aspectIndex}
}

func (e *RangeEncoder) encodeMipArray(s Subresource) uint64 {
	return e.aspectBase[s.AspectIndex] + uint64(s.Mip)*e.MipSize() + uint64(s.Layer)
}

func (e *RangeEncoder) encodeMipOnly(s Subresource) uint64 {
	return e.aspectBase[s.AspectIndex] + uint64(s.Mip)
}

func (e *RangeEncoder) encodeArrayOnly(s Subresource) uint64 {
	return e.aspectBase[s.AspectIndex] + uint64(s.Layer)
}

func (e *RangeEncoder) aspectIndexFor(index uint64) uint32 {
	aspectIdx := uint32(0)
	for i := e.limits.AspectCount - 1; i > 0; i-- {
		if index >= e.aspectBase[i] {
			aspectIdx = uint32(i)
			break
		}
	}
	return aspectIdx
}

func (e *RangeEncoder) decodeMipArray(index uint64) Subresource {
	aspectIdx := e.aspectIndexFor(index)
	base := index - e.aspectBase[aspectIdx]
	mipSize := e.MipSize()
	mip := base / mipSize
	layer := base - mip*mipSize
	return Subresource{Aspect: e.bits[aspectIdx], Mip: uint32(mip), Layer: uint32(layer), AspectIndex: aspectIdx}
}

func (e *RangeEncoder) decodeMipOnly(index uint64) Subresource {
	aspectIdx := e.aspectIndexFor(index)
	base := index - e.aspectBase[aspectIdx]
	return Subresource{Aspect: e.bits[aspectIdx], Mip: uint32(base), AspectIndex: aspectIdx}
}

func (e *RangeEncoder) decodeArrayOnly(index uint64) Subresource {
	aspectIdx := e.aspectIndexFor(index)
	base := index - e.aspectBase[aspectIdx]
	return Subresource{Aspect: e.bits[aspectIdx], Layer: uint32(base), AspectIndex: aspectIdx}
}
