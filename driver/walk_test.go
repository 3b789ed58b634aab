// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"testing"

	"github.com/gviegas/gpuval/subres"
)

// mockImage is a minimal Image used to exercise ImageEncoder and
// WalkTransitions without a real backend.
type mockImage struct {
	fmt    PixelFmt
	size   Dim3D
	layers int
	levels int
}

func (m *mockImage) Destroy()         {}
func (m *mockImage) Format() PixelFmt { return m.fmt }
func (m *mockImage) Size3D() Dim3D    { return m.size }
func (m *mockImage) Layers() int      { return m.layers }
func (m *mockImage) Levels() int      { return m.levels }
func (m *mockImage) NewView(typ ViewType, layer, layers, level, levels int) (ImageView, error) {
	return nil, nil
}

func TestPixelFmtAspectMask(t *testing.T) {
	cases := []struct {
		f    PixelFmt
		want subres.Mask
	}{
		{RGBA8un, subres.Mask(subres.AspectColor)},
		{R32f, subres.Mask(subres.AspectColor)},
		{D16un, subres.Mask(subres.AspectDepth)},
		{D32f, subres.Mask(subres.AspectDepth)},
		{S8ui, subres.Mask(subres.AspectStencil)},
		{D24unS8ui, subres.Mask(subres.AspectDepth | subres.AspectStencil)},
		{D32fS8ui, subres.Mask(subres.AspectDepth | subres.AspectStencil)},
	}
	for _, c := range cases {
		if got := c.f.AspectMask(); got != c.want {
			t.Errorf("PixelFmt(%d).AspectMask: got %v, want %v", c.f, got, c.want)
		}
	}
}

func TestImageEncoderFullRange(t *testing.T) {
	img := &mockImage{fmt: D24unS8ui, size: Dim3D{Width: 256, Height: 256, Depth: 1}, layers: 3, levels: 2}
	enc := ImageEncoder(img)

	// 2 aspects * 2 mips * 3 layers == 12 distinct subresources.
	const want = 2 * 2 * 3
	seen := make(map[uint64]subres.Subresource)
	for _, asp := range []subres.Aspect{subres.AspectDepth, subres.AspectStencil} {
		for mip := uint32(0); mip < 2; mip++ {
			for layer := uint32(0); layer < 3; layer++ {
				aspIdx := enc.LowerBoundFromMask(subres.Mask(asp))
				sr := subres.Subresource{Aspect: asp, Mip: mip, Layer: layer, AspectIndex: aspIdx}
				idx := enc.Encode(sr)
				if d := enc.Decode(idx); d != sr {
					t.Fatalf("Decode(Encode(%+v)) = %+v", sr, d)
				}
				seen[idx] = sr
			}
		}
	}
	if len(seen) != want {
		t.Fatalf("got %d distinct indices, want %d", len(seen), want)
	}
}

func TestWalkTransitionsSingleMipAllLayers(t *testing.T) {
	img := &mockImage{fmt: RGBA8un, size: Dim3D{Width: 64, Height: 64, Depth: 1}, layers: 4, levels: 1}
	tr := Transition{
		Image: img,
		Region: subres.Region{
			AspectMask: subres.Mask(subres.AspectColor),
			BaseMip:    0,
			MipCount:   1,
			BaseLayer:  0,
			LayerCount: 4,
		},
	}
	got := WalkTransitions([]Transition{tr})
	if len(got) != 1 {
		t.Fatalf("len(WalkTransitions) = %d, want 1", len(got))
	}
	ranges := got[0]
	if len(ranges) != 1 {
		t.Fatalf("len(ranges) = %d, want 1 (single contiguous mip/layer span)", len(ranges))
	}
	if ranges[0].Begin != 0 || ranges[0].End != 4 {
		t.Errorf("range = %+v, want [0,4)", ranges[0])
	}
}

func TestWalkTransitionsSameImageDistinctMips(t *testing.T) {
	img := &mockImage{fmt: RGBA8un, size: Dim3D{Width: 32, Height: 32, Depth: 1}, layers: 2, levels: 2}
	region := subres.Region{AspectMask: subres.Mask(subres.AspectColor), BaseMip: 0, MipCount: 1, BaseLayer: 0, LayerCount: 2}
	batch := []Transition{
		{Image: img, Region: region},
		{Image: img, Region: subres.Region{AspectMask: subres.Mask(subres.AspectColor), BaseMip: 1, MipCount: 1, BaseLayer: 0, LayerCount: 2}},
	}
	got := WalkTransitions(batch)
	if len(got) != 2 {
		t.Fatalf("len(WalkTransitions) = %d, want 2", len(got))
	}
	if got[0][0].Begin == got[1][0].Begin {
		t.Errorf("mip 0 and mip 1 ranges must differ: %+v vs %+v", got[0], got[1])
	}
}
