// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import "github.com/gviegas/gpuval/subres"

// Usage is a mask indicating valid uses for a resource.
type Usage int

// Usage flags for Buffer and Image.
const (
	// The resource can be read in shaders.
	UShaderRead Usage = 1 << iota
	// The resource can be written in shaders.
	UShaderWrite
	// The resource can be sampled in shaders. Valid only for Image.
	UShaderSample
	// The resource can be used as a render target. Valid only for Image.
	URenderTarget
	// The resource can be used for any purpose.
	UGeneric Usage = 1<<iota - 1
)

// Buffer is the interface that defines a GPU buffer. The size of the
// buffer is fixed; a larger buffer requires creating a new one and
// copying data explicitly.
type Buffer interface {
	Destroyer

	// Visible returns whether the buffer is host visible. Non-visible
	// memory cannot be accessed by the CPU.
	Visible() bool

	// Bytes returns a slice of length Cap referring to the underlying
	// data, or nil if the buffer is not host visible.
	Bytes() []byte

	// Cap returns the capacity of the buffer in bytes, which may be
	// greater than the size requested at creation. Immutable.
	Cap() int64
}

// PixelFmt describes the format of a pixel.
type PixelFmt int

// Pixel formats.
const (
	// Color, 8-bit channels.
	RGBA8un PixelFmt = iota
	RGBA8sRGB
	BGRA8un
	BGRA8sRGB
	RG8un
	R8un
	// Color, 16-bit channels.
	RGBA16f
	RG16f
	R16f
	// Color, 32-bit channels.
	RGBA32f
	RG32f
	R32f
	// Depth/Stencil.
	D16un
	D32f
	S8ui
	D24unS8ui
	D32fS8ui
)

// AspectMask returns the canonical subres.Mask that a subresource of
// this format decomposes into (color; depth; stencil; or combined
// depth+stencil). It is the bridge between an image's storage format
// and the aspect-mask parameter tables subres.ParamsFor understands.
func (f PixelFmt) AspectMask() subres.Mask {
	switch f {
	case D16un, D32f:
		return subres.Mask(subres.AspectDepth)
	case S8ui:
		return subres.Mask(subres.AspectStencil)
	case D24unS8ui, D32fS8ui:
		return subres.Mask(subres.AspectDepth | subres.AspectStencil)
	default:
		return subres.Mask(subres.AspectColor)
	}
}

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}

// Off3D is a three-dimensional offset.
type Off3D struct {
	X, Y, Z int
}

// Image is the interface that defines a GPU image. Direct CPU access to
// image memory is not provided; copying data to or from an image
// requires a staging Buffer.
type Image interface {
	Destroyer

	// Format returns the image's pixel format. Immutable.
	Format() PixelFmt

	// Size3D returns the image's dimensions in texels. Immutable.
	Size3D() Dim3D

	// Layers returns the number of array layers. Immutable.
	Layers() int

	// Levels returns the number of mip levels. Immutable.
	Levels() int

	// NewView creates a new image view over a subresource range of the
	// image. All views created from a given image must be destroyed
	// before the image itself is destroyed.
	NewView(typ ViewType, layer, layers, level, levels int) (ImageView, error)
}

// ViewType is the type of a resource view.
type ViewType int

// View types.
const (
	IView1D ViewType = iota
	IView2D
	IView3D
	IViewCube
	IView1DArray
	IView2DArray
	IViewCubeArray
)

// ImageView is the interface that defines a typed view of an Image
// resource's subresource range.
type ImageView interface {
	Destroyer

	// Image returns the view's underlying image.
	Image() Image

	// Region returns the subresource range the view addresses, encoded
	// in subres terms (aspect mask plus base/count for mip and layer).
	Region() subres.Region
}

// Sync is the type of a synchronization scope.
type Sync int

// Synchronization scopes.
const (
	SVertexShading Sync = 1 << iota
	SFragmentShading
	SComputeShading
	SColorOutput
	SDSOutput
	SCopy
	SAll
	SNone Sync = 0
)

// Access is the type of a memory access scope.
type Access int

// Memory access scopes.
const (
	AColorRead Access = 1 << iota
	AColorWrite
	ADSRead
	ADSWrite
	AShaderRead
	AShaderWrite
	ACopyRead
	ACopyWrite
	ANone Access = 0
)

// Layout is the type of an image layout.
type Layout int

// Image layouts.
const (
	LUndefined Layout = iota
	LCommon
	LColorTarget
	LDSTarget
	LDSRead
	LCopySrc
	LCopyDst
	LShaderRead
	LPresent
)

// Barrier represents a synchronization barrier that is not scoped to a
// specific image subresource.
type Barrier struct {
	SyncBefore   Sync
	SyncAfter    Sync
	AccessBefore Access
	AccessAfter  Access
}

// Transition represents a layout transition over a specific image
// subresource range.
type Transition struct {
	Barrier

	LayoutBefore Layout
	LayoutAfter  Layout
	Image        Image
	Region       subres.Region
}

// Limits describes implementation limits relevant to image creation and
// subresource addressing. These may vary across drivers and devices.
type Limits struct {
	// Maximum width and height of 2D images.
	MaxImage2D int
	// Maximum width, height and depth of 3D images.
	MaxImage3D int
	// Maximum number of layers in an image.
	MaxLayers int
	// Maximum number of mip levels in an image.
	MaxLevels int
}

// CmdBuffer is the interface that defines a command buffer. Only the
// subset of the teacher's recording surface that exercises gpuval's
// core packages is modeled here: global and per-subresource barriers.
// Everything else a real command buffer records (draws, dispatches,
// copies, pipeline/descriptor state) is an external collaborator's
// concern, out of this repository's scope.
type CmdBuffer interface {
	Destroyer

	// Begin prepares the command buffer for recording.
	Begin() error

	// Barrier inserts a number of global barriers in the command
	// buffer.
	Barrier(b []Barrier)

	// Transition inserts a number of image layout transitions in the
	// command buffer.
	Transition(t []Transition)

	// End ends command recording and prepares the command buffer for
	// execution.
	End() error

	// Reset discards all recorded commands from the command buffer.
	Reset() error
}
