// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines the abstract GPU-API surface that gpuval's core
// packages (rangemap, subres, imgrange, queue) serve as a validation layer.
// It mirrors a real driver interface closely enough to exercise that core,
// without implementing or speaking to an actual device: no backend ever
// registers against it in this repository.
package driver

import (
	"errors"
)

// ErrNoDevice means that no suitable device could be found.
var ErrNoDevice = errors.New("driver: no suitable device found")

// ErrNoHostMemory means that host memory could not be allocated.
var ErrNoHostMemory = errors.New("driver: out of host memory")

// ErrFatal means that the driver is in an unrecoverable state. Upon
// encountering such an error, the application must destroy everything it
// created using the driver's GPU.
var ErrFatal = errors.New("driver: fatal error")

// Destroyer is the interface that wraps the Destroy method. Types that
// implement this interface may hold external resources that are not
// managed by the garbage collector, so Destroy must be called explicitly
// to release them.
type Destroyer interface {
	Destroy()
}

// GPU is the interface through which command buffers are created,
// recorded and committed for execution.
type GPU interface {
	// NewCmdBuffer creates a new command buffer.
	NewCmdBuffer() (CmdBuffer, error)

	// NewBuffer creates a new buffer.
	NewBuffer(size int64, visible bool, usg Usage) (Buffer, error)

	// NewImage creates a new image.
	NewImage(pf PixelFmt, size Dim3D, layers, levels, samples int, usg Usage) (Image, error)

	// Limits returns the implementation limits. They are immutable for
	// the lifetime of the GPU.
	Limits() Limits

	// Commit commits a batch of command buffers to the GPU for
	// execution and reports completion on ch.
	Commit(cb []CmdBuffer, ch chan<- error)
}
