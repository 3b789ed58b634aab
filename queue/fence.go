// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package queue

// Fence is the contract a queue needs from whatever type models a GPU
// fence — a device-to-host signal observable by the host.
type Fence interface {
	BeginUse()
	EndUse()

	// EnqueueSignal records that seq's submission on q will signal this
	// fence, and reports whether the fence is an externally-shared
	// (non-gpuval-owned) fence the caller must actively poll.
	EnqueueSignal(q *Queue, seq uint64) bool
	// Retire marks the fence's signal as having been observed.
	Retire()
	// NotifyAndWait is used for externally-shared fences: since no host
	// sync call is guaranteed to have queried them, the queue forces an
	// explicit poll-and-wait when the submission referencing them is
	// finalized.
	NotifyAndWait(loc string)
}
