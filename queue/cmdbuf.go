// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package queue

// QueryObject identifies a single occlusion/timestamp/statistics query
// slot, scoped to a performance-counter pass.
type QueryObject struct {
	Query    uint64
	PerfPass int
}

// CommandBuffer is the contract a queue needs from whatever type models
// a recorded command buffer.
type CommandBuffer interface {
	BeginUse()
	EndUse()

	// IncSubmitCount bumps the buffer's outstanding-submission count,
	// recorded before Submit so concurrent readers never observe a
	// buffer as submitted without also seeing the bumped count.
	IncSubmitCount()
	// Submit notifies the command buffer it is being submitted to q as
	// part of the pass identified by perfPass; loc is a free-form
	// description of the call site, for diagnostics only.
	Submit(q *Queue, perfPass int, loc string)
	// LinkedCommandBuffers returns the secondary command buffers
	// referenced by this (primary) command buffer.
	LinkedCommandBuffers() []CommandBuffer
	// UpdatesQuery reports whether this command buffer writes to q.
	UpdatesQuery(q QueryObject) bool
	// Retire finalizes query state for perfPass. isQueryUpdatedAfter
	// answers, for a given query object, whether some later submission
	// on the same queue also updates it — a query is only safe to read
	// once nothing later will overwrite it.
	Retire(perfPass int, isQueryUpdatedAfter func(QueryObject) bool)
}

// CommandBufferSubmission references one command buffer within a
// Submission.
type CommandBufferSubmission struct {
	CB CommandBuffer
}
