// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package queue

// SwapchainHandle identifies a presentation swapchain, for the
// present-only-queue progress heuristic.
type SwapchainHandle uint64

// Submission is one ordered unit of work handed to PreSubmit: a batch of
// command buffers plus the semaphores and fence that synchronize it.
type Submission struct {
	// Seq is filled in by PreSubmit; zero until then.
	Seq uint64

	Wait   []SemaphoreInfo
	CBs    []CommandBufferSubmission
	Signal []SemaphoreInfo
	Fence  Fence

	PerfSubmitPass int
	Loc            string

	// Swapchain identifies the presentation target of a present-only
	// submission; zero for regular submissions.
	Swapchain SwapchainHandle

	// IsLastSubmission and HasExternalFence are set by PreSubmit.
	IsLastSubmission bool
	HasExternalFence bool

	done chan struct{}
}

// done is the Go stand-in for the C++ original's promise/shared_future
// pair: a channel closed exactly once, at retirement, that any number of
// concurrent Wait callers can select on.
func (s *Submission) ensureDone() {
	if s.done == nil {
		s.done = make(chan struct{})
	}
}

func (s *Submission) beginUse() {
	for _, w := range s.Wait {
		w.Semaphore.BeginUse()
	}
	for _, cb := range s.CBs {
		cb.CB.BeginUse()
	}
	for _, sig := range s.Signal {
		sig.Semaphore.BeginUse()
	}
	if s.Fence != nil {
		s.Fence.BeginUse()
	}
}

func (s *Submission) endUse() {
	for _, w := range s.Wait {
		w.Semaphore.EndUse()
	}
	for _, cb := range s.CBs {
		cb.CB.EndUse()
	}
	for _, sig := range s.Signal {
		sig.Semaphore.EndUse()
	}
	if s.Fence != nil {
		s.Fence.EndUse()
	}
}

// PreSubmitResult reports the sequence number PreSubmit assigned.
type PreSubmitResult struct {
	SubmissionSeq uint64
}

// SubState is a piece of state-tracking logic that hooks every stage of
// a submission's lifecycle. Sub-states are registered with a Queue under
// a stable key and looked up from outside this package.
type SubState interface {
	PreSubmit(submissions []*Submission)
	PostSubmit(submission *Submission)
	Retire(submission *Submission)
	Destroy()
}

// SubStateKey names a registered SubState.
type SubStateKey string

// PresentImageCounter reports how many images the named swapchain has,
// for UpdatePresentOnlyQueueProgress's heuristic. ok is false if the
// swapchain is no longer known.
type PresentImageCounter func(swapchain SwapchainHandle) (imageCount int, ok bool)
