// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package queue

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
)

// NoSeqLimit, passed to Notify/Wait/NotifyAndWait, means "the current
// latest sequence number".
const NoSeqLimit = ^uint64(0)

// ErrClosed is returned by PreSubmit once a Queue has been destroyed.
var ErrClosed = errors.New("gpuval/queue: queue is closed")

// Options configures a Queue at construction.
type Options struct {
	// Logger receives diagnostics (wait timeouts, present-only-queue
	// heuristic decisions). Defaults to log.Default().
	Logger *log.Logger

	// IsPresentOnly marks a queue used only for vkQueuePresent-style
	// submissions, enabling UpdatePresentOnlyQueueProgress.
	IsPresentOnly bool
}

// Queue serializes submission bookkeeping for one GPU queue: PreSubmit
// enqueues, a dedicated worker goroutine retires submissions in order,
// and Wait/Notify let other goroutines observe and drive that progress.
//
// Only one goroutine may call PreSubmit on a given Queue at a time (the
// GPU-API itself requires external synchronization per queue); Wait,
// Notify and sub-state reads may be called concurrently from any
// goroutine.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond

	seq        atomic.Uint64
	requestSeq uint64

	submissions       []*Submission
	timelineWaitCount uint32

	subStates map[SubStateKey]SubState

	started  bool
	exit     bool
	workerWg sync.WaitGroup

	logger        *log.Logger
	isPresentOnly bool
}

// New returns an idle Queue; its worker goroutine is started lazily on
// the first PreSubmit call.
func New(opts Options) *Queue {
	q := &Queue{
		subStates:     make(map[SubStateKey]SubState),
		logger:        opts.Logger,
		isPresentOnly: opts.IsPresentOnly,
	}
	if q.logger == nil {
		q.logger = log.Default()
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// RegisterSubState attaches a SubState under key; must be called before
// any submission that should observe it.
func (q *Queue) RegisterSubState(key SubStateKey, s SubState) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subStates[key] = s
}

// PreSubmit assigns sequence numbers to submissions, in order, records
// their wait/signal semaphores and fence, enqueues them for the worker,
// and starts the worker if this is the queue's first submission.
func (q *Queue) PreSubmit(submissions []*Submission) (PreSubmitResult, error) {
	var result PreSubmitResult
	if len(submissions) == 0 {
		return result, nil
	}
	submissions[len(submissions)-1].IsLastSubmission = true

	q.mu.Lock()
	for _, s := range q.subStates {
		s.PreSubmit(submissions)
	}
	q.mu.Unlock()

	for _, s := range submissions {
		for _, cbSub := range s.CBs {
			for _, secondary := range cbSub.CB.LinkedCommandBuffers() {
				secondary.IncSubmitCount()
			}
			cbSub.CB.IncSubmitCount()
			cbSub.CB.Submit(q, s.PerfSubmitPass, s.Loc)
		}

		s.Seq = q.seq.Add(1)
		result.SubmissionSeq = s.Seq
		s.ensureDone()
		s.beginUse()

		q.mu.Lock()
		for _, w := range s.Wait {
			w.Semaphore.EnqueueWait(SubmissionRef{Queue: q, Seq: s.Seq}, w.Payload)
			if w.Semaphore.Type() == Timeline {
				q.timelineWaitCount++
			}
		}
		for _, sig := range s.Signal {
			sig.Semaphore.EnqueueSignal(SubmissionRef{Queue: q, Seq: s.Seq}, sig.Payload)
		}
		if s.Fence != nil {
			s.HasExternalFence = s.Fence.EnqueueSignal(q, s.Seq)
		}

		if q.exit {
			q.mu.Unlock()
			return result, ErrClosed
		}
		q.submissions = append(q.submissions, s)
		if !q.started {
			q.started = true
			q.workerWg.Add(1)
			go q.threadFunc()
		}
		q.mu.Unlock()
	}
	return result, nil
}

// PostSubmit runs post-submission hooks for the most recently enqueued
// submission, including the external-fence forced wait.
func (q *Queue) PostSubmit() {
	q.mu.Lock()
	var last *Submission
	if len(q.submissions) > 0 {
		last = q.submissions[len(q.submissions)-1]
	}
	subs := make([]SubState, 0, len(q.subStates))
	for _, s := range q.subStates {
		subs = append(subs, s)
	}
	q.mu.Unlock()
	if last == nil {
		return
	}
	for _, s := range subs {
		s.PostSubmit(last)
	}
	if last.HasExternalFence {
		last.Fence.NotifyAndWait(last.Loc)
	}
}

// Notify raises the worker's request sequence to at most untilSeq
// (NoSeqLimit meaning the current latest) and wakes it.
func (q *Queue) Notify(untilSeq uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if untilSeq == NoSeqLimit {
		untilSeq = q.seq.Load()
	}
	if q.requestSeq < untilSeq {
		q.requestSeq = untilSeq
	}
	q.cond.Signal()
}

// Wait blocks until the submission numbered untilSeq (NoSeqLimit meaning
// the current latest) has been retired, or ctx is done. If the
// submission is already retired, or was never submitted, it returns
// immediately. A ctx cancellation produces a logged diagnostic rather
// than a silent indefinite block.
func (q *Queue) Wait(ctx context.Context, untilSeq uint64) {
	q.mu.Lock()
	if untilSeq == NoSeqLimit {
		untilSeq = q.seq.Load()
	}
	if len(q.submissions) == 0 || untilSeq < q.submissions[0].Seq {
		q.mu.Unlock()
		return
	}
	index := untilSeq - q.submissions[0].Seq
	if index >= uint64(len(q.submissions)) {
		// untilSeq names a submission not yet enqueued; nothing to wait on.
		q.mu.Unlock()
		return
	}
	done := q.submissions[index].done
	q.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		q.logger.Printf(
			"gpuval/queue: timed out waiting for queue state to update (this is most likely a validation bug): seq=%d until=%d: %v",
			q.seq.Load(), untilSeq, ctx.Err())
	}
}

// NotifyAndWait is the composition of Notify and Wait.
func (q *Queue) NotifyAndWait(ctx context.Context, untilSeq uint64) {
	q.Notify(untilSeq)
	q.Wait(ctx, untilSeq)
}

// FindTimelineWaitWithoutResolvingSignal returns the earliest
// timeline-semaphore wait at or before untilSeq that has no resolving
// signal anywhere in the system.
//
// Runs in two phases to avoid a lock-order inversion with a semaphore's
// own retirement path, which may need to acquire the queue lock while
// holding the semaphore lock: phase 1 snapshots candidate waits under
// the queue lock and releases it; phase 2 queries each semaphore only
// after the queue lock is gone.
func (q *Queue) FindTimelineWaitWithoutResolvingSignal(untilSeq uint64) (SemaphoreInfo, bool) {
	var timelineWaits []SemaphoreInfo

	q.mu.Lock()
	processed := uint32(0)
	for i := 0; i < len(q.submissions) && processed < q.timelineWaitCount; i++ {
		s := q.submissions[i]
		if s.Seq > untilSeq {
			break
		}
		for _, w := range s.Wait {
			if w.Semaphore.Type() == Timeline {
				timelineWaits = append(timelineWaits, w)
				processed++
			}
		}
	}
	q.mu.Unlock()

	for _, w := range timelineWaits {
		if !w.Semaphore.HasResolvingTimelineSignal(w.Payload) {
			return w, true
		}
	}
	return SemaphoreInfo{}, false
}

// UpdatePresentOnlyQueueProgress is a heuristic for present-only queues:
// an error-free program cannot have more outstanding present requests
// for a swapchain than that swapchain has images, so once it does, the
// oldest such request must in fact have completed. count reports a
// swapchain's current image count.
func (q *Queue) UpdatePresentOnlyQueueProgress(count PresentImageCounter) {
	if !q.isPresentOnly {
		return
	}
	var seqToAdvance uint64

	q.mu.Lock()
	active := make(map[SwapchainHandle]int)
	for _, s := range q.submissions {
		active[s.Swapchain]++
	}
	var overSubscribed SwapchainHandle
	found := false
	for sc, n := range active {
		if imageCount, ok := count(sc); ok && n > imageCount {
			overSubscribed = sc
			found = true
			break
		}
	}
	if found {
		for _, s := range q.submissions {
			if s.Swapchain == overSubscribed {
				seqToAdvance = s.Seq
				break
			}
		}
	}
	q.mu.Unlock()

	if seqToAdvance != 0 {
		q.logger.Printf(
			"gpuval/queue: present-only queue has more outstanding presents for swapchain %d than it has images; advancing to seq=%d",
			overSubscribed, seqToAdvance)
		q.Notify(seqToAdvance)
	}
}

// Destroy stops the worker goroutine (if running) and destroys every
// registered sub-state. The Queue must not be used afterward.
func (q *Queue) Destroy() {
	q.mu.Lock()
	q.exit = true
	started := q.started
	q.cond.Broadcast()
	q.mu.Unlock()

	if started {
		q.workerWg.Wait()
	}

	q.mu.Lock()
	subs := make([]SubState, 0, len(q.subStates))
	for _, s := range q.subStates {
		subs = append(subs, s)
	}
	q.mu.Unlock()
	for _, s := range subs {
		s.Destroy()
	}
}

// nextSubmission blocks until the oldest unretired submission is ready
// to retire (its seq is at or below requestSeq), or the queue is being
// destroyed. The returned submission stays on the deque until Retire has
// finished with it, so concurrent Wait callers can still find its
// shared-completion channel.
func (q *Queue) nextSubmission() *Submission {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.exit && (len(q.submissions) == 0 || q.requestSeq < q.submissions[0].Seq) {
		q.cond.Wait()
	}
	if q.exit {
		return nil
	}
	return q.submissions[0]
}

func (q *Queue) queryUpdatedAfter(query QueryObject) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, s := range q.submissions {
		if i == 0 {
			// The current submission is still on the deque; skip it.
			continue
		}
		for _, cbSub := range s.CBs {
			if query.PerfPass != s.PerfSubmitPass {
				continue
			}
			if cbSub.CB.UpdatesQuery(query) {
				return true
			}
		}
	}
	return false
}

func (q *Queue) retire(s *Submission) {
	q.mu.Lock()
	subs := make([]SubState, 0, len(q.subStates))
	for _, sub := range q.subStates {
		subs = append(subs, sub)
	}
	q.mu.Unlock()
	for _, sub := range subs {
		sub.Retire(s)
	}

	s.endUse()

	q.mu.Lock()
	for _, w := range s.Wait {
		if w.Semaphore.Type() == Timeline {
			q.timelineWaitCount--
		}
	}
	q.mu.Unlock()
	for _, w := range s.Wait {
		w.Semaphore.RetireWait(q, w.Payload, s.Loc, true)
	}

	for _, cbSub := range s.CBs {
		for _, secondary := range cbSub.CB.LinkedCommandBuffers() {
			secondary.Retire(s.PerfSubmitPass, q.queryUpdatedAfter)
		}
		cbSub.CB.Retire(s.PerfSubmitPass, q.queryUpdatedAfter)
	}
	for _, sig := range s.Signal {
		sig.Semaphore.RetireSignal(sig.Payload)
	}
	if s.Fence != nil {
		s.Fence.Retire()
	}
}

// threadFunc rolls the queue forward one submission at a time until
// Destroy asks it to stop.
func (q *Queue) threadFunc() {
	defer q.workerWg.Done()
	for {
		s := q.nextSubmission()
		if s == nil {
			return
		}
		q.retire(s)
		q.mu.Lock()
		close(s.done)
		q.submissions = q.submissions[1:]
		q.mu.Unlock()
	}
}
