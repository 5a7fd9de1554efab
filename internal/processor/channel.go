package processor

import "xxh/pkg/types"

// ProgressSlot is a single-slot mailbox carrying the latest progress sample.
// Publishing never blocks: a sample offered while the slot is occupied is
// dropped, since the pending one is recent enough for display.
type ProgressSlot struct {
	ch chan types.ProgressSample
}

// NewProgressSlot creates an empty slot
func NewProgressSlot() *ProgressSlot {
	return &ProgressSlot{ch: make(chan types.ProgressSample, 1)}
}

// TryPublish offers a sample and reports whether it was accepted
func (s *ProgressSlot) TryPublish(sample types.ProgressSample) bool {
	select {
	case s.ch <- sample:
		return true
	default:
		return false
	}
}

// TryTake removes the pending sample, if any
func (s *ProgressSlot) TryTake() (types.ProgressSample, bool) {
	select {
	case sample := <-s.ch:
		return sample, true
	default:
		return 0, false
	}
}

// Completion is a single-shot handoff of the final HashResult
type Completion struct {
	ch chan types.HashResult
}

// NewCompletion creates an empty completion slot
func NewCompletion() *Completion {
	return &Completion{ch: make(chan types.HashResult, 1)}
}

// publish stores the result. It is called exactly once per job, so the
// buffered send never blocks.
func (c *Completion) publish(res types.HashResult) {
	c.ch <- res
}

// Ready reports whether the result has been published
func (c *Completion) Ready() bool {
	return len(c.ch) > 0
}

// Result receives the published result, blocking until it is available
func (c *Completion) Result() types.HashResult {
	return <-c.ch
}
