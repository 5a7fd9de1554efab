package processor

import (
	"context"
	"fmt"
	"log"
	"time"

	"xxh/pkg/types"
	"xxh/pkg/utils"
)

// Task hashes one FileJob on its own goroutine.
// It is the only writer of its ProgressSlot and Completion.
type Task struct {
	job      types.FileJob
	reader   *ChunkReader
	hasher   Hasher
	progress *ProgressSlot
	done     *Completion
	finished chan struct{}
}

// NewTask prepares a task for job. Nothing is read until Start is called.
func NewTask(job types.FileJob, hasher Hasher, chunkSize int) *Task {
	return &Task{
		job:      job,
		reader:   NewChunkReader(job.Source, chunkSize),
		hasher:   hasher,
		progress: NewProgressSlot(),
		done:     NewCompletion(),
		finished: make(chan struct{}),
	}
}

// Progress returns the slot carrying the latest cumulative byte count
func (t *Task) Progress() *ProgressSlot {
	return t.progress
}

// Done returns the slot the final result is published on
func (t *Task) Done() *Completion {
	return t.done
}

// Start launches the hashing goroutine
func (t *Task) Start(ctx context.Context) {
	go t.run(ctx)
}

// Wait blocks until the hashing goroutine has exited
func (t *Task) Wait() {
	<-t.finished
}

func (t *Task) run(ctx context.Context) {
	defer close(t.finished)

	var res types.HashResult
	defer func() {
		if p := recover(); p != nil {
			res = types.HashResult{
				Bytes: t.reader.Consumed(),
				Err:   fmt.Errorf("%w: %v", ErrTaskPanicked, p),
			}
		}
		t.done.publish(res)
	}()

	start := time.Now()
	res = t.hash(ctx)
	if res.Failed() {
		log.Printf("Hashing aborted: %s after %d bytes: %v", t.job.Name, res.Bytes, res.Err)
		return
	}

	elapsed := time.Since(start)
	log.Printf("Hashing completed: %s, %d bytes in %s (%s)",
		t.job.Name, res.Bytes, elapsed.Round(time.Millisecond), utils.FormatRate(float64(res.Bytes)/elapsed.Seconds()))
}

// hash drives the read/consume loop until the source is exhausted
func (t *Task) hash(ctx context.Context) types.HashResult {
	var processed uint64
	for {
		if err := ctx.Err(); err != nil {
			return types.HashResult{Bytes: processed, Err: err}
		}

		chunk, err := t.reader.Fill()
		if err != nil {
			return types.HashResult{Bytes: processed, Err: err}
		}
		if len(chunk) == 0 {
			break
		}

		// A failing Hasher is fatal for the job
		if _, err := t.hasher.Write(chunk); err != nil {
			return types.HashResult{Bytes: processed, Err: fmt.Errorf("hash write: %w", err)}
		}
		processed += uint64(len(chunk))
		t.progress.TryPublish(processed)
		t.reader.Consume(len(chunk))
	}

	return types.HashResult{
		Digest: t.hasher.Sum64(),
		Bytes:  processed,
	}
}
