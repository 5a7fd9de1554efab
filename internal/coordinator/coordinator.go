package coordinator

import (
	"context"
	"fmt"
	"log"
	"time"

	"xxh/internal/config"
	"xxh/internal/processor"
	"xxh/internal/reporter"
	"xxh/internal/ui"
	"xxh/pkg/types"
	"xxh/pkg/utils"
)

// HashCoordinator runs one job at a time: the hashing task on its own
// goroutine and the progress monitor on the caller's goroutine.
type HashCoordinator struct {
	config   *config.Config
	renderer ui.ProgressRenderer
}

// NewHashCoordinator creates a new coordinator
func NewHashCoordinator(cfg *config.Config, renderer ui.ProgressRenderer) *HashCoordinator {
	return &HashCoordinator{
		config:   cfg,
		renderer: renderer,
	}
}

// HashJob hashes job while redrawing its progress, then prints the digest line.
// It returns only after the hashing goroutine has exited, so the caller may
// release the job's source afterwards.
func (c *HashCoordinator) HashJob(ctx context.Context, job types.FileJob) (types.HashResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := c.renderer.Start(job); err != nil {
		return types.HashResult{}, fmt.Errorf("failed to start progress display: %w", err)
	}

	task := processor.NewTask(job, processor.NewXXHash(c.config.Hash.Seed), c.config.Hash.ChunkSize)
	tracker := reporter.NewTracker(job)
	task.Start(ctx)

	renderErr := c.monitor(task, job, tracker)
	if renderErr != nil {
		// Stop hashing at the next chunk boundary; the result is still drained below
		cancel()
	}

	task.Wait()
	res := task.Done().Result()

	if renderErr != nil {
		return res, fmt.Errorf("failed to display progress: %w", renderErr)
	}
	if res.Failed() {
		if err := c.renderer.Abort(job); err != nil {
			log.Printf("Failed to clear progress for %s: %v", job.Name, err)
		}
		return res, fmt.Errorf("failed to hash %s: %w", job.Name, res.Err)
	}

	// Final frame at the true byte count, replaced by the digest line
	final := tracker.Sample(res.Bytes)
	if err := c.renderer.Update(job, final); err != nil {
		return res, fmt.Errorf("failed to display progress: %w", err)
	}
	if err := c.renderer.Finish(job, res); err != nil {
		return res, err
	}

	log.Printf("Digest printed: %s, %s in %s (%s)",
		job.Name, utils.FormatBytes(res.Bytes), final.Elapsed.Round(time.Millisecond), final.Rate())
	return res, nil
}

// monitor polls the task until its result is published, rendering at most
// one progress sample per poll interval
func (c *HashCoordinator) monitor(task *processor.Task, job types.FileJob, tracker *reporter.Tracker) error {
	ticker := time.NewTicker(c.config.Progress.Interval)
	defer ticker.Stop()

	for !task.Done().Ready() {
		if sample, ok := task.Progress().TryTake(); ok {
			if err := c.renderer.Update(job, tracker.Sample(sample)); err != nil {
				return err
			}
		}
		<-ticker.C
	}
	return nil
}
