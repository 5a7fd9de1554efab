package app

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// HashOptions configures a hashing run
type HashOptions struct {
	Files []string // Paths hashed in order
}

// HashApp hashes files one after another and stops at the first failure
type HashApp struct {
	preparer    JobPreparer
	coordinator JobCoordinator
}

// NewHashApp creates a new hashing application
func NewHashApp(preparer JobPreparer, coordinator JobCoordinator) *HashApp {
	return &HashApp{
		preparer:    preparer,
		coordinator: coordinator,
	}
}

// Run hashes every file in opts. A file that cannot be opened or read
// aborts the run; files after it are not processed.
func (a *HashApp) Run(ctx context.Context, opts *HashOptions) error {
	if len(opts.Files) == 0 {
		return errors.New("at least one file is required")
	}

	for i, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.hashFile(ctx, path); err != nil {
			if skipped := len(opts.Files) - i - 1; skipped > 0 {
				log.Printf("Skipping %d remaining file(s)", skipped)
			}
			return err
		}
	}
	return nil
}

func (a *HashApp) hashFile(ctx context.Context, path string) error {
	file, job, err := a.preparer.PrepareJob(path)
	if err != nil {
		return err
	}
	// HashJob joins the hashing goroutine before returning, so the file is no longer in use
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing %s: %v", path, err)
		}
	}()

	if _, err := a.coordinator.HashJob(ctx, job); err != nil {
		return fmt.Errorf("hashing aborted: %w", err)
	}
	return nil
}
