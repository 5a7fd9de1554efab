package app

import (
	"context"
	"os"

	"xxh/pkg/types"
)

// JobCoordinator hashes a single job and prints its digest line
type JobCoordinator interface {
	// HashJob returns once the job's hashing goroutine has exited
	HashJob(ctx context.Context, job types.FileJob) (types.HashResult, error)
}

// JobPreparer opens a path as a FileJob
type JobPreparer interface {
	// PrepareJob returns the open file backing the job; the caller closes it
	PrepareJob(filePath string) (*os.File, types.FileJob, error)
}
