package types

import "io"

// FileJob is one unit of hashing work
type FileJob struct {
	Source    io.Reader // Byte stream to hash, read exactly once
	Name      string    // Display name, printed next to the digest
	Size      int64     // Total size in bytes, valid only when SizeKnown is set
	SizeKnown bool      // False for pipes and other unsized sources
}

// ProgressSample is the cumulative number of bytes hashed so far
type ProgressSample = uint64

// HashResult is published exactly once per job by the hashing task
type HashResult struct {
	Digest uint64 // Final digest, meaningless when Err is set
	Bytes  uint64 // Total bytes consumed by the hasher
	Err    error  // Non-nil when the job terminated abnormally
}

// Failed reports whether the job terminated without a digest
func (r HashResult) Failed() bool {
	return r.Err != nil
}
