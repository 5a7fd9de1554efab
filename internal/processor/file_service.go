package processor

import (
	"fmt"
	"log"
	"os"

	"xxh/pkg/types"
	"xxh/pkg/utils"
)

// FileService handles basic file operations
type FileService struct{}

// NewFileService creates a new file service
func NewFileService() *FileService {
	return &FileService{}
}

// openReader opens a file for reading
func (f *FileService) openReader(filePath string) (*os.File, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceOpen, err)
	}

	return file, nil
}

// PrepareJob opens filePath and describes it as a FileJob.
// The caller owns the returned file and must close it once the job's task has exited.
func (f *FileService) PrepareJob(filePath string) (*os.File, types.FileJob, error) {
	file, err := f.openReader(filePath)
	if err != nil {
		return nil, types.FileJob{}, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, types.FileJob{}, fmt.Errorf("%w: failed to get file info: %w", ErrSourceOpen, err)
	}
	if stat.IsDir() {
		file.Close()
		return nil, types.FileJob{}, fmt.Errorf("%w: %s is a directory", ErrSourceOpen, filePath)
	}

	job := types.FileJob{
		Source: file,
		Name:   filePath,
	}
	// Pipes and character devices report a meaningless size
	if stat.Mode().IsRegular() {
		job.Size = stat.Size()
		job.SizeKnown = true
		log.Printf("File prepared for hashing: %s, size: %d bytes (%s)",
			filePath, stat.Size(), utils.FormatBytes(uint64(stat.Size())))
	} else {
		log.Printf("File prepared for hashing: %s, size unknown", filePath)
	}

	return file, job, nil
}
