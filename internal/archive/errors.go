package archive

import "errors"

var (
	// ErrOutputDir means the output directory is missing or not writable.
	// It is always raised before any archive file is created.
	ErrOutputDir = errors.New("output directory is not accessible")

	// ErrWrite means archive writing failed mid-stream. The partial file is
	// removed before the error is returned.
	ErrWrite = errors.New("archive write failed")
)
