package light

import "errors"

var (
	// ErrInvalidBlockIterator is raised when a dirty-queue entry no longer
	// points at a loaded chunk by the time it is processed; the engine
	// skips the entry and logs a warning rather than propagating this.
	ErrInvalidBlockIterator = errors.New("light: invalid block iterator")

	// ErrChunkNotLoaded names the unloaded-chunk failure mode. No function
	// in this package returns it: a queue entry without a chunk is dropped
	// silently.
	ErrChunkNotLoaded = errors.New("light: chunk not loaded")

	// ErrLightPropagation names an unrecoverable propagation failure. No
	// function in this package returns or wraps it; channel values are
	// clamped to [0,15] rather than checked.
	ErrLightPropagation = errors.New("light: propagation failed")
)
