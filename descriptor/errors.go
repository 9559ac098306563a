package descriptor

import "errors"

var (
	// ErrHeapExhausted is returned when a full pass over a heap finds no
	// free slot.
	ErrHeapExhausted = errors.New("descriptor: heap exhausted")

	// ErrInsufficientSpace is returned by AllocateRange when fewer than
	// count consecutive slots are free starting at the rover.
	ErrInsufficientSpace = errors.New("descriptor: insufficient contiguous space")

	// ErrInvalidAllocation is returned by Free for a stale or mismatched
	// allocation.
	ErrInvalidAllocation = errors.New("descriptor: invalid allocation")

	// ErrInvalidHandle is returned by a DescriptorHandle operation once its
	// parent allocator no longer exists.
	ErrInvalidHandle = errors.New("descriptor: invalid handle")
)
