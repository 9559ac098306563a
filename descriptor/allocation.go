// Package descriptor implements the bindless descriptor heap allocator
// (spec.md §4.A) and the scoped handle that releases back into it
// (spec.md §4.B). It is grounded on original_source's
// DescriptorHeapManager.{hpp,cpp} and on the teacher's hand-rolled
// SlotAllocator in voxelrt/rt/gpu/manager.go, generalized from "one slot
// allocator per resource kind" to the full four-heap-type, wrap-once rover
// described in the spec.
package descriptor

import "github.com/voxelrt/enginecore/gpubackend"

// Allocation is the (cpuHandle, gpuHandle, heapIndex, heapType, valid)
// tuple from spec.md §3. The zero value is invalid.
type Allocation struct {
	CPUHandle gpubackend.CPUHandle
	GPUHandle gpubackend.GPUHandle
	HeapIndex uint32
	HeapType  gpubackend.HeapType
	Valid     bool
}

// Reset returns a to its zero, invalid state. Kept as a method (rather than
// relying only on the zero value) so callers can reuse an Allocation
// variable across retries, matching original_source's
// DescriptorAllocation::Reset().
func (a *Allocation) Reset() {
	*a = Allocation{}
}
