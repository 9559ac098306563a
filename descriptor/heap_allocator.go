package descriptor

import (
	"fmt"
	"sync"

	"github.com/voxelrt/enginecore/gpubackend"
)

// heapState tracks one backing gpubackend.DescriptorHeap: which slots are
// used, and a rover that remembers where the last search left off so a
// long-lived allocator doesn't re-scan from zero every call.
type heapState struct {
	backing  gpubackend.DescriptorHeap
	used     []bool
	nextFree uint32
}

func newHeapState(backing gpubackend.DescriptorHeap) *heapState {
	return &heapState{backing: backing, used: make([]bool, backing.Capacity())}
}

// HeapAllocator owns the four fixed-capacity heaps (spec.md §4.A) and hands
// out stable integer indices via a single mutex per instance. It never
// touches anything but its own bookkeeping and the gpubackend.Device used
// to create the backing heaps.
type HeapAllocator struct {
	mu     sync.Mutex
	device gpubackend.Device
	heaps  map[gpubackend.HeapType]*heapState
}

// NewHeapAllocator creates the four heaps with the given capacities, in
// the fixed order CBV/SRV/UAV, RTV, DSV, Sampler.
func NewHeapAllocator(device gpubackend.Device, cbvSrvUavCapacity, rtvCapacity, dsvCapacity, samplerCapacity uint32) (*HeapAllocator, error) {
	a := &HeapAllocator{device: device, heaps: make(map[gpubackend.HeapType]*heapState)}
	caps := map[gpubackend.HeapType]uint32{
		gpubackend.HeapCBVSRVUAV: cbvSrvUavCapacity,
		gpubackend.HeapRTV:       rtvCapacity,
		gpubackend.HeapDSV:       dsvCapacity,
		gpubackend.HeapSampler:   samplerCapacity,
	}
	for _, t := range []gpubackend.HeapType{gpubackend.HeapCBVSRVUAV, gpubackend.HeapRTV, gpubackend.HeapDSV, gpubackend.HeapSampler} {
		backing, err := device.CreateDescriptorHeap(t, caps[t])
		if err != nil {
			return nil, fmt.Errorf("descriptor: create %s heap: %w", t, err)
		}
		a.heaps[t] = newHeapState(backing)
	}
	return a, nil
}

// Allocate finds the next free index in heapType's heap starting at the
// rover, wrapping at most once, marks it used, and advances the rover.
func (a *HeapAllocator) Allocate(heapType gpubackend.HeapType) (Allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.heaps[heapType]
	if !ok {
		return Allocation{}, fmt.Errorf("descriptor: %w: unknown heap type %s", ErrHeapExhausted, heapType)
	}

	cap := uint32(len(h.used))
	if cap == 0 {
		return Allocation{}, fmt.Errorf("descriptor: %s heap: %w", heapType, ErrHeapExhausted)
	}

	for i := uint32(0); i < cap; i++ {
		idx := (h.nextFree + i) % cap
		if !h.used[idx] {
			h.used[idx] = true
			h.nextFree = (idx + 1) % cap
			return Allocation{
				CPUHandle: h.backing.CPUHandleAt(idx),
				GPUHandle: h.backing.GPUHandleAt(idx),
				HeapIndex: idx,
				HeapType:  heapType,
				Valid:     true,
			}, nil
		}
	}
	return Allocation{}, fmt.Errorf("descriptor: %s heap: %w", heapType, ErrHeapExhausted)
}

// AllocateRange finds `count` consecutive unused slots starting exactly at
// the rover; unlike Allocate, it never wraps.
func (a *HeapAllocator) AllocateRange(heapType gpubackend.HeapType, count uint32) (Allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.heaps[heapType]
	if !ok || count == 0 {
		return Allocation{}, fmt.Errorf("descriptor: %s heap: %w", heapType, ErrInsufficientSpace)
	}

	cap := uint32(len(h.used))
	start := h.nextFree
	if start+count > cap {
		return Allocation{}, fmt.Errorf("descriptor: %s heap: %w", heapType, ErrInsufficientSpace)
	}
	for i := uint32(0); i < count; i++ {
		if h.used[start+i] {
			return Allocation{}, fmt.Errorf("descriptor: %s heap: %w", heapType, ErrInsufficientSpace)
		}
	}
	for i := uint32(0); i < count; i++ {
		h.used[start+i] = true
	}
	h.nextFree = start + count
	return Allocation{
		CPUHandle: h.backing.CPUHandleAt(start),
		GPUHandle: h.backing.GPUHandleAt(start),
		HeapIndex: start,
		HeapType:  heapType,
		Valid:     true,
	}, nil
}

// Free clears the used bit for alloc's slot. The rover is left unchanged;
// it naturally re-encounters the hole on its next wrap.
func (a *HeapAllocator) Free(alloc Allocation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.heaps[alloc.HeapType]
	if !ok || alloc.HeapIndex >= uint32(len(h.used)) {
		return fmt.Errorf("descriptor: %w", ErrInvalidAllocation)
	}
	if !h.used[alloc.HeapIndex] {
		return fmt.Errorf("descriptor: %w", ErrInvalidAllocation)
	}
	h.used[alloc.HeapIndex] = false
	return nil
}

// SetDescriptorHeaps binds every shader-visible heap to cmdList.
func (a *HeapAllocator) SetDescriptorHeaps(cmdList gpubackend.CommandList) {
	a.mu.Lock()
	heaps := make([]gpubackend.DescriptorHeap, 0, len(a.heaps))
	for _, t := range []gpubackend.HeapType{gpubackend.HeapCBVSRVUAV, gpubackend.HeapSampler} {
		if h, ok := a.heaps[t]; ok {
			heaps = append(heaps, h.backing)
		}
	}
	a.mu.Unlock()
	cmdList.SetDescriptorHeaps(heaps...)
}

// Used reports the current used-slot count for heapType, for diagnostics
// and for the bindless manager's growth decision.
func (a *HeapAllocator) Used(heapType gpubackend.HeapType) uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.heaps[heapType]
	if !ok {
		return 0
	}
	var n uint32
	for _, u := range h.used {
		if u {
			n++
		}
	}
	return n
}

// Capacity returns heapType's current capacity.
func (a *HeapAllocator) Capacity(heapType gpubackend.HeapType) uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.heaps[heapType]
	if !ok {
		return 0
	}
	return uint32(len(h.used))
}

// Grow replaces heapType's backing heap with a newly created one of
// newCapacity, copying every currently-used descriptor across via the
// device's CopyDescriptorsSimple. This stalls all command-list recording
// (spec.md §4.C) — callers must not be mid-frame when calling it.
func (a *HeapAllocator) Grow(heapType gpubackend.HeapType, newCapacity uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.heaps[heapType]
	if !ok {
		return fmt.Errorf("descriptor: unknown heap type %s", heapType)
	}
	if newCapacity <= uint32(len(h.used)) {
		return fmt.Errorf("descriptor: grow target %d not larger than current %d", newCapacity, len(h.used))
	}

	newBacking, err := a.device.CreateDescriptorHeap(heapType, newCapacity)
	if err != nil {
		return fmt.Errorf("descriptor: grow %s heap: %w", heapType, err)
	}

	oldUsed := h.used
	for idx, used := range oldUsed {
		if used {
			a.device.CopyDescriptorsSimple(newBacking.CPUHandleAt(uint32(idx)), h.backing.CPUHandleAt(uint32(idx)), 1, heapType)
		}
	}

	newUsed := make([]bool, newCapacity)
	copy(newUsed, oldUsed)

	h.backing = newBacking
	h.used = newUsed
	return nil
}
