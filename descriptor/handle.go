package descriptor

import "weak"

// Handle is a scoped, move-only owner of an Allocation (spec.md §4.B). It
// holds a weak reference to its parent allocator — using Go 1.24's weak
// package, the direct realization of the design note's "Arc + Weak"
// sketch — so that a Handle outliving its allocator degrades to a silent
// no-op on Close instead of touching freed state.
type Handle struct {
	alloc     Allocation
	allocator weak.Pointer[HeapAllocator]
	detached  bool
}

// NewHandle wraps alloc with a weak reference to allocator.
func NewHandle(alloc Allocation, allocator *HeapAllocator) Handle {
	return Handle{alloc: alloc, allocator: weak.Make(allocator)}
}

// NonOwning returns a Handle that observes alloc but never frees it,
// matching spec.md §3's "non-owning factory" for DescriptorHandle.
func NonOwning(alloc Allocation) Handle {
	return Handle{alloc: alloc, detached: true}
}

// Allocation returns the wrapped allocation.
func (h *Handle) Allocation() Allocation { return h.alloc }

func (h *Handle) IsValid() bool { return h.alloc.Valid }

func (h *Handle) HeapIndex() uint32 { return h.alloc.HeapIndex }

// Detach marks the handle as non-owning without releasing its slot; the
// caller is taking over responsibility for freeing it (or it is being
// handed to something else that will).
func (h *Handle) Detach() { h.detached = true }

// Move transfers ownership to a new Handle value and invalidates the
// receiver, mirroring the C++ move constructor (spec.md §3: "move
// transfers ownership; the source is nulled").
func (h *Handle) Move() Handle {
	moved := *h
	h.alloc = Allocation{}
	h.detached = true
	return moved
}

// Close releases the allocation back to its allocator's free-list, unless
// the handle is non-owning/detached, already invalid, or its allocator has
// already been destroyed — in which case it is a silent no-op (testable
// property 3: "destination frees exactly once on drop").
func (h *Handle) Close() error {
	if h.detached || !h.alloc.Valid {
		return nil
	}
	defer func() { h.alloc.Valid = false }()

	allocator := h.allocator.Value()
	if allocator == nil {
		return nil
	}
	return allocator.Free(h.alloc)
}

// Equal compares (heapType, heapIndex), per spec.md §4.B.
func (h Handle) Equal(other Handle) bool {
	return h.alloc.HeapType == other.alloc.HeapType && h.alloc.HeapIndex == other.alloc.HeapIndex
}

// Less orders lexicographically by (heapType, heapIndex), per spec.md §4.B.
func (h Handle) Less(other Handle) bool {
	if h.alloc.HeapType != other.alloc.HeapType {
		return h.alloc.HeapType < other.alloc.HeapType
	}
	return h.alloc.HeapIndex < other.alloc.HeapIndex
}
