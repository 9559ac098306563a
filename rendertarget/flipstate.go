// Package rendertarget implements the Buffer-Flip State, Render Target, and
// Render Target Manager components (spec.md §4.D-F): a fixed-capacity array
// of double-buffered render targets with deterministic per-frame read/write
// index rotation and a packed GPU-side index table.
package rendertarget

// FlipState is an N-bit bitset recording, per slot, whether it currently
// reads Main/writes Alt (false) or the reverse (true). Grounded on
// original_source's BufferFlipState<N>; generalized from a template
// parameter to a runtime size since Go has no non-type generic constants
// usable this way without code generation.
type FlipState struct {
	bits []bool
}

// NewFlipState returns a FlipState of n slots, all starting un-flipped.
func NewFlipState(n int) *FlipState {
	return &FlipState{bits: make([]bool, n)}
}

// Len returns the number of slots.
func (f *FlipState) Len() int { return len(f.bits) }

// IsFlipped reports slot i's current polarity.
func (f *FlipState) IsFlipped(i int) bool { return f.bits[i] }

// Flip toggles slot i.
func (f *FlipState) Flip(i int) { f.bits[i] = !f.bits[i] }

// FlipAll toggles every slot; the canonical end-of-frame operation.
func (f *FlipState) FlipAll() {
	for i := range f.bits {
		f.bits[i] = !f.bits[i]
	}
}

// Reset clears every slot to un-flipped.
func (f *FlipState) Reset() {
	for i := range f.bits {
		f.bits[i] = false
	}
}

// ToUInt packs the bitset LSB-first, bit i corresponding to index i. Returns
// uint64 for the uniform Go API; callers sized to ToUInt16/ToUInt32 below
// when a narrower wire type is needed (spec.md §4.D: u16 for N<=16, u32 for
// N<=32, else u64).
func (f *FlipState) ToUInt() uint64 {
	var v uint64
	for i, b := range f.bits {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}

// ToUInt16 packs up to 16 slots into a uint16; panics if Len() > 16.
func (f *FlipState) ToUInt16() uint16 {
	if len(f.bits) > 16 {
		panic("rendertarget: ToUInt16 called on a FlipState with more than 16 slots")
	}
	return uint16(f.ToUInt())
}

// ToUInt32 packs up to 32 slots into a uint32; panics if Len() > 32.
func (f *FlipState) ToUInt32() uint32 {
	if len(f.bits) > 32 {
		panic("rendertarget: ToUInt32 called on a FlipState with more than 32 slots")
	}
	return uint32(f.ToUInt())
}
