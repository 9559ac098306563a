package descriptor_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

func TestHandle_CloseFreesAllocation(t *testing.T) {
	a, _ := newTestAllocator(t, 2)
	alloc, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	h := descriptor.NewHandle(alloc, a)
	require.NoError(t, h.Close())

	// The rover is left past the freed slot, so the next allocation takes
	// index 1 and the one after wraps back onto the freed index 0.
	_, err = a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	reused, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	assert.Equal(t, alloc.HeapIndex, reused.HeapIndex)
}

func TestHandle_MoveInvalidatesSource(t *testing.T) {
	a, _ := newTestAllocator(t, 2)
	alloc, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	h := descriptor.NewHandle(alloc, a)
	moved := h.Move()

	assert.False(t, h.IsValid())
	assert.True(t, moved.IsValid())

	require.NoError(t, moved.Close())
	// Closing the already-invalidated source must not double-free.
	require.NoError(t, h.Close())
}

func TestHandle_NonOwningNeverFrees(t *testing.T) {
	a, _ := newTestAllocator(t, 1)
	alloc, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	h := descriptor.NonOwning(alloc)
	require.NoError(t, h.Close())

	_, err = a.Allocate(gpubackend.HeapCBVSRVUAV)
	assert.ErrorIs(t, err, descriptor.ErrHeapExhausted)
}

func TestHandle_OutlivingAllocatorIsNoop(t *testing.T) {
	a, _ := newTestAllocator(t, 1)
	alloc, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	h := descriptor.NewHandle(alloc, a)
	a = nil
	runtime.GC()
	runtime.GC()

	assert.NoError(t, h.Close())
}

func TestHandle_EqualAndLess(t *testing.T) {
	a := descriptor.Handle{}
	b := descriptor.Handle{}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Less(b))
}
