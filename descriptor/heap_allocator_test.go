package descriptor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

// fakeHeap and fakeDevice give the allocator something to allocate from
// without pulling in a real GPU backend, the same way the teacher's tests
// stand in mock resources (app_test.go's MockResource1/2).
type fakeHeap struct {
	heapType gpubackend.HeapType
	capacity uint32
}

func (h *fakeHeap) Type() gpubackend.HeapType           { return h.heapType }
func (h *fakeHeap) Capacity() uint32                    { return h.capacity }
func (h *fakeHeap) CPUHandleAt(i uint32) gpubackend.CPUHandle { return i }
func (h *fakeHeap) GPUHandleAt(i uint32) gpubackend.GPUHandle { return i }

type fakeDevice struct {
	copies int
}

func (d *fakeDevice) CreateDescriptorHeap(t gpubackend.HeapType, capacity uint32) (gpubackend.DescriptorHeap, error) {
	return &fakeHeap{heapType: t, capacity: capacity}, nil
}
func (d *fakeDevice) WriteShaderResourceView(gpubackend.CPUHandle, gpubackend.Texture2D)   {}
func (d *fakeDevice) WriteConstantBufferView(gpubackend.CPUHandle, gpubackend.Buffer)      {}
func (d *fakeDevice) WriteUnorderedAccessView(gpubackend.CPUHandle, gpubackend.Texture2D)  {}
func (d *fakeDevice) WriteRenderTargetView(gpubackend.CPUHandle, gpubackend.Texture2D)     {}
func (d *fakeDevice) WriteDepthStencilView(gpubackend.CPUHandle, gpubackend.Texture2D)     {}
func (d *fakeDevice) CopyDescriptorsSimple(dst, src gpubackend.CPUHandle, count uint32, t gpubackend.HeapType) {
	d.copies++
}
func (d *fakeDevice) CreateTexture2D(w, h uint32, format string) (gpubackend.Texture2D, error) {
	return nil, nil
}
func (d *fakeDevice) CreateBuffer(sizeBytes uint64) (gpubackend.Buffer, error) { return nil, nil }
func (d *fakeDevice) UploadBuffer(gpubackend.Buffer, []byte)                   {}

func newTestAllocator(t *testing.T, cap uint32) (*descriptor.HeapAllocator, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	alloc, err := descriptor.NewHeapAllocator(dev, cap, 4, 4, 4)
	require.NoError(t, err)
	return alloc, dev
}

func TestAllocate_AssignsSequentialIndices(t *testing.T) {
	a, _ := newTestAllocator(t, 4)
	for i := uint32(0); i < 4; i++ {
		alloc, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
		require.NoError(t, err)
		assert.True(t, alloc.Valid)
		assert.Equal(t, i, alloc.HeapIndex)
	}
}

func TestAllocate_ExhaustedAfterCapacity(t *testing.T) {
	a, _ := newTestAllocator(t, 2)
	_, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	_, err = a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	_, err = a.Allocate(gpubackend.HeapCBVSRVUAV)
	assert.ErrorIs(t, err, descriptor.ErrHeapExhausted)
}

func TestFree_RecyclesSlotOnNextWrap(t *testing.T) {
	a, _ := newTestAllocator(t, 2)
	first, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	_, err = a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	require.NoError(t, a.Free(first))

	third, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)
	assert.Equal(t, first.HeapIndex, third.HeapIndex)
}

func TestFree_InvalidAllocationIsNonFatal(t *testing.T) {
	a, _ := newTestAllocator(t, 2)
	err := a.Free(descriptor.Allocation{HeapType: gpubackend.HeapCBVSRVUAV, HeapIndex: 99, Valid: true})
	assert.True(t, errors.Is(err, descriptor.ErrInvalidAllocation))
}

func TestAllocateRange_NoWrapping(t *testing.T) {
	a, _ := newTestAllocator(t, 4)
	_, err := a.Allocate(gpubackend.HeapCBVSRVUAV) // index 0
	require.NoError(t, err)

	base, err := a.AllocateRange(gpubackend.HeapCBVSRVUAV, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), base.HeapIndex)

	_, err = a.AllocateRange(gpubackend.HeapCBVSRVUAV, 1)
	assert.ErrorIs(t, err, descriptor.ErrInsufficientSpace)
}

func TestGrow_CopiesUsedDescriptors(t *testing.T) {
	a, dev := newTestAllocator(t, 2)
	_, err := a.Allocate(gpubackend.HeapCBVSRVUAV)
	require.NoError(t, err)

	require.NoError(t, a.Grow(gpubackend.HeapCBVSRVUAV, 8))
	assert.Equal(t, uint32(8), a.Capacity(gpubackend.HeapCBVSRVUAV))
	assert.Equal(t, uint32(1), a.Used(gpubackend.HeapCBVSRVUAV))
	assert.Equal(t, 1, dev.copies)
}
