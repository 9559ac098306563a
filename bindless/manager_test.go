package bindless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/bindless"
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

type fakeHeap struct {
	heapType gpubackend.HeapType
	capacity uint32
}

func (h *fakeHeap) Type() gpubackend.HeapType                { return h.heapType }
func (h *fakeHeap) Capacity() uint32                          { return h.capacity }
func (h *fakeHeap) CPUHandleAt(i uint32) gpubackend.CPUHandle { return i }
func (h *fakeHeap) GPUHandleAt(i uint32) gpubackend.GPUHandle { return i }

type fakeDevice struct{}

func (d *fakeDevice) CreateDescriptorHeap(t gpubackend.HeapType, capacity uint32) (gpubackend.DescriptorHeap, error) {
	return &fakeHeap{heapType: t, capacity: capacity}, nil
}
func (d *fakeDevice) WriteShaderResourceView(gpubackend.CPUHandle, gpubackend.Texture2D) {}
func (d *fakeDevice) WriteConstantBufferView(gpubackend.CPUHandle, gpubackend.Buffer)    {}
func (d *fakeDevice) WriteUnorderedAccessView(gpubackend.CPUHandle, gpubackend.Texture2D) {}
func (d *fakeDevice) WriteRenderTargetView(gpubackend.CPUHandle, gpubackend.Texture2D)   {}
func (d *fakeDevice) WriteDepthStencilView(gpubackend.CPUHandle, gpubackend.Texture2D)   {}
func (d *fakeDevice) CopyDescriptorsSimple(dst, src gpubackend.CPUHandle, count uint32, t gpubackend.HeapType) {
}
func (d *fakeDevice) CreateTexture2D(w, h uint32, format string) (gpubackend.Texture2D, error) {
	return nil, nil
}
func (d *fakeDevice) CreateBuffer(sizeBytes uint64) (gpubackend.Buffer, error) { return nil, nil }
func (d *fakeDevice) UploadBuffer(gpubackend.Buffer, []byte)                   {}

type fakeTexture struct {
	handle gpubackend.ResourceHandle
}

func (t *fakeTexture) Handle() gpubackend.ResourceHandle { return t.handle }
func (t *fakeTexture) Width() uint32                      { return 64 }
func (t *fakeTexture) Height() uint32                     { return 64 }

func newFakeTexture() *fakeTexture { return &fakeTexture{handle: gpubackend.NewResourceHandle()} }

func newTestManager(t *testing.T, capacity, max, growth uint32) *bindless.Manager {
	t.Helper()
	dev := &fakeDevice{}
	alloc, err := descriptor.NewHeapAllocator(dev, capacity, 4, 4, 4)
	require.NoError(t, err)
	return bindless.NewManager(alloc, dev, capacity, max, growth, nil)
}

func TestRegisterTexture2D_AssignsStableIndex(t *testing.T) {
	m := newTestManager(t, 4, 16, 2)
	tex := newFakeTexture()

	idx, ok := m.RegisterTexture2D(tex, gpubackend.BindlessKindTexture2D)
	require.True(t, ok)

	again, ok := m.RegisterTexture2D(tex, gpubackend.BindlessKindTexture2D)
	require.True(t, ok)
	assert.Equal(t, idx, again, "re-registering the same resource must return the same index")
}

func TestRegisterTexture2D_GrowsWhenExhausted(t *testing.T) {
	m := newTestManager(t, 1, 8, 2)

	first, ok := m.RegisterTexture2D(newFakeTexture(), gpubackend.BindlessKindTexture2D)
	require.True(t, ok)

	second, ok := m.RegisterTexture2D(newFakeTexture(), gpubackend.BindlessKindTexture2D)
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	stats := m.Stats()
	assert.Equal(t, uint32(2), stats.CurrentUsed)
	assert.Equal(t, uint32(2), stats.TotalAllocated)
	assert.Equal(t, uint32(2), stats.PeakUsed)
}

func TestRegisterTexture2D_FailsAtMaxCapacity(t *testing.T) {
	m := newTestManager(t, 1, 1, 2)

	_, ok := m.RegisterTexture2D(newFakeTexture(), gpubackend.BindlessKindTexture2D)
	require.True(t, ok)

	_, ok = m.RegisterTexture2D(newFakeTexture(), gpubackend.BindlessKindTexture2D)
	assert.False(t, ok)
}

func TestUnregister_FreesSlotAndForgetsResource(t *testing.T) {
	m := newTestManager(t, 2, 8, 2)
	tex := newFakeTexture()

	idx, ok := m.RegisterTexture2D(tex, gpubackend.BindlessKindTexture2D)
	require.True(t, ok)

	assert.True(t, m.Unregister(tex.Handle()))
	assert.False(t, m.Unregister(tex.Handle()), "double unregister must report false")

	_, found := m.GetGpuHandleByIndex(idx)
	assert.False(t, found)
}

func TestGetGpuHandleByIndex_UnknownIndex(t *testing.T) {
	m := newTestManager(t, 2, 8, 2)
	_, ok := m.GetGpuHandleByIndex(99)
	assert.False(t, ok)
}

func TestDescribeBinding_MatchesRegisteredKind(t *testing.T) {
	m := newTestManager(t, 2, 8, 2)
	tex := newFakeTexture()
	idx, ok := m.RegisterTexture2D(tex, gpubackend.BindlessKindRWTexture2D)
	require.True(t, ok)

	desc, ok := m.DescribeBinding(idx)
	require.True(t, ok)
	assert.Equal(t, "RWTexture2D", desc)
}
