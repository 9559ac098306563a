// Package bindless implements the Bindless Resource Manager (spec.md §4.C):
// it sits on top of descriptor.HeapAllocator and maps every registered GPU
// resource to a stable integer index. Grounded on original_source's
// BindlessResourceManager.{hpp,cpp} and generalized to use
// gpubackend.ResourceHandle (a uuid, the same identity scheme the teacher
// uses for assets in mod_assets.go) in place of a raw ID3D12Resource*.
package bindless

import (
	"fmt"
	"sync"

	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

// Stats is a diagnostic snapshot of registration counters.
type Stats struct {
	TotalAllocated uint32
	CurrentUsed    uint32
	PeakUsed       uint32
}

type registration struct {
	handle descriptor.Handle
	kind   gpubackend.BindlessKind
}

// Manager owns the shared CBV/SRV/UAV heap (via a descriptor.HeapAllocator)
// and the resource<->index bookkeeping layered on top of it.
type Manager struct {
	mu sync.Mutex

	device    gpubackend.Device
	allocator *descriptor.HeapAllocator
	logger    Logger

	byResource map[gpubackend.ResourceHandle]uint32
	byIndex    map[uint32]registration

	initialCapacity uint32
	maxCapacity     uint32
	growthFactor    uint32

	totalAllocated uint32
	peakUsed       uint32
}

// Logger is the narrow logging surface bindless needs; enginecore.Logger
// satisfies it.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// NewManager creates a Manager whose shared heap starts at initialCapacity
// and may grow (spec.md §4.C) up to maxCapacity by growthFactor.
func NewManager(allocator *descriptor.HeapAllocator, device gpubackend.Device, initialCapacity, maxCapacity, growthFactor uint32, logger Logger) *Manager {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Manager{
		device:          device,
		allocator:       allocator,
		logger:          logger,
		byResource:      make(map[gpubackend.ResourceHandle]uint32),
		byIndex:         make(map[uint32]registration),
		initialCapacity: initialCapacity,
		maxCapacity:     maxCapacity,
		growthFactor:    growthFactor,
	}
}

// RegisterTexture2D allocates (or reuses) a bindless slot for tex and
// writes its SRV. Returns the stable index, or false if the heap is full
// even after growth.
func (m *Manager) RegisterTexture2D(tex gpubackend.Texture2D, kind gpubackend.BindlessKind) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx, ok := m.byResource[tex.Handle()]; ok {
		m.logger.Warnf("bindless: texture %s already registered at index %d", tex.Handle(), idx)
		return idx, true
	}

	alloc, err := m.allocate()
	if err != nil {
		return 0, false
	}

	m.device.WriteShaderResourceView(alloc.CPUHandle, tex)
	return m.record(alloc, tex.Handle(), kind), true
}

// RegisterBuffer allocates (or reuses) a bindless slot for buf and writes
// its CBV.
func (m *Manager) RegisterBuffer(buf gpubackend.Buffer, kind gpubackend.BindlessKind) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx, ok := m.byResource[buf.Handle()]; ok {
		m.logger.Warnf("bindless: buffer %s already registered at index %d", buf.Handle(), idx)
		return idx, true
	}

	alloc, err := m.allocate()
	if err != nil {
		return 0, false
	}

	m.device.WriteConstantBufferView(alloc.CPUHandle, buf)
	return m.record(alloc, buf.Handle(), kind), true
}

// allocate gets a fresh descriptor slot, growing the shared heap first if
// it is at capacity. Callers must hold m.mu.
func (m *Manager) allocate() (descriptor.Allocation, error) {
	used := m.allocator.Used(gpubackend.HeapCBVSRVUAV)
	cap := m.allocator.Capacity(gpubackend.HeapCBVSRVUAV)
	if used >= cap {
		newCap := cap * m.growthFactor
		if newCap > m.maxCapacity {
			newCap = m.maxCapacity
		}
		if newCap <= cap {
			return descriptor.Allocation{}, fmt.Errorf("bindless: %w", descriptor.ErrHeapExhausted)
		}
		if err := m.allocator.Grow(gpubackend.HeapCBVSRVUAV, newCap); err != nil {
			return descriptor.Allocation{}, err
		}
	}
	return m.allocator.Allocate(gpubackend.HeapCBVSRVUAV)
}

// record stores the resource<->index bookkeeping and updates counters.
// Callers must hold m.mu.
func (m *Manager) record(alloc descriptor.Allocation, resource gpubackend.ResourceHandle, kind gpubackend.BindlessKind) uint32 {
	handle := descriptor.NewHandle(alloc, m.allocator)
	m.byResource[resource] = alloc.HeapIndex
	m.byIndex[alloc.HeapIndex] = registration{handle: handle, kind: kind}

	m.totalAllocated++
	used := uint32(len(m.byIndex))
	if used > m.peakUsed {
		m.peakUsed = used
	}
	return alloc.HeapIndex
}

// Unregister releases resource's slot. Returns false if it was never
// registered.
func (m *Manager) Unregister(resource gpubackend.ResourceHandle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byResource[resource]
	if !ok {
		return false
	}
	reg := m.byIndex[idx]
	delete(m.byResource, resource)
	delete(m.byIndex, idx)

	if err := reg.handle.Close(); err != nil {
		m.logger.Warnf("bindless: unregister index %d: %v", idx, err)
	}
	return true
}

// GetGpuHandleByIndex returns the GPU-visible handle for a currently
// registered index.
func (m *Manager) GetGpuHandleByIndex(index uint32) (gpubackend.GPUHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.byIndex[index]
	if !ok {
		return nil, false
	}
	return reg.handle.Allocation().GPUHandle, true
}

// SetDescriptorTable binds the shared heap's descriptor table starting at
// startIndex for count entries to cmdList's rootParam.
func (m *Manager) SetDescriptorTable(cmdList gpubackend.CommandList, rootParam, startIndex, count uint32) {
	m.mu.Lock()
	reg, ok := m.byIndex[startIndex]
	m.mu.Unlock()
	if !ok {
		return
	}
	m.allocator.SetDescriptorHeaps(cmdList)
	cmdList.SetGraphicsRootDescriptorTable(rootParam, reg.handle.Allocation().GPUHandle)
}

// Stats returns a snapshot of the registration counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		TotalAllocated: m.totalAllocated,
		CurrentUsed:    uint32(len(m.byIndex)),
		PeakUsed:       m.peakUsed,
	}
}

// DescribeBinding returns the expected HLSL binding shape for index, for
// diagnostics (SPEC_FULL's ResourceBindingTraits parity).
func (m *Manager) DescribeBinding(index uint32) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.byIndex[index]
	if !ok {
		return "", false
	}
	return reg.kind.DescribeBinding(), true
}
