package rendertarget

import (
	"encoding/binary"
	"fmt"

	"github.com/voxelrt/enginecore/bindless"
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

// MaxRenderTargets is the fixed capacity of a Manager (spec.md §4.F: "owns
// ≤16 render targets").
const MaxRenderTargets = 16

// renderTargetsBufferSize is sizeof(struct { uint readIndices[16]; uint
// writeIndices[16]; }) (spec.md §3).
const renderTargetsBufferSize = MaxRenderTargets * 4 * 2

// renderTargetsStaging is the CPU-side image of the per-frame GPU struct,
// pushed to a real gpubackend.Buffer via Device.UploadBuffer each time it
// changes.
type renderTargetsStaging struct {
	data []byte
}

func newRenderTargetsStaging() *renderTargetsStaging {
	return &renderTargetsStaging{data: make([]byte, renderTargetsBufferSize)}
}

func (s *renderTargetsStaging) setReadWrite(i int, read, write uint32) {
	binary.LittleEndian.PutUint32(s.data[i*4:], read)
	binary.LittleEndian.PutUint32(s.data[(MaxRenderTargets+i)*4:], write)
}

// Manager owns a dense array of 1..16 render targets plus a 16-wide flip
// state and the uploaded read/write index table (spec.md §4.F).
type Manager struct {
	device    gpubackend.Device
	rtvHeap   *descriptor.HeapAllocator
	bindlessM *bindless.Manager

	targets []*RenderTarget
	flip    *FlipState

	baseWidth, baseHeight uint32

	staging     *renderTargetsStaging
	buffer      gpubackend.Buffer
	bufferIndex uint32
	bufferReady bool
}

// NewManager creates an empty Manager sized to (baseWidth, baseHeight).
func NewManager(device gpubackend.Device, rtvHeap *descriptor.HeapAllocator, bindlessM *bindless.Manager, baseWidth, baseHeight uint32) *Manager {
	return &Manager{
		device:     device,
		rtvHeap:    rtvHeap,
		bindlessM:  bindlessM,
		flip:       NewFlipState(MaxRenderTargets),
		baseWidth:  baseWidth,
		baseHeight: baseHeight,
		staging:    newRenderTargetsStaging(),
	}
}

// AddRenderTarget builds and appends a new target per builder. Fails once
// 16 targets are already owned.
func (m *Manager) AddRenderTarget(builder Builder) (*RenderTarget, error) {
	if len(m.targets) >= MaxRenderTargets {
		return nil, fmt.Errorf("rendertarget: manager already owns %d render targets", MaxRenderTargets)
	}
	rt, err := NewRenderTarget(m.device, m.rtvHeap, m.bindlessM, builder, m.baseWidth, m.baseHeight)
	if err != nil {
		return nil, err
	}
	m.targets = append(m.targets, rt)
	return rt, nil
}

func (m *Manager) checkIndex(i int) {
	if i < 0 || i >= len(m.targets) {
		panic(fmt.Sprintf("rendertarget: index %d out of range [0,%d)", i, len(m.targets)))
	}
}

// Flip toggles slot i's polarity.
func (m *Manager) Flip(i int) { m.checkIndex(i); m.flip.Flip(i) }

// FlipAll toggles the polarity of all MaxRenderTargets slots, owned or not.
func (m *Manager) FlipAll() { m.flip.FlipAll() }

// Reset clears every slot to un-flipped.
func (m *Manager) Reset() { m.flip.Reset() }

// IsFlipped reports slot i's current polarity.
func (m *Manager) IsFlipped(i int) bool { m.checkIndex(i); return m.flip.IsFlipped(i) }

// RenderTargetAt returns the render target owned at index i.
func (m *Manager) RenderTargetAt(i int) *RenderTarget { m.checkIndex(i); return m.targets[i] }

// Count returns how many render targets the manager currently owns.
func (m *Manager) Count() int { return len(m.targets) }

// OnResize recreates every owned render target against the new base
// resolution and rebuilds the upload buffer, since resizing mints new
// bindless indices (spec.md §4.F).
func (m *Manager) OnResize(newWidth, newHeight uint32) error {
	m.baseWidth, m.baseHeight = newWidth, newHeight
	for _, rt := range m.targets {
		if err := rt.Resize(newWidth, newHeight); err != nil {
			return err
		}
	}
	_, err := m.BuildRenderTargetsBuffer()
	return err
}

// BuildRenderTargetsBuffer rebuilds readIndices/writeIndices from the
// current flip state and uploads the result, registering the buffer
// bindless on first call. Unused slots (managers sized < 16) stay zero.
func (m *Manager) BuildRenderTargetsBuffer() (uint32, error) {
	for i := 0; i < MaxRenderTargets; i++ {
		if i >= len(m.targets) {
			m.staging.setReadWrite(i, 0, 0)
			continue
		}
		rt := m.targets[i]
		read, write := rt.GetMainTextureIndex(), rt.GetAltTextureIndex()
		if m.flip.IsFlipped(i) {
			read, write = write, read
		}
		m.staging.setReadWrite(i, read, write)
	}

	if !m.bufferReady {
		buf, err := m.device.CreateBuffer(renderTargetsBufferSize)
		if err != nil {
			return 0, fmt.Errorf("rendertarget: create RenderTargetsBuffer: %w", err)
		}
		m.buffer = buf
		idx, ok := m.bindlessM.RegisterBuffer(m.buffer, gpubackend.BindlessKindConstantBuffer)
		if !ok {
			return 0, fmt.Errorf("rendertarget: register RenderTargetsBuffer bindless")
		}
		m.bufferIndex = idx
		m.bufferReady = true
	}
	m.device.UploadBuffer(m.buffer, m.staging.data)
	return m.bufferIndex, nil
}

// GenerateMipmaps dispatches mip generation for each render target with
// mipmapping enabled, on both Main and Alt (spec.md §4.F). Targets with the
// flipper disabled have Alt aliasing Main, so the second call is a no-op
// redispatch on the same texture rather than a special case here.
func (m *Manager) GenerateMipmaps(cmdList gpubackend.CommandList) {
	for _, rt := range m.targets {
		if !rt.EnableMipmap() {
			continue
		}
		cmdList.GenerateMipmaps(rt.MainTexture())
		cmdList.GenerateMipmaps(rt.AltTexture())
	}
}
