// Package webgpu implements the gpubackend contract on top of
// github.com/cogentcore/webgpu, the teacher's GPU dependency. A D3D12-style
// descriptor heap has no direct wgpu equivalent, so it is modeled the way
// modern wgpu bindless renderers do it: one big binding-array texture slot
// table plus a CPU-side mirror recording which view currently lives at each
// index. The slot index itself is both the "CPU handle" bookkeeping key and
// the shader-visible bindless index (spec.md §9's "the allocation index IS
// the stable bindless index").
package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/voxelrt/enginecore/gpubackend"
)

// cpuSlot is the CPUHandle implementation: a heap type plus an index.
type cpuSlot struct {
	heap  gpubackend.HeapType
	index uint32
}

// gpuSlot is the GPUHandle implementation, carrying the same index so a
// command list recorder can read it back without a lookup.
type gpuSlot struct {
	index uint32
}

// heap is a fixed-capacity table of wgpu views, one per descriptor slot.
type heap struct {
	heapType gpubackend.HeapType
	capacity uint32
	views    []any // *wgpu.TextureView, *wgpu.Buffer binding, or nil
}

func newHeap(heapType gpubackend.HeapType, capacity uint32) *heap {
	return &heap{heapType: heapType, capacity: capacity, views: make([]any, capacity)}
}

func (h *heap) Type() gpubackend.HeapType { return h.heapType }
func (h *heap) Capacity() uint32          { return h.capacity }

func (h *heap) CPUHandleAt(index uint32) gpubackend.CPUHandle {
	return cpuSlot{heap: h.heapType, index: index}
}

func (h *heap) GPUHandleAt(index uint32) gpubackend.GPUHandle {
	return gpuSlot{index: index}
}

// texture adapts *wgpu.Texture to gpubackend.Texture2D.
type texture struct {
	handle gpubackend.ResourceHandle
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	width  uint32
	height uint32
}

func (t *texture) Handle() gpubackend.ResourceHandle { return t.handle }
func (t *texture) Width() uint32                     { return t.width }
func (t *texture) Height() uint32                    { return t.height }

// buffer adapts *wgpu.Buffer to gpubackend.Buffer.
type buffer struct {
	handle gpubackend.ResourceHandle
	buf    *wgpu.Buffer
	size   uint64
}

func (b *buffer) Handle() gpubackend.ResourceHandle { return b.handle }
func (b *buffer) SizeBytes() uint64                 { return b.size }

// Device wraps a *wgpu.Device to satisfy gpubackend.Device.
type Device struct {
	device *wgpu.Device
	heaps  map[gpubackend.HeapType]*heap
}

func NewDevice(device *wgpu.Device) *Device {
	return &Device{device: device, heaps: make(map[gpubackend.HeapType]*heap)}
}

func (d *Device) CreateDescriptorHeap(heapType gpubackend.HeapType, capacity uint32) (gpubackend.DescriptorHeap, error) {
	h := newHeap(heapType, capacity)
	d.heaps[heapType] = h
	return h, nil
}

func (d *Device) heapFor(cpu gpubackend.CPUHandle) (*heap, cpuSlot, error) {
	slot, ok := cpu.(cpuSlot)
	if !ok {
		return nil, cpuSlot{}, fmt.Errorf("gpubackend/webgpu: handle %v not produced by this device", cpu)
	}
	h, ok := d.heaps[slot.heap]
	if !ok {
		return nil, cpuSlot{}, fmt.Errorf("gpubackend/webgpu: no heap of type %s", slot.heap)
	}
	return h, slot, nil
}

func (d *Device) WriteShaderResourceView(cpu gpubackend.CPUHandle, tex gpubackend.Texture2D) {
	h, slot, err := d.heapFor(cpu)
	if err != nil {
		return
	}
	if t, ok := tex.(*texture); ok {
		h.views[slot.index] = t.view
	}
}

func (d *Device) WriteConstantBufferView(cpu gpubackend.CPUHandle, buf gpubackend.Buffer) {
	h, slot, err := d.heapFor(cpu)
	if err != nil {
		return
	}
	if b, ok := buf.(*buffer); ok {
		h.views[slot.index] = b.buf
	}
}

func (d *Device) WriteUnorderedAccessView(cpu gpubackend.CPUHandle, res gpubackend.Texture2D) {
	d.WriteShaderResourceView(cpu, res)
}

func (d *Device) WriteRenderTargetView(cpu gpubackend.CPUHandle, tex gpubackend.Texture2D) {
	d.WriteShaderResourceView(cpu, tex)
}

func (d *Device) WriteDepthStencilView(cpu gpubackend.CPUHandle, tex gpubackend.Texture2D) {
	d.WriteShaderResourceView(cpu, tex)
}

func (d *Device) CopyDescriptorsSimple(dst, src gpubackend.CPUHandle, count uint32, heapType gpubackend.HeapType) {
	h, ok := d.heaps[heapType]
	if !ok {
		return
	}
	dstSlot, ok1 := dst.(cpuSlot)
	srcSlot, ok2 := src.(cpuSlot)
	if !ok1 || !ok2 {
		return
	}
	for i := uint32(0); i < count; i++ {
		h.views[dstSlot.index+i] = h.views[srcSlot.index+i]
	}
}

func formatOf(format string) wgpu.TextureFormat {
	switch format {
	case "rgba8unorm":
		return wgpu.TextureFormatRGBA8Unorm
	case "rgba16float":
		return wgpu.TextureFormatRGBA16Float
	case "depth32float":
		return wgpu.TextureFormatDepth32Float
	default:
		return wgpu.TextureFormatRGBA8Unorm
	}
}

func (d *Device) CreateTexture2D(width, height uint32, format string) (gpubackend.Texture2D, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "enginecore.Texture2D",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        formatOf(format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpubackend/webgpu: create texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("gpubackend/webgpu: create view: %w", err)
	}
	return &texture{handle: gpubackend.NewResourceHandle(), tex: tex, view: view, width: width, height: height}, nil
}

func (d *Device) CreateBuffer(sizeBytes uint64) (gpubackend.Buffer, error) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "enginecore.Buffer",
		Size:             sizeBytes,
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageIndex | wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("gpubackend/webgpu: create buffer: %w", err)
	}
	return &buffer{handle: gpubackend.NewResourceHandle(), buf: buf, size: sizeBytes}, nil
}

func (d *Device) UploadBuffer(gb gpubackend.Buffer, data []byte) {
	b, ok := gb.(*buffer)
	if !ok {
		return
	}
	d.device.GetQueue().WriteBuffer(b.buf, 0, data)
}

// CommandList records bound descriptor heaps and requested mip
// generations; it holds no wgpu command encoder. Recording the actual draw
// calls is out of this module's scope (spec.md §1); this only satisfies
// the binding-order contract in spec.md §5.
type CommandList struct {
	boundHeaps     []gpubackend.DescriptorHeap
	pendingMipmaps []gpubackend.Texture2D
}

func NewCommandList() *CommandList { return &CommandList{} }

func (c *CommandList) SetDescriptorHeaps(heaps ...gpubackend.DescriptorHeap) {
	c.boundHeaps = heaps
}

func (c *CommandList) SetGraphicsRootDescriptorTable(rootParam uint32, gpu gpubackend.GPUHandle) {}
func (c *CommandList) SetComputeRootDescriptorTable(rootParam uint32, gpu gpubackend.GPUHandle)  {}
func (c *CommandList) OMSetRenderTargets(rtvs []gpubackend.CPUHandle, dsv gpubackend.CPUHandle)  {}

// GenerateMipmaps records a mip-chain regeneration for tex. wgpu has no
// built-in mip generator; recording the actual blit-chain compute/render
// passes is out of this module's scope (spec.md §1), so this only tracks
// that the dispatch was requested.
func (c *CommandList) GenerateMipmaps(tex gpubackend.Texture2D) {
	c.pendingMipmaps = append(c.pendingMipmaps, tex)
}
