package rendertarget

import (
	"fmt"

	"github.com/voxelrt/enginecore/bindless"
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

// ShadowColorTargets and ShadowDepthTargets are the shadow pass's fixed
// counts (spec.md §4.F).
const (
	ShadowColorTargets = 8
	ShadowDepthTargets = 2
)

// ShadowRenderTargetManager mirrors Manager's design for the shadow pass:
// color targets are created lazily on first use, the resolution is a fixed
// square independent of the window, and there is no OnResize (spec.md
// §4.F).
type ShadowRenderTargetManager struct {
	device    gpubackend.Device
	rtvHeap   *descriptor.HeapAllocator
	dsvHeap   *descriptor.HeapAllocator
	bindlessM *bindless.Manager

	resolution uint32
	builder    Builder

	color [ShadowColorTargets]*RenderTarget
	depth [ShadowDepthTargets]gpubackend.Texture2D
	dsv   [ShadowDepthTargets]descriptor.Handle
}

// NewShadowRenderTargetManager creates the manager and both depth textures
// up front; color targets remain nil until GetOrCreate.
func NewShadowRenderTargetManager(device gpubackend.Device, rtvHeap, dsvHeap *descriptor.HeapAllocator, bindlessM *bindless.Manager, resolution uint32, colorBuilder Builder) (*ShadowRenderTargetManager, error) {
	m := &ShadowRenderTargetManager{
		device:     device,
		rtvHeap:    rtvHeap,
		dsvHeap:    dsvHeap,
		bindlessM:  bindlessM,
		resolution: resolution,
		builder:    colorBuilder,
	}
	for i := 0; i < ShadowDepthTargets; i++ {
		tex, err := device.CreateTexture2D(resolution, resolution, "D32_FLOAT")
		if err != nil {
			return nil, fmt.Errorf("rendertarget: shadow depth %d: %w", i, err)
		}
		alloc, err := dsvHeap.Allocate(gpubackend.HeapDSV)
		if err != nil {
			return nil, fmt.Errorf("rendertarget: shadow depth %d: allocate dsv: %w", i, err)
		}
		device.WriteDepthStencilView(alloc.CPUHandle, tex)
		m.depth[i] = tex
		m.dsv[i] = descriptor.NewHandle(alloc, dsvHeap)
	}
	return m, nil
}

// GetOrCreate lazily builds color target i the first time it is needed.
func (m *ShadowRenderTargetManager) GetOrCreate(i int) (*RenderTarget, error) {
	m.checkColorIndex(i)
	if m.color[i] != nil {
		return m.color[i], nil
	}
	rt, err := NewRenderTarget(m.device, m.rtvHeap, m.bindlessM, m.builder, m.resolution, m.resolution)
	if err != nil {
		return nil, fmt.Errorf("rendertarget: shadow color %d: %w", i, err)
	}
	m.color[i] = rt
	return rt, nil
}

func (m *ShadowRenderTargetManager) checkColorIndex(i int) {
	if i < 0 || i >= ShadowColorTargets {
		panic(fmt.Sprintf("rendertarget: shadow color index %d out of range [0,%d)", i, ShadowColorTargets))
	}
}

func (m *ShadowRenderTargetManager) checkDepthIndex(i int) {
	if i < 0 || i >= ShadowDepthTargets {
		panic(fmt.Sprintf("rendertarget: shadow depth index %d out of range [0,%d)", i, ShadowDepthTargets))
	}
}

// GetMainRTV returns color target i's Main RTV. Fatal (panics) if the
// target has never been created via GetOrCreate, per spec.md §4.F.
func (m *ShadowRenderTargetManager) GetMainRTV(i int) gpubackend.CPUHandle {
	m.checkColorIndex(i)
	if m.color[i] == nil {
		panic(fmt.Sprintf("rendertarget: shadow color %d accessed before GetOrCreate", i))
	}
	return m.color[i].MainRTV()
}

// DepthTexture returns one of the two fixed depth textures.
func (m *ShadowRenderTargetManager) DepthTexture(i int) gpubackend.Texture2D {
	m.checkDepthIndex(i)
	return m.depth[i]
}

// DepthDSV returns depth texture i's DSV handle.
func (m *ShadowRenderTargetManager) DepthDSV(i int) gpubackend.CPUHandle {
	m.checkDepthIndex(i)
	return m.dsv[i].Allocation().CPUHandle
}

// Resolution returns the fixed square resolution shared by every shadow
// render target.
func (m *ShadowRenderTargetManager) Resolution() uint32 { return m.resolution }
