package rendertarget

import (
	"fmt"

	"github.com/voxelrt/enginecore/bindless"
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
)

// LoadAction mirrors the D3D12 render-pass load op a RenderTarget is bound
// with (SPEC_FULL supplemented detail; original_source's RenderTarget.hpp
// stores this alongside the clear value).
type LoadAction int

const (
	LoadActionClear LoadAction = iota
	LoadActionLoad
	LoadActionDontCare
)

// Builder configures a RenderTarget (spec.md §4.E). Either the scale
// factors or the absolute dimensions are used to size it; absolute wins
// when non-zero.
type Builder struct {
	Name              string
	WidthScale        float32
	HeightScale       float32
	AbsoluteWidth     uint32
	AbsoluteHeight    uint32
	Format            string
	EnableFlipper     bool
	LoadAction        LoadAction
	ClearValue        [4]float32
	EnableMipmap      bool
	AllowLinearFilter bool
	SampleCount       uint32
}

func (b Builder) resolve(baseWidth, baseHeight uint32) (uint32, uint32) {
	if b.AbsoluteWidth != 0 && b.AbsoluteHeight != 0 {
		return b.AbsoluteWidth, b.AbsoluteHeight
	}
	w := uint32(float32(baseWidth) * b.WidthScale)
	h := uint32(float32(baseHeight) * b.HeightScale)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return w, h
}

// RenderTarget holds a Main/Alt color texture pair, each with its own RTV
// in an offline heap and its own bindless registration (spec.md §3). When
// EnableFlipper is false, Alt aliases Main: same texture, same RTV, same
// bindless index.
type RenderTarget struct {
	builder Builder
	width   uint32
	height  uint32

	device    gpubackend.Device
	rtvHeap   *descriptor.HeapAllocator
	bindlessM *bindless.Manager

	main    gpubackend.Texture2D
	alt     gpubackend.Texture2D
	mainRTV descriptor.Handle
	altRTV  descriptor.Handle

	mainIndex uint32
	altIndex  uint32
}

// NewRenderTarget creates both textures, their RTVs, and their bindless
// registrations per builder, sized against (baseWidth, baseHeight).
func NewRenderTarget(device gpubackend.Device, rtvHeap *descriptor.HeapAllocator, bindlessM *bindless.Manager, builder Builder, baseWidth, baseHeight uint32) (*RenderTarget, error) {
	rt := &RenderTarget{builder: builder, device: device, rtvHeap: rtvHeap, bindlessM: bindlessM}
	if err := rt.create(baseWidth, baseHeight); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTarget) create(baseWidth, baseHeight uint32) error {
	rt.width, rt.height = rt.builder.resolve(baseWidth, baseHeight)

	main, err := rt.device.CreateTexture2D(rt.width, rt.height, rt.builder.Format)
	if err != nil {
		return fmt.Errorf("rendertarget: %s: create main texture: %w", rt.builder.Name, err)
	}
	rt.main = main

	mainAlloc, err := rt.rtvHeap.Allocate(gpubackend.HeapRTV)
	if err != nil {
		return fmt.Errorf("rendertarget: %s: allocate main rtv: %w", rt.builder.Name, err)
	}
	rt.device.WriteRenderTargetView(mainAlloc.CPUHandle, main)
	rt.mainRTV = descriptor.NewHandle(mainAlloc, rt.rtvHeap)

	idx, ok := rt.bindlessM.RegisterTexture2D(main, gpubackend.BindlessKindTexture2D)
	if !ok {
		return fmt.Errorf("rendertarget: %s: register main texture bindless", rt.builder.Name)
	}
	rt.mainIndex = idx

	if !rt.builder.EnableFlipper {
		rt.alt = rt.main
		rt.altRTV = descriptor.NonOwning(mainAlloc)
		rt.altIndex = rt.mainIndex
		return nil
	}

	alt, err := rt.device.CreateTexture2D(rt.width, rt.height, rt.builder.Format)
	if err != nil {
		return fmt.Errorf("rendertarget: %s: create alt texture: %w", rt.builder.Name, err)
	}
	rt.alt = alt

	altAlloc, err := rt.rtvHeap.Allocate(gpubackend.HeapRTV)
	if err != nil {
		return fmt.Errorf("rendertarget: %s: allocate alt rtv: %w", rt.builder.Name, err)
	}
	rt.device.WriteRenderTargetView(altAlloc.CPUHandle, alt)
	rt.altRTV = descriptor.NewHandle(altAlloc, rt.rtvHeap)

	altIdx, ok := rt.bindlessM.RegisterTexture2D(alt, gpubackend.BindlessKindTexture2D)
	if !ok {
		return fmt.Errorf("rendertarget: %s: register alt texture bindless", rt.builder.Name)
	}
	rt.altIndex = altIdx
	return nil
}

// Name returns the render target's configured name.
func (rt *RenderTarget) Name() string { return rt.builder.Name }

// GetMainTextureIndex returns Main's bindless index.
func (rt *RenderTarget) GetMainTextureIndex() uint32 { return rt.mainIndex }

// GetAltTextureIndex returns Alt's bindless index (equal to Main's when
// the flipper is disabled).
func (rt *RenderTarget) GetAltTextureIndex() uint32 { return rt.altIndex }

// MainRTV returns Main's CPU-side render target view handle.
func (rt *RenderTarget) MainRTV() gpubackend.CPUHandle { return rt.mainRTV.Allocation().CPUHandle }

// AltRTV returns Alt's CPU-side render target view handle.
func (rt *RenderTarget) AltRTV() gpubackend.CPUHandle { return rt.altRTV.Allocation().CPUHandle }

// EnableMipmap reports whether this target should receive mip generation.
func (rt *RenderTarget) EnableMipmap() bool { return rt.builder.EnableMipmap }

// MainTexture returns Main's backing texture.
func (rt *RenderTarget) MainTexture() gpubackend.Texture2D { return rt.main }

// AltTexture returns Alt's backing texture (aliases Main when the flipper
// is disabled).
func (rt *RenderTarget) AltTexture() gpubackend.Texture2D { return rt.alt }

// Width and Height report the target's current resolution.
func (rt *RenderTarget) Width() uint32  { return rt.width }
func (rt *RenderTarget) Height() uint32 { return rt.height }

// Resize recreates both textures (and, for non-aliased targets, both RTVs
// and bindless registrations) against a new base resolution. The old
// bindless indices are unregistered first since NewRenderTarget mints new
// ones (spec.md §4.F: "re-register bindless indices — indices change").
func (rt *RenderTarget) Resize(baseWidth, baseHeight uint32) error {
	if rt.main != nil {
		rt.bindlessM.Unregister(rt.main.Handle())
	}
	if rt.builder.EnableFlipper && rt.alt != nil {
		rt.bindlessM.Unregister(rt.alt.Handle())
	}
	if err := rt.mainRTV.Close(); err != nil {
		return err
	}
	if rt.builder.EnableFlipper {
		if err := rt.altRTV.Close(); err != nil {
			return err
		}
	}
	return rt.create(baseWidth, baseHeight)
}
