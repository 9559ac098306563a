// Package gpubackend defines the external GPU-backend contract that
// descriptor, bindless, and rendertarget are written against (spec.md §6).
// The core packages never import a concrete graphics API directly; a real
// backend (see gpubackend/webgpu) implements these interfaces. This mirrors
// the teacher's own split between voxelrt/rt/gpu (hand-rolled slot
// allocation) and the concrete wgpu.Device it wraps.
package gpubackend

import "github.com/google/uuid"

// HeapType enumerates the four descriptor heap kinds a backend must expose.
type HeapType int

const (
	HeapCBVSRVUAV HeapType = iota
	HeapRTV
	HeapDSV
	HeapSampler
)

func (t HeapType) String() string {
	switch t {
	case HeapCBVSRVUAV:
		return "CBV_SRV_UAV"
	case HeapRTV:
		return "RTV"
	case HeapDSV:
		return "DSV"
	case HeapSampler:
		return "Sampler"
	default:
		return "Unknown"
	}
}

// ResourceHandle identifies a registered GPU resource across the bindless
// boundary. Textures and buffers from the concrete backend don't have a
// common comparable Go identity, so the backend stamps one on registration,
// the same way the teacher stamps an AssetId(uuid.NewString()) onto loaded
// assets (mod_assets.go).
type ResourceHandle uuid.UUID

func NewResourceHandle() ResourceHandle { return ResourceHandle(uuid.New()) }

func (h ResourceHandle) String() string { return uuid.UUID(h).String() }

// CPUHandle is an opaque, backend-defined location a descriptor can be
// written to. It is never dereferenced by core packages.
type CPUHandle any

// GPUHandle is an opaque, backend-defined shader-visible reference to a
// written descriptor (a HLSL bindless index, or an equivalent).
type GPUHandle any

// Texture2D is the minimal read-only surface the bindless manager and
// render-target manager need from a color/depth texture.
type Texture2D interface {
	Handle() ResourceHandle
	Width() uint32
	Height() uint32
}

// Buffer is the minimal read-only surface for a structured/constant buffer.
type Buffer interface {
	Handle() ResourceHandle
	SizeBytes() uint64
}

// DescriptorHeap is one heap of a given type and fixed capacity. Index i is
// in [0, Capacity).
type DescriptorHeap interface {
	Type() HeapType
	Capacity() uint32
	CPUHandleAt(index uint32) CPUHandle
	GPUHandleAt(index uint32) GPUHandle
}

// Device is the subset of a GPU device needed to create heaps and write
// views into them (spec.md §6's "GPU backend contract").
type Device interface {
	CreateDescriptorHeap(heapType HeapType, capacity uint32) (DescriptorHeap, error)

	WriteShaderResourceView(cpu CPUHandle, tex Texture2D)
	WriteConstantBufferView(cpu CPUHandle, buf Buffer)
	WriteUnorderedAccessView(cpu CPUHandle, res Texture2D)
	WriteRenderTargetView(cpu CPUHandle, tex Texture2D)
	WriteDepthStencilView(cpu CPUHandle, tex Texture2D)
	CopyDescriptorsSimple(dst, src CPUHandle, count uint32, heapType HeapType)

	CreateTexture2D(width, height uint32, format string) (Texture2D, error)

	// CreateBuffer allocates a GPU-visible buffer of sizeBytes, used for
	// vertex/index buffers (spec.md §4.J) and small per-frame constant
	// buffers (spec.md §3's RenderTargetsBuffer) alike.
	CreateBuffer(sizeBytes uint64) (Buffer, error)
	// UploadBuffer overwrites buf's contents from data, used for the
	// CPU-to-GPU compile step and per-frame constant buffer refreshes.
	UploadBuffer(buf Buffer, data []byte)
}

// CommandList is the subset needed to bind heaps and descriptor tables
// before issuing draws; it has no knowledge of bindless indices itself.
type CommandList interface {
	SetDescriptorHeaps(heaps ...DescriptorHeap)
	SetGraphicsRootDescriptorTable(rootParam uint32, gpu GPUHandle)
	SetComputeRootDescriptorTable(rootParam uint32, gpu GPUHandle)
	OMSetRenderTargets(rtvs []CPUHandle, dsv CPUHandle)

	// GenerateMipmaps dispatches the backend's mip-chain generation for
	// tex (spec.md §4.F: render targets built with EnableMipmap set get
	// their mip chain regenerated after each write).
	GenerateMipmaps(tex Texture2D)
}

// BindlessKind is metadata attached to a bindless registration. Per
// spec.md §9's Open Question, the manager does nothing with it beyond
// storage and the one diagnostic accessor below (SPEC_FULL's
// ResourceBindingTraits parity).
type BindlessKind int

const (
	BindlessKindTexture2D BindlessKind = iota
	BindlessKindStructuredBuffer
	BindlessKindConstantBuffer
	BindlessKindRWTexture2D
	BindlessKindRWStructuredBuffer
)

// DescribeBinding returns the HLSL-facing shape a bindless registration of
// this kind expects, mirroring original_source's ResourceBindingTraits.hpp.
func (k BindlessKind) DescribeBinding() string {
	switch k {
	case BindlessKindTexture2D:
		return "Texture2D"
	case BindlessKindStructuredBuffer:
		return "StructuredBuffer"
	case BindlessKindConstantBuffer:
		return "ConstantBuffer"
	case BindlessKindRWTexture2D:
		return "RWTexture2D"
	case BindlessKindRWStructuredBuffer:
		return "RWStructuredBuffer"
	default:
		return "Unknown"
	}
}
