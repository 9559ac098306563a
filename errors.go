package enginecore

import (
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/voxel/light"
	"github.com/voxelrt/enginecore/voxel/mesh"
)

// Re-exported sentinel errors for every failure mode named in spec.md §7,
// so callers that only import the root package don't need to reach into
// subpackages to errors.Is against them. Each lives where it's raised;
// this file just aliases.
var (
	ErrHeapExhausted     = descriptor.ErrHeapExhausted
	ErrInsufficientSpace = descriptor.ErrInsufficientSpace
	ErrInvalidAllocation = descriptor.ErrInvalidAllocation
	ErrInvalidHandle     = descriptor.ErrInvalidHandle

	ErrInvalidBlockIterator = light.ErrInvalidBlockIterator
	ErrChunkNotLoaded       = light.ErrChunkNotLoaded
	ErrLightPropagation     = light.ErrLightPropagation

	ErrMeshBuildAborted = mesh.ErrMeshBuildAborted
)
