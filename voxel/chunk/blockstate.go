// Package chunk implements the Chunk storage, BlockState capability
// contract, Dual-Channel Light Cache, and Bit-Packed Block Iterator
// (spec.md §3, §4.L, §4.N), grounded on original_source's Chunk.hpp,
// BlockIterator.{hpp,cpp}, and the world's BlockState interface.
package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelrt/enginecore/voxel/coord"
)

// RenderShape mirrors BlockState::GetRenderShape's result.
type RenderShape int

const (
	RenderShapeInvisible RenderShape = iota
	RenderShapeModel
	RenderShapeEntityBlockAnimated
)

// RenderType mirrors BlockState::GetRenderType's result, selecting which
// of the three mesh streams a block's faces are emitted into.
type RenderType int

const (
	RenderTypeSolid RenderType = iota
	RenderTypeCutout
	RenderTypeTranslucent
)

// FaceVertex is one corner of a RenderFace's quad, in block-local
// [0,1]^3 space, in the fixed v0..v3 winding order the AO offset tables
// are indexed by (spec.md §4.I.c).
type FaceVertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

// RenderFace is one emittable quad of a block's render mesh, oriented
// along Dir, used by the Chunk Mesh Builder (spec.md §4.I).
type RenderFace struct {
	Dir  coord.Direction
	Quad [4]FaceVertex
	Tint bool
}

// FluidState mirrors BlockState::GetFluidState()'s narrow contract.
type FluidState interface {
	IsEmpty() bool
	IsSame(other FluidState) bool
}

// World is the narrow "world" collaborator a BlockState's light queries
// need (spec.md §6: "Chunk world interface").
type World interface {
	GetChunk(pos coord.BlockPos) *Chunk
}

// BlockState is the read-only external capability contract the light
// engine and mesh builder consume (spec.md §3). Concrete block/blockstate
// registries are explicitly out of scope; only this interface is assumed.
type BlockState interface {
	GetLightEmission() int
	GetLightBlock(world World, pos coord.BlockPos) int
	PropagatesSkylightDown(world World, pos coord.BlockPos) bool
	CanOcclude() bool
	IsFullOpaque() bool
	SkipRendering(neighbor BlockState, dir coord.Direction) bool
	GetRenderShape() RenderShape
	GetRenderType() RenderType
	GetRenderMesh() []RenderFace
	GetFluidState() FluidState
}

// ResolveLightBlock applies BlockState::GetLightBlock's "-1 means default"
// convention: opaque blocks default to full attenuation (15), blocks that
// let skylight pass default to 0, everything else defaults to 1.
func ResolveLightBlock(b BlockState, world World, pos coord.BlockPos) int {
	v := b.GetLightBlock(world, pos)
	if v >= 0 {
		return v
	}
	if b.IsFullOpaque() {
		return 15
	}
	if b.PropagatesSkylightDown(world, pos) {
		return 0
	}
	return 1
}
