// Package mesh implements the Chunk Mesh Builder and Chunk Mesh Buffers
// components (spec.md §4.I-J): the two-pass algorithm that turns a
// 16x16x256 block grid into three per-pass vertex streams with face
// culling, smooth ambient occlusion, directional shading, and
// adaptive-diagonal quad triangulation. Grounded on original_source's
// ChunkMeshHelper.cpp and ChunkMeshBuilder.cpp.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Color packs an RGBA8 vertex color.
type Color struct {
	R, G, B, A uint8
}

// TerrainVertex is the vertex layout shared by all three mesh streams
// (spec.md §3).
type TerrainVertex struct {
	Position      mgl32.Vec3
	UV            mgl32.Vec2
	Normal        mgl32.Vec3
	LightmapCoord mgl32.Vec2
	Color         Color
}
