package chunk

import (
	"sync"

	"github.com/voxelrt/enginecore/voxel/coord"
)

const blockCount = coord.ChunkSizeX * coord.ChunkSizeY * coord.ChunkSizeZ

// BlockIndex packs local (x,y,z) into the bit layout bits[0..3]=x,
// [4..7]=y, [8..15]=z (spec.md §4.L). No arithmetic uses division or
// modulo.
func BlockIndex(x, y, z uint8) uint16 {
	return uint16(x) | uint16(y)<<4 | uint16(z)<<8
}

// Chunk is a fixed 16x16x256 block grid plus its auxiliary per-block
// arrays (spec.md §3). Storage is a linear array indexed by BlockIndex.
type Chunk struct {
	chunkX, chunkY int32

	blocks  [blockCount]BlockState
	light   [blockCount]byte
	isSky   bitset
	isDirty bitset

	mu        sync.RWMutex
	state     State
	meshDirty bool

	north, south, east, west *Chunk
}

// NewChunk allocates an Inactive chunk at the given chunk column.
func NewChunk(chunkX, chunkY int32) *Chunk {
	return &Chunk{
		chunkX:  chunkX,
		chunkY:  chunkY,
		isSky:   newBitset(blockCount),
		isDirty: newBitset(blockCount),
		state:   Inactive,
	}
}

// ChunkX and ChunkY return this chunk's column coordinates.
func (c *Chunk) ChunkX() int32 { return c.chunkX }
func (c *Chunk) ChunkY() int32 { return c.chunkY }

// State returns the chunk's current lifecycle state.
func (c *Chunk) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetState transitions the chunk to a new lifecycle state.
func (c *Chunk) SetState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// MarkMeshDirty flags this chunk as needing a mesh rebuild, set by the
// light engine whenever a block's propagated light value changes.
func (c *Chunk) MarkMeshDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshDirty = true
}

// ConsumeMeshDirty reports and clears the mesh-dirty flag, for the async
// mesh job scheduler to poll.
func (c *Chunk) ConsumeMeshDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	dirty := c.meshDirty
	c.meshDirty = false
	return dirty
}

// IsActive reports whether the chunk is usable by the external world
// interface's IsActive() (spec.md §6).
func (c *Chunk) IsActive() bool { return c.State() == Active }

// Meshable reports whether this chunk is in a meshable state and all four
// horizontal neighbors are Active (spec.md §3).
func (c *Chunk) Meshable() bool {
	if !c.State().Meshable() {
		return false
	}
	for _, n := range []*Chunk{c.north, c.south, c.east, c.west} {
		if n == nil || !n.IsActive() {
			return false
		}
	}
	return true
}

// North, South, East, West return this chunk's horizontal neighbor
// pointers; nil if not loaded.
func (c *Chunk) North() *Chunk { return c.north }
func (c *Chunk) South() *Chunk { return c.south }
func (c *Chunk) East() *Chunk  { return c.east }
func (c *Chunk) West() *Chunk  { return c.west }

// SetNeighbors wires this chunk's four horizontal neighbor pointers. The
// world generator calls this as chunks load/unload around it.
func (c *Chunk) SetNeighbors(north, south, east, west *Chunk) {
	c.north, c.south, c.east, c.west = north, south, east, west
}

// LocalToWorld converts a local (x,y,z) triple back into world BlockPos.
func (c *Chunk) LocalToWorld(x, y, z uint8) coord.BlockPos {
	return coord.BlockPos{
		X: c.chunkX<<coord.ChunkBitsX + int32(x),
		Y: c.chunkY<<coord.ChunkBitsY + int32(y),
		Z: int32(z),
	}
}

// GetBlock returns the BlockState at local (x, y, z).
func (c *Chunk) GetBlock(x, y, z uint8) BlockState {
	return c.blocks[BlockIndex(x, y, z)]
}

// SetBlock assigns the BlockState at local (x, y, z).
func (c *Chunk) SetBlock(x, y, z uint8, b BlockState) {
	c.blocks[BlockIndex(x, y, z)] = b
}

// IsSky reports whether (x, y, z) is above the highest opaque block in
// its column. Nil-safe: returns false for a nil chunk.
func (c *Chunk) IsSky(x, y, z uint8) bool {
	if c == nil {
		return false
	}
	return c.isSky.get(uint32(BlockIndex(x, y, z)))
}

// SetIsSky sets the sky-column bit at (x, y, z).
func (c *Chunk) SetIsSky(x, y, z uint8, v bool) {
	c.isSky.set(uint32(BlockIndex(x, y, z)), v)
}

// IsLightDirty reports whether (x, y, z) is pending in a light-engine
// queue.
func (c *Chunk) IsLightDirty(x, y, z uint8) bool {
	if c == nil {
		return false
	}
	return c.isDirty.get(uint32(BlockIndex(x, y, z)))
}

// SetLightDirty sets the light-dirty bit at (x, y, z).
func (c *Chunk) SetLightDirty(x, y, z uint8, v bool) {
	c.isDirty.set(uint32(BlockIndex(x, y, z)), v)
}

// GetSkyLight returns the high-nibble sky channel at (x, y, z), in
// [0, 15]. Nil-safe: returns 0 for a nil chunk (spec.md §4.N).
func (c *Chunk) GetSkyLight(x, y, z uint8) uint8 {
	if c == nil {
		return 0
	}
	return c.light[BlockIndex(x, y, z)] >> 4
}

// GetBlockLight returns the low-nibble block channel at (x, y, z), in
// [0, 15]. Nil-safe: returns 0 for a nil chunk.
func (c *Chunk) GetBlockLight(x, y, z uint8) uint8 {
	if c == nil {
		return 0
	}
	return c.light[BlockIndex(x, y, z)] & 0x0F
}

// SetSkyLight overwrites the high-nibble sky channel at (x, y, z),
// preserving the block channel.
func (c *Chunk) SetSkyLight(x, y, z uint8, v uint8) {
	idx := BlockIndex(x, y, z)
	c.light[idx] = (v&0x0F)<<4 | (c.light[idx] & 0x0F)
}

// SetBlockLight overwrites the low-nibble block channel at (x, y, z),
// preserving the sky channel.
func (c *Chunk) SetBlockLight(x, y, z uint8, v uint8) {
	idx := BlockIndex(x, y, z)
	c.light[idx] = (c.light[idx] & 0xF0) | (v & 0x0F)
}
