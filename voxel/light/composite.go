package light

import "github.com/voxelrt/enginecore/voxel/chunk"

// Composite owns one block and one sky Engine and answers combined
// brightness queries (spec.md §4.H), grounded on original_source's
// CompositeLightEngine.hpp.
type Composite struct {
	block *Engine
	sky   *Engine
}

// NewComposite creates a Composite whose two channels read block state
// through world.
func NewComposite(world chunk.World, logger Logger) *Composite {
	return &Composite{
		block: NewEngine(NewBlockChannel(world), logger),
		sky:   NewEngine(NewSkyChannel(world), logger),
	}
}

// BlockEngine and SkyEngine expose the underlying per-channel engines, for
// callers that need to mark a single channel dirty (e.g. a light source
// placed/removed only affects the block channel).
func (c *Composite) BlockEngine() *Engine { return c.block }
func (c *Composite) SkyEngine() *Engine   { return c.sky }

// MarkDirty enqueues it on both channels.
func (c *Composite) MarkDirty(it chunk.BlockIterator) {
	c.block.MarkDirty(it)
	c.sky.MarkDirty(it)
}

// RunLightUpdates drains the block queue to exhaustion, then the sky
// queue — order matters only in that combined queries must see final sky
// values (spec.md §4.H).
func (c *Composite) RunLightUpdates() {
	c.block.ProcessDirtyQueue()
	c.sky.ProcessDirtyQueue()
}

// GetRawBrightness returns max(skyLight - skyDarken, blockLight) at
// (x, y, z) in ch. Nil-safe via Chunk's nil-safe getters.
func (c *Composite) GetRawBrightness(ch *chunk.Chunk, x, y, z uint8, skyDarken uint8) uint8 {
	sky := int(ch.GetSkyLight(x, y, z)) - int(skyDarken)
	if sky < 0 {
		sky = 0
	}
	block := int(ch.GetBlockLight(x, y, z))
	if sky > block {
		return uint8(sky)
	}
	return uint8(block)
}

// UndirtyAllBlocksInChunk forwards to both channel engines, scrubbing
// their queues when ch unloads.
func (c *Composite) UndirtyAllBlocksInChunk(ch *chunk.Chunk) {
	c.block.UndirtyAllBlocksInChunk(ch)
	c.sky.UndirtyAllBlocksInChunk(ch)
}
