package light

import "github.com/voxelrt/enginecore/voxel/chunk"

// BlockChannel implements Channel for the block-light field (spec.md
// §4.G, "Block light"), grounded on original_source's
// BlockLightEngine.cpp.
type BlockChannel struct {
	world chunk.World
}

// NewBlockChannel creates a BlockChannel reading neighbor block state
// through world.
func NewBlockChannel(world chunk.World) *BlockChannel {
	return &BlockChannel{world: world}
}

// ComputeCorrectLight implements BlockLightEngine::ComputeCorrectLight.
func (bc *BlockChannel) ComputeCorrectLight(it chunk.BlockIterator) uint8 {
	state := it.GetBlock()
	if state == nil {
		return 0
	}
	pos := it.GetBlockPos()
	emission := state.GetLightEmission()

	lightBlock := chunk.ResolveLightBlock(state, bc.world, pos)
	if lightBlock >= 15 {
		return clamp15(emission)
	}
	attenuation := lightBlock
	if attenuation < 1 {
		attenuation = 1
	}

	best := 0
	for _, n := range it.GetNeighbors() {
		if !n.IsValid() {
			continue
		}
		nv := int(n.Chunk().GetBlockLight(n.LocalX(), n.LocalY(), n.LocalZ()))
		if nv > attenuation {
			if candidate := nv - attenuation; candidate > best {
				best = candidate
			}
		}
	}

	result := emission
	if best > result {
		result = best
	}
	return clamp15(result)
}

// GetCurrentLightValue reads the chunk's stored block-light nibble.
func (bc *BlockChannel) GetCurrentLightValue(c *chunk.Chunk, x, y, z uint8) uint8 {
	return c.GetBlockLight(x, y, z)
}

// SetLightValue writes the chunk's block-light nibble.
func (bc *BlockChannel) SetLightValue(c *chunk.Chunk, x, y, z uint8, v uint8) {
	c.SetBlockLight(x, y, z, v)
}

func clamp15(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 15 {
		return 15
	}
	return uint8(v)
}
