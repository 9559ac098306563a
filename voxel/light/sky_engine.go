package light

import (
	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/coord"
)

// SkyChannel implements Channel for the skylight field (spec.md §4.G,
// "Sky light"), grounded on original_source's SkyLightEngine.cpp.
type SkyChannel struct {
	world chunk.World
}

// NewSkyChannel creates a SkyChannel reading neighbor block state through
// world.
func NewSkyChannel(world chunk.World) *SkyChannel {
	return &SkyChannel{world: world}
}

// ComputeCorrectLight implements SkyLightEngine::ComputeCorrectLight.
func (sc *SkyChannel) ComputeCorrectLight(it chunk.BlockIterator) uint8 {
	c := it.Chunk()
	x, y, z := it.LocalX(), it.LocalY(), it.LocalZ()
	if c.IsSky(x, y, z) {
		return 15
	}

	state := it.GetBlock()
	if state == nil {
		return 0
	}
	pos := it.GetBlockPos()
	lightBlock := chunk.ResolveLightBlock(state, sc.world, pos)
	if lightBlock >= 15 {
		return 0
	}
	propagatesDown := state.PropagatesSkylightDown(sc.world, pos)
	attenuation := lightBlock
	if attenuation < 1 {
		attenuation = 1
	}

	best := 0
	for _, dir := range coord.Directions {
		n := it.GetNeighbor(dir)
		if !n.IsValid() {
			continue
		}
		nv := int(n.Chunk().GetSkyLight(n.LocalX(), n.LocalY(), n.LocalZ()))
		if nv == 0 {
			continue
		}

		var candidate int
		if dir == coord.Up && propagatesDown && nv == 15 {
			candidate = 15
		} else if nv > attenuation {
			candidate = nv - attenuation
		}
		if candidate > best {
			best = candidate
		}
	}
	return clamp15(best)
}

// GetCurrentLightValue reads the chunk's stored sky-light nibble.
func (sc *SkyChannel) GetCurrentLightValue(c *chunk.Chunk, x, y, z uint8) uint8 {
	return c.GetSkyLight(x, y, z)
}

// SetLightValue writes the chunk's sky-light nibble.
func (sc *SkyChannel) SetLightValue(c *chunk.Chunk, x, y, z uint8, v uint8) {
	c.SetSkyLight(x, y, z, v)
}
