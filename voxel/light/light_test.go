package light_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/coord"
	"github.com/voxelrt/enginecore/voxel/light"
)

type fakeFluid struct{ empty bool }

func (f fakeFluid) IsEmpty() bool                    { return f.empty }
func (f fakeFluid) IsSame(other chunk.FluidState) bool { return true }

type fakeBlock struct {
	emission      int
	lightBlock    int
	propagatesOut bool
	fullOpaque    bool
}

func (b *fakeBlock) GetLightEmission() int { return b.emission }
func (b *fakeBlock) GetLightBlock(chunk.World, coord.BlockPos) int { return b.lightBlock }
func (b *fakeBlock) PropagatesSkylightDown(chunk.World, coord.BlockPos) bool {
	return b.propagatesOut
}
func (b *fakeBlock) CanOcclude() bool    { return b.fullOpaque }
func (b *fakeBlock) IsFullOpaque() bool  { return b.fullOpaque }
func (b *fakeBlock) SkipRendering(chunk.BlockState, coord.Direction) bool { return false }
func (b *fakeBlock) GetRenderShape() chunk.RenderShape                    { return chunk.RenderShapeModel }
func (b *fakeBlock) GetRenderType() chunk.RenderType                      { return chunk.RenderTypeSolid }
func (b *fakeBlock) GetRenderMesh() []chunk.RenderFace                    { return nil }
func (b *fakeBlock) GetFluidState() chunk.FluidState                      { return fakeFluid{empty: true} }

func airBlock() *fakeBlock   { return &fakeBlock{lightBlock: 0, propagatesOut: true} }
func torchBlock() *fakeBlock { return &fakeBlock{emission: 14, lightBlock: 0, propagatesOut: true} }

type fakeWorld struct{}

func (fakeWorld) GetChunk(coord.BlockPos) *chunk.Chunk { return nil }

func filledChunk() *chunk.Chunk {
	c := chunk.NewChunk(0, 0)
	c.SetState(chunk.Active)
	for x := uint8(0); x < coord.ChunkSizeX; x++ {
		for y := uint8(0); y < coord.ChunkSizeY; y++ {
			for z := uint8(0); z < 16; z++ {
				c.SetBlock(x, y, z, airBlock())
			}
		}
	}
	return c
}

func TestBlockEngine_PropagatesOneStepFromEmitter(t *testing.T) {
	c := filledChunk()
	c.SetBlock(8, 8, 8, torchBlock())

	engine := light.NewEngine(light.NewBlockChannel(fakeWorld{}), nil)
	engine.MarkDirty(chunk.NewBlockIterator(c, 8, 8, 8))
	engine.ProcessDirtyQueue()

	assert.Equal(t, uint8(14), c.GetBlockLight(8, 8, 8))
	assert.Equal(t, uint8(13), c.GetBlockLight(9, 8, 8))
	assert.Equal(t, uint8(13), c.GetBlockLight(8, 8, 9))
}

func TestBlockEngine_QueueDrainsToEmpty(t *testing.T) {
	c := filledChunk()
	c.SetBlock(8, 8, 8, torchBlock())

	engine := light.NewEngine(light.NewBlockChannel(fakeWorld{}), nil)
	engine.MarkDirty(chunk.NewBlockIterator(c, 8, 8, 8))
	engine.ProcessDirtyQueue()

	assert.Equal(t, 0, engine.QueueLen())
}

func TestSkyEngine_SkyColumnIsFullBright(t *testing.T) {
	c := filledChunk()
	c.SetIsSky(5, 5, 15, true)

	engine := light.NewEngine(light.NewSkyChannel(fakeWorld{}), nil)
	engine.MarkDirty(chunk.NewBlockIterator(c, 5, 5, 15))
	engine.ProcessDirtyQueue()

	assert.Equal(t, uint8(15), c.GetSkyLight(5, 5, 15))
}

func TestComposite_GetRawBrightness_TakesMax(t *testing.T) {
	c := filledChunk()
	c.SetSkyLight(1, 1, 1, 10)
	c.SetBlockLight(1, 1, 1, 4)

	comp := light.NewComposite(fakeWorld{}, nil)
	assert.Equal(t, uint8(8), comp.GetRawBrightness(c, 1, 1, 1, 2))
	assert.Equal(t, uint8(4), comp.GetRawBrightness(c, 1, 1, 1, 10))
}

func TestEngine_MarkDirtyDeduplicates(t *testing.T) {
	c := filledChunk()
	engine := light.NewEngine(light.NewBlockChannel(fakeWorld{}), nil)

	it := chunk.NewBlockIterator(c, 0, 0, 0)
	engine.MarkDirty(it)
	engine.MarkDirty(it)
	require.Equal(t, 1, engine.QueueLen())
}

func TestEngine_UndirtyAllBlocksInChunkScrubsQueue(t *testing.T) {
	c := filledChunk()
	engine := light.NewEngine(light.NewBlockChannel(fakeWorld{}), nil)
	engine.MarkDirty(chunk.NewBlockIterator(c, 0, 0, 0))
	engine.MarkDirty(chunk.NewBlockIterator(c, 1, 0, 0))

	engine.UndirtyAllBlocksInChunk(c)
	assert.Equal(t, 0, engine.QueueLen())
	assert.False(t, c.IsLightDirty(0, 0, 0))
}
