package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/coord"
)

func activeChunk(x, y int32) *chunk.Chunk {
	c := chunk.NewChunk(x, y)
	c.SetState(chunk.Active)
	return c
}

func TestBlockIterator_WithinChunkSteps(t *testing.T) {
	c := activeChunk(0, 0)
	it := chunk.NewBlockIterator(c, 5, 5, 5)

	east := it.GetNeighbor(coord.East)
	require.True(t, east.IsValid())
	assert.Equal(t, chunk.BlockIndex(6, 5, 5), east.Index())

	up := it.GetNeighbor(coord.Up)
	require.True(t, up.IsValid())
	assert.Equal(t, chunk.BlockIndex(5, 5, 6), up.Index())
}

func TestBlockIterator_CrossesChunkBoundaryNorth(t *testing.T) {
	here := activeChunk(0, 0)
	north := activeChunk(0, 1)
	here.SetNeighbors(north, nil, nil, nil)

	it := chunk.NewBlockIterator(here, 10, coord.ChunkSizeY-1, 64)
	n := it.GetNeighbor(coord.North)

	require.True(t, n.IsValid())
	assert.Same(t, north, n.Chunk())
	assert.Equal(t, chunk.BlockIndex(10, 0, 64), n.Index())
}

func TestBlockIterator_InvalidWhenNeighborMissing(t *testing.T) {
	here := activeChunk(0, 0)
	it := chunk.NewBlockIterator(here, 10, coord.ChunkSizeY-1, 64)
	assert.False(t, it.GetNeighbor(coord.North).IsValid())
}

func TestBlockIterator_InvalidWhenNeighborNotActive(t *testing.T) {
	here := activeChunk(0, 0)
	loading := chunk.NewChunk(0, 1)
	loading.SetState(chunk.Loading)
	here.SetNeighbors(loading, nil, nil, nil)

	it := chunk.NewBlockIterator(here, 10, coord.ChunkSizeY-1, 64)
	assert.False(t, it.GetNeighbor(coord.North).IsValid())
}

func TestBlockIterator_WorldTopAndBottomAreInvalid(t *testing.T) {
	c := activeChunk(0, 0)
	top := chunk.NewBlockIterator(c, 0, 0, coord.ChunkSizeZ-1)
	assert.False(t, top.GetNeighbor(coord.Up).IsValid())

	bottom := chunk.NewBlockIterator(c, 0, 0, 0)
	assert.False(t, bottom.GetNeighbor(coord.Down).IsValid())
}

func TestBlockIterator_GetNeighborsFixedOrder(t *testing.T) {
	c := activeChunk(0, 0)
	it := chunk.NewBlockIterator(c, 8, 8, 8)
	ns := it.GetNeighbors()
	assert.Equal(t, chunk.BlockIndex(8, 9, 8), ns[0].Index())  // North
	assert.Equal(t, chunk.BlockIndex(8, 7, 8), ns[1].Index())  // South
	assert.Equal(t, chunk.BlockIndex(9, 8, 8), ns[2].Index())  // East
	assert.Equal(t, chunk.BlockIndex(7, 8, 8), ns[3].Index())  // West
	assert.Equal(t, chunk.BlockIndex(8, 8, 9), ns[4].Index())  // Up
	assert.Equal(t, chunk.BlockIndex(8, 8, 7), ns[5].Index())  // Down
}
