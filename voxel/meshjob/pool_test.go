package meshjob_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/mesh"
	"github.com/voxelrt/enginecore/voxel/meshjob"
)

func activeRing(cx, cy int32) *chunk.Chunk {
	center := chunk.NewChunk(cx, cy)
	n := chunk.NewChunk(cx, cy+1)
	s := chunk.NewChunk(cx, cy-1)
	e := chunk.NewChunk(cx+1, cy)
	w := chunk.NewChunk(cx-1, cy)
	for _, c := range []*chunk.Chunk{center, n, s, e, w} {
		c.SetState(chunk.Active)
	}
	center.SetNeighbors(n, s, e, w)
	return center
}

func drainEventually(t *testing.T, p *meshjob.Pool, want int) []*meshjob.Job {
	t.Helper()
	deadline := time.After(2 * time.Second)
	var out []*meshjob.Job
	for len(out) < want {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d completed jobs, got %d", want, len(out))
		default:
		}
		out = append(out, p.DrainCompleted()...)
		if len(out) < want {
			time.Sleep(time.Millisecond)
		}
	}
	return out
}

func TestPool_BuildsMeshAsynchronously(t *testing.T) {
	c := activeRing(0, 0)
	builder := mesh.NewBuilder(1.0 / 15.0)
	pool := meshjob.NewPool(2, builder, nil)
	defer pool.Close()

	pool.Submit(&meshjob.Job{ChunkX: 0, ChunkY: 0, ChunkPtr: c, Category: meshjob.CategoryMeshBuilding, Priority: meshjob.PriorityNormal})

	done := drainEventually(t, pool, 1)
	require.Len(t, done, 1)
	assert.NotNil(t, done[0].ResultMesh())
}

func TestPool_CancelsWhenChunkLeavesActive(t *testing.T) {
	c := activeRing(0, 0)
	c.SetState(chunk.Inactive)

	builder := mesh.NewBuilder(1.0 / 15.0)
	pool := meshjob.NewPool(1, builder, nil)
	defer pool.Close()

	pool.Submit(&meshjob.Job{ChunkX: 0, ChunkY: 0, ChunkPtr: c, Category: meshjob.CategoryMeshBuilding, Priority: meshjob.PriorityNormal})

	done := drainEventually(t, pool, 1)
	assert.Nil(t, done[0].ResultMesh())
}

func TestPool_MixedPrioritiesAllComplete(t *testing.T) {
	// A Normal and a High job on a single worker both complete. The order
	// between them is not asserted: the worker may start the first job
	// before the second one is queued.
	c1 := activeRing(0, 0)
	c2 := activeRing(10, 10)
	builder := mesh.NewBuilder(1.0 / 15.0)
	pool := meshjob.NewPool(1, builder, nil)
	defer pool.Close()

	pool.Submit(&meshjob.Job{ChunkX: 0, ChunkY: 0, ChunkPtr: c1, Category: meshjob.CategoryMeshBuilding, Priority: meshjob.PriorityNormal})
	pool.Submit(&meshjob.Job{ChunkX: 10, ChunkY: 10, ChunkPtr: c2, Category: meshjob.CategoryMeshBuilding, Priority: meshjob.PriorityHigh})

	done := drainEventually(t, pool, 2)
	require.Len(t, done, 2)
}
