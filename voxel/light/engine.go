// Package light implements the dual-channel (sky + block) voxel light
// propagation engine (spec.md §4.G-H), grounded on original_source's
// LightEngine.{hpp,cpp}, BlockLightEngine.cpp, and SkyLightEngine.cpp.
package light

import (
	"fmt"

	"github.com/voxelrt/enginecore/voxel/chunk"
)

// Logger is the narrow logging surface the light engine needs.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// Channel is the per-channel strategy a concrete light engine plugs into
// the shared BFS driver (spec.md §4.G: "concrete subclasses implement
// GetLightValue, ComputeCorrectLight, and raw SetLightValue/
// GetCurrentLightValue").
type Channel interface {
	// ComputeCorrectLight derives the value a block should currently hold
	// from its neighbors and its own block state.
	ComputeCorrectLight(it chunk.BlockIterator) uint8
	// GetCurrentLightValue reads the channel's stored value at (x,y,z).
	GetCurrentLightValue(c *chunk.Chunk, x, y, z uint8) uint8
	// SetLightValue writes the channel's stored value at (x,y,z).
	SetLightValue(c *chunk.Chunk, x, y, z uint8, v uint8)
}

// Engine drives one channel's dirty-block BFS queue (spec.md §4.G). It
// holds a FIFO queue of BlockIterators and a non-owning reference to the
// channel strategy; it does not own the world.
type Engine struct {
	channel Channel
	queue   []chunk.BlockIterator
	logger  Logger
}

// NewEngine creates an Engine driving channel.
func NewEngine(channel Channel, logger Logger) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Engine{channel: channel, logger: logger}
}

// MarkDirty enqueues it unless it is invalid or already pending
// (deduplicated via the chunk's isLightDirty bit).
func (e *Engine) MarkDirty(it chunk.BlockIterator) {
	if !it.IsValid() {
		e.logger.Warnf("light: %v", fmt.Errorf("mark dirty: %w", ErrInvalidBlockIterator))
		return
	}
	c := it.Chunk()
	x, y, z := it.LocalX(), it.LocalY(), it.LocalZ()
	if c.IsLightDirty(x, y, z) {
		return
	}
	c.SetLightDirty(x, y, z, true)
	e.queue = append(e.queue, it)
}

// MarkDirtyIfNotOpaque enqueues it only if its block does not fully
// occlude light (spec.md §4.G's "!neighbor.IsOpaque" neighbor check,
// resolved against the BlockState capability list as IsFullOpaque).
func (e *Engine) MarkDirtyIfNotOpaque(it chunk.BlockIterator) {
	if !it.IsValid() {
		return
	}
	if b := it.GetBlock(); b != nil && b.IsFullOpaque() {
		return
	}
	e.MarkDirty(it)
}

// QueueLen reports how many entries are pending, for diagnostics and
// tests.
func (e *Engine) QueueLen() int { return len(e.queue) }

// ProcessDirtyQueue drains the queue to exhaustion, running the shared BFS
// algorithm from spec.md §4.G. A single call must fully converge before
// the next frame's mesh build starts.
func (e *Engine) ProcessDirtyQueue() {
	for len(e.queue) > 0 {
		it := e.queue[0]
		e.queue = e.queue[1:]

		if !it.IsValid() {
			e.logger.Warnf("light: %v", fmt.Errorf("process dirty queue: %w", ErrInvalidBlockIterator))
			continue
		}
		c := it.Chunk()
		if c == nil {
			continue
		}
		x, y, z := it.LocalX(), it.LocalY(), it.LocalZ()
		c.SetLightDirty(x, y, z, false)

		correct := e.channel.ComputeCorrectLight(it)
		current := e.channel.GetCurrentLightValue(c, x, y, z)
		if correct == current {
			continue
		}
		e.channel.SetLightValue(c, x, y, z, correct)
		c.MarkMeshDirty()

		for _, n := range it.GetNeighbors() {
			if !n.IsValid() {
				continue
			}
			if b := n.GetBlock(); b != nil && b.IsFullOpaque() {
				continue
			}
			e.MarkDirty(n)
			if n.Chunk() != c {
				n.Chunk().MarkMeshDirty()
			}
		}
	}
}

// UndirtyAllBlocksInChunk scrubs every queued entry belonging to c,
// clearing their dirty bits, without processing them. Called when a chunk
// unloads.
func (e *Engine) UndirtyAllBlocksInChunk(c *chunk.Chunk) {
	kept := e.queue[:0]
	for _, it := range e.queue {
		if it.Chunk() == c {
			c.SetLightDirty(it.LocalX(), it.LocalY(), it.LocalZ(), false)
			continue
		}
		kept = append(kept, it)
	}
	e.queue = kept
}
