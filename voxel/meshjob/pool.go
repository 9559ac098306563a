// Package meshjob implements the Async Mesh Job component (spec.md §4.K):
// a named worker pool that runs the Chunk Mesh Builder on a background
// goroutine, then hands a finished mesh back for the main thread to
// compile to the GPU. Grounded on the teacher's particle simulation
// worker pool (particles_ecs.go's jobCh/resCh/sync.WaitGroup pattern),
// generalized from a single fixed fan-out into a long-lived named pool
// with priority ordering.
package meshjob

import (
	"container/heap"
	"sync"

	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/mesh"
)

// Category names the two task categories spec.md §6 recognizes. The pool
// itself doesn't special-case either value; it exists so callers and
// diagnostics can group jobs the way the original worker-pool categories
// did.
type Category string

const (
	CategoryMeshBuilding Category = "MeshBuilding"
	CategoryChunkGen     Category = "ChunkGen"
)

// Priority orders pending jobs across the whole pool, whatever their
// category: player-interaction rebuilds run before background rebuilds
// (spec.md §4.K).
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// Logger is the narrow logging surface the pool needs.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

// Job is one mesh-build request submitted to the pool (spec.md §4.K): a
// chunk coordinate, the chunk pointer itself, and a priority. Execute
// reruns the Chunk Mesh Builder on a worker goroutine; ResultMesh is nil
// if the chunk left Active before or during the build.
type Job struct {
	ChunkX, ChunkY int32
	ChunkPtr       *chunk.Chunk
	Category       Category
	Priority       Priority

	seq        uint64
	resultMesh *mesh.ChunkMesh
}

// Execute re-checks the chunk's (and its neighbors') meshable state, then
// runs the builder. Workers never touch GPU resources (spec.md §5); the
// result is only compiled to the GPU later, on the main thread, via
// mesh.ChunkMesh.CompileToGPU.
func (j *Job) Execute(builder *mesh.Builder) {
	if !j.ChunkPtr.Meshable() {
		j.resultMesh = nil
		return
	}
	m, err := builder.Build(j.ChunkPtr)
	if err != nil {
		j.resultMesh = nil
		return
	}
	j.resultMesh = m
}

// jobHeap orders pending jobs by priority (High before Normal), FIFO
// within a priority tier via each Job's assigned sequence number.
type jobHeap struct {
	items []*Job
}

func (h *jobHeap) Len() int { return len(h.items) }
func (h *jobHeap) Less(i, k int) bool {
	if h.items[i].Priority != h.items[k].Priority {
		return h.items[i].Priority > h.items[k].Priority
	}
	return h.items[i].seq < h.items[k].seq
}
func (h *jobHeap) Swap(i, k int) { h.items[i], h.items[k] = h.items[k], h.items[i] }
func (h *jobHeap) Push(x any)    { h.items = append(h.items, x.(*Job)) }
func (h *jobHeap) Pop() any {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]
	return item
}

// Pool is a fixed-size worker pool draining a priority queue of mesh
// build jobs (spec.md §4.K). The main thread submits jobs via Submit and
// drains finished ones via DrainCompleted once per frame; workers own
// nothing but their own job's scratch memory (spec.md §5).
type Pool struct {
	builder *mesh.Builder
	logger  Logger

	mu       sync.Mutex
	cond     *sync.Cond
	pending  jobHeap
	nextSeq  uint64
	closed   bool
	workers  int
	wg       sync.WaitGroup

	completedMu sync.Mutex
	completed   []*Job
}

// NewPool starts size worker goroutines draining jobs through builder.
// size is WorkerPoolSize from Config (spec.md §6); implementation-defined,
// so the caller decides how many goroutines to spend on mesh building.
func NewPool(size int, builder *mesh.Builder, logger Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = nopLogger{}
	}
	p := &Pool{builder: builder, logger: logger, workers: size}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a job for asynchronous execution, returning immediately.
func (p *Pool) Submit(j *Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	j.seq = p.nextSeq
	p.nextSeq++
	heap.Push(&p.pending, j)
	p.cond.Signal()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for p.pending.Len() == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.closed && p.pending.Len() == 0 {
			p.mu.Unlock()
			return
		}
		j := heap.Pop(&p.pending).(*Job)
		p.mu.Unlock()

		j.Execute(p.builder)
		if j.resultMesh == nil {
			p.logger.Debugf("meshjob: chunk (%d,%d) build aborted, chunk left Active", j.ChunkX, j.ChunkY)
		}

		p.completedMu.Lock()
		p.completed = append(p.completed, j)
		p.completedMu.Unlock()
	}
}

// DrainCompleted returns and clears every job that has finished since the
// last call. The main thread calls this once per frame, then runs each
// job's resulting mesh through ChunkMesh.CompileToGPU (spec.md §4.K).
func (p *Pool) DrainCompleted() []*Job {
	p.completedMu.Lock()
	defer p.completedMu.Unlock()
	if len(p.completed) == 0 {
		return nil
	}
	out := p.completed
	p.completed = nil
	return out
}

// Close stops accepting new jobs and waits until the workers have run
// every job already submitted, queued or in flight, then exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
}

// ResultMesh returns the job's built mesh, or nil if the build was
// aborted or cancelled.
func (j *Job) ResultMesh() *mesh.ChunkMesh { return j.resultMesh }

// WorkerCount reports how many goroutines this pool is running.
func (p *Pool) WorkerCount() int { return p.workers }
