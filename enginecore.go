// Package enginecore wires the bindless descriptor system (A-C), the
// render-target flip manager (D-F), and the voxel light/mesh pipeline
// (G-N) into one facade, the way the teacher's app_builder.go wires its
// ECS modules together behind NewApp().UseModules(...) — minus the
// ECS/module machinery that pattern exists for, since this core has a
// fixed, known set of subsystems rather than a plugin registry.
package enginecore

import (
	"fmt"

	"github.com/voxelrt/enginecore/bindless"
	"github.com/voxelrt/enginecore/descriptor"
	"github.com/voxelrt/enginecore/gpubackend"
	"github.com/voxelrt/enginecore/rendertarget"
	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/light"
	"github.com/voxelrt/enginecore/voxel/mesh"
	"github.com/voxelrt/enginecore/voxel/meshjob"
)

// Engine is the root facade over every spec.md component: the descriptor
// heap allocator (A), the bindless resource manager (C), the render
// target and shadow render target managers (E-F), the composite light
// engine (G-H), the mesh builder (I) and its async job pool (K). It owns
// construction order (A before C before E/F, since each layers on the
// one before it) so callers don't have to.
type Engine struct {
	cfg    Config
	logger Logger

	Heaps    *descriptor.HeapAllocator
	Bindless *bindless.Manager

	RenderTargets *rendertarget.Manager
	ShadowTargets *rendertarget.ShadowRenderTargetManager

	Light *light.Composite
	Mesh  *mesh.Builder
	Jobs  *meshjob.Pool
}

// New constructs an Engine from cfg against device, sized to
// (baseWidth, baseHeight) for the primary render targets, driving world
// for the light engine's BlockState queries. shadowColorBuilder describes
// the shadow pass's color target format (spec.md §4.F); callers needing
// no shadow pass at all can pass a zero-initialized rendertarget.Builder
// since ShadowRenderTargetManager creates color targets lazily.
func New(cfg Config, device gpubackend.Device, world chunk.World, baseWidth, baseHeight uint32, shadowColorBuilder rendertarget.Builder, logger Logger) (*Engine, error) {
	if logger == nil {
		logger = NewNopLogger()
	}

	heaps, err := descriptor.NewHeapAllocator(device, cfg.InitialBindlessCapacity, cfg.RTVHeapCapacity, cfg.DSVHeapCapacity, cfg.SamplerHeapCapacity)
	if err != nil {
		return nil, fmt.Errorf("enginecore: descriptor heaps: %w", err)
	}

	bindlessM := bindless.NewManager(heaps, device, cfg.InitialBindlessCapacity, cfg.MaxBindlessCapacity, cfg.GrowthFactor, logger)

	rtManager := rendertarget.NewManager(device, heaps, bindlessM, baseWidth, baseHeight)

	shadowManager, err := rendertarget.NewShadowRenderTargetManager(device, heaps, heaps, bindlessM, cfg.ShadowResolution, shadowColorBuilder)
	if err != nil {
		return nil, fmt.Errorf("enginecore: shadow render targets: %w", err)
	}

	lightEngine := light.NewComposite(world, logger)
	meshBuilder := mesh.NewBuilder(cfg.MinAmbientSkylight)
	jobPool := meshjob.NewPool(cfg.WorkerPoolSize, meshBuilder, logger)

	return &Engine{
		cfg:           cfg,
		logger:        logger,
		Heaps:         heaps,
		Bindless:      bindlessM,
		RenderTargets: rtManager,
		ShadowTargets: shadowManager,
		Light:         lightEngine,
		Mesh:          meshBuilder,
		Jobs:          jobPool,
	}, nil
}

// Config returns the configuration this Engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// SubmitMeshJob schedules an asynchronous mesh rebuild for c (spec.md
// §4.K). The caller is expected to drain completed jobs once per frame
// via DrainMeshJobs and run each result through ChunkMesh.CompileToGPU
// on the main thread.
func (e *Engine) SubmitMeshJob(c *chunk.Chunk, category meshjob.Category, priority meshjob.Priority) {
	e.Jobs.Submit(&meshjob.Job{
		ChunkX:   c.ChunkX(),
		ChunkY:   c.ChunkY(),
		ChunkPtr: c,
		Category: category,
		Priority: priority,
	})
}

// DrainMeshJobs returns every mesh job that finished since the last call.
// Main-thread only (spec.md §4.J).
func (e *Engine) DrainMeshJobs() []*meshjob.Job { return e.Jobs.DrainCompleted() }

// EndFrame runs the per-frame main-thread bookkeeping spec.md §5 requires
// in order: light convergence before any mesh build consults it, then the
// render-target flip-state upload before any draw samples it.
func (e *Engine) EndFrame() error {
	e.Light.RunLightUpdates()
	e.RenderTargets.FlipAll()
	_, err := e.RenderTargets.BuildRenderTargetsBuffer()
	return err
}

// Close stops the mesh job pool's worker goroutines, waiting for every
// already-submitted build, queued or in flight, to finish.
func (e *Engine) Close() { e.Jobs.Close() }
