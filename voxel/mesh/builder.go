package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelrt/enginecore/voxel/chunk"
	"github.com/voxelrt/enginecore/voxel/coord"
)

// Builder runs the two-pass Chunk Mesh Build algorithm (spec.md §4.I),
// grounded on original_source's ChunkMeshBuilder.cpp. A Builder is
// stateless aside from its configuration and safe for concurrent use by
// multiple worker goroutines, each building a different chunk.
type Builder struct {
	// MinAmbientSkylight floors a face's skylight lightmap coordinate when
	// its light-sampling neighbor is missing or in an unloaded chunk
	// (spec.md §4.I.b), as a fraction of full (15/15).
	MinAmbientSkylight float32
}

// NewBuilder returns a Builder with the given ambient-skylight floor.
func NewBuilder(minAmbientSkylight float32) *Builder {
	return &Builder{MinAmbientSkylight: minAmbientSkylight}
}

// streamKind selects which of a ChunkMesh's three streams a face's
// geometry is appended to.
type streamKind int

const (
	streamOpaque streamKind = iota
	streamCutout
	streamTranslucent
)

func kindOf(rt chunk.RenderType) streamKind {
	switch rt {
	case chunk.RenderTypeCutout:
		return streamCutout
	case chunk.RenderTypeTranslucent:
		return streamTranslucent
	default:
		return streamOpaque
	}
}

// visibleFace is one kept (block, direction) pair discovered in pass 1,
// carried into pass 2 unchanged so both passes walk identical work.
type visibleFace struct {
	it   chunk.BlockIterator
	self chunk.BlockState
	dir  coord.Direction
}

// Build runs the full two-pass algorithm against c and its four loaded
// horizontal neighbors, returning a populated ChunkMesh. Preconditions
// (spec.md §4.I): c must be Active throughout; all four horizontal
// neighbors must be Active. A state change discovered at entry or mid-
// iteration aborts the build and returns ErrMeshBuildAborted for the
// caller to reschedule.
func (b *Builder) Build(c *chunk.Chunk) (*ChunkMesh, error) {
	if !c.Meshable() {
		return nil, ErrMeshBuildAborted
	}

	faces, err := b.collectVisibleFaces(c)
	if err != nil {
		return nil, err
	}

	var counts [3]int
	backfaceCount := 0
	for _, f := range faces {
		counts[kindOf(f.self.GetRenderType())] += len(facesInDir(f.self, f.dir))
		if isWaterBackfaceCandidate(f) {
			backfaceCount += len(facesInDir(f.self, f.dir))
		}
	}

	mesh := &ChunkMesh{}
	reserve(&mesh.Opaque, counts[streamOpaque])
	reserve(&mesh.Cutout, counts[streamCutout])
	reserve(&mesh.Translucent, counts[streamTranslucent])
	if backfaceCount > 0 {
		reserve(mesh.translucentBackfaceStream(), backfaceCount)
	}

	for _, f := range faces {
		if !c.Meshable() {
			return nil, ErrMeshBuildAborted
		}
		b.emitFace(mesh, f)
	}

	return mesh, nil
}

func reserve(s *Stream, faceCount int) {
	if faceCount == 0 {
		return
	}
	s.Vertices = make([]TerrainVertex, 0, faceCount*4)
	s.Indices = make([]uint32, 0, faceCount*6)
}

// collectVisibleFaces runs pass 1: the triple loop over every block and
// direction, keeping exactly the (block, direction) pairs pass 2 will
// later emit. Existing only to size the three streams' backing arrays
// exactly (spec.md §4.I "Pass 1 — count visible faces"); it performs no
// greedy meshing or cross-block merging.
func (b *Builder) collectVisibleFaces(c *chunk.Chunk) ([]visibleFace, error) {
	var faces []visibleFace
	for z := 0; z < coord.ChunkSizeZ; z++ {
		if !c.Meshable() {
			return nil, ErrMeshBuildAborted
		}
		for y := 0; y < coord.ChunkSizeY; y++ {
			for x := 0; x < coord.ChunkSizeX; x++ {
				it := chunk.NewBlockIterator(c, uint8(x), uint8(y), uint8(z))
				self := it.GetBlock()
				if !ShouldRenderBlock(self) {
					continue
				}
				for _, dir := range coord.Directions {
					if ShouldRenderFace(self, it, dir) {
						faces = append(faces, visibleFace{it: it, self: self, dir: dir})
					}
				}
			}
		}
	}
	return faces, nil
}

// ShouldRenderBlock implements spec.md §4.I's ShouldRenderBlock.
func ShouldRenderBlock(state chunk.BlockState) bool {
	return state != nil && state.GetRenderShape() != chunk.RenderShapeInvisible
}

// ShouldRenderFace implements spec.md §4.I's ShouldRenderFace, the face
// culling rule applied by both the counting and emitting passes.
func ShouldRenderFace(self chunk.BlockState, it chunk.BlockIterator, dir coord.Direction) bool {
	neighborIt := it.GetNeighbor(dir)
	if !neighborIt.IsValid() {
		return true
	}
	neighbor := neighborIt.GetBlock()
	if neighbor == nil {
		return true
	}
	if self.SkipRendering(neighbor, dir) {
		return false
	}
	if neighbor.CanOcclude() {
		return self.GetRenderType() != chunk.RenderTypeSolid
	}
	return true
}

// facesInDir returns the subset of state's render mesh oriented along
// dir; a block may contribute more than one face per direction (e.g.
// stairs).
func facesInDir(state chunk.BlockState, dir coord.Direction) []chunk.RenderFace {
	var out []chunk.RenderFace
	for _, f := range state.GetRenderMesh() {
		if f.Dir == dir {
			out = append(out, f)
		}
	}
	return out
}

// isWaterBackfaceCandidate reports whether f's geometry also needs the
// underwater-looking-up backface quad (spec.md §4.I.g).
func isWaterBackfaceCandidate(f visibleFace) bool {
	if f.dir != coord.Up || f.self.GetRenderType() != chunk.RenderTypeTranslucent {
		return false
	}
	fluid := f.self.GetFluidState()
	if fluid == nil || fluid.IsEmpty() {
		return false
	}
	above := f.it.GetNeighbor(coord.Up)
	if !above.IsValid() {
		return true
	}
	ab := above.GetBlock()
	if ab == nil {
		return true
	}
	aboveFluid := ab.GetFluidState()
	return aboveFluid == nil || aboveFluid.IsEmpty() || !aboveFluid.IsSame(fluid)
}

// emitFace runs pass 2's per-face emit step (spec.md §4.I "Per-face
// emit") for every RenderFace f.self contributes in direction f.dir.
func (b *Builder) emitFace(mesh *ChunkMesh, f visibleFace) {
	rt := f.self.GetRenderType()
	kind := kindOf(rt)
	stream := streamFor(mesh, kind)

	normal := directionNormal(f.dir)
	shade := directionalShade[f.dir]
	shadeByte := roundByte(shade)
	lm := b.lightmapCoord(f.it.GetNeighbor(f.dir))

	worldOffset := mgl32.Vec3{float32(f.it.LocalX()), float32(f.it.LocalY()), float32(f.it.LocalZ())}

	backface := isWaterBackfaceCandidate(f)

	for _, face := range facesInDir(f.self, f.dir) {
		var ao [4]float32
		for v := 0; v < 4; v++ {
			offsets := aoOffsetTable[f.dir][v]
			side1 := occludes(f.it, offsets[0])
			side2 := occludes(f.it, offsets[1])
			corner := occludes(f.it, offsets[2])
			ao[v] = vertexAO(side1, side2, corner)
		}
		flip := (ao[1] + ao[3]) > (ao[0] + ao[2])

		var verts [4]TerrainVertex
		for v := 0; v < 4; v++ {
			verts[v] = TerrainVertex{
				Position:      worldOffset.Add(face.Quad[v].Position),
				UV:            face.Quad[v].UV,
				Normal:        normal,
				LightmapCoord: lm,
				Color:         vertexColor(rt, shadeByte, shade, ao[v]),
			}
		}
		stream.appendQuad(verts, flip)

		if backface {
			b.emitBackface(mesh.translucentBackfaceStream(), verts, normal, flip)
		}
	}
}

// emitBackface appends the flipped-winding, inverted-normal mirror of a
// translucent UP face into the translucent-backface stream (spec.md
// §4.I.g).
func (b *Builder) emitBackface(stream *Stream, verts [4]TerrainVertex, normal mgl32.Vec3, flip bool) {
	var back [4]TerrainVertex
	inverted := normal.Mul(-1)
	for i := range back {
		back[i] = verts[3-i]
		back[i].Normal = inverted
	}
	// Reverse winding by reversing the vertex order. In reversed order the
	// front face's diagonal is produced by the opposite index pattern, so
	// the boolean is negated to keep the same AO-chosen diagonal.
	stream.appendQuad(back, !flip)
}

func (m *ChunkMesh) translucentBackfaceStream() *Stream {
	if m.TranslucentBackface == nil {
		m.TranslucentBackface = &Stream{}
	}
	return m.TranslucentBackface
}

func streamFor(mesh *ChunkMesh, kind streamKind) *Stream {
	switch kind {
	case streamCutout:
		return &mesh.Cutout
	case streamTranslucent:
		return &mesh.Translucent
	default:
		return &mesh.Opaque
	}
}

// occludes resolves one AO sampling offset relative to it, stepping the
// iterator axis-by-axis since every offset component is in {-1,0,1}
// (spec.md §4.I.c). An invalid intermediate (chunk boundary into an
// unloaded chunk) makes the sample a non-occluder.
func occludes(it chunk.BlockIterator, o aoOffset) bool {
	if o.dx > 0 {
		it = it.GetNeighbor(coord.East)
	} else if o.dx < 0 {
		it = it.GetNeighbor(coord.West)
	}
	if !it.IsValid() {
		return false
	}
	if o.dy > 0 {
		it = it.GetNeighbor(coord.North)
	} else if o.dy < 0 {
		it = it.GetNeighbor(coord.South)
	}
	if !it.IsValid() {
		return false
	}
	if o.dz > 0 {
		it = it.GetNeighbor(coord.Up)
	} else if o.dz < 0 {
		it = it.GetNeighbor(coord.Down)
	}
	if !it.IsValid() {
		return false
	}
	b := it.GetBlock()
	return b != nil && b.CanOcclude()
}

// lightmapCoord samples the neighboring block in the face's direction for
// its stored light values, flooring the skylight channel when that
// neighbor is missing or unloaded (spec.md §4.I.b).
func (b *Builder) lightmapCoord(neighbor chunk.BlockIterator) mgl32.Vec2 {
	if !neighbor.IsValid() {
		return mgl32.Vec2{0, b.MinAmbientSkylight}
	}
	nc := neighbor.Chunk()
	x, y, z := neighbor.LocalX(), neighbor.LocalY(), neighbor.LocalZ()
	return mgl32.Vec2{
		float32(nc.GetBlockLight(x, y, z)) / 15.0,
		float32(nc.GetSkyLight(x, y, z)) / 15.0,
	}
}

// directionNormal converts a Direction's integer face normal into a
// float vector for the vertex stream.
func directionNormal(dir coord.Direction) mgl32.Vec3 {
	nx, ny, nz := dir.Normal()
	return mgl32.Vec3{float32(nx), float32(ny), float32(nz)}
}

// vertexColor packs a vertex's color per spec.md §4.I.e: solid/cutout
// keep shade and AO in separate channels for a per-pixel multiply;
// translucent premultiplies AO into rgb so alpha stays free for blending.
func vertexColor(rt chunk.RenderType, shadeByte uint8, shade, ao float32) Color {
	if rt == chunk.RenderTypeTranslucent {
		v := roundByte(shade * ao)
		return Color{R: v, G: v, B: v, A: 255}
	}
	return Color{R: shadeByte, G: shadeByte, B: shadeByte, A: roundByte(ao)}
}

func roundByte(f float32) uint8 {
	v := math.Round(float64(f) * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
