package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/voxelrt/enginecore/gpubackend"
)

// Stream is one independent vertex/index buffer pair for one of the three
// render passes (spec.md §3).
type Stream struct {
	Vertices []TerrainVertex
	Indices  []uint32

	vbo gpubackend.Buffer
	ibo gpubackend.Buffer

	gpuValid bool
}

// Empty reports whether the stream has no geometry.
func (s *Stream) Empty() bool { return len(s.Vertices) == 0 }

func (s *Stream) appendQuad(v [4]TerrainVertex, flip bool) {
	base := uint32(len(s.Vertices))
	s.Vertices = append(s.Vertices, v[0], v[1], v[2], v[3])
	if !flip {
		s.Indices = append(s.Indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		s.Indices = append(s.Indices, base+1, base+2, base+3, base+1, base+3, base)
	}
}

func vertexBytes(vs []TerrainVertex) []byte {
	const stride = 3*4 + 2*4 + 3*4 + 2*4 + 4
	out := make([]byte, len(vs)*stride)
	for i, v := range vs {
		off := i * stride
		putF32 := func(f float32) {
			binary.LittleEndian.PutUint32(out[off:], math.Float32bits(f))
			off += 4
		}
		putF32(v.Position.X())
		putF32(v.Position.Y())
		putF32(v.Position.Z())
		putF32(v.UV.X())
		putF32(v.UV.Y())
		putF32(v.Normal.X())
		putF32(v.Normal.Y())
		putF32(v.Normal.Z())
		putF32(v.LightmapCoord.X())
		putF32(v.LightmapCoord.Y())
		out[off] = v.Color.R
		out[off+1] = v.Color.G
		out[off+2] = v.Color.B
		out[off+3] = v.Color.A
	}
	return out
}

func indexBytes(idx []uint32) []byte {
	out := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// compile uploads this stream's CPU data to the GPU, creating or
// replacing its buffers (spec.md §4.J). No-op for an empty stream.
func (s *Stream) compile(device gpubackend.Device) error {
	if s.Empty() {
		return nil
	}
	vdata := vertexBytes(s.Vertices)
	vbo, err := device.CreateBuffer(uint64(len(vdata)))
	if err != nil {
		return fmt.Errorf("mesh: compile vertex buffer: %w", err)
	}
	device.UploadBuffer(vbo, vdata)

	idata := indexBytes(s.Indices)
	ibo, err := device.CreateBuffer(uint64(len(idata)))
	if err != nil {
		return fmt.Errorf("mesh: compile index buffer: %w", err)
	}
	device.UploadBuffer(ibo, idata)

	s.vbo, s.ibo = vbo, ibo
	s.gpuValid = true
	return nil
}

// ChunkMesh holds the three independent render-pass streams plus an
// optional translucent-backface stream for the underwater-looking-up
// water surface (spec.md §3, §4.I.g).
type ChunkMesh struct {
	Opaque              Stream
	Cutout              Stream
	Translucent         Stream
	TranslucentBackface *Stream
}

// CompileToGPU creates (or replaces) a vertex+index buffer pair for each
// non-empty stream and marks each one's GPU-side valid flag. Main-thread
// only (spec.md §4.J).
func (m *ChunkMesh) CompileToGPU(device gpubackend.Device) error {
	for _, s := range m.streams() {
		if err := s.compile(device); err != nil {
			return err
		}
	}
	return nil
}

// InvalidateGPUData drops every stream's GPU-valid flag so the next draw
// triggers re-upload.
func (m *ChunkMesh) InvalidateGPUData() {
	for _, s := range m.streams() {
		s.gpuValid = false
	}
}

func (m *ChunkMesh) streams() []*Stream {
	out := []*Stream{&m.Opaque, &m.Cutout, &m.Translucent}
	if m.TranslucentBackface != nil {
		out = append(out, m.TranslucentBackface)
	}
	return out
}

// GPUValid reports whether stream s's GPU buffers reflect its current CPU
// data.
func (s *Stream) GPUValid() bool { return s.gpuValid }
