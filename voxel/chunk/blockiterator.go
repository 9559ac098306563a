package chunk

import "github.com/voxelrt/enginecore/voxel/coord"

const (
	maskX   = 0x000F
	maskY   = 0x00F0
	shiftZ  = 8
	topZ    = coord.ChunkSizeZ - 1
)

// BlockIterator walks a chunk's bit-packed block index, crossing chunk
// boundaries via the horizontal neighbor pointers (spec.md §4.L). It does
// not retain neighbor chunk pointers between calls; GetNeighbor reads them
// from the current chunk's North/South/East/West pointers only when
// crossing a boundary.
type BlockIterator struct {
	chunk *Chunk
	index uint16
}

// NewBlockIterator returns an iterator at local (x, y, z) within chunk.
func NewBlockIterator(c *Chunk, x, y, z uint8) BlockIterator {
	return BlockIterator{chunk: c, index: BlockIndex(x, y, z)}
}

// IsValid reports whether the iterator refers to a loaded chunk.
func (it BlockIterator) IsValid() bool { return it.chunk != nil }

// Chunk returns the iterator's current chunk, or nil if invalid.
func (it BlockIterator) Chunk() *Chunk { return it.chunk }

// Index returns the packed block index within Chunk().
func (it BlockIterator) Index() uint16 { return it.index }

func (it BlockIterator) localX() uint8 { return uint8(it.index & maskX) }
func (it BlockIterator) localY() uint8 { return uint8((it.index & maskY) >> 4) }
func (it BlockIterator) localZ() uint8 { return uint8(it.index >> shiftZ) }

// LocalX, LocalY, LocalZ expose the iterator's decoded local coordinates,
// used by light propagation to index a chunk's auxiliary arrays directly.
func (it BlockIterator) LocalX() uint8 { return it.localX() }
func (it BlockIterator) LocalY() uint8 { return it.localY() }
func (it BlockIterator) LocalZ() uint8 { return it.localZ() }

// GetBlock returns the BlockState the iterator currently points at, or
// nil if invalid.
func (it BlockIterator) GetBlock() BlockState {
	if !it.IsValid() {
		return nil
	}
	return it.chunk.GetBlock(it.localX(), it.localY(), it.localZ())
}

// GetBlockPos returns the world position the iterator currently points
// at, or the zero position if invalid.
func (it BlockIterator) GetBlockPos() coord.BlockPos {
	if !it.IsValid() {
		return coord.BlockPos{}
	}
	return it.chunk.LocalToWorld(it.localX(), it.localY(), it.localZ())
}

// invalid returns the canonical invalid iterator.
func invalid() BlockIterator { return BlockIterator{} }

func crossedChunkActive(c *Chunk) bool { return c != nil && c.State().Meshable() }

// GetNeighbor computes the iterator one step in dir, crossing chunk
// boundaries via bit manipulation with no division or modulo (spec.md
// §4.L).
func (it BlockIterator) GetNeighbor(dir coord.Direction) BlockIterator {
	if !it.IsValid() {
		return invalid()
	}

	switch dir {
	case coord.North: // +Y
		y := it.localY()
		if y == coord.ChunkSizeY-1 {
			n := it.chunk.North()
			if !crossedChunkActive(n) {
				return invalid()
			}
			return BlockIterator{chunk: n, index: it.index &^ maskY}
		}
		return BlockIterator{chunk: it.chunk, index: (it.index &^ maskY) | (uint16(y+1) << 4)}

	case coord.South: // -Y
		y := it.localY()
		if y == 0 {
			n := it.chunk.South()
			if !crossedChunkActive(n) {
				return invalid()
			}
			return BlockIterator{chunk: n, index: it.index | maskY}
		}
		return BlockIterator{chunk: it.chunk, index: (it.index &^ maskY) | (uint16(y-1) << 4)}

	case coord.East: // +X
		x := it.localX()
		if x == coord.ChunkSizeX-1 {
			n := it.chunk.East()
			if !crossedChunkActive(n) {
				return invalid()
			}
			return BlockIterator{chunk: n, index: it.index &^ maskX}
		}
		return BlockIterator{chunk: it.chunk, index: it.index + 1}

	case coord.West: // -X
		x := it.localX()
		if x == 0 {
			n := it.chunk.West()
			if !crossedChunkActive(n) {
				return invalid()
			}
			return BlockIterator{chunk: n, index: it.index | maskX}
		}
		return BlockIterator{chunk: it.chunk, index: it.index - 1}

	case coord.Up: // +Z
		if it.localZ() == topZ {
			return invalid()
		}
		return BlockIterator{chunk: it.chunk, index: it.index + (1 << shiftZ)}

	case coord.Down: // -Z
		if it.localZ() == 0 {
			return invalid()
		}
		return BlockIterator{chunk: it.chunk, index: it.index - (1 << shiftZ)}

	default:
		return invalid()
	}
}

// GetNeighbors returns all six neighbors in the fixed [N,S,E,W,U,D] order.
func (it BlockIterator) GetNeighbors() [6]BlockIterator {
	var out [6]BlockIterator
	for i, d := range coord.Directions {
		out[i] = it.GetNeighbor(d)
	}
	return out
}
