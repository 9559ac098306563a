package coord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelrt/enginecore/voxel/coord"
)

func TestBlockPos_ChunkAndLocalDerivation(t *testing.T) {
	p := coord.BlockPos{X: 33, Y: -1, Z: 200}
	assert.Equal(t, int32(2), p.ChunkX())
	assert.Equal(t, uint8(1), p.LocalX())
	assert.Equal(t, uint8(200), p.LocalZ())
}

func TestDirection_OppositeIsInvolution(t *testing.T) {
	for _, d := range coord.Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
	}
}

func TestDirection_FaceNormals(t *testing.T) {
	x, y, z := coord.North.Normal()
	assert.Equal(t, [3]int32{0, 1, 0}, [3]int32{x, y, z})

	x, y, z = coord.Down.Normal()
	assert.Equal(t, [3]int32{0, 0, -1}, [3]int32{x, y, z})
}
