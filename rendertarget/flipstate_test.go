package rendertarget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelrt/enginecore/rendertarget"
)

func TestFlipState_FlipTwiceIsNoop(t *testing.T) {
	f := rendertarget.NewFlipState(4)
	f.Flip(1)
	f.Flip(1)
	assert.False(t, f.IsFlipped(1))
}

func TestFlipState_FlipAllTogglesEveryBit(t *testing.T) {
	f := rendertarget.NewFlipState(4)
	f.Flip(1)
	f.FlipAll()
	assert.True(t, f.IsFlipped(0))
	assert.False(t, f.IsFlipped(1))
	assert.True(t, f.IsFlipped(2))
	assert.True(t, f.IsFlipped(3))
}

func TestFlipState_ResetClearsAllBits(t *testing.T) {
	f := rendertarget.NewFlipState(4)
	f.FlipAll()
	f.Reset()
	for i := 0; i < 4; i++ {
		assert.False(t, f.IsFlipped(i))
	}
}

func TestFlipState_ToUInt_LSBIsIndexZero(t *testing.T) {
	f := rendertarget.NewFlipState(4)
	f.Flip(0)
	f.Flip(2)
	assert.Equal(t, uint64(0b0101), f.ToUInt())
}
