package encoder_test

import (
	"testing"

	"github.com/example/asm14/encoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstWord_Layout(t *testing.T) {
	// opcode=9 (jmp), src mode=0 (absent), dst mode=1 (Direct)
	w := encoder.FirstWord(9, 0, 1)
	assert.Equal(t, uint16(9<<6|0<<4|1<<2|encoder.AREAbsolute), w)
	assert.EqualValues(t, 580, w)
}

func TestImmediateWord_Range(t *testing.T) {
	w, err := encoder.ImmediateWord(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(5<<2|encoder.AREAbsolute), w)

	_, err = encoder.ImmediateWord(2048)
	assert.ErrorIs(t, err, encoder.ErrOverflow)

	_, err = encoder.ImmediateWord(-2049)
	assert.ErrorIs(t, err, encoder.ErrOverflow)
}

func TestImmediateWord_NegativeTwosComplement(t *testing.T) {
	w, err := encoder.ImmediateWord(-1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFF<<2|encoder.AREAbsolute), w)
}

func TestDirectWord_ExternalUse(t *testing.T) {
	w := encoder.DirectWord(0, encoder.AREExternal)
	assert.Equal(t, uint16(1), w)
}

func TestDirectWord_Relocatable(t *testing.T) {
	w := encoder.DirectWord(101, encoder.ARERelocatable)
	assert.Equal(t, uint16(101<<2|encoder.ARERelocatable), w)
}

func TestIndexWord_Negative(t *testing.T) {
	_, err := encoder.IndexWord(-1)
	assert.ErrorIs(t, err, encoder.ErrNegativeIndex)
}

func TestIndexWord_Valid(t *testing.T) {
	w, err := encoder.IndexWord(3)
	require.NoError(t, err)
	assert.Equal(t, uint16(3<<2), w)
}

func TestDoubleRegisterWord(t *testing.T) {
	w := encoder.DoubleRegisterWord(2, 5)
	assert.Equal(t, uint16(2<<5|5<<2|encoder.AREAbsolute), w)
}

func TestRegisterWord_SrcVsDst(t *testing.T) {
	src := encoder.RegisterWord(3, true)
	dst := encoder.RegisterWord(3, false)
	assert.Equal(t, uint16(3<<5), src)
	assert.Equal(t, uint16(3<<2), dst)
}

func TestDataWord_TwosComplement(t *testing.T) {
	assert.Equal(t, uint16(0), encoder.DataWord(0))
	assert.Equal(t, uint16(0xFFF), encoder.DataWord(-1))
	assert.Equal(t, uint16(104), encoder.DataWord(104)) // 'h'
}

func TestMask12(t *testing.T) {
	assert.Equal(t, 0xFFF, encoder.Mask12(-1))
	assert.Equal(t, 0, encoder.Mask12(0x1000))
}
