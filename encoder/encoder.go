// Package encoder packs already-resolved opcode, addressing-mode and
// operand values into 14-bit machine words. It has no knowledge of
// symbol or constant tables — every value it receives has already
// been looked up by the caller (assembler.SecondPass). This mirrors
// the split between name resolution and bit-packing that the teacher
// keeps between its loader and encoder packages.
package encoder

import "github.com/pkg/errors"

// A/R/E trailer values.
const (
	AREAbsolute    = 0b00
	AREExternal    = 0b01
	ARERelocatable = 0b10
)

// ImmediateMin and ImmediateMax bound the 12-bit signed range shared
// by immediate operands and .data values.
const (
	ImmediateMin = -2048
	ImmediateMax = 2047
)

// ErrOverflow is returned when a value falls outside the 12-bit
// signed range.
var ErrOverflow = errors.New("value out of 12-bit signed range")

// ErrNegativeIndex is returned when a FixedIndex index is negative.
var ErrNegativeIndex = errors.New("negative index")

// ValidateSigned12 checks that v fits in [-2048, 2047].
func ValidateSigned12(v int) error {
	if v < ImmediateMin || v > ImmediateMax {
		return errors.Wrapf(ErrOverflow, "%d", v)
	}
	return nil
}

// Mask12 returns the low 12 bits of v, in two's complement.
func Mask12(v int) int {
	return v & 0xFFF
}

// FirstWord builds the first word of a command-instruction line: a 4
// bit opcode field, a 2 bit source addressing mode, a 2 bit
// destination addressing mode, and an absolute (00) A/R/E trailer.
// Both mode fields are 0 when the corresponding operand is absent.
func FirstWord(opcode, srcMode, dstMode int) uint16 {
	return uint16((opcode&0xF)<<6 | (srcMode&0x3)<<4 | (dstMode&0x3)<<2 | AREAbsolute)
}

// DoubleRegisterWord builds the single extra word shared by an
// instruction whose source and destination are both DirectRegister
// operands.
func DoubleRegisterWord(srcReg, dstReg int) uint16 {
	return uint16((srcReg&0x7)<<5 | (dstReg&0x7)<<2 | AREAbsolute)
}

// ImmediateWord encodes a resolved immediate value, validating its
// 12-bit signed range.
func ImmediateWord(value int) (uint16, error) {
	if err := ValidateSigned12(value); err != nil {
		return 0, err
	}
	return uint16(Mask12(value)<<2) | AREAbsolute, nil
}

// DirectWord encodes a resolved label address with the given A/R/E
// trailer (AREExternal for extern labels, ARERelocatable otherwise).
func DirectWord(address int, are int) uint16 {
	return uint16(address<<2) | uint16(are&0x3)
}

// IndexWord encodes the resolved index of a FixedIndex operand.
// Negative indices and out-of-range indices are distinct errors per
// spec.
func IndexWord(index int) (uint16, error) {
	if index < 0 {
		return 0, errors.Wrapf(ErrNegativeIndex, "%d", index)
	}
	if err := ValidateSigned12(index); err != nil {
		return 0, err
	}
	return uint16(Mask12(index) << 2), nil
}

// RegisterWord encodes a lone register operand (not the
// double-register case): bits 7..5 when isSrc, bits 4..2 otherwise.
func RegisterWord(reg int, isSrc bool) uint16 {
	if isSrc {
		return uint16((reg & 0x7) << 5)
	}
	return uint16((reg & 0x7) << 2)
}

// DataWord encodes a plain (non-instruction) data or string word: the
// low 12 bits hold the two's complement value, with no A/R/E trailer.
func DataWord(value int) uint16 {
	return uint16(Mask12(value))
}
