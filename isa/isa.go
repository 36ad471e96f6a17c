// Package isa holds the static tables describing the 14-bit target
// machine: opcode numbering, operand arity, the addressing modes each
// opcode position accepts, and register names.
package isa

// Mode identifies one of the four operand addressing shapes, encoded
// in 2 bits in the first instruction word.
type Mode int

const (
	ModeImmediate Mode = iota
	ModeDirect
	ModeFixedIndex
	ModeDirectRegister
)

// Arity is the number of operands an opcode takes.
type Arity int

const (
	ArityNone Arity = iota
	ArityOne
	ArityTwo
)

// ModeSet is a small, fixed set of allowed addressing modes for one
// operand position.
type ModeSet map[Mode]bool

func modes(m ...Mode) ModeSet {
	s := make(ModeSet, len(m))
	for _, x := range m {
		s[x] = true
	}
	return s
}

// Allows reports whether mode m is permitted by this set.
func (s ModeSet) Allows(m Mode) bool {
	return s[m]
}

// Opcode is one of the 16 machine instructions, numbered 0..15 in the
// fixed order given by spec.
type Opcode int

const (
	OpMov Opcode = iota
	OpCmp
	OpAdd
	OpSub
	OpNot
	OpClr
	OpLea
	OpInc
	OpDec
	OpJmp
	OpBne
	OpRed
	OpPrn
	OpJsr
	OpRts
	OpHlt
)

// NumOpcodes is the number of defined opcodes.
const NumOpcodes = 16

// Def describes one opcode's mnemonic, arity, and allowed addressing
// modes for its source and destination operand positions.
type Def struct {
	Opcode   Opcode
	Mnemonic string
	Arity    Arity
	Src      ModeSet // empty set when Arity != ArityTwo
	Dst      ModeSet // empty set when Arity == ArityNone
}

var defs = [NumOpcodes]Def{
	{OpMov, "mov", ArityTwo, modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister), modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpCmp, "cmp", ArityTwo, modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister), modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpAdd, "add", ArityTwo, modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister), modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpSub, "sub", ArityTwo, modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister), modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpNot, "not", ArityOne, nil, modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpClr, "clr", ArityOne, nil, modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpLea, "lea", ArityTwo, modes(ModeDirect, ModeFixedIndex), modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpInc, "inc", ArityOne, nil, modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpDec, "dec", ArityOne, nil, modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpJmp, "jmp", ArityOne, nil, modes(ModeDirect, ModeDirectRegister)},
	{OpBne, "bne", ArityOne, nil, modes(ModeDirect, ModeDirectRegister)},
	{OpRed, "red", ArityOne, nil, modes(ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpPrn, "prn", ArityOne, nil, modes(ModeImmediate, ModeDirect, ModeFixedIndex, ModeDirectRegister)},
	{OpJsr, "jsr", ArityOne, nil, modes(ModeDirect, ModeDirectRegister)},
	{OpRts, "rts", ArityNone, nil, nil},
	{OpHlt, "hlt", ArityNone, nil, nil},
}

var byMnemonic map[string]Def

func init() {
	byMnemonic = make(map[string]Def, NumOpcodes)
	for _, d := range defs {
		byMnemonic[d.Mnemonic] = d
	}
}

// Lookup returns the Def for a mnemonic, and whether it was found.
func Lookup(mnemonic string) (Def, bool) {
	d, ok := byMnemonic[mnemonic]
	return d, ok
}

// ByOpcode returns the Def for an opcode number.
func ByOpcode(op Opcode) Def {
	return defs[op]
}

// NumRegisters is the count of general registers, r0..r7.
const NumRegisters = 8

// IsReserved reports whether name collides with a mnemonic, register
// name, or directive keyword and so cannot be used as a label or
// constant name.
func IsReserved(name string) bool {
	if _, ok := byMnemonic[name]; ok {
		return true
	}
	if len(name) == 2 && name[0] == 'r' && name[1] >= '0' && name[1] <= '7' {
		return true
	}
	switch name {
	case ".data", "data", ".string", "string", ".entry", "entry",
		".extern", "extern", ".define", "define", "mcr", "endmcr":
		return true
	}
	return false
}
