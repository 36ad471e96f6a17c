package parser

import "github.com/example/asm14/isa"

// LineKind tags the payload carried by an AbstractLineDescriptor.
type LineKind int

const (
	KindEmpty LineKind = iota
	KindConstantDefinition
	KindDataDirective
	KindStringDirective
	KindEntryDirective
	KindExternDirective
	KindCommand
)

// Value is either a parsed integer or a deferred constant reference,
// used for .data elements and for immediate/index operands.
type Value struct {
	HasValue  bool
	IntValue  int
	ConstName string
}

// ConstantDefinition is the payload of a `.define NAME = N` line.
type ConstantDefinition struct {
	Name  string
	Value int
}

// CommandInstruction is the payload of an opcode line.
type CommandInstruction struct {
	Opcode isa.Opcode
	Arity  isa.Arity
	Src    Operand
	Dst    Operand
}

// AbstractLineDescriptor is the parser's typed representation of one
// source line. The line still occupies its slot in the program even
// when Err is non-nil, so address bookkeeping in later passes stays
// consistent.
type AbstractLineDescriptor struct {
	LineNumber int
	Label      string // optional defined label ("" if none)
	Kind       LineKind
	Err        *Error

	Const      ConstantDefinition
	Data       []Value
	Str        string
	EntryName  string
	ExternName string
	Command    CommandInstruction
}

// Program is the full ordered sequence of parsed lines for one file.
type Program struct {
	Lines []*AbstractLineDescriptor
}
