package parser

import (
	"strings"

	"github.com/example/asm14/isa"
)

// Operand is a tagged union over the four addressing modes plus the
// absent case, mirroring spec.md's AddressingType. Exactly one of the
// value-carrying fields is meaningful, selected by Mode.
type Operand struct {
	Mode isa.Mode // valid only when Present is true
	Present bool

	// Immediate
	HasValue    bool   // true: IntValue holds a parsed integer
	IntValue    int
	ConstName   string // used when HasValue is false

	// Direct / FixedIndex
	Label string

	// FixedIndex index: same HasValue/IntValue/ConstName shape as Immediate
	IndexHasValue  bool
	IndexIntValue  int
	IndexConstName string

	// DirectRegister
	Reg int
}

// NoOperand is the Operand value for an absent operand.
var NoOperand = Operand{}

// parseOperand classifies a trimmed operand string into one of the
// four addressing modes, testing in the order spec.md §4.2 requires:
// immediate, then register, then fixed-index, then direct. Register
// must be tested before direct because "r1" is itself valid label
// syntax.
func parseOperand(pos Position, w string) (Operand, *Error) {
	w = strings.TrimSpace(w)
	if w == "" {
		return Operand{}, NewError(pos, ErrorMissingOperand, "missing operand")
	}

	if strings.HasPrefix(w, "#") {
		rest := w[1:]
		if n, err := parseInteger(rest); err == nil {
			return Operand{Mode: isa.ModeImmediate, Present: true, HasValue: true, IntValue: n}, nil
		}
		if isValidLabelSyntax(rest) {
			return Operand{Mode: isa.ModeImmediate, Present: true, HasValue: false, ConstName: rest}, nil
		}
		return Operand{}, NewError(pos, ErrorOperandFormat, "invalid immediate operand: "+w)
	}

	if reg, ok := isRegisterSyntax(w); ok {
		return Operand{Mode: isa.ModeDirectRegister, Present: true, Reg: reg}, nil
	}

	if i := strings.IndexByte(w, '['); i >= 0 {
		label := w[:i]
		if !isValidLabelSyntax(label) {
			return Operand{}, NewError(pos, ErrorOperandFormat, "invalid label in fixed-index operand: "+w)
		}
		if !strings.HasSuffix(w, "]") {
			return Operand{}, NewError(pos, ErrorOperandFormat, "missing closing ']' in: "+w)
		}
		inner := w[i+1 : len(w)-1]
		inner = strings.TrimSpace(inner)
		op := Operand{Mode: isa.ModeFixedIndex, Present: true, Label: label}
		if n, err := parseInteger(inner); err == nil {
			op.IndexHasValue = true
			op.IndexIntValue = n
			return op, nil
		}
		if isValidLabelSyntax(inner) {
			op.IndexHasValue = false
			op.IndexConstName = inner
			return op, nil
		}
		return Operand{}, NewError(pos, ErrorOperandFormat, "invalid index in: "+w)
	}

	if isValidLabelSyntax(w) {
		return Operand{Mode: isa.ModeDirect, Present: true, Label: w}, nil
	}

	return Operand{}, NewError(pos, ErrorOperandFormat, "invalid operand syntax: "+w)
}
