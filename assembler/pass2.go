package assembler

import (
	"github.com/example/asm14/encoder"
	"github.com/example/asm14/isa"
	"github.com/example/asm14/parser"
)

// resolveImmediate returns the concrete value of an Immediate operand,
// looking it up in the constant table when it was written as a name.
func resolveImmediate(tu *TranslationUnit, pos parser.Position, op parser.Operand) (int, *parser.Error) {
	if op.HasValue {
		return op.IntValue, nil
	}
	c, ok := tu.Constants.Lookup(op.ConstName)
	if !ok {
		return 0, parser.NewError(pos, parser.ErrorUnfoundConst, "undefined constant: "+op.ConstName)
	}
	return c.Value, nil
}

// resolveIndex is resolveImmediate's counterpart for a FixedIndex
// operand's index element.
func resolveIndex(tu *TranslationUnit, pos parser.Position, op parser.Operand) (int, *parser.Error) {
	if op.IndexHasValue {
		return op.IndexIntValue, nil
	}
	c, ok := tu.Constants.Lookup(op.IndexConstName)
	if !ok {
		return 0, parser.NewError(pos, parser.ErrorUnfoundConst, "undefined constant: "+op.IndexConstName)
	}
	return c.Value, nil
}

// encodeOperand resolves a present operand into its extra instruction
// word(s), appending any error to errs rather than stopping at the
// first one: a FixedIndex operand's label and index are independent
// failures and both must surface from the same run. The returned
// words slice always has the length op's shape requires (1, or 2 for
// FixedIndex), zero-filled where resolution failed, so the caller's
// instruction-counter bookkeeping stays aligned with what FirstPass
// reserved regardless of error. externalUse reports whether the first
// word addresses an extern symbol, so the caller can record its
// use-site.
func encodeOperand(tu *TranslationUnit, errs *parser.ErrorList, pos parser.Position, op parser.Operand, isSrc bool) (words []uint16, externalUse bool) {
	switch op.Mode {
	case isa.ModeImmediate:
		v, e := resolveImmediate(tu, pos, op)
		if e != nil {
			errs.Add(e)
			return []uint16{0}, false
		}
		w, oerr := encoder.ImmediateWord(v)
		if oerr != nil {
			errs.Add(parser.NewError(pos, parser.ErrorBitOverflow, oerr.Error()))
			return []uint16{0}, false
		}
		return []uint16{w}, false

	case isa.ModeDirect:
		sym, ok := tu.Symbols.Lookup(op.Label)
		if !ok {
			errs.Add(parser.NewError(pos, parser.ErrorUnfoundLabel, "undefined label: "+op.Label))
			return []uint16{0}, false
		}
		if sym.Type == SymExtern {
			return []uint16{encoder.DirectWord(0, encoder.AREExternal)}, true
		}
		return []uint16{encoder.DirectWord(sym.Address, encoder.ARERelocatable)}, false

	case isa.ModeFixedIndex:
		// Label and index resolve independently; neither short-circuits
		// the other so both failures can be reported in one run.
		sym, symOK := tu.Symbols.Lookup(op.Label)
		if !symOK {
			errs.Add(parser.NewError(pos, parser.ErrorUnfoundLabel, "undefined label: "+op.Label))
		}

		var idxWord uint16
		idx, idxErr := resolveIndex(tu, pos, op)
		if idxErr != nil {
			errs.Add(idxErr)
		} else if w, oerr := encoder.IndexWord(idx); oerr != nil {
			kind := parser.ErrorBitOverflow
			if oerr == encoder.ErrNegativeIndex {
				kind = parser.ErrorNegativeIndex
			}
			errs.Add(parser.NewError(pos, kind, oerr.Error()))
		} else {
			idxWord = w
		}

		if !symOK {
			return []uint16{0, idxWord}, false
		}
		if sym.Type == SymExtern {
			return []uint16{encoder.DirectWord(0, encoder.AREExternal), idxWord}, true
		}
		return []uint16{encoder.DirectWord(sym.Address, encoder.ARERelocatable), idxWord}, false

	case isa.ModeDirectRegister:
		return []uint16{encoder.RegisterWord(op.Reg, isSrc)}, false
	}
	errs.Add(parser.NewError(pos, parser.ErrorOperandFormat, "unrecognized addressing mode"))
	return []uint16{0}, false
}

// modeField returns the 2-bit addressing-mode code for the first
// word, or 0 when the operand is absent.
func modeField(op parser.Operand) int {
	if !op.Present {
		return 0
	}
	return int(op.Mode)
}

// SecondPass re-walks the program, resolving every command's operands
// against the tables FirstPass built and filling in tu.CodeImage in
// place of the zero placeholders FirstPass reserved. It also records
// every extern-label use-site in tu.Externals.
func SecondPass(tu *TranslationUnit, filename string, program *parser.Program) *parser.ErrorList {
	errs := &parser.ErrorList{}
	ic := tu.Opts.BaseAddress

	for _, d := range program.Lines {
		if d.Err != nil || d.Kind != parser.KindCommand {
			continue
		}
		pos := parser.Position{Filename: filename, Line: d.LineNumber}
		cmd := d.Command

		firstIdx := ic - tu.Opts.BaseAddress
		tu.CodeImage[firstIdx] = encoder.FirstWord(int(cmd.Opcode), modeField(cmd.Src), modeField(cmd.Dst))
		ic++

		if cmd.Arity == isa.ArityTwo && cmd.Src.Mode == isa.ModeDirectRegister && cmd.Dst.Mode == isa.ModeDirectRegister {
			idx := ic - tu.Opts.BaseAddress
			tu.CodeImage[idx] = encoder.DoubleRegisterWord(cmd.Src.Reg, cmd.Dst.Reg)
			ic++
			continue
		}

		if cmd.Arity == isa.ArityTwo && cmd.Src.Present {
			words, ext := encodeOperand(tu, errs, pos, cmd.Src, true)
			if ext {
				tu.Externals = append(tu.Externals, ExternalUse{Name: cmd.Src.Label, Address: ic})
			}
			for _, w := range words {
				idx := ic - tu.Opts.BaseAddress
				tu.CodeImage[idx] = w
				ic++
			}
		}

		if cmd.Dst.Present {
			words, ext := encodeOperand(tu, errs, pos, cmd.Dst, false)
			if ext {
				tu.Externals = append(tu.Externals, ExternalUse{Name: cmd.Dst.Label, Address: ic})
			}
			for _, w := range words {
				idx := ic - tu.Opts.BaseAddress
				tu.CodeImage[idx] = w
				ic++
			}
		}
	}

	return errs
}
