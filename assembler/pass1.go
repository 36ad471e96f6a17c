package assembler

import (
	"github.com/example/asm14/encoder"
	"github.com/example/asm14/isa"
	"github.com/example/asm14/parser"
)

// deferredDataWord records a .data/.string element whose value was a
// constant reference not yet resolvable at the point it was scanned.
type deferredDataWord struct {
	index     int
	constName string
	pos       parser.Position
}

// deferredEntry records an .entry directive; its target label may be
// defined later in the file, so resolution waits until the whole unit
// has been scanned.
type deferredEntry struct {
	name string
	pos  parser.Position
}

// checkNameAvailableAsSymbol reports the collision error (if any) for
// defining name as a label: reserved words and existing constants both
// bar the name, leaving a final duplicate-label check to SymbolTable.Define.
func checkNameAvailableAsSymbol(tu *TranslationUnit, pos parser.Position, name string) *parser.Error {
	if isa.IsReserved(name) {
		return parser.NewError(pos, parser.ErrorNameCollidesReserved, "label name is reserved: "+name)
	}
	if tu.Constants.Has(name) {
		return parser.NewError(pos, parser.ErrorDuplicateSymbol, "label name already used as a constant: "+name)
	}
	return nil
}

// checkNameAvailableAsConstant is checkNameAvailableAsSymbol's mirror
// for the .define namespace.
func checkNameAvailableAsConstant(tu *TranslationUnit, pos parser.Position, name string) *parser.Error {
	if isa.IsReserved(name) {
		return parser.NewError(pos, parser.ErrorNameCollidesReserved, "constant name is reserved: "+name)
	}
	if tu.Symbols.Has(name) {
		return parser.NewError(pos, parser.ErrorDuplicateSymbol, "constant name already used as a label: "+name)
	}
	return nil
}

// operandWords returns how many extra instruction words a present
// operand contributes: one for Immediate, Direct and DirectRegister,
// two for FixedIndex (a base-address word plus an index word).
func operandWords(op parser.Operand) int {
	if !op.Present {
		return 0
	}
	if op.Mode == isa.ModeFixedIndex {
		return 2
	}
	return 1
}

// commandWordCount returns the total word count of a command
// instruction, including its first word. A source and destination
// that are both DirectRegister share a single extra word.
func commandWordCount(cmd parser.CommandInstruction) int {
	switch cmd.Arity {
	case isa.ArityNone:
		return 1
	case isa.ArityOne:
		return 1 + operandWords(cmd.Dst)
	default:
		if cmd.Src.Mode == isa.ModeDirectRegister && cmd.Dst.Mode == isa.ModeDirectRegister {
			return 1 + 1
		}
		return 1 + operandWords(cmd.Src) + operandWords(cmd.Dst)
	}
}

// FirstPass walks a parsed program once, building the symbol and
// constant tables, emitting the data image, and reserving one
// placeholder word in the code image per instruction word so that IC
// bookkeeping matches what SecondPass will later fill in. Lines that
// failed to parse are skipped entirely: their payload cannot be
// trusted, and a unit with any parse error never reaches output
// anyway, so their addresses don't need to remain consistent with a
// clean run.
func FirstPass(filename string, program *parser.Program, opts Options) (*TranslationUnit, *parser.ErrorList) {
	tu := NewTranslationUnit(opts)
	errs := &parser.ErrorList{}

	var deferredData []deferredDataWord
	var entries []deferredEntry

	for _, d := range program.Lines {
		if d.Err != nil {
			continue
		}
		pos := parser.Position{Filename: filename, Line: d.LineNumber}

		switch d.Kind {
		case parser.KindEmpty:
			if d.Label == "" {
				continue
			}
			if err := checkNameAvailableAsSymbol(tu, pos, d.Label); err != nil {
				errs.Add(err)
				continue
			}
			if err := tu.Symbols.Define(d.Label, tu.IC(), SymCode); err != nil {
				errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
			}

		case parser.KindConstantDefinition:
			name := d.Const.Name
			if err := checkNameAvailableAsConstant(tu, pos, name); err != nil {
				errs.Add(err)
				continue
			}
			if err := tu.Constants.Define(name, d.Const.Value); err != nil {
				errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
			}

		case parser.KindDataDirective:
			if d.Label != "" {
				if err := checkNameAvailableAsSymbol(tu, pos, d.Label); err != nil {
					errs.Add(err)
				} else if err := tu.Symbols.Define(d.Label, tu.DC(), SymData); err != nil {
					errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
				}
			}
			for _, v := range d.Data {
				if v.HasValue {
					if err := encoder.ValidateSigned12(v.IntValue); err != nil {
						errs.Add(parser.NewError(pos, parser.ErrorBitOverflow, err.Error()))
						tu.DataImage = append(tu.DataImage, 0)
						continue
					}
					tu.DataImage = append(tu.DataImage, encoder.DataWord(v.IntValue))
					continue
				}
				deferredData = append(deferredData, deferredDataWord{
					index: len(tu.DataImage), constName: v.ConstName, pos: pos,
				})
				tu.DataImage = append(tu.DataImage, 0)
			}

		case parser.KindStringDirective:
			if d.Label != "" {
				if err := checkNameAvailableAsSymbol(tu, pos, d.Label); err != nil {
					errs.Add(err)
				} else if err := tu.Symbols.Define(d.Label, tu.DC(), SymData); err != nil {
					errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
				}
			}
			for _, r := range d.Str {
				tu.DataImage = append(tu.DataImage, encoder.DataWord(int(r)))
			}
			tu.DataImage = append(tu.DataImage, encoder.DataWord(0))

		case parser.KindExternDirective:
			name := d.ExternName
			if err := checkNameAvailableAsSymbol(tu, pos, name); err != nil {
				errs.Add(err)
				continue
			}
			if err := tu.Symbols.Define(name, 0, SymExtern); err != nil {
				errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
			}

		case parser.KindEntryDirective:
			entries = append(entries, deferredEntry{name: d.EntryName, pos: pos})

		case parser.KindCommand:
			if d.Label != "" {
				if err := checkNameAvailableAsSymbol(tu, pos, d.Label); err != nil {
					errs.Add(err)
				} else if err := tu.Symbols.Define(d.Label, tu.IC(), SymCode); err != nil {
					errs.Add(parser.NewError(pos, parser.ErrorDuplicateSymbol, err.Error()))
				}
			}
			n := commandWordCount(d.Command)
			for i := 0; i < n; i++ {
				tu.CodeImage = append(tu.CodeImage, 0)
			}
		}
	}

	for _, dd := range deferredData {
		c, ok := tu.Constants.Lookup(dd.constName)
		if !ok {
			errs.Add(parser.NewError(dd.pos, parser.ErrorUnfoundConst, "undefined constant: "+dd.constName))
			continue
		}
		if err := encoder.ValidateSigned12(c.Value); err != nil {
			errs.Add(parser.NewError(dd.pos, parser.ErrorBitOverflow, err.Error()))
			continue
		}
		tu.DataImage[dd.index] = encoder.DataWord(c.Value)
	}

	tu.Symbols.RelocateDataSymbols(tu.IC())

	for _, e := range entries {
		sym, ok := tu.Symbols.Lookup(e.name)
		if !ok {
			errs.Add(parser.NewError(e.pos, parser.ErrorUnfoundLabel, "undefined entry target: "+e.name))
			continue
		}
		if sym.Type == SymExtern {
			errs.Add(parser.NewError(e.pos, parser.ErrorExternCannotBeEntry, "extern label cannot be an entry: "+e.name))
			continue
		}
		switch sym.Type {
		case SymCode:
			sym.Type = SymEntryCode
		case SymData:
			sym.Type = SymEntryData
		}
		tu.EntryList = append(tu.EntryList, sym)
	}

	return tu, errs
}
