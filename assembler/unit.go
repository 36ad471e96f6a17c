package assembler

// Options carries the assembler parameters spec.md treats as fixed
// constants (base load address, word width, immediate field width),
// filled from config.Config by the CLI. The passes read only
// BaseAddress; WordBits and ImmediateBits are carried but not read, and
// the encoder always produces 14-bit words with 12-bit value fields.
type Options struct {
	BaseAddress   int
	WordBits      int
	ImmediateBits int
}

// DefaultOptions returns spec.md's fixed values: base address 100, a
// 14-bit word, 12-bit immediate fields.
func DefaultOptions() Options {
	return Options{BaseAddress: 100, WordBits: 14, ImmediateBits: 12}
}

// ExternalUse records one use-site of an external label in the code
// image.
type ExternalUse struct {
	Name    string
	Address int
}

// TranslationUnit is the mutable accumulator threaded through both
// assembly passes for one input file.
type TranslationUnit struct {
	Opts Options

	CodeImage []uint16 // IC = BaseAddress + len(CodeImage)
	DataImage []uint16 // DC = len(DataImage)

	Symbols   *SymbolTable
	Constants *ConstantTable

	EntryList []*Symbol
	Externals []ExternalUse
}

// NewTranslationUnit creates an empty unit with IC/DC at their initial
// values.
func NewTranslationUnit(opts Options) *TranslationUnit {
	return &TranslationUnit{
		Opts:      opts,
		Symbols:   NewSymbolTable(),
		Constants: NewConstantTable(),
	}
}

// IC returns the current instruction counter: BaseAddress plus the
// number of words already appended to the code image.
func (tu *TranslationUnit) IC() int {
	return tu.Opts.BaseAddress + len(tu.CodeImage)
}

// DC returns the current data counter: the number of words already
// appended to the data image.
func (tu *TranslationUnit) DC() int {
	return len(tu.DataImage)
}

// FinalIC returns BaseAddress plus the total instruction word count,
// i.e. the IC value at the end of pass 1 — the point at which every
// DATA_LABEL's address is relocated into the unified address space.
func (tu *TranslationUnit) FinalIC() int {
	return tu.IC()
}
