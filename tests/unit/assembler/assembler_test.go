package assembler_test

import (
	"testing"

	"github.com/example/asm14/assembler"
	"github.com/example/asm14/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleClean(t *testing.T, source string) *assembler.TranslationUnit {
	t.Helper()
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors(), "parse errors: %v", perrs)
	tu, errs1 := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.False(t, errs1.HasErrors(), "pass1 errors: %v", errs1)
	errs2 := assembler.SecondPass(tu, "t.as", program)
	require.False(t, errs2.HasErrors(), "pass2 errors: %v", errs2)
	return tu
}

func TestHelloWorldData(t *testing.T) {
	tu := assembleClean(t, "MAIN: mov #5, r3\n      hlt\n")
	// mov: first word + immediate src word + single-register dst word; hlt: one more word
	require.Len(t, tu.CodeImage, 4)
	assert.Empty(t, tu.DataImage)
	assert.EqualValues(t, 12, tu.CodeImage[0])
	assert.EqualValues(t, 20, tu.CodeImage[1])
	assert.EqualValues(t, 3<<2, tu.CodeImage[2])

	sym, ok := tu.Symbols.Lookup("MAIN")
	require.True(t, ok)
	assert.Equal(t, 100, sym.Address)
}

func TestDoubleRegister(t *testing.T) {
	tu := assembleClean(t, "add r1, r2\n")
	require.Len(t, tu.CodeImage, 2)
	assert.EqualValues(t, 188, tu.CodeImage[0])
	assert.EqualValues(t, 40, tu.CodeImage[1])
}

func TestExternalReference(t *testing.T) {
	tu := assembleClean(t, ".extern EXT\njmp EXT\n")
	require.Len(t, tu.CodeImage, 2)
	assert.EqualValues(t, 580, tu.CodeImage[0])
	assert.EqualValues(t, 1, tu.CodeImage[1])
	require.Len(t, tu.Externals, 1)
	assert.Equal(t, "EXT", tu.Externals[0].Name)
	assert.Equal(t, 101, tu.Externals[0].Address)
}

func TestFixedIndexWithConstant(t *testing.T) {
	tu := assembleClean(t, ".define SZ = 3\nLIST: .data 10, 20, 30\nmov LIST[SZ], r0\n")
	// first word + FixedIndex src (2 words: address, index) + DirectRegister dst (1 word)
	require.Len(t, tu.CodeImage, 4)

	sym, ok := tu.Symbols.Lookup("LIST")
	require.True(t, ok)
	assert.Equal(t, tu.Opts.BaseAddress+len(tu.CodeImage), sym.Address)

	// second extra word: index value 3, A/R/E = 00
	assert.EqualValues(t, 3<<2, tu.CodeImage[2])
}

func TestErrorAccumulation(t *testing.T) {
	// Two duplicate labels (a pass-1 error) plus an out-of-range
	// immediate (a pass-2 error) must all surface from one run: pass 1
	// reporting an error must not stop pass 2 from running at all.
	source := "A: hlt\nA: hlt\nmov #99999, r0\n"
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors())

	tu, errs1 := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.True(t, errs1.HasErrors())

	errs2 := assembler.SecondPass(tu, "t.as", program)
	require.True(t, errs2.HasErrors(), "pass 2 must still run and report its own errors")
	total := len(errs1.Errors) + len(errs2.Errors)
	assert.GreaterOrEqual(t, total, 2)
}

func TestFixedIndexBothLabelAndIndexFail(t *testing.T) {
	// An undefined label and an undefined index constant are
	// independent failures; both must be reported, not just the first.
	source := "mov UNDEF[BADCONST], r0\n"
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors())

	tu, errs1 := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.False(t, errs1.HasErrors())

	errs2 := assembler.SecondPass(tu, "t.as", program)
	require.Len(t, errs2.Errors, 2)
	kinds := map[parser.ErrorKind]bool{}
	for _, e := range errs2.Errors {
		kinds[e.Kind] = true
	}
	assert.True(t, kinds[parser.ErrorUnfoundLabel])
	assert.True(t, kinds[parser.ErrorUnfoundConst])
}

func TestDataValueOverflow(t *testing.T) {
	source := ".define BIG = 5000\nLIST: .data 5000, 1, BIG\n"
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors())

	_, errs := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.Len(t, errs.Errors, 2) // the literal 5000 and the BIG-constant 5000
	for _, e := range errs.Errors {
		assert.Equal(t, parser.ErrorBitOverflow, e.Kind)
	}
}

func TestEntryOfDataLabel(t *testing.T) {
	tu := assembleClean(t, ".entry DAT\nDAT: .string \"hi\"\n")
	require.Len(t, tu.EntryList, 1)
	entry := tu.EntryList[0]
	assert.Equal(t, "DAT", entry.Name)
	assert.Equal(t, tu.Opts.BaseAddress, entry.Address) // no code words emitted
	assert.Equal(t, assembler.SymEntryData, entry.Type)

	require.Len(t, tu.DataImage, 3)
	assert.EqualValues(t, 'h', tu.DataImage[0])
	assert.EqualValues(t, 'i', tu.DataImage[1])
	assert.EqualValues(t, 0, tu.DataImage[2])
}

func TestDuplicateSymbolAcrossNamespaces(t *testing.T) {
	source := ".define SIZE = 4\nSIZE: hlt\n"
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors())
	_, errs := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.True(t, errs.HasErrors())
	assert.Equal(t, parser.ErrorDuplicateSymbol, errs.Errors[0].Kind)
}

func TestExternCannotBeEntry(t *testing.T) {
	source := ".extern EXT\n.entry EXT\nhlt\n"
	program, perrs := parser.ParseProgram("t.as", source)
	require.False(t, perrs.HasErrors())
	_, errs := assembler.FirstPass("t.as", program, assembler.DefaultOptions())
	require.True(t, errs.HasErrors())
	found := false
	for _, e := range errs.Errors {
		if e.Kind == parser.ErrorExternCannotBeEntry {
			found = true
		}
	}
	assert.True(t, found)
}
