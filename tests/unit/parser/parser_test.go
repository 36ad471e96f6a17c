package parser_test

import (
	"testing"

	"github.com/example/asm14/isa"
	"github.com/example/asm14/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_LabeledCommand(t *testing.T) {
	d := parser.ParseLine("t.as", 1, "LOOP: mov #1, r2")
	require.Nil(t, d.Err)
	assert.Equal(t, "LOOP", d.Label)
	assert.Equal(t, parser.KindCommand, d.Kind)
	assert.Equal(t, isa.OpMov, d.Command.Opcode)
	assert.Equal(t, isa.ModeImmediate, d.Command.Src.Mode)
	assert.Equal(t, isa.ModeDirectRegister, d.Command.Dst.Mode)
}

func TestParseLine_CommentAndBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "; a full comment line"} {
		d := parser.ParseLine("t.as", 1, raw)
		require.Nil(t, d.Err)
		assert.Equal(t, parser.KindEmpty, d.Kind)
	}
}

func TestParseLine_StandaloneLabel(t *testing.T) {
	d := parser.ParseLine("t.as", 1, "DONE:")
	require.Nil(t, d.Err)
	assert.Equal(t, "DONE", d.Label)
	assert.Equal(t, parser.KindEmpty, d.Kind)
}

func TestParseLine_ReservedLabel(t *testing.T) {
	d := parser.ParseLine("t.as", 1, "mov: hlt")
	require.NotNil(t, d.Err)
	assert.Equal(t, parser.ErrorNameCollidesReserved, d.Err.Kind)
}

func TestParseLine_TooLong(t *testing.T) {
	raw := "mov r1, r2 ; " + string(make([]byte, 100))
	d := parser.ParseLine("t.as", 1, raw)
	require.NotNil(t, d.Err)
	assert.Equal(t, parser.ErrorLineTooLong, d.Err.Kind)
}

func TestParseLine_Define(t *testing.T) {
	d := parser.ParseLine("t.as", 1, ".define SIZE = 10")
	require.Nil(t, d.Err)
	assert.Equal(t, parser.KindConstantDefinition, d.Kind)
	assert.Equal(t, "SIZE", d.Const.Name)
	assert.Equal(t, 10, d.Const.Value)
}

func TestParseLine_DataWithLabel(t *testing.T) {
	d := parser.ParseLine("t.as", 1, "LIST: .data 1, 2, 3")
	require.Nil(t, d.Err)
	assert.Equal(t, "LIST", d.Label)
	assert.Equal(t, parser.KindDataDirective, d.Kind)
	assert.Len(t, d.Data, 3)
}

func TestParseLine_StringDirective(t *testing.T) {
	d := parser.ParseLine("t.as", 1, `MSG: .string "hi"`)
	require.Nil(t, d.Err)
	assert.Equal(t, parser.KindStringDirective, d.Kind)
	assert.Equal(t, "hi", d.Str)
}

func TestParseLine_EntryExtern(t *testing.T) {
	d1 := parser.ParseLine("t.as", 1, ".entry MAIN")
	require.Nil(t, d1.Err)
	assert.Equal(t, parser.KindEntryDirective, d1.Kind)
	assert.Equal(t, "MAIN", d1.EntryName)

	d2 := parser.ParseLine("t.as", 2, ".extern EXT1")
	require.Nil(t, d2.Err)
	assert.Equal(t, parser.KindExternDirective, d2.Kind)
	assert.Equal(t, "EXT1", d2.ExternName)
}

func TestParseLine_UnknownOpcode(t *testing.T) {
	d := parser.ParseLine("t.as", 1, "frobnicate r1")
	require.NotNil(t, d.Err)
	assert.Equal(t, parser.ErrorOpcodeFormat, d.Err.Kind)
}

func TestParseProgram_AccumulatesErrors(t *testing.T) {
	source := "mov r1, r2\nfrobnicate r3\n.define mov = 1\nhlt\n"
	program, errs := parser.ParseProgram("t.as", source)
	assert.Len(t, program.Lines, 4)
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.Errors, 2)
}

func TestParseProgram_CleanFile(t *testing.T) {
	source := "LOOP: mov #1, r2\nhlt\n"
	program, errs := parser.ParseProgram("t.as", source)
	assert.False(t, errs.HasErrors())
	assert.Len(t, program.Lines, 2)
}
