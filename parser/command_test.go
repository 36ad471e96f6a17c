package parser

import (
	"testing"

	"github.com/example/asm14/isa"
)

func TestSplitOperandAndRest_BracketAware(t *testing.T) {
	tok, rest := splitOperandAndRest("LIST[ SZ ] r0")
	if tok != "LIST[ SZ ]" || rest != "r0" {
		t.Errorf("got tok=%q rest=%q", tok, rest)
	}
}

func TestParseTwoOperands_Valid(t *testing.T) {
	src, dst, err := parseTwoOperands(testPos, "r1, r2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != "r1" || dst != "r2" {
		t.Errorf("got src=%q dst=%q", src, dst)
	}
}

func TestParseTwoOperands_LeadingComma(t *testing.T) {
	_, _, err := parseTwoOperands(testPos, ", r2")
	if err == nil || err.Kind != ErrorExtraneousComma {
		t.Fatalf("expected ErrorExtraneousComma, got %v", err)
	}
}

func TestParseTwoOperands_MissingComma(t *testing.T) {
	_, _, err := parseTwoOperands(testPos, "r1 r2")
	if err == nil || err.Kind != ErrorMissingComma {
		t.Fatalf("expected ErrorMissingComma, got %v", err)
	}
}

func TestParseTwoOperands_DoubledComma(t *testing.T) {
	_, _, err := parseTwoOperands(testPos, "r1,, r2")
	if err == nil || err.Kind != ErrorExtraneousComma {
		t.Fatalf("expected ErrorExtraneousComma, got %v", err)
	}
}

func TestParseTwoOperands_TrailingComma(t *testing.T) {
	_, _, err := parseTwoOperands(testPos, "r1, r2,")
	if err == nil || err.Kind != ErrorMissingOperand {
		t.Fatalf("expected ErrorMissingOperand, got %v", err)
	}
}

func TestParseTwoOperands_TrailingContent(t *testing.T) {
	_, _, err := parseTwoOperands(testPos, "r1, r2, r3")
	if err == nil || err.Kind != ErrorRedundantValCmd {
		t.Fatalf("expected ErrorRedundantValCmd, got %v", err)
	}
}

func TestParseCommand_ArityNoneRejectsOperand(t *testing.T) {
	def, _ := isa.Lookup("hlt")
	_, err := parseCommand(testPos, def, "r1")
	if err == nil || err.Kind != ErrorRedundantValCmd {
		t.Fatalf("expected ErrorRedundantValCmd, got %v", err)
	}
}

func TestParseCommand_ArityOneDisallowedMode(t *testing.T) {
	def, _ := isa.Lookup("jmp") // jmp only allows Direct and DirectRegister
	_, err := parseCommand(testPos, def, "#5")
	if err == nil || err.Kind != ErrorUnknownAddressingForOpcode {
		t.Fatalf("expected ErrorUnknownAddressingForOpcode, got %v", err)
	}
}

func TestParseCommand_ArityTwoMov(t *testing.T) {
	def, _ := isa.Lookup("mov")
	cmd, err := parseCommand(testPos, def, "#5, r2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Src.Mode != isa.ModeImmediate || cmd.Dst.Mode != isa.ModeDirectRegister {
		t.Errorf("got %+v", cmd)
	}
}

func TestParseCommand_MovImmediateDestRejected(t *testing.T) {
	def, _ := isa.Lookup("mov") // dst does not allow Immediate
	_, err := parseCommand(testPos, def, "r1, #5")
	if err == nil || err.Kind != ErrorUnknownAddressingForOpcode {
		t.Fatalf("expected ErrorUnknownAddressingForOpcode, got %v", err)
	}
}
