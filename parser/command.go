package parser

import (
	"strings"

	"github.com/example/asm14/isa"
)

// splitOperandAndRest returns the first whitespace-delimited operand
// token in s (bracket-depth aware, so "LABEL[ SZ ]" is not split on
// its internal space) and whatever trails it, whitespace-trimmed.
func splitOperandAndRest(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth <= 0 && (r == ' ' || r == '\t') {
			return s[:i], strings.TrimLeft(s[i:], " \t")
		}
	}
	return s, ""
}

// parseTwoOperands implements the comma-syntax rules of §4.4.1 for a
// two-operand instruction line.
func parseTwoOperands(pos Position, rest string) (srcText, dstText string, err *Error) {
	trimmed := strings.TrimSpace(rest)
	if trimmed == "" {
		return "", "", NewError(pos, ErrorMissingOperand, "missing operands")
	}
	if trimmed[0] == ',' {
		return "", "", NewError(pos, ErrorExtraneousComma, "comma before first operand")
	}
	commaIdx := strings.IndexByte(trimmed, ',')
	if commaIdx < 0 {
		return "", "", NewError(pos, ErrorMissingComma, "missing comma between operands")
	}
	srcText = strings.TrimSpace(trimmed[:commaIdx])
	if srcText == "" {
		return "", "", NewError(pos, ErrorMissingOperand, "missing first operand")
	}
	after := strings.TrimLeft(trimmed[commaIdx+1:], " \t")
	if after == "" {
		return "", "", NewError(pos, ErrorMissingOperand, "missing second operand")
	}
	if after[0] == ',' {
		return "", "", NewError(pos, ErrorExtraneousComma, "doubled comma")
	}
	secondComma := strings.IndexByte(after, ',')
	var trailing string
	if secondComma < 0 {
		dstText = after
	} else {
		dstText = after[:secondComma]
		trailing = strings.TrimSpace(after[secondComma:])
		if trailing == "," {
			return "", "", NewError(pos, ErrorMissingOperand, "missing operand after trailing comma")
		}
	}
	dstText = strings.TrimSpace(dstText)
	if dstText == "" {
		return "", "", NewError(pos, ErrorMissingOperand, "missing second operand")
	}
	if trailing != "" {
		return "", "", NewError(pos, ErrorRedundantValCmd, "unexpected content after operands: "+trailing)
	}
	return srcText, dstText, nil
}

// parseCommand parses the operand region of a command-instruction
// line for opcode def, dispatching per its arity.
func parseCommand(pos Position, def isa.Def, rest string) (CommandInstruction, *Error) {
	cmd := CommandInstruction{Opcode: def.Opcode, Arity: def.Arity}

	switch def.Arity {
	case isa.ArityNone:
		if strings.TrimSpace(rest) != "" {
			return cmd, NewError(pos, ErrorRedundantValCmd, "unexpected operand for "+def.Mnemonic)
		}
		return cmd, nil

	case isa.ArityOne:
		trimmed := strings.TrimSpace(rest)
		if trimmed == "" {
			return cmd, NewError(pos, ErrorMissingOperand, "missing operand for "+def.Mnemonic)
		}
		tok, trailing := splitOperandAndRest(trimmed)
		if trailing != "" {
			return cmd, NewError(pos, ErrorRedundantValCmd, "unexpected content after operand: "+trailing)
		}
		dst, err := parseOperand(pos, tok)
		if err != nil {
			return cmd, err
		}
		if !def.Dst.Allows(dst.Mode) {
			return cmd, NewError(pos, ErrorUnknownAddressingForOpcode, "addressing mode not allowed for "+def.Mnemonic)
		}
		cmd.Dst = dst
		return cmd, nil

	default: // ArityTwo
		srcText, dstText, err := parseTwoOperands(pos, rest)
		if err != nil {
			return cmd, err
		}
		src, err := parseOperand(pos, srcText)
		if err != nil {
			return cmd, err
		}
		if !def.Src.Allows(src.Mode) {
			return cmd, NewError(pos, ErrorUnknownAddressingForOpcode, "addressing mode not allowed for source of "+def.Mnemonic)
		}
		dst, err := parseOperand(pos, dstText)
		if err != nil {
			return cmd, err
		}
		if !def.Dst.Allows(dst.Mode) {
			return cmd, NewError(pos, ErrorUnknownAddressingForOpcode, "addressing mode not allowed for destination of "+def.Mnemonic)
		}
		cmd.Src = src
		cmd.Dst = dst
		return cmd, nil
	}
}
