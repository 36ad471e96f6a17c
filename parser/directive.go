package parser

import (
	"strings"

	"github.com/example/asm14/isa"
)

// parseDefine parses `NAME = N` (the text after ".define").
func parseDefine(pos Position, rest string) (ConstantDefinition, *Error) {
	fields := strings.Fields(rest)
	if len(fields) != 3 || fields[1] != "=" {
		return ConstantDefinition{}, NewError(pos, ErrorMalformedDirective, ".define requires 'NAME = VALUE'")
	}
	name := fields[0]
	if !isValidLabelSyntax(name) {
		return ConstantDefinition{}, NewError(pos, ErrorLabelSyntax, "invalid constant name: "+name)
	}
	if isa.IsReserved(name) {
		return ConstantDefinition{}, NewError(pos, ErrorNameCollidesReserved, "constant name is reserved: "+name)
	}
	n, err := parseInteger(fields[2])
	if err != nil {
		return ConstantDefinition{}, NewError(pos, ErrorMalformedDirective, ".define value is not an integer: "+fields[2])
	}
	return ConstantDefinition{Name: name, Value: n}, nil
}

// parseData parses the comma-separated list of integers or constant
// references after ".data".
func parseData(pos Position, rest string) ([]Value, *Error) {
	trimmed := strings.TrimSpace(rest)
	if trimmed == "" {
		return nil, NewError(pos, ErrorMalformedDirective, ".data requires at least one value")
	}
	if trimmed[0] == ',' || strings.HasSuffix(trimmed, ",") {
		return nil, NewError(pos, ErrorExtraneousComma, "stray comma in .data list")
	}

	cursor := trimmed
	var values []Value
	for cursor != "" {
		tok := extractTokenUntilComma(&cursor)
		if tok == "" {
			return nil, NewError(pos, ErrorExtraneousComma, "empty value in .data list")
		}
		if n, err := parseInteger(tok); err == nil {
			values = append(values, Value{HasValue: true, IntValue: n})
		} else if isValidLabelSyntax(tok) {
			values = append(values, Value{HasValue: false, ConstName: tok})
		} else {
			return nil, NewError(pos, ErrorMalformedDirective, "invalid .data value: "+tok)
		}
		if cursor != "" {
			cursor = cursor[1:] // skip the comma extractTokenUntilComma left in place
		}
	}
	return values, nil
}

// parseString parses the quoted string literal after ".string".
func parseString(pos Position, rest string) (string, *Error) {
	trimmed := strings.TrimSpace(rest)
	if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return "", NewError(pos, ErrorMalformedDirective, ".string requires a quoted literal")
	}
	return trimmed[1 : len(trimmed)-1], nil
}

// parseIdentifierDirective parses the single label-name argument to
// ".entry" or ".extern".
func parseIdentifierDirective(pos Position, directiveName, rest string) (string, *Error) {
	name := strings.TrimSpace(rest)
	if name == "" {
		return "", NewError(pos, ErrorMalformedDirective, directiveName+" requires a label name")
	}
	if !isValidLabelSyntax(name) {
		return "", NewError(pos, ErrorLabelSyntax, "invalid label syntax in "+directiveName+": "+name)
	}
	return name, nil
}
