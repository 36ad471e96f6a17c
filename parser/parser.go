package parser

import (
	"fmt"
	"strings"

	"github.com/example/asm14/isa"
)

// ParseLine parses a single source line into an AbstractLineDescriptor.
// The descriptor is returned even on error so that callers can keep
// the line's slot in the program for address bookkeeping.
func ParseLine(filename string, lineNumber int, raw string) *AbstractLineDescriptor {
	d := &AbstractLineDescriptor{LineNumber: lineNumber}
	pos := Position{Filename: filename, Line: lineNumber}

	if len(raw) > MaxLineLen {
		d.Err = NewError(pos, ErrorLineTooLong, fmt.Sprintf("line exceeds %d characters", MaxLineLen))
		return d
	}

	line := strings.TrimLeft(raw, " \t")
	if line == "" || strings.HasPrefix(line, ";") {
		d.Kind = KindEmpty
		return d
	}

	var label string
	firstWord, rest := extractFirstWord(line)
	if strings.HasSuffix(firstWord, ":") {
		name := firstWord[:len(firstWord)-1]
		if !isValidLabelSyntax(name) {
			d.Err = NewError(pos, ErrorLabelSyntax, "invalid label syntax: "+name)
			return d
		}
		if isa.IsReserved(name) {
			d.Err = NewError(pos, ErrorNameCollidesReserved, "label name is reserved: "+name)
			return d
		}
		label = name
		line = rest
	}

	if line == "" {
		// Standalone label definition with nothing on the same line.
		// Pass 1 treats this like an instruction line with zero words:
		// the label becomes a code label at the current IC.
		d.Label = label
		d.Kind = KindEmpty
		return d
	}

	tok, rest2 := extractFirstWord(line)

	switch tok {
	case ".define":
		if label != "" {
			d.Err = NewError(pos, ErrorMalformedDirective, "label not allowed on .define line")
			return d
		}
		cd, err := parseDefine(pos, rest2)
		if err != nil {
			d.Err = err
			return d
		}
		d.Kind = KindConstantDefinition
		d.Const = cd
		return d

	case ".data":
		values, err := parseData(pos, rest2)
		if err != nil {
			d.Err = err
			return d
		}
		d.Label = label
		d.Kind = KindDataDirective
		d.Data = values
		return d

	case ".string":
		s, err := parseString(pos, rest2)
		if err != nil {
			d.Err = err
			return d
		}
		d.Label = label
		d.Kind = KindStringDirective
		d.Str = s
		return d

	case ".entry":
		name, err := parseIdentifierDirective(pos, ".entry", rest2)
		if err != nil {
			d.Err = err
			return d
		}
		// A label on this line is accepted but ignored (spec.md §4.4 step 2).
		d.Kind = KindEntryDirective
		d.EntryName = name
		return d

	case ".extern":
		name, err := parseIdentifierDirective(pos, ".extern", rest2)
		if err != nil {
			d.Err = err
			return d
		}
		d.Kind = KindExternDirective
		d.ExternName = name
		return d

	default:
		def, ok := isa.Lookup(tok)
		if !ok {
			d.Err = NewError(pos, ErrorOpcodeFormat, "unknown opcode or directive: "+tok)
			return d
		}
		cmd, err := parseCommand(pos, def, rest2)
		if err != nil {
			d.Err = err
			return d
		}
		d.Label = label
		d.Kind = KindCommand
		d.Command = cmd
		return d
	}
}

// ParseProgram splits source into lines and parses each one,
// returning the program and the combined error list (empty when the
// program has no errors).
func ParseProgram(filename, source string) (*Program, *ErrorList) {
	rawLines := strings.Split(source, "\n")
	// A trailing newline produces one spurious empty final element;
	// strings.Split on "a\nb\n" yields ["a","b",""] which is harmless
	// since an empty line parses to KindEmpty, but drop it to keep
	// line numbers matching a file with or without a final newline.
	if len(rawLines) > 0 && rawLines[len(rawLines)-1] == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	program := &Program{Lines: make([]*AbstractLineDescriptor, 0, len(rawLines))}
	errs := &ErrorList{}

	for i, raw := range rawLines {
		raw = strings.TrimRight(raw, "\r")
		d := ParseLine(filename, i+1, raw)
		program.Lines = append(program.Lines, d)
		if d.Err != nil {
			errs.Add(d.Err)
		}
	}

	return program, errs
}
