// Package macro implements a minimal single-pass line-body macro
// preprocessor: `mcr NAME` ... `endmcr` defines a named, parameterless
// body of lines; a later standalone line `NAME` is replaced by that
// body. It never inspects the substituted text for symbols or
// addressing — that is pass 1/2's job on the expanded source.
package macro

import (
	"fmt"
	"strings"
)

// MaxNestingDepth bounds how many macro invocations may expand
// transitively within a single expansion, guarding against a macro
// body that (directly or indirectly) invokes itself.
const MaxNestingDepth = 32

// Table holds the macro bodies defined so far in one source file.
type Table struct {
	bodies map[string][]string
	order  []string
}

// NewTable creates an empty macro table.
func NewTable() *Table {
	return &Table{bodies: make(map[string][]string)}
}

// Define stores name's body, erroring if name was already defined.
func (t *Table) Define(name string, body []string) error {
	if _, exists := t.bodies[name]; exists {
		return fmt.Errorf("macro %q already defined", name)
	}
	t.bodies[name] = body
	t.order = append(t.order, name)
	return nil
}

// Lookup returns name's body, if defined.
func (t *Table) Lookup(name string) ([]string, bool) {
	b, ok := t.bodies[name]
	return b, ok
}

// Expand scans source line by line, collecting `mcr NAME` ... `endmcr`
// blocks into a Table and replacing every later standalone-line
// invocation of NAME with its stored body. Body lines that name a macro
// already defined at the point of invocation are expanded in turn (see
// expandBody); a body line naming a macro defined later in the source
// is copied out as plain text. Only textual substitution happens,
// consistent with this being a preprocessing step ahead of the real
// two-pass assembler.
func Expand(source string) (string, error) {
	lines := strings.Split(source, "\n")
	table := NewTable()

	var out []string
	var i int
	for i = 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		fields := strings.Fields(trimmed)

		if len(fields) >= 1 && fields[0] == "mcr" {
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: mcr requires exactly one name", i+1)
			}
			name := fields[1]
			body, next, err := collectBody(lines, i+1, name)
			if err != nil {
				return "", err
			}
			if err := table.Define(name, body); err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			i = next
			continue
		}

		if body, ok := table.Lookup(trimmed); ok {
			expanded, err := expandBody(table, trimmed, body, 0)
			if err != nil {
				return "", fmt.Errorf("line %d: %w", i+1, err)
			}
			out = append(out, expanded...)
			continue
		}

		out = append(out, lines[i])
	}

	return strings.Join(out, "\n"), nil
}

// collectBody gathers every line between an `mcr NAME` line and its
// matching `endmcr`, starting the scan at lines[start].
func collectBody(lines []string, start int, name string) (body []string, endIdx int, err error) {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "endmcr" {
			return body, i, nil
		}
		body = append(body, lines[i])
	}
	return nil, 0, fmt.Errorf("mcr %q has no matching endmcr", name)
}

// expandBody resolves body's lines, recursively substituting any
// further macro invocations it contains up to MaxNestingDepth, and
// rejecting a macro that (directly or transitively) invokes itself.
func expandBody(table *Table, invoking string, body []string, depth int) ([]string, error) {
	if depth >= MaxNestingDepth {
		return nil, fmt.Errorf("macro expansion nested too deep (possible recursion) expanding %q", invoking)
	}

	var out []string
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == invoking {
			return nil, fmt.Errorf("recursive macro body: %q invokes itself", invoking)
		}
		if nested, ok := table.Lookup(trimmed); ok {
			expanded, err := expandBody(table, trimmed, nested, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
