// Package emitter serializes a finished TranslationUnit into the
// three output artifacts an assembled file produces: the object file,
// the entries file and the externals file.
package emitter

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/example/asm14/assembler"
)

// base4Alphabet is the display alphabet used to print a machine word
// in the object file. The encoding it represents (14 bits, MSB
// first) is fixed by the spec; the four symbols themselves are not,
// so any stable mapping works.
const base4Alphabet = "abcd"

// encodeWordBase4 renders word's 14 significant bits as seven base-4
// digits, most significant pair first.
func encodeWordBase4(word uint16) string {
	var b strings.Builder
	for shift := 12; shift >= 0; shift -= 2 {
		digit := (word >> uint(shift)) & 0x3
		b.WriteByte(base4Alphabet[digit])
	}
	return b.String()
}

// baseName strips a trailing ".as" (if present) so output files are
// named "<base>.ob" etc. rather than "<base>.as.ob".
func baseName(inputPath string) string {
	return strings.TrimSuffix(inputPath, ".as")
}

// WriteObjectFile writes "<base>.ob": a header line with the code and
// data image lengths, then one "<address> <word>" line per word,
// code image first, then data image.
func WriteObjectFile(base string, tu *assembler.TranslationUnit) error {
	f, err := os.Create(base + ".ob")
	if err != nil {
		return errors.Wrap(err, "creating object file")
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d %d\n", len(tu.CodeImage), len(tu.DataImage)); err != nil {
		return errors.Wrap(err, "writing object file header")
	}

	addr := tu.Opts.BaseAddress
	for _, w := range tu.CodeImage {
		if _, err := fmt.Fprintf(f, "%d %s\n", addr, encodeWordBase4(w)); err != nil {
			return errors.Wrap(err, "writing object file body")
		}
		addr++
	}
	for _, w := range tu.DataImage {
		if _, err := fmt.Fprintf(f, "%d %s\n", addr, encodeWordBase4(w)); err != nil {
			return errors.Wrap(err, "writing object file body")
		}
		addr++
	}
	return nil
}

// WriteEntriesFile writes "<base>.ent": one "<name> <address>" line
// per entry symbol. It writes nothing at all when there are no
// entries, per spec.
func WriteEntriesFile(base string, tu *assembler.TranslationUnit) error {
	if len(tu.EntryList) == 0 {
		return nil
	}
	f, err := os.Create(base + ".ent")
	if err != nil {
		return errors.Wrap(err, "creating entries file")
	}
	defer f.Close()

	entries := make([]*assembler.Symbol, len(tu.EntryList))
	copy(entries, tu.EntryList)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Address < entries[j].Address })

	for _, s := range entries {
		if _, err := fmt.Fprintf(f, "%s %d\n", s.Name, s.Address); err != nil {
			return errors.Wrap(err, "writing entries file")
		}
	}
	return nil
}

// WriteExternalsFile writes "<base>.ext": one "<name> <address>" line
// per externals use-site, sorted by address ascending. It writes
// nothing when there are no external use-sites.
func WriteExternalsFile(base string, tu *assembler.TranslationUnit) error {
	if len(tu.Externals) == 0 {
		return nil
	}
	f, err := os.Create(base + ".ext")
	if err != nil {
		return errors.Wrap(err, "creating externals file")
	}
	defer f.Close()

	uses := make([]assembler.ExternalUse, len(tu.Externals))
	copy(uses, tu.Externals)
	sort.Slice(uses, func(i, j int) bool { return uses[i].Address < uses[j].Address })

	for _, u := range uses {
		if _, err := fmt.Fprintf(f, "%s %d\n", u.Name, u.Address); err != nil {
			return errors.Wrap(err, "writing externals file")
		}
	}
	return nil
}

// WriteAll writes all three output files for inputPath, deriving
// "<base>" by stripping a trailing ".as" extension.
func WriteAll(inputPath string, tu *assembler.TranslationUnit) error {
	base := baseName(inputPath)
	if err := WriteObjectFile(base, tu); err != nil {
		return err
	}
	if err := WriteEntriesFile(base, tu); err != nil {
		return err
	}
	if err := WriteExternalsFile(base, tu); err != nil {
		return err
	}
	return nil
}
