// Command asm14 assembles one or more 14-bit assembly source files,
// each processed independently, writing ".ob"/".ent"/".ext" files for
// every file that assembles cleanly.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/example/asm14/assembler"
	"github.com/example/asm14/config"
	"github.com/example/asm14/emitter"
	"github.com/example/asm14/macro"
	"github.com/example/asm14/parser"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		dumpSymbols = flag.Bool("symbols", false, "Print the symbol table instead of writing output files")
		noMacros    = flag.Bool("no-macros", false, "Skip the mcr/endmcr preprocessing pass")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: asm14 [-config path] [-symbols] [-no-macros] file.as ...")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := assembleFile(path, cfg, *dumpSymbols, *noMacros); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// assembleFile runs one input file through macro expansion, both
// assembly passes, and either symbol-table dumping or output-file
// emission, reporting every error it can before returning.
func assembleFile(path string, cfg *config.Config, dumpSymbols, skipMacros bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading file")
	}
	source := string(raw)

	if cfg.Assembler.ExpandMacros && !skipMacros {
		source, err = macro.Expand(source)
		if err != nil {
			return fmt.Errorf("macro expansion: %w", err)
		}
	}

	program, parseErrs := parser.ParseProgram(path, source)
	if parseErrs.HasErrors() {
		fmt.Fprint(os.Stderr, parseErrs.Error()+"\n")
		return fmt.Errorf("%d error(s) during parsing", len(parseErrs.Errors))
	}

	opts := assembler.Options{
		BaseAddress:   cfg.Assembler.BaseAddress,
		WordBits:      cfg.Assembler.WordBits,
		ImmediateBits: cfg.Assembler.ImmediateBits,
	}
	tu, pass1Errs := assembler.FirstPass(path, program, opts)
	// Pass 2 always runs, even when pass 1 recorded errors: a
	// duplicate-label error must not hide a pass-2 encoding error
	// (e.g. an out-of-range immediate) on a different line of the same
	// file. Every error the file produces is reported in one run.
	pass2Errs := assembler.SecondPass(tu, path, program)

	if pass1Errs.HasErrors() || pass2Errs.HasErrors() {
		var reports []string
		if pass1Errs.HasErrors() {
			reports = append(reports, pass1Errs.Error())
		}
		if pass2Errs.HasErrors() {
			reports = append(reports, pass2Errs.Error())
		}
		fmt.Fprintln(os.Stderr, strings.Join(reports, "\n"))
		return fmt.Errorf("%d error(s) during assembly", len(pass1Errs.Errors)+len(pass2Errs.Errors))
	}

	if dumpSymbols {
		printSymbolTable(tu)
		return nil
	}

	if err := emitter.WriteAll(path, tu); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// printSymbolTable prints every symbol's name, address and type to
// stdout, sorted by address, in place of writing output files.
func printSymbolTable(tu *assembler.TranslationUnit) {
	symbols := tu.Symbols.All()
	sort.Slice(symbols, func(i, j int) bool { return symbols[i].Address < symbols[j].Address })
	for _, s := range symbols {
		fmt.Printf("%-20s %5d  %s\n", s.Name, s.Address, symbolTypeName(s.Type))
	}
}

func symbolTypeName(t assembler.SymbolType) string {
	switch t {
	case assembler.SymCode:
		return "CODE_LABEL"
	case assembler.SymData:
		return "DATA_LABEL"
	case assembler.SymExtern:
		return "EXTERN_LABEL"
	case assembler.SymEntryCode:
		return "ENTRY_CODE_LABEL"
	case assembler.SymEntryData:
		return "ENTRY_DATA_LABEL"
	default:
		return "UNKNOWN"
	}
}
