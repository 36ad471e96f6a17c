// Package config loads the assembler's tunable parameters (word
// width, base load address, output options) from an optional TOML
// file, falling back to built-in defaults when none is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the user-adjustable settings loaded at startup. The CLI
// reads Assembler.BaseAddress, WordBits, ImmediateBits and ExpandMacros;
// Assembler.MaxLabelLen, Assembler.MaxLineLen and the Output section are
// loaded and (for DisplayAlphabet) validated, but nothing else reads
// them: the parser's limits are the constants in parser/lexer.go, and
// the emitter always uses the "abcd" alphabet and writes .ent/.ext
// whenever there are entries/external uses.
type Config struct {
	Assembler struct {
		BaseAddress   int  `toml:"base_address"`
		WordBits      int  `toml:"word_bits"`
		ImmediateBits int  `toml:"immediate_bits"`
		MaxLabelLen   int  `toml:"max_label_len"`
		MaxLineLen    int  `toml:"max_line_len"`
		ExpandMacros  bool `toml:"expand_macros"`
	} `toml:"assembler"`

	Output struct {
		DisplayAlphabet string `toml:"display_alphabet"`
		WriteEntries    bool   `toml:"write_entries"`
		WriteExternals  bool   `toml:"write_externals"`
	} `toml:"output"`
}

// DefaultConfig returns a Config populated with spec.md's fixed
// values: a 14-bit word, a 12-bit immediate field, base address 100.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembler.BaseAddress = 100
	cfg.Assembler.WordBits = 14
	cfg.Assembler.ImmediateBits = 12
	cfg.Assembler.MaxLabelLen = 31
	cfg.Assembler.MaxLineLen = 80
	cfg.Assembler.ExpandMacros = true

	cfg.Output.DisplayAlphabet = "abcd"
	cfg.Output.WriteEntries = true
	cfg.Output.WriteExternals = true

	return cfg
}

// Validate rejects settings that would corrupt a run: a non-positive
// word width, immediate width, or base address, or a display alphabet
// that is not exactly 4 symbols long.
func (c *Config) Validate() error {
	if c.Assembler.WordBits <= 0 {
		return fmt.Errorf("assembler.word_bits must be positive, got %d", c.Assembler.WordBits)
	}
	if c.Assembler.ImmediateBits <= 0 {
		return fmt.Errorf("assembler.immediate_bits must be positive, got %d", c.Assembler.ImmediateBits)
	}
	if c.Assembler.BaseAddress <= 0 {
		return fmt.Errorf("assembler.base_address must be positive, got %d", c.Assembler.BaseAddress)
	}
	if len(c.Output.DisplayAlphabet) != 4 {
		return fmt.Errorf("output.display_alphabet must have exactly 4 symbols, got %q", c.Output.DisplayAlphabet)
	}
	return nil
}

// GetConfigPath returns the platform-specific default config file
// path: "<user config dir>/asm14/config.toml".
func GetConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	dir = filepath.Join(dir, "asm14")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "config.toml")
}

// Load loads configuration from path. A missing file is not an
// error: it yields the default configuration. An empty path loads
// from GetConfigPath's default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes c to path in TOML form, creating its parent
// directory if needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
