package assembler

import "fmt"

// SymbolType classifies an entry in the symbol table.
type SymbolType int

const (
	SymCode SymbolType = iota
	SymData
	SymExtern
	SymEntryCode
	SymEntryData
)

// Symbol is one entry in the symbol table.
type Symbol struct {
	Name    string
	Address int
	Type    SymbolType
}

// IsEntry reports whether this symbol was named in an .entry directive.
func (s *Symbol) IsEntry() bool {
	return s.Type == SymEntryCode || s.Type == SymEntryData
}

// SymbolTable is a name-keyed set of Symbols, unique by name.
type SymbolTable struct {
	byName map[string]*Symbol
	order  []string // insertion order, for deterministic iteration
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Define inserts a new symbol. It returns an error if name is already
// defined (spec.md's DUPLICATE_SYMBOL condition).
func (st *SymbolTable) Define(name string, address int, typ SymbolType) error {
	if _, exists := st.byName[name]; exists {
		return fmt.Errorf("symbol %q already defined", name)
	}
	st.byName[name] = &Symbol{Name: name, Address: address, Type: typ}
	st.order = append(st.order, name)
	return nil
}

// Lookup finds a symbol by name.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	s, ok := st.byName[name]
	return s, ok
}

// Has reports whether name is already present (used for the label
// versus constant namespace-collision check).
func (st *SymbolTable) Has(name string) bool {
	_, ok := st.byName[name]
	return ok
}

// RelocateDataSymbols adds delta to the address of every SymData
// symbol, turning the DC-relative addresses recorded during pass 1
// into absolute addresses in the unified code+data address space.
func (st *SymbolTable) RelocateDataSymbols(delta int) {
	for _, name := range st.order {
		s := st.byName[name]
		if s.Type == SymData {
			s.Address += delta
		}
	}
}

// All returns every symbol, in definition order.
func (st *SymbolTable) All() []*Symbol {
	out := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.byName[name])
	}
	return out
}

// Constant is one `.define`d name/value pair.
type Constant struct {
	Name  string
	Value int
}

// ConstantTable is a name-keyed set of Constants, unique by name and
// disjoint from the symbol table's namespace.
type ConstantTable struct {
	byName map[string]*Constant
}

// NewConstantTable creates an empty constant table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{byName: make(map[string]*Constant)}
}

// Define inserts a new constant, erroring on redefinition.
func (ct *ConstantTable) Define(name string, value int) error {
	if _, exists := ct.byName[name]; exists {
		return fmt.Errorf("constant %q already defined", name)
	}
	ct.byName[name] = &Constant{Name: name, Value: value}
	return nil
}

// Lookup finds a constant by name.
func (ct *ConstantTable) Lookup(name string) (*Constant, bool) {
	c, ok := ct.byName[name]
	return c, ok
}

// Has reports whether name is already present.
func (ct *ConstantTable) Has(name string) bool {
	_, ok := ct.byName[name]
	return ok
}
