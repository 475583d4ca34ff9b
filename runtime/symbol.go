package runtime

import "strconv"

// Symbol is an interned property or identifier name. Two symbols are equal
// exactly when their text is equal, so comparing symbols never looks at the
// text.
type Symbol uint32

// SymbolTable owns the canonical text of every Symbol created by a Context.
type SymbolTable struct {
	index map[string]Symbol
	texts []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: make(map[string]Symbol)}
}

// Intern returns the Symbol for s, creating it on first use.
func (t *SymbolTable) Intern(s string) Symbol {
	if sym, ok := t.index[s]; ok {
		return sym
	}
	sym := Symbol(len(t.texts))
	t.texts = append(t.texts, s)
	t.index[s] = sym
	return sym
}

// Lookup reports the Symbol for s without creating one.
func (t *SymbolTable) Lookup(s string) (Symbol, bool) {
	sym, ok := t.index[s]
	return sym, ok
}

// Text returns the canonical text of sym.
func (t *SymbolTable) Text(sym Symbol) string {
	if int(sym) >= len(t.texts) {
		return ""
	}
	return t.texts[sym]
}

func (t *SymbolTable) Len() int {
	return len(t.texts)
}

// arrayIndex reports whether text is a canonical array index
// (ToString(ToUint32(P)) == P and ToUint32(P) != 2^32-1).
func arrayIndex(text string) (uint32, bool) {
	if text == "" || len(text) > 10 {
		return 0, false
	}
	if len(text) > 1 && text[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil || n == 0xFFFFFFFF {
		return 0, false
	}
	return uint32(n), true
}
