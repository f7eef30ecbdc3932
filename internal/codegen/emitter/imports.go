package emitter

import "sort"

// ImportMap accumulates the external symbols a generated document needs,
// keyed by whatever the target calls a namespace (module, package, header).
// Insertion is idempotent. The map is owned by a single backend instance for
// a single run; it is never shared or global.
type ImportMap struct {
	symbols map[string]map[string]struct{}
}

// NewImportMap creates an empty import accumulator.
func NewImportMap() *ImportMap {
	return &ImportMap{symbols: make(map[string]map[string]struct{})}
}

// Add records that symbol must be imported from namespace. Adding the same
// pair twice is a no-op.
func (m *ImportMap) Add(namespace, symbol string) {
	set, ok := m.symbols[namespace]
	if !ok {
		set = make(map[string]struct{})
		m.symbols[namespace] = set
	}
	set[symbol] = struct{}{}
}

// Namespaces returns every namespace with at least one symbol, sorted
// lexicographically. Sorting here and in Symbols makes the flushed block
// byte-identical regardless of the order formatting touched the entries.
func (m *ImportMap) Namespaces() []string {
	namespaces := make([]string, 0, len(m.symbols))
	for ns := range m.symbols {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	return namespaces
}

// Symbols returns the symbols required from a namespace, sorted
// lexicographically.
func (m *ImportMap) Symbols(namespace string) []string {
	set := m.symbols[namespace]
	symbols := make([]string, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of namespaces with at least one symbol.
func (m *ImportMap) Len() int {
	return len(m.symbols)
}
