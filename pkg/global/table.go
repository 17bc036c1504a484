package global

// Table is an insertion-ordered registry of compiled Globals, the runtime
// counterpart of tree.Nets (spec.md §4.7 `insert_nets` operates against
// one of these).
type Table struct {
	order []string
	byKey map[string]*Global
}

// NewTable returns an empty registry.
func NewTable() *Table { return &Table{byKey: map[string]*Global{}} }

// Ensure returns the Global bound to name, creating an empty one on first
// reference (spec.md §4.7 step 1: "allocate empty Global(name) for each
// entry" — also covers a GlobalNode referencing a name not yet walked).
func (t *Table) Ensure(name string) *Global {
	if g, ok := t.byKey[name]; ok {
		return g
	}
	g := NewGlobal(name)
	t.byKey[name] = g
	t.order = append(t.order, name)
	return g
}

// Get returns the Global bound to name, if any, without creating it.
func (t *Table) Get(name string) (*Global, bool) {
	g, ok := t.byKey[name]
	return g, ok
}

// Names returns the bound names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
