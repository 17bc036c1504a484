// Package global holds the compiled form of a named net — a Global with its
// instruction stream and transitive comb-label set (spec.md §3.4-§3.6) — and
// the ExecutionContext interface that lets instructions drive a VM without
// pkg/global importing pkg/vm (which itself must import pkg/global to expand
// globals). This mirrors the original's split between globals.py and vm.py.
package global

import "github.com/vic/ivm/pkg/heap"

// Global is a named net compiled to an ordered instruction stream, expanded
// on demand when an `expand` interaction reaches it (spec.md §3.4).
type Global struct {
	Name         string
	Instructions *Instructions
	labels       map[string]struct{}
}

// NewGlobal returns an empty Global ready to be filled in by the serializer.
func NewGlobal(name string) *Global {
	return &Global{
		Name:         name,
		Instructions: NewInstructions(),
		labels:       map[string]struct{}{},
	}
}

// AddLabel records label as one the global directly contains.
func (g *Global) AddLabel(label string) { g.labels[label] = struct{}{} }

// ExtendLabels merges another global's label set into g's (used when g
// mentions other via a Nilary Global instruction).
func (g *Global) ExtendLabels(other *Global) {
	for l := range other.labels {
		g.labels[l] = struct{}{}
	}
}

// ContainsLabel reports whether label is in g's transitive label set
// (spec.md §4.3.8): copying a Global across a Comb is only safe to
// short-circuit when the comb's label is absent from it.
func (g *Global) ContainsLabel(label string) bool {
	_, ok := g.labels[label]
	return ok
}

// Labels returns a defensive copy of the label set, for tests/debugging.
func (g *Global) Labels() map[string]struct{} {
	out := make(map[string]struct{}, len(g.labels))
	for l := range g.labels {
		out[l] = struct{}{}
	}
	return out
}

// Port is the nilary Global variant: a live reference to a compiled Global,
// expanded in place when it meets any other principal port (spec.md §3.2).
type Port struct {
	Ref *Global
	Tr  *heap.Trace
}

func (Port) PortTag() heap.Tag { return heap.TagGlobal }

// ExecutionContext is everything an Instruction needs from the VM driving
// it: writing/reading registers, allocating wires, and building the binary
// port variants that need packages global cannot import without a cycle
// (extrinsics' ExtFn, heap's Comb/Branch).
type ExecutionContext interface {
	// LinkRegister writes p into register reg: if the register is empty, p
	// is stored; otherwise the previous occupant is linked against p and
	// the register is cleared (spec.md §4.3.7 step 3).
	LinkRegister(reg int, p heap.Port)
	// PeekRegister returns whatever currently occupies reg without
	// consuming it.
	PeekRegister(reg int) heap.Port
	// AllocWire allocates a fresh wire for a Binary instruction's principal.
	AllocWire() *heap.Wire
	// MakeBinaryPort builds the live port for a Binary instruction: a Comb,
	// ExtFn or Branch port whose principal is w.
	MakeBinaryPort(tag heap.Tag, label string, w *heap.Wire) heap.Port
}
