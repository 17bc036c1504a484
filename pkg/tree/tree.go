// Package tree holds the parser-facing structural form of a net: a root
// Tree and a set of Tree=Tree pairs (spec.md §3.3).
package tree

import (
	"fmt"
	"strings"

	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/values"
)

// Tree is any node of the static syntactic form of a net.
type Tree interface {
	fmt.Stringer
	// Children returns this node's direct children, in order; nil for leaves.
	Children() []Tree
	// Head is the node's label for display purposes (e.g. a Comb's label).
	Head() string
	// Trace returns the node's source position, or nil if synthesized.
	Trace() *heap.Trace
}

// Erase is the nilary "don't care" leaf.
type Erase struct{ Tr *heap.Trace }

func (e Erase) String() string      { return "_" }
func (Erase) Children() []Tree      { return nil }
func (Erase) Head() string          { return "_" }
func (e Erase) Trace() *heap.Trace  { return e.Tr }

// N32Node is a literal 32-bit natural.
type N32Node struct {
	Value values.N32
	Tr    *heap.Trace
}

func (n N32Node) String() string     { return n.Value.String() }
func (N32Node) Children() []Tree     { return nil }
func (n N32Node) Head() string       { return n.Value.String() }
func (n N32Node) Trace() *heap.Trace { return n.Tr }

// F32Node is a literal 32-bit float.
type F32Node struct {
	Value values.F32
	Tr    *heap.Trace
}

func (n F32Node) String() string     { return n.Value.String() }
func (F32Node) Children() []Tree     { return nil }
func (n F32Node) Head() string       { return n.Value.String() }
func (n F32Node) Trace() *heap.Trace { return n.Tr }

// VarNode references a net-local variable by name.
type VarNode struct {
	Name string
	Tr   *heap.Trace
}

func (v VarNode) String() string     { return v.Name }
func (VarNode) Children() []Tree     { return nil }
func (v VarNode) Head() string       { return v.Name }
func (v VarNode) Trace() *heap.Trace { return v.Tr }

// GlobalNode references a named global net, e.g. "::std::id".
type GlobalNode struct {
	Name string
	Tr   *heap.Trace
}

func (g GlobalNode) String() string     { return g.Name }
func (GlobalNode) Children() []Tree     { return nil }
func (g GlobalNode) Head() string       { return g.Name }
func (g GlobalNode) Trace() *heap.Trace { return g.Tr }

// CombNode is a labelled binary combinator, e.g. `dup(x y)`.
type CombNode struct {
	Label       string
	Left, Right Tree
	Tr          *heap.Trace
}

func (c CombNode) String() string     { return fmt.Sprintf("%s(%s %s)", c.Label, c.Left, c.Right) }
func (c CombNode) Children() []Tree   { return []Tree{c.Left, c.Right} }
func (c CombNode) Head() string       { return c.Label }
func (c CombNode) Trace() *heap.Trace { return c.Tr }

// ExtFnNode is a host-callback invocation site, e.g. `@n32_add(a b)`.
type ExtFnNode struct {
	Label       string
	Left, Right Tree
	Tr          *heap.Trace
}

func (e ExtFnNode) String() string     { return fmt.Sprintf("@%s(%s %s)", e.Label, e.Left, e.Right) }
func (e ExtFnNode) Children() []Tree   { return []Tree{e.Left, e.Right} }
func (e ExtFnNode) Head() string       { return "@" + e.Label }
func (e ExtFnNode) Trace() *heap.Trace { return e.Tr }

// BranchNode is the ternary `?(n0 n1 n2)` conditional; internally lowered to
// two nested binary Branch nodes during serialization (spec.md §3.3).
type BranchNode struct {
	N0, N1, N2 Tree
	Tr         *heap.Trace
}

func (b BranchNode) String() string     { return fmt.Sprintf("?(%s %s %s)", b.N0, b.N1, b.N2) }
func (b BranchNode) Children() []Tree   { return []Tree{b.N0, b.N1, b.N2} }
func (BranchNode) Head() string         { return "?" }
func (b BranchNode) Trace() *heap.Trace { return b.Tr }

// BlackBox is a syntactic wrapper, `#[tree]`, that survives parsing and
// lowers to an inert instruction rather than a live node (spec.md §3.3).
type BlackBox struct {
	Inner Tree
	Tr    *heap.Trace
}

func (b BlackBox) String() string     { return b.Inner.String() }
func (b BlackBox) Children() []Tree   { return []Tree{b.Inner} }
func (b BlackBox) Head() string       { return b.Inner.Head() }
func (b BlackBox) Trace() *heap.Trace { return b.Tr }

// Unbox strips BlackBox wrappers down to the first non-BlackBox tree.
func Unbox(t Tree) Tree {
	for {
		bb, ok := t.(BlackBox)
		if !ok {
			return t
		}
		t = bb.Inner
	}
}

// Pair is one `tree = tree` equation inside a net.
type Pair struct{ A, B Tree }

// Net is a root tree plus its defining pairs.
type Net struct {
	Root  Tree
	Pairs []Pair
}

func (n Net) String() string {
	if len(n.Pairs) == 0 {
		return fmt.Sprintf("{ %s }", n.Root)
	}
	var b strings.Builder
	b.WriteString("{\n  ")
	b.WriteString(n.Root.String())
	for _, p := range n.Pairs {
		b.WriteString("\n  ")
		b.WriteString(p.A.String())
		b.WriteString(" = ")
		b.WriteString(p.B.String())
	}
	b.WriteString("\n}")
	return b.String()
}

// Walk visits every tree reachable from the net's root and pairs, depth
// first, mirroring the original's Net.__iter__.
func (n Net) Walk(visit func(Tree)) {
	var walk func(Tree)
	walk = func(t Tree) {
		visit(t)
		for _, c := range t.Children() {
			walk(c)
		}
	}
	walk(n.Root)
	for _, p := range n.Pairs {
		walk(p.A)
		walk(p.B)
	}
}

// Nets is an insertion-ordered map of global name to Net, as produced by a
// parser (spec.md §3.3, §6.1).
type Nets struct {
	order []string
	byKey map[string]Net
}

// NewNets returns an empty, insertion-ordered Nets.
func NewNets() *Nets { return &Nets{byKey: map[string]Net{}} }

// Set inserts or replaces the net bound to name, preserving insertion order
// for new keys.
func (n *Nets) Set(name string, net Net) {
	if _, ok := n.byKey[name]; !ok {
		n.order = append(n.order, name)
	}
	n.byKey[name] = net
}

// Get returns the net bound to name, if any.
func (n *Nets) Get(name string) (Net, bool) {
	net, ok := n.byKey[name]
	return net, ok
}

// Names returns the bound names in insertion order.
func (n *Nets) Names() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Len returns the number of bound globals.
func (n *Nets) Len() int { return len(n.order) }
