// Package reader implements readback (spec.md §4.6): walking a live graph
// from any port to reconstruct a tree.Tree snapshot, assigning fresh
// variable names to wires encountered more than once.
package reader

import (
	"fmt"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/tree"
)

// Reader accumulates the wire→name assignment across one readback walk
// (spec.md §4.6, §9 "Reader variable naming"). It holds no graph state of
// its own, so a fresh Reader per readback gives each call independent
// variable numbering.
type Reader struct {
	names map[*heap.Wire]string
	next  int
}

// New returns a Reader with no names assigned yet.
func New() *Reader { return &Reader{names: map[*heap.Wire]string{}} }

func (r *Reader) nameFor(w *heap.Wire) string {
	key := w.Left()
	if n, ok := r.names[key]; ok {
		return n
	}
	n := fmt.Sprintf("n%d", r.next)
	r.next++
	r.names[key] = n
	return n
}

// follow chases Wire indirections non-destructively, stopping at the first
// non-Wire port or an empty wire-half (spec.md §4.6 "shallow=false").
func (r *Reader) follow(p heap.Port) heap.Port {
	for {
		wp, ok := p.(heap.WirePort)
		if !ok {
			return p
		}
		t := wp.W.LoadTarget()
		if t == nil {
			return p
		}
		p = t
	}
}

// Read reconstructs a Tree rooted at p.
func (r *Reader) Read(p heap.Port) tree.Tree {
	p = r.follow(p)
	switch port := p.(type) {
	case heap.ErasePort:
		return tree.Erase{Tr: port.Tr}
	case heap.WirePort:
		return tree.VarNode{Name: r.nameFor(port.W)}
	case global.Port:
		return tree.GlobalNode{Name: port.Ref.Name, Tr: port.Tr}
	case extrinsics.PrimitiveExtValPort:
		if port.IsF32 {
			return tree.F32Node{Value: port.F32Val, Tr: port.Tr}
		}
		return tree.N32Node{Value: port.N32Val, Tr: port.Tr}
	case CachedExtValPort:
		return port.Serialized
	case heap.CombPort:
		a1, a2 := port.Aux()
		return tree.CombNode{
			Label: port.Label,
			Left:  r.Read(heap.WirePort{W: a1}),
			Right: r.Read(heap.WirePort{W: a2}),
			Tr:    port.Tr,
		}
	case extrinsics.ExtFnPort:
		a1, a2 := port.Aux()
		return tree.ExtFnNode{
			Label: port.Unwrap(),
			Left:  r.Read(heap.WirePort{W: a1}),
			Right: r.Read(heap.WirePort{W: a2}),
			Tr:    port.Tr,
		}
	case heap.BranchPort:
		return r.readBranch(port)
	default:
		panic(fmt.Sprintf("reader: unreadable port %s", p.PortTag()))
	}
}

// readBranch flattens two nested binary Branch nodes back into a ternary
// BranchNode when the shape matches how the serializer compiled one; the
// CombNode("?^", ...) fallback is kept for a Branch whose first aux does
// not resolve to another Branch (spec.md §4.6, §9).
func (r *Reader) readBranch(br heap.BranchPort) tree.Tree {
	b1, b2 := br.Aux()
	first := r.follow(heap.WirePort{W: b1})
	if inner, ok := first.(heap.BranchPort); ok {
		i1, i2 := inner.Aux()
		return tree.BranchNode{
			N0: r.Read(heap.WirePort{W: i1}),
			N1: r.Read(heap.WirePort{W: i2}),
			N2: r.Read(heap.WirePort{W: b2}),
			Tr: br.Tr,
		}
	}
	return tree.CombNode{
		Label: "?^",
		Left:  r.Read(heap.WirePort{W: b1}),
		Right: r.Read(heap.WirePort{W: b2}),
		Tr:    br.Tr,
	}
}
