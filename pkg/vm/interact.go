package vm

import (
	"fmt"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
)

// Interact implements interact(a, b): the dispatch table of spec.md §4.3.
// Its precondition (guaranteed by the caller, Step) is that neither port is
// a WirePort and the pair is not a pure erase pair.
func (v *VM) Interact(a, b heap.Port) {
	rule, swap := classify(a, b)
	if swap {
		a, b = b, a
	}
	done := v.trackInteraction(a, b, rule)
	defer done()

	switch rule {
	case "copy":
		nilary, bin := asNilaryBinary(a, b)
		v.copyNilary(nilary, bin)
	case "expand":
		g, other := asGlobalOther(a, b)
		v.expand(g, other)
	case "annihilate":
		v.annihilate(a.(heap.BinaryPort), b.(heap.BinaryPort))
	case "commute":
		v.commute(a, b)
	case "branch":
		v.branch(a.(heap.BranchPort), b.(heap.ExtValPort))
	case "call":
		v.call(a.(extrinsics.ExtFnPort), b.(heap.ExtValPort))
	default:
		unreachable("interact(%s, %s)", a.PortTag(), b.PortTag())
	}
}

// classify names the rule for (a, b) without executing it, per the
// first-match table of spec.md §4.3. swap reports whether a and b should be
// exchanged before dispatch, so every "case" handler below can assume a
// fixed argument order.
func classify(a, b heap.Port) (rule string, swap bool) {
	aTag, bTag := a.PortTag(), b.PortTag()

	if aTag == heap.TagGlobal && bTag == heap.TagComb {
		if g := a.(global.Port).Ref; !g.ContainsLabel(b.(heap.CombPort).Label) {
			return "copy", false
		}
		return "expand", false
	}
	if bTag == heap.TagGlobal && aTag == heap.TagComb {
		if g := b.(global.Port).Ref; !g.ContainsLabel(a.(heap.CombPort).Label) {
			return "copy", true
		}
		return "expand", true
	}
	if aTag == heap.TagGlobal {
		return "expand", false
	}
	if bTag == heap.TagGlobal {
		return "expand", true
	}

	if isBinary(a) && isBinary(b) {
		if aTag == bTag && a.(heap.BinaryPort).PortLabel() == b.(heap.BinaryPort).PortLabel() {
			return "annihilate", false
		}
		return "commute", false
	}

	if aTag == heap.TagBranch && bTag == heap.TagExtVal {
		return "branch", false
	}
	if bTag == heap.TagBranch && aTag == heap.TagExtVal {
		return "branch", true
	}
	if aTag == heap.TagExtFn && bTag == heap.TagExtVal {
		return "call", false
	}
	if bTag == heap.TagExtFn && aTag == heap.TagExtVal {
		return "call", true
	}

	if isBinary(a) && !isBinary(b) {
		return "copy", true
	}
	if isBinary(b) && !isBinary(a) {
		return "copy", false
	}

	return "unreachable", false
}

// asNilaryBinary recovers the (nilary, binary) pair for a "copy" rule: the
// classify swap flag already put the binary port in b.
func asNilaryBinary(a, b heap.Port) (heap.Port, heap.BinaryPort) {
	return a, b.(heap.BinaryPort)
}

// asGlobalOther recovers the (global, other) pair for an "expand" rule.
func asGlobalOther(a, b heap.Port) (*global.Global, heap.Port) {
	return a.(global.Port).Ref, b
}

// forkNilary duplicates a nilary port for copy's two branches: ExtVal forks
// through its own contract, Erase and Global are plain value copies with no
// external resource to track (spec.md §3.2, §4.4).
func forkNilary(p heap.Port) heap.Port {
	switch pp := p.(type) {
	case heap.ErasePort:
		return pp
	case global.Port:
		return pp
	case heap.ExtValPort:
		return pp.ForkValue()
	default:
		unreachable("forkNilary(%s)", p.PortTag())
		return nil
	}
}

// copyNilary implements "Copy (nilary × binary)" (spec.md §4.3.3): link
// bin's first aux to a fork of nilary, its second aux to nilary itself.
func (v *VM) copyNilary(nilary heap.Port, bin heap.BinaryPort) {
	x, y := bin.Aux()
	v.Link(heap.WirePort{W: x}, forkNilary(nilary))
	v.Link(heap.WirePort{W: y}, nilary)
}

// expand implements "Expand" (spec.md §4.3.4): inline g's instruction
// stream, entering at other.
func (v *VM) expand(g *global.Global, other heap.Port) {
	v.Execute(g.Instructions, other)
}

// annihilate implements spec.md §4.3.1: link aux wires pairwise, both nodes
// vanish.
func (v *VM) annihilate(a, b heap.BinaryPort) {
	a1, a2 := a.Aux()
	b1, b2 := b.Aux()
	v.Link(heap.WirePort{W: a1}, heap.WirePort{W: b1})
	v.Link(heap.WirePort{W: a2}, heap.WirePort{W: b2})
}

// cloneWithPrincipal returns a copy of p with a different principal wire,
// used by commute's _commute_copy (spec.md §4.3.2).
func cloneWithPrincipal(p heap.Port, w *heap.Wire) heap.Port {
	switch pp := p.(type) {
	case heap.CombPort:
		return pp.WithPrincipal(w)
	case heap.BranchPort:
		return pp.WithPrincipal(w)
	case extrinsics.ExtFnPort:
		return pp.WithPrincipal(w)
	default:
		unreachable("cloneWithPrincipal(%s)", p.PortTag())
		return nil
	}
}

// commuteCopy is _commute_copy(n): allocate a fresh wire and return a port
// identical to n but with that wire as its principal, plus the wire's two
// halves.
func (v *VM) commuteCopy(n heap.Port) (port heap.Port, w, wOther *heap.Wire) {
	w = v.mustAlloc()
	return cloneWithPrincipal(n, w), w, w.Other()
}

// commute implements spec.md §4.3.2: four copies interconnected in a 2x2
// grid.
func (v *VM) commute(a, b heap.Port) {
	aAux1, aAux2 := a.(heap.BinaryPort).Aux()
	bAux1, bAux2 := b.(heap.BinaryPort).Aux()

	a1, a1w1, a1w2 := v.commuteCopy(a)
	a2, a2w1, a2w2 := v.commuteCopy(a)
	b1, b1w1, b1w2 := v.commuteCopy(b)
	b2, b2w1, b2w2 := v.commuteCopy(b)

	v.Link(heap.WirePort{W: b1w1}, heap.WirePort{W: a1w1})
	v.Link(heap.WirePort{W: b1w2}, heap.WirePort{W: a2w1})
	v.Link(heap.WirePort{W: b2w1}, heap.WirePort{W: a1w2})
	v.Link(heap.WirePort{W: b2w2}, heap.WirePort{W: a2w2})

	v.Link(heap.WirePort{W: aAux1}, b1)
	v.Link(heap.WirePort{W: aAux2}, b2)
	v.Link(heap.WirePort{W: bAux1}, a1)
	v.Link(heap.WirePort{W: bAux2}, a2)
}

// call implements "Call (ExtFn x ExtVal)" (spec.md §4.3.5).
func (v *VM) call(fn extrinsics.ExtFnPort, val heap.ExtValPort) {
	rhs, out := fn.Aux()
	if existing, ok := rhs.LoadTarget().(heap.ExtValPort); ok {
		v.Heap.FreeWire(rhs)
		impl, ok := v.Extrinsics.Fns[fn.Unwrap()]
		if !ok {
			panic(fmt.Sprintf("ivm: missing extrinsic %q", fn.Unwrap()))
		}
		var result heap.ExtValPort
		if fn.Swapped() {
			result = impl(existing, val)
		} else {
			result = impl(val, existing)
		}
		v.Link(heap.WirePort{W: out}, result)
		return
	}

	w := v.mustAlloc()
	swapped := fn.Swap().WithPrincipal(w)
	aux1, aux2 := swapped.Aux()
	v.Link(heap.WirePort{W: rhs}, swapped)
	v.Link(heap.WirePort{W: aux1}, val)
	v.Link(heap.WirePort{W: aux2}, heap.WirePort{W: out})
}

// isZeroValue is the truthiness test branch uses: only primitive n32/f32
// values have a defined zero; any other ExtVal variant is treated as
// non-zero (truthy).
func isZeroValue(p heap.ExtValPort) bool {
	if prim, ok := p.(extrinsics.PrimitiveExtValPort); ok {
		if prim.IsF32 {
			return prim.F32Val == 0
		}
		return prim.N32Val == 0
	}
	return false
}

// branch implements "Branch (Branch x ExtVal)" (spec.md §4.3.6).
func (v *VM) branch(br heap.BranchPort, val heap.ExtValPort) {
	b1, b2 := br.Aux()
	w := v.mustAlloc()
	newBranch := br.WithPrincipal(w)
	z, p := w, w.Other()

	v.Link(heap.WirePort{W: b1}, newBranch)

	var y, n *heap.Wire
	if isZeroValue(val) {
		y, n = z, p
	} else {
		y, n = p, z
	}
	v.Link(heap.WirePort{W: n}, heap.Erase)
	v.Link(heap.WirePort{W: b2}, heap.WirePort{W: y})
}
