package debugger

import (
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/vm"
)

// followEachWire walks the indirection chain starting at w, calling visit
// with each wire half traversed and the port it resolves to (nil once the
// chain bottoms out at an empty half). It never mutates the heap.
func followEachWire(w *heap.Wire, visit func(wire *heap.Wire, resolved heap.Port)) {
	for {
		target := w.LoadTarget()
		visit(w, target)
		wp, ok := target.(heap.WirePort)
		if !ok {
			return
		}
		w = wp.W
	}
}

func markAuxNotRoot(roots map[*heap.Wire]bool, p heap.Port) {
	bin, ok := p.(heap.BinaryPort)
	if !ok {
		return
	}
	a1, a2 := bin.Aux()
	roots[a1] = false
	roots[a2] = false
}

// FreeWires finds allocated wire halves that hold content but are reachable
// from nothing else in the graph: no indirection chain passes through them,
// no binary node's aux slot names them, and no pending interaction holds
// them. A non-empty result after Normalize usually means a rewrite rule
// forgot to link one of its wires (spec.md's find_free_wires diagnostic,
// adapted from the original debugger.py).
func FreeWires(v *vm.VM) []*heap.Wire {
	roots := map[*heap.Wire]bool{}

	for _, base := range v.Heap.AllWires() {
		for _, half := range [2]*heap.Wire{base, base.Other()} {
			if half.LoadTarget() == nil {
				continue
			}
			if _, seen := roots[half]; !seen {
				roots[half] = true
			}
			followEachWire(half, func(wire *heap.Wire, resolved heap.Port) {
				if wire != half {
					roots[wire] = false
				}
				if resolved != nil {
					markAuxNotRoot(roots, resolved)
				}
			})
		}
	}

	for _, pair := range v.ActivePairs() {
		markAuxNotRoot(roots, pair[0])
		markAuxNotRoot(roots, pair[1])
	}

	var free []*heap.Wire
	for w, isRoot := range roots {
		if isRoot {
			free = append(free, w)
		}
	}
	return free
}
