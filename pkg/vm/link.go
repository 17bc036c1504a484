package vm

import "github.com/vic/ivm/pkg/heap"

// isBinary reports whether p is one of the three binary variants (spec.md
// §3.2): Comb, ExtFn or Branch.
func isBinary(p heap.Port) bool {
	switch p.PortTag() {
	case heap.TagComb, heap.TagExtFn, heap.TagBranch:
		return true
	default:
		return false
	}
}

// isLabeledBinary reports whether p is a Comb or ExtFn — the two binary
// variants that carry a label and can annihilate on a label match (Branch
// never does; it has no label).
func isLabeledBinary(p heap.Port) bool {
	switch p.PortTag() {
	case heap.TagComb, heap.TagExtFn:
		return true
	default:
		return false
	}
}

func isEraseOrExtVal(p heap.Port) bool {
	switch p.PortTag() {
	case heap.TagErase, heap.TagExtVal:
		return true
	default:
		return false
	}
}

func dropIfExtVal(p heap.Port) {
	if ev, ok := p.(heap.ExtValPort); ok {
		ev.DropValue()
	}
}

// follow chases Wire indirections until it reaches a non-Wire port or an
// empty wire-half, optionally freeing each traversed half (spec.md §4.2).
func (v *VM) follow(p heap.Port, destructive bool) heap.Port {
	for {
		wp, ok := p.(heap.WirePort)
		if !ok {
			return p
		}
		t := wp.W.LoadTarget()
		if t == nil {
			return p
		}
		if destructive {
			v.Heap.FreeWire(wp.W)
		}
		p = t
	}
}

// linkWire implements link_wire(a, b): b is resolved past any indirections
// first, then raced against whatever concurrently landed in a's target
// (spec.md §4.2). Under this VM's single-threaded cooperative scheduling the
// "race" is really just two rewrites of the same pair meeting in sequence.
func (v *VM) linkWire(a *heap.Wire, b heap.Port) {
	b = v.follow(b, true)
	if v.Hooks.OnLinkWire != nil {
		v.Hooks.OnLinkWire(a, b)
	}
	old := a.SwapTarget(b)
	if old != nil {
		v.Heap.FreeWire(a)
		v.Link(old, b)
	}
}

// Link implements link(a, b): the first-match decision table of spec.md
// §4.2, routing a pair either through link_wire or onto one of the two
// active queues.
func (v *VM) Link(a, b heap.Port) {
	if v.Hooks.OnLink != nil {
		v.Hooks.OnLink(a, b)
	}
	if wp, ok := a.(heap.WirePort); ok {
		v.linkWire(wp.W, b)
		return
	}
	if wp, ok := b.(heap.WirePort); ok {
		v.linkWire(wp.W, a)
		return
	}

	aTag, bTag := a.PortTag(), b.PortTag()
	eraseSet := func(t heap.Tag) bool { return t == heap.TagGlobal || t == heap.TagErase }
	extValSet := func(t heap.Tag) bool { return t == heap.TagExtVal || t == heap.TagErase }
	if (eraseSet(aTag) && eraseSet(bTag)) || (extValSet(aTag) && extValSet(bTag)) {
		dropIfExtVal(a)
		dropIfExtVal(b)
		return
	}

	if isLabeledBinary(a) && isLabeledBinary(b) {
		ba, bb := a.(heap.BinaryPort), b.(heap.BinaryPort)
		if aTag == bTag && ba.PortLabel() == bb.PortLabel() {
			v.activeFast = append(v.activeFast, pair{a, b})
			return
		}
	}

	if aTag == heap.TagGlobal || bTag == heap.TagGlobal || (isBinary(a) && isBinary(b)) {
		v.activeSlow = append(v.activeSlow, pair{a, b})
		return
	}

	if isEraseOrExtVal(a) || isEraseOrExtVal(b) {
		v.activeFast = append(v.activeFast, pair{a, b})
		return
	}

	unreachable("link(%s, %s)", aTag, bTag)
}
