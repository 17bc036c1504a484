package heap

import "testing"

// A freshly allocated node's two halves are always empty.
func TestAllocNodeStartsEmpty(t *testing.T) {
	h := NewHeap()
	w, err := h.AllocNode()
	if err != nil {
		t.Fatalf("AllocNode: %v", err)
	}
	if w.LoadTarget() != nil || w.Other().LoadTarget() != nil {
		t.Fatal("fresh node has a non-nil target")
	}
	if w.Other().Other() != w {
		t.Fatal("Other() is not its own inverse")
	}
}

// Once both halves of a node are free, AllocNode recycles it instead of
// growing the arena.
func TestFreeWireRecyclesNode(t *testing.T) {
	h := NewHeap()
	w, err := h.AllocNode()
	if err != nil {
		t.Fatalf("AllocNode: %v", err)
	}
	canon := w.Left()

	h.FreeWire(w)
	h.FreeWire(w.Other())

	w2, err := h.AllocNode()
	if err != nil {
		t.Fatalf("AllocNode (reuse): %v", err)
	}
	if w2.Left() != canon {
		t.Fatal("AllocNode did not recycle the freed node")
	}
}

// Freeing only one half of a pair must not recycle the node: the sibling is
// still live.
func TestFreeWireSingleHalfDoesNotRecycle(t *testing.T) {
	h := NewHeap()
	w, _ := h.AllocNode()
	w.Other().SwapTarget(Erase)

	h.FreeWire(w)

	w2, _ := h.AllocNode()
	if w2.Left() == w.Left() {
		t.Fatal("node was recycled while its sibling half was still occupied")
	}
}

// NewWire hands back a single live wire (both return values the same half):
// the other side was allocated only to be immediately freed back.
func TestNewWireIsOneWire(t *testing.T) {
	h := NewHeap()
	a, b, err := h.NewWire()
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	if a != b {
		t.Fatal("NewWire did not return the same half twice")
	}
	if a.Other().LoadTarget() != nil {
		t.Fatal("NewWire's spare half should be empty, ready to be linked")
	}
}

// NewWires hands back both halves of a single node, each duplicated once for
// two independent holders.
func TestNewWiresSharesOneNode(t *testing.T) {
	h := NewHeap()
	a, b, c, d, err := h.NewWires()
	if err != nil {
		t.Fatalf("NewWires: %v", err)
	}
	if a != b || c != d {
		t.Fatal("NewWires must duplicate each handle, not allocate distinct wires")
	}
	if a == c {
		t.Fatal("NewWires' two sides must be distinct halves of the pair")
	}
	if a.Other() != c {
		t.Fatal("NewWires' two sides must be siblings")
	}
}

// AllocNode refuses to exceed a heap's configured budget.
func TestAllocNodeOutOfMemory(t *testing.T) {
	h := NewHeapWithLimit(1)
	if _, err := h.AllocNode(); err != nil {
		t.Fatalf("first AllocNode should succeed: %v", err)
	}
	_, err := h.AllocNode()
	if err == nil {
		t.Fatal("expected ErrOutOfMemory once the budget is exhausted")
	}
	var oom *ErrOutOfMemory
	if _, ok := err.(*ErrOutOfMemory); !ok {
		t.Fatalf("expected *ErrOutOfMemory, got %T (%v)", err, err)
	}
	_ = oom
}

// Recycled nodes don't count against the budget a second time.
func TestAllocNodeRecycleDoesNotCountAgainstLimit(t *testing.T) {
	h := NewHeapWithLimit(1)
	w, err := h.AllocNode()
	if err != nil {
		t.Fatalf("AllocNode: %v", err)
	}
	h.FreeWire(w)
	h.FreeWire(w.Other())

	if _, err := h.AllocNode(); err != nil {
		t.Fatalf("AllocNode after recycle should succeed: %v", err)
	}
}
