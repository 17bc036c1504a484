package vm

import (
	"testing"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
)

// Link's queue routing (spec.md §4.2) is independent of wire mechanics for
// any pair that isn't already a WirePort, so these check dispatch without
// ever stepping the VM.

func TestLinkLabeledMatchGoesFast(t *testing.T) {
	v := New()
	a := heap.CombPort{Label: "pair"}
	b := heap.CombPort{Label: "pair"}
	v.Link(a, b)
	if v.PendingFast() != 1 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want fast=1 slow=0", v.PendingFast(), v.PendingSlow())
	}
}

func TestLinkLabeledMismatchGoesSlow(t *testing.T) {
	v := New()
	a := heap.CombPort{Label: "pair"}
	b := heap.CombPort{Label: "dup"}
	v.Link(a, b)
	if v.PendingSlow() != 1 || v.PendingFast() != 0 {
		t.Fatalf("fast=%d slow=%d, want fast=0 slow=1", v.PendingFast(), v.PendingSlow())
	}
}

func TestLinkGlobalAlwaysGoesSlow(t *testing.T) {
	v := New()
	g := global.NewGlobal("::main")
	v.Link(global.Port{Ref: g}, extrinsics.N32Port(0))
	if v.PendingSlow() != 1 || v.PendingFast() != 0 {
		t.Fatalf("fast=%d slow=%d, want fast=0 slow=1", v.PendingFast(), v.PendingSlow())
	}
}

// Two Erase ports meeting is a pure no-op: neither queue grows.
func TestLinkEraseErasePairIsNoop(t *testing.T) {
	v := New()
	v.Link(heap.Erase, heap.Erase)
	if v.PendingFast() != 0 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want both 0", v.PendingFast(), v.PendingSlow())
	}
}

// Two primitive ExtVals meeting is also a pure no-op (neither holds an
// external resource to reconcile).
func TestLinkExtValExtValPairIsNoop(t *testing.T) {
	v := New()
	v.Link(extrinsics.N32Port(1), extrinsics.N32Port(2))
	if v.PendingFast() != 0 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want both 0", v.PendingFast(), v.PendingSlow())
	}
}

// An Erase meeting an ExtVal also short-circuits without queuing (Erase is
// in both the erase-set and the ext-val-set).
func TestLinkEraseExtValPairIsNoop(t *testing.T) {
	v := New()
	v.Link(heap.Erase, extrinsics.N32Port(7))
	if v.PendingFast() != 0 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want both 0", v.PendingFast(), v.PendingSlow())
	}
}

// An Erase meeting a binary node has no short-circuit: it's a real copy
// interaction and goes on the fast queue.
func TestLinkEraseCombGoesFast(t *testing.T) {
	v := New()
	comb := heap.CombPort{Label: "dup"}
	v.Link(heap.Erase, comb)
	if v.PendingFast() != 1 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want fast=1 slow=0", v.PendingFast(), v.PendingSlow())
	}
}

// A Branch meeting an ExtVal is a real interaction (selection), not a
// short-circuit: fast queue.
func TestLinkBranchExtValGoesFast(t *testing.T) {
	v := New()
	v.Link(heap.BranchPort{}, extrinsics.N32Port(0))
	if v.PendingFast() != 1 || v.PendingSlow() != 0 {
		t.Fatalf("fast=%d slow=%d, want fast=1 slow=0", v.PendingFast(), v.PendingSlow())
	}
}
