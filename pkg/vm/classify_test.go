package vm

import (
	"testing"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
)

// classify is pure (it never touches a wire), so these exercise the
// dispatch table of spec.md §4.3 directly, independent of interaction
// mechanics.

func TestClassifyAnnihilateOnMatchingLabel(t *testing.T) {
	a := heap.CombPort{Label: "pair"}
	b := heap.CombPort{Label: "pair"}
	rule, swap := classify(a, b)
	if rule != "annihilate" || swap {
		t.Fatalf("got (%s, %v), want (annihilate, false)", rule, swap)
	}
}

func TestClassifyCommuteOnMismatchedLabel(t *testing.T) {
	a := heap.CombPort{Label: "pair"}
	b := heap.CombPort{Label: "dup"}
	rule, swap := classify(a, b)
	if rule != "commute" || swap {
		t.Fatalf("got (%s, %v), want (commute, false)", rule, swap)
	}
}

// A Comb and an ExtFn are both binary but different tags: always commute,
// never annihilate, regardless of label.
func TestClassifyCommuteAcrossBinaryKinds(t *testing.T) {
	a := heap.CombPort{Label: "fn"}
	b := extrinsics.ExtFnPort{Label: "fn"}
	rule, _ := classify(a, b)
	if rule != "commute" {
		t.Fatalf("got %s, want commute", rule)
	}
}

func TestClassifyExpandWhenLabelPresent(t *testing.T) {
	g := global.NewGlobal("::fib")
	g.AddLabel("fn")
	gp := global.Port{Ref: g}
	comb := heap.CombPort{Label: "fn"}

	rule, swap := classify(gp, comb)
	if rule != "expand" || swap {
		t.Fatalf("got (%s, %v), want (expand, false)", rule, swap)
	}

	rule, swap = classify(comb, gp)
	if rule != "expand" || !swap {
		t.Fatalf("swapped order: got (%s, %v), want (expand, true)", rule, swap)
	}
}

func TestClassifyCopyWhenLabelAbsent(t *testing.T) {
	g := global.NewGlobal("::fib")
	gp := global.Port{Ref: g}
	comb := heap.CombPort{Label: "fn"}

	rule, swap := classify(gp, comb)
	if rule != "copy" || swap {
		t.Fatalf("got (%s, %v), want (copy, false)", rule, swap)
	}
}

// A Global meeting anything other than a Comb always expands: there is no
// label to check against.
func TestClassifyGlobalAlwaysExpandsAgainstNonComb(t *testing.T) {
	g := global.NewGlobal("::main")
	gp := global.Port{Ref: g}

	rule, swap := classify(gp, heap.Erase)
	if rule != "expand" || swap {
		t.Fatalf("got (%s, %v), want (expand, false)", rule, swap)
	}
}

func TestClassifyBranch(t *testing.T) {
	br := heap.BranchPort{}
	val := extrinsics.N32Port(0)

	rule, swap := classify(br, val)
	if rule != "branch" || swap {
		t.Fatalf("got (%s, %v), want (branch, false)", rule, swap)
	}
	rule, swap = classify(val, br)
	if rule != "branch" || !swap {
		t.Fatalf("swapped order: got (%s, %v), want (branch, true)", rule, swap)
	}
}

func TestClassifyCall(t *testing.T) {
	fn := extrinsics.ExtFnPort{Label: "n32_add"}
	val := extrinsics.N32Port(1)

	rule, swap := classify(fn, val)
	if rule != "call" || swap {
		t.Fatalf("got (%s, %v), want (call, false)", rule, swap)
	}
	rule, swap = classify(val, fn)
	if rule != "call" || !swap {
		t.Fatalf("swapped order: got (%s, %v), want (call, true)", rule, swap)
	}
}

// A binary node meeting a nilary non-Global, non-ExtVal/Branch-compatible
// port (here, Erase) always copies, with the binary side normalized to b.
func TestClassifyCopyAgainstErase(t *testing.T) {
	comb := heap.CombPort{Label: "dup"}

	rule, swap := classify(comb, heap.Erase)
	if rule != "copy" || !swap {
		t.Fatalf("got (%s, %v), want (copy, true)", rule, swap)
	}
	rule, swap = classify(heap.Erase, comb)
	if rule != "copy" || swap {
		t.Fatalf("got (%s, %v), want (copy, false)", rule, swap)
	}
}
