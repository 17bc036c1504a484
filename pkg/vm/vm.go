// Package vm implements the interaction-net runtime core: the link/follow
// protocol, interaction dispatch, the two priority queues, and global
// expansion (spec.md §2.6, §4.2, §4.3, §4.5). It is the reference
// ExecutionContext for pkg/global's compiled instruction streams.
package vm

import (
	"fmt"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
)

// pair is one pending interaction: two principal ports that met.
type pair struct{ A, B heap.Port }

// ObserverHooks are optional, side-effect-free callbacks consumed by
// external tooling (the debugger); see spec.md §4.5. Nil fields are no-ops.
type ObserverHooks struct {
	OnStartInteraction    func(a, b heap.Port, name string)
	OnCompleteInteraction func()
	OnLink                func(a, b heap.Port)
	OnLinkWire            func(w *heap.Wire, p heap.Port)
	OnFreeWire            func()
}

// VM owns the heap, the two active queues, the register file, the inert
// list and the extrinsics table — everything spec.md §5 names as VM-owned
// shared resources. It is single-threaded and cooperative (spec.md §5): no
// two interactions ever overlap.
type VM struct {
	Heap        *heap.Heap
	Extrinsics  *extrinsics.Extrinsics
	activeFast  []pair
	activeSlow  []pair
	Inert       []InertPair
	registers   []heap.Port
	Hooks       ObserverHooks
}

// InertPair is one (dest, src) recorded by an Inert instruction (spec.md §3.5).
type InertPair struct{ Dest, Src heap.Port }

// New returns a VM with a fresh, default-sized heap and extrinsics table.
func New() *VM {
	return &VM{Heap: heap.NewHeap(), Extrinsics: extrinsics.New()}
}

// NewWithHeap lets the caller cap heap size (e.g. from config).
func NewWithHeap(h *heap.Heap) *VM {
	return &VM{Heap: h, Extrinsics: extrinsics.New()}
}

// Boot links a GlobalPort for g against ext_val.ForkValue(), making the
// network active for normalization (spec.md §6.2 `boot`).
func (v *VM) Boot(g *global.Global, extVal heap.ExtValPort) {
	v.Link(global.Port{Ref: g}, extVal.ForkValue())
}

func (v *VM) trackInteraction(a, b heap.Port, name string) func() {
	if v.Hooks.OnStartInteraction != nil {
		v.Hooks.OnStartInteraction(a, b, name)
	}
	return func() {
		if v.Hooks.OnCompleteInteraction != nil {
			v.Hooks.OnCompleteInteraction()
		}
	}
}

// unreachable panics with a diagnostic message: spec.md §7 treats dispatch
// fall-through as an internal invariant violation, never a user-facing error.
func unreachable(format string, args ...interface{}) {
	panic(fmt.Sprintf("ivm: unreachable: "+format, args...))
}

// Step performs exactly one queued interaction: active_fast is drained
// before a single active_slow entry runs (spec.md §4.2, §5). It returns
// false when both queues are empty.
func (v *VM) Step() bool {
	if n := len(v.activeFast); n > 0 {
		p := v.activeFast[n-1]
		v.activeFast = v.activeFast[:n-1]
		v.Interact(p.A, p.B)
		return true
	}
	if n := len(v.activeSlow); n > 0 {
		p := v.activeSlow[n-1]
		v.activeSlow = v.activeSlow[:n-1]
		v.Interact(p.A, p.B)
		return true
	}
	return false
}

// Normalize drains both queues to completion (spec.md §4.2 `normalize`).
func (v *VM) Normalize() {
	for v.Step() {
	}
}

// PendingFast/PendingSlow expose queue depth for debugger/tooling use.
func (v *VM) PendingFast() int { return len(v.activeFast) }
func (v *VM) PendingSlow() int { return len(v.activeSlow) }

// ActivePairs returns a snapshot of both queues (fast then slow), for
// debugger projection through pkg/reader. It never mutates the VM.
func (v *VM) ActivePairs() []([2]heap.Port) {
	out := make([][2]heap.Port, 0, len(v.activeFast)+len(v.activeSlow))
	for _, p := range v.activeFast {
		out = append(out, [2]heap.Port{p.A, p.B})
	}
	for _, p := range v.activeSlow {
		out = append(out, [2]heap.Port{p.A, p.B})
	}
	return out
}
