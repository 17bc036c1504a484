// Package extrinsics holds the host-callback registry and the two port
// variants that touch it: ExtFn (the call site) and the primitive ExtVal
// wrapping n32/f32 (spec.md §4.4).
package extrinsics

import (
	"strings"

	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/values"
)

// Func is a host callback invoked when an ExtFn meets its second ExtVal
// argument. Arguments arrive in source order regardless of which side
// showed up first (the ExtFn's swap bookkeeping restores that order).
type Func func(a, b heap.ExtValPort) heap.ExtValPort

// Extrinsics maps a callback's registered name to its implementation.
type Extrinsics struct {
	Fns map[string]Func
}

// New returns an empty registry.
func New() *Extrinsics { return &Extrinsics{Fns: map[string]Func{}} }

// ExtFnPort is the binary call-site variant (spec.md §3.2, §4.3.5). A
// trailing "$" on Label marks that its two operands arrived swapped
// relative to source order; Swapped/Unwrap/Swap manage that bit the way the
// original encodes it directly in the label string (spec.md §9).
type ExtFnPort struct {
	Label     string
	Principal *heap.Wire
	Tr        *heap.Trace
}

func (ExtFnPort) PortTag() heap.Tag       { return heap.TagExtFn }
func (p ExtFnPort) PortLabel() string     { return p.Label }
func (p ExtFnPort) Aux() (*heap.Wire, *heap.Wire) { return p.Principal, p.Principal.Other() }

// Swapped reports whether this port's operands arrived out of source order.
func (p ExtFnPort) Swapped() bool { return strings.HasSuffix(p.Label, "$") }

// Unwrap strips the swap marker, yielding the name to look up in Extrinsics.
func (p ExtFnPort) Unwrap() string {
	if p.Swapped() {
		return p.Label[:len(p.Label)-1]
	}
	return p.Label
}

// Swap toggles the swap marker, returning a new port with a fresh principal
// left for the caller to fill in.
func (p ExtFnPort) Swap() ExtFnPort {
	if p.Swapped() {
		p.Label = p.Label[:len(p.Label)-1]
	} else {
		p.Label = p.Label + "$"
	}
	return p
}

// WithPrincipal returns a copy of p with a different principal wire.
func (p ExtFnPort) WithPrincipal(w *heap.Wire) ExtFnPort { p.Principal = w; return p }

// PrimitiveExtValPort wraps an n32 or f32 value. Primitives fork to
// themselves and drop is a no-op: they carry no external resource
// (spec.md §4.4).
type PrimitiveExtValPort struct {
	N32Val values.N32
	F32Val values.F32
	IsF32  bool
	Tr     *heap.Trace
}

func N32Port(v values.N32) PrimitiveExtValPort { return PrimitiveExtValPort{N32Val: v} }
func F32Port(v values.F32) PrimitiveExtValPort { return PrimitiveExtValPort{F32Val: v, IsF32: true} }

func (PrimitiveExtValPort) PortTag() heap.Tag { return heap.TagExtVal }
func (p PrimitiveExtValPort) ForkValue() heap.ExtValPort { return p }
func (PrimitiveExtValPort) DropValue()                  {}
