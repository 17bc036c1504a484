package host_test

import (
	"errors"
	"testing"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/host"
)

// Booting a name that was never parsed reports ErrUnknownGlobal, not a
// generic error or a panic.
func TestBootUnknownGlobal(t *testing.T) {
	h := host.New()
	err := h.Boot("::nope", extrinsics.N32Port(0))
	if !errors.Is(err, host.ErrUnknownGlobal) {
		t.Fatalf("got %v, want ErrUnknownGlobal", err)
	}
}

// A minimal net (a literal captured through an Inert, no expression at all)
// normalizes to completion and leaves both interaction queues empty.
func TestExecuteDrainsQueues(t *testing.T) {
	h := host.New()
	src := `
::main {
  out
  out = #[r]
  r = 42
}
`
	if err := h.ParseSource(src); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := h.Boot("::main", extrinsics.N32Port(0)); err != nil {
		t.Fatalf("boot: %v", err)
	}
	if err := h.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if h.VM.PendingFast() != 0 || h.VM.PendingSlow() != 0 {
		t.Fatalf("queues not drained: fast=%d slow=%d", h.VM.PendingFast(), h.VM.PendingSlow())
	}
	if len(h.VM.Inert) != 1 {
		t.Fatalf("got %d inert pairs, want 1", len(h.VM.Inert))
	}
	got := h.Readback(h.VM.Inert[0].Src).String()
	if got != "42" {
		t.Fatalf("got %q, want 42", got)
	}
}

// AddConstant wraps an arbitrary host value for later readback without
// touching the VM at all.
func TestAddConstantWrapsValue(t *testing.T) {
	h := host.New()
	p := h.AddConstant("hello")
	valuer, ok := p.(interface{ Value() interface{} })
	if !ok {
		t.Fatalf("%T does not expose Value()", p)
	}
	if valuer.Value() != "hello" {
		t.Fatalf("got %v, want %q", valuer.Value(), "hello")
	}
	forked, ok := p.ForkValue().(interface{ Value() interface{} })
	if !ok || forked.Value() != "hello" {
		t.Fatal("ForkValue must return an equivalent reference to the same cached value")
	}
}
