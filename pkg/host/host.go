// Package host implements the façade spec.md §2.8/§6.2 describes: loading
// source, registering extrinsics and constants, booting an entry point and
// draining normalization, wired together the way a running program sees
// the VM core.
package host

import (
	"errors"
	"fmt"
	"os"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/parser"
	"github.com/vic/ivm/pkg/reader"
	"github.com/vic/ivm/pkg/serialize"
	"github.com/vic/ivm/pkg/tree"
	"github.com/vic/ivm/pkg/vm"
)

// ErrUnknownGlobal is returned by Boot when the named global was never
// parsed.
var ErrUnknownGlobal = errors.New("host: unknown global")

// Host owns everything a running program needs: the compiled global table,
// the extrinsics registry, the host-value cache and the VM itself.
type Host struct {
	VM         *vm.VM
	Globals    *global.Table
	Extrinsics *extrinsics.Extrinsics
	Cache      *reader.ExtrinsicsCache
}

// New returns a Host with a fresh default-sized VM, an empty global table,
// and the "cache" ext_fn pre-installed (spec.md §4.4).
func New() *Host {
	v := vm.New()
	h := &Host{
		VM:         v,
		Globals:    global.NewTable(),
		Extrinsics: v.Extrinsics,
		Cache:      reader.NewExtrinsicsCache(),
	}
	h.Cache.InstallInto(h.Extrinsics)
	return h
}

// NewWithHeapLimit returns a Host whose VM heap is capped at maxSize wires.
func NewWithHeapLimit(maxSize int) *Host {
	v := vm.NewWithHeap(heap.NewHeapWithLimit(maxSize))
	h := &Host{
		VM:         v,
		Globals:    global.NewTable(),
		Extrinsics: v.Extrinsics,
		Cache:      reader.NewExtrinsicsCache(),
	}
	h.Cache.InstallInto(h.Extrinsics)
	return h
}

// ParseFile reads path and compiles its globals into h.Globals.
func (h *Host) ParseFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("host: read %s: %w", path, err)
	}
	return h.ParseSource(string(src))
}

// ParseSource parses and compiles src's globals into h.Globals (spec.md
// §6.2 `parse_file` — generalized to any source, since the lexer/parser do
// not care whether it came from disk).
func (h *Host) ParseSource(src string) error {
	nets, err := parser.ParseString(src)
	if err != nil {
		return err
	}
	return serialize.InsertNets(h.Globals, nets)
}

// AddExtFun registers a host callback under name (spec.md §6.2
// `add_ext_fun`).
func (h *Host) AddExtFun(name string, fn extrinsics.Func) {
	h.Extrinsics.Fns[name] = fn
}

// AddConstant caches v and returns a port referring to it (spec.md §6.2
// `add_constant`).
func (h *Host) AddConstant(v interface{}) heap.ExtValPort {
	return h.Cache.Add(v)
}

// Boot links the named global's port against value.ForkValue() (spec.md
// §6.2 `boot`).
func (h *Host) Boot(name string, value heap.ExtValPort) error {
	g, ok := h.Globals.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGlobal, name)
	}
	h.VM.Boot(g, value)
	return nil
}

// Execute drains normalize() to completion (spec.md §6.2 `execute`). An
// OutOfMemory signal raised during a rewrite is turned into a returned
// error; any other panic is a genuine internal assertion failure and
// propagates unchanged.
func (h *Host) Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if oom, ok := vm.AsOutOfMemory(r); ok {
				err = oom
				return
			}
			panic(r)
		}
	}()
	h.VM.Normalize()
	return nil
}

// Readback reconstructs a Tree from a live port, typically the other half
// of a boot value's sink wire.
func (h *Host) Readback(p heap.Port) tree.Tree {
	return reader.New().Read(p)
}
