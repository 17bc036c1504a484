package vm

import (
	"fmt"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
)

// VM implements global.ExecutionContext so a Global's compiled instruction
// stream can drive register writes and wire allocation without pkg/global
// importing pkg/vm.
var _ global.ExecutionContext = (*VM)(nil)

func (v *VM) growRegisters(n int) {
	if cap(v.registers) >= n {
		v.registers = v.registers[:n]
		return
	}
	grown := make([]heap.Port, n)
	copy(grown, v.registers)
	v.registers = grown
}

// LinkRegister implements global.ExecutionContext (spec.md §4.3.7 step 3):
// the first write to a register just stores; the second links the stored
// port against the new one and clears the register.
func (v *VM) LinkRegister(reg int, p heap.Port) {
	v.growRegisters(reg + 1)
	prev := v.registers[reg]
	if prev == nil {
		v.registers[reg] = p
		return
	}
	v.registers[reg] = nil
	v.Link(prev, p)
}

// PeekRegister implements global.ExecutionContext: read without consuming.
func (v *VM) PeekRegister(reg int) heap.Port {
	if reg >= len(v.registers) {
		return nil
	}
	return v.registers[reg]
}

// AllocWire implements global.ExecutionContext.
func (v *VM) AllocWire() *heap.Wire { return v.mustAlloc() }

// MakeBinaryPort implements global.ExecutionContext: builds the live port
// for a Binary instruction (spec.md §3.5).
func (v *VM) MakeBinaryPort(tag heap.Tag, label string, w *heap.Wire) heap.Port {
	switch tag {
	case heap.TagComb:
		return heap.CombPort{Label: label, Principal: w}
	case heap.TagExtFn:
		return extrinsics.ExtFnPort{Label: label, Principal: w}
	case heap.TagBranch:
		return heap.BranchPort{Principal: w}
	default:
		unreachable("MakeBinaryPort(%s)", tag)
		return nil
	}
}

// Execute implements execute(instructions, entry_port) (spec.md §4.3.7):
// register 0 binds entryPort, each instruction materialises into its
// registers, and inert instructions are recorded without linking. The
// register file is transient — it is grown fresh and must be entirely
// empty again once every instruction has run; a non-empty register is a
// LeakedRegister, a fatal assertion (spec.md §3.6, §8).
func (v *VM) Execute(instructions *global.Instructions, entryPort heap.Port) {
	n := instructions.NextRegister
	if n < 1 {
		n = 1
	}
	v.growRegisters(n)
	v.LinkRegister(0, entryPort)

	for _, instr := range instructions.All() {
		dest, src, ok := instr.Execute(v)
		if ok {
			v.Inert = append(v.Inert, InertPair{Dest: dest, Src: src})
		}
	}

	for i, p := range v.registers {
		if p != nil {
			panic(fmt.Sprintf("ivm: leaked register %d holds %s", i, p.PortTag()))
		}
	}
	v.registers = v.registers[:0]
}
