package global

import "github.com/vic/ivm/pkg/heap"

// Instruction is one step of a Global's compiled stream (spec.md §3.5).
type Instruction interface {
	// Execute runs this instruction against ctx. It returns ok=true with an
	// (dest, src) pair when this was an Inert instruction, so the driving
	// VM can record it without linking anything live.
	Execute(ctx ExecutionContext) (dest, src heap.Port, ok bool)
}

// Instructions is a Global's ordered instruction stream plus the monotonic
// register-id counter used while compiling it (spec.md §3.5, §3.6).
type Instructions struct {
	NextRegister int
	list         []Instruction
}

// NewInstructions returns an empty instruction stream.
func NewInstructions() *Instructions { return &Instructions{} }

// NewRegisterID allocates and returns the next unused register id.
func (ins *Instructions) NewRegisterID() int {
	r := ins.NextRegister
	ins.NextRegister++
	return r
}

// Append adds an instruction to the end of the stream.
func (ins *Instructions) Append(i Instruction) { ins.list = append(ins.list, i) }

// All returns the instructions in emission order.
func (ins *Instructions) All() []Instruction { return ins.list }

// Len reports how many instructions are in the stream.
func (ins *Instructions) Len() int { return len(ins.list) }

// Nilary emits a fixed port template into dest_reg (spec.md §3.5).
type Nilary struct {
	Dest     int
	Template heap.Port
}

func (n Nilary) Execute(ctx ExecutionContext) (heap.Port, heap.Port, bool) {
	ctx.LinkRegister(n.Dest, n.Template)
	return nil, nil, false
}

// Binary allocates a fresh wire and emits a binary port of Tag/Label whose
// aux halves materialize into Aux1/Aux2 registers, principal into Dest
// (spec.md §3.5).
type Binary struct {
	Tag        heap.Tag
	Label      string
	Dest       int
	Aux1, Aux2 int
	Tr         *heap.Trace
}

func (b Binary) Execute(ctx ExecutionContext) (heap.Port, heap.Port, bool) {
	w := ctx.AllocWire()
	port := ctx.MakeBinaryPort(b.Tag, b.Label, w)
	ctx.LinkRegister(b.Aux1, heap.WirePort{W: w})
	ctx.LinkRegister(b.Aux2, heap.WirePort{W: w.Other()})
	ctx.LinkRegister(b.Dest, port)
	return nil, nil, false
}

// Inert emits nothing live; it records (dest, src) as an inert pair rather
// than linking them (spec.md §3.5). Dest and Src are each written with one
// half of a fresh wire through LinkRegister, so whatever occupies (or later
// lands in) either register ends up parked behind that half and the registers
// are left empty like any other doubly-written variable. The recorded pair is
// the two halves, which read back as whatever those occupants reduce to.
type Inert struct {
	Dest, Src int
}

func (i Inert) Execute(ctx ExecutionContext) (heap.Port, heap.Port, bool) {
	w := ctx.AllocWire()
	ctx.LinkRegister(i.Dest, heap.WirePort{W: w})
	ctx.LinkRegister(i.Src, heap.WirePort{W: w.Other()})
	return heap.WirePort{W: w}, heap.WirePort{W: w.Other()}, true
}
