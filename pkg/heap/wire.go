// Package heap implements the wire/port primitives of the interaction-net
// runtime: the heap that allocates wire pairs, and the tagged port variants
// that decorate them. See spec.md §2.1, §2.2, §3.1, §3.2.
package heap

import "fmt"

// Tag identifies a Port's variant.
type Tag int

const (
	TagWire Tag = iota
	TagGlobal
	TagErase
	TagExtVal
	TagComb
	TagExtFn
	TagBranch
)

func (t Tag) String() string {
	switch t {
	case TagWire:
		return "Wire"
	case TagGlobal:
		return "Global"
	case TagErase:
		return "Erase"
	case TagExtVal:
		return "ExtVal"
	case TagComb:
		return "Comb"
	case TagExtFn:
		return "ExtFn"
	case TagBranch:
		return "Branch"
	default:
		return "Unknown"
	}
}

// Port is one endpoint of a wire, tagged with a variant (spec.md §3.2). Every
// concrete port type in this module and its siblings (pkg/extrinsics,
// pkg/global) implements it.
type Port interface {
	PortTag() Tag
}

// BinaryPort is a Port that owns an aux pair: the two halves of its
// principal wire. Comb, ExtFn and Branch all satisfy this.
type BinaryPort interface {
	Port
	Aux() (*Wire, *Wire)
	PortLabel() string
}

// ErasePort is the nilary Erase variant.
type ErasePort struct{ Tr *Trace }

func (ErasePort) PortTag() Tag { return TagErase }

// Erase is the shared zero-value Erase port, mirroring Port.ERASE in the
// original: erase carries no payload, so every occurrence is interchangeable.
var Erase = ErasePort{}

// WirePort is the indirection variant: a half whose content is "go follow
// this other wire instead", used while a connection is still being built.
type WirePort struct {
	W *Wire
}

func (WirePort) PortTag() Tag { return TagWire }

// Wire is one half of an inseparable two-ended connection (spec.md §3.1). A
// wire is identified by the identity of its left (canonical) half; `other`
// is always the sibling. The two halves are separate allocations, always
// created together as a pair by the Heap.
type Wire struct {
	other  *Wire
	left   *Wire
	target Port
	// freeNext links this half onto the heap's free-list when it (and its
	// sibling) are both empty. Kept as its own field rather than overloading
	// `target`, per SPEC_FULL.md §6.4 — same semantics, clearer in Go.
	freeNext *Wire
	onFree   bool
}

func newWirePair() (*Wire, *Wire) {
	left := &Wire{}
	right := &Wire{}
	left.other, left.left = right, left
	right.other, right.left = left, left
	return left, right
}

// Other returns the sibling half of this wire.
func (w *Wire) Other() *Wire { return w.other }

// Left returns the canonical (left) half of the pair this wire belongs to.
func (w *Wire) Left() *Wire { return w.left }

// LoadTarget returns the current content of this half as stored, or nil if
// empty; an indirection is returned as the WirePort itself, not followed.
func (w *Wire) LoadTarget() Port { return w.target }

// SwapTarget installs p as this half's target and returns whatever was there
// before (nil if it was empty).
func (w *Wire) SwapTarget(p Port) Port {
	old := w.target
	w.target = p
	return old
}

// Heap allocates wire pairs and recycles them through a free-list once both
// halves are empty again (spec.md §4.1).
type Heap struct {
	allocated int
	maxSize   int
	freeHead  *Wire
	all       []*Wire
}

// ErrOutOfMemory is returned by AllocNode when MaxSize would be exceeded.
type ErrOutOfMemory struct{ MaxSize int }

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("heap: max_size %d exceeded", e.MaxSize)
}

// DefaultMaxSize matches the reference implementation's 1<<20 wire cap.
const DefaultMaxSize = 1024 * 1024

// NewHeap returns a Heap with the default size budget.
func NewHeap() *Heap { return &Heap{maxSize: DefaultMaxSize} }

// NewHeapWithLimit returns a Heap bounded to maxSize live wire pairs.
func NewHeapWithLimit(maxSize int) *Heap { return &Heap{maxSize: maxSize} }

// AllocNode returns a fresh wire half with both sides empty, popping the
// free-list when possible before extending the arena.
func (h *Heap) AllocNode() (*Wire, error) {
	var w *Wire
	if h.freeHead != nil {
		w = h.freeHead
		h.freeHead = w.freeNext
		w.freeNext = nil
		w.onFree = false
	} else {
		if h.maxSize > 0 && h.allocated >= h.maxSize {
			return nil, &ErrOutOfMemory{MaxSize: h.maxSize}
		}
		w, _ = newWirePair()
		h.allocated++
		h.all = append(h.all, w)
	}
	w.other.target = nil
	w.target = nil
	return w, nil
}

// FreeWire clears w's target; if its sibling is also empty, the canonical
// half is prepended to the free-list.
func (h *Heap) FreeWire(w *Wire) {
	w.target = nil
	if w.other.target == nil {
		canon := w.left
		if !canon.onFree {
			canon.freeNext = h.freeHead
			canon.onFree = true
			h.freeHead = canon
		}
	}
}

// NewWire allocates a node and immediately frees one half back, returning
// the remaining live half twice, as both ends of the wire (spec.md §4.1
// `new_wire`).
func (h *Heap) NewWire() (*Wire, *Wire, error) {
	w, err := h.AllocNode()
	if err != nil {
		return nil, nil, err
	}
	h.FreeWire(w.other)
	return w, w, nil
}

// AllWires returns every canonical wire half ever allocated, including ones
// currently on the free-list (debugger use only: spec.md's find_free_wires
// diagnostic walks this to spot leaked, unreachable wires).
func (h *Heap) AllWires() []*Wire { return h.all }

// NewWires allocates one node and returns both halves twice — used when two
// independent users each need a handle on one side (spec.md §4.1 `new_wires`).
func (h *Heap) NewWires() (a, b, c, d *Wire, err error) {
	w, err := h.AllocNode()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return w, w, w.other, w.other, nil
}
