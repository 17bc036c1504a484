package vm

import "github.com/vic/ivm/pkg/heap"

// OutOfMemorySignal is panicked by mustAlloc when the heap's budget is
// exhausted (spec.md §7 OutOfMemory). Host-level callers recover it at the
// normalize() boundary and turn it back into a returned error; anything else
// that reaches a recover is a genuine assertion failure and should propagate.
type OutOfMemorySignal struct{ Err error }

// AsOutOfMemory reports whether a recovered panic value is an
// OutOfMemorySignal, unwrapping it to the underlying heap error.
func AsOutOfMemory(r interface{}) (error, bool) {
	sig, ok := r.(OutOfMemorySignal)
	if !ok {
		return nil, false
	}
	return sig.Err, true
}

func (v *VM) mustAlloc() *heap.Wire {
	w, err := v.Heap.AllocNode()
	if err != nil {
		panic(OutOfMemorySignal{Err: err})
	}
	return w
}
