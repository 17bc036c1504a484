// Package debugger is an interactive console for stepping a Host's VM one
// interaction at a time, projecting the active queues and interaction stack
// back to trees through pkg/reader (spec.md §2.8's debugger façade, adapted
// from the original debugger.py's history tracking and find_free_wires).
package debugger

import (
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/host"
	"github.com/vic/ivm/pkg/reader"
	"github.com/vic/ivm/pkg/tree"
)

// Frame is one entry of the interaction stack: the two ports an
// OnStartInteraction hook observed, read back as trees, plus the rule name.
type Frame struct {
	A, B tree.Tree
	Rule string
}

// History accumulates one entry per VM-driven observer event, mirroring the
// original's History dataclass: a snapshot of the interaction stack at that
// instant, so a console can step back and forth through past states without
// re-running the net.
type History struct {
	Stack []Frame
}

// Tracker wires a VM's ObserverHooks to build up a History list across a
// run. It owns its own Reader so variable numbering stays stable across the
// whole session, matching how the original reuses one Reader per Host.
type Tracker struct {
	reader  *reader.Reader
	stack   []Frame
	History []History
}

// NewTracker returns a Tracker ready to be installed via Attach.
func NewTracker() *Tracker {
	return &Tracker{reader: reader.New()}
}

func (t *Tracker) snapshot() History {
	frames := make([]Frame, len(t.stack))
	copy(frames, t.stack)
	return History{Stack: frames}
}

// Attach installs t's hooks on h.VM, recording one History entry per start
// and completion of an interaction.
func (t *Tracker) Attach(h *host.Host) {
	h.VM.Hooks.OnStartInteraction = func(a, b heap.Port, name string) {
		t.stack = append(t.stack, Frame{
			A:    t.reader.Read(a),
			B:    t.reader.Read(b),
			Rule: name,
		})
		t.History = append(t.History, t.snapshot())
	}
	h.VM.Hooks.OnCompleteInteraction = func() {
		if len(t.stack) > 0 {
			t.stack = t.stack[:len(t.stack)-1]
		}
		t.History = append(t.History, t.snapshot())
	}
}
