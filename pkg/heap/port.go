package heap

// CombPort is a binary node tagged with a user-chosen label; two Combs with
// matching labels annihilate, mismatched ones commute (spec.md §4.3.1/2).
type CombPort struct {
	Label     string
	Principal *Wire
	Tr        *Trace
}

func (CombPort) PortTag() Tag        { return TagComb }
func (p CombPort) PortLabel() string { return p.Label }

// Aux returns the node's two auxiliary halves: the principal wire's own two
// sides (spec.md §3.2 "a binary port owns an aux pair").
func (p CombPort) Aux() (*Wire, *Wire) { return p.Principal, p.Principal.Other() }

// WithPrincipal returns a copy of p with a different principal wire, used by
// commute's `_commute_copy`.
func (p CombPort) WithPrincipal(w *Wire) CombPort { p.Principal = w; return p }

// BranchPort is the binary ternary-if primitive: meeting an ExtVal, it
// selects one of its two aux branches based on the value's truthiness
// (spec.md §4.3.6).
type BranchPort struct {
	Principal *Wire
	Tr        *Trace
}

func (BranchPort) PortTag() Tag        { return TagBranch }
func (BranchPort) PortLabel() string   { return "" }
func (p BranchPort) Aux() (*Wire, *Wire) { return p.Principal, p.Principal.Other() }

func (p BranchPort) WithPrincipal(w *Wire) BranchPort { p.Principal = w; return p }
