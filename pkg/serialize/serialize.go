// Package serialize lowers a parsed tree.Nets into compiled global.Globals:
// one ordered Instruction stream per entry, plus the transitive comb-label
// set each Global needs for the Global×Comb copy short-circuit (spec.md
// §4.7, §4.3.8).
package serialize

import (
	"errors"
	"fmt"

	"github.com/vic/ivm/pkg/extrinsics"
	"github.com/vic/ivm/pkg/global"
	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/tree"
)

// ErrUnknownGlobal is returned when a GlobalNode names an entry absent from
// both the Nets being serialized and the table's prior contents.
var ErrUnknownGlobal = errors.New("serialize: unknown global")

// InsertNets compiles every entry of nets into table, then propagates
// label sets across the whole table (spec.md §4.7 `insert_nets`).
func InsertNets(table *global.Table, nets *tree.Nets) error {
	for _, name := range nets.Names() {
		table.Ensure(name)
	}
	for _, name := range nets.Names() {
		net, _ := nets.Get(name)
		g, _ := table.Get(name)
		if err := serializeNet(table, g, net); err != nil {
			return fmt.Errorf("serialize %s: %w", name, err)
		}
	}
	connectCombLabels(table)
	return nil
}

// varTable is a union-find over variable names local to one net, lazily
// assigning each equivalence class a single register (spec.md §4.7 step 3).
type varTable struct {
	parent map[string]string
	reg    map[string]int
}

func newVarTable() *varTable {
	return &varTable{parent: map[string]string{}, reg: map[string]int{}}
}

func (vt *varTable) find(name string) string {
	p, ok := vt.parent[name]
	if !ok {
		vt.parent[name] = name
		return name
	}
	if p == name {
		return name
	}
	root := vt.find(p)
	vt.parent[name] = root
	return root
}

func (vt *varTable) union(a, b string) {
	ra, rb := vt.find(a), vt.find(b)
	if ra != rb {
		vt.parent[ra] = rb
	}
}

// bindRoot forces the equivalence class containing name onto register 0
// (spec.md §4.7 step 4: "if the root is a var, bind 0 to that var's name").
func (vt *varTable) bindRoot(ins *global.Instructions, name string) {
	vt.reg[vt.find(name)] = 0
	if ins.NextRegister < 1 {
		ins.NextRegister = 1
	}
}

func (vt *varTable) regFor(ins *global.Instructions, name string) int {
	root := vt.find(name)
	if r, ok := vt.reg[root]; ok {
		return r
	}
	r := ins.NewRegisterID()
	vt.reg[root] = r
	return r
}

type compiler struct {
	table *global.Table
	g     *global.Global
	ins   *global.Instructions
	vt    *varTable
	err   error
}

func serializeNet(table *global.Table, g *global.Global, net tree.Net) error {
	c := &compiler{table: table, g: g, ins: g.Instructions, vt: newVarTable()}

	for i := len(net.Pairs) - 1; i >= 0; i-- {
		p := net.Pairs[i]
		if va, ok := p.A.(tree.VarNode); ok {
			if vb, ok := p.B.(tree.VarNode); ok {
				c.vt.union(va.Name, vb.Name)
			}
		}
	}

	if rootVar, ok := net.Root.(tree.VarNode); ok {
		c.vt.bindRoot(c.ins, rootVar.Name)
	} else {
		reg0 := c.ins.NewRegisterID()
		c.emitAt(reg0, net.Root)
	}

	for i := len(net.Pairs) - 1; i >= 0 && c.err == nil; i-- {
		p := net.Pairs[i]
		c.emitPair(p)
	}

	return c.err
}

// varName reports the variable name of t if it is a bare VarNode.
func varName(t tree.Tree) (string, bool) {
	v, ok := t.(tree.VarNode)
	return v.Name, ok
}

func (c *compiler) emitPair(p tree.Pair) {
	nameA, isVarA := varName(p.A)
	nameB, isVarB := varName(p.B)
	switch {
	case isVarA && isVarB:
		// Already unified; both occurrences share a register with no
		// instruction of their own.
		return
	case isVarA:
		c.emitAt(c.vt.regFor(c.ins, nameA), p.B)
	case isVarB:
		c.emitAt(c.vt.regFor(c.ins, nameB), p.A)
	default:
		reg := c.ins.NewRegisterID()
		c.emitAt(reg, p.A)
		c.emitAt(reg, p.B)
	}
}

// regOf returns the register representing t's value: a var's shared
// register if t is bare, otherwise a fresh register with t's instructions
// emitted into it.
func (c *compiler) regOf(t tree.Tree) int {
	if name, ok := varName(t); ok {
		return c.vt.regFor(c.ins, name)
	}
	r := c.ins.NewRegisterID()
	c.emitAt(r, t)
	return r
}

func (c *compiler) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *compiler) emitAt(dest int, t tree.Tree) {
	if c.err != nil {
		return
	}
	switch n := t.(type) {
	case tree.Erase:
		c.ins.Append(global.Nilary{Dest: dest, Template: heap.Erase})
	case tree.N32Node:
		c.ins.Append(global.Nilary{Dest: dest, Template: extrinsics.N32Port(n.Value)})
	case tree.F32Node:
		c.ins.Append(global.Nilary{Dest: dest, Template: extrinsics.F32Port(n.Value)})
	case tree.GlobalNode:
		ref, ok := c.table.Get(n.Name)
		if !ok {
			c.fail(fmt.Errorf("%w: %s", ErrUnknownGlobal, n.Name))
			return
		}
		c.ins.Append(global.Nilary{Dest: dest, Template: global.Port{Ref: ref, Tr: n.Tr}})
	case tree.CombNode:
		aux1 := c.regOf(n.Left)
		aux2 := c.regOf(n.Right)
		c.ins.Append(global.Binary{Tag: heap.TagComb, Label: n.Label, Dest: dest, Aux1: aux1, Aux2: aux2, Tr: n.Tr})
		c.g.AddLabel(n.Label)
	case tree.ExtFnNode:
		// dest is the ExtFn's principal: the call fires when whatever
		// meets dest arrives (spec.md §4.3.5). The left operand rides
		// aux1 (rhs, the argument the call waits on) and the right
		// operand rides aux2 (out, where the result is linked).
		aux1 := c.regOf(n.Left)
		aux2 := c.regOf(n.Right)
		c.ins.Append(global.Binary{Tag: heap.TagExtFn, Label: n.Label, Dest: dest, Aux1: aux1, Aux2: aux2, Tr: n.Tr})
	case tree.BranchNode:
		c.emitBranch(dest, n)
	case tree.BlackBox:
		src := c.regOf(n.Inner)
		c.ins.Append(global.Inert{Dest: dest, Src: src})
	default:
		c.fail(fmt.Errorf("serialize: unhandled tree node %T", t))
	}
}

// emitBranch lowers a ternary BranchNode(n0, n1, n2) into two nested binary
// Branch instructions (spec.md §3.3, §4.3.6): an inner one packaging (n0,
// n1) as its aux pair, and an outer one whose principal register is shared
// with n2 (the selector) and whose second aux is the caller-given dest.
func (c *compiler) emitBranch(dest int, n tree.BranchNode) {
	innerReg := c.ins.NewRegisterID()
	aux1 := c.regOf(n.N0)
	aux2 := c.regOf(n.N1)
	c.ins.Append(global.Binary{Tag: heap.TagBranch, Dest: innerReg, Aux1: aux1, Aux2: aux2, Tr: n.Tr})

	condReg := c.regOf(n.N2)
	c.ins.Append(global.Binary{Tag: heap.TagBranch, Dest: condReg, Aux1: innerReg, Aux2: dest, Tr: n.Tr})
}

// connectCombLabels computes each Global's transitive label set by
// relaxation to a fixed point (spec.md §4.3.8); safe under recursive
// globals (e.g. a global referencing itself converges immediately).
func connectCombLabels(table *global.Table) {
	names := table.Names()
	globals := make([]*global.Global, 0, len(names))
	for _, name := range names {
		g, _ := table.Get(name)
		globals = append(globals, g)
	}

	for changed := true; changed; {
		changed = false
		for _, g := range globals {
			for _, instr := range g.Instructions.All() {
				nilary, ok := instr.(global.Nilary)
				if !ok {
					continue
				}
				ref, ok := nilary.Template.(global.Port)
				if !ok || ref.Ref == nil || ref.Ref == g {
					continue
				}
				before := len(g.Labels())
				g.ExtendLabels(ref.Ref)
				if len(g.Labels()) != before {
					changed = true
				}
			}
		}
	}
}
