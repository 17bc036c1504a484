// Package parser is a hand-rolled recursive-descent parser turning a
// lexer.Token stream into a tree.Nets (spec.md §6.1). It is, per spec.md
// §1, an external collaborator to the VM core: nothing in pkg/vm imports
// this package.
package parser

import (
	"fmt"

	"github.com/vic/ivm/pkg/heap"
	"github.com/vic/ivm/pkg/lexer"
	"github.com/vic/ivm/pkg/tree"
)

// Parser consumes a fixed token slice produced by lexer.Tokenize.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New returns a Parser over toks.
func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

// ParseString lexes and parses src in one step.
func ParseString(src string) (*tree.Nets, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(toks).ParseFile()
}

func (p *Parser) cur() lexer.Token { return p.toks[p.pos] }

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.cur().Kind != k {
		return lexer.Token{}, p.errorf("expected %s, found %s", k, p.cur().Kind)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &lexer.SyntaxError{Line: p.cur().Line, Col: p.cur().Col, Msg: fmt.Sprintf(format, args...)}
}

// ParseFile parses a full source file: a sequence of `global_name { net }`
// entries (spec.md §6.1).
func (p *Parser) ParseFile() (*tree.Nets, error) {
	nets := tree.NewNets()
	for p.cur().Kind != lexer.EOF {
		nameTok, err := p.expect(lexer.Path)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LBrace); err != nil {
			return nil, err
		}
		net, err := p.parseNet()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		nets.Set(nameTok.Text, net)
	}
	return nets, nil
}

func (p *Parser) startsTree() bool {
	switch p.cur().Kind {
	case lexer.Ident, lexer.Path, lexer.N32Literal, lexer.F32Literal, lexer.At, lexer.Question, lexer.Hash:
		return true
	default:
		return false
	}
}

func (p *Parser) parseNet() (tree.Net, error) {
	root, err := p.parseTree()
	if err != nil {
		return tree.Net{}, err
	}
	var pairs []tree.Pair
	for p.startsTree() {
		a, err := p.parseTree()
		if err != nil {
			return tree.Net{}, err
		}
		if _, err := p.expect(lexer.Equals); err != nil {
			return tree.Net{}, err
		}
		b, err := p.parseTree()
		if err != nil {
			return tree.Net{}, err
		}
		pairs = append(pairs, tree.Pair{A: a, B: b})
	}
	return tree.Net{Root: root, Pairs: pairs}, nil
}

func (p *Parser) traceOf(tok lexer.Token) *heap.Trace {
	return &heap.Trace{Head: heap.Span{Line: tok.Line, Col: [2]int{tok.Col, tok.Col + len(tok.Text)}}}
}

// parseTree parses one tree node per the grammar of spec.md §6.1.
func (p *Parser) parseTree() (tree.Tree, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.N32Literal:
		p.advance()
		return tree.N32Node{Value: tok.N32, Tr: p.traceOf(tok)}, nil
	case lexer.F32Literal:
		p.advance()
		return tree.F32Node{Value: tok.F32, Tr: p.traceOf(tok)}, nil
	case lexer.Path:
		p.advance()
		return tree.GlobalNode{Name: tok.Text, Tr: p.traceOf(tok)}, nil
	case lexer.Ident:
		p.advance()
		if tok.Text == "_" {
			return tree.Erase{Tr: p.traceOf(tok)}, nil
		}
		if p.cur().Kind != lexer.LParen {
			return tree.VarNode{Name: tok.Text, Tr: p.traceOf(tok)}, nil
		}
		p.advance()
		left, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return tree.CombNode{Label: tok.Text, Left: left, Right: right, Tr: p.traceOf(tok)}, nil
	case lexer.At:
		p.advance()
		label, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		swapped := false
		if p.cur().Kind == lexer.Dollar {
			p.advance()
			swapped = true
		}
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		left, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		name := label.Text
		if swapped {
			name += "$"
		}
		return tree.ExtFnNode{Label: name, Left: left, Right: right, Tr: p.traceOf(tok)}, nil
	case lexer.Question:
		p.advance()
		if _, err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		n0, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		n1, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		n2, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return tree.BranchNode{N0: n0, N1: n1, N2: n2, Tr: p.traceOf(tok)}, nil
	case lexer.Hash:
		p.advance()
		if _, err := p.expect(lexer.LBracket); err != nil {
			return nil, err
		}
		inner, err := p.parseTree()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBracket); err != nil {
			return nil, err
		}
		return tree.BlackBox{Inner: inner, Tr: p.traceOf(tok)}, nil
	default:
		return nil, p.errorf("unexpected token %s", tok.Kind)
	}
}
