// Package lexer tokenizes the `.iv` source syntax (spec.md §6.1): the
// parser's external collaborator, built here anyway so the whole pipeline
// can be exercised end to end by the CLI and its tests.
package lexer

import (
	"fmt"

	"github.com/vic/ivm/pkg/values"
)

// Kind identifies a token's syntactic category.
type Kind int

const (
	EOF Kind = iota
	Ident
	Path       // "::a::b"
	N32Literal // unsigned, no sign prefix
	F32Literal // signed, contains '.'
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Equals
	At
	Question
	Hash
	Dollar
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Path:
		return "path"
	case N32Literal:
		return "n32 literal"
	case F32Literal:
		return "f32 literal"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Equals:
		return "="
	case At:
		return "@"
	case Question:
		return "?"
	case Hash:
		return "#"
	case Dollar:
		return "$"
	default:
		return "unknown"
	}
}

// Token is one lexical unit, with its source position for error messages
// and heap.Trace spans (spec.md §7 SyntaxError carries (line, col_range)).
type Token struct {
	Kind       Kind
	Text       string
	N32        values.N32
	F32        values.F32
	Line, Col  int
}

// SyntaxError is the parser/lexer's concrete form of spec.md §7's
// SyntaxError kind: rejection of input, with a source position attached.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Line, e.Col, e.Msg)
}

// NumericOverflowError is spec.md §7's NumericOverflow: an n32 literal that
// does not fit in 32 bits.
type NumericOverflowError struct {
	Line, Col int
	Literal   string
}

func (e *NumericOverflowError) Error() string {
	return fmt.Sprintf("%d:%d: numeric overflow: %q does not fit in 32 bits", e.Line, e.Col, e.Literal)
}
