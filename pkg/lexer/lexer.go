package lexer

import (
	"strconv"
	"strings"

	"github.com/vic/ivm/pkg/values"
)

// Lexer turns `.iv` source text into a flat token stream. Comments (`//`
// to end of line, nesting `/* ... */`) and whitespace are consumed
// silently (spec.md §6.1).
type Lexer struct {
	src        []rune
	pos        int
	line, col  int
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for l.pos < len(l.src) {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			l.advance()
		case r == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			depth := 1
			for depth > 0 {
				if l.pos >= len(l.src) {
					return &SyntaxError{Line: line, Col: col, Msg: "unterminated block comment"}
				}
				if l.peek() == '/' && l.peekAt(1) == '*' {
					l.advance()
					l.advance()
					depth++
					continue
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					depth--
					continue
				}
				l.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Tokenize returns the full token stream for src, ending with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if l.pos >= len(l.src) {
			toks = append(toks, Token{Kind: EOF, Line: l.line, Col: l.col})
			return toks, nil
		}
		line, col := l.line, l.col
		r := l.peek()
		switch {
		case r == ':' && l.peekAt(1) == ':':
			tok, err := l.lexPath(line, col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case r == '+' || r == '-':
			tok, err := l.lexSignedNumber(line, col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isDigit(r):
			tok, err := l.lexUnsignedNumber(line, col)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isIdentStart(r):
			toks = append(toks, l.lexIdent(line, col))
		case r == '(':
			l.advance()
			toks = append(toks, Token{Kind: LParen, Text: "(", Line: line, Col: col})
		case r == ')':
			l.advance()
			toks = append(toks, Token{Kind: RParen, Text: ")", Line: line, Col: col})
		case r == '{':
			l.advance()
			toks = append(toks, Token{Kind: LBrace, Text: "{", Line: line, Col: col})
		case r == '}':
			l.advance()
			toks = append(toks, Token{Kind: RBrace, Text: "}", Line: line, Col: col})
		case r == '[':
			l.advance()
			toks = append(toks, Token{Kind: LBracket, Text: "[", Line: line, Col: col})
		case r == ']':
			l.advance()
			toks = append(toks, Token{Kind: RBracket, Text: "]", Line: line, Col: col})
		case r == '=':
			l.advance()
			toks = append(toks, Token{Kind: Equals, Text: "=", Line: line, Col: col})
		case r == '@':
			l.advance()
			toks = append(toks, Token{Kind: At, Text: "@", Line: line, Col: col})
		case r == '?':
			l.advance()
			toks = append(toks, Token{Kind: Question, Text: "?", Line: line, Col: col})
		case r == '#':
			l.advance()
			toks = append(toks, Token{Kind: Hash, Text: "#", Line: line, Col: col})
		case r == '$':
			l.advance()
			toks = append(toks, Token{Kind: Dollar, Text: "$", Line: line, Col: col})
		default:
			return nil, &SyntaxError{Line: line, Col: col, Msg: "unexpected character " + strconv.QuoteRune(r)}
		}
	}
}

func (l *Lexer) lexPath(line, col int) (Token, error) {
	var b strings.Builder
	for l.peek() == ':' && l.peekAt(1) == ':' {
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
		if !isIdentStart(l.peek()) {
			return Token{}, &SyntaxError{Line: l.line, Col: l.col, Msg: "expected identifier after '::'"}
		}
		for isIdentCont(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	return Token{Kind: Path, Text: b.String(), Line: line, Col: col}, nil
}

func (l *Lexer) lexIdent(line, col int) Token {
	var b strings.Builder
	for isIdentCont(l.peek()) {
		b.WriteRune(l.advance())
	}
	return Token{Kind: Ident, Text: b.String(), Line: line, Col: col}
}

// lexUnsignedNumber lexes an n32 literal: decimal, or 0b/0o/0x radix
// prefixed, with underscores allowed as separators (spec.md §6.1, §8).
func (l *Lexer) lexUnsignedNumber(line, col int) (Token, error) {
	var b strings.Builder
	base := 10
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		base = 16
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
	} else if l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		base = 8
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
	} else if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		base = 2
		b.WriteRune(l.advance())
		b.WriteRune(l.advance())
	}
	for isDigit(l.peek()) || isHexDigit(l.peek()) || l.peek() == '_' {
		b.WriteRune(l.advance())
	}
	text := b.String()
	digits := strings.ReplaceAll(text, "_", "")
	if base != 10 {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return Token{}, &NumericOverflowError{Line: line, Col: col, Literal: text}
	}
	return Token{Kind: N32Literal, Text: text, N32: values.N32(v), Line: line, Col: col}, nil
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// lexSignedNumber lexes an f32 literal: a sign prefix followed by digits
// containing a '.' (spec.md §6.1).
func (l *Lexer) lexSignedNumber(line, col int) (Token, error) {
	var b strings.Builder
	b.WriteRune(l.advance()) // sign
	for isDigit(l.peek()) || l.peek() == '.' || l.peek() == 'e' || l.peek() == 'E' ||
		((l.peek() == '+' || l.peek() == '-') && (l.peekAt(-1) == 'e' || l.peekAt(-1) == 'E')) {
		b.WriteRune(l.advance())
	}
	text := b.String()
	if !strings.Contains(text, ".") {
		return Token{}, &SyntaxError{Line: line, Col: col, Msg: "signed literal without '.' is not a valid f32: " + text}
	}
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return Token{}, &SyntaxError{Line: line, Col: col, Msg: "invalid f32 literal: " + text}
	}
	return Token{Kind: F32Literal, Text: text, F32: values.F32(f), Line: line, Col: col}, nil
}
