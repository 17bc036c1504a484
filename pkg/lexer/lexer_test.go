package lexer

import "testing"

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

// 0xFFFFFFFF is the largest n32 literal that fits.
func TestN32LiteralMaxFits(t *testing.T) {
	toks := tokenize(t, "4294967295")
	if toks[0].Kind != N32Literal {
		t.Fatalf("expected N32Literal, got %s", toks[0].Kind)
	}
	if toks[0].N32 != 0xFFFFFFFF {
		t.Fatalf("got %d, want 0xFFFFFFFF", toks[0].N32)
	}
}

// One past the max (2^32) is a NumericOverflowError, not silent wraparound.
func TestN32LiteralOverflow(t *testing.T) {
	_, err := New("4294967296").Tokenize()
	if err == nil {
		t.Fatal("expected overflow error for 2^32")
	}
	if _, ok := err.(*NumericOverflowError); !ok {
		t.Fatalf("expected *NumericOverflowError, got %T (%v)", err, err)
	}
}

// Underscores are accepted as digit-group separators and stripped before
// parsing.
func TestN32LiteralUnderscoreSeparators(t *testing.T) {
	toks := tokenize(t, "1_000_000")
	if toks[0].N32 != 1000000 {
		t.Fatalf("got %d, want 1000000", toks[0].N32)
	}
}

// Hex, octal and binary radix prefixes all parse to the same value.
func TestN32LiteralRadixPrefixes(t *testing.T) {
	for _, src := range []string{"0x2A", "0o52", "0b101010"} {
		toks := tokenize(t, src)
		if toks[0].N32 != 42 {
			t.Fatalf("%s: got %d, want 42", src, toks[0].N32)
		}
	}
}

// A hex literal that overflows 32 bits is still rejected.
func TestN32LiteralHexOverflow(t *testing.T) {
	_, err := New("0x100000000").Tokenize()
	if err == nil {
		t.Fatal("expected overflow error for 0x100000000")
	}
}

// A signed literal without a decimal point is not a valid f32 (it would be
// ambiguous with a negative n32, which the grammar does not have).
func TestF32RequiresDecimalPoint(t *testing.T) {
	_, err := New("+5").Tokenize()
	if err == nil {
		t.Fatal("expected a syntax error for a signed literal with no '.'")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T (%v)", err, err)
	}
}

func TestF32LiteralValid(t *testing.T) {
	toks := tokenize(t, "+1.5")
	if toks[0].Kind != F32Literal {
		t.Fatalf("expected F32Literal, got %s", toks[0].Kind)
	}
	if toks[0].F32 != 1.5 {
		t.Fatalf("got %v, want 1.5", toks[0].F32)
	}
}

func TestF32LiteralNegative(t *testing.T) {
	toks := tokenize(t, "-2.25")
	if toks[0].F32 != -2.25 {
		t.Fatalf("got %v, want -2.25", toks[0].F32)
	}
}

// Comments, including nested block comments, are skipped entirely.
func TestCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "// line comment\n/* block /* nested */ still here */42")
	if len(toks) != 2 { // literal + EOF
		t.Fatalf("got %d tokens, want 2 (literal, EOF)", len(toks))
	}
	if toks[0].Kind != N32Literal || toks[0].N32 != 42 {
		t.Fatalf("expected literal 42 to survive comments, got %+v", toks[0])
	}
}

func TestUnterminatedBlockCommentIsSyntaxError(t *testing.T) {
	_, err := New("/* never closed").Tokenize()
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated block comment")
	}
}

// A path token greedily consumes every "::ident" segment.
func TestPathToken(t *testing.T) {
	toks := tokenize(t, "::a::b::c")
	if toks[0].Kind != Path || toks[0].Text != "::a::b::c" {
		t.Fatalf("got %+v", toks[0])
	}
}
