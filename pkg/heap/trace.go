package heap

// Span is a (line, (colStart, colEnd)) source position, carried on ports and
// tree nodes so syntax errors and debugger tooltips can point back at the
// originating `.iv` text.
type Span struct {
	Line int
	Col  [2]int
}

// RowSpan covers a (possibly multi-line) range; HeadSpan is the first token.
type RowSpan struct {
	StartLine, EndLine int
	StartCol, EndCol   int
}

// Trace decorates a Port or Tree with its origin in source. Nil means
// synthesized (no source position), e.g. nodes created by commute/copy.
type Trace struct {
	Head Span
	Rows RowSpan
	// Net is the enclosing global's name; Source is its raw text lines.
	// pkg/parser sets only Head; Net and Source are left empty there.
	Net    string
	Source []string
}
