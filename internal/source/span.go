// Package source tracks positions in gecko source text.
package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// LineColumn is a single position in a source file.
type LineColumn struct {
	Line   int // 1-based line number
	Column int // 1-based rune column
	Offset int // byte offset into the source
}

// Before reports whether lc comes strictly before other in source order.
func (lc LineColumn) Before(other LineColumn) bool {
	return lc.Offset < other.Offset
}

func (lc LineColumn) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// Span is a half-open range of source positions attached to every token and
// AST node. Start never comes after End.
type Span struct {
	Filename string
	Start    LineColumn
	End      LineColumn
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Start.Line > 0 && s.Start.Column > 0
}

// String returns a human-readable representation of the span start.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// Len returns the width of the span in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Merge returns a span covering both a and b. The earlier start and the later
// end win, so merging preserves monotonic growth regardless of argument order.
func Merge(a, b Span) Span {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}

	span := a
	if span.Filename == "" {
		span.Filename = b.Filename
	}
	if b.Start.Before(span.Start) {
		span.Start = b.Start
	}
	if span.End.Before(b.End) {
		span.End = b.End
	}
	return span
}

// Index converts byte offsets produced by the grammar engine into line and
// column positions.
type Index struct {
	filename   string
	src        string
	lineStarts []int
}

// NewIndex builds a line index over src.
func NewIndex(filename, src string) *Index {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{
		filename:   filename,
		src:        src,
		lineStarts: starts,
	}
}

// Filename returns the file name spans are attributed to.
func (x *Index) Filename() string { return x.filename }

// Source returns the indexed text.
func (x *Index) Source() string { return x.src }

// Position converts a byte offset into a LineColumn. Offsets outside the
// source are clamped.
func (x *Index) Position(offset int) LineColumn {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.src) {
		offset = len(x.src)
	}

	// Index of the last line start <= offset.
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1

	lineStart := x.lineStarts[line]
	return LineColumn{
		Line:   line + 1,
		Column: utf8.RuneCountInString(x.src[lineStart:offset]) + 1,
		Offset: offset,
	}
}

// Span converts a half-open byte range into a Span.
func (x *Index) Span(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{
		Filename: x.filename,
		Start:    x.Position(start),
		End:      x.Position(end),
	}
}

// Line returns the text of the 1-based line n without its terminator.
func (x *Index) Line(n int) string {
	if n < 1 || n > len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[n-1]
	end := len(x.src)
	if n < len(x.lineStarts) {
		end = x.lineStarts[n] - 1
	}
	if end > start && x.src[end-1] == '\r' {
		end--
	}
	return x.src[start:end]
}

// LineCount returns the number of lines in the source.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}
