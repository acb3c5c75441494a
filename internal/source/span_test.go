package source

import "testing"

func TestIndexPosition(t *testing.T) {
	src := "let x = 1;\nlet é = 'a';\n"
	idx := NewIndex("main.gk", src)

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{10, 1, 11},
		{11, 2, 1},
		{15, 2, 5},
		{17, 2, 6}, // é is two bytes wide but one column
		{len(src), 3, 1},
		{len(src) + 10, 3, 1},
	}

	for i, tt := range tests {
		pos := idx.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Fatalf("tests[%d] - offset %d: expected %d:%d, got %d:%d",
				i, tt.offset, tt.line, tt.column, pos.Line, pos.Column)
		}
	}
}

func TestIndexSpan(t *testing.T) {
	idx := NewIndex("main.gk", "a + b\n")

	span := idx.Span(0, 5)
	if span.Filename != "main.gk" {
		t.Fatalf("expected filename main.gk, got %q", span.Filename)
	}
	if span.Start.Column != 1 || span.End.Column != 6 {
		t.Fatalf("unexpected span %+v", span)
	}
	if span.Len() != 5 {
		t.Fatalf("expected length 5, got %d", span.Len())
	}

	reversed := idx.Span(4, 2)
	if reversed.Start.Offset != 4 || reversed.End.Offset != 4 {
		t.Fatalf("expected collapsed span, got %+v", reversed)
	}
}

func TestMerge(t *testing.T) {
	idx := NewIndex("", "alpha beta gamma")
	left := idx.Span(0, 5)
	right := idx.Span(11, 16)

	for _, merged := range []Span{Merge(left, right), Merge(right, left)} {
		if merged.Start.Offset != 0 || merged.End.Offset != 16 {
			t.Fatalf("expected 0..16, got %d..%d", merged.Start.Offset, merged.End.Offset)
		}
	}

	if got := Merge(Span{}, right); got != right {
		t.Fatalf("merging with an invalid span should return the other span")
	}
}

func TestIndexLine(t *testing.T) {
	idx := NewIndex("", "first\r\nsecond\nthird")

	if got := idx.Line(1); got != "first" {
		t.Fatalf("line 1: got %q", got)
	}
	if got := idx.Line(2); got != "second" {
		t.Fatalf("line 2: got %q", got)
	}
	if got := idx.Line(3); got != "third" {
		t.Fatalf("line 3: got %q", got)
	}
	if got := idx.Line(4); got != "" {
		t.Fatalf("line 4: got %q", got)
	}
	if idx.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", idx.LineCount())
	}
}
