package ast_test

import (
	"testing"

	"github.com/yaklabco/gojslint/pkg/ast"
)

func TestSourcePosition(t *testing.T) {
	t.Parallel()

	src := ast.NewSource("var a;\r\nfoo();\nbar")

	tests := []struct {
		name   string
		offset int
		want   ast.Position
	}{
		{"start", 0, ast.Position{Line: 1, Column: 1}},
		{"end of first line", 6, ast.Position{Line: 1, Column: 7}},
		{"after CRLF", 8, ast.Position{Line: 2, Column: 1}},
		{"third line", 15, ast.Position{Line: 3, Column: 1}},
		{"eof", 18, ast.Position{Line: 3, Column: 4}},
		{"past eof clamps", 99, ast.Position{Line: 3, Column: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := src.Position(tt.offset); got != tt.want {
				t.Errorf("Position(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestSourceLines(t *testing.T) {
	t.Parallel()

	src := ast.NewSource("a\nbb\r\n\nccc")
	if src.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", src.LineCount())
	}

	want := []string{"a", "bb", "", "ccc"}
	for idx, line := range src.Lines() {
		if line != want[idx] {
			t.Errorf("line %d = %q, want %q", idx+1, line, want[idx])
		}
	}

	if got := src.Offset(ast.Position{Line: 4, Column: 2}); got != 8 {
		t.Errorf("Offset(4:2) = %d, want 8", got)
	}
	if got := src.Offset(ast.Position{Line: 9, Column: 1}); got != -1 {
		t.Errorf("Offset(9:1) = %d, want -1", got)
	}
}

func TestSourceBounds(t *testing.T) {
	t.Parallel()

	src := ast.NewSource("abc")
	if !src.InBounds(ast.Range{Start: 3, End: 3}) {
		t.Error("empty range at eof should be in bounds")
	}
	if src.InBounds(ast.Range{Start: 2, End: 4}) {
		t.Error("range past eof should be out of bounds")
	}
	if src.InBounds(ast.Range{Start: 2, End: 1}) {
		t.Error("inverted range should be out of bounds")
	}
	if got := src.Slice(ast.Range{Start: 1, End: 10}); got != "bc" {
		t.Errorf("Slice clamped = %q, want %q", got, "bc")
	}
}

func TestRangeClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ast.Range
		want ast.Range
	}{
		{"inside", ast.Range{Start: 1, End: 2}, ast.Range{Start: 1, End: 2}},
		{"past end", ast.Range{Start: 50, End: 999}, ast.Range{Start: 2, End: 2}},
		{"negative", ast.Range{Start: -4, End: 1}, ast.Range{Start: 0, End: 1}},
		{"inverted", ast.Range{Start: 2, End: 1}, ast.Range{Start: 2, End: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.Clamp(2); got != tt.want {
				t.Errorf("Clamp(2) = %+v, want %+v", got, tt.want)
			}
		})
	}
}
