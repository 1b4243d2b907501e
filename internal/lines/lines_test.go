package lines

import "testing"

func TestIndexBasic(t *testing.T) {
	src := "a = 1\nb = 2\nc = 3"
	ix := New(src)
	if got := ix.Length(); got != 3 {
		t.Fatalf("Length() = %d, want 3", got)
	}
	if got := ix.GetLine(2); got != "b = 2" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := ix.LineNumber(8); got != 2 {
		t.Fatalf("LineNumber(8) = %d, want 2", got)
	}
	if got := ix.LineNumber(0); got != 1 {
		t.Fatalf("LineNumber(0) = %d, want 1", got)
	}
	if got := ix.LineNumber(len(src) - 1); got != 3 {
		t.Fatalf("LineNumber(last) = %d, want 3", got)
	}
}

func TestIndexNoTrailingNewline(t *testing.T) {
	ix := New("x = 1")
	if ix.Length() != 1 {
		t.Fatalf("Length() = %d, want 1", ix.Length())
	}
	if ix.GetLine(1) != "x = 1" {
		t.Fatalf("GetLine(1) = %q", ix.GetLine(1))
	}
}

func TestLogicalLineOpenParen(t *testing.T) {
	src := "x = foo(1,\n        2,\n        3)\ny = 1"
	ix := New(src)
	llf := NewLogicalLineFinder(ix)
	start, end := llf.LogicalLineRange(2)
	if start != 1 || end != 3 {
		t.Fatalf("LogicalLineRange(2) = (%d, %d), want (1, 3)", start, end)
	}
	start, end = llf.LogicalLineRange(4)
	if start != 4 || end != 4 {
		t.Fatalf("LogicalLineRange(4) = (%d, %d), want (4, 4)", start, end)
	}
}

func TestLogicalLineBackslashContinuation(t *testing.T) {
	src := "x = 1 + \\\n    2\ny = 3"
	ix := New(src)
	llf := NewLogicalLineFinder(ix)
	start, end := llf.LogicalLineRange(2)
	if start != 1 || end != 2 {
		t.Fatalf("LogicalLineRange(2) = (%d, %d), want (1, 2)", start, end)
	}
}

func TestLogicalLineTripleQuoteSuspendsBrackets(t *testing.T) {
	src := "x = \"\"\"(\n(\n(\"\"\"\ny = 1"
	ix := New(src)
	llf := NewLogicalLineFinder(ix)
	start, end := llf.LogicalLineRange(1)
	if start != 1 || end != 3 {
		t.Fatalf("LogicalLineRange(1) = (%d, %d), want (1, 3)", start, end)
	}
}

func TestBlockRangeFinder(t *testing.T) {
	src := "def f():\n    x = 1\n    y = 2\nz = 3"
	ix := New(src)
	b := NewBlockRangeFinder(ix)
	if got := b.StatementStart(2); got != 1 {
		t.Fatalf("StatementStart(2) = %d, want 1", got)
	}
	if got := b.BlockEnd(1); got != 3 {
		t.Fatalf("BlockEnd(1) = %d, want 3", got)
	}
}
