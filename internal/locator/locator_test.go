package locator

import "testing"

func TestWordRange(t *testing.T) {
	src := "foo_bar = 1"
	l := New(src)
	start, end, err := l.WordRange(2)
	if err != nil {
		t.Fatalf("WordRange: %v", err)
	}
	if src[start:end] != "foo_bar" {
		t.Fatalf("word = %q, want foo_bar", src[start:end])
	}
}

func TestWordRangeOutOfRange(t *testing.T) {
	l := New("abc")
	if _, _, err := l.WordRange(100); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, _, err := l.WordRange(-1); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestPrimaryAtDottedChain(t *testing.T) {
	src := "result = obj.attr.method(1, 2).field"
	l := New(src)
	offset := len(src) // end of text, inside "field"
	primary, err := l.PrimaryAt(offset)
	if err != nil {
		t.Fatalf("PrimaryAt: %v", err)
	}
	if primary != "obj.attr.method(1, 2).field" {
		t.Fatalf("primary = %q", primary)
	}
}

func TestIsAssignmentTarget(t *testing.T) {
	src := "x = 1\ny == 2\n"
	l := New(src)
	if !l.IsAssignmentTarget(1) {
		t.Fatalf("x should be an assignment target")
	}
	if l.IsAssignmentTarget(7) {
		t.Fatalf("y in `y == 2` should not be an assignment target")
	}
}

func TestIsClassOrFunctionHeaderName(t *testing.T) {
	src := "def foo():\n    pass\nclass Bar:\n    pass\n"
	l := New(src)
	if !l.IsClassOrFunctionHeaderName(5) {
		t.Fatalf("foo should be a header name")
	}
	if !l.IsClassOrFunctionHeaderName(27) {
		t.Fatalf("Bar should be a header name")
	}
}

func TestIsFunctionCall(t *testing.T) {
	src := "result = compute(1, 2)\n"
	l := New(src)
	if !l.IsFunctionCall(11) {
		t.Fatalf("compute should be recognized as a call")
	}
}

func TestFromImportClassification(t *testing.T) {
	src := "from pkg.mod import alpha, beta\n"
	l := New(src)
	moduleOffset := 6 // inside "pkg"
	if !l.IsFromImportModule(moduleOffset) {
		t.Fatalf("pkg.mod should classify as from-import module")
	}
	nameOffset := 21 // inside "alpha"
	if !l.IsFromImportName(nameOffset) {
		t.Fatalf("alpha should classify as from-import name")
	}
}
