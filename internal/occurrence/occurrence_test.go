package occurrence

import (
	"testing"

	"github.com/corerope/corerope/internal/inference"
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/scope"
)

func buildResource(t *testing.T, resource, src string) ResourceModule {
	t.Helper()
	mod, err := parser.Parse(resource, src, parser.Strict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sc := scope.Build(mod)
	return ResourceModule{
		Resource: resource,
		Source:   src,
		Module:   &object.Module{Resource: resource, AST: mod, Scope: sc, Version: 1},
	}
}

func TestFindSimpleNameOccurrences(t *testing.T) {
	rm := buildResource(t, "a.py", "x = 1\nprint(x)\ny = x + 1\n")
	inf := inference.New(nil)
	inf.Register(rm.Module)

	name, _ := rm.Module.Scope.Local("x")
	target := Target{Name: name}
	finder := New(inf)

	got := finder.Find([]string{"x"}, target, []ResourceModule{rm}, Options{}, nil)
	if len(got) != 3 {
		t.Fatalf("got %d occurrences, want 3: %#v", len(got), got)
	}
	if !got[0].IsWritten {
		t.Fatalf("first occurrence should be the write site")
	}
	for _, o := range got[1:] {
		if o.IsWritten {
			t.Fatalf("occurrence %#v unexpectedly marked written", o)
		}
	}
}

func TestFindDoesNotMatchUnrelatedBinding(t *testing.T) {
	rm := buildResource(t, "a.py", "def f():\n    x = 1\n    return x\nx = 2\n")
	inf := inference.New(nil)
	inf.Register(rm.Module)

	moduleX, _ := rm.Module.Scope.Local("x")
	target := Target{Name: moduleX}
	finder := New(inf)

	got := finder.Find([]string{"x"}, target, []ResourceModule{rm}, Options{}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1 (only the module-level x)", len(got))
	}
	if got[0].StartOffset != 32 {
		t.Fatalf("StartOffset = %d, want 32 (module-level x, not the function-local x at 13 or 28)", got[0].StartOffset)
	}
}

func TestImportsFilterExcludesImportStatements(t *testing.T) {
	rm := buildResource(t, "a.py", "import os\nx = os\n")
	inf := inference.New(nil)
	inf.Register(rm.Module)

	name, _ := rm.Module.Scope.Local("os")
	target := Target{Name: name}
	finder := New(inf)

	withoutImports := finder.Find([]string{"os"}, target, []ResourceModule{rm}, Options{}, nil)
	if len(withoutImports) != 1 {
		t.Fatalf("got %d, want 1 (import line excluded)", len(withoutImports))
	}

	withImports := finder.Find([]string{"os"}, target, []ResourceModule{rm}, Options{Imports: true}, nil)
	if len(withImports) != 2 {
		t.Fatalf("got %d, want 2 (import line included)", len(withImports))
	}
}

func TestCancellationStopsBeforeLaterResources(t *testing.T) {
	rm1 := buildResource(t, "a.py", "x = 1\n")
	rm2 := buildResource(t, "b.py", "x = 2\n")
	inf := inference.New(nil)
	inf.Register(rm1.Module)
	inf.Register(rm2.Module)

	name, _ := rm1.Module.Scope.Local("x")
	target := Target{Name: name}
	finder := New(inf)

	calls := 0
	cancelled := func() bool {
		calls++
		return calls > 1
	}
	got := finder.Find([]string{"x"}, target, []ResourceModule{rm1, rm2}, Options{}, cancelled)
	if len(got) != 1 {
		t.Fatalf("got %d occurrences, want 1 (stopped after first resource)", len(got))
	}
}
