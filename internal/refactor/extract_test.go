package refactor

import (
	"strings"
	"testing"
)

func TestExtract_AsFunctionComputesParameters(t *testing.T) {
	src := "def total(items):\n    acc = 0\n    acc = acc + sum(items)\n    return acc\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}
	srcText, _ := w.Source(resource)

	start := offsetOf(t, src, "acc = acc + sum(items)")
	end := start + len("acc = acc + sum(items)\n")

	plan, err := Extract(srcText, mod.AST, mod.Scope, start, end, "accumulate", true)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(plan.Parameters) != 2 {
		t.Fatalf("Parameters = %v, want 2 entries (acc, items)", plan.Parameters)
	}
	if !strings.Contains(plan.Definition, "def accumulate(") {
		t.Fatalf("Definition = %q", plan.Definition)
	}
	if !strings.HasPrefix(plan.CallText, "accumulate(") {
		t.Fatalf("CallText = %q", plan.CallText)
	}
}

func TestExtract_RejectsEmptySelection(t *testing.T) {
	src := "x = 1\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}
	srcText, _ := w.Source(resource)

	if _, err := Extract(srcText, mod.AST, mod.Scope, 0, 0, "x", true); err == nil {
		t.Fatalf("expected a RefactoringPreconditionError for an empty selection")
	}
}
