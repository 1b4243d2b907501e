package workspace

import (
	"path/filepath"
	"testing"

	"github.com/corerope/corerope/internal/object"
)

func TestScanCallSites_FeedsParameterEvidence(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"mod.py": "" +
			"def greet(name):\n" +
			"    return name\n" +
			"\n" +
			"greet(\"ada\")\n",
	})
	p := filepath.Join(dir, "mod.py")

	if err := w.ScanCallSites([]string{p}); err != nil {
		t.Fatalf("ScanCallSites: %v", err)
	}

	mod, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}
	fnName, ok := mod.Scope.Names["greet"]
	if !ok {
		t.Fatalf("expected module scope to bind %q", "greet")
	}
	fn, ok := w.Inferer.EntityForName(fnName, mod).(*object.Function)
	if !ok {
		t.Fatalf("expected greet to resolve to a Function")
	}
	paramName := fn.GetParameter(0)
	if paramName == nil {
		t.Fatalf("expected a parameter Name at index 0")
	}

	evidence := w.Inferer.EntityForName(paramName, mod)
	b, ok := evidence.(*object.Builtin)
	if !ok || b.BKind != object.BuiltinString {
		t.Fatalf("evidence for %q = %#v, want a str Builtin", "name", evidence)
	}
}

// TestScanCallSites_BuiltinMethodReturnsPropagate covers spec §8 scenario 2:
// once call-site evidence infers a parameter as str, a builtin method call
// on that parameter (a.upper()) must itself infer as str instead of
// degrading to Unknown, and that propagates through to the function's own
// return type.
func TestScanCallSites_BuiltinMethodReturnsPropagate(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"mod.py": "" +
			"def f(a):\n" +
			"    return a.upper()\n" +
			"\n" +
			"f(\"hi\")\n" +
			"result = f(\"hi\")\n",
	})
	p := filepath.Join(dir, "mod.py")

	if err := w.ScanCallSites([]string{p}); err != nil {
		t.Fatalf("ScanCallSites: %v", err)
	}

	mod, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}

	resultName, ok := mod.Scope.Names["result"]
	if !ok {
		t.Fatalf("expected module scope to bind %q", "result")
	}
	ent := w.Inferer.EntityForName(resultName, mod)
	b, ok := ent.(*object.Builtin)
	if !ok || b.BKind != object.BuiltinString {
		t.Fatalf("result = %#v, want a str Builtin (a.upper() on a str parameter)", ent)
	}
}
