package workspace

import (
	"path/filepath"
	"testing"

	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/textual"
	"github.com/corerope/corerope/internal/tracer"
)

func TestIngestHint_FeedsReturnEvidence(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"mod.py": "def double(n):\n    return n + n\n",
	})
	p := filepath.Join(dir, "mod.py")

	mod, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}
	fnName := mod.Scope.Names["double"]
	fn, ok := w.Inferer.EntityForName(fnName, mod).(*object.Function)
	if !ok {
		t.Fatalf("expected double to resolve to a Function")
	}
	calleeLine := textual.Encode(textual.EntityToTuple(fn, w.DottedNameOf))

	w.IngestHint(tracer.Hint{
		Callee: calleeLine,
		Args:   []string{textual.Encode(textual.EntityToTuple(&object.Builtin{BKind: object.BuiltinInt}, w.DottedNameOf))},
		Return: textual.Encode(textual.EntityToTuple(&object.Builtin{BKind: object.BuiltinInt}, w.DottedNameOf)),
	})

	ret := w.evidence.returnsFor(fn.Scope)
	if len(ret) != 1 {
		t.Fatalf("returnsFor = %v, want exactly one observed return", ret)
	}
	b, ok := ret[0].(*object.Builtin)
	if !ok || b.BKind != object.BuiltinInt {
		t.Fatalf("observed return = %#v, want an int Builtin", ret[0])
	}
}

func TestIngestHint_DiscardsUnresolvableCallee(t *testing.T) {
	w, _ := newTestWorkspace(t, map[string]string{
		"mod.py": "x = 1\n",
	})
	w.IngestHint(tracer.Hint{Callee: `unknown`, Args: []string{"unknown"}})
	// No panic, and nothing recorded anywhere observable; the test's only
	// assertion is that this doesn't crash on a nonexistent callee.
}
