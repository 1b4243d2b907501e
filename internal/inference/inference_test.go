package inference

import (
	"testing"

	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/scope"
)

func buildModule(t *testing.T, src string) *object.Module {
	t.Helper()
	mod, err := parser.Parse("test.py", src, parser.Strict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sc := scope.Build(mod)
	return &object.Module{Resource: "test.py", AST: mod, Scope: sc, Version: 1}
}

func TestLiteralInference(t *testing.T) {
	m := buildModule(t, "x = 1\ny = 'a'\nz = True\n")
	inf := New(nil)
	inf.Register(m)

	cases := map[string]object.BuiltinKind{"x": object.BuiltinInt, "y": object.BuiltinString, "z": object.BuiltinBool}
	for name, want := range cases {
		n, _ := m.Scope.Local(name)
		ent := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
		b, ok := ent.(*object.Builtin)
		if !ok || b.BKind != want {
			t.Fatalf("%s: got %#v, want builtin kind %v", name, ent, want)
		}
	}
}

func TestAssignmentAccumulationUnion(t *testing.T) {
	m := buildModule(t, "x = 1\nx = 'a'\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("x")
	ent := inf.inferAssigned(n, m)
	u, ok := ent.(*object.Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("x = %#v, want a 2-member union", ent)
	}
}

func TestClassInstantiationAndAttribute(t *testing.T) {
	m := buildModule(t, "class C:\n    def __init__(self):\n        self.x = 1\n\nc = C()\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("c")
	ent := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
	inst, ok := ent.(*object.Instance)
	if !ok {
		t.Fatalf("c = %#v, want *object.Instance", ent)
	}
	if inst.Class.Def.Name.Name != "C" {
		t.Fatalf("instance class = %q", inst.Class.Def.Name.Name)
	}
}

func TestFunctionReturnInference(t *testing.T) {
	m := buildModule(t, "def f():\n    return 1\n\ny = f()\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("y")
	ent := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
	b, ok := ent.(*object.Builtin)
	if !ok || b.BKind != object.BuiltinInt {
		t.Fatalf("y = %#v, want int", ent)
	}
}

func TestListElementAndIterationInference(t *testing.T) {
	m := buildModule(t, "xs = [1, 2, 3]\nfor v in xs:\n    pass\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("xs")
	listEnt := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
	lb, ok := listEnt.(*object.Builtin)
	if !ok || lb.BKind != object.BuiltinList {
		t.Fatalf("xs = %#v", listEnt)
	}
	elemEnt, ok := lb.Element.(*object.Builtin)
	if !ok || elemEnt.BKind != object.BuiltinInt {
		t.Fatalf("xs element = %#v, want int", lb.Element)
	}

	vName, _ := m.Scope.Local("v")
	vEnt := inf.inferAssigned(vName, m)
	vb, ok := vEnt.(*object.Builtin)
	if !ok || vb.BKind != object.BuiltinInt {
		t.Fatalf("v = %#v, want int (iteration element)", vEnt)
	}
}

func TestTupleDestructuringInference(t *testing.T) {
	m := buildModule(t, "pair = (1, 'a')\na, b = pair\n")
	inf := New(nil)
	inf.Register(m)
	aName, _ := m.Scope.Local("a")
	bName, _ := m.Scope.Local("b")
	aEnt := inf.inferAssigned(aName, m)
	bEnt := inf.inferAssigned(bName, m)

	ab, ok := aEnt.(*object.Builtin)
	if !ok || ab.BKind != object.BuiltinInt {
		t.Fatalf("a = %#v, want int", aEnt)
	}
	bb, ok := bEnt.(*object.Builtin)
	if !ok || bb.BKind != object.BuiltinString {
		t.Fatalf("b = %#v, want str", bEnt)
	}
}

func TestRecursiveFunctionTerminates(t *testing.T) {
	m := buildModule(t, "def f(n):\n    return f(n)\n\ny = f(1)\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("y")
	ent := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
	if ent != object.Unknown {
		t.Fatalf("recursive call should bottom out at Unknown, got %#v", ent)
	}
}

func TestListComprehensionBindsTarget(t *testing.T) {
	m := buildModule(t, "xs = [1, 2, 3]\nys = [x for x in xs]\n")
	inf := New(nil)
	inf.Register(m)
	n, _ := m.Scope.Local("ys")
	ent := inf.InferAt(n.Assignments[0].Value, m.Scope, m)
	b, ok := ent.(*object.Builtin)
	if !ok || b.BKind != object.BuiltinList {
		t.Fatalf("ys = %#v", ent)
	}
	elem, ok := b.Element.(*object.Builtin)
	if !ok || elem.BKind != object.BuiltinInt {
		t.Fatalf("ys element = %#v, want int", b.Element)
	}
}

func TestImportedModuleAttribute(t *testing.T) {
	dep := buildModule(t, "def helper():\n    return 1\n")
	dep.Dotted = "dep"
	main := buildModule(t, "import dep\nz = dep.helper()\n")

	loader := loaderFunc(func(dotted string) (*object.Module, bool) {
		if dotted == "dep" {
			return dep, true
		}
		return nil, false
	})
	inf := New(loader)
	inf.Register(main)

	n, _ := main.Scope.Local("z")
	ent := inf.InferAt(n.Assignments[0].Value, main.Scope, main)
	b, ok := ent.(*object.Builtin)
	if !ok || b.BKind != object.BuiltinInt {
		t.Fatalf("z = %#v, want int", ent)
	}
}

type loaderFunc func(string) (*object.Module, bool)

func (f loaderFunc) LoadModule(dotted string) (*object.Module, bool) { return f(dotted) }

func (f loaderFunc) LoadRelativeModule(fromResource, fromDotted string, level int, module string) (*object.Module, bool) {
	return nil, false
}
