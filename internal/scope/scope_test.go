package scope

import (
	"testing"

	"github.com/corerope/corerope/internal/parser"
)

func buildFromSource(t *testing.T, src string) *Scope {
	t.Helper()
	mod, err := parser.Parse("test.py", src, parser.Strict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return Build(mod)
}

func TestModuleLevelAssignment(t *testing.T) {
	root := buildFromSource(t, "x = 1\nx = 2\n")
	n, ok := root.Local("x")
	if !ok || n.Kind != AssignedNameKind {
		t.Fatalf("x = %#v", n)
	}
	if len(n.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2 (accumulation)", len(n.Assignments))
	}
}

func TestFunctionParametersAndVararg(t *testing.T) {
	root := buildFromSource(t, "def f(a, b=1, *args, **kwargs):\n    return a\n")
	fnName, ok := root.Local("f")
	if !ok || fnName.Kind != DefinedNameKind {
		t.Fatalf("f = %#v", fnName)
	}
	fnScope := root.Children[0]
	if fnScope.Kind != FunctionScope {
		t.Fatalf("kind = %v", fnScope.Kind)
	}
	a, ok := fnScope.Local("a")
	if !ok || a.Kind != ParameterNameKind || a.ParamIndex != 0 {
		t.Fatalf("a = %#v", a)
	}
	args, ok := fnScope.Local("args")
	if !ok || !args.IsVararg {
		t.Fatalf("args = %#v", args)
	}
	kwargs, ok := fnScope.Local("kwargs")
	if !ok || !kwargs.IsKwarg {
		t.Fatalf("kwargs = %#v", kwargs)
	}
}

func TestSelfAttributeBindsOnClassScope(t *testing.T) {
	src := "class C:\n    def __init__(self):\n        self.x = 1\n        y.x = 2\n"
	root := buildFromSource(t, src)
	clsScope := root.Children[0]
	if clsScope.Kind != ClassScope {
		t.Fatalf("kind = %v", clsScope.Kind)
	}
	x, ok := clsScope.Local("x")
	if !ok || x.Kind != AssignedNameKind {
		t.Fatalf("x = %#v, want instance attribute bound on class scope", x)
	}
	if len(x.Assignments) != 1 {
		t.Fatalf("assignments = %d, want 1 (y.x doesn't count)", len(x.Assignments))
	}
}

func TestClosureLookupSkipsClassScope(t *testing.T) {
	src := "name = 'outer'\n" +
		"class C:\n" +
		"    name = 'class'\n" +
		"    def method(self):\n" +
		"        return name\n"
	root := buildFromSource(t, src)
	clsScope := root.Children[0]
	methodScope := clsScope.Children[0]

	n, ok := Lookup(methodScope, "name")
	if !ok {
		t.Fatalf("lookup failed")
	}
	if n.Owner != root {
		t.Fatalf("lookup resolved to %v scope, want module (class scope must be skipped)", n.Owner.Kind)
	}

	n2, ok := Lookup(clsScope, "name")
	if !ok || n2.Owner != clsScope {
		t.Fatalf("lookup from inside the class body itself should see its own binding, got %#v", n2)
	}
}

func TestGlobalReroutesToModuleScope(t *testing.T) {
	src := "counter = 0\n" +
		"def bump():\n" +
		"    global counter\n" +
		"    counter = counter + 1\n"
	root := buildFromSource(t, src)
	fnScope := root.Children[0]
	if _, ok := fnScope.Local("counter"); ok {
		t.Fatalf("counter should not be bound locally in the function scope")
	}
	n, ok := root.Local("counter")
	if !ok || len(n.Assignments) != 2 {
		t.Fatalf("counter = %#v, want 2 accumulated assignments on module scope", n)
	}
}

func TestNonlocalReroutesToEnclosingFunction(t *testing.T) {
	src := "def outer():\n" +
		"    total = 0\n" +
		"    def inner():\n" +
		"        nonlocal total\n" +
		"        total = 1\n" +
		"    return inner\n"
	root := buildFromSource(t, src)
	outerScope := root.Children[0]
	innerScope := outerScope.Children[0]
	if _, ok := innerScope.Local("total"); ok {
		t.Fatalf("total should not be bound locally in inner")
	}
	n, ok := outerScope.Local("total")
	if !ok || len(n.Assignments) != 2 {
		t.Fatalf("total = %#v, want 2 accumulated assignments on outer", n)
	}
}

func TestImportBindings(t *testing.T) {
	src := "import os.path\nimport os.path as op\nfrom pkg import alpha as a\nfrom pkg import *\n"
	root := buildFromSource(t, src)

	osName, ok := root.Local("os")
	if !ok || osName.Kind != ImportedModuleKind || osName.ModulePath != "os" {
		t.Fatalf("os = %#v", osName)
	}
	opName, ok := root.Local("op")
	if !ok || opName.Kind != ImportedModuleKind || opName.ModulePath != "os.path" {
		t.Fatalf("op = %#v", opName)
	}
	aName, ok := root.Local("a")
	if !ok || aName.Kind != ImportedNameKind || aName.ImportedOriginal != "alpha" || aName.ImportedModule != "pkg" {
		t.Fatalf("a = %#v", aName)
	}
	if len(root.StarImports) != 1 || root.StarImports[0].Module != "pkg" {
		t.Fatalf("star imports = %#v", root.StarImports)
	}
}

func TestForLoopBindsIterationTarget(t *testing.T) {
	root := buildFromSource(t, "for i in items:\n    pass\n")
	n, ok := root.Local("i")
	if !ok || !n.Assignments[0].IsIteration {
		t.Fatalf("i = %#v, want IsIteration assignment", n)
	}
}

func TestTupleDestructuringPaths(t *testing.T) {
	root := buildFromSource(t, "a, (b, c) = pair\n")
	a, _ := root.Local("a")
	b, _ := root.Local("b")
	c, _ := root.Local("c")
	if got := a.Assignments[0].Path; len(got) != 1 || got[0] != 0 {
		t.Fatalf("a.Path = %v, want [0]", got)
	}
	if got := b.Assignments[0].Path; len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Fatalf("b.Path = %v, want [1 0]", got)
	}
	if got := c.Assignments[0].Path; len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Fatalf("c.Path = %v, want [1 1]", got)
	}
}

func TestExceptHandlerBinding(t *testing.T) {
	root := buildFromSource(t, "try:\n    risky()\nexcept ValueError as e:\n    handle(e)\n")
	n, ok := root.Local("e")
	if !ok || !n.Assignments[0].IsExceptBinding {
		t.Fatalf("e = %#v, want IsExceptBinding assignment", n)
	}
}

func TestFindInnerScopeForOffset(t *testing.T) {
	src := "x = 1\ndef f():\n    y = 2\n"
	root := buildFromSource(t, src)
	fnScope := root.Children[0]
	inner := root.FindInnerScopeForOffset(fnScope.StartPos + 1)
	if inner != fnScope {
		t.Fatalf("inner scope = %v, want function scope", inner.Kind)
	}
}
