package parser

import (
	"testing"

	"github.com/corerope/corerope/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := Parse("test.py", src, Strict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !mod.SyntaxOK {
		t.Fatalf("mod.SyntaxOK = false, ParseError = %v", mod.ParseError)
	}
	return mod
}

func TestParseSimpleAssignment(t *testing.T) {
	mod := mustParse(t, "x = 1\n")
	if len(mod.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(mod.Body))
	}
	assign, ok := mod.Body[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("Body[0] is %T, want *ast.AssignStatement", mod.Body[0])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("len(Targets) = %d, want 1", len(assign.Targets))
	}
	id, ok := assign.Targets[0].(*ast.Identifier)
	if !ok || id.Name != "x" {
		t.Fatalf("Targets[0] = %#v, want Identifier x", assign.Targets[0])
	}
}

func TestParseChainedAndTupleAssignment(t *testing.T) {
	mod := mustParse(t, "a = b = 1\nx, y = 1, 2\n")
	chain := mod.Body[0].(*ast.AssignStatement)
	if len(chain.Targets) != 2 {
		t.Fatalf("chained targets = %d, want 2", len(chain.Targets))
	}
	tup := mod.Body[1].(*ast.AssignStatement)
	target, ok := tup.Targets[0].(*ast.TupleExpr)
	if !ok || len(target.Elts) != 2 {
		t.Fatalf("tuple target = %#v", tup.Targets[0])
	}
	value, ok := tup.Value.(*ast.TupleExpr)
	if !ok || len(value.Elts) != 2 {
		t.Fatalf("tuple value = %#v", tup.Value)
	}
}

func TestParseFunctionDef(t *testing.T) {
	src := "def f(a, b=1, *args, **kwargs):\n    return a + b\n"
	mod := mustParse(t, src)
	fn := mod.Body[0].(*ast.FunctionDef)
	if fn.Name.Name != "f" {
		t.Fatalf("name = %q", fn.Name.Name)
	}
	if len(fn.Args.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Args.Params))
	}
	if fn.Args.Vararg == nil || fn.Args.Vararg.Name != "args" {
		t.Fatalf("vararg = %#v", fn.Args.Vararg)
	}
	if fn.Args.Kwarg == nil || fn.Args.Kwarg.Name != "kwargs" {
		t.Fatalf("kwarg = %#v", fn.Args.Kwarg)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("body = %d statements, want 1", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("body[0] = %T", fn.Body[0])
	}
	if _, ok := ret.Value.(*ast.BinOp); !ok {
		t.Fatalf("return value = %T", ret.Value)
	}
}

func TestParseClassWithBases(t *testing.T) {
	src := "class Foo(Base1, Base2):\n    def method(self):\n        pass\n"
	mod := mustParse(t, src)
	cls := mod.Body[0].(*ast.ClassDef)
	if cls.Name.Name != "Foo" {
		t.Fatalf("name = %q", cls.Name.Name)
	}
	if len(cls.Bases) != 2 {
		t.Fatalf("bases = %d, want 2", len(cls.Bases))
	}
	if len(cls.Body) != 1 {
		t.Fatalf("class body = %d, want 1", len(cls.Body))
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n"
	mod := mustParse(t, src)
	top := mod.Body[0].(*ast.IfStatement)
	if len(top.Orelse) != 1 {
		t.Fatalf("orelse = %d, want 1 (nested elif)", len(top.Orelse))
	}
	elif, ok := top.Orelse[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("orelse[0] = %T, want nested IfStatement", top.Orelse[0])
	}
	if len(elif.Orelse) != 1 {
		t.Fatalf("elif orelse = %d, want 1 (else body)", len(elif.Orelse))
	}
}

func TestParseForWhileWith(t *testing.T) {
	src := "for i in range(10):\n    pass\nwhile x:\n    pass\nwith open(p) as f:\n    pass\n"
	mod := mustParse(t, src)
	if _, ok := mod.Body[0].(*ast.ForStatement); !ok {
		t.Fatalf("body[0] = %T", mod.Body[0])
	}
	if _, ok := mod.Body[1].(*ast.WhileStatement); !ok {
		t.Fatalf("body[1] = %T", mod.Body[1])
	}
	with, ok := mod.Body[2].(*ast.WithStatement)
	if !ok {
		t.Fatalf("body[2] = %T", mod.Body[2])
	}
	if with.Items[0].OptionalVars == nil {
		t.Fatalf("with item has no `as` target")
	}
}

func TestParseTryExceptFinally(t *testing.T) {
	src := "try:\n    risky()\nexcept ValueError as e:\n    handle(e)\nexcept TypeError:\n    pass\nfinally:\n    cleanup()\n"
	mod := mustParse(t, src)
	tr := mod.Body[0].(*ast.TryStatement)
	if len(tr.Handlers) != 2 {
		t.Fatalf("handlers = %d, want 2", len(tr.Handlers))
	}
	if tr.Handlers[0].Name == nil || tr.Handlers[0].Name.Name != "e" {
		t.Fatalf("handler[0].Name = %#v", tr.Handlers[0].Name)
	}
	if len(tr.Finalbody) != 1 {
		t.Fatalf("finalbody = %d, want 1", len(tr.Finalbody))
	}
}

func TestParseImportsAndFromImports(t *testing.T) {
	src := "import os\nimport os.path as op\nfrom . import sibling\nfrom ..pkg import a, b as bb\nfrom mod import *\n"
	mod := mustParse(t, src)
	if len(mod.Body) != 5 {
		t.Fatalf("body = %d, want 5", len(mod.Body))
	}
	imp := mod.Body[1].(*ast.ImportStatement)
	if imp.Names[0].Name != "os.path" || imp.Names[0].AsName != "op" {
		t.Fatalf("imp = %#v", imp.Names[0])
	}
	rel := mod.Body[2].(*ast.FromImportStatement)
	if rel.Level != 1 || rel.Module != "" {
		t.Fatalf("rel = %#v", rel)
	}
	rel2 := mod.Body[3].(*ast.FromImportStatement)
	if rel2.Level != 2 || rel2.Module != "pkg" || len(rel2.Names) != 2 {
		t.Fatalf("rel2 = %#v", rel2)
	}
	star := mod.Body[4].(*ast.FromImportStatement)
	if !star.IsStar {
		t.Fatalf("star = %#v", star)
	}
}

func TestParseComprehensionsAndLambda(t *testing.T) {
	src := "squares = [x * x for x in range(10) if x % 2 == 0]\n" +
		"pairs = {k: v for k, v in items}\n" +
		"gen = (x for x in xs)\n" +
		"f = lambda x, y=1: x + y\n"
	mod := mustParse(t, src)
	lc := mod.Body[0].(*ast.AssignStatement).Value.(*ast.ListComp)
	if len(lc.Generators) != 1 || len(lc.Generators[0].Ifs) != 1 {
		t.Fatalf("listcomp = %#v", lc)
	}
	dc := mod.Body[1].(*ast.AssignStatement).Value.(*ast.DictComp)
	if _, ok := dc.Generators[0].Target.(*ast.TupleExpr); !ok {
		t.Fatalf("dictcomp target = %#v", dc.Generators[0].Target)
	}
	if _, ok := mod.Body[2].(*ast.AssignStatement).Value.(*ast.GeneratorExp); !ok {
		t.Fatalf("body[2] value not GeneratorExp")
	}
	lam := mod.Body[3].(*ast.AssignStatement).Value.(*ast.LambdaExpr)
	if len(lam.Args.Params) != 2 {
		t.Fatalf("lambda params = %d, want 2", len(lam.Args.Params))
	}
}

func TestParseStringLiteralsAndConcatenation(t *testing.T) {
	mod := mustParse(t, "s = 'a' 'b'\nt = \"\"\"triple\nquoted\"\"\"\n")
	s := mod.Body[0].(*ast.AssignStatement).Value.(*ast.StringLit)
	if s.Value != "ab" {
		t.Fatalf("s.Value = %q, want %q", s.Value, "ab")
	}
	tr := mod.Body[1].(*ast.AssignStatement).Value.(*ast.StringLit)
	if tr.Value != "triple\nquoted" {
		t.Fatalf("tr.Value = %q", tr.Value)
	}
}

func TestParseWalrusAndTernary(t *testing.T) {
	src := "if (n := compute()) > 0:\n    pass\ny = 1 if cond else 2\n"
	mod := mustParse(t, src)
	ifs := mod.Body[0].(*ast.IfStatement)
	cmp := ifs.Test.(*ast.Compare)
	if _, ok := cmp.Left.(*ast.NamedExpr); !ok {
		t.Fatalf("compare left = %T, want NamedExpr", cmp.Left)
	}
	ifexp := mod.Body[1].(*ast.AssignStatement).Value.(*ast.IfExp)
	if ifexp.Body.(*ast.NumberLit).Literal != "1" {
		t.Fatalf("ifexp body = %#v", ifexp.Body)
	}
}

func TestParseAttributeAndSubscriptAssignment(t *testing.T) {
	mod := mustParse(t, "obj.attr = 1\nd['k'] = 2\nd[1:2] = x\n")
	_, ok := mod.Body[0].(*ast.AssignStatement).Targets[0].(*ast.AttributeExpr)
	if !ok {
		t.Fatalf("target 0 not AttributeExpr")
	}
	_, ok = mod.Body[1].(*ast.AssignStatement).Targets[0].(*ast.SubscriptExpr)
	if !ok {
		t.Fatalf("target 1 not SubscriptExpr")
	}
	sub := mod.Body[2].(*ast.AssignStatement).Targets[0].(*ast.SubscriptExpr)
	if _, ok := sub.Index.(*ast.SliceExpr); !ok {
		t.Fatalf("target 2 index = %T, want SliceExpr", sub.Index)
	}
}

func TestParseDecoratedFunction(t *testing.T) {
	mod := mustParse(t, "@decorator\n@other.decorator(1)\ndef f():\n    pass\n")
	fn := mod.Body[0].(*ast.FunctionDef)
	if len(fn.Decorators) != 2 {
		t.Fatalf("decorators = %d, want 2", len(fn.Decorators))
	}
}

func TestLenientPolicyReturnsEmptyModuleOnSyntaxError(t *testing.T) {
	mod, err := Parse("bad.py", "def f(:\n    pass\n", Lenient)
	if err != nil {
		t.Fatalf("Lenient Parse returned error: %v", err)
	}
	if mod.SyntaxOK {
		t.Fatalf("SyntaxOK = true, want false")
	}
	if mod.ParseError == nil {
		t.Fatalf("ParseError = nil, want non-nil")
	}
}

func TestStrictPolicyReturnsSyntaxError(t *testing.T) {
	_, err := Parse("bad.py", "def f(:\n    pass\n", Strict)
	if err == nil {
		t.Fatalf("Strict Parse returned no error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("err = %T, want *SyntaxError", err)
	}
}
