package object

import (
	"testing"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/scope"
)

func buildModule(t *testing.T, src string) *Module {
	t.Helper()
	mod, err := parser.Parse("test.py", src, parser.Strict)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sc := scope.Build(mod)
	return &Module{Resource: "test.py", AST: mod, Scope: sc, Version: 1}
}

func findClassDef(mod *ast.Module, name string) *ast.ClassDef {
	for _, stmt := range mod.Body {
		if cd, ok := stmt.(*ast.ClassDef); ok && cd.Name.Name == name {
			return cd
		}
	}
	return nil
}

func newClass(m *Module, name string) *Class {
	def := findClassDef(m.AST, name)
	inner := m.Scope.FindInnerScopeForOffset(def.Pos() + 1)
	return &Class{Def: def, Scope: inner, Module: m}
}

func TestClassAttributeMergeOwnWins(t *testing.T) {
	m := buildModule(t, "class Base:\n    x = 1\nclass Sub(Base):\n    x = 2\n")
	base := newClass(m, "Base")
	sub := newClass(m, "Sub")
	sub.ResolveBase = func(e ast.Expression) Entity {
		if id, ok := e.(*ast.Identifier); ok && id.Name == "Base" {
			return base
		}
		return nil
	}
	attrs := sub.GetAttributes()
	n, ok := attrs["x"]
	if !ok {
		t.Fatalf("x not found")
	}
	if n.Owner != sub.Scope {
		t.Fatalf("x should resolve to Sub's own binding, not Base's")
	}
}

func TestClassAttributeMergeInherited(t *testing.T) {
	m := buildModule(t, "class Base:\n    y = 1\nclass Sub(Base):\n    x = 2\n")
	base := newClass(m, "Base")
	sub := newClass(m, "Sub")
	sub.ResolveBase = func(e ast.Expression) Entity { return base }
	attrs := sub.GetAttributes()
	if _, ok := attrs["y"]; !ok {
		t.Fatalf("y should be inherited from Base")
	}
}

func TestModuleAttributesIncludeStarImport(t *testing.T) {
	dep := buildModule(t, "helper = 1\n")
	main := buildModule(t, "from dep import *\n")
	main.StarImportResolver = func(ref scope.StarImportRef) (*Module, bool) {
		if ref.Module == "dep" {
			return dep, true
		}
		return nil, false
	}
	attrs := main.GetAttributes()
	if _, ok := attrs["helper"]; !ok {
		t.Fatalf("helper should be contributed by the star import")
	}
}

func TestFunctionGetParameter(t *testing.T) {
	m := buildModule(t, "def f(a, b):\n    return a\n")
	var fn *ast.FunctionDef
	for _, stmt := range m.AST.Body {
		if f, ok := stmt.(*ast.FunctionDef); ok {
			fn = f
		}
	}
	fnScope := m.Scope.FindInnerScopeForOffset(fn.Pos() + 1)
	f := &Function{Def: fn, Scope: fnScope, Module: m}
	p := f.GetParameter(1)
	if p == nil || p.Identifier != "b" || p.ParamIndex != 1 {
		t.Fatalf("param 1 = %#v", p)
	}
	if f.GetParameter(5) != nil {
		t.Fatalf("out-of-range parameter should be nil")
	}
}

func TestFunctionReturnMemoization(t *testing.T) {
	m := buildModule(t, "def f():\n    return 1\n")
	var fn *ast.FunctionDef
	for _, stmt := range m.AST.Body {
		if f, ok := stmt.(*ast.FunctionDef); ok {
			fn = f
		}
	}
	calls := 0
	f := &Function{Def: fn, Module: m, InferReturn: func(args []Entity) Entity {
		calls++
		return Unknown
	}}
	f.GetReturnedObject(nil, "()")
	f.GetReturnedObject(nil, "()")
	if calls != 1 {
		t.Fatalf("InferReturn called %d times, want 1 (memoized)", calls)
	}
	m.Version++
	f.GetReturnedObject(nil, "()")
	if calls != 2 {
		t.Fatalf("InferReturn called %d times after version bump, want 2", calls)
	}
}

func TestInstanceDelegatesAttributesToClass(t *testing.T) {
	m := buildModule(t, "class C:\n    x = 1\n")
	cls := newClass(m, "C")
	inst := &Instance{Class: cls}
	if inst.GetType() != Entity(cls) {
		t.Fatalf("instance type should be its class")
	}
	if _, ok := inst.GetAttributes()["x"]; !ok {
		t.Fatalf("instance should see class attributes")
	}
}
