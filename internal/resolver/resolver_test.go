package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	mustWrite("top.py", "x = 1\n")
	mustWrite(filepath.Join("pkg", "__init__.py"), "")
	mustWrite(filepath.Join("pkg", "sub.py"), "y = 2\n")
	mustWrite(filepath.Join("pkg", "nested", "__init__.py"), "")
	mustWrite(filepath.Join("pkg", "nested", "leaf.py"), "z = 3\n")
	return root
}

func TestResolveLeafModule(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	res, err := r.Resolve("top")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.IsPackage {
		t.Fatalf("top.py should not be a package")
	}
	if res.Path != filepath.Join(root, "top.py") {
		t.Fatalf("Path = %q", res.Path)
	}
}

func TestResolvePackage(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	res, err := r.Resolve("pkg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.IsPackage {
		t.Fatalf("pkg should be a package")
	}
}

func TestResolveDottedSubmodule(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	res, err := r.Resolve("pkg.sub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Path != filepath.Join(root, "pkg", "sub.py") {
		t.Fatalf("Path = %q", res.Path)
	}
}

func TestResolveMissingModule(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	_, err := r.Resolve("nope")
	if _, ok := err.(*ModuleNotFoundError); !ok {
		t.Fatalf("err = %v, want *ModuleNotFoundError", err)
	}
}

func TestResolveRelativeSibling(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	// from `pkg.sub`, `from . import nested` is level=1 relative to
	// package `pkg` (sub.py's own package).
	res, err := r.ResolveRelative("pkg", 1, "nested")
	if err != nil {
		t.Fatalf("ResolveRelative: %v", err)
	}
	if !res.IsPackage {
		t.Fatalf("pkg.nested should be a package")
	}
}

func TestResolveRelativeParent(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	// from `pkg.nested.leaf`'s package `pkg.nested`, level=2 strips one
	// component to reach `pkg`.
	res, err := r.ResolveRelative("pkg.nested", 2, "sub")
	if err != nil {
		t.Fatalf("ResolveRelative: %v", err)
	}
	if res.Path != filepath.Join(root, "pkg", "sub.py") {
		t.Fatalf("Path = %q", res.Path)
	}
}

func TestPathToModule(t *testing.T) {
	root := newTestRoot(t)
	r := New([]string{root})
	name, ok := r.PathToModule(filepath.Join(root, "pkg", "sub.py"))
	if !ok || name != "pkg.sub" {
		t.Fatalf("name = %q, ok = %v", name, ok)
	}
	initName, ok := r.PathToModule(filepath.Join(root, "pkg", "__init__.py"))
	if !ok || initName != "pkg" {
		t.Fatalf("initName = %q, ok = %v", initName, ok)
	}
}
