package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/workspace/config"
)

// fileTimeAfter returns a timestamp safely after p's current mtime,
// tolerating filesystems with coarse (e.g. 1s) mtime resolution.
func fileTimeAfter(t *testing.T, p string) time.Time {
	t.Helper()
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	return info.ModTime().Add(2 * time.Second)
}

func newTestWorkspace(t *testing.T, files map[string]string) (*Workspace, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	cfg, err := config.ParseConfig([]byte("source_roots: [\".\"]\n"), filepath.Join(dir, ".corerope.yml"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	return New(cfg, dir), dir
}

func TestResourceToModule_CachesByMtime(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"mod.py": "x = 1\n",
	})
	p := filepath.Join(dir, "mod.py")

	m1, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}
	m2, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule (cached): %v", err)
	}
	if m1 != m2 {
		t.Fatalf("expected the cached module to be returned unchanged")
	}
}

func TestResourceToModule_ReloadsOnChange(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"mod.py": "x = 1\n",
	})
	p := filepath.Join(dir, "mod.py")

	m1, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}

	// Force a distinct mtime (some filesystems have 1s mtime resolution).
	later := fileTimeAfter(t, p)
	if err := os.WriteFile(p, []byte("x = 2\ny = 3\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := os.Chtimes(p, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	m2, err := w.ResourceToModule(p)
	if err != nil {
		t.Fatalf("ResourceToModule (after change): %v", err)
	}
	if m1 == m2 {
		t.Fatalf("expected a distinct Module after the file changed")
	}
	if m2.Version != m1.Version+1 {
		t.Fatalf("Version = %d, want %d", m2.Version, m1.Version+1)
	}
}

func TestModule_ResolvesPackageWithInit(t *testing.T) {
	w, _ := newTestWorkspace(t, map[string]string{
		"pkg/__init__.py": "VALUE = 1\n",
		"pkg/sub.py":      "pass\n",
	})
	ent, err := w.Module("pkg", "")
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	pkg, ok := ent.(*object.Package)
	if !ok {
		t.Fatalf("Module(%q) = %T, want *object.Package", "pkg", ent)
	}
	if pkg.InitModule == nil {
		t.Fatalf("expected InitModule to be populated from __init__.py")
	}
	if _, ok := pkg.Children["sub"]; !ok {
		t.Fatalf("expected pkg.Children to list %q, got %v", "sub", pkg.Children)
	}
}

func TestModule_ResolvesLeafModule(t *testing.T) {
	w, _ := newTestWorkspace(t, map[string]string{
		"flat.py": "pass\n",
	})
	ent, err := w.Module("flat", "")
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	if _, ok := ent.(*object.Module); !ok {
		t.Fatalf("Module(%q) = %T, want *object.Module", "flat", ent)
	}
}

func TestEnumerate_SkipsDotAndPycacheDirs(t *testing.T) {
	w, dir := newTestWorkspace(t, map[string]string{
		"a.py":                "pass\n",
		"sub/b.py":             "pass\n",
		".hidden/c.py":         "pass\n",
		"__pycache__/cache.py": "pass\n",
	})
	got, err := w.Enumerate()
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := map[string]bool{
		filepath.Join(dir, "a.py"):     true,
		filepath.Join(dir, "sub/b.py"): true,
	}
	if len(got) != len(want) {
		t.Fatalf("Enumerate() = %v, want exactly %v", got, want)
	}
	for _, p := range got {
		if !want[p] {
			t.Fatalf("Enumerate() included unexpected resource %s", p)
		}
	}
}
