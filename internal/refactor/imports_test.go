package refactor

import "testing"

func TestFindUnusedImports(t *testing.T) {
	src := "import os\nimport sys\n\nprint(os.getcwd())\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}

	imports := ImportsOf(mod.AST, w.Resolver, mod.Resource, mod.Dotted)
	if len(imports) != 2 {
		t.Fatalf("len(imports) = %d, want 2", len(imports))
	}

	unused := FindUnusedImports(mod.AST, mod.Scope, imports)
	if len(unused) != 1 {
		t.Fatalf("len(unused) = %d, want 1", len(unused))
	}
	if unused[0].Name != "sys" {
		t.Fatalf("unused[0].Name = %q, want %q", unused[0].Name, "sys")
	}
}
