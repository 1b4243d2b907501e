package refactor

import (
	"testing"

	"github.com/corerope/corerope/internal/occurrence"
)

func TestRename_AllOccurrences(t *testing.T) {
	src := "x = 1\ny = x + x\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"

	offset := offsetOf(t, src, "x =")
	changes, err := Rename(w, resource, offset, "count", occurrence.Options{})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("len(changes) = %d, want 3 (one def + two reads)", len(changes))
	}
	for _, c := range changes {
		if c.Replacement != "count" {
			t.Fatalf("Replacement = %q, want %q", c.Replacement, "count")
		}
	}
}

// TestRename_ThroughAliasedImport covers spec §8 scenario 3: a rename
// started from the defining name must also touch every aliased import of
// it elsewhere, and a rename started from the alias itself must produce
// the very same occurrence set.
func TestRename_ThroughAliasedImport(t *testing.T) {
	pkgSrc := "def g():\n    return 1\n"
	consumerSrc := "from pkg import g as h\nh()\n"
	w, dir := newTestWorkspace(t, map[string]string{
		"pkg.py":      pkgSrc,
		"consumer.py": consumerSrc,
	})
	pkgResource := dir + "/pkg.py"
	consumerResource := dir + "/consumer.py"

	fromDef, err := Rename(w, pkgResource, offsetOf(t, pkgSrc, "g("), "gg", occurrence.Options{})
	if err != nil {
		t.Fatalf("Rename from definition: %v", err)
	}
	fromAlias, err := Rename(w, consumerResource, offsetOf(t, consumerSrc, "h()"), "gg", occurrence.Options{})
	if err != nil {
		t.Fatalf("Rename from aliased call site: %v", err)
	}

	wantResources := map[string]bool{pkgResource: false, consumerResource: false}
	for _, changes := range [][]Change{fromDef, fromAlias} {
		if len(changes) != 2 {
			t.Fatalf("len(changes) = %d, want 2 (def in pkg.py + call in consumer.py)", len(changes))
		}
		seen := map[string]bool{}
		for _, c := range changes {
			seen[c.Resource] = true
		}
		for res := range wantResources {
			if !seen[res] {
				t.Fatalf("changes %#v missing an occurrence in %s", changes, res)
			}
		}
	}
}
