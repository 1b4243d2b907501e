package refactor

import (
	"testing"

	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/workspace/config"
)

func TestPatternMatcher_FindMatches(t *testing.T) {
	src := "result = d.get(key, None)\nother = d.get(other_key, None)\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		t.Fatalf("ResourceToModule: %v", err)
	}

	rule := config.ClusterRule{
		Name:    "dict-get-none",
		Pattern: "${obj}.get(${key}, None)",
		Goal:    "${obj}[${key}]",
	}
	matcher := NewPatternMatcher(parser.Lenient)
	matches, err := matcher.FindMatches(mod.AST, src, rule)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].Replacement != "d[key]" {
		t.Fatalf("matches[0].Replacement = %q, want %q", matches[0].Replacement, "d[key]")
	}
	if matches[1].Replacement != "d[other_key]" {
		t.Fatalf("matches[1].Replacement = %q, want %q", matches[1].Replacement, "d[other_key]")
	}
}
