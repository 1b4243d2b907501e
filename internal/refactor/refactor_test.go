package refactor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corerope/corerope/internal/workspace"
	"github.com/corerope/corerope/internal/workspace/config"
)

// newTestWorkspace mirrors internal/workspace's own test helper of the
// same name: a temp-dir project with the given files, backed by a
// single source root.
func newTestWorkspace(t *testing.T, files map[string]string) (*workspace.Workspace, string) {
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
	return workspace.New(cfg, dir), dir
}

func offsetOf(t *testing.T, src, substr string) int {
	t.Helper()
	i := strings.Index(src, substr)
	if i < 0 {
		t.Fatalf("substring %q not found in %q", substr, src)
	}
	return i
}
