package cache

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	records := []Record{
		{DottedName: "mod.Foo", ContentKey: "abc", TupleLine: `defined "a.py" "mod.Foo"`},
		{DottedName: "mod.bar", ContentKey: "abc", TupleLine: `builtin "int"`},
	}
	if err := s.Put("/abs/mod.py", records); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("/abs/mod.py")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

func TestPutReplacesPriorRecords(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("/abs/mod.py", []Record{{DottedName: "mod.Foo", ContentKey: "v1", TupleLine: "unknown"}}); err != nil {
		t.Fatalf("Put v1: %v", err)
	}
	if err := s.Put("/abs/mod.py", []Record{{DottedName: "mod.Foo", ContentKey: "v2", TupleLine: "none"}}); err != nil {
		t.Fatalf("Put v2: %v", err)
	}
	got, err := s.Get("/abs/mod.py")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 || got[0].ContentKey != "v2" {
		t.Fatalf("got %#v, want a single v2 record", got)
	}
}

func TestGetMissingModuleReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get("/abs/missing.py")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
}

func TestForget(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("/abs/mod.py", []Record{{DottedName: "mod.Foo", ContentKey: "v1", TupleLine: "unknown"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Forget("/abs/mod.py"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	got, err := s.Get("/abs/mod.py")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d records after Forget, want 0", len(got))
	}
}
