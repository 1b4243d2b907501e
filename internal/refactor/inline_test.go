package refactor

import "testing"

func TestInline_SingleAssignment(t *testing.T) {
	src := "value = compute()\nprint(value)\nprint(value + 1)\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"

	offset := offsetOf(t, src, "value =")
	plan, err := Inline(w, resource, offset)
	if err != nil {
		t.Fatalf("Inline: %v", err)
	}
	if plan.Name != "value" {
		t.Fatalf("Name = %q, want %q", plan.Name, "value")
	}
	if len(plan.Replace) != 2 {
		t.Fatalf("len(Replace) = %d, want 2", len(plan.Replace))
	}
	for _, c := range plan.Replace {
		if c.Replacement != "compute()" {
			t.Fatalf("Replacement = %q, want %q", c.Replacement, "compute()")
		}
	}
}

func TestInline_MultipleAssignmentsRejected(t *testing.T) {
	src := "value = 1\nvalue = 2\nprint(value)\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"

	offset := offsetOf(t, src, "value = 1")
	if _, err := Inline(w, resource, offset); err == nil {
		t.Fatalf("expected a RefactoringPreconditionError for a multiply-assigned variable")
	}
}
