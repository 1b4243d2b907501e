package refactor

import "testing"

func TestIntroduceFactory_RewritesCallSitesAndAddsMethod(t *testing.T) {
	src := "class Widget:\n    def __init__(self):\n        pass\n\ndef build():\n    return Widget()\n"
	w, dir := newTestWorkspace(t, map[string]string{"mod.py": src})
	resource := dir + "/mod.py"

	offset := offsetOf(t, src, "Widget:")
	plan, err := IntroduceFactory(w, resource, offset, "", nil)
	if err != nil {
		t.Fatalf("IntroduceFactory: %v", err)
	}
	if plan.ClassName != "Widget" {
		t.Fatalf("ClassName = %q, want %q", plan.ClassName, "Widget")
	}
	if plan.FactoryName != "create" {
		t.Fatalf("FactoryName = %q, want %q", plan.FactoryName, "create")
	}
	if len(plan.CallSites) != 1 {
		t.Fatalf("len(CallSites) = %d, want 1", len(plan.CallSites))
	}
	if plan.CallSites[0].Replacement != ".create" {
		t.Fatalf("CallSites[0].Replacement = %q, want %q", plan.CallSites[0].Replacement, ".create")
	}
}
