package refactor

// Change is one proposed textual edit against a resource's current text.
// Every planner in this package returns Changes (or a plan built from
// them); none of them write to disk — applying a plan is left to whatever
// editor/tool layer calls this package (spec §1 non-goal: change-set
// application).
type Change struct {
	Resource    string
	StartOffset int
	EndOffset   int
	Replacement string
}
