package refactor

import (
	"github.com/corerope/corerope/internal/lines"
	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/scope"
	"github.com/corerope/corerope/internal/workspace"
)

// InlinePlan is the proposed change-set for replacing every read of a
// single-assignment variable with its value and removing the now-dead
// assignment, the inverse of Extract. Grounded on rope's inline.py
// restricted here to the single-assignment case (spec §7 lists the
// multiply-assigned case as a RefactoringPrecondition failure, mirroring
// rope's own refusal to inline an ambiguous binding).
type InlinePlan struct {
	Name    string
	Remove  Change   // deletes the assignment statement
	Replace []Change // one per read site, replacement is the assignment's value text
}

// Inline plans inlining the variable named at (resource, offset). It
// requires exactly one non-iteration, non-destructured assignment to that
// name; any other shape (multiple assignments, tuple-unpacking, a `for`/
// `with` binding) is a RefactoringPrecondition failure, since there is no
// single value to substitute at every read site.
func Inline(w *workspace.Workspace, resource string, offset int) (*InlinePlan, error) {
	name, err := w.PyNameAt(resource, offset)
	if err != nil {
		return nil, err
	}
	if name.Kind != scope.AssignedNameKind {
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "inline", Message: "offset is not on an assigned variable"}
	}
	if len(name.Assignments) != 1 {
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "inline", Message: "variable has more than one assignment"}
	}
	asn := name.Assignments[0]
	if asn.Path != nil || asn.IsIteration || asn.IsContextEnter || asn.IsExceptBinding {
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "inline", Message: "assignment is not a plain single-value binding"}
	}

	src, ok := w.Source(resource)
	if !ok {
		return nil, &workspace.ResourceNotFoundError{Resource: resource}
	}
	valueText := src[asn.Value.Pos():asn.Value.End()]

	ix := lines.New(src)
	block := lines.NewBlockRangeFinder(ix)
	valueLine := ix.LineNumber(asn.Value.Pos())
	stmtStartLine := block.StatementStart(valueLine)
	stmtEndLine := block.BlockEnd(valueLine)
	stmtStart := ix.LineStart(stmtStartLine)
	stmtEnd := ix.LineEnd(stmtEndLine)
	if stmtEnd > len(src) {
		stmtEnd = len(src)
	}

	occs, err := w.FindOccurrences(resource, offset, occurrence.Options{}, nil, nil)
	if err != nil {
		return nil, err
	}

	var replace []Change
	for _, o := range occs {
		if o.Resource == resource && o.StartOffset >= stmtStart && o.EndOffset <= stmtEnd {
			continue // the definition occurrence itself, removed rather than replaced
		}
		if o.IsWritten {
			return nil, &workspace.RefactoringPreconditionError{Refactoring: "inline", Message: "variable is reassigned elsewhere"}
		}
		replace = append(replace, Change{Resource: o.Resource, StartOffset: o.StartOffset, EndOffset: o.EndOffset, Replacement: valueText})
	}

	return &InlinePlan{
		Name:    name.Identifier,
		Remove:  Change{Resource: resource, StartOffset: stmtStart, EndOffset: stmtEnd, Replacement: ""},
		Replace: replace,
	}, nil
}
