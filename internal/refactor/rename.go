package refactor

import (
	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/workspace"
)

// Rename plans a rename of the name at (resource, offset) to newName: one
// Change per occurrence w.FindOccurrences reports (spec §8 scenario 6:
// rename touches exactly the occurrence set, nothing else). Validating
// newName itself (valid identifier, no collision) is the caller's
// responsibility — RefactoringPrecondition failures surface from
// FindOccurrences/PyNameAt the usual way.
func Rename(w *workspace.Workspace, resource string, offset int, newName string, opts occurrence.Options) ([]Change, error) {
	occs, err := w.FindOccurrences(resource, offset, opts, nil, nil)
	if err != nil {
		return nil, err
	}
	changes := make([]Change, 0, len(occs))
	for _, o := range occs {
		changes = append(changes, Change{
			Resource:    o.Resource,
			StartOffset: o.StartOffset,
			EndOffset:   o.EndOffset,
			Replacement: newName,
		})
	}
	return changes, nil
}
