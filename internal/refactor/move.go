package refactor

import (
	"fmt"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/scope"
	"github.com/corerope/corerope/internal/workspace"
)

// MovePlan relocates a top-level function or class definition out of its
// current module and into targetDotted, the way rope's MoveRefactoring
// moves a global. Remove deletes the definition's text from the source
// module; Insert is the text to append to the target module; Import adds
// a `from targetDotted import NAME` to the source module so existing
// unqualified references keep resolving.
type MovePlan struct {
	Name   string
	Remove Change
	Insert Change // Resource is the target module's resource path
	Import Change // Resource is the source module's resource path
}

// Move plans relocating the top-level def/class at (resource, offset) to
// targetResource (whose dotted module name is targetDotted). Offset must
// land on the definition's own Name identifier or within its header.
func Move(w *workspace.Workspace, resource string, offset int, targetResource, targetDotted string) (*MovePlan, error) {
	name, err := w.PyNameAt(resource, offset)
	if err != nil {
		return nil, err
	}
	if name == nil || name.Kind != scope.DefinedNameKind {
		ident := ""
		if name != nil {
			ident = name.Identifier
		}
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "move", Message: fmt.Sprintf("%q is not a function or class definition", ident)}
	}

	var startPos, endPos int
	var ident string
	switch def := name.Defined.(type) {
	case *ast.FunctionDef:
		startPos, endPos, ident = def.Pos(), def.End(), def.Name.Name
	case *ast.ClassDef:
		startPos, endPos, ident = def.Pos(), def.End(), def.Name.Name
	default:
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "move", Message: "offset is not on a function or class definition"}
	}
	if name.Owner == nil || name.Owner.Parent != nil {
		return nil, &workspace.RefactoringPreconditionError{Refactoring: "move", Message: "only top-level definitions can be moved"}
	}

	src, ok := w.Source(resource)
	if !ok {
		return nil, &workspace.ResourceNotFoundError{Resource: resource}
	}
	text := src[startPos:endPos]

	return &MovePlan{
		Name:   ident,
		Remove: Change{Resource: resource, StartOffset: startPos, EndOffset: endPos, Replacement: ""},
		Insert: Change{Resource: targetResource, StartOffset: -1, EndOffset: -1, Replacement: "\n\n" + text},
		Import: Change{Resource: resource, StartOffset: startPos, EndOffset: startPos,
			Replacement: fmt.Sprintf("from %s import %s\n", targetDotted, ident)},
	}, nil
}
